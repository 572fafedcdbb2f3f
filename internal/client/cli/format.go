package cli

import (
	"fmt"
	"time"

	"github.com/chrisdutt24/lifeadmin/internal/client/models"
)

const shortIDLen = 8

func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

// whenOf describes the operative date of e in the user's format.
func whenOf(e models.Entry, g models.Group, dt models.DateTimeSettings) string {
	switch {
	case g == models.GroupContracts && e.ExpirationDate != nil && !e.ExpirationDate.IsZero():
		return "expires " + dt.FormatDate(e.ExpirationDate.Time())
	case g == models.GroupAppointments && e.StartAt != nil && !e.StartAt.IsZero():
		return dt.FormatDateTime(e.StartAt.In(time.Local))
	}
	return ""
}

func entryLine(e models.Entry, g models.Group, dt models.DateTimeSettings) string {
	return fmt.Sprintf("%-8s  %-6s  %-30s  %-14s  %s",
		shortID(e.ID), e.Status, e.Title, e.Category, whenOf(e, g, dt))
}

func documentLine(d models.Document, dt models.DateTimeSettings) string {
	kind := "empty"
	switch {
	case d.FileURL == "":
	case isDataURI(d.FileURL):
		kind = "file"
	default:
		kind = "link"
	}
	return fmt.Sprintf("%-8s  %-30s  %-24s  %-5s  entry %s  %s",
		shortID(d.ID), d.Filename, d.MimeType, kind, shortID(d.EntryID), dt.FormatDateTime(d.UploadedAt.In(time.Local)))
}

func categoryLine(c models.Category) string {
	locked := ""
	if c.Locked {
		locked = "built-in"
	}
	return fmt.Sprintf("%-36s  %-16s  %-12s  %-11s  %-18s  %s",
		c.ID, c.Name, c.Group, c.EntryType, c.Icon, locked)
}
