package models

import (
	"strings"
	"time"

	"github.com/chrisdutt24/lifeadmin/internal/timex"
)

// EntryStatus is the lifecycle state of an entry.
type EntryStatus string

const (
	StatusActive EntryStatus = "active"
	StatusDue    EntryStatus = "due"
	StatusDone   EntryStatus = "done"
)

// Valid reports whether s is a known status.
func (s EntryStatus) Valid() bool {
	switch s {
	case StatusActive, StatusDue, StatusDone:
		return true
	}
	return false
}

const (
	// UntitledEntry is the title of entries created without one.
	UntitledEntry = "Untitled"
	// DueWindow is how far ahead a contract expiry marks the entry due.
	DueWindow = 30 * 24 * time.Hour
)

// Entry is a contract or an appointment tracked by the user.
type Entry struct {
	ID             string      `json:"id"`
	UserID         string      `json:"userId"`
	Title          string      `json:"title"`
	Category       string      `json:"category"`
	Status         EntryStatus `json:"status"`
	Type           EntryType   `json:"type"`
	ExpirationDate *timex.Date `json:"expirationDate,omitempty"`
	StartAt        *time.Time  `json:"startAt,omitempty"`
	CompanyName    string      `json:"companyName"`
	PortalURL      string      `json:"portalUrl"`
	Location       string      `json:"location"`
	Notes          string      `json:"notes"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// Clone returns a copy that shares no pointers with e.
func (e Entry) Clone() Entry {
	if e.ExpirationDate != nil {
		d := *e.ExpirationDate
		e.ExpirationDate = &d
	}
	if e.StartAt != nil {
		t := *e.StartAt
		e.StartAt = &t
	}
	return e
}

// OperativeTime is the date that orders e within its group: the expiration
// date for contracts and the start time for appointments.
func (e Entry) OperativeTime(g Group) (time.Time, bool) {
	switch g {
	case GroupContracts:
		if e.ExpirationDate == nil || e.ExpirationDate.IsZero() {
			return time.Time{}, false
		}
		return e.ExpirationDate.Time(), true
	case GroupAppointments:
		if e.StartAt == nil || e.StartAt.IsZero() {
			return time.Time{}, false
		}
		return *e.StartAt, true
	default:
		return e.CreatedAt, !e.CreatedAt.IsZero()
	}
}

// NormalizeEntry rewrites legacy category labels.
func NormalizeEntry(e Entry) Entry {
	e.Category = NormalizeCategoryName(e.Category)
	if strings.TrimSpace(e.Category) == "" && e.Type == EntryTypeInsurance {
		e.Category = "Insurance"
	}
	return e
}

// EntryInput is the payload for creating an entry. Zero values take defaults.
type EntryInput struct {
	Title          string
	Category       string
	Status         EntryStatus
	Type           EntryType
	ExpirationDate *timex.Date
	StartAt        *time.Time
	CompanyName    string
	PortalURL      string
	Location       string
	Notes          string
}

// EntryPatch carries optional entry changes; nil fields are kept.
// ClearExpiration and ClearStartAt remove the corresponding date.
type EntryPatch struct {
	Title           *string
	Category        *string
	Status          *EntryStatus
	Type            *EntryType
	ExpirationDate  *timex.Date
	ClearExpiration bool
	StartAt         *time.Time
	ClearStartAt    bool
	CompanyName     *string
	PortalURL       *string
	Location        *string
	Notes           *string
}

// EntryFilter narrows an entry listing. Category names match exactly.
type EntryFilter struct {
	Categories       []string
	OnlyAppointments bool
}
