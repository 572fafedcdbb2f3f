package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chrisdutt24/lifeadmin/internal/client/models"
	"github.com/chrisdutt24/lifeadmin/internal/common"
)

// findEntry accepts a full id or an unambiguous id prefix.
func (a *App) findEntry(ctx context.Context, ref string) (models.Entry, error) {
	e, err := a.ws.Entries.Get(ctx, ref)
	if err == nil || !errors.Is(err, common.ErrNotFound) {
		return e, err
	}

	all, err := a.ws.Entries.List(ctx, models.EntryFilter{})
	if err != nil {
		return models.Entry{}, err
	}
	var match []models.Entry
	for _, e := range all {
		if strings.HasPrefix(e.ID, ref) {
			match = append(match, e)
		}
	}
	switch len(match) {
	case 1:
		return match[0], nil
	case 0:
		return models.Entry{}, fmt.Errorf("entry %q: %w", ref, common.ErrNotFound)
	default:
		return models.Entry{}, fmt.Errorf("entry id %q is ambiguous", ref)
	}
}

func (a *App) printEntries(ctx context.Context, filter models.EntryFilter) error {
	entries, err := a.ws.Entries.List(ctx, filter)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		a.println("No entries.")
		return nil
	}
	dt := a.settings.DateTime(ctx)
	for _, e := range entries {
		a.println(entryLine(e, a.ws.Entries.GroupOf(e), dt))
	}
	return nil
}

// List prints entries, optionally only those of the comma-separated
// categories given as arguments.
func (a *App) List(ctx context.Context, args []string) error {
	var filter models.EntryFilter
	for _, name := range strings.Split(strings.Join(args, " "), ",") {
		if name = strings.TrimSpace(name); name != "" {
			filter.Categories = append(filter.Categories, models.NormalizeCategoryName(name))
		}
	}
	return a.printEntries(ctx, filter)
}

func (a *App) Appointments(ctx context.Context, _ []string) error {
	return a.printEntries(ctx, models.EntryFilter{OnlyAppointments: true})
}

func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: show <id>")
	}
	e, err := a.findEntry(ctx, args[0])
	if err != nil {
		return err
	}
	g := a.ws.Entries.GroupOf(e)
	dt := a.settings.DateTime(ctx)

	a.printf("%s\n", e.Title)
	a.printf("  id:        %s\n", e.ID)
	a.printf("  category:  %s (%s, %s)\n", e.Category, g, e.Type)
	a.printf("  status:    %s\n", e.Status)
	if when := whenOf(e, g, dt); when != "" {
		a.printf("  date:      %s\n", when)
	}
	if e.CompanyName != "" {
		a.printf("  company:   %s\n", e.CompanyName)
	}
	if e.PortalURL != "" {
		a.printf("  portal:    %s\n", models.NormalizePortalURL(e.PortalURL))
	}
	if e.Location != "" {
		a.printf("  location:  %s\n", e.Location)
	}
	if e.Notes != "" {
		a.printf("  notes:     %s\n", e.Notes)
	}

	docs, err := a.ws.Documents.ListByEntry(ctx, e.ID)
	if err != nil {
		return err
	}
	for _, d := range docs {
		a.printf("  document:  %s\n", documentLine(d, dt))
	}
	return nil
}

func (a *App) prompt(label string) (string, error) {
	return getSimpleText(a.reader, label, a.out)
}

// Add prompts for a new entry. The date prompt depends on the group of the
// chosen category.
func (a *App) Add(ctx context.Context, _ []string) error {
	var in models.EntryInput
	var err error

	if in.Title, err = a.prompt("Title"); err != nil {
		return err
	}
	if in.Category, err = a.prompt(fmt.Sprintf("Category [%s]", models.FallbackCategoryName)); err != nil {
		return err
	}

	g, ok := a.ws.Categories.ResolveGroup(models.NormalizeCategoryName(in.Category))
	if !ok {
		g = models.GroupForType(a.ws.Categories.ResolveDefaultType(in.Category))
	}

	if g == models.GroupContracts {
		raw, err := a.prompt("Expiration date (YYYY-MM-DD, blank for none)")
		if err != nil {
			return err
		}
		if raw != "" {
			d, err := parseDateInput(raw)
			if err != nil {
				return err
			}
			in.ExpirationDate = &d
		}
		if in.CompanyName, err = a.prompt("Company"); err != nil {
			return err
		}
		if in.PortalURL, err = a.prompt("Portal URL"); err != nil {
			return err
		}
	} else {
		raw, err := a.prompt("Start (YYYY-MM-DD HH:MM, blank for none)")
		if err != nil {
			return err
		}
		if raw != "" {
			t, err := parseDateTimeInput(raw, time.Local)
			if err != nil {
				return err
			}
			in.StartAt = &t
		}
		if in.Location, err = a.prompt("Location"); err != nil {
			return err
		}
	}

	if in.Notes, err = GetMultiline(a.reader, "Notes", a.out); err != nil {
		return err
	}

	e, err := a.ws.Entries.Create(ctx, in)
	if err != nil {
		return err
	}
	a.printf("Created %s (%s)\n", e.Title, shortID(e.ID))
	return nil
}

// editText prompts for a text field. Blank keeps the value, "-" clears it.
func (a *App) editText(label, current string, dst **string) error {
	v, err := a.prompt(fmt.Sprintf("%s [%s]", label, current))
	if err != nil {
		return err
	}
	switch v {
	case "":
	case clearValue:
		empty := ""
		*dst = &empty
	default:
		*dst = &v
	}
	return nil
}

// Edit walks through the fields of an entry. Blank input keeps a value and
// "-" clears it.
func (a *App) Edit(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: edit <id>")
	}
	e, err := a.findEntry(ctx, args[0])
	if err != nil {
		return err
	}

	var patch models.EntryPatch
	if err := a.editText("Title", e.Title, &patch.Title); err != nil {
		return err
	}
	if err := a.editText("Category", e.Category, &patch.Category); err != nil {
		return err
	}

	current := ""
	if e.ExpirationDate != nil {
		current = e.ExpirationDate.String()
	}
	raw, err := a.prompt(fmt.Sprintf("Expiration date [%s]", current))
	if err != nil {
		return err
	}
	switch raw {
	case "":
	case clearValue:
		patch.ClearExpiration = true
	default:
		d, err := parseDateInput(raw)
		if err != nil {
			return err
		}
		patch.ExpirationDate = &d
	}

	current = ""
	if e.StartAt != nil {
		current = e.StartAt.In(time.Local).Format(inputDateTimeLayout)
	}
	raw, err = a.prompt(fmt.Sprintf("Start [%s]", current))
	if err != nil {
		return err
	}
	switch raw {
	case "":
	case clearValue:
		patch.ClearStartAt = true
	default:
		t, err := parseDateTimeInput(raw, time.Local)
		if err != nil {
			return err
		}
		patch.StartAt = &t
	}

	if err := a.editText("Company", e.CompanyName, &patch.CompanyName); err != nil {
		return err
	}
	if err := a.editText("Portal URL", e.PortalURL, &patch.PortalURL); err != nil {
		return err
	}
	if err := a.editText("Location", e.Location, &patch.Location); err != nil {
		return err
	}
	if err := a.editText("Notes", e.Notes, &patch.Notes); err != nil {
		return err
	}

	updated, err := a.ws.Entries.Update(ctx, e.ID, patch)
	if err != nil {
		return err
	}
	a.printf("Updated %s (%s)\n", updated.Title, updated.Status)
	return nil
}

func (a *App) setStatus(ctx context.Context, args []string, status models.EntryStatus) error {
	if len(args) == 0 {
		return fmt.Errorf("an entry id is required")
	}
	e, err := a.findEntry(ctx, args[0])
	if err != nil {
		return err
	}
	updated, err := a.ws.Entries.Update(ctx, e.ID, models.EntryPatch{Status: &status})
	if err != nil {
		return err
	}
	a.printf("%s is now %s\n", updated.Title, updated.Status)
	return nil
}

func (a *App) Done(ctx context.Context, args []string) error {
	return a.setStatus(ctx, args, models.StatusDone)
}

func (a *App) Reopen(ctx context.Context, args []string) error {
	return a.setStatus(ctx, args, models.StatusActive)
}

func (a *App) Remove(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: rm <id>")
	}
	e, err := a.findEntry(ctx, args[0])
	if err != nil {
		return err
	}
	if err := a.ws.Entries.Delete(ctx, e.ID); err != nil {
		return err
	}
	a.printf("Deleted %s\n", e.Title)
	return nil
}
