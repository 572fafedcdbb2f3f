package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/chrisdutt24/lifeadmin/internal/client/models"
)

func (a *App) Overview(ctx context.Context, _ []string) error {
	ov, err := a.dashboard.Overview(ctx)
	if err != nil {
		return err
	}
	dt := a.settings.DateTime(ctx)

	a.printf("Active contracts: %d\n", ov.ActiveContracts)

	a.printf("\nDeadlines approaching (%d)\n", len(ov.Deadlines))
	for _, v := range ov.Deadlines {
		a.println("  " + entryLine(v.Entry, v.Group, dt))
	}

	a.printf("\nUpcoming appointments (%d)\n", len(ov.UpcomingAppointments))
	for _, v := range ov.UpcomingAppointments {
		a.println("  " + entryLine(v.Entry, v.Group, dt))
	}

	a.printf("\nRecent documents (%d)\n", len(ov.RecentDocuments))
	for _, d := range ov.RecentDocuments {
		a.println("  " + documentLine(d, dt))
	}

	a.printf("\nContracts: %d active, %d archived\n", len(ov.ActiveContractEntries), len(ov.ArchivedContractEntries))
	a.printf("Appointments: %d active, %d archived\n", len(ov.ActiveAppointmentEntries), len(ov.ArchivedAppointmentEntries))
	return nil
}

// showDeadlinePopup prints the deadlines the user has not dismissed yet.
func (a *App) showDeadlinePopup(ctx context.Context) error {
	ov, err := a.dashboard.Overview(ctx)
	if err != nil {
		return err
	}
	if len(ov.DeadlinePopup) == 0 {
		return nil
	}

	dt := a.settings.DateTime(ctx)
	a.printf("%d deadline(s) coming up:\n", len(ov.DeadlinePopup))
	for _, v := range ov.DeadlinePopup {
		a.println("  " + entryLine(v.Entry, v.Group, dt))
	}
	a.println("Use 'dismiss' to hide them.")
	return nil
}

func (a *App) printSettings(ctx context.Context) {
	dt := a.settings.DateTime(ctx)
	n := a.settings.Notifications(ctx)

	onOff := func(b bool) string {
		if b {
			return "on"
		}
		return "off"
	}
	a.printf("date       %s\n", dt.DateFormat)
	a.printf("time       %s\n", dt.TimeFormat)
	a.printf("popup      %s\n", onOff(n.DeadlinePopupEnabled))
	a.printf("reminders  %s\n", onOff(n.AppointmentRemindersEnabled))
}

// Settings prints the settings, or applies "key value" pairs.
func (a *App) Settings(ctx context.Context, args []string) error {
	if len(args)%2 != 0 {
		return fmt.Errorf("usage: settings [key value ...]")
	}

	for i := 0; i < len(args); i += 2 {
		key, value := strings.ToLower(args[i]), args[i+1]

		switch key {
		case "date":
			dt := a.settings.DateTime(ctx)
			switch strings.ToUpper(value) {
			case string(models.DateFormatEU), "EU":
				dt.DateFormat = models.DateFormatEU
			case string(models.DateFormatUS), "US":
				dt.DateFormat = models.DateFormatUS
			default:
				return fmt.Errorf("unknown date format %q", value)
			}
			if _, err := a.settings.SetDateTime(ctx, dt); err != nil {
				return err
			}

		case "time":
			dt := a.settings.DateTime(ctx)
			switch strings.TrimSuffix(strings.ToLower(value), "h") {
			case string(models.TimeFormat24):
				dt.TimeFormat = models.TimeFormat24
			case string(models.TimeFormat12):
				dt.TimeFormat = models.TimeFormat12
			default:
				return fmt.Errorf("unknown time format %q", value)
			}
			if _, err := a.settings.SetDateTime(ctx, dt); err != nil {
				return err
			}

		case "popup", "reminders":
			on, err := parseSwitch(value)
			if err != nil {
				return err
			}
			if key == "popup" {
				err = a.settings.SetDeadlinePopup(ctx, on)
			} else {
				err = a.settings.SetAppointmentReminders(ctx, on)
			}
			if err != nil {
				return err
			}

		default:
			return fmt.Errorf("unknown setting %q", key)
		}
	}

	a.printSettings(ctx)
	return nil
}

// Dismiss hides deadlines from the popup: the given ids, or every deadline
// currently shown when none are given.
func (a *App) Dismiss(ctx context.Context, args []string) error {
	ids := make([]string, 0, len(args))
	for _, ref := range args {
		e, err := a.findEntry(ctx, ref)
		if err != nil {
			return err
		}
		ids = append(ids, e.ID)
	}

	if len(ids) == 0 {
		ov, err := a.dashboard.Overview(ctx)
		if err != nil {
			return err
		}
		for _, v := range ov.DeadlinePopup {
			ids = append(ids, v.ID)
		}
	}
	if len(ids) == 0 {
		a.println("Nothing to dismiss.")
		return nil
	}

	if err := a.settings.DismissDeadlines(ctx, ids...); err != nil {
		return err
	}
	a.printf("Dismissed %d deadline(s).\n", len(ids))
	return nil
}
