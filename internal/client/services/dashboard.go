package services

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/chrisdutt24/lifeadmin/internal/client/models"
	"github.com/chrisdutt24/lifeadmin/internal/timex"
)

const (
	deadlineHorizon    = 28 * 24 * time.Hour
	appointmentHorizon = 7 * 24 * time.Hour
	recentDocuments    = 5
)

// DashboardService assembles the overview of a workspace.
type DashboardService interface {
	Overview(ctx context.Context) (models.Overview, error)
}

type dashboardService struct {
	ws       *Workspace
	settings SettingsService
	clock    timex.Clock
}

func NewDashboardService(ws *Workspace, settings SettingsService, clock timex.Clock) DashboardService {
	if clock == nil {
		clock = timex.SystemClock{}
	}
	return &dashboardService{ws: ws, settings: settings, clock: clock}
}

// Overview counts active contracts, lists contracts expiring within four
// weeks that are not done or past, appointments starting within a week,
// the five latest documents, and splits both groups into active and
// archived entries. The deadline popup repeats the deadlines the user has
// not dismissed; once no deadlines remain the dismissed list is reset.
func (d *dashboardService) Overview(ctx context.Context) (models.Overview, error) {
	entries, err := d.ws.Entries.List(ctx, models.EntryFilter{})
	if err != nil {
		return models.Overview{}, fmt.Errorf("list entries: %w", err)
	}
	docs, err := d.ws.Documents.List(ctx, recentDocuments)
	if err != nil {
		return models.Overview{}, fmt.Errorf("list documents: %w", err)
	}

	now := d.clock.Now()
	today := timex.DateOf(now).Time()
	ov := models.Overview{RecentDocuments: docs}

	for _, e := range entries {
		v := models.EntryView{Entry: e, Group: d.ws.Entries.GroupOf(e)}
		archived := e.Status == models.StatusDone

		switch v.Group {
		case models.GroupContracts:
			if e.Status == models.StatusActive {
				ov.ActiveContracts++
			}
			if archived {
				ov.ArchivedContractEntries = append(ov.ArchivedContractEntries, v)
				continue
			}
			ov.ActiveContractEntries = append(ov.ActiveContractEntries, v)
			if e.ExpirationDate != nil && !e.ExpirationDate.IsZero() {
				exp := e.ExpirationDate.Time()
				if !exp.After(now.Add(deadlineHorizon)) && !exp.Before(today) {
					ov.Deadlines = append(ov.Deadlines, v)
				}
			}
		default:
			if e.StartAt != nil && !e.StartAt.Before(now) && !e.StartAt.After(now.Add(appointmentHorizon)) {
				ov.UpcomingAppointments = append(ov.UpcomingAppointments, v)
			}
			if archived {
				ov.ArchivedAppointmentEntries = append(ov.ArchivedAppointmentEntries, v)
			} else {
				ov.ActiveAppointmentEntries = append(ov.ActiveAppointmentEntries, v)
			}
		}
	}

	if d.settings == nil {
		return ov, nil
	}
	if len(ov.Deadlines) == 0 {
		if len(d.settings.DismissedDeadlines(ctx)) > 0 {
			if err := d.settings.ResetDismissedDeadlines(ctx); err != nil {
				return models.Overview{}, err
			}
		}
		return ov, nil
	}
	if d.settings.Notifications(ctx).DeadlinePopupEnabled {
		dismissed := d.settings.DismissedDeadlines(ctx)
		for _, v := range ov.Deadlines {
			if !slices.Contains(dismissed, v.ID) {
				ov.DeadlinePopup = append(ov.DeadlinePopup, v)
			}
		}
	}
	return ov, nil
}
