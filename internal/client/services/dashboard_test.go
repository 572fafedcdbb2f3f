package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisdutt24/lifeadmin/internal/client/models"
)

func titles(vs []models.EntryView) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.Title
	}
	return out
}

type dashboardFixture struct {
	*env
	ws       *Workspace
	settings SettingsService
	svc      DashboardService
}

func newDashboardFixture(t *testing.T) *dashboardFixture {
	t.Helper()
	e := newEnv(t)
	ws := e.open(t, "u1")
	settings := NewSettingsService(e.store)
	return &dashboardFixture{
		env:      e,
		ws:       ws,
		settings: settings,
		svc:      NewDashboardService(ws, settings, e.clock),
	}
}

func (f *dashboardFixture) add(t *testing.T, in models.EntryInput) models.Entry {
	t.Helper()
	en, err := f.ws.Entries.Create(f.ctx, in)
	require.NoError(t, err)
	return en
}

func TestDashboardService_Overview(t *testing.T) {
	f := newDashboardFixture(t)

	f.add(t, models.EntryInput{Title: "rent today", Category: "Rent", ExpirationDate: datePtr(today())})
	f.add(t, models.EntryInput{Title: "rent 10d", Category: "Rent", ExpirationDate: datePtr(today().AddDays(10))})
	f.add(t, models.EntryInput{Title: "internet 20d", Category: "Internet", ExpirationDate: datePtr(today().AddDays(20))})
	f.add(t, models.EntryInput{Title: "insurance 29d", Category: "Insurance", ExpirationDate: datePtr(today().AddDays(29))})
	f.add(t, models.EntryInput{Title: "power 90d", Category: "Electricity", ExpirationDate: datePtr(today().AddDays(90))})
	f.add(t, models.EntryInput{Title: "expired", Category: "Subscriptions", ExpirationDate: datePtr(today().AddDays(-1))})
	f.add(t, models.EntryInput{Title: "closed", Category: "General", Status: models.StatusDone, ExpirationDate: datePtr(today().AddDays(5))})

	f.add(t, models.EntryInput{Title: "doctor", Category: "Health", StartAt: timePtr(testNow.Add(3 * 24 * time.Hour))})
	f.add(t, models.EntryInput{Title: "offsite", Category: "Work", StartAt: timePtr(testNow.Add(10 * 24 * time.Hour))})
	f.add(t, models.EntryInput{Title: "call", Category: "Friends", StartAt: timePtr(testNow.Add(-time.Hour))})

	for i := 0; i < 7; i++ {
		_, err := f.ws.Documents.Create(f.ctx, "x", models.FileInput{Name: fmt.Sprintf("doc%d", i)})
		require.NoError(t, err)
		f.clock.now = f.clock.now.Add(time.Minute)
	}
	f.clock.now = testNow

	ov, err := f.svc.Overview(f.ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, ov.ActiveContracts)
	assert.Equal(t, []string{"rent today", "rent 10d", "internet 20d"}, titles(ov.Deadlines))
	assert.Equal(t, []string{"doctor"}, titles(ov.UpcomingAppointments))
	assert.Equal(t, ov.Deadlines, ov.DeadlinePopup)

	require.Len(t, ov.RecentDocuments, 5)
	assert.Equal(t, "doc6", ov.RecentDocuments[0].Filename)

	assert.ElementsMatch(t,
		[]string{"rent today", "rent 10d", "internet 20d", "insurance 29d", "power 90d", "expired"},
		titles(ov.ActiveContractEntries))
	assert.Equal(t, []string{"closed"}, titles(ov.ArchivedContractEntries))
	assert.Equal(t, []string{"doctor", "offsite"}, titles(ov.ActiveAppointmentEntries))
	assert.Equal(t, []string{"call"}, titles(ov.ArchivedAppointmentEntries))

	for _, v := range ov.Deadlines {
		assert.Equal(t, models.GroupContracts, v.Group)
		assert.Equal(t, models.StatusDue, v.Status)
	}
}

func TestDashboardService_DeadlinePopup(t *testing.T) {
	f := newDashboardFixture(t)

	a := f.add(t, models.EntryInput{Title: "a", Category: "Rent", ExpirationDate: datePtr(today().AddDays(3))})
	f.add(t, models.EntryInput{Title: "b", Category: "Rent", ExpirationDate: datePtr(today().AddDays(4))})

	require.NoError(t, f.settings.DismissDeadlines(f.ctx, a.ID))
	ov, err := f.svc.Overview(f.ctx)
	require.NoError(t, err)
	assert.Len(t, ov.Deadlines, 2)
	assert.Equal(t, []string{"b"}, titles(ov.DeadlinePopup))

	require.NoError(t, f.settings.SetDeadlinePopup(f.ctx, false))
	ov, err = f.svc.Overview(f.ctx)
	require.NoError(t, err)
	assert.Len(t, ov.Deadlines, 2)
	assert.Empty(t, ov.DeadlinePopup)
	assert.Equal(t, []string{a.ID}, f.settings.DismissedDeadlines(f.ctx))
}

func TestDashboardService_ResetsDismissedWithoutDeadlines(t *testing.T) {
	f := newDashboardFixture(t)

	en := f.add(t, models.EntryInput{Title: "a", Category: "Rent", ExpirationDate: datePtr(today().AddDays(3))})
	require.NoError(t, f.settings.DismissDeadlines(f.ctx, en.ID))

	_, err := f.ws.Entries.Update(f.ctx, en.ID, models.EntryPatch{Status: ptr(models.StatusDone)})
	require.NoError(t, err)

	ov, err := f.svc.Overview(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, ov.Deadlines)
	assert.Empty(t, ov.DeadlinePopup)
	assert.Empty(t, f.settings.DismissedDeadlines(f.ctx))
}

func TestDashboardService_EmptyWorkspace(t *testing.T) {
	f := newDashboardFixture(t)

	ov, err := f.svc.Overview(f.ctx)
	require.NoError(t, err)
	assert.Zero(t, ov.ActiveContracts)
	assert.Empty(t, ov.Deadlines)
	assert.Empty(t, ov.RecentDocuments)
}
