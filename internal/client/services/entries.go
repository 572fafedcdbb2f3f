package services

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/chrisdutt24/lifeadmin/internal/client/models"
	"github.com/chrisdutt24/lifeadmin/internal/client/storage"
	"github.com/chrisdutt24/lifeadmin/internal/common"
	"github.com/chrisdutt24/lifeadmin/internal/logging"
	"github.com/chrisdutt24/lifeadmin/internal/timex"
	"github.com/google/uuid"
)

// EntryStore owns the user's entries.
//
// Contract:
//   - List recomputes derived statuses (persisting when any changed), then
//     filters and orders by operative date ascending with undated entries
//     last, ties broken by newest CreatedAt first. It returns copies.
//   - Create is permissive and only fills defaults.
//   - Update returns ErrNotFound for unknown ids.
//   - Delete of an unknown id is a no-op; otherwise the entry's documents
//     are removed too.
type EntryStore interface {
	List(ctx context.Context, filter models.EntryFilter) ([]models.Entry, error)
	Get(ctx context.Context, id string) (models.Entry, error)
	Create(ctx context.Context, in models.EntryInput) (models.Entry, error)
	Update(ctx context.Context, id string, patch models.EntryPatch) (models.Entry, error)
	Delete(ctx context.Context, id string) error
	// GroupOf resolves the group of an entry through its category, falling
	// back to its type when the category is unknown.
	GroupOf(e models.Entry) models.Group
}

// documentRemover drops documents of a deleted entry; implemented by the
// document store.
type documentRemover interface {
	RemoveByEntry(ctx context.Context, entryID string) error
}

type entryStore struct {
	store    *storage.JSONStore
	key      string
	userID   string
	items    []models.Entry
	resolver CategoryResolver
	docs     documentRemover
	clock    timex.Clock
	log      logging.Logger
}

func newEntryStore(ctx context.Context, store *storage.JSONStore, userID string, resolver CategoryResolver, clock timex.Clock, log logging.Logger) (*entryStore, error) {
	items, err := storage.LoadUserList[models.Entry](ctx, store, storage.KeyEntries, userID, nil)
	if err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}
	for i := range items {
		items[i] = models.NormalizeEntry(items[i])
		if items[i].UserID == "" {
			items[i].UserID = userID
		}
	}

	return &entryStore{
		store:    store,
		key:      storage.UserKey(storage.KeyEntries, userID),
		userID:   userID,
		items:    items,
		resolver: resolver,
		clock:    clock,
		log:      log,
	}, nil
}

func (s *entryStore) persist(ctx context.Context) {
	s.store.Persist(ctx, s.key, s.items)
}

func (s *entryStore) GroupOf(e models.Entry) models.Group {
	if g, ok := s.resolver.ResolveGroup(e.Category); ok {
		return g
	}
	return models.GroupForType(e.Type)
}

// refresh applies the derived status rules to every entry and reports
// whether any status changed.
func (s *entryStore) refresh(now time.Time) bool {
	changed := false
	for i, e := range s.items {
		next, ok := deriveStatus(e, s.GroupOf(e), now)
		if ok {
			s.items[i] = next
			changed = true
		}
	}
	return changed
}

// deriveStatus returns the entry with its derived status and true when the
// status differs from the stored one.
//
// Contracts with an expiration date become due inside the due window and
// active outside it; appointments whose start lies in the past are
// archived. Done entries are left alone.
func deriveStatus(e models.Entry, g models.Group, now time.Time) (models.Entry, bool) {
	if e.Status == models.StatusDone {
		return e, false
	}

	var status models.EntryStatus
	switch g {
	case models.GroupContracts:
		if e.ExpirationDate == nil || e.ExpirationDate.IsZero() {
			return e, false
		}
		status = models.StatusActive
		if !e.ExpirationDate.Time().After(now.Add(models.DueWindow)) {
			status = models.StatusDue
		}
	case models.GroupAppointments:
		if e.StartAt == nil || e.StartAt.IsZero() || !e.StartAt.Before(now) {
			return e, false
		}
		status = models.StatusDone
	default:
		return e, false
	}

	if status == e.Status {
		return e, false
	}
	e.Status = status
	e.UpdatedAt = now
	return e, true
}

func (s *entryStore) List(ctx context.Context, filter models.EntryFilter) ([]models.Entry, error) {
	if s.refresh(s.clock.Now()) {
		s.persist(ctx)
	}

	out := make([]models.Entry, 0, len(s.items))
	for _, e := range s.items {
		if len(filter.Categories) > 0 && !slices.Contains(filter.Categories, e.Category) {
			continue
		}
		if filter.OnlyAppointments && s.GroupOf(e) != models.GroupAppointments {
			continue
		}
		out = append(out, e.Clone())
	}

	s.sortEntries(out)
	return out, nil
}

// sortEntries orders items by operative date ascending, undated last, then
// newest creation first. Keys travel with their entry so records sharing an
// id keep their own position.
func (s *entryStore) sortEntries(items []models.Entry) {
	type keyed struct {
		e   models.Entry
		at  time.Time
		has bool
	}
	rows := make([]keyed, len(items))
	for i, e := range items {
		at, has := e.OperativeTime(s.GroupOf(e))
		rows[i] = keyed{e: e, at: at, has: has}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.has != b.has {
			return a.has
		}
		if a.has && !a.at.Equal(b.at) {
			return a.at.Before(b.at)
		}
		ca, cb := a.e.CreatedAt, b.e.CreatedAt
		if ca.IsZero() || cb.IsZero() {
			return false
		}
		return ca.After(cb)
	})

	for i := range rows {
		items[i] = rows[i].e
	}
}

func (s *entryStore) Get(_ context.Context, id string) (models.Entry, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return models.Entry{}, fmt.Errorf("entry %s: %w", id, common.ErrNotFound)
	}
	return s.items[idx].Clone(), nil
}

func (s *entryStore) Create(ctx context.Context, in models.EntryInput) (models.Entry, error) {
	now := s.clock.Now()

	e := models.Entry{
		ID:             uuid.NewString(),
		UserID:         s.userID,
		Title:          strings.TrimSpace(in.Title),
		Category:       strings.TrimSpace(in.Category),
		Status:         in.Status,
		Type:           in.Type,
		ExpirationDate: in.ExpirationDate,
		StartAt:        in.StartAt,
		CompanyName:    strings.TrimSpace(in.CompanyName),
		PortalURL:      strings.TrimSpace(in.PortalURL),
		Location:       strings.TrimSpace(in.Location),
		Notes:          in.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if e.Title == "" {
		e.Title = models.UntitledEntry
	}
	if e.Category == "" {
		e.Category = models.FallbackCategoryName
	}
	e = models.NormalizeEntry(e)
	if !e.Status.Valid() {
		e.Status = models.StatusActive
	}
	if e.Type == "" {
		e.Type = s.resolver.ResolveDefaultType(e.Category)
	}
	e = e.Clone()

	s.items = append(s.items, e)
	s.persist(ctx)
	s.log.Info(ctx, "entry created", "entry_id", e.ID, "category", e.Category, "type", e.Type)
	return e.Clone(), nil
}

func (s *entryStore) Update(ctx context.Context, id string, patch models.EntryPatch) (models.Entry, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return models.Entry{}, fmt.Errorf("entry %s: %w", id, common.ErrNotFound)
	}
	e := s.items[idx].Clone()

	if patch.Title != nil {
		e.Title = strings.TrimSpace(*patch.Title)
		if e.Title == "" {
			e.Title = models.UntitledEntry
		}
	}
	if patch.Status != nil && patch.Status.Valid() {
		e.Status = *patch.Status
	}
	if patch.Type != nil && *patch.Type != "" {
		e.Type = *patch.Type
	}
	if patch.Category != nil {
		next := models.NormalizeCategoryName(strings.TrimSpace(*patch.Category))
		if next == "" {
			next = models.FallbackCategoryName
		}
		if next != e.Category {
			e.Category = next
			e.Type = s.resolver.ResolveDefaultType(next)
		}
	}
	switch {
	case patch.ClearExpiration:
		e.ExpirationDate = nil
	case patch.ExpirationDate != nil:
		d := *patch.ExpirationDate
		e.ExpirationDate = &d
	}
	switch {
	case patch.ClearStartAt:
		e.StartAt = nil
	case patch.StartAt != nil:
		t := *patch.StartAt
		e.StartAt = &t
	}
	if patch.CompanyName != nil {
		e.CompanyName = strings.TrimSpace(*patch.CompanyName)
	}
	if patch.PortalURL != nil {
		e.PortalURL = strings.TrimSpace(*patch.PortalURL)
	}
	if patch.Location != nil {
		e.Location = strings.TrimSpace(*patch.Location)
	}
	if patch.Notes != nil {
		e.Notes = *patch.Notes
	}
	e = models.NormalizeEntry(e)
	e.UpdatedAt = s.clock.Now()

	s.items[idx] = e
	s.persist(ctx)
	return e.Clone(), nil
}

func (s *entryStore) Delete(ctx context.Context, id string) error {
	idx := s.indexOf(id)
	if idx < 0 {
		s.log.Debug(ctx, "delete of unknown entry ignored", "entry_id", id)
		return nil
	}

	s.items = slices.Delete(s.items, idx, idx+1)
	s.persist(ctx)

	if s.docs != nil {
		if err := s.docs.RemoveByEntry(ctx, id); err != nil {
			return fmt.Errorf("remove documents of entry %s: %w", id, err)
		}
	}
	s.log.Info(ctx, "entry deleted", "entry_id", id)
	return nil
}

// retag moves every entry labelled from to category to with type t.
func (s *entryStore) retag(ctx context.Context, from, to string, t models.EntryType) int {
	now := s.clock.Now()
	n := 0
	for i := range s.items {
		if s.items[i].Category != from {
			continue
		}
		s.items[i].Category = to
		s.items[i].Type = t
		s.items[i].UpdatedAt = now
		n++
	}
	if n > 0 {
		s.persist(ctx)
	}
	return n
}

func (s *entryStore) indexOf(id string) int {
	return slices.IndexFunc(s.items, func(e models.Entry) bool { return e.ID == id })
}
