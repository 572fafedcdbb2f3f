package services

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/chrisdutt24/lifeadmin/internal/client/models"
	"github.com/chrisdutt24/lifeadmin/internal/client/storage"
	"github.com/chrisdutt24/lifeadmin/internal/common"
	"github.com/chrisdutt24/lifeadmin/internal/logging"
	"github.com/chrisdutt24/lifeadmin/internal/timex"
	"github.com/google/uuid"
)

// Leftovers of the demo data set: dropped or scrubbed when loading.
var placeholderFilenames = []string{
	"Internship Certificate.pdf",
	"internet_contract.pdf",
	"insurance_policy.pdf",
}

const placeholderURLPrefix = "https://example.com/documents/"

// DocumentStore owns metadata of files attached to entries.
type DocumentStore interface {
	// List returns documents newest first; limit <= 0 returns all.
	List(ctx context.Context, limit int) ([]models.Document, error)
	ListByEntry(ctx context.Context, entryID string) ([]models.Document, error)
	Get(ctx context.Context, id string) (models.Document, error)
	// Create does not check that entryID exists.
	Create(ctx context.Context, entryID string, file models.FileInput) (models.Document, error)
	Delete(ctx context.Context, id string) error
	// RemoveByEntry is idempotent.
	RemoveByEntry(ctx context.Context, entryID string) error
}

type documentStore struct {
	store  *storage.JSONStore
	key    string
	userID string
	items  []models.Document
	clock  timex.Clock
	log    logging.Logger
}

func newDocumentStore(ctx context.Context, store *storage.JSONStore, userID string, clock timex.Clock, log logging.Logger) (*documentStore, error) {
	loaded, err := storage.LoadUserList[models.Document](ctx, store, storage.KeyDocuments, userID, nil)
	if err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}

	items := make([]models.Document, 0, len(loaded))
	for _, d := range loaded {
		if slices.Contains(placeholderFilenames, d.Filename) {
			continue
		}
		if d.UserID == "" {
			d.UserID = userID
		}
		if strings.Contains(d.FileURL, placeholderURLPrefix) {
			d.FileURL = ""
		}
		items = append(items, d)
	}

	return &documentStore{
		store:  store,
		key:    storage.UserKey(storage.KeyDocuments, userID),
		userID: userID,
		items:  items,
		clock:  clock,
		log:    log,
	}, nil
}

func (s *documentStore) persist(ctx context.Context) {
	s.store.Persist(ctx, s.key, s.items)
}

func (s *documentStore) List(_ context.Context, limit int) ([]models.Document, error) {
	out := slices.Clone(s.items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UploadedAt.After(out[j].UploadedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *documentStore) ListByEntry(ctx context.Context, entryID string) ([]models.Document, error) {
	all, err := s.List(ctx, 0)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(all, func(d models.Document) bool { return d.EntryID != entryID }), nil
}

func (s *documentStore) Get(_ context.Context, id string) (models.Document, error) {
	idx := slices.IndexFunc(s.items, func(d models.Document) bool { return d.ID == id })
	if idx < 0 {
		return models.Document{}, fmt.Errorf("document %s: %w", id, common.ErrNotFound)
	}
	return s.items[idx], nil
}

func (s *documentStore) Create(ctx context.Context, entryID string, file models.FileInput) (models.Document, error) {
	d := models.Document{
		ID:         uuid.NewString(),
		UserID:     s.userID,
		EntryID:    entryID,
		Filename:   strings.TrimSpace(file.Name),
		FileURL:    strings.TrimSpace(file.DataURL),
		MimeType:   strings.TrimSpace(file.MimeType),
		UploadedAt: s.clock.Now(),
	}
	if d.Filename == "" {
		d.Filename = models.DefaultFilename
	}
	if d.MimeType == "" {
		d.MimeType = models.DefaultMimeType
	}

	s.items = append(s.items, d)
	s.persist(ctx)
	s.log.Info(ctx, "document attached", "document_id", d.ID, "entry_id", entryID, "mime", d.MimeType)
	return d, nil
}

func (s *documentStore) Delete(ctx context.Context, id string) error {
	idx := slices.IndexFunc(s.items, func(d models.Document) bool { return d.ID == id })
	if idx < 0 {
		return fmt.Errorf("document %s: %w", id, common.ErrNotFound)
	}
	s.items = slices.Delete(s.items, idx, idx+1)
	s.persist(ctx)
	return nil
}

func (s *documentStore) RemoveByEntry(ctx context.Context, entryID string) error {
	before := len(s.items)
	s.items = slices.DeleteFunc(s.items, func(d models.Document) bool { return d.EntryID == entryID })
	if removed := before - len(s.items); removed > 0 {
		s.persist(ctx)
		s.log.Info(ctx, "documents removed", "entry_id", entryID, "count", removed)
	}
	return nil
}
