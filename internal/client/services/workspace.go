package services

import (
	"context"
	"fmt"

	"github.com/chrisdutt24/lifeadmin/internal/client/storage"
	"github.com/chrisdutt24/lifeadmin/internal/common"
	"github.com/chrisdutt24/lifeadmin/internal/logging"
	"github.com/chrisdutt24/lifeadmin/internal/timex"
)

// Options configures the stores of a workspace.
type Options struct {
	Clock  timex.Clock
	Logger logging.Logger
}

func (o Options) withDefaults() Options {
	if o.Clock == nil {
		o.Clock = timex.SystemClock{}
	}
	if o.Logger == nil {
		o.Logger = logging.Nop()
	}
	return o
}

// Workspace bundles the stores of one signed-in user. The registry resolves
// categories for the entry store, category changes are cascaded into
// entries, and entry deletes cascade into documents.
//
// A Workspace is not safe for concurrent use.
type Workspace struct {
	UserID     string
	Categories CategoryRegistry
	Entries    EntryStore
	Documents  DocumentStore
}

// OpenWorkspace loads the collections of userID from store.
func OpenWorkspace(ctx context.Context, store *storage.JSONStore, userID string, opts Options) (*Workspace, error) {
	if userID == "" {
		return nil, fmt.Errorf("open workspace: %w", common.ErrUnauthorized)
	}
	opts = opts.withDefaults()
	log := opts.Logger.With("user_id", userID)

	categories, err := newCategoryRegistry(ctx, store, userID, log)
	if err != nil {
		return nil, err
	}
	entries, err := newEntryStore(ctx, store, userID, categories, opts.Clock, log)
	if err != nil {
		return nil, err
	}
	documents, err := newDocumentStore(ctx, store, userID, opts.Clock, log)
	if err != nil {
		return nil, err
	}

	categories.entries = entries
	entries.docs = documents

	return &Workspace{
		UserID:     userID,
		Categories: categories,
		Entries:    entries,
		Documents:  documents,
	}, nil
}
