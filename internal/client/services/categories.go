// Package services holds the per-user life-admin stores (categories,
// entries, documents) and the account, settings and overview services
// built on top of them.
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
	"github.com/google/uuid"
)

// CategoryResolver maps a category name to its group and default entry type.
type CategoryResolver interface {
	// ResolveGroup reports the group of the named category, false if unknown.
	ResolveGroup(name string) (models.Group, bool)
	// ResolveDefaultType returns the default entry type of the named
	// category, or personal when it is unknown.
	ResolveDefaultType(name string) models.EntryType
}

// CategoryRegistry owns the user's categories.
//
// Contract:
//   - List: defaults first in canonical order, then custom categories in
//     insertion order. Never empty.
//   - Create: ErrValidation on a blank name, ErrDuplicateName on a
//     case-insensitive collision.
//   - Update: ErrNotFound, ErrLocked, ErrDuplicateName. Renames and regroups
//     are cascaded into entries.
//   - Delete: ErrNotFound, ErrLocked. Entries move to the fallback category.
type CategoryRegistry interface {
	CategoryResolver
	List(ctx context.Context) ([]models.Category, error)
	Create(ctx context.Context, in models.CategoryInput) (models.Category, error)
	Update(ctx context.Context, id string, patch models.CategoryPatch) (models.Category, error)
	Delete(ctx context.Context, id string) error
}

// entryRetagger rewrites the category of entries; implemented by the entry store.
type entryRetagger interface {
	retag(ctx context.Context, from, to string, t models.EntryType) int
}

type categoryRegistry struct {
	store   *storage.JSONStore
	key     string
	items   []models.Category
	entries entryRetagger
	log     logging.Logger
}

func newCategoryRegistry(ctx context.Context, store *storage.JSONStore, userID string, log logging.Logger) (*categoryRegistry, error) {
	persisted, err := storage.LoadUserList(ctx, store, storage.KeyCategories, userID, models.DefaultCategories)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}

	r := &categoryRegistry{
		store: store,
		key:   storage.UserKey(storage.KeyCategories, userID),
		log:   log,
	}

	merged, changed := MergeWithDefaults(persisted)
	r.items = merged
	if changed {
		log.Info(ctx, "categories reconciled with defaults", "count", len(merged))
		r.persist(ctx)
	}
	return r, nil
}

func (r *categoryRegistry) persist(ctx context.Context) {
	r.store.Persist(ctx, r.key, r.items)
}

func (r *categoryRegistry) List(_ context.Context) ([]models.Category, error) {
	return slices.Clone(r.items), nil
}

func (r *categoryRegistry) Create(ctx context.Context, in models.CategoryInput) (models.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.Category{}, fmt.Errorf("category name is required: %w", common.ErrValidation)
	}
	if r.nameTaken(name, "") {
		return models.Category{}, fmt.Errorf("category %q: %w", name, common.ErrDuplicateName)
	}

	group := in.Group
	if !group.Valid() {
		group = models.GroupAppointments
	}
	icon := strings.TrimSpace(in.Icon)
	if icon == "" {
		icon = models.DefaultIcon
	}

	c := models.NormalizeCategory(models.Category{
		ID:        uuid.NewString(),
		Name:      name,
		Group:     group,
		EntryType: models.DefaultTypeForGroup(group),
		Icon:      icon,
	})
	if c.Locked {
		// a legacy alias collapsed onto a built-in name
		return models.Category{}, fmt.Errorf("category %q: %w", c.Name, common.ErrDuplicateName)
	}

	r.items = append(r.items, c)
	r.persist(ctx)
	r.log.Info(ctx, "category created", "category_id", c.ID, "name", c.Name, "group", c.Group)
	return c, nil
}

func (r *categoryRegistry) Update(ctx context.Context, id string, patch models.CategoryPatch) (models.Category, error) {
	idx := r.indexOf(id)
	if idx < 0 {
		return models.Category{}, fmt.Errorf("category %s: %w", id, common.ErrNotFound)
	}
	prev := r.items[idx]
	if prev.Locked {
		return models.Category{}, fmt.Errorf("category %q: %w", prev.Name, common.ErrLocked)
	}

	next := prev
	if patch.Name != nil {
		if name := strings.TrimSpace(*patch.Name); name != "" {
			next.Name = name
		}
	}
	if models.NormalizeCategoryName(next.Name) != next.Name || r.nameTaken(next.Name, id) {
		// legacy aliases fold into a built-in name on the next load
		return models.Category{}, fmt.Errorf("category %q: %w", next.Name, common.ErrDuplicateName)
	}
	if patch.Group != nil && patch.Group.Valid() {
		next.Group = *patch.Group
	}
	next.EntryType = models.DefaultTypeForGroup(next.Group)
	if patch.Icon != nil {
		if icon := strings.TrimSpace(*patch.Icon); icon != "" {
			next.Icon = icon
		}
	}

	r.items[idx] = next
	r.persist(ctx)

	if next.Name != prev.Name || next.EntryType != prev.EntryType {
		n := r.retag(ctx, prev.Name, next.Name, next.EntryType)
		r.log.Info(ctx, "category updated", "category_id", id, "from", prev.Name, "to", next.Name, "entries", n)
	}
	return next, nil
}

func (r *categoryRegistry) Delete(ctx context.Context, id string) error {
	idx := r.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("category %s: %w", id, common.ErrNotFound)
	}
	target := r.items[idx]
	if target.Locked {
		return fmt.Errorf("category %q: %w", target.Name, common.ErrLocked)
	}

	r.items = slices.Delete(r.items, idx, idx+1)
	r.persist(ctx)

	fallback := r.fallback()
	n := r.retag(ctx, target.Name, fallback.Name, fallback.EntryType)
	r.log.Info(ctx, "category deleted", "category_id", id, "name", target.Name, "reassigned_to", fallback.Name, "entries", n)
	return nil
}

func (r *categoryRegistry) ResolveGroup(name string) (models.Group, bool) {
	if c, ok := r.byName(name); ok {
		return c.Group, true
	}
	return "", false
}

func (r *categoryRegistry) ResolveDefaultType(name string) models.EntryType {
	if c, ok := r.byName(name); ok && c.EntryType != "" {
		return c.EntryType
	}
	return models.EntryTypePersonal
}

func (r *categoryRegistry) retag(ctx context.Context, from, to string, t models.EntryType) int {
	if r.entries == nil {
		return 0
	}
	return r.entries.retag(ctx, from, to, t)
}

// fallback picks the category that receives entries of a deleted one.
func (r *categoryRegistry) fallback() models.Category {
	if c, ok := r.byName(models.FallbackCategoryName); ok {
		return c
	}
	if len(r.items) > 0 {
		return r.items[0]
	}
	return models.Category{Name: models.FallbackCategoryName, EntryType: models.EntryTypePersonal}
}

func (r *categoryRegistry) byName(name string) (models.Category, bool) {
	for _, c := range r.items {
		if c.Name == name {
			return c, true
		}
	}
	return models.Category{}, false
}

func (r *categoryRegistry) indexOf(id string) int {
	return slices.IndexFunc(r.items, func(c models.Category) bool { return c.ID == id })
}

func (r *categoryRegistry) nameTaken(name, exceptID string) bool {
	return slices.ContainsFunc(r.items, func(c models.Category) bool {
		return c.ID != exceptID && strings.EqualFold(c.Name, name)
	})
}

// MergeWithDefaults reconciles persisted categories with the built-in set.
//
// Every record is normalized, missing defaults are appended, records sharing
// a case-insensitive name are collapsed (the one carrying a built-in id wins,
// otherwise the locked one, otherwise the first) and the result is ordered
// defaults first in canonical order followed by custom categories in their
// original order. changed reports whether the result differs from the input.
// Applying it to its own output returns the same slice contents and false.
func MergeWithDefaults(persisted []models.Category) (merged []models.Category, changed bool) {
	defaults := models.DefaultCategories()
	defaultIDs := make(map[string]struct{}, len(defaults))
	for _, d := range defaults {
		defaultIDs[d.ID] = struct{}{}
	}
	isDefaultID := func(c models.Category) bool {
		_, ok := defaultIDs[c.ID]
		return ok
	}

	all := make([]models.Category, 0, len(persisted)+len(defaults))
	for _, c := range persisted {
		all = append(all, models.NormalizeCategory(c))
	}
	for _, d := range defaults {
		if !slices.ContainsFunc(all, func(c models.Category) bool { return strings.EqualFold(c.Name, d.Name) }) {
			all = append(all, d)
		}
	}

	merged = make([]models.Category, 0, len(all))
	seen := make(map[string]int, len(all))
	for _, c := range all {
		key := strings.ToLower(c.Name)
		i, dup := seen[key]
		if !dup {
			seen[key] = len(merged)
			merged = append(merged, c)
			continue
		}
		existing := merged[i]
		switch {
		case isDefaultID(c) && !isDefaultID(existing):
			merged[i] = c
		case !isDefaultID(c) && !isDefaultID(existing) && c.Locked && !existing.Locked:
			merged[i] = c
		}
	}

	rank := func(c models.Category) int {
		if _, idx, ok := models.DefaultCategory(c.Name); ok {
			return idx
		}
		return len(defaults)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return rank(merged[i]) < rank(merged[j])
	})

	return merged, !slices.Equal(merged, persisted)
}
