// Package models defines the life-admin domain types: categories, entries,
// documents, users and display settings.
package models

import (
	"strings"

	"github.com/google/uuid"
)

// Group is the coarse partition a category belongs to.
type Group string

const (
	GroupContracts    Group = "contracts"
	GroupAppointments Group = "appointments"
)

// Valid reports whether g is one of the known groups.
func (g Group) Valid() bool {
	return g == GroupContracts || g == GroupAppointments
}

// ParseGroup accepts the group name in any case and a few short aliases.
func ParseGroup(s string) (Group, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "contracts", "contract", "c":
		return GroupContracts, true
	case "appointments", "appointment", "a":
		return GroupAppointments, true
	}
	return "", false
}

// EntryType mirrors the domain of the category an entry belongs to.
type EntryType string

const (
	EntryTypeContract    EntryType = "contract"
	EntryTypeInsurance   EntryType = "insurance"
	EntryTypeAppointment EntryType = "appointment"
	EntryTypeHealth      EntryType = "health"
	EntryTypeFinance     EntryType = "finance"
	EntryTypePersonal    EntryType = "personal"
	EntryTypeEvent       EntryType = "event"
	EntryTypeFriend      EntryType = "friend"
	EntryTypeWork        EntryType = "work"
)

// GroupForType is the fallback group for entries whose category is unknown.
func GroupForType(t EntryType) Group {
	switch t {
	case EntryTypeContract, EntryTypeInsurance:
		return GroupContracts
	default:
		return GroupAppointments
	}
}

// DefaultTypeForGroup is the entry type given to user-created categories.
func DefaultTypeForGroup(g Group) EntryType {
	if g == GroupContracts {
		return EntryTypeContract
	}
	return EntryTypeAppointment
}

const (
	// DefaultIcon is used for categories created without an icon.
	DefaultIcon = "fa-tag"
	// FallbackCategoryName receives entries of deleted categories.
	FallbackCategoryName = "Personal"
	// UntitledCategoryName replaces blank persisted category names.
	UntitledCategoryName = "Untitled"
	// GeneralCategoryName replaces the legacy "Contracts"/"Contract" names.
	GeneralCategoryName = "General"
)

// Category labels entries and decides their group and default type.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Group     Group     `json:"group"`
	EntryType EntryType `json:"entryType"`
	Icon      string    `json:"icon"`
	Locked    bool      `json:"locked"`
}

// CategoryInput is the payload for creating a category.
type CategoryInput struct {
	Name  string
	Group Group
	Icon  string
}

// CategoryPatch carries optional category changes; nil fields are kept.
type CategoryPatch struct {
	Name  *string
	Group *Group
	Icon  *string
}

var defaultCategories = []Category{
	{ID: "contracts", Name: "General", Group: GroupContracts, EntryType: EntryTypeContract, Icon: "fa-file-lines", Locked: true},
	{ID: "rent", Name: "Rent", Group: GroupContracts, EntryType: EntryTypeContract, Icon: "fa-house", Locked: true},
	{ID: "insurance", Name: "Insurance", Group: GroupContracts, EntryType: EntryTypeInsurance, Icon: "fa-shield-halved", Locked: true},
	{ID: "internet", Name: "Internet", Group: GroupContracts, EntryType: EntryTypeContract, Icon: "fa-wifi", Locked: true},
	{ID: "sim-card", Name: "SIM Card", Group: GroupContracts, EntryType: EntryTypeContract, Icon: "fa-sim-card", Locked: true},
	{ID: "electricity", Name: "Electricity", Group: GroupContracts, EntryType: EntryTypeContract, Icon: "fa-bolt", Locked: true},
	{ID: "subscriptions", Name: "Subscriptions", Group: GroupContracts, EntryType: EntryTypeContract, Icon: "fa-arrows-rotate", Locked: true},
	{ID: "appointments", Name: "Appointments", Group: GroupAppointments, EntryType: EntryTypeAppointment, Icon: "fa-calendar-check", Locked: true},
	{ID: "health", Name: "Health", Group: GroupAppointments, EntryType: EntryTypeHealth, Icon: "fa-heart-pulse", Locked: true},
	{ID: "finance", Name: "Finance", Group: GroupContracts, EntryType: EntryTypeFinance, Icon: "fa-coins", Locked: true},
	{ID: "personal", Name: "Personal", Group: GroupAppointments, EntryType: EntryTypePersonal, Icon: "fa-user", Locked: true},
	{ID: "events", Name: "Events", Group: GroupAppointments, EntryType: EntryTypeEvent, Icon: "fa-calendar-day", Locked: true},
	{ID: "friends", Name: "Friends", Group: GroupAppointments, EntryType: EntryTypeFriend, Icon: "fa-user-group", Locked: true},
	{ID: "work", Name: "Work", Group: GroupAppointments, EntryType: EntryTypeWork, Icon: "fa-briefcase", Locked: true},
}

// DefaultCategories returns a fresh copy of the built-in categories in their
// canonical order.
func DefaultCategories() []Category {
	out := make([]Category, len(defaultCategories))
	copy(out, defaultCategories)
	return out
}

// DefaultCategory looks a built-in category up by name, case-insensitively.
// The second result is its position in the canonical order.
func DefaultCategory(name string) (Category, int, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, c := range defaultCategories {
		if strings.ToLower(c.Name) == key {
			return c, i, true
		}
	}
	return Category{}, -1, false
}

// NormalizeCategoryName maps legacy labels to their current name.
func NormalizeCategoryName(name string) string {
	switch strings.TrimSpace(name) {
	case "Contracts", "Contract":
		return GeneralCategoryName
	}
	return name
}

// CategoryIDForName derives a stable id for records persisted without one,
// so loading the same data twice yields the same ids.
func CategoryIDForName(name string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(strings.ToLower(strings.TrimSpace(name)))).String()
}

// NormalizeCategory trims the name, replaces legacy labels and fills the
// fields older records may lack. Built-in names are matched exactly here.
func NormalizeCategory(c Category) Category {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		c.Name = UntitledCategoryName
	}
	c.Name = NormalizeCategoryName(c.Name)
	if c.ID == "" {
		c.ID = CategoryIDForName(c.Name)
	}

	var def *Category
	for i := range defaultCategories {
		if defaultCategories[i].Name == c.Name {
			def = &defaultCategories[i]
			break
		}
	}

	if !c.Group.Valid() {
		c.Group = GroupAppointments
		if def != nil {
			c.Group = def.Group
		}
	}
	if c.EntryType == "" {
		c.EntryType = DefaultTypeForGroup(c.Group)
		if def != nil {
			c.EntryType = def.EntryType
		}
	}
	if c.Icon == "" {
		c.Icon = DefaultIcon
		if def != nil {
			c.Icon = def.Icon
		}
	}
	if def != nil {
		c.Locked = true
	}
	return c
}
