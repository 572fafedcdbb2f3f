package services

import (
	"context"
	"fmt"
	"slices"

	"github.com/chrisdutt24/lifeadmin/internal/client/models"
	"github.com/chrisdutt24/lifeadmin/internal/client/storage"
)

// SettingsService stores display and notification preferences. Values are
// device-wide, not per user.
type SettingsService interface {
	DateTime(ctx context.Context) models.DateTimeSettings
	SetDateTime(ctx context.Context, s models.DateTimeSettings) (models.DateTimeSettings, error)
	Notifications(ctx context.Context) models.NotificationSettings
	SetDeadlinePopup(ctx context.Context, enabled bool) error
	SetAppointmentReminders(ctx context.Context, enabled bool) error
	DismissedDeadlines(ctx context.Context) []string
	DismissDeadlines(ctx context.Context, ids ...string) error
	ResetDismissedDeadlines(ctx context.Context) error
}

type settingsService struct {
	store *storage.JSONStore
}

func NewSettingsService(store *storage.JSONStore) SettingsService {
	return &settingsService{store: store}
}

func (s *settingsService) DateTime(ctx context.Context) models.DateTimeSettings {
	var v models.DateTimeSettings
	if found, err := s.store.Load(ctx, storage.KeyDateTimeSettings, &v); err != nil || !found {
		return models.DefaultDateTimeSettings()
	}
	return v.Normalized()
}

func (s *settingsService) SetDateTime(ctx context.Context, v models.DateTimeSettings) (models.DateTimeSettings, error) {
	v = v.Normalized()
	if err := s.store.Save(ctx, storage.KeyDateTimeSettings, v); err != nil {
		return models.DateTimeSettings{}, fmt.Errorf("save date settings: %w", err)
	}
	return v, nil
}

func (s *settingsService) flag(ctx context.Context, key string, def bool) bool {
	var v bool
	if found, err := s.store.Load(ctx, key, &v); err != nil || !found {
		return def
	}
	return v
}

func (s *settingsService) Notifications(ctx context.Context) models.NotificationSettings {
	def := models.DefaultNotificationSettings()
	return models.NotificationSettings{
		DeadlinePopupEnabled:        s.flag(ctx, storage.KeyDeadlinePopup, def.DeadlinePopupEnabled),
		AppointmentRemindersEnabled: s.flag(ctx, storage.KeyAppointmentReminders, def.AppointmentRemindersEnabled),
	}
}

func (s *settingsService) SetDeadlinePopup(ctx context.Context, enabled bool) error {
	if err := s.store.Save(ctx, storage.KeyDeadlinePopup, enabled); err != nil {
		return fmt.Errorf("save deadline popup setting: %w", err)
	}
	return nil
}

func (s *settingsService) SetAppointmentReminders(ctx context.Context, enabled bool) error {
	if err := s.store.Save(ctx, storage.KeyAppointmentReminders, enabled); err != nil {
		return fmt.Errorf("save appointment reminder setting: %w", err)
	}
	return nil
}

func (s *settingsService) DismissedDeadlines(ctx context.Context) []string {
	ids, _, err := storage.LoadList[string](ctx, s.store, storage.KeyDismissedDeadlines)
	if err != nil {
		return nil
	}
	return ids
}

func (s *settingsService) DismissDeadlines(ctx context.Context, ids ...string) error {
	current := s.DismissedDeadlines(ctx)
	for _, id := range ids {
		if id != "" && !slices.Contains(current, id) {
			current = append(current, id)
		}
	}
	if err := s.store.Save(ctx, storage.KeyDismissedDeadlines, current); err != nil {
		return fmt.Errorf("save dismissed deadlines: %w", err)
	}
	return nil
}

func (s *settingsService) ResetDismissedDeadlines(ctx context.Context) error {
	if err := s.store.Remove(ctx, storage.KeyDismissedDeadlines); err != nil {
		return fmt.Errorf("reset dismissed deadlines: %w", err)
	}
	return nil
}
