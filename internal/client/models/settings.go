package models

import "time"

// DateFormat selects day/month ordering for display.
type DateFormat string

const (
	DateFormatEU DateFormat = "DD.MM.YYYY"
	DateFormatUS DateFormat = "MM/DD/YYYY"
)

// TimeFormat selects the clock style for display.
type TimeFormat string

const (
	TimeFormat24 TimeFormat = "24"
	TimeFormat12 TimeFormat = "12"
)

// DateTimeSettings controls how dates and times are printed.
type DateTimeSettings struct {
	DateFormat DateFormat `json:"dateFormat"`
	TimeFormat TimeFormat `json:"timeFormat"`
}

// DefaultDateTimeSettings returns the settings used until the user changes them.
func DefaultDateTimeSettings() DateTimeSettings {
	return DateTimeSettings{DateFormat: DateFormatEU, TimeFormat: TimeFormat24}
}

// Normalized replaces unknown values with defaults.
func (s DateTimeSettings) Normalized() DateTimeSettings {
	def := DefaultDateTimeSettings()
	if s.DateFormat != DateFormatEU && s.DateFormat != DateFormatUS {
		s.DateFormat = def.DateFormat
	}
	if s.TimeFormat != TimeFormat24 && s.TimeFormat != TimeFormat12 {
		s.TimeFormat = def.TimeFormat
	}
	return s
}

func (s DateTimeSettings) dateLayout() string {
	if s.DateFormat == DateFormatUS {
		return "01/02/2006"
	}
	return "02.01.2006"
}

func (s DateTimeSettings) timeLayout() string {
	if s.TimeFormat == TimeFormat12 {
		return "03:04 PM"
	}
	return "15:04"
}

// FormatDate prints the calendar date of t. Zero times print as "".
func (s DateTimeSettings) FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(s.dateLayout())
}

// FormatTime prints the wall-clock time of t.
func (s DateTimeSettings) FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(s.timeLayout())
}

// FormatDateTime prints date and time separated by a comma.
func (s DateTimeSettings) FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(s.dateLayout() + ", " + s.timeLayout())
}

// NotificationSettings are the reminder toggles.
type NotificationSettings struct {
	DeadlinePopupEnabled        bool `json:"deadlinePopupEnabled"`
	AppointmentRemindersEnabled bool `json:"appointmentRemindersEnabled"`
}

// DefaultNotificationSettings has the deadline popup on and reminders off.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{DeadlinePopupEnabled: true}
}
