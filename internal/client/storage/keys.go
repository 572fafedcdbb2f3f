package storage

// Keys of the persisted collections. Per-user collections are suffixed with
// ".<userID>" by UserKey.
const (
	KeyEntries    = "lifeAdmin.entries"
	KeyDocuments  = "lifeAdmin.documents"
	KeyCategories = "lifeAdmin.categories"
	KeyUsers      = "lifeAdmin.users"
	KeySession    = "lifeAdmin.user"

	KeyDateTimeSettings     = "lifeAdmin.settings.dateTime"
	KeyDeadlinePopup        = "lifeAdmin.notifications.deadlinePopupEnabled"
	KeyAppointmentReminders = "lifeAdmin.notifications.appointmentRemindersEnabled"
	KeyDismissedDeadlines   = "lifeAdmin.deadlinePopupDismissedIds"
)

// UserKey scopes base to a single user.
func UserKey(base, userID string) string {
	return base + "." + userID
}

// UserCollectionKeys are the per-user keys removed with an account.
func UserCollectionKeys(userID string) []string {
	return []string{
		UserKey(KeyEntries, userID),
		UserKey(KeyDocuments, userID),
		UserKey(KeyCategories, userID),
	}
}
