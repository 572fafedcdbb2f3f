package models

// EntryView pairs an entry with the group its category resolves to.
type EntryView struct {
	Entry
	Group Group `json:"group"`
}

// Overview is the landing summary for a signed-in user.
type Overview struct {
	ActiveContracts      int         `json:"activeContracts"`
	Deadlines            []EntryView `json:"deadlines"`
	UpcomingAppointments []EntryView `json:"upcomingAppointments"`
	RecentDocuments      []Document  `json:"recentDocuments"`
	// DeadlinePopup lists deadlines the user has not dismissed yet; empty
	// when the popup is switched off.
	DeadlinePopup []EntryView `json:"deadlinePopup"`

	ActiveContractEntries      []EntryView `json:"activeContractEntries"`
	ArchivedContractEntries    []EntryView `json:"archivedContractEntries"`
	ActiveAppointmentEntries   []EntryView `json:"activeAppointmentEntries"`
	ArchivedAppointmentEntries []EntryView `json:"archivedAppointmentEntries"`
}
