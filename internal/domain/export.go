package domain

// ExportRow is a single row in the tree export: one row per tree, flattened
// to the values a coordinator needs in a spreadsheet.
//
// Latitude and Longitude are the tree's current recorded location in whatever
// form the backend stored it. LastUpdateAt is the created_at of the newest
// update entry, empty when the history is absent or unreadable.
type ExportRow struct {
	TreeID       string
	Name         string
	Nursery      bool
	Latitude     string
	Longitude    string
	UpdateCount  int
	LastUpdateAt string

	// PreviousLocations counts superseded coordinates in the location history.
	PreviousLocations int
}
