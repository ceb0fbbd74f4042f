package domain

import "time"

// OfflineMap records a map region the device has downloaded for use without
// connectivity. Name is the primary key; Size is reported by the device as-is.
type OfflineMap struct {
	Name      string
	Size      string
	AreaName  string
	CreatedAt time.Time
}
