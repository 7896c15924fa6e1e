package domain

import "time"

// Launch is one flight event (a sortie) extracted from a log sheet.
// BSON field names match the store schema produced by the legacy
// submission pipeline and must not change without a data migration.
type Launch struct {
	AircraftCommander string    `bson:"AircraftCommander" json:"aircraft_commander"`
	SecondPilot       string    `bson:"SecondPilot" json:"second_pilot"`
	Duty              string    `bson:"Duty" json:"duty"`
	TakeOffTime       time.Time `bson:"TakeOffTime" json:"take_off_time"`
	LandingTime       time.Time `bson:"LandingTime" json:"landing_time"`
	FlightTime        uint16    `bson:"FlightTime" json:"flight_time"` // minutes
	SPC               uint8     `bson:"SPC" json:"spc"`
	PLF               bool      `bson:"PLF" json:"plf"`
	Aircraft          string    `bson:"Aircraft" json:"aircraft"`
	Date              time.Time `bson:"Date" json:"date"`
	P1                bool      `bson:"P1" json:"p1"`
	P2                bool      `bson:"P2" json:"p2"`
}

// Key returns the composite replacement key for a launch. A new submission
// always carries a complete (Date, Aircraft) slice, so stored rows sharing
// this key are superseded wholesale, never field-merged.
func (l Launch) Key() RecordKey {
	return RecordKey{Date: l.Date, Aircraft: l.Aircraft}
}

// AircraftUtilization is one cumulative launches/hours reading per aircraft
// per reporting date, taken from the optional secondary table of a log sheet.
// HoursAfter is stored in whole minutes.
type AircraftUtilization struct {
	Date          time.Time `bson:"Date" json:"date"`
	Aircraft      string    `bson:"Aircraft" json:"aircraft"`
	LaunchesAfter uint32    `bson:"Launches After" json:"launches_after"`
	HoursAfter    int64     `bson:"Hours After" json:"hours_after"`
}

// Key returns the composite replacement key for a utilization reading.
func (u AircraftUtilization) Key() RecordKey {
	return RecordKey{Date: u.Date, Aircraft: u.Aircraft}
}

// RecordKey is the composite key the sync engine groups and deletes by.
type RecordKey struct {
	Date     time.Time
	Aircraft string
}

// Keyed is implemented by every record type synchronized by composite-key
// replacement.
type Keyed interface {
	Key() RecordKey
}

// Batch is the canonical output of collation: validated, normalized records
// from every surviving log sheet, ready for persistence.
type Batch struct {
	Launches    []Launch
	Utilization []AircraftUtilization
}
