package domain

import (
	"fmt"
	"strings"
)

const (
	// MaxFlightTime is the longest plausible single sortie in minutes.
	// Gliding sorties beyond this are data-entry errors, not flights.
	MaxFlightTime = 240

	// TailMarker is the fleet tail-number prefix. A utilization table with
	// no aircraft carrying it was filled in against the wrong airframes.
	TailMarker = "ZE"

	maxLaunchesAfter    = 100_000_000
	maxHoursAfterMinute = 100_000 * 60
)

// ValidationReason identifies which batch invariant was violated.
type ValidationReason string

const (
	ReasonEmptyBatch               ValidationReason = "log sheet is empty"
	ReasonNullTimestamp            ValidationReason = "date or time column contains null values"
	ReasonLandingBeforeTakeoff     ValidationReason = "landing time is before takeoff time"
	ReasonExcessiveFlightTime      ValidationReason = "flight time column contains a huge value"
	ReasonMissingAircraft          ValidationReason = "aircraft column has no aircraft"
	ReasonEmptyUtilization         ValidationReason = "aircraft information is empty"
	ReasonMissingUtilizationValue  ValidationReason = "aircraft information contains empty values"
	ReasonMissingTailMarker        ValidationReason = "no aircraft name contains the fleet tail marker"
	ReasonLaunchesAfterOutOfRange  ValidationReason = "difference in aircraft launches is too large"
	ReasonHoursAfterOutOfRange     ValidationReason = "difference in aircraft hours is too large"
)

// ValidationError reports a domain-invariant violation for a whole batch.
// Validation is fail-closed: one bad row disqualifies the batch, because
// partial records cannot be reasoned about downstream.
type ValidationError struct {
	Reason ValidationReason
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return string(e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Detail)
}

// ValidateLaunches checks a parsed launch batch against the domain
// invariants. It returns a *ValidationError naming the first violation,
// or nil when the batch is sound.
func ValidateLaunches(launches []Launch) error {
	if len(launches) == 0 {
		return &ValidationError{Reason: ReasonEmptyBatch}
	}

	for i, l := range launches {
		if l.Date.IsZero() || l.TakeOffTime.IsZero() || l.LandingTime.IsZero() {
			return &ValidationError{Reason: ReasonNullTimestamp, Detail: rowDetail(i)}
		}
		if l.LandingTime.Before(l.TakeOffTime) {
			return &ValidationError{Reason: ReasonLandingBeforeTakeoff, Detail: rowDetail(i)}
		}
		if l.FlightTime > MaxFlightTime {
			return &ValidationError{
				Reason: ReasonExcessiveFlightTime,
				Detail: fmt.Sprintf("row %d: %d min", i+1, l.FlightTime),
			}
		}
		// Spreadsheet formulas default an empty aircraft cell to 0.
		if l.Aircraft == "" || l.Aircraft == "0" {
			return &ValidationError{Reason: ReasonMissingAircraft, Detail: rowDetail(i)}
		}
	}
	return nil
}

// ValidateUtilization checks a parsed utilization batch. A failure drops
// only the utilization contribution of the source file, never its launches.
func ValidateUtilization(utilization []AircraftUtilization) error {
	if len(utilization) == 0 {
		return &ValidationError{Reason: ReasonEmptyUtilization}
	}

	marker := false
	for i, u := range utilization {
		if u.Date.IsZero() || u.Aircraft == "" {
			return &ValidationError{Reason: ReasonMissingUtilizationValue, Detail: rowDetail(i)}
		}
		if strings.Contains(u.Aircraft, TailMarker) {
			marker = true
		}
		if u.LaunchesAfter > maxLaunchesAfter {
			return &ValidationError{
				Reason: ReasonLaunchesAfterOutOfRange,
				Detail: fmt.Sprintf("row %d: %d", i+1, u.LaunchesAfter),
			}
		}
		if u.HoursAfter <= 0 || u.HoursAfter > maxHoursAfterMinute {
			return &ValidationError{
				Reason: ReasonHoursAfterOutOfRange,
				Detail: fmt.Sprintf("row %d: %d min", i+1, u.HoursAfter),
			}
		}
	}
	if !marker {
		return &ValidationError{Reason: ReasonMissingTailMarker}
	}
	return nil
}

func rowDetail(i int) string {
	return fmt.Sprintf("row %d", i+1)
}
