package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func goodLaunch() Launch {
	return Launch{
		AircraftCommander: "Hitchcock",
		SecondPilot:       "Cargill",
		Duty:              "AGT",
		TakeOffTime:       time.Date(2025, 3, 1, 9, 15, 0, 0, time.UTC),
		LandingTime:       time.Date(2025, 3, 1, 9, 27, 0, 0, time.UTC),
		FlightTime:        12,
		Aircraft:          "ZE123",
		Date:              time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestValidateLaunches(t *testing.T) {
	t.Run("valid batch passes", func(t *testing.T) {
		assert.NoError(t, ValidateLaunches([]Launch{goodLaunch(), goodLaunch()}))
	})

	t.Run("empty batch fails", func(t *testing.T) {
		err := ValidateLaunches(nil)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, ReasonEmptyBatch, verr.Reason)
	})

	t.Run("null timestamp fails", func(t *testing.T) {
		l := goodLaunch()
		l.TakeOffTime = time.Time{}
		err := ValidateLaunches([]Launch{goodLaunch(), l})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, ReasonNullTimestamp, verr.Reason)
		assert.Contains(t, verr.Error(), "row 2")
	})

	t.Run("landing before takeoff fails", func(t *testing.T) {
		l := goodLaunch()
		l.LandingTime = l.TakeOffTime.Add(-time.Minute)
		err := ValidateLaunches([]Launch{l})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, ReasonLandingBeforeTakeoff, verr.Reason)
	})

	t.Run("landing equal to takeoff passes", func(t *testing.T) {
		l := goodLaunch()
		l.LandingTime = l.TakeOffTime
		assert.NoError(t, ValidateLaunches([]Launch{l}))
	})

	t.Run("flight time over limit fails", func(t *testing.T) {
		l := goodLaunch()
		l.FlightTime = 300
		err := ValidateLaunches([]Launch{l})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, ReasonExcessiveFlightTime, verr.Reason)
	})

	t.Run("flight time at limit passes", func(t *testing.T) {
		l := goodLaunch()
		l.FlightTime = MaxFlightTime
		l.LandingTime = l.TakeOffTime.Add(MaxFlightTime * time.Minute)
		assert.NoError(t, ValidateLaunches([]Launch{l}))
	})

	t.Run("defaulted aircraft cell fails", func(t *testing.T) {
		for _, aircraft := range []string{"", "0"} {
			l := goodLaunch()
			l.Aircraft = aircraft
			err := ValidateLaunches([]Launch{l})
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, ReasonMissingAircraft, verr.Reason)
		}
	})
}

func goodUtilization() AircraftUtilization {
	return AircraftUtilization{
		Date:          time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Aircraft:      "ZE123",
		LaunchesAfter: 4120,
		HoursAfter:    512*60 + 30,
	}
}

func TestValidateUtilization(t *testing.T) {
	t.Run("valid batch passes", func(t *testing.T) {
		assert.NoError(t, ValidateUtilization([]AircraftUtilization{goodUtilization()}))
	})

	t.Run("empty batch fails", func(t *testing.T) {
		err := ValidateUtilization(nil)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, ReasonEmptyUtilization, verr.Reason)
	})

	t.Run("missing date fails", func(t *testing.T) {
		u := goodUtilization()
		u.Date = time.Time{}
		err := ValidateUtilization([]AircraftUtilization{u})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, ReasonMissingUtilizationValue, verr.Reason)
	})

	t.Run("missing aircraft fails", func(t *testing.T) {
		u := goodUtilization()
		u.Aircraft = ""
		err := ValidateUtilization([]AircraftUtilization{u})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, ReasonMissingUtilizationValue, verr.Reason)
	})

	t.Run("no fleet tail marker fails", func(t *testing.T) {
		u := goodUtilization()
		u.Aircraft = "GX999"
		err := ValidateUtilization([]AircraftUtilization{u})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, ReasonMissingTailMarker, verr.Reason)
	})

	t.Run("one marked aircraft is enough", func(t *testing.T) {
		other := goodUtilization()
		other.Aircraft = "GX999"
		assert.NoError(t, ValidateUtilization([]AircraftUtilization{goodUtilization(), other}))
	})

	t.Run("launches after out of range fails", func(t *testing.T) {
		u := goodUtilization()
		u.LaunchesAfter = 100_000_001
		err := ValidateUtilization([]AircraftUtilization{u})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, ReasonLaunchesAfterOutOfRange, verr.Reason)
	})

	t.Run("hours after out of range fails", func(t *testing.T) {
		for _, minutes := range []int64{0, -5, 100_000*60 + 1} {
			u := goodUtilization()
			u.HoursAfter = minutes
			err := ValidateUtilization([]AircraftUtilization{u})
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, ReasonHoursAfterOutOfRange, verr.Reason)
		}
	})
}
