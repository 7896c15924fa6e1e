package sheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubWorkbook serves tables from a map, standing in for the xlsx adapter.
type stubWorkbook map[string]*Table

func (w stubWorkbook) Table(name string) (*Table, bool) {
	t, ok := w[name]
	return t, ok
}

var launchHeader = []string{
	"AircraftCommander", "2ndPilot", "Duty", "TakeOffTime", "LandingTime",
	"FlightTime", "SPC", "PLF", "Aircraft", "Date", "P1", "P2",
}

func launchTable(rows ...[]string) *Table {
	return &Table{Name: LaunchSheet, Header: launchHeader, Rows: rows}
}

func utilizationTable(rows ...[]string) *Table {
	return &Table{
		Name:   UtilizationSheet,
		Header: []string{"Date", "Aircraft", "Launches After", "Hours After"},
		Rows:   rows,
	}
}

func TestParse(t *testing.T) {
	t.Run("launches only", func(t *testing.T) {
		wb := stubWorkbook{
			LaunchSheet: launchTable(
				[]string{"Hitchcock", "Cargill", "AGT", "2025-03-01 09:15:00", "2025-03-01 09:27:00", "12", "1", "TRUE", "ZE123", "2025-03-01", "1", "0"},
			),
		}
		res, err := Parse(wb)
		require.NoError(t, err)
		require.Len(t, res.Launches, 1)
		assert.False(t, res.HasUtilization)
		assert.Empty(t, res.Utilization)

		l := res.Launches[0]
		assert.Equal(t, "Hitchcock", l.AircraftCommander)
		assert.Equal(t, "Cargill", l.SecondPilot)
		assert.Equal(t, "AGT", l.Duty)
		assert.Equal(t, time.Date(2025, 3, 1, 9, 15, 0, 0, time.UTC), l.TakeOffTime)
		assert.Equal(t, time.Date(2025, 3, 1, 9, 27, 0, 0, time.UTC), l.LandingTime)
		assert.Equal(t, uint16(12), l.FlightTime)
		assert.Equal(t, uint8(1), l.SPC)
		assert.True(t, l.PLF)
		assert.Equal(t, "ZE123", l.Aircraft)
		assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), l.Date)
		assert.True(t, l.P1)
		assert.False(t, l.P2)
	})

	t.Run("serial date and time cells", func(t *testing.T) {
		// Serial 45717 is 2025-03-01; .5 is noon.
		wb := stubWorkbook{
			LaunchSheet: launchTable(
				[]string{"Hitchcock", "", "AGT", "45717.5", "45717.520833", "30", "0", "0", "ZE123", "45717", "0", "0"},
			),
		}
		res, err := Parse(wb)
		require.NoError(t, err)
		require.Len(t, res.Launches, 1)
		l := res.Launches[0]
		assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), l.Date)
		assert.Equal(t, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC), l.TakeOffTime)
		assert.Equal(t, time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC), l.LandingTime)
	})

	t.Run("empty cells default to zero values", func(t *testing.T) {
		wb := stubWorkbook{
			LaunchSheet: launchTable(
				[]string{"Hitchcock", "", "AGT", "", "", "", "", "", "ZE123", "2025-03-01", "", ""},
			),
		}
		res, err := Parse(wb)
		require.NoError(t, err)
		require.Len(t, res.Launches, 1)
		l := res.Launches[0]
		assert.True(t, l.TakeOffTime.IsZero())
		assert.True(t, l.LandingTime.IsZero())
		assert.Equal(t, uint16(0), l.FlightTime)
		assert.False(t, l.PLF)
	})

	t.Run("missing primary sheet fails", func(t *testing.T) {
		_, err := Parse(stubWorkbook{})
		var serr *SchemaError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, LaunchSheet, serr.Sheet)
	})

	t.Run("missing column fails", func(t *testing.T) {
		wb := stubWorkbook{
			LaunchSheet: {
				Name:   LaunchSheet,
				Header: []string{"AircraftCommander", "Duty", "Aircraft", "Date"},
				Rows:   [][]string{{"Hitchcock", "AGT", "ZE123", "2025-03-01"}},
			},
		}
		_, err := Parse(wb)
		var serr *SchemaError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, "2ndPilot", serr.Column)
		assert.Zero(t, serr.Row)
	})

	t.Run("malformed cell names column and row", func(t *testing.T) {
		wb := stubWorkbook{
			LaunchSheet: launchTable(
				[]string{"Hitchcock", "", "AGT", "2025-03-01 09:15:00", "2025-03-01 09:27:00", "12", "0", "0", "ZE123", "2025-03-01", "0", "0"},
				[]string{"Powell", "", "AGT", "not a time", "2025-03-01 10:00:00", "8", "0", "0", "ZE123", "2025-03-01", "0", "0"},
			),
		}
		_, err := Parse(wb)
		var serr *SchemaError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, "TakeOffTime", serr.Column)
		assert.Equal(t, 2, serr.Row)
	})

	t.Run("flight time overflow fails", func(t *testing.T) {
		wb := stubWorkbook{
			LaunchSheet: launchTable(
				[]string{"Hitchcock", "", "AGT", "2025-03-01 09:15:00", "2025-03-01 09:27:00", "70000", "0", "0", "ZE123", "2025-03-01", "0", "0"},
			),
		}
		_, err := Parse(wb)
		var serr *SchemaError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, "FlightTime", serr.Column)
	})

	t.Run("with utilization sheet", func(t *testing.T) {
		wb := stubWorkbook{
			LaunchSheet: launchTable(
				[]string{"Hitchcock", "", "AGT", "2025-03-01 09:15:00", "2025-03-01 09:27:00", "12", "0", "0", "ZE123", "2025-03-01", "0", "0"},
			),
			UtilizationSheet: utilizationTable(
				[]string{"2025-03-01", "ZE123", "4120", "512:30:00"},
			),
		}
		res, err := Parse(wb)
		require.NoError(t, err)
		assert.True(t, res.HasUtilization)
		require.NoError(t, res.UtilizationErr)
		require.Len(t, res.Utilization, 1)

		u := res.Utilization[0]
		assert.Equal(t, "ZE123", u.Aircraft)
		assert.Equal(t, uint32(4120), u.LaunchesAfter)
		assert.Equal(t, int64(512*60+30), u.HoursAfter)
	})

	t.Run("utilization failure is soft", func(t *testing.T) {
		wb := stubWorkbook{
			LaunchSheet: launchTable(
				[]string{"Hitchcock", "", "AGT", "2025-03-01 09:15:00", "2025-03-01 09:27:00", "12", "0", "0", "ZE123", "2025-03-01", "0", "0"},
			),
			UtilizationSheet: utilizationTable(
				[]string{"2025-03-01", "ZE123", "4120", ""},
			),
		}
		res, err := Parse(wb)
		require.NoError(t, err)
		assert.True(t, res.HasUtilization)
		require.Error(t, res.UtilizationErr)
		assert.Empty(t, res.Utilization)
		require.Len(t, res.Launches, 1)
	})
}

func TestParseElapsedMinutes(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"256:30:00", 256*60 + 30},
		{"256:30", 256*60 + 30},
		{"0:45:10", 45},
		{"10 days 16:30:00", 10*24*60 + 16*60 + 30},
		{"1.5", 36 * 60},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := parseElapsedMinutes(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("rejects garbage", func(t *testing.T) {
		for _, in := range []string{"abc", "10:99", "1:2:3:4", "x days 1:00"} {
			_, err := parseElapsedMinutes(in)
			assert.Error(t, err, in)
		}
	})
}
