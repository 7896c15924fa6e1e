package domain

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// dutyAliases maps legacy or shorthand duty codes to their current form.
// Applied after upper-casing, so the lookup is effectively case-insensitive.
var dutyAliases = map[string]string{
	"GIC":  "GIF",
	"SGS":  "G/S",
	"GWGT": "AGT",
	"U/T":  "SCT U/T",
	"QGI":  "SCT QGI",
}

// NormalizeLaunches canonicalizes a launch batch: placeholder rows are
// dropped, duty codes are aliased, person names are title-cased and
// trimmed, and the batch is stably sorted ascending by takeoff time with
// null timestamps first. The function is pure and idempotent; records are
// never mutated after it returns.
func NormalizeLaunches(launches []Launch) []Launch {
	out := make([]Launch, 0, len(launches))
	for _, l := range launches {
		// "0" is the spreadsheet default for an untouched commander cell.
		if strings.TrimSpace(l.AircraftCommander) == "0" {
			continue
		}
		// A takeoff at exactly midnight is a template row, not a launch.
		if isMidnight(l.TakeOffTime) {
			continue
		}

		l.Duty = NormalizeDuty(l.Duty)
		l.AircraftCommander = titleName(l.AircraftCommander)
		l.SecondPilot = titleName(l.SecondPilot)
		out = append(out, l)
	}

	// The zero time sorts before any real timestamp, so null takeoff
	// times land first without a special case.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TakeOffTime.Before(out[j].TakeOffTime)
	})
	return out
}

// NormalizeDuty upper-cases a duty code and applies the alias table.
func NormalizeDuty(duty string) string {
	duty = strings.ToUpper(strings.TrimSpace(duty))
	if alias, ok := dutyAliases[duty]; ok {
		return alias
	}
	return duty
}

func titleName(name string) string {
	return cases.Title(language.BritishEnglish).String(strings.TrimSpace(name))
}

func isMidnight(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	h, m, s := t.Clock()
	return h == 0 && m == 0 && s == 0
}
