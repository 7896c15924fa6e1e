// Command genmock generates mock log sheet workbooks for local runs and
// test fixtures. It writes the same FORMATTED and _AIRCRAFT sheets a real
// submission carries, so the generated files flow through the full
// collate-and-sync path unchanged.
//
// Usage:
//
//	go run ./cmd/genmock -out testdata/sheets -count 4
//	go run ./cmd/genmock -out testdata/sheets -count 4 -broken
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"
)

var baseDate = time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

var commanders = []string{"Hitchcock", "Powell", "Lean", "Reed", "Anderson"}
var pilots = []string{"Cargill", "Dunbar", "Hayes", "Ogilvy", ""}
var duties = []string{"AGT", "GIC", "SCT", "U/T", "QGI", "G/S", "AEF"}
var tails = []string{"ZE123", "ZE456", "ZE789"}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output directory for generated workbooks")
	count := flag.Int("count", 3, "number of workbooks to generate")
	broken := flag.Bool("broken", false, "also generate one workbook with a malformed primary sheet")
	seed := flag.Int64("seed", 1, "random seed for reproducible fixtures")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}
	if err := os.MkdirAll(*out, 0o755); err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(*seed))

	for i := 0; i < *count; i++ {
		date := baseDate.AddDate(0, 0, i*7)
		name := fmt.Sprintf("2965D_%s_%s.xlsx", date.Format("060102"), tails[i%len(tails)])
		path := filepath.Join(*out, name)
		if err := writeSheet(path, date, rng); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
		log.Printf("wrote %s", path)
	}

	if *broken {
		path := filepath.Join(*out, "2965D_250401_ZE999.xlsx")
		if err := writeBrokenSheet(path); err != nil {
			return fmt.Errorf("writing broken sheet: %w", err)
		}
		log.Printf("wrote %s (malformed)", path)
	}

	log.Printf("done: %d workbooks", *count)
	return nil
}

func writeSheet(path string, date time.Time, rng *rand.Rand) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), "FORMATTED")
	header := []interface{}{
		"AircraftCommander", "2ndPilot", "Duty", "TakeOffTime", "LandingTime",
		"FlightTime", "SPC", "PLF", "Aircraft", "Date", "P1", "P2",
	}
	if err := f.SetSheetRow("FORMATTED", "A1", &header); err != nil {
		return err
	}

	launches := 6 + rng.Intn(10)
	takeoff := date.Add(9 * time.Hour)
	for i := 0; i < launches; i++ {
		takeoff = takeoff.Add(time.Duration(5+rng.Intn(20)) * time.Minute)
		flight := 4 + rng.Intn(25)
		landing := takeoff.Add(time.Duration(flight) * time.Minute)
		row := []interface{}{
			commanders[rng.Intn(len(commanders))],
			pilots[rng.Intn(len(pilots))],
			duties[rng.Intn(len(duties))],
			takeoff.Format("2006-01-02 15:04:05"),
			landing.Format("2006-01-02 15:04:05"),
			flight,
			rng.Intn(4),
			rng.Intn(3) == 0,
			tails[rng.Intn(len(tails))],
			date.Format("2006-01-02"),
			rng.Intn(2) == 0,
			rng.Intn(2) == 0,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow("FORMATTED", cell, &row); err != nil {
			return err
		}
		takeoff = landing
	}

	if _, err := f.NewSheet("_AIRCRAFT"); err != nil {
		return err
	}
	utilHeader := []interface{}{"Date", "Aircraft", "Launches After", "Hours After"}
	if err := f.SetSheetRow("_AIRCRAFT", "A1", &utilHeader); err != nil {
		return err
	}
	for i, tail := range tails {
		hours := 200 + rng.Intn(800)
		row := []interface{}{
			date.Format("2006-01-02"),
			tail,
			1000 + rng.Intn(9000),
			fmt.Sprintf("%d:%02d:00", hours, rng.Intn(60)),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow("_AIRCRAFT", cell, &row); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

// writeBrokenSheet produces a workbook whose primary sheet is missing a
// required column, to exercise the skip-and-warn path.
func writeBrokenSheet(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), "FORMATTED")
	header := []interface{}{"AircraftCommander", "Duty", "Aircraft", "Date"}
	if err := f.SetSheetRow("FORMATTED", "A1", &header); err != nil {
		return err
	}
	row := []interface{}{"Hitchcock", "AGT", "ZE123", "2025-04-01"}
	if err := f.SetSheetRow("FORMATTED", "A2", &row); err != nil {
		return err
	}
	return f.SaveAs(path)
}
