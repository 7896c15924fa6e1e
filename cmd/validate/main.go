// Command validate checks every log sheet in a directory without touching
// the database. It runs the same parse, validate, and normalize sequence
// the ETL uses and prints a per-file report, exiting non-zero if any real
// submission fails.
//
// Usage:
//
//	go run ./cmd/validate -dir "/path/to/log sheets"
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/glidewing/flight-log-etl/internal/adapter/xlsx"
	"github.com/glidewing/flight-log-etl/internal/collate"
	"github.com/glidewing/flight-log-etl/internal/domain"
	"github.com/glidewing/flight-log-etl/internal/sheet"
)

func main() {
	dir := flag.String("dir", "", "directory containing log sheet workbooks")
	flag.Parse()

	if *dir == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*dir); code != 0 {
		os.Exit(code)
	}
}

func run(dir string) int {
	paths, err := filepath.Glob(filepath.Join(dir, collate.FilePattern))
	if err != nil {
		fmt.Fprintf(os.Stderr, "scan %s: %v\n", dir, err)
		return 1
	}
	sort.Strings(paths)
	if len(paths) == 0 {
		fmt.Fprintf(os.Stderr, "no log sheets found in %s\n", dir)
		return 1
	}

	opener := xlsx.Opener{}
	failed := 0
	launches := 0
	utilization := 0

	for _, path := range paths {
		name := filepath.Base(path)
		if name == collate.PlaceholderName {
			fmt.Printf("SKIP  %s (placeholder)\n", name)
			continue
		}

		res, err := checkFile(opener, path)
		if err != nil {
			fmt.Printf("FAIL  %s: %v\n", name, err)
			failed++
			continue
		}

		launches += len(res.Launches)
		utilization += len(res.Utilization)
		switch {
		case res.UtilizationErr != nil:
			fmt.Printf("OK    %s: %d launches (aircraft info dropped: %v)\n",
				name, len(res.Launches), res.UtilizationErr)
		case res.HasUtilization:
			fmt.Printf("OK    %s: %d launches, %d aircraft readings\n",
				name, len(res.Launches), len(res.Utilization))
		default:
			fmt.Printf("OK    %s: %d launches\n", name, len(res.Launches))
		}
	}

	fmt.Printf("\n%d files, %d failed, %d launches, %d aircraft readings\n",
		len(paths), failed, launches, utilization)
	if failed > 0 {
		return 1
	}
	return 0
}

// checkFile mirrors the collator's per-file sequence. Utilization
// validation failures are reported but do not fail the file.
func checkFile(opener xlsx.Opener, path string) (*sheet.ParseResult, error) {
	wb, err := opener.Open(path)
	if err != nil {
		return nil, err
	}
	res, err := sheet.Parse(wb)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateLaunches(res.Launches); err != nil {
		return nil, err
	}
	res.Launches = domain.NormalizeLaunches(res.Launches)

	if res.HasUtilization && res.UtilizationErr == nil {
		if err := domain.ValidateUtilization(res.Utilization); err != nil {
			res.UtilizationErr = err
			res.Utilization = nil
		}
	}
	return res, nil
}
