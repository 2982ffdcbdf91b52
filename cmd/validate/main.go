// Command validate performs integrity checks on the tables written by
// cmd/batch: the events table and, optionally, the yearly timeliness table.
// It verifies the column layout, row uniqueness, composite-key consistency
// and reference-join completeness.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -events output/surveillance_events.csv \
//	  -timeliness output/timeliness_by_year.csv
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/couchcryptid/epi-surveillance-etl/internal/adapter/feed"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	eventsPath := flag.String("events", "", "path to the events CSV")
	timelinessPath := flag.String("timeliness", "", "path to the yearly timeliness CSV (optional)")
	flag.Parse()

	if *eventsPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*eventsPath, *timelinessPath); code != 0 {
		os.Exit(code)
	}
}

func run(eventsPath, timelinessPath string) int {
	fmt.Println("=== Surveillance Output Validation ===")
	fmt.Println()

	events, err := feed.ReadCSVTable(eventsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load events: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateSchema(events),
		validateUniqueness(events),
		validateComposites(events),
		validateReferenceJoins(events),
	}

	if timelinessPath != "" {
		timeliness, err := feed.ReadCSVTable(timelinessPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: load timeliness: %v\n", err)
			return 1
		}
		phases = append(phases, validateTimeliness(timeliness))
	}

	// ── Report results ──
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Rows: %d events\n", len(events.Rows))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Phase 1: Schema ──

func validateSchema(t *feed.Table) *phase {
	p := &phase{name: "Phase 1: Schema (events columns)"}
	if !slices.Equal(t.Header, feed.EventColumns) {
		p.errorf("header: expected %v, got %v", feed.EventColumns, t.Header)
	}
	for i, row := range t.Rows {
		if len(row) != len(feed.EventColumns) {
			p.errorf("line %d: expected %d fields, got %d", i+2, len(feed.EventColumns), len(row))
		}
	}
	return p
}

// ── Phase 2: Uniqueness ──
// A bulletin expands to at most one row per (country, disease).

func validateUniqueness(t *feed.Table) *phase {
	p := &phase{name: "Phase 2: Uniqueness (record, country, disease)"}
	seen := make(map[[5]string]int, len(t.Rows))
	for i, row := range t.Rows {
		k := [5]string{
			t.Value(row, "date"),
			t.Value(row, "description"),
			t.Value(row, "Source"),
			t.Value(row, "country_iso3"),
			t.Value(row, "disease_name"),
		}
		if first, dup := seen[k]; dup {
			p.errorf("line %d duplicates line %d (%s, %s)", i+2, first, k[3], k[4])
			continue
		}
		seen[k] = i + 2
	}
	return p
}

// ── Phase 3: Composite keys ──

func validateComposites(t *feed.Table) *phase {
	p := &phase{name: "Phase 3: Composite keys"}
	for i, row := range t.Rows {
		checkComposite(p, i+2, "country_disease",
			t.Value(row, "country_name_zh"), t.Value(row, "disease_name"), t.Value(row, "country_disease"))
		checkComposite(p, i+2, "country_disease_en",
			t.Value(row, "country_name_en"), t.Value(row, "disease_name_en"), t.Value(row, "country_disease_en"))
	}
	return p
}

func checkComposite(p *phase, line int, column, country, disease, got string) {
	want := ""
	if country != "" && disease != "" {
		want = country + "_" + disease
	}
	if got != want {
		p.errorf("line %d: %s=%q, expected %q", line, column, got, want)
	}
}

// ── Phase 4: Reference joins ──

func validateReferenceJoins(t *feed.Table) *phase {
	p := &phase{name: "Phase 4: Reference joins"}
	for i, row := range t.Rows {
		line := i + 2
		if t.Value(row, "country_iso3") != "" {
			if t.Value(row, "WHO_region") == "" {
				p.errorf("line %d: %s has no WHO_region", line, t.Value(row, "country_iso3"))
			}
			if t.Value(row, "WHO_region_en") == "" {
				p.errorf("line %d: %s has no WHO_region_en", line, t.Value(row, "country_iso3"))
			}
		}
		var sources []string
		if err := json.Unmarshal([]byte(t.Value(row, "Source_list")), &sources); err != nil {
			p.errorf("line %d: Source_list is not a JSON array: %v", line, err)
		}
	}
	return p
}

// ── Phase 5: Timeliness ──

func validateTimeliness(t *feed.Table) *phase {
	p := &phase{name: "Phase 5: Timeliness (yearly table)"}
	if !slices.Equal(t.Header, feed.TimelinessColumns) {
		p.errorf("header: expected %v, got %v", feed.TimelinessColumns, t.Header)
		return p
	}
	prevYear := 0
	for i, row := range t.Rows {
		line := i + 2
		year, err := strconv.Atoi(t.Value(row, "year"))
		if err != nil {
			p.errorf("line %d: invalid year %q", line, t.Value(row, "year"))
			continue
		}
		if year <= prevYear {
			p.errorf("line %d: year %d not ascending", line, year)
		}
		prevYear = year

		missing, err := strconv.ParseFloat(t.Value(row, "missing_percent"), 64)
		if err != nil || missing < 0 || missing > 100 {
			p.errorf("line %d: missing_percent %q out of range", line, t.Value(row, "missing_percent"))
		}
		median, mean := t.Value(row, "median_interval"), t.Value(row, "mean_interval")
		if (median == "") != (mean == "") {
			p.errorf("line %d: median and mean must both be present or both empty", line)
		}
		if median == "" && missing != 100 {
			p.errorf("line %d: no interval statistics but missing_percent=%v", line, missing)
		}
	}
	return p
}
