package feed

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/couchcryptid/epi-surveillance-etl/internal/domain"
)

// EventColumns is the column order of the events table.
var EventColumns = []string{
	"country_iso3", "disease_name", "disease_name_en",
	"country_name_zh", "country_name_en",
	"country_disease", "country_disease_en",
	"transmission_route", "WHO_region", "WHO_region_en",
	"date", "description", "Source", "Source_list", "SourceTime", "SourceTime2",
}

// TimelinessColumns is the column order of the yearly timeliness table.
var TimelinessColumns = []string{"year", "median_interval", "mean_interval", "missing_percent"}

var (
	pressColumns   = []string{"PublishTime", "Subject", "Content"}
	visitorColumns = []string{"year", "country", "iso3"}
)

// WriteEvents writes resolved events. The format follows the file extension:
// ".xlsx" writes a workbook, anything else CSV.
func WriteEvents(path string, events []domain.ResolvedEvent) error {
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		rows = append(rows, []string{
			e.CountryISO3, e.DiseaseName, e.DiseaseNameEN,
			e.CountryNameZH, e.CountryNameEN,
			e.CountryDisease, e.CountryDiseaseEN,
			e.TransmissionRoute, e.WHORegion, e.WHORegionEN,
			e.Date.String(), e.Description, e.Source, encodeList(e.SourceList),
			e.SourceTime.String(), e.SourceTime2.String(),
		})
	}
	return writeTable(path, "events", EventColumns, rows)
}

// WriteTimeliness writes the yearly timeliness table. Missing statistics are
// empty cells.
func WriteTimeliness(path string, years []domain.YearlyTimeliness) error {
	rows := make([][]string, 0, len(years))
	for _, y := range years {
		rows = append(rows, []string{
			strconv.Itoa(y.Year),
			formatOptional(y.MedianInterval),
			formatOptional(y.MeanInterval),
			strconv.FormatFloat(y.MissingPercent, 'f', -1, 64),
		})
	}
	return writeTable(path, "timeliness", TimelinessColumns, rows)
}

// WritePressReleases writes cleaned press releases.
func WritePressReleases(path string, items []domain.PressRelease) error {
	rows := make([][]string, 0, len(items))
	for _, p := range items {
		rows = append(rows, []string{p.PublishTime.String(), p.Subject, p.Content})
	}
	return writeTable(path, "press", pressColumns, rows)
}

// WriteVisitorRankings writes one row per ranking, with the ranked labels and
// codes as JSON arrays. The all-years ranking has an empty year.
func WriteVisitorRankings(path string, rankings []domain.VisitorRanking) error {
	rows := make([][]string, 0, len(rankings))
	for _, r := range rankings {
		year := ""
		if r.Year != 0 {
			year = strconv.Itoa(r.Year)
		}
		rows = append(rows, []string{year, encodeList(r.Countries), encodeList(r.ISO3)})
	}
	return writeTable(path, "visitors", visitorColumns, rows)
}

func writeTable(path, sheet string, header []string, rows [][]string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return writeWorkbook(path, sheet, header, rows)
	}
	return writeCSV(path, header, rows)
}

func writeCSV(path string, header []string, rows [][]string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	// BOM so spreadsheet tools open the Chinese text as UTF-8.
	if _, err := f.Write(utf8BOM); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func encodeList(items []string) string {
	if items == nil {
		items = []string{}
	}
	data, _ := json.Marshal(items) //nolint:errcheck // []string always marshals
	return string(data)
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// ReadCSVTable reads a CSV written by this package (or any UTF-8/CP950 CSV
// with a header row) as a Table.
func ReadCSVTable(path string) (*Table, error) {
	if err := statInput(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	text, err := decodeText(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return newTable(nil, nil), nil
	}
	return newTable(records[0], records[1:]), nil
}
