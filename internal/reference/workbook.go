package reference

import (
	"fmt"

	"github.com/couchcryptid/epi-surveillance-etl/internal/adapter/feed"
	"github.com/couchcryptid/epi-surveillance-etl/internal/domain"
)

// Column names of the reference workbooks.
const (
	colISO3          = "ISO3166-1三位代碼"
	colISO2          = "ISO3166-1二位代碼"
	colNameZH        = "監測國家/區域"
	colNameEN        = "監測國家/區域(英文)"
	colISONameZH     = "ISO3166-1(中文)"
	colExternalLabel = "外網國家別"
	colAliases       = "中文別稱"
	colWHORegion     = "WHO分區"
	colDisease       = "監測疾病名稱"
	colRoute         = "主要傳染途徑"
)

// LoadCountries reads the country sheet. An empty sheet selects the first
// one. Name and alias columns are optional; the ISO3 column is not.
func LoadCountries(path, sheet string) ([]domain.CountryEntry, error) {
	t, err := feed.ReadTable(path, sheet)
	if err != nil {
		return nil, err
	}
	if err := t.Require(colISO3); err != nil {
		return nil, fmt.Errorf("country sheet %s: %w", path, err)
	}

	out := make([]domain.CountryEntry, 0, len(t.Rows))
	for _, row := range t.Rows {
		out = append(out, domain.CountryEntry{
			ISO3:          t.Value(row, colISO3),
			ISO2:          t.Value(row, colISO2),
			NameZH:        t.Value(row, colNameZH),
			NameEN:        t.Value(row, colNameEN),
			ISONameZH:     t.Value(row, colISONameZH),
			ExternalLabel: t.Value(row, colExternalLabel),
			Aliases:       t.Value(row, colAliases),
		})
	}
	return out, nil
}

// LoadRegions reads ISO3 -> WHO region from the region sheet. Later rows win.
func LoadRegions(path, sheet string) (map[string]string, error) {
	t, err := feed.ReadTable(path, sheet)
	if err != nil {
		return nil, err
	}
	if err := t.Require(colISO3, colWHORegion); err != nil {
		return nil, fmt.Errorf("region sheet %s: %w", path, err)
	}
	return columnMap(t, colISO3, colWHORegion), nil
}

// LoadRoutes reads disease label -> main transmission route. Later rows win.
func LoadRoutes(path string) (map[string]string, error) {
	t, err := feed.ReadTable(path, "")
	if err != nil {
		return nil, err
	}
	if err := t.Require(colDisease, colRoute); err != nil {
		return nil, fmt.Errorf("route table %s: %w", path, err)
	}
	return columnMap(t, colDisease, colRoute), nil
}

func columnMap(t *feed.Table, key, value string) map[string]string {
	m := make(map[string]string, len(t.Rows))
	for _, row := range t.Rows {
		if k := t.Value(row, key); k != "" {
			m[k] = t.Value(row, value)
		}
	}
	return m
}
