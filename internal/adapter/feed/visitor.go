package feed

import (
	"strings"

	"github.com/couchcryptid/epi-surveillance-etl/internal/domain"
)

// visitorTitleRows precede the two header rows of the arrivals table.
const visitorTitleRows = 2

// ReadVisitorCounts reads the arrivals-by-residence workbook and melts it into
// one (year, residence, passengers) row per cell.
//
// The table has two header rows: a region row with merged cells and a
// country row. Region labels are forward-filled; a column whose two labels
// differ is named "region_country", otherwise it takes the region label.
// Rows whose year label does not end in four digits are skipped.
func ReadVisitorCounts(path string) ([]domain.VisitorCount, error) {
	rows, err := readRows(path, "")
	if err != nil {
		return nil, err
	}
	if len(rows) < visitorTitleRows+2 {
		return nil, nil
	}
	rows = rows[visitorTitleRows:]
	header := visitorHeader(rows[0], rows[1])

	var out []domain.VisitorCount
	for _, row := range rows[2:] {
		if len(row) == 0 {
			continue
		}
		year, ok := domain.ParseVisitorYear(row[0])
		if !ok {
			continue
		}
		for col := 1; col < len(header); col++ {
			var cell string
			if col < len(row) {
				cell = row[col]
			}
			out = append(out, domain.VisitorCount{
				Year:       year,
				Country:    header[col],
				Passengers: domain.ParsePassengers(cell),
			})
		}
	}
	return out, nil
}

func visitorHeader(top, sub []string) []string {
	width := max(len(top), len(sub))
	header := make([]string, width)
	var region string
	for i := range width {
		if i < len(top) && strings.TrimSpace(top[i]) != "" {
			region = strings.TrimSpace(top[i])
		}
		var country string
		if i < len(sub) {
			country = strings.TrimSpace(sub[i])
		}
		if country == "" || country == region {
			header[i] = region
		} else {
			header[i] = region + "_" + country
		}
	}
	return header
}
