package feed

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/couchcryptid/epi-surveillance-etl/internal/domain"
	"golang.org/x/text/encoding/traditionalchinese"
)

// Data-source tags of the two alert exports.
const (
	SourceHistory = "TCDCTravelAlert_history"
	SourceCurrent = "TCDCTravelAlert"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadAlerts reads the history and current alert exports and concatenates
// them, history first, tagging each row with its data source.
func ReadAlerts(historyPath, currentPath string) ([]domain.RawAlert, error) {
	hist, err := ReadAlertCSV(historyPath, SourceHistory)
	if err != nil {
		return nil, err
	}
	curr, err := ReadAlertCSV(currentPath, SourceCurrent)
	if err != nil {
		return nil, err
	}
	return append(hist, curr...), nil
}

// ReadAlertCSV reads one alert export. The file is decoded as UTF-8 (BOM
// stripped) and falls back to CP950. Dates are kept as text; the domain
// parses them. When the effective column is absent, date is used instead.
func ReadAlertCSV(path, dataSource string) ([]domain.RawAlert, error) {
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
	r.LazyQuotes = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}
	t := newTable(header, nil)
	effective := "effective"
	if !t.Has(effective) {
		effective = "date"
	}

	var alerts []domain.RawAlert
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		alerts = append(alerts, domain.RawAlert{
			Headline:    t.Value(row, "headline"),
			Description: t.Value(row, "description"),
			ISO3166:     t.Value(row, "ISO3166"),
			Source:      t.Value(row, "Source"),
			SourceTime:  t.Value(row, "SourceTime"),
			SourceTime2: t.Value(row, "SourceTime2"),
			Effective:   t.Value(row, effective),
			Sent:        t.Value(row, "sent"),
			Expires:     t.Value(row, "expires"),
			DataSource:  dataSource,
		})
	}
	return alerts, nil
}

// decodeText returns data as UTF-8, trying UTF-8 first and CP950 second.
func decodeText(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data), nil
	}
	decoded, err := traditionalchinese.Big5.NewDecoder().Bytes(data)
	if err != nil || bytes.ContainsRune(decoded, utf8.RuneError) {
		return "", ErrUndecodable
	}
	return string(decoded), nil
}
