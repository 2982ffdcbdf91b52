package feed

import (
	"fmt"

	"github.com/couchcryptid/epi-surveillance-etl/internal/domain"
)

// ReadEpidemicSources reads the epidemic workbook rows used to back-fill
// citation and source dates onto alerts.
func ReadEpidemicSources(path string) ([]domain.EpidemicSource, error) {
	t, err := ReadTable(path, "")
	if err != nil {
		return nil, err
	}
	if err := t.Require("Subject", "Source", "SourceTime", "SourceTime2", "PublishTime"); err != nil {
		return nil, fmt.Errorf("epidemic workbook %s: %w", path, err)
	}

	out := make([]domain.EpidemicSource, 0, len(t.Rows))
	for _, row := range t.Rows {
		out = append(out, domain.EpidemicSource{
			Subject:     t.Value(row, "Subject"),
			Source:      t.Value(row, "Source"),
			SourceTime:  CellDate(t.Value(row, "SourceTime")),
			SourceTime2: CellDate(t.Value(row, "SourceTime2")),
			PublishTime: CellDate(t.Value(row, "PublishTime")),
		})
	}
	return out, nil
}

// ReadPressReleases reads the press-release workbook. The Name column is not
// carried.
func ReadPressReleases(path string) ([]domain.PressRelease, error) {
	t, err := ReadTable(path, "")
	if err != nil {
		return nil, err
	}
	if err := t.Require("PublishTime", "Subject", "Content"); err != nil {
		return nil, fmt.Errorf("press workbook %s: %w", path, err)
	}

	out := make([]domain.PressRelease, 0, len(t.Rows))
	for _, row := range t.Rows {
		out = append(out, domain.PressRelease{
			PublishTime: CellDate(t.Value(row, "PublishTime")),
			Subject:     t.Value(row, "Subject"),
			Content:     t.Value(row, "Content"),
		})
	}
	return out, nil
}
