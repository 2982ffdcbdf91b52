package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/couchcryptid/epi-surveillance-etl/internal/adapter/feed"
	"github.com/couchcryptid/epi-surveillance-etl/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEvents() []domain.ResolvedEvent {
	date := domain.NewDate(2024, time.March, 10)
	return []domain.ResolvedEvent{
		{
			CountryISO3: "BRA", DiseaseName: "登革熱", DiseaseNameEN: "Dengue fever",
			CountryNameZH: "巴西", CountryNameEN: "Brazil",
			CountryDisease: "巴西_登革熱", CountryDiseaseEN: "Brazil_Dengue fever",
			WHORegion: "美洲", WHORegionEN: "Americas",
			Date: date, Description: "巴西疫情", Source: "WHO", SourceList: []string{"who"},
		},
		{
			Date: date, Description: "全球疫情", Source: "WHO",
		},
	}
}

func writeEvents(t *testing.T, events []domain.ResolvedEvent) *feed.Table {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events.csv")
	require.NoError(t, feed.WriteEvents(path, events))
	table, err := feed.ReadCSVTable(path)
	require.NoError(t, err)
	return table
}

func TestValidateEvents_Valid(t *testing.T) {
	table := writeEvents(t, validEvents())

	for _, p := range []*phase{
		validateSchema(table),
		validateUniqueness(table),
		validateComposites(table),
		validateReferenceJoins(table),
	} {
		assert.True(t, p.passed(), "%s: %v", p.name, p.errors)
	}
}

func TestValidateUniqueness_Duplicate(t *testing.T) {
	events := validEvents()
	table := writeEvents(t, append(events, events[0]))

	p := validateUniqueness(table)
	require.Len(t, p.errors, 1)
	assert.Contains(t, p.errors[0], "line 4 duplicates line 2")
}

func TestValidateComposites_Mismatch(t *testing.T) {
	events := validEvents()
	events[0].CountryDisease = "巴西_麻疹"
	events[1].CountryDiseaseEN = "_"

	p := validateComposites(writeEvents(t, events))
	assert.Len(t, p.errors, 2)
}

func TestValidateReferenceJoins_MissingRegion(t *testing.T) {
	events := validEvents()
	events[0].WHORegion = ""

	p := validateReferenceJoins(writeEvents(t, events))
	require.Len(t, p.errors, 1)
	assert.Contains(t, p.errors[0], "BRA has no WHO_region")
}

func TestValidateTimeliness(t *testing.T) {
	median, mean := 3.0, 3.5
	path := filepath.Join(t.TempDir(), "timeliness.csv")
	require.NoError(t, feed.WriteTimeliness(path, []domain.YearlyTimeliness{
		{Year: 2023, MissingPercent: 100},
		{Year: 2024, MedianInterval: &median, MeanInterval: &mean, MissingPercent: 25},
	}))
	table, err := feed.ReadCSVTable(path)
	require.NoError(t, err)

	p := validateTimeliness(table)
	assert.True(t, p.passed(), "%v", p.errors)
}

func TestValidateTimeliness_NotAscending(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timeliness.csv")
	require.NoError(t, feed.WriteTimeliness(path, []domain.YearlyTimeliness{
		{Year: 2024, MissingPercent: 100},
		{Year: 2023, MissingPercent: 100},
	}))
	table, err := feed.ReadCSVTable(path)
	require.NoError(t, err)

	p := validateTimeliness(table)
	require.Len(t, p.errors, 1)
	assert.Contains(t, p.errors[0], "not ascending")
}

func TestRun_MissingFile(t *testing.T) {
	assert.Equal(t, 1, run(filepath.Join(t.TempDir(), "missing.csv"), ""))
}
