package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVisitorYear(t *testing.T) {
	y, ok := ParseVisitorYear("民國113年 2024")
	require.True(t, ok)
	assert.Equal(t, 2024, y)

	_, ok = ParseVisitorYear("合計")
	assert.False(t, ok)
	_, ok = ParseVisitorYear("Total")
	assert.False(t, ok)
}

func TestParsePassengers(t *testing.T) {
	assert.Equal(t, 1234567, ParsePassengers("1,234,567"))
	assert.Equal(t, 12, ParsePassengers("12.0"))
	assert.Equal(t, 0, ParsePassengers("-"))
	assert.Equal(t, 0, ParsePassengers(""))
	assert.Equal(t, 0, ParsePassengers("n/a"))
}

func TestIsVisitorTotal(t *testing.T) {
	assert.True(t, IsVisitorTotal("亞洲地區_小計 Sub-Total"))
	assert.True(t, IsVisitorTotal("總計 Grand Total"))
	assert.False(t, IsVisitorTotal("日本 Japan"))
}

func TestTopVisitorCountries(t *testing.T) {
	iso3 := map[string]string{"日本 Japan": "JPN", "韓國 Korea,Republic of": "KOR", "美國 U.S.A.": "USA"}
	rows := []VisitorCount{
		{Year: 2023, Country: "日本 Japan", Passengers: 900},
		{Year: 2023, Country: "韓國 Korea,Republic of", Passengers: 500},
		{Year: 2023, Country: "美國 U.S.A.", Passengers: 500},
		{Year: 2023, Country: "總計 Grand Total", Passengers: 99999},
		{Year: 2024, Country: "日本 Japan", Passengers: 100},
		{Year: 2024, Country: "美國 U.S.A.", Passengers: 800},
		{Year: 2024, Country: "其他 Others", Passengers: 50},
	}

	byYear := TopVisitorCountriesByYear(rows, 2, iso3)
	require.Len(t, byYear, 2)

	assert.Equal(t, 2023, byYear[0].Year)
	assert.Equal(t, []string{"日本 Japan", "美國 U.S.A."}, byYear[0].Countries, "ties break by label")
	assert.Equal(t, []string{"JPN", "USA"}, byYear[0].ISO3)

	assert.Equal(t, 2024, byYear[1].Year)
	assert.Equal(t, []string{"美國 U.S.A.", "日本 Japan"}, byYear[1].Countries)

	all := TopVisitorCountriesAllYears(rows, 3, iso3)
	assert.Equal(t, []string{"美國 U.S.A.", "日本 Japan", "韓國 Korea,Republic of"}, all.Countries)
	assert.Equal(t, []string{"USA", "JPN", "KOR"}, all.ISO3)
	assert.Zero(t, all.Year)
}
