package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"garbage", "not a date", ""},
		{"impossible day", "2024-02-30", ""},
		{"ISO date", "2024-03-10", "2024-03-10"},
		{"ISO datetime", "2024-03-10T08:15:00", "2024-03-10"},
		{"zoned converts to UTC", "2024-03-10T23:30:00-05:00", "2024-03-11"},
		{"space separated", "2024-03-10 08:15:00", "2024-03-10"},
		{"space separated minutes", "2024-03-10 08:15", "2024-03-10"},
		{"slashes", "2024/3/5", "2024-03-05"},
		{"slashes with time", "2024/3/5 14:00", "2024-03-05"},
		{"unpadded dashes", "2024-3-5", "2024-03-05"},
		{"dots", "2024.3.5", "2024-03-05"},
		{"surrounding space", "  2024-03-10  ", "2024-03-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseDate(tt.input).String())
		})
	}
}

func TestCivilDate(t *testing.T) {
	d, ok := civilDate(2024, 2, 29)
	require.True(t, ok)
	assert.Equal(t, "2024-02-29", d.String())

	for _, md := range [][2]int{{2, 30}, {13, 1}, {0, 5}, {4, 31}, {1, 0}} {
		_, ok := civilDate(2023, md[0], md[1])
		assert.False(t, ok, "%d/%d", md[0], md[1])
	}
}

func TestDate_DaysSince(t *testing.T) {
	a := NewDate(2024, time.March, 10)
	b := NewDate(2024, time.February, 28)

	assert.Equal(t, 11, a.DaysSince(b))
	assert.Equal(t, -11, b.DaysSince(a))
	assert.Equal(t, 0, a.DaysSince(a))
}

func TestDate_JSON(t *testing.T) {
	type wrapper struct {
		D Date `json:"d"`
	}

	data, err := json.Marshal(wrapper{D: NewDate(2024, time.January, 2)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":"2024-01-02"}`, string(data))

	data, err = json.Marshal(wrapper{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":null}`, string(data))

	var w wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"d":"2024/1/2"}`), &w))
	assert.Equal(t, "2024-01-02", w.D.String())

	require.NoError(t, json.Unmarshal([]byte(`{"d":null}`), &w))
	assert.True(t, w.D.Missing())

	assert.Error(t, json.Unmarshal([]byte(`{"d":12}`), &w))
}
