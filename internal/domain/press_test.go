package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "第一段第二段", StripHTML("<p>第一段<br/>第二段</p> "))
	assert.Equal(t, "plain", StripHTML("plain"))
	assert.Empty(t, StripHTML("<div></div>"))
}

func TestCleanPressReleases(t *testing.T) {
	cutoff := NewDate(2025, time.November, 27)
	d := NewDate(2025, time.January, 5)
	items := []PressRelease{
		{PublishTime: d, Subject: "登革熱疫情", Content: "<p>國內新增病例</p>"},
		{PublishTime: d, Subject: "登革熱疫情", Content: "國內新增病例"},
		{PublishTime: d, Subject: "麻疹", Content: "<b>境外移入</b>"},
		{PublishTime: NewDate(2025, time.December, 1), Subject: "late", Content: "x"},
		{Subject: "undated", Content: "x"},
	}

	got := CleanPressReleases(items, cutoff)
	require.Len(t, got, 2)
	assert.Equal(t, "國內新增病例", got[0].Content)
	assert.Equal(t, "境外移入", got[1].Content)
	assert.Equal(t, "<p>國內新增病例</p>", items[0].Content, "input is not modified")
}
