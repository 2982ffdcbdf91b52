package pipeline_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/couchcryptid/epi-surveillance-etl/internal/adapter/feed"
	"github.com/couchcryptid/epi-surveillance-etl/internal/domain"
	"github.com/couchcryptid/epi-surveillance-etl/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const alertHeader = "headline,description,ISO3166,Source,SourceTime,SourceTime2,sent,effective,expires\n"

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func writeSheet(t *testing.T, dir, name string, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	return path
}

func batchInputs(t *testing.T, dir string) pipeline.BatchInputs {
	t.Helper()
	history := writeFile(t, dir, "history.csv", alertHeader+
		"日本 - 麻疹,日本通報麻疹病例,JP,WHO 9/20,,,2023-09-25,2023-09-25,2023-12-25\n")
	current := writeFile(t, dir, "current.csv", alertHeader+
		"巴西 - 登革熱,巴西及阿根廷疫情上升,BR,WHO EIS,2024-03-01,,2024-03-10,2024-03-10,2024-06-10\n"+
		"巴西 - 登革熱,巴西疫情趨緩,BR,WHO EIS,,,2026-01-01,2026-01-01,2026-04-01\n")
	epi := writeSheet(t, dir, "epi.xlsx", [][]any{
		{"Subject", "Source", "SourceTime", "SourceTime2", "PublishTime"},
		{"日本 - 麻疹", "NIID", "", "2023-09-22", "2023-09-25"},
	})
	press := writeSheet(t, dir, "press.xlsx", [][]any{
		{"PublishTime", "Subject", "Content", "Name"},
		{"2025-01-05", "登革熱疫情", "<p>國內新增病例</p>", "疾管署"},
		{"2025-01-05", "登革熱疫情", "國內新增病例", "疾管署"},
		{"2026-01-05", "流感疫情", "<b>上升</b>", "疾管署"},
	})
	visitors := writeSheet(t, dir, "visitors.xlsx", [][]any{
		{"表1-2 歷年來臺旅客按居住地分"},
		{"單位：人次"},
		{"年別 Year", "日本 Japan", "韓國 Korea", "亞洲合計 Total"},
		{"", "日本 Japan", "韓國 Korea", ""},
		{"民國112年 2023", "1,000", "500", "1,500"},
		{"民國113年 2024", "2,000", "3,000", "5,000"},
	})
	return pipeline.BatchInputs{
		AlertHistoryPath: history,
		AlertCurrentPath: current,
		EpidemicPath:     epi,
		PressPath:        press,
		VisitorPath:      visitors,
	}
}

func TestBatch_Run(t *testing.T) {
	dir := t.TempDir()
	in := batchInputs(t, dir)
	out := pipeline.BatchOutputs{
		EventsPath:     filepath.Join(dir, "out", "events.csv"),
		TimelinessPath: filepath.Join(dir, "out", "timeliness.csv"),
		PressPath:      filepath.Join(dir, "out", "press.csv"),
		VisitorPath:    filepath.Join(dir, "out", "visitors.xlsx"),
	}

	cutoff := domain.NewDate(2025, time.November, 27)
	metrics := newTestMetrics()
	tfm := pipeline.NewTransformer(testCatalog(t), nil, cutoff, metrics, discardLogger())
	dicts := map[string]string{"日本 Japan": "JPN", "韓國 Korea": "KOR"}
	b := pipeline.NewBatch(tfm, cutoff, dicts, 0, metrics, discardLogger())

	sum, err := b.Run(context.Background(), in, out)
	require.NoError(t, err)

	assert.Equal(t, pipeline.BatchSummary{
		Alerts:          3,
		Filtered:        1,
		Records:         2,
		Events:          3,
		TimelinessYears: 2,
		PressReleases:   1,
		VisitorRankings: 3,
	}, sum)

	events, err := feed.ReadCSVTable(out.EventsPath)
	require.NoError(t, err)
	assert.Equal(t, feed.EventColumns, events.Header)
	require.Len(t, events.Rows, 3)
	assert.Equal(t, "JPN", events.Value(events.Rows[0], "country_iso3"))
	assert.Equal(t, "日本_麻疹", events.Value(events.Rows[0], "country_disease"))
	assert.Equal(t, "NIID", events.Value(events.Rows[0], "Source"), "epidemic source replaces the citation")
	assert.Equal(t, "2023-09-22", events.Value(events.Rows[0], "SourceTime2"))
	assert.Equal(t, "ARG", events.Value(events.Rows[1], "country_iso3"))
	assert.Equal(t, "BRA", events.Value(events.Rows[2], "country_iso3"))
	assert.Equal(t, `["who"]`, events.Value(events.Rows[2], "Source_list"))

	timeliness, err := feed.ReadCSVTable(out.TimelinessPath)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"2023", "3", "3", "0"},
		{"2024", "9", "9", "0"},
	}, timeliness.Rows)

	press, err := feed.ReadCSVTable(out.PressPath)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"2025-01-05", "登革熱疫情", "國內新增病例"}}, press.Rows)

	_, err = os.Stat(out.VisitorPath)
	assert.NoError(t, err)
}

func TestBatch_Run_OptionalInputsSkipped(t *testing.T) {
	dir := t.TempDir()
	in := batchInputs(t, dir)
	in.EpidemicPath, in.PressPath, in.VisitorPath = "", "", ""
	out := pipeline.BatchOutputs{
		EventsPath:     filepath.Join(dir, "events.xlsx"),
		TimelinessPath: filepath.Join(dir, "timeliness.csv"),
	}

	tfm := pipeline.NewTransformer(testCatalog(t), nil, domain.Date{}, newTestMetrics(), discardLogger())
	b := pipeline.NewBatch(tfm, domain.Date{}, nil, 5, newTestMetrics(), discardLogger())

	sum, err := b.Run(context.Background(), in, out)
	require.NoError(t, err)
	assert.Zero(t, sum.Filtered)
	assert.Equal(t, 3, sum.Records)
	assert.Zero(t, sum.PressReleases)
	assert.Zero(t, sum.VisitorRankings)

	timeliness, err := feed.ReadCSVTable(out.TimelinessPath)
	require.NoError(t, err)
	require.Len(t, timeliness.Rows, 3)
	assert.Equal(t, []string{"2023", "5", "5", "0"}, timeliness.Rows[0], "citation date 9/20 without the epidemic merge")
	assert.Equal(t, []string{"2026", "", "", "100"}, timeliness.Rows[2])
}

func TestBatch_Run_MissingAlertFile(t *testing.T) {
	dir := t.TempDir()
	in := batchInputs(t, dir)
	in.AlertCurrentPath = filepath.Join(dir, "missing.csv")

	tfm := pipeline.NewTransformer(testCatalog(t), nil, domain.Date{}, newTestMetrics(), discardLogger())
	b := pipeline.NewBatch(tfm, domain.Date{}, nil, 0, newTestMetrics(), discardLogger())

	_, err := b.Run(context.Background(), in, pipeline.BatchOutputs{
		EventsPath:     filepath.Join(dir, "events.csv"),
		TimelinessPath: filepath.Join(dir, "timeliness.csv"),
	})
	assert.ErrorIs(t, err, feed.ErrFileNotFound)
}

func TestBatch_Run_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	in := batchInputs(t, dir)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tfm := pipeline.NewTransformer(testCatalog(t), nil, domain.Date{}, newTestMetrics(), discardLogger())
	b := pipeline.NewBatch(tfm, domain.Date{}, nil, 0, newTestMetrics(), discardLogger())

	_, err := b.Run(ctx, in, pipeline.BatchOutputs{
		EventsPath:     filepath.Join(dir, "events.csv"),
		TimelinessPath: filepath.Join(dir, "timeliness.csv"),
	})
	assert.ErrorIs(t, err, context.Canceled)
}
