package domain

import (
	"math"
	"regexp"
	"slices"
	"strconv"
)

var (
	// citationDateRe matches month/day fragments in a citation, e.g. "WHO 9/20".
	citationDateRe = regexp.MustCompile(`(\d{1,2})/(\d{1,2})`)

	// asOfDateRe matches "as of [this year] M/D" or "as of [this year] M月D日"
	// in a description: "截至今年3/5", "截至6月25日".
	asOfDateRe = regexp.MustCompile(`截至(?:今年)?(\d{1,2})[月/](\d{1,2})日?`)
)

// SourceTimeFromSource extracts the latest month/day in a citation that is not
// after the publish date. Fragments take the publish year; impossible days
// are skipped.
func SourceTimeFromSource(source string, publish Date) Date {
	if source == "" || publish.Missing() {
		return Date{}
	}

	var latest Date
	for _, d := range monthDayCandidates(citationDateRe, source, publish.Year()) {
		if d.After(publish.Time) {
			continue
		}
		if latest.Missing() || d.After(latest.Time) {
			latest = d
		}
	}
	return latest
}

// SourceTimeFromDescription extracts the "as of" date of a description. It is
// only consulted when both explicit source times are missing. If the latest
// "as of" date is after the publish date the result is missing; it is not
// clamped to an earlier candidate.
func SourceTimeFromDescription(rec SurveillanceRecord) Date {
	if !rec.SourceTime.Missing() || !rec.SourceTime2.Missing() {
		return Date{}
	}
	if rec.Date.Missing() || rec.Description == "" {
		return Date{}
	}

	candidates := monthDayCandidates(asOfDateRe, rec.Description, rec.Date.Year())
	if len(candidates) == 0 {
		return Date{}
	}
	latest := slices.MaxFunc(candidates, func(a, b Date) int { return a.Compare(b.Time) })
	if latest.After(rec.Date.Time) {
		return Date{}
	}
	return latest
}

func monthDayCandidates(re *regexp.Regexp, text string, year int) []Date {
	var out []Date
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		month, errM := strconv.Atoi(m[1])
		day, errD := strconv.Atoi(m[2])
		if errM != nil || errD != nil {
			continue
		}
		if d, ok := civilDate(year, month, day); ok {
			out = append(out, d)
		}
	}
	return out
}

// ReconcileSourceTime picks the source date of a bulletin by priority:
// SourceTime2 (also when SourceTime is present, as the later correction),
// then SourceTime, then the description "as of" date, then the citation
// date.
func ReconcileSourceTime(sourceTime, sourceTime2, fromDescription, fromSource Date) Date {
	switch {
	case !sourceTime2.Missing():
		return sourceTime2
	case !sourceTime.Missing():
		return sourceTime
	case !fromDescription.Missing():
		return fromDescription
	default:
		return fromSource
	}
}

// IntervalDays returns publish - source in days, or nil if either is missing.
// The result is negative when the source date follows the publish date.
func IntervalDays(publish, source Date) *int {
	if publish.Missing() || source.Missing() {
		return nil
	}
	n := publish.DaysSince(source)
	return &n
}

type timelinessKey struct {
	date, description, source, sourceTime, sourceTime2 string
}

// BuildTimeliness de-duplicates records on (date, description, Source,
// SourceTime, SourceTime2), keeping the first occurrence, and reconciles the
// source date of each.
func BuildTimeliness(records []SurveillanceRecord) []TimelinessRecord {
	seen := make(map[timelinessKey]struct{}, len(records))
	out := make([]TimelinessRecord, 0, len(records))
	for _, r := range records {
		k := timelinessKey{r.Date.String(), r.Description, r.Source, r.SourceTime.String(), r.SourceTime2.String()}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, reconcile(r))
	}
	return out
}

func reconcile(r SurveillanceRecord) TimelinessRecord {
	fromSource := SourceTimeFromSource(r.Source, r.Date)
	fromDescription := SourceTimeFromDescription(r)
	adj := ReconcileSourceTime(r.SourceTime, r.SourceTime2, fromDescription, fromSource)
	return TimelinessRecord{
		Date:                  r.Date,
		Description:           r.Description,
		Source:                r.Source,
		SourceTime:            r.SourceTime,
		SourceTime2:           r.SourceTime2,
		SourceTimeSource:      fromSource,
		SourceTimeDescription: fromDescription,
		SourceTimeAdj:         adj,
		IntervalDays:          IntervalDays(r.Date, adj),
	}
}

// AggregateTimelinessByYear groups rows by publish year. Rows without a
// publish date have no year and are left out. Median and mean ignore missing
// intervals; MissingPercent is the share of rows without a reconciled source
// date, rounded to three decimals and expressed as a percentage.
func AggregateTimelinessByYear(rows []TimelinessRecord) []YearlyTimeliness {
	type acc struct {
		intervals []int
		missing   int
		total     int
	}
	byYear := make(map[int]*acc)
	for _, r := range rows {
		if r.Date.Missing() {
			continue
		}
		a, ok := byYear[r.Date.Year()]
		if !ok {
			a = &acc{}
			byYear[r.Date.Year()] = a
		}
		a.total++
		if r.SourceTimeAdj.Missing() {
			a.missing++
		}
		if r.IntervalDays != nil {
			a.intervals = append(a.intervals, *r.IntervalDays)
		}
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	slices.Sort(years)

	out := make([]YearlyTimeliness, 0, len(years))
	for _, y := range years {
		a := byYear[y]
		out = append(out, YearlyTimeliness{
			Year:           y,
			MedianInterval: median(a.intervals),
			MeanInterval:   mean(a.intervals),
			MissingPercent: math.RoundToEven(float64(a.missing)/float64(a.total)*1000) / 1000 * 100,
		})
	}
	return out
}

func median(values []int) *float64 {
	if len(values) == 0 {
		return nil
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	mid := len(sorted) / 2
	m := float64(sorted[mid])
	if len(sorted)%2 == 0 {
		m = float64(sorted[mid-1]+sorted[mid]) / 2
	}
	return &m
}

func mean(values []int) *float64 {
	if len(values) == 0 {
		return nil
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	m := float64(sum) / float64(len(values))
	return &m
}
