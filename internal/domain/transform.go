package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// headlineSepRe matches the separators seen between country and disease in
// headlines: half-width "-", full-width "－" and box-drawing "─".
var headlineSepRe = regexp.MustCompile(`[-－─]`)

// ParseRawEvent deserializes a source-topic message into a SurveillanceRecord.
func ParseRawEvent(raw RawEvent) (SurveillanceRecord, error) {
	var alert RawAlert
	if err := json.Unmarshal(raw.Value, &alert); err != nil {
		return SurveillanceRecord{}, fmt.Errorf("parse raw alert: %w", err)
	}
	return RecordFromAlert(alert), nil
}

// RecordFromAlert parses dates and splits the headline of a feed row.
// Unparseable dates become missing.
func RecordFromAlert(a RawAlert) SurveillanceRecord {
	country, disease := SplitHeadline(a.Headline)
	return SurveillanceRecord{
		Headline:        a.Headline,
		HeadlineCountry: country,
		HeadlineDisease: disease,
		Description:     a.Description,
		ISO3166:         a.ISO3166,
		Source:          a.Source,
		SourceTime:      ParseDate(a.SourceTime),
		SourceTime2:     ParseDate(a.SourceTime2),
		Date:            ParseDate(a.Effective),
		Sent:            ParseDate(a.Sent),
		Expires:         ParseDate(a.Expires),
		DataSource:      a.DataSource,
	}
}

// SplitHeadline splits "<country> - <disease>" at the first separator. A
// headline without a separator has no disease part.
func SplitHeadline(headline string) (country, disease string) {
	loc := headlineSepRe.FindStringIndex(headline)
	if loc == nil {
		return strings.TrimSpace(headline), ""
	}
	return strings.TrimSpace(headline[:loc[0]]), strings.TrimSpace(headline[loc[1]:])
}

// ProcessSourceList splits a citation on "、", lower-cases each media name and
// maps it through the catalog's source-name table. Unknown names pass through.
func ProcessSourceList(source string, cat *Catalog) []string {
	if strings.TrimSpace(source) == "" {
		return []string{}
	}
	parts := strings.Split(source, "、")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if mapped, ok := cat.sourceNames[p]; ok {
			p = mapped
		}
		out = append(out, p)
	}
	return out
}

// FilterByCutoff drops records published after cutoff. Records without a
// publish date cannot be compared and are dropped too. A missing cutoff keeps
// every record.
func FilterByCutoff(records []SurveillanceRecord, cutoff Date) []SurveillanceRecord {
	if cutoff.Missing() {
		return records
	}
	out := make([]SurveillanceRecord, 0, len(records))
	for _, r := range records {
		if r.Date.Missing() || r.Date.After(cutoff.Time) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// MergeSourceTimes left-joins epidemic-workbook rows onto records by
// (publish date, headline). A record matching several rows yields one record
// per row; a record matching none is kept unchanged.
func MergeSourceTimes(records []SurveillanceRecord, sources []EpidemicSource) []SurveillanceRecord {
	byKey := make(map[string][]EpidemicSource, len(sources))
	for _, s := range sources {
		if s.PublishTime.Missing() {
			continue
		}
		k := mergeKey(s.PublishTime, s.Subject)
		byKey[k] = append(byKey[k], s)
	}

	out := make([]SurveillanceRecord, 0, len(records))
	for _, r := range records {
		matches := byKey[mergeKey(r.Date, r.Headline)]
		if r.Date.Missing() || len(matches) == 0 {
			out = append(out, r)
			continue
		}
		for _, m := range matches {
			merged := r
			merged.Source = m.Source
			merged.SourceTime = m.SourceTime
			merged.SourceTime2 = m.SourceTime2
			out = append(out, merged)
		}
	}
	return out
}

func mergeKey(d Date, headline string) string {
	return d.String() + "\x00" + headline
}

// generateID produces a deterministic row ID from the bulletin and the
// (country, disease) pair, so replays of the same bulletin yield the same IDs.
func generateID(r SurveillanceRecord, country, disease string) string {
	input := fmt.Sprintf("%s|%s|%s|%s|%s|%s", r.Date, r.Headline, r.Description, r.Source, country, disease)
	hash := sha256.Sum256([]byte(input))
	short := hex.EncodeToString(hash[:8])
	if country == "" {
		return short
	}
	return strings.ToLower(country) + "-" + short
}
