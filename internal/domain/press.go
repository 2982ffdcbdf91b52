package domain

import (
	"regexp"
	"strings"
)

var htmlTagRe = regexp.MustCompile(`<[^>]+>`)

// PressRelease is one row of the press-release workbook.
type PressRelease struct {
	PublishTime Date   `json:"PublishTime"`
	Subject     string `json:"Subject"`
	Content     string `json:"Content"`
}

// StripHTML removes markup tags and trims the result.
func StripHTML(s string) string {
	return strings.TrimSpace(htmlTagRe.ReplaceAllString(s, ""))
}

// CleanPressReleases strips markup from the content, drops duplicates on
// (PublishTime, Subject, Content) keeping the first, and removes releases
// published after cutoff or without a publish date.
func CleanPressReleases(items []PressRelease, cutoff Date) []PressRelease {
	type key struct{ published, subject, content string }
	seen := make(map[key]struct{}, len(items))
	out := make([]PressRelease, 0, len(items))
	for _, p := range items {
		p.Content = StripHTML(p.Content)
		k := key{p.PublishTime.String(), p.Subject, p.Content}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		if p.PublishTime.Missing() || (!cutoff.Missing() && p.PublishTime.After(cutoff.Time)) {
			continue
		}
		out = append(out, p)
	}
	return out
}
