package domain

import (
	"slices"
	"strings"

	"github.com/couchcryptid/epi-surveillance-etl/internal/textnorm"
)

// DiseaseDictionary maps headline disease labels to canonical labels, canonical
// tokens to English names, and labels to transmission routes. Lookups never
// fail: unmapped values pass through.
type DiseaseDictionary struct {
	labels     map[string]string
	normLabels map[string]string
	english    map[string]string
	routes     map[string]string
}

// NewDiseaseDictionary builds a dictionary. labels maps raw headline labels to
// canonical labels (possibly "/"-joined), english maps canonical tokens to
// English names and routes maps labels to their main transmission route.
func NewDiseaseDictionary(labels, english, routes map[string]string) *DiseaseDictionary {
	if labels == nil {
		labels = map[string]string{}
	}
	return &DiseaseDictionary{
		labels:     labels,
		normLabels: textnorm.NormalizeKeys(labels),
		english:    textnorm.NormalizeKeys(english),
		routes:     textnorm.NormalizeKeys(routes),
	}
}

// ResolveDisease returns the canonical label for a raw headline label. It tries
// the raw label, then its normalized form, and falls back to the normalized
// label itself.
func (d *DiseaseDictionary) ResolveDisease(raw string) string {
	if raw == "" {
		return ""
	}
	if v, ok := d.labels[raw]; ok {
		return v
	}
	n := textnorm.Normalize(raw)
	if v, ok := d.normLabels[n]; ok {
		return v
	}
	return n
}

// SplitDiseases splits a "/"-joined label into its diseases, in order and
// without duplicates. It returns nil for an empty label.
func SplitDiseases(label string) []string {
	if strings.TrimSpace(label) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(label, "/") {
		part = strings.TrimSpace(part)
		if part == "" || slices.Contains(out, part) {
			continue
		}
		out = append(out, part)
	}
	return out
}

// LookupEnglishName returns the English name of a single disease token.
func (d *DiseaseDictionary) LookupEnglishName(token string) (string, bool) {
	v, ok := d.english[textnorm.Normalize(token)]
	return v, ok
}

// EnglishName returns the English name of a token, or the token unchanged.
func (d *DiseaseDictionary) EnglishName(token string) string {
	if token == "" {
		return ""
	}
	if v, ok := d.LookupEnglishName(token); ok {
		return v
	}
	return token
}

// TransmissionRoute returns the route of a single disease token, falling back
// to the route of the full label it came from.
func (d *DiseaseDictionary) TransmissionRoute(label, token string) string {
	if v, ok := d.routes[textnorm.Normalize(token)]; ok && token != "" {
		return v
	}
	if label == "" {
		return ""
	}
	return d.routes[textnorm.Normalize(label)]
}

// Labels returns the raw labels known to the dictionary, sorted.
func (d *DiseaseDictionary) Labels() []string {
	out := make([]string, 0, len(d.labels))
	for k := range d.labels {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
