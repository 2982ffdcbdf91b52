package domain

import (
	"cmp"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

// publishRe matches "<A>公布<B>": country A announced figures about B. The
// character classes exclude Unicode separators so full-width spaces end a run.
var publishRe = regexp.MustCompile(`([^\s\p{Z}]+?)公布([^\s\p{Z}]+)`)

// CountryExtractor finds country codes in free text.
type CountryExtractor interface {
	ExtractCountries(text string) []string
}

// CountryEntry is one row of the country reference table.
type CountryEntry struct {
	ISO3          string
	ISO2          string
	NameZH        string // monitoring name, e.g. "美國"
	NameEN        string
	ISONameZH     string // ISO 3166-1 Chinese name, e.g. "美利堅合眾國"
	ExternalLabel string // label used by the external feed
	Aliases       string // "|"-delimited aliases
}

func (e CountryEntry) aliases() []string {
	if strings.TrimSpace(e.Aliases) == "" {
		return nil
	}
	var out []string
	for _, a := range strings.Split(e.Aliases, "|") {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}

func (e CountryEntry) variations() []string {
	var out []string
	for _, v := range []string{e.NameZH, e.ISONameZH, e.ExternalLabel} {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return append(out, e.aliases()...)
}

type variation struct {
	text  string
	iso3  string
	runes int
}

// CountryIndex is the immutable country vocabulary. Build it once with
// NewCountryIndex and share it; all methods are safe for concurrent use.
type CountryIndex struct {
	variations  []variation // longest first
	byVariation map[string]string
	headline    map[string]string
	iso2        map[string]string
	nameZH      map[string]string
	nameEN      map[string]string
}

// NewCountryIndex builds the lookup tables from reference entries. Entries
// without an ISO3 code are skipped. A variation claimed by two codes maps to
// the later entry. Variations are ordered by descending length in code
// points; ties keep first-seen order.
func NewCountryIndex(entries []CountryEntry) *CountryIndex {
	idx := &CountryIndex{
		byVariation: make(map[string]string),
		headline:    make(map[string]string),
		iso2:        make(map[string]string),
		nameZH:      make(map[string]string),
		nameEN:      make(map[string]string),
	}

	var order []string
	for _, e := range entries {
		iso3 := strings.TrimSpace(e.ISO3)
		if iso3 == "" {
			continue
		}
		for _, v := range e.variations() {
			if _, seen := idx.byVariation[v]; !seen {
				order = append(order, v)
			}
			idx.byVariation[v] = iso3
		}
		for _, a := range e.aliases() {
			idx.headline[a] = iso3
		}
		if iso2 := strings.TrimSpace(e.ISO2); iso2 != "" {
			idx.iso2[iso2] = iso3
		}
		if name := strings.TrimSpace(e.NameZH); name != "" {
			idx.nameZH[iso3] = name
		}
		if name := strings.TrimSpace(e.NameEN); name != "" {
			idx.nameEN[iso3] = name
		}
	}

	idx.variations = make([]variation, 0, len(order))
	for _, v := range order {
		idx.variations = append(idx.variations, variation{
			text:  v,
			iso3:  idx.byVariation[v],
			runes: utf8.RuneCountInString(v),
		})
	}
	slices.SortStableFunc(idx.variations, func(a, b variation) int {
		return cmp.Compare(b.runes, a.runes)
	})
	return idx
}

// ExtractCountries returns the sorted ISO3 codes named in text, or nil when
// none are found.
//
// Variations are tried longest first against the original text. Each match
// marks its bytes as consumed, and later (shorter) variations only count
// where none of their bytes are consumed. When the text contains "<A>公布<B>"
// with A a known variation different from B, A's position is reserved up
// front: the announcing country is not reported there, and no shorter name
// can match inside it. A mentioned again elsewhere is still reported.
func (idx *CountryIndex) ExtractCountries(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	consumed := make([]bool, len(text))
	if m := publishRe.FindStringSubmatchIndex(text); m != nil {
		reporter, subject := text[m[2]:m[3]], text[m[4]:m[5]]
		if _, known := idx.byVariation[reporter]; known && reporter != subject {
			consume(consumed, m[2], m[3])
		}
	}

	found := make(map[string]struct{})
	for _, v := range idx.variations {
		starts := freeOccurrences(text, v.text, consumed)
		if len(starts) == 0 {
			continue
		}
		found[v.iso3] = struct{}{}
		for _, s := range starts {
			consume(consumed, s, s+len(v.text))
		}
	}
	return sortedKeys(found)
}

// freeOccurrences returns the byte offsets of non-overlapping occurrences of
// sub in text that do not touch consumed bytes.
func freeOccurrences(text, sub string, consumed []bool) []int {
	var starts []int
	for off := 0; off <= len(text)-len(sub); {
		i := strings.Index(text[off:], sub)
		if i < 0 {
			break
		}
		start := off + i
		if slices.Contains(consumed[start:start+len(sub)], true) {
			off = start + 1
			continue
		}
		starts = append(starts, start)
		off = start + len(sub)
	}
	return starts
}

func consume(mask []bool, from, to int) {
	for i := from; i < to; i++ {
		mask[i] = true
	}
}

// ISO2ToISO3 converts a comma-separated ISO2 field. Unknown codes are dropped.
func (idx *CountryIndex) ISO2ToISO3(field string) []string {
	return lookupList(field, ",", idx.iso2)
}

// HeadlineToISO3 maps the "/"-separated country part of a headline through
// the alias table.
func (idx *CountryIndex) HeadlineToISO3(field string) []string {
	return lookupList(field, "/", idx.headline)
}

// NameZH returns the monitoring name of a code, or "".
func (idx *CountryIndex) NameZH(iso3 string) string {
	return idx.nameZH[iso3]
}

// NameEN returns the English name of a code, or "".
func (idx *CountryIndex) NameEN(iso3 string) string {
	return idx.nameEN[iso3]
}

func lookupList(field, sep string, table map[string]string) []string {
	if strings.TrimSpace(field) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(field, sep) {
		if code, ok := table[strings.TrimSpace(part)]; ok && code != "" {
			out = append(out, code)
		}
	}
	return out
}

// CombineCountryCodes unions code lists from every source into one sorted,
// de-duplicated list. It returns nil when all sources are empty.
func CombineCountryCodes(sources ...[]string) []string {
	set := make(map[string]struct{})
	for _, codes := range sources {
		for _, c := range codes {
			if c != "" {
				set[c] = struct{}{}
			}
		}
	}
	return sortedKeys(set)
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
