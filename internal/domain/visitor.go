package domain

import (
	"cmp"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// visitorTotalRe matches the subtotal and total columns of the arrivals table.
var visitorTotalRe = regexp.MustCompile(`合計|小計|總計`)

// VisitorCount is one (year, residence, passengers) cell of the arrivals table.
type VisitorCount struct {
	Year       int
	Country    string // column label, e.g. "日本 Japan" or "東南亞地區_泰國 Thailand"
	Passengers int
}

// VisitorRanking lists the top residences of a year, most visitors first.
// ISO3 is aligned with Countries; "" marks an aggregate label without a code.
// Year is 0 for the all-years ranking.
type VisitorRanking struct {
	Year      int
	Countries []string
	ISO3      []string
}

// ParseVisitorYear reads the year from the last four characters of a row
// label, e.g. "民國113年 2024" -> 2024.
func ParseVisitorYear(label string) (int, bool) {
	label = strings.TrimSpace(label)
	r := []rune(label)
	if len(r) < 4 {
		return 0, false
	}
	y, err := strconv.Atoi(string(r[len(r)-4:]))
	if err != nil {
		return 0, false
	}
	return y, true
}

// ParsePassengers reads a passenger count. Thousands separators are removed,
// "-" means zero and anything unparseable counts as zero.
func ParsePassengers(s string) int {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" || s == "-" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int(v)
}

// IsVisitorTotal reports whether a column label is a subtotal or total.
func IsVisitorTotal(label string) bool {
	return visitorTotalRe.MatchString(label)
}

type visitorTotal struct {
	country    string
	passengers int
}

// TopVisitorCountriesByYear ranks residences per year by passengers and keeps
// the top n of each year. Years are ascending.
func TopVisitorCountriesByYear(rows []VisitorCount, n int, iso3 map[string]string) []VisitorRanking {
	byYear := make(map[int]map[string]int)
	for _, r := range rows {
		if IsVisitorTotal(r.Country) {
			continue
		}
		if byYear[r.Year] == nil {
			byYear[r.Year] = make(map[string]int)
		}
		byYear[r.Year][r.Country] += r.Passengers
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	slices.Sort(years)

	out := make([]VisitorRanking, 0, len(years))
	for _, y := range years {
		ranking := rankVisitors(byYear[y], n, iso3)
		ranking.Year = y
		out = append(out, ranking)
	}
	return out
}

// TopVisitorCountriesAllYears ranks residences by passengers summed over all
// years and keeps the top n.
func TopVisitorCountriesAllYears(rows []VisitorCount, n int, iso3 map[string]string) VisitorRanking {
	sums := make(map[string]int)
	for _, r := range rows {
		if IsVisitorTotal(r.Country) {
			continue
		}
		sums[r.Country] += r.Passengers
	}
	return rankVisitors(sums, n, iso3)
}

func rankVisitors(sums map[string]int, n int, iso3 map[string]string) VisitorRanking {
	totals := make([]visitorTotal, 0, len(sums))
	for c, p := range sums {
		totals = append(totals, visitorTotal{country: c, passengers: p})
	}
	slices.SortFunc(totals, func(a, b visitorTotal) int {
		if c := cmp.Compare(b.passengers, a.passengers); c != 0 {
			return c
		}
		return cmp.Compare(a.country, b.country)
	})
	if n >= 0 && len(totals) > n {
		totals = totals[:n]
	}

	var r VisitorRanking
	for _, t := range totals {
		r.Countries = append(r.Countries, t.country)
		r.ISO3 = append(r.ISO3, iso3[t.country])
	}
	return r
}
