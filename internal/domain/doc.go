// Package domain models public-health surveillance bulletins and the rules
// that turn them into per-country, per-disease analysis rows.
//
// # Data Sources
//
// Travel alerts are published by the national CDC as CSV exports (a history
// file and a current file). Each row is one bulletin. An epidemic-intelligence
// workbook carries the citation ("Source") and up to two source dates for the
// same bulletins and is joined on (publish date, headline). Reference
// workbooks supply the country vocabulary, WHO regions and transmission routes.
//
// # Bulletin Conventions
//
// Headline format:
//
//	"<country> - <disease>"  →  e.g. "巴西 - 登革熱"
//	The separator may be a half-width "-", a full-width "－" or a box-drawing
//	"─". Only the first separator splits; the rest stays in the disease part.
//	Multiple countries are joined with "/", as are multiple diseases:
//	"美國/加拿大 - 麻疹/德國麻疹".
//
// ISO3166 field:
//
//	Comma-separated ISO 3166-1 alpha-2 codes, e.g. "BR,AR".
//
// Description:
//
//	Free Chinese text naming the affected countries. A sentence of the form
//	"<A>公布<B>..." means country A announced figures about B; A is the
//	reporter, not an affected country, and is excluded at that position.
//	Cut-off dates appear as "截至今年3/5" or "截至6月25日" ("as of this year
//	March 5", "as of June 25").
//
// Source citation:
//
//	Media names joined with "、", each optionally followed by a "M/D" date,
//	e.g. "WHO 9/20、美國CDC 9/22".
//
// # Resolution Rules
//
// Country extraction tries every known name variation from longest to
// shortest (by Unicode code points). A matched variation consumes its text so
// that a shorter name contained in it, e.g. "剛果" inside "剛果民主共和國",
// cannot match the same characters again. See [CountryIndex.ExtractCountries].
//
// Disease labels are looked up directly, then after NFKC normalization, and
// fall back to the normalized label when unmapped. Nothing is ever dropped.
//
// # Timeliness
//
// The reporting lag of a bulletin is the number of days between its publish
// date and the best available source date. Four candidates are considered in
// strict priority order; see [ReconcileSourceTime]. All month/day fragments
// take the publish year, and fragments later than the publish date are
// discarded.
//
// # Missing Values
//
// The zero [Date] and the empty string mean "missing". Resolvers return nil
// slices, not empty ones, when nothing resolved.
package domain
