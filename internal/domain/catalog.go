package domain

import "strings"

// Catalog bundles the reference tables every resolver step needs. It is built
// once at startup, never mutated, and passed explicitly.
type Catalog struct {
	Countries   *CountryIndex
	Diseases    *DiseaseDictionary
	Regions     *RegionTable
	sourceNames map[string]string
}

// NewCatalog assembles a Catalog. Source-name keys are lower-cased because
// citations are lower-cased before lookup.
func NewCatalog(countries *CountryIndex, diseases *DiseaseDictionary, regions *RegionTable, sourceNames map[string]string) *Catalog {
	names := make(map[string]string, len(sourceNames))
	for k, v := range sourceNames {
		names[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return &Catalog{
		Countries:   countries,
		Diseases:    diseases,
		Regions:     regions,
		sourceNames: names,
	}
}
