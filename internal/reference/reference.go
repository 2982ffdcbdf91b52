// Package reference assembles the immutable lookup catalog from the country
// and transmission-route workbooks and the static dictionaries.
package reference

import (
	"fmt"
	"log/slog"

	"github.com/couchcryptid/epi-surveillance-etl/internal/domain"
)

// Options locates the reference inputs.
type Options struct {
	CountryPath    string
	CountrySheet   string // empty selects the first sheet
	RegionSheet    string
	RoutePath      string
	DictionaryPath string // empty uses the built-in dictionaries
}

// Reference is the loaded catalog plus the dictionaries it was built from.
type Reference struct {
	Catalog      *domain.Catalog
	Dictionaries *Dictionaries
}

// Load reads every reference input and builds the catalog.
func Load(opts Options, logger *slog.Logger) (*Reference, error) {
	dicts, err := LoadDictionaries(opts.DictionaryPath)
	if err != nil {
		return nil, err
	}
	countries, err := LoadCountries(opts.CountryPath, opts.CountrySheet)
	if err != nil {
		return nil, fmt.Errorf("load countries: %w", err)
	}
	regions, err := LoadRegions(opts.CountryPath, opts.RegionSheet)
	if err != nil {
		return nil, fmt.Errorf("load regions: %w", err)
	}
	routes, err := LoadRoutes(opts.RoutePath)
	if err != nil {
		return nil, fmt.Errorf("load routes: %w", err)
	}

	cat := Build(countries, regions, routes, dicts)
	logger.Info("reference catalog loaded",
		"countries", len(countries),
		"regions", len(regions),
		"routes", len(routes),
		"disease_labels", len(dicts.DiseaseLabels),
	)
	return &Reference{Catalog: cat, Dictionaries: dicts}, nil
}

// Build assembles a catalog from already loaded tables.
func Build(countries []domain.CountryEntry, regions, routes map[string]string, dicts *Dictionaries) *domain.Catalog {
	return domain.NewCatalog(
		domain.NewCountryIndex(countries),
		domain.NewDiseaseDictionary(dicts.DiseaseLabels, dicts.DiseaseEnglish, routes),
		domain.NewRegionTable(regions, dicts.WHORegionPatches, dicts.WHORegionEnglish),
		dicts.SourceNames,
	)
}
