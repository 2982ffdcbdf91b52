package domain

import "slices"

// Expand unnests a resolved record into one row per (country, disease) pair.
// A missing country or disease list contributes a single missing element, so
// every record yields at least one row. Reference joins and the display
// composites are filled per row.
func Expand(r ResolvedRecord, cat *Catalog) []ResolvedEvent {
	countries := r.Countries
	if len(countries) == 0 {
		countries = []string{""}
	}
	diseases := r.Diseases
	if len(diseases) == 0 {
		diseases = []string{""}
	}

	now := clock.Now().UTC()
	events := make([]ResolvedEvent, 0, len(countries)*len(diseases))
	for _, country := range countries {
		nameZH := cat.Countries.NameZH(country)
		nameEN := cat.Countries.NameEN(country)
		region, regionEN := cat.Regions.Region(country)

		for _, disease := range diseases {
			diseaseEN := cat.Diseases.EnglishName(disease)
			events = append(events, ResolvedEvent{
				ID:                generateID(r.SurveillanceRecord, country, disease),
				CountryISO3:       country,
				DiseaseName:       disease,
				DiseaseNameEN:     diseaseEN,
				CountryNameZH:     nameZH,
				CountryNameEN:     nameEN,
				CountryDisease:    composite(nameZH, disease),
				CountryDiseaseEN:  composite(nameEN, diseaseEN),
				TransmissionRoute: cat.Diseases.TransmissionRoute(r.DiseaseLabel, disease),
				WHORegion:         region,
				WHORegionEN:       regionEN,
				Date:              r.Date,
				Description:       r.Description,
				Source:            r.Source,
				SourceList:        slices.Clone(r.SourceList),
				SourceTime:        r.SourceTime,
				SourceTime2:       r.SourceTime2,
				ProcessedAt:       now,
			})
		}
	}
	return events
}

// composite joins a country name and a disease name as "Country_Disease", or
// returns "" when either part is missing.
func composite(country, disease string) string {
	if country == "" || disease == "" {
		return ""
	}
	return country + "_" + disease
}
