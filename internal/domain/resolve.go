package domain

// ResolveRecord attaches countries, diseases and the cleaned source list to a
// record. Countries are the union of the ISO2 field, the description and the
// headline. A nil extractor uses the catalog's index directly.
func ResolveRecord(rec SurveillanceRecord, cat *Catalog, extractor CountryExtractor) ResolvedRecord {
	if extractor == nil {
		extractor = cat.Countries
	}

	countries := CombineCountryCodes(
		cat.Countries.ISO2ToISO3(rec.ISO3166),
		extractor.ExtractCountries(rec.Description),
		cat.Countries.HeadlineToISO3(rec.HeadlineCountry),
	)
	label := cat.Diseases.ResolveDisease(rec.HeadlineDisease)

	return ResolvedRecord{
		SurveillanceRecord: rec,
		Countries:          countries,
		DiseaseLabel:       label,
		Diseases:           SplitDiseases(label),
		SourceList:         ProcessSourceList(rec.Source, cat),
	}
}
