package domain

// Bucket used for codes without a WHO region, and for rows without a country.
const (
	OtherRegion   = "其它"
	OtherRegionEN = "Other"
)

// RegionTable maps ISO3 codes to WHO regions.
type RegionTable struct {
	regions map[string]string
	english map[string]string
}

// NewRegionTable merges the reference sheet with manual patches (patches win)
// and keeps the Chinese-to-English region names.
func NewRegionTable(sheet, patches, english map[string]string) *RegionTable {
	regions := make(map[string]string, len(sheet)+len(patches))
	for k, v := range sheet {
		if v != "" {
			regions[k] = v
		}
	}
	for k, v := range patches {
		regions[k] = v
	}
	return &RegionTable{regions: regions, english: english}
}

// Region returns the Chinese and English WHO region of a code. Unmapped and
// empty codes fall into the "Other" bucket.
func (r *RegionTable) Region(iso3 string) (string, string) {
	zh, ok := r.regions[iso3]
	if !ok {
		zh = OtherRegion
	}
	en, ok := r.english[zh]
	if !ok {
		en = OtherRegionEN
	}
	return zh, en
}
