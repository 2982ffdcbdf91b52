package reference

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed dictionaries.yaml
var embeddedDictionaries []byte

// Dictionaries are the static lookup tables that do not come from the
// reference workbooks.
type Dictionaries struct {
	DiseaseLabels    map[string]string `yaml:"disease_labels"`
	DiseaseEnglish   map[string]string `yaml:"disease_english"`
	SourceNames      map[string]string `yaml:"source_names"`
	WHORegionPatches map[string]string `yaml:"who_region_patches"`
	WHORegionEnglish map[string]string `yaml:"who_region_english"`
	VisitorISO3      map[string]string `yaml:"visitor_iso3"`
}

// LoadDictionaries reads the dictionaries from path, or the built-in set when
// path is empty.
func LoadDictionaries(path string) (*Dictionaries, error) {
	data := embeddedDictionaries
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read dictionaries: %w", err)
		}
		data = b
	}
	return parseDictionaries(data)
}

func parseDictionaries(data []byte) (*Dictionaries, error) {
	var d Dictionaries
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse dictionaries: %w", err)
	}
	if len(d.DiseaseLabels) == 0 {
		return nil, fmt.Errorf("parse dictionaries: disease_labels is empty")
	}
	if len(d.WHORegionEnglish) == 0 {
		return nil, fmt.Errorf("parse dictionaries: who_region_english is empty")
	}
	return &d, nil
}
