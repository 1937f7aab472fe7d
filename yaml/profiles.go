// Package yaml loads named selector profiles from YAML files, so
// recurring page layouts can be referenced by name instead of spelling
// out three selector patterns per run.
package yaml

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pjanik/cardscrape"
)

// Profiles maps profile names to selector sets.
type Profiles map[string]cardscrape.Selectors

// LoadProfiles reads a YAML file of the form:
//
//	directory-site:
//	  card: div.business-card
//	  name: h2
//	  email: span.email
//
// Selector completeness is validated per profile; syntax validation
// happens later, when a profile is compiled into an extractor.
func LoadProfiles(path string) (Profiles, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var profiles Profiles
	if err := yaml.Unmarshal(data, &profiles); err != nil {
		return nil, cardscrape.Errorf(cardscrape.EINVALID, "invalid profiles file %q: %v", path, err)
	}

	for name, sel := range profiles {
		if err := sel.Validate(); err != nil {
			return nil, cardscrape.Errorf(cardscrape.EINVALID,
				"profile %q: %s", name, cardscrape.ErrorMessage(err))
		}
	}

	return profiles, nil
}

// Lookup returns the named profile's selectors.
// Returns ENOTFOUND if the profile does not exist.
func (p Profiles) Lookup(name string) (cardscrape.Selectors, error) {
	sel, ok := p[name]
	if !ok {
		return cardscrape.Selectors{}, cardscrape.Errorf(cardscrape.ENOTFOUND, "profile %q not found", name)
	}
	return sel, nil
}
