package lookup

import (
	"strconv"

	"github.com/biter777/countries"

	"github.com/razberi-py/phone-number-lookup/internal/model"
)

// countryFields resolves ISO 3166 country metadata for a region code.
// Unresolvable regions (empty code, non-geographic calling codes) yield
// the Unknown placeholder in every field.
func countryFields(regionCode string) model.Geographic {
	geo := model.Geographic{
		RegionCode:     model.OrUnknown(regionCode),
		CountryName:    model.Unknown,
		CountryAlpha3:  model.Unknown,
		CountryNumeric: model.Unknown,
		Capital:        model.Unknown,
		Continent:      model.Unknown,
	}
	if regionCode == "" {
		return geo
	}

	country := countries.ByName(regionCode)
	if country == countries.Unknown {
		return geo
	}

	geo.CountryName = country.String()
	geo.CountryAlpha3 = country.Alpha3()
	geo.CountryNumeric = strconv.Itoa(int(country))
	geo.Capital = model.OrUnknown(country.Capital().String())
	geo.Continent = model.OrUnknown(country.Region().String())
	return geo
}
