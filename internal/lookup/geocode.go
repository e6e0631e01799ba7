package lookup

import (
	"sort"
	"strings"

	"github.com/nyaruka/phonenumbers"

	"github.com/razberi-py/phone-number-lookup/internal/model"
)

// Geographic resolves region, country, and location information for the
// parsed number. primaryLang is the geocoder language for the main
// description; extraLangs are additional languages whose descriptions are
// reported only when they differ from the primary one.
func Geographic(num *phonenumbers.PhoneNumber, primaryLang string, extraLangs []string) model.Geographic {
	region := phonenumbers.GetRegionCodeForNumber(num)
	geo := countryFields(region)

	geo.AssociatedRegions = regionsForCallingCode(int(num.GetCountryCode()))
	geo.RegionCount = len(geo.AssociatedRegions)
	geo.MultiRegion = geo.RegionCount > 1

	primary, err := phonenumbers.GetGeocodingForNumber(num, primaryLang)
	if err != nil {
		primary = ""
	}
	geo.PrimaryLocation = model.OrUnknown(primary)

	for _, lang := range extraLangs {
		desc, err := phonenumbers.GetGeocodingForNumber(num, lang)
		if err != nil || desc == "" || desc == primary {
			continue
		}
		if geo.AlternateLocations == nil {
			geo.AlternateLocations = make(map[string]string)
		}
		geo.AlternateLocations[lang] = desc
	}

	geo.City, geo.StateProvince = splitLocation(primary)
	geo.LocationConfidence = locationConfidence(primary)

	areaCodeFields(num, &geo)
	return geo
}

// splitLocation splits a comma-separated geocoder description into a city
// and a state/province component. Missing components come back as the
// Unknown placeholder.
func splitLocation(desc string) (city, state string) {
	city, state = model.Unknown, model.Unknown
	if desc == "" {
		return city, state
	}

	parts := strings.Split(desc, ",")
	city = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		state = strings.TrimSpace(parts[1])
	}
	return city, state
}

// locationConfidence grades how specific a geocoder description is.
// A description with a comma usually carries city-level detail.
func locationConfidence(desc string) string {
	switch {
	case desc == "":
		return "low"
	case strings.Contains(desc, ","):
		return "high"
	default:
		return "medium"
	}
}

// regionsForCallingCode returns the sorted list of regions that share the
// given country calling code.
func regionsForCallingCode(callingCode int) []string {
	var regions []string
	for region := range phonenumbers.GetSupportedRegions() {
		if phonenumbers.GetCountryCodeForRegion(region) == callingCode {
			regions = append(regions, region)
		}
	}
	sort.Strings(regions)
	return regions
}

// areaCodeFields extracts area, exchange, and subscriber portions from the
// national number.
//
// For ten-digit NANP numbers the 3-3-4 split is exact. For other regions
// the national destination code length from the numbering plan is used when
// available, falling back to the first three digits.
func areaCodeFields(num *phonenumbers.PhoneNumber, geo *model.Geographic) {
	national := phonenumbers.GetNationalSignificantNumber(num)
	geo.AreaCode = model.Unknown
	geo.ExchangeCode = model.Unknown
	geo.SubscriberNumber = model.Unknown

	if num.GetCountryCode() == 1 && len(national) == 10 {
		geo.NANPFormat = true
		geo.AreaCode = national[:3]
		geo.ExchangeCode = national[3:6]
		geo.SubscriberNumber = national[6:]
		return
	}

	areaLen := phonenumbers.GetLengthOfNationalDestinationCode(num)
	if areaLen <= 0 || areaLen >= len(national) {
		areaLen = 3
	}
	if len(national) < areaLen {
		return
	}

	geo.AreaCode = national[:areaLen]
	rest := national[areaLen:]
	if len(rest) >= 3 {
		geo.ExchangeCode = rest[:3]
		if len(rest) > 3 {
			geo.SubscriberNumber = rest[3:]
		}
	}
}
