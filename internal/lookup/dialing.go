package lookup

import (
	"strconv"

	"github.com/nyaruka/phonenumbers"

	"github.com/razberi-py/phone-number-lookup/internal/model"
)

// Technical resolves dialing metadata for the number's region.
func Technical(num *phonenumbers.PhoneNumber) model.TechnicalData {
	region := phonenumbers.GetRegionCodeForNumber(num)

	ndd := ""
	if region != "" {
		ndd = phonenumbers.GetNddPrefixForRegion(region, true)
	}

	return model.TechnicalData{
		NationalDialingPrefix: model.OrUnknown(ndd),
		CountryCallingCode:    "+" + strconv.Itoa(int(num.GetCountryCode())),
		IsNANPA:               region != "" && phonenumbers.IsNANPACountry(region),
		GeoAreaCodeLength:     phonenumbers.GetLengthOfGeographicalAreaCode(num),
		DestinationCodeLength: phonenumbers.GetLengthOfNationalDestinationCode(num),
	}
}

// exampleTypes lists the number types for which example numbers are shown,
// in display order.
var exampleTypes = []phonenumbers.PhoneNumberType{
	phonenumbers.MOBILE,
	phonenumbers.FIXED_LINE,
	phonenumbers.TOLL_FREE,
	phonenumbers.PREMIUM_RATE,
}

// Examples returns example numbers of each common type for a region.
// Types without an example in the numbering plan are skipped.
func Examples(region string) []model.ExampleNumber {
	if region == "" {
		return nil
	}

	var examples []model.ExampleNumber
	for _, t := range exampleTypes {
		num := phonenumbers.GetExampleNumberForType(region, t)
		if num == nil {
			continue
		}
		examples = append(examples, model.ExampleNumber{
			Type:          TypeName(t),
			National:      phonenumbers.Format(num, phonenumbers.NATIONAL),
			International: phonenumbers.Format(num, phonenumbers.INTERNATIONAL),
		})
	}
	return examples
}
