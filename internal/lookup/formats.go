package lookup

import (
	"github.com/nyaruka/phonenumbers"

	"github.com/razberi-py/phone-number-lookup/internal/model"
)

// E164 renders the parsed number in E.164 format. It is the canonical
// spelling used to key history records.
func E164(num *phonenumbers.PhoneNumber) string {
	return phonenumbers.Format(num, phonenumbers.E164)
}

// Region returns the ISO 3166-1 alpha-2 region the parsed number resolves
// to, or the empty string for non-geographic numbers.
func Region(num *phonenumbers.PhoneNumber) string {
	return phonenumbers.GetRegionCodeForNumber(num)
}

// Formats renders the parsed number in every standard format.
func Formats(num *phonenumbers.PhoneNumber, raw string) model.NumberFormats {
	return model.NumberFormats{
		Input:         raw,
		E164:          phonenumbers.Format(num, phonenumbers.E164),
		International: phonenumbers.Format(num, phonenumbers.INTERNATIONAL),
		National:      phonenumbers.Format(num, phonenumbers.NATIONAL),
		RFC3966:       phonenumbers.Format(num, phonenumbers.RFC3966),
		CleanedInput:  SanitizeInput(raw),
	}
}

// Validation runs the validity checks for the parsed number.
func Validation(num *phonenumbers.PhoneNumber) model.Validation {
	valid := phonenumbers.IsValidNumber(num)
	result := "INVALID"
	if valid {
		result = "VALID"
	}

	return model.Validation{
		IsValid:          valid,
		IsPossible:       phonenumbers.IsPossibleNumber(num),
		IsValidForRegion: phonenumbers.IsValidNumberForRegion(num, phonenumbers.GetRegionCodeForNumber(num)),
		Result:           result,
		PossibleReason:   possibleReasonText(phonenumbers.IsPossibleNumberWithReason(num)),
	}
}

// Structure breaks the parsed number into its structural components.
func Structure(num *phonenumbers.PhoneNumber) model.Structure {
	national := phonenumbers.GetNationalSignificantNumber(num)
	e164 := phonenumbers.Format(num, phonenumbers.E164)

	return model.Structure{
		CountryCode:          int(num.GetCountryCode()),
		NationalNumber:       national,
		NationalNumberLength: len(national),
		TotalDigits:          countDigits(e164),
		HasExtension:         num.GetExtension() != "",
		Extension:            model.OrUnknown(num.GetExtension()),
		ItalianLeadingZero:   num.GetItalianLeadingZero(),
		LeadingZeros:         int(num.GetNumberOfLeadingZeros()),
	}
}

// countDigits counts the decimal digits in s.
func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
