package lookup

import (
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Parse parses raw user input into a structured phone number.
//
// The input is first parsed as entered, which succeeds for international
// numbers carrying a country code. If that fails, parsing is retried with
// defaultRegion as the numbering plan context. If both attempts fail, the
// returned error wraps ErrInvalidInput.
func Parse(raw, defaultRegion string) (*phonenumbers.PhoneNumber, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidInput)
	}

	num, err := phonenumbers.Parse(trimmed, "")
	if err == nil {
		return num, nil
	}

	num, err = phonenumbers.Parse(trimmed, defaultRegion)
	if err != nil {
		return nil, fmt.Errorf("%w: %q (%v)", ErrInvalidInput, trimmed, err)
	}
	return num, nil
}

// SanitizeInput strips everything from raw except digits and a leading plus.
func SanitizeInput(raw string) string {
	var sb strings.Builder
	for i, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == '+' && i == 0:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// TypeName returns the human-readable name of a number type.
func TypeName(t phonenumbers.PhoneNumberType) string {
	switch t {
	case phonenumbers.FIXED_LINE:
		return "Fixed Line"
	case phonenumbers.MOBILE:
		return "Mobile"
	case phonenumbers.FIXED_LINE_OR_MOBILE:
		return "Fixed Line or Mobile"
	case phonenumbers.TOLL_FREE:
		return "Toll Free"
	case phonenumbers.PREMIUM_RATE:
		return "Premium Rate"
	case phonenumbers.SHARED_COST:
		return "Shared Cost"
	case phonenumbers.VOIP:
		return "VoIP"
	case phonenumbers.PERSONAL_NUMBER:
		return "Personal Number"
	case phonenumbers.PAGER:
		return "Pager"
	case phonenumbers.UAN:
		return "Universal Access Number"
	case phonenumbers.VOICEMAIL:
		return "Voicemail"
	default:
		return "Unknown"
	}
}

// possibleReasonText maps a possibility check result to display text.
func possibleReasonText(r phonenumbers.ValidationResult) string {
	switch r {
	case phonenumbers.IS_POSSIBLE:
		return "IS_POSSIBLE"
	case phonenumbers.IS_POSSIBLE_LOCAL_ONLY:
		return "IS_POSSIBLE_LOCAL_ONLY"
	case phonenumbers.INVALID_COUNTRY_CODE:
		return "INVALID_COUNTRY_CODE"
	case phonenumbers.TOO_SHORT:
		return "TOO_SHORT"
	case phonenumbers.TOO_LONG:
		return "TOO_LONG"
	case phonenumbers.INVALID_LENGTH:
		return "INVALID_LENGTH"
	default:
		return "UNKNOWN"
	}
}
