package lookup

import (
	"github.com/nyaruka/phonenumbers"

	"github.com/razberi-py/phone-number-lookup/internal/model"
)

// Service resolves carrier and number-type information for the parsed
// number. Carrier data comes from static prefix tables and is unavailable
// for many fixed-line ranges; those resolve to the Unknown placeholder.
func Service(num *phonenumbers.PhoneNumber, lang string) model.ServiceInfo {
	carrier, err := phonenumbers.GetCarrierForNumber(num, lang)
	if err != nil {
		carrier = ""
	}

	numType := phonenumbers.GetNumberType(num)

	return model.ServiceInfo{
		Carrier:          model.OrUnknown(carrier),
		CarrierAvailable: carrier != "",
		NumberType:       TypeName(numType),
		IsMobile:         numType == phonenumbers.MOBILE,
		IsFixedLine:      numType == phonenumbers.FIXED_LINE,
		IsFixedOrMobile:  numType == phonenumbers.FIXED_LINE_OR_MOBILE,
		IsVoIP:           numType == phonenumbers.VOIP,
		IsTollFree:       numType == phonenumbers.TOLL_FREE,
		IsPremiumRate:    numType == phonenumbers.PREMIUM_RATE,
		IsSpecialService: numType == phonenumbers.PREMIUM_RATE ||
			numType == phonenumbers.SHARED_COST ||
			numType == phonenumbers.UAN,
		LikelyBillable: numType != phonenumbers.TOLL_FREE &&
			numType != phonenumbers.VOICEMAIL,
	}
}
