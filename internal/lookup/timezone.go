package lookup

import (
	"time"
	_ "time/tzdata" // Embed the IANA timezone database so local-time resolution works without OS zoneinfo

	"github.com/nyaruka/phonenumbers"

	"github.com/razberi-py/phone-number-lookup/internal/model"
)

// unknownZone is the sentinel the metadata library returns for numbers it
// cannot map to any timezone.
const unknownZone = "Etc/Unknown"

// Timezones resolves the timezones associated with the parsed number and
// the local clock state in each of them at the reference instant.
//
// The reference instant is injected rather than read from the wall clock so
// that two runs over the same input at the same instant produce identical
// reports.
func Timezones(num *phonenumbers.PhoneNumber, ref time.Time) model.TimezoneInfo {
	info := model.TimezoneInfo{
		Primary:      model.Unknown,
		LocalTime:    model.Unknown,
		LocalTime12h: model.Unknown,
		LocalDate:    model.Unknown,
		UTCOffset:    model.Unknown,
		Abbreviation: model.Unknown,
	}

	zones, err := phonenumbers.GetTimezonesForNumber(num)
	if err != nil {
		return info
	}
	zones = dropUnknownZones(zones)
	if len(zones) == 0 {
		return info
	}

	info.Zones = zones
	info.Count = len(zones)
	info.Primary = zones[0]
	info.SpansMultiple = len(zones) > 1

	primary, err := zoneDetail(zones[0], ref)
	if err == nil {
		info.LocalTime = primary.LocalTime
		info.UTCOffsetHours = primary.UTCOffsetHours
		info.IsDST = primary.IsDST
		info.Abbreviation = primary.Abbreviation

		local := ref.In(mustLocation(zones[0]))
		info.LocalTime12h = local.Format("03:04 PM")
		info.LocalDate = local.Format("2006-01-02")
		info.UTCOffset = local.Format("-0700")
	}

	if info.SpansMultiple {
		for _, zone := range zones {
			detail, err := zoneDetail(zone, ref)
			if err != nil {
				continue
			}
			info.ZoneDetails = append(info.ZoneDetails, detail)
		}
	}

	return info
}

// zoneDetail resolves the local clock state of one IANA zone at ref.
func zoneDetail(zone string, ref time.Time) (model.ZoneDetail, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return model.ZoneDetail{}, err
	}

	local := ref.In(loc)
	abbrev, offset := local.Zone()

	return model.ZoneDetail{
		Zone:           zone,
		LocalTime:      local.Format(time.RFC3339),
		UTCOffsetHours: float64(offset) / 3600,
		Abbreviation:   abbrev,
		IsDST:          local.IsDST(),
	}, nil
}

// mustLocation loads a zone that zoneDetail already resolved successfully.
func mustLocation(zone string) *time.Location {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// dropUnknownZones filters out the library's unknown-zone sentinel.
func dropUnknownZones(zones []string) []string {
	out := zones[:0]
	for _, z := range zones {
		if z != unknownZone {
			out = append(out, z)
		}
	}
	return out
}
