package chat

import (
	"time"

	"golang.org/x/text/language"
)

const (
	layout12Hour = "3:04:05 PM"
	layout24Hour = "15:04:05"
)

// twelveHourRegions lists regions whose default clock is 12-hour.
var twelveHourRegions = map[string]struct{}{
	"US": {}, "CA": {}, "AU": {}, "NZ": {}, "IN": {}, "PH": {}, "PK": {},
	"BD": {}, "EG": {}, "SA": {}, "JO": {}, "MY": {}, "CO": {}, "SV": {},
	"HN": {}, "NI": {}, "IE": {}, "KR": {}, "TW": {},
}

// ClockLayout returns the time.Format layout for an hour:minute:second clock
// in the given locale. A tag without a region uses its most likely region,
// so "en" renders like "en-US".
func ClockLayout(tag language.Tag) string {
	region, _ := tag.Region()
	if _, ok := twelveHourRegions[region.String()]; ok {
		return layout12Hour
	}
	return layout24Hour
}

// ParseLocale parses a BCP 47 tag, falling back to American English when the
// value is empty or malformed.
func ParseLocale(value string) language.Tag {
	if value == "" {
		return language.AmericanEnglish
	}
	tag, err := language.Parse(value)
	if err != nil {
		return language.AmericanEnglish
	}
	return tag
}

// Clock returns the current time.
type Clock func() time.Time
