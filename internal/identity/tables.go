package identity

import "strings"

// Region is one row of a locale's geography table. City, state, ZIP
// prefix and area code drawn from the same row are mutually consistent.
type Region struct {
	State       string
	Cities      []string
	ZipPrefixes []string
	AreaCodes   []string
}

// Locale bundles the reference data that shapes generated values.
type Locale struct {
	Tag         string
	MaleNames   []string
	FemaleNames []string
	Surnames    []string
	Regions     []Region
	// PhonePattern uses '@' for the next area-code digit and '#' for a
	// random digit; everything else is copied.
	PhonePattern string
}

// DefaultLocale is used when no locale is configured.
const DefaultLocale = "en_US"

var usRegions = []Region{
	{"NY", []string{"New York", "Buffalo", "Rochester", "Albany"}, []string{"100", "101", "102", "142", "146", "122"}, []string{"212", "718", "716", "585", "518"}},
	{"CA", []string{"Los Angeles", "San Diego", "San Francisco", "Sacramento", "San Jose", "Fresno"}, []string{"900", "902", "921", "941", "958", "951", "937"}, []string{"213", "310", "619", "415", "916", "408", "559"}},
	{"TX", []string{"Houston", "Dallas", "Austin", "San Antonio", "El Paso", "Fort Worth"}, []string{"770", "752", "787", "782", "799", "761"}, []string{"713", "214", "512", "210", "915", "817"}},
	{"IL", []string{"Chicago", "Springfield", "Peoria"}, []string{"606", "627", "616"}, []string{"312", "773", "217", "309"}},
	{"AZ", []string{"Phoenix", "Tucson", "Mesa"}, []string{"850", "857", "852"}, []string{"602", "520", "480"}},
	{"PA", []string{"Philadelphia", "Pittsburgh", "Allentown"}, []string{"191", "152", "181"}, []string{"215", "412", "610"}},
	{"FL", []string{"Miami", "Orlando", "Tampa", "Jacksonville"}, []string{"331", "328", "336", "322"}, []string{"305", "407", "813", "904"}},
	{"OH", []string{"Columbus", "Cleveland", "Cincinnati"}, []string{"432", "441", "452"}, []string{"614", "216", "513"}},
	{"WA", []string{"Seattle", "Spokane", "Tacoma"}, []string{"981", "992", "984"}, []string{"206", "509", "253"}},
	{"CO", []string{"Denver", "Colorado Springs", "Boulder"}, []string{"802", "809", "803"}, []string{"303", "719", "720"}},
	{"GA", []string{"Atlanta", "Savannah", "Augusta"}, []string{"303", "314", "309"}, []string{"404", "912", "706"}},
	{"MA", []string{"Boston", "Worcester", "Springfield"}, []string{"021", "016", "011"}, []string{"617", "508", "413"}},
	{"TN", []string{"Nashville", "Memphis", "Knoxville"}, []string{"372", "381", "379"}, []string{"615", "901", "865"}},
	{"OR", []string{"Portland", "Salem", "Eugene"}, []string{"972", "973", "974"}, []string{"503", "541"}},
	{"NV", []string{"Las Vegas", "Reno", "Henderson"}, []string{"891", "895", "890"}, []string{"702", "775"}},
	{"MN", []string{"Minneapolis", "Saint Paul", "Duluth"}, []string{"554", "551", "558"}, []string{"612", "651", "218"}},
}

var locales = map[string]Locale{
	"en_US": {
		Tag:          "en_US",
		MaleNames:    maleNames,
		FemaleNames:  femaleNames,
		Surnames:     surnames,
		Regions:      usRegions,
		PhonePattern: "(@@@) 555-####",
	},
}

// ParseLocale resolves a tag such as "en_US" or "en-us" to a known locale.
func ParseLocale(tag string) (Locale, error) {
	norm := normalizeTag(tag)
	if loc, ok := locales[norm]; ok {
		return loc, nil
	}
	return Locale{}, &ValidationError{Field: "locale", Value: tag, Reason: "unsupported locale"}
}

func normalizeTag(tag string) string {
	tag = strings.ReplaceAll(strings.TrimSpace(tag), "-", "_")
	lang, region, ok := strings.Cut(tag, "_")
	if !ok {
		return strings.ToLower(tag)
	}
	return strings.ToLower(lang) + "_" + strings.ToUpper(region)
}

// span is an inclusive integer range.
type span struct{ lo, hi int }

func (s span) contains(v int) bool { return v >= s.lo && v <= s.hi }

// excluded SSN area groups: never issued (000), reserved (666) and the
// 900-999 block used for ITINs.
var ssnExcludedAreas = []span{{0, 0}, {666, 666}, {900, 999}}

// cardPrefix is a range of issuer prefixes of a fixed digit width.
type cardPrefix struct {
	span
	digits int
}

// cardNetwork describes the prefix ranges and canonical length of a
// payment network.
type cardNetwork struct {
	name     string
	prefixes []cardPrefix
	length   int
}

var cardNetworks = []cardNetwork{
	{"visa", []cardPrefix{{span{4, 4}, 1}}, 16},
	{"mastercard", []cardPrefix{{span{51, 55}, 2}, {span{2221, 2720}, 4}}, 16},
	{"amex", []cardPrefix{{span{34, 34}, 2}, {span{37, 37}, 2}}, 15},
	{"discover", []cardPrefix{{span{6011, 6011}, 4}, {span{65, 65}, 2}}, 16},
}
