package identity

import "strings"

// Gender is the closed set of gender values a record may carry.
type Gender string

const (
	Male        Gender = "Male"
	Female      Gender = "Female"
	Unspecified Gender = "Unspecified"
)

// ParseGender maps free-form input onto the enumeration. Unrecognized or
// empty input yields Unspecified and ok=false.
func ParseGender(s string) (g Gender, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return Male, true
	case "female", "f":
		return Female, true
	case "unspecified", "u", "x":
		return Unspecified, true
	}
	return Unspecified, false
}

// Valid reports whether g is one of the enumerated values.
func (g Gender) Valid() bool {
	switch g {
	case Male, Female, Unspecified:
		return true
	}
	return false
}

func (g Gender) String() string { return string(g) }
