package identity

import (
	"errors"
	"regexp"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

var fixedNow = time.Date(2026, 10, 18, 15, 30, 0, 0, time.UTC)

func newTestGenerator(seed uint64, opts ...Option) *Generator {
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return New(NewSeededSource(seed), opts...)
}

func regionFor(state string) (Region, bool) {
	for _, r := range usRegions {
		if r.State == state {
			return r, true
		}
	}
	return Region{}, false
}

func TestCompose(t *testing.T) {
	g := newTestGenerator(1)
	rec := g.ComposeRandom()

	uuidRe := regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

	tests := []struct {
		name  string
		check func() bool
	}{
		{"ID is uuid", func() bool { return uuidRe.MatchString(rec.ID) }},
		{"FirstName non-empty", func() bool { return rec.FirstName != "" }},
		{"LastName non-empty", func() bool { return rec.LastName != "" }},
		{"Gender is Male or Female", func() bool { return rec.Gender == Male || rec.Gender == Female }},
		{"BirthDate non-zero", func() bool { return !rec.BirthDate.IsZero() }},
		{"SSN shape", func() bool { return regexp.MustCompile(`^\d{3}-\d{2}-\d{4}$`).MatchString(rec.SSN) }},
		{"CreditCard digits", func() bool { return regexp.MustCompile(`^\d{15,16}$`).MatchString(rec.CreditCard) }},
		{"Address non-empty", func() bool { return rec.Address != "" }},
		{"City non-empty", func() bool { return rec.City != "" }},
		{"State length", func() bool { return len(rec.State) == 2 }},
		{"PostalCode length", func() bool { return len(rec.PostalCode) == 5 }},
		{"Email has @ sign", func() bool { return strings.Contains(rec.Email, "@") }},
		{"Phone non-empty", func() bool { return rec.Phone != "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.check() {
				t.Errorf("check failed for record: %+v", rec)
			}
		})
	}
}

func TestComposeHonorsHint(t *testing.T) {
	g := newTestGenerator(2)
	for _, hint := range []Gender{Male, Female, Unspecified} {
		for range 50 {
			rec := g.Compose(hint)
			if rec.Gender != hint {
				t.Fatalf("Compose(%s) gender = %s", hint, rec.Gender)
			}
			switch hint {
			case Male:
				if !slices.Contains(maleNames, rec.FirstName) {
					t.Fatalf("male record has first name %q outside male pool", rec.FirstName)
				}
			case Female:
				if !slices.Contains(femaleNames, rec.FirstName) {
					t.Fatalf("female record has first name %q outside female pool", rec.FirstName)
				}
			}
		}
	}
}

func TestComposeDeterministic(t *testing.T) {
	a := newTestGenerator(42)
	b := newTestGenerator(42)

	for i := range 5 {
		ra, rb := a.ComposeRandom(), b.ComposeRandom()
		if diff := cmp.Diff(ra, rb); diff != "" {
			t.Fatalf("record %d differs for equal seeds (-a +b):\n%s", i, diff)
		}
	}
}

func TestComposeSeedsDiffer(t *testing.T) {
	a := newTestGenerator(1).ComposeRandom()
	b := newTestGenerator(2).ComposeRandom()
	if a.ID == b.ID {
		t.Errorf("different seeds produced the same ID %q", a.ID)
	}
}

func TestFork(t *testing.T) {
	parent := newTestGenerator(7)
	again := newTestGenerator(7)

	c1 := parent.Fork().ComposeRandom()
	c2 := again.Fork().ComposeRandom()
	if diff := cmp.Diff(c1, c2); diff != "" {
		t.Fatalf("forks of equal parents differ (-a +b):\n%s", diff)
	}

	// the parent stream moved on, so its next child differs
	c3 := parent.Fork().ComposeRandom()
	if c1.ID == c3.ID {
		t.Error("successive forks should yield different streams")
	}
}

func TestNameGenderPools(t *testing.T) {
	tests := []struct {
		name   string
		gender Gender
		pool   []string
	}{
		{"male", Male, maleNames},
		{"female", Female, femaleNames},
	}

	g := newTestGenerator(3)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for range 500 {
				first, last := g.Name(tt.gender)
				if !slices.Contains(tt.pool, first) {
					t.Fatalf("first name %q not in %s pool", first, tt.name)
				}
				if !slices.Contains(surnames, last) {
					t.Fatalf("surname %q not in surname pool", last)
				}
			}
		})
	}
}

func TestNameUnspecifiedUsesBothPools(t *testing.T) {
	g := newTestGenerator(4)
	for _, gender := range []Gender{Unspecified, "", Gender("robot")} {
		var sawMale, sawFemale bool
		for range 500 {
			first, last := g.Name(gender)
			if first == "" || last == "" {
				t.Fatalf("Name(%q) returned empty part", gender)
			}
			sawMale = sawMale || slices.Contains(maleNames, first)
			sawFemale = sawFemale || slices.Contains(femaleNames, first)
		}
		if !sawMale || !sawFemale {
			t.Errorf("Name(%q) male=%v female=%v, want both pools", gender, sawMale, sawFemale)
		}
	}
}

func TestAddDays(t *testing.T) {
	d := func(y int, m time.Month, day int) time.Time {
		return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name  string
		start time.Time
		days  int
		want  time.Time
	}{
		{"zero", d(2023, 1, 1), 0, d(2023, 1, 1)},
		{"forward in month", d(2023, 1, 1), 10, d(2023, 1, 11)},
		{"back across year", d(1990, 1, 1), -15, d(1989, 12, 17)},
		{"into leap day", d(2024, 2, 28), 1, d(2024, 2, 29)},
		{"past leap day", d(2024, 2, 28), 2, d(2024, 3, 1)},
		{"non-leap february", d(2023, 2, 28), 1, d(2023, 3, 1)},
		{"leap day plus 365", d(2024, 2, 29), 365, d(2025, 2, 28)},
		{"leap day plus 366", d(2024, 2, 29), 366, d(2025, 3, 1)},
		{"leap day minus 366", d(2024, 2, 29), -366, d(2023, 2, 28)},
		{"century non-leap", d(1900, 2, 28), 1, d(1900, 3, 1)},
		{"drops time of day", time.Date(2020, 5, 5, 23, 59, 0, 0, time.UTC), 1, d(2020, 5, 6)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AddDays(tt.start, tt.days)
			if !got.Equal(tt.want) {
				t.Errorf("AddDays(%s, %d) = %s, want %s",
					tt.start.Format(DateLayout), tt.days, got.Format(DateLayout), tt.want.Format(DateLayout))
			}
		})
	}
}

func TestAddDaysRoundTrip(t *testing.T) {
	starts := []time.Time{
		time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2000, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, start := range starts {
		for n := -800; n <= 800; n += 7 {
			if got := AddDays(AddDays(start, n), -n); !got.Equal(start) {
				t.Fatalf("round trip %s by %d = %s", start.Format(DateLayout), n, got.Format(DateLayout))
			}
		}
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(1990, 1, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"iso", "1990-01-02", false},
		{"us dashes", "01-02-1990", false},
		{"us slashes", "01/02/1990", false},
		{"us slashes short", "1/2/1990", false},
		{"iso slashes", "1990/01/02", false},
		{"iso unpadded", "1990-1-2", false},
		{"rfc3339", "1990-01-02T10:00:00Z", false},
		{"padded", "  1990-01-02 ", false},
		{"empty", "", true},
		{"garbage", "not a date", true},
		{"impossible", "1990-02-30", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseDate(%q) = %s, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q): %v", tt.in, err)
			}
			if !got.Equal(want) {
				t.Errorf("ParseDate(%q) = %s, want %s", tt.in, got, want)
			}
		})
	}
}

func TestParseDateWith(t *testing.T) {
	want := time.Date(1990, 1, 2, 0, 0, 0, 0, time.UTC)

	got, err := ParseDateWith("02.01.1990", "02.01.2006")
	if err != nil {
		t.Fatalf("ParseDateWith: %v", err)
	}
	if !got.Equal(want) {
		t.Errorf("ParseDateWith = %s, want %s", got, want)
	}

	// configured layouts win over the accepted ones
	got, err = ParseDateWith("01/02/1990", "02/01/2006")
	if err != nil {
		t.Fatalf("ParseDateWith: %v", err)
	}
	if want := time.Date(1990, 2, 1, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("ParseDateWith day-first = %s, want %s", got, want)
	}

	// accepted layouts still apply
	if _, err := ParseDateWith("1990-01-02", "02.01.2006"); err != nil {
		t.Errorf("ParseDateWith iso: %v", err)
	}
	if _, err := ParseDate("02.01.1990"); err == nil {
		t.Error("ParseDate accepted a layout it was not given")
	}
}

func TestSSNExcludedAreas(t *testing.T) {
	g := newTestGenerator(5)
	re := regexp.MustCompile(`^(\d{3})-(\d{2})-(\d{4})$`)

	for range 10000 {
		ssn := g.SSN()
		m := re.FindStringSubmatch(ssn)
		if m == nil {
			t.Fatalf("ssn %q does not match NNN-NN-NNNN", ssn)
		}
		area := m[1]
		if area == "000" || area == "666" || area[0] == '9' {
			t.Fatalf("ssn %q uses excluded area group", ssn)
		}
		if m[2] == "00" || m[3] == "0000" {
			t.Fatalf("ssn %q has zero group or serial", ssn)
		}
	}
}

func TestCreditCard(t *testing.T) {
	g := newTestGenerator(6)
	seen := map[string]bool{}

	for range 2000 {
		cc := g.CreditCard()
		if !regexp.MustCompile(`^\d+$`).MatchString(cc) {
			t.Fatalf("card %q has non-digits", cc)
		}

		network := ""
		for _, n := range cardNetworks {
			for _, p := range n.prefixes {
				if len(cc) < p.digits {
					continue
				}
				v := 0
				for _, c := range cc[:p.digits] {
					v = v*10 + int(c-'0')
				}
				if p.contains(v) && len(cc) == n.length {
					network = n.name
				}
			}
		}
		if network == "" {
			t.Fatalf("card %q matches no network prefix/length", cc)
		}
		seen[network] = true

		if got := luhnDigit(cc[:len(cc)-1]); int(cc[len(cc)-1]-'0') != got {
			t.Fatalf("card %q fails luhn check", cc)
		}
	}

	if len(seen) != len(cardNetworks) {
		t.Errorf("saw networks %v, want all %d", seen, len(cardNetworks))
	}
}

func TestLuhnDigit(t *testing.T) {
	tests := []struct {
		body string
		want int
	}{
		{"7992739871", 3},
		{"411111111111111", 1},
		{"37828224631000", 5},
	}
	for _, tt := range tests {
		if got := luhnDigit(tt.body); got != tt.want {
			t.Errorf("luhnDigit(%s) = %d, want %d", tt.body, got, tt.want)
		}
	}
}

func TestUUID(t *testing.T) {
	g := newTestGenerator(8)
	re := regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
	seen := make(map[string]bool)
	for range 1000 {
		id := g.UUID()
		if !re.MatchString(id) {
			t.Fatalf("uuid %q is not 8-4-4-4-12 hex", id)
		}
		if seen[id] {
			t.Fatalf("uuid %q repeated", id)
		}
		seen[id] = true
	}
}

func TestAddressRegionConsistency(t *testing.T) {
	g := newTestGenerator(9)
	streetRe := regexp.MustCompile(`^\d+ [A-Za-z]+ [A-Za-z]+$`)

	for range 500 {
		a := g.Address()
		r, ok := regionFor(a.State)
		if !ok {
			t.Fatalf("state %q not in region table", a.State)
		}
		if !slices.Contains(r.Cities, a.City) {
			t.Fatalf("city %q does not belong to %s", a.City, a.State)
		}
		if len(a.PostalCode) != 5 || !slices.Contains(r.ZipPrefixes, a.PostalCode[:3]) {
			t.Fatalf("zip %q does not belong to %s", a.PostalCode, a.State)
		}
		if !streetRe.MatchString(a.Street) {
			t.Fatalf("street %q does not match expected pattern", a.Street)
		}
	}
}

func TestPhone(t *testing.T) {
	g := newTestGenerator(10)
	re := regexp.MustCompile(`^\((\d{3})\) 555-\d{4}$`)

	var areas []string
	for _, r := range usRegions {
		areas = append(areas, r.AreaCodes...)
	}

	for range 200 {
		p := g.Phone()
		m := re.FindStringSubmatch(p)
		if m == nil {
			t.Fatalf("phone %q does not match (AAA) 555-NNNN", p)
		}
		if !slices.Contains(areas, m[1]) {
			t.Fatalf("phone %q uses unknown area code", p)
		}
	}
}

func TestEmailPatterns(t *testing.T) {
	g := newTestGenerator(11, WithEmailDomains("test.com"))

	patterns := []*regexp.Regexp{
		regexp.MustCompile(`^john\.doe$`),
		regexp.MustCompile(`^jdoe$`),
		regexp.MustCompile(`^johndoe$`),
		regexp.MustCompile(`^john\.doe\d{2}$`),
		regexp.MustCompile(`^jdoe\d{2}$`),
		regexp.MustCompile(`^j\.doe$`),
		regexp.MustCompile(`^doe\.john$`),
		regexp.MustCompile(`^[a-z]+\d{4}$`),
	}

	seen := make(map[int]bool)
	for range 500 {
		email := g.Email("John", "Doe")
		local, ok := strings.CutSuffix(email, "@test.com")
		if !ok {
			t.Fatalf("wrong domain in %q", email)
		}

		matched := false
		for i, p := range patterns {
			if p.MatchString(local) {
				seen[i] = true
				matched = true
				break
			}
		}
		if !matched {
			t.Errorf("email local part %q matches no pattern", local)
		}
	}

	if len(seen) != len(patterns) {
		t.Errorf("expected all %d patterns, saw %d", len(patterns), len(seen))
	}
}

func TestEmailNormalizesName(t *testing.T) {
	g := newTestGenerator(12)
	for range 100 {
		email := g.Email("Mary-Jo", "O'NEIL")
		local, domain, _ := strings.Cut(email, "@")
		if !regexp.MustCompile(`^[a-z0-9.]+$`).MatchString(local) {
			t.Fatalf("local part %q has unexpected characters", local)
		}
		if !slices.Contains(defaultEmailDomains, domain) {
			t.Fatalf("domain %q not in default set", domain)
		}
	}
}

func TestEmailEmptyNameUsesHandle(t *testing.T) {
	g := newTestGenerator(13)
	email := g.Email("", "")
	if !regexp.MustCompile(`^[a-z]+\d{4}@`).MatchString(email) {
		t.Errorf("empty name should fall back to handle, got %q", email)
	}
}

func TestBirthDateRange(t *testing.T) {
	tests := []struct {
		name     string
		min, max int
	}{
		{"default adult window", defaultMinAge, defaultMaxAge},
		{"narrow", 30, 30},
		{"children", 0, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGenerator(14, WithAgeRange(tt.min, tt.max))
			today := Day(fixedNow)
			for range 1000 {
				dob := g.BirthDate()
				age := today.Year() - dob.Year()
				if today.Month() < dob.Month() || (today.Month() == dob.Month() && today.Day() < dob.Day()) {
					age--
				}
				if age < tt.min || age > tt.max {
					t.Fatalf("dob %s gives age %d outside [%d, %d]", dob.Format(DateLayout), age, tt.min, tt.max)
				}
				if dob.Hour() != 0 || dob.Location() != time.UTC {
					t.Fatalf("dob %s is not a UTC calendar date", dob)
				}
			}
		})
	}
}

func TestParseLocale(t *testing.T) {
	tests := []struct {
		tag     string
		want    string
		wantErr bool
	}{
		{"en_US", "en_US", false},
		{"en-US", "en_US", false},
		{"EN_us", "en_US", false},
		{" en_US ", "en_US", false},
		{"fr_FR", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			loc, err := ParseLocale(tt.tag)
			if tt.wantErr {
				var ve *ValidationError
				if !errors.As(err, &ve) {
					t.Fatalf("ParseLocale(%q) err = %v, want ValidationError", tt.tag, err)
				}
				if ve.Field != "locale" {
					t.Errorf("field = %q, want locale", ve.Field)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLocale(%q): %v", tt.tag, err)
			}
			if loc.Tag != tt.want {
				t.Errorf("tag = %q, want %q", loc.Tag, tt.want)
			}
		})
	}
}

func TestParseGender(t *testing.T) {
	tests := []struct {
		in     string
		want   Gender
		wantOK bool
	}{
		{"Male", Male, true},
		{"male", Male, true},
		{" M ", Male, true},
		{"FEMALE", Female, true},
		{"f", Female, true},
		{"Unspecified", Unspecified, true},
		{"x", Unspecified, true},
		{"", Unspecified, false},
		{"other", Unspecified, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseGender(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseGender(%q) = %s, %v; want %s, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestInputRecordGet(t *testing.T) {
	in := InputRecord{"gender": " Male ", "ssn": "   ", "city": ""}

	if v, ok := in.Get("gender"); !ok || v != "Male" {
		t.Errorf("Get(gender) = %q, %v", v, ok)
	}
	for _, f := range []string{"ssn", "city", "email"} {
		if in.Has(f) {
			t.Errorf("Has(%s) = true, want false", f)
		}
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Field: "count", Value: "-1", Reason: "must not be negative"}
	if got := err.Error(); got != `invalid count "-1": must not be negative` {
		t.Errorf("Error() = %q", got)
	}
}
