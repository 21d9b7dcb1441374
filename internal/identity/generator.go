package identity

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	defaultMinAge = 18
	defaultMaxAge = 90
)

// Generator produces field values from a Source. A Generator is not safe
// for concurrent use; Fork one per goroutine.
type Generator struct {
	src     Source
	locale  Locale
	minAge  int
	maxAge  int
	now     func() time.Time
	domains []string
}

// Option configures a Generator.
type Option func(*Generator)

// WithLocale selects the reference data used for names, regions and phones.
func WithLocale(l Locale) Option {
	return func(g *Generator) { g.locale = l }
}

// WithAgeRange sets the inclusive age window for birth dates.
func WithAgeRange(min, max int) Option {
	return func(g *Generator) {
		g.minAge = min
		g.maxAge = max
	}
}

// WithClock overrides the clock birth dates are measured from. The age
// window slides with the clock, so a seeded generator repeats its birth
// dates only while the clock reports the same calendar day; pin it to get
// byte-identical output across days.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithEmailDomains sets the domains email addresses are drawn from.
func WithEmailDomains(domains ...string) Option {
	return func(g *Generator) {
		if len(domains) > 0 {
			g.domains = domains
		}
	}
}

// New creates a generator drawing from src.
func New(src Source, opts ...Option) *Generator {
	g := &Generator{
		src:     src,
		locale:  locales[DefaultLocale],
		minAge:  defaultMinAge,
		maxAge:  defaultMaxAge,
		now:     time.Now,
		domains: defaultEmailDomains,
	}
	for _, o := range opts {
		o(g)
	}
	if g.minAge < 0 {
		g.minAge = 0
	}
	if g.maxAge < g.minAge {
		g.maxAge = g.minAge
	}
	return g
}

// Fork returns a generator with the same settings and an independent
// source seeded from this generator's stream. Forking is deterministic.
func (g *Generator) Fork() *Generator {
	c := *g
	c.src = forkSource(g.src)
	return &c
}

// Locale returns the generator's locale.
func (g *Generator) Locale() Locale { return g.locale }

// Gender draws Male or Female uniformly.
func (g *Generator) Gender() Gender {
	if g.src.IntN(2) == 0 {
		return Male
	}
	return Female
}

// Name generates a first/last name pair. Male and Female draw first names
// from their own pool; anything else picks one of the two pools per call.
// Surnames come from a shared pool independently of gender.
func (g *Generator) Name(gender Gender) (first, last string) {
	switch gender {
	case Male:
	case Female:
	default:
		gender = g.Gender()
	}

	pool := g.locale.MaleNames
	if gender == Female {
		pool = g.locale.FemaleNames
	}
	return g.pick(pool), g.pick(g.locale.Surnames)
}

// Address generates a street address with city, state and ZIP taken from
// a single region.
func (g *Generator) Address() Address {
	r := g.region()
	return Address{
		Street:     g.street(),
		City:       g.pick(r.Cities),
		State:      r.State,
		PostalCode: g.pick(r.ZipPrefixes) + g.digits(2),
	}
}

// Contact generates an email derived from the given name and a phone
// number in the locale's pattern.
func (g *Generator) Contact(first, last string) Contact {
	return Contact{
		Email: g.Email(first, last),
		Phone: g.Phone(),
	}
}

// Email generates an address whose local part follows one of eight
// patterns, seven of them built from the name.
func (g *Generator) Email(first, last string) string {
	f := sanitize(first)
	l := sanitize(last)
	if f == "" || l == "" {
		return g.handle() + "@" + g.pick(g.domains)
	}

	var local string
	switch g.src.IntN(8) {
	case 0:
		local = f + "." + l
	case 1:
		local = f[:1] + l
	case 2:
		local = f + l
	case 3:
		local = f + "." + l + g.digits(2)
	case 4:
		local = f[:1] + l + g.digits(2)
	case 5:
		local = f[:1] + "." + l
	case 6:
		local = l + "." + f
	default:
		local = g.handle()
	}
	return local + "@" + g.pick(g.domains)
}

// Phone generates a number in the locale's pattern, using the area code
// of a random region.
func (g *Generator) Phone() string {
	area := g.pick(g.region().AreaCodes)
	var b strings.Builder
	ai := 0
	for _, c := range g.locale.PhonePattern {
		switch c {
		case '@':
			if ai < len(area) {
				b.WriteByte(area[ai])
				ai++
			} else {
				b.WriteByte(byte('0' + g.src.IntN(10)))
			}
		case '#':
			b.WriteByte(byte('0' + g.src.IntN(10)))
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}

// SSN generates a number formatted NNN-NN-NNNN. Excluded area groups, a
// zero group and a zero serial are redrawn.
func (g *Generator) SSN() string {
	area := g.src.IntN(1000)
	for ssnAreaExcluded(area) {
		area = g.src.IntN(1000)
	}
	group := 1 + g.src.IntN(99)
	serial := 1 + g.src.IntN(9999)
	return fmt.Sprintf("%03d-%02d-%04d", area, group, serial)
}

// CreditCard generates a card number with a recognized network prefix,
// that network's canonical length and a Luhn check digit.
func (g *Generator) CreditCard() string {
	n := cardNetworks[g.src.IntN(len(cardNetworks))]
	p := n.prefixes[g.src.IntN(len(n.prefixes))]
	prefix := p.lo + g.src.IntN(p.hi-p.lo+1)

	body := fmt.Sprintf("%0*d", p.digits, prefix) + g.digits(n.length-p.digits-1)
	return body + strconv.Itoa(luhnDigit(body))
}

// UUID generates a random version 4 UUID in 8-4-4-4-12 form.
func (g *Generator) UUID() string {
	id, err := uuid.NewRandomFromReader(g.src)
	if err != nil {
		panic("identity: uuid: " + err.Error())
	}
	return id.String()
}

// BirthDate draws a calendar date uniformly from the configured age window.
func (g *Generator) BirthDate() time.Time {
	today := Day(g.now())
	latest := today.AddDate(-g.minAge, 0, 0)
	earliest := today.AddDate(-(g.maxAge + 1), 0, 1)
	days := int(latest.Sub(earliest).Hours() / 24)
	return earliest.AddDate(0, 0, g.src.IntN(days+1))
}

func (g *Generator) region() Region {
	return g.locale.Regions[g.src.IntN(len(g.locale.Regions))]
}

// street generates a street address like "1234 Oak Ave".
func (g *Generator) street() string {
	num := 100 + g.src.IntN(9900)
	return fmt.Sprintf("%d %s %s", num, g.pick(streetNames), g.pick(streetSuffixes))
}

// handle generates <adjective><noun><4digits>.
func (g *Generator) handle() string {
	return g.pick(adjectives) + g.pick(nouns) + g.digits(4)
}

func (g *Generator) digits(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('0' + g.src.IntN(10))
	}
	return string(b)
}

func (g *Generator) pick(s []string) string {
	return s[g.src.IntN(len(s))]
}

func ssnAreaExcluded(area int) bool {
	for _, s := range ssnExcludedAreas {
		if s.contains(area) {
			return true
		}
	}
	return false
}

// luhnDigit returns the check digit that makes body+digit Luhn-valid.
func luhnDigit(body string) int {
	sum := 0
	double := true
	for i := len(body) - 1; i >= 0; i-- {
		d := int(body[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return (10 - sum%10) % 10
}

// sanitize lowercases s and drops everything but ASCII letters.
func sanitize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
