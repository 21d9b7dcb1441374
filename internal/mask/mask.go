// Package mask replaces the identifying fields of a source record with
// synthetic values while carrying over its gender and a shifted birth date.
//
// Masking is not reproducible: the same input masked twice
// yields unrelated identities, even from equally seeded generators once
// their streams diverge. Only composition is promised to be deterministic.
package mask

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/zarlcorp/zmask/internal/identity"
)

// MaxShiftDays bounds the magnitude of a birth date shift (about a century).
const MaxShiftDays = 36500

// DefaultShiftDays is the shift applied when none is configured.
const DefaultShiftDays = 10

// Warning records a single input field that could not be honored. The
// affected output field falls back to synthetic generation.
type Warning struct {
	Field  string
	Reason string
}

func (w Warning) String() string {
	return w.Field + ": " + w.Reason
}

// Result is one masked record with any per-field degradations.
type Result struct {
	Record   identity.Record
	Warnings []Warning
}

// Degraded reports whether any input field was not honored.
func (r Result) Degraded() bool {
	return len(r.Warnings) > 0
}

// Masker masks records using a generator for the replacement values.
type Masker struct {
	gen     *identity.Generator
	log     *slog.Logger
	sparse  bool
	layouts []string
}

// Option configures a Masker.
type Option func(*Masker)

// WithLogger sets the logger degraded fields are reported to.
func WithLogger(l *slog.Logger) Option {
	return func(m *Masker) { m.log = l }
}

// WithSparseOutput leaves identifying columns blank when the input had no
// value for them, instead of synthesizing one.
func WithSparseOutput() Option {
	return func(m *Masker) { m.sparse = true }
}

// WithDateLayouts adds birth date layouts tried before the accepted ones,
// so input written with a configured layout is read back intact.
func WithDateLayouts(layouts ...string) Option {
	return func(m *Masker) { m.layouts = append(m.layouts, layouts...) }
}

// New creates a masker drawing replacement values from g.
func New(g *identity.Generator, opts ...Option) *Masker {
	m := &Masker{gen: g, log: slog.Default()}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Mask produces the masked form of in. Gender is copied, the birth date is
// moved shiftDays earlier (a negative shift moves it later) and every other
// field is regenerated as by identity.Generator.Compose for that gender.
// Missing or unusable gender and birth date values degrade to synthetic
// ones and are reported as warnings; Mask itself never fails.
func (m *Masker) Mask(in identity.InputRecord, shiftDays int) Result {
	var warnings []Warning

	gender, w := m.gender(in)
	if w != nil {
		warnings = append(warnings, *w)
	}

	rec := m.gen.Compose(gender)

	if raw, ok := in.Get(identity.FieldBirthDate); !ok {
		warnings = append(warnings, Warning{Field: identity.FieldBirthDate, Reason: "missing; synthesized"})
	} else if dob, err := identity.ParseDateWith(raw, m.layouts...); err != nil {
		warnings = append(warnings, Warning{Field: identity.FieldBirthDate, Reason: "unparsable; synthesized"})
	} else {
		rec.BirthDate = identity.AddDays(dob, -shiftDays)
	}

	if m.sparse {
		blankAbsent(in, &rec)
	}

	for _, w := range warnings {
		m.log.Warn("degraded field", "record", rec.ID, "field", w.Field, "reason", w.Reason)
	}

	return Result{Record: rec, Warnings: warnings}
}

// gender resolves the input gender, normalizing missing or unrecognized
// values to a random Male or Female.
func (m *Masker) gender(in identity.InputRecord) (identity.Gender, *Warning) {
	raw, present := in.Get(identity.FieldGender)
	if g, ok := identity.ParseGender(raw); ok {
		return g, nil
	}

	g := m.gen.Gender()
	reason := fmt.Sprintf("missing; normalized to %s", g)
	if present {
		reason = fmt.Sprintf("unrecognized value %q; normalized to %s", raw, g)
	}
	return g, &Warning{Field: identity.FieldGender, Reason: reason}
}

// sparseFields are the identifying columns WithSparseOutput may blank.
var sparseFields = []struct {
	name  string
	clear func(*identity.Record)
}{
	{identity.FieldFirstName, func(r *identity.Record) { r.FirstName = "" }},
	{identity.FieldLastName, func(r *identity.Record) { r.LastName = "" }},
	{identity.FieldSSN, func(r *identity.Record) { r.SSN = "" }},
	{identity.FieldCreditCard, func(r *identity.Record) { r.CreditCard = "" }},
	{identity.FieldAddress, func(r *identity.Record) { r.Address = "" }},
	{identity.FieldCity, func(r *identity.Record) { r.City = "" }},
	{identity.FieldState, func(r *identity.Record) { r.State = "" }},
	{identity.FieldPostalCode, func(r *identity.Record) { r.PostalCode = "" }},
	{identity.FieldEmail, func(r *identity.Record) { r.Email = "" }},
	{identity.FieldPhone, func(r *identity.Record) { r.Phone = "" }},
}

func blankAbsent(in identity.InputRecord, rec *identity.Record) {
	for _, f := range sparseFields {
		if !in.Has(f.name) {
			f.clear(rec)
		}
	}
}

// ParseShift parses a textual day shift. Non-integer input and shifts
// beyond MaxShiftDays in either direction are validation errors.
func ParseShift(s string) (int, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &identity.ValidationError{Field: "shiftDays", Value: s, Reason: "not an integer"}
	}
	if err := ValidateShift(n); err != nil {
		return 0, err
	}
	return n, nil
}

// ValidateShift checks that days is within ±MaxShiftDays.
func ValidateShift(days int) error {
	if days > MaxShiftDays || days < -MaxShiftDays {
		return &identity.ValidationError{
			Field:  "shiftDays",
			Value:  strconv.Itoa(days),
			Reason: fmt.Sprintf("magnitude exceeds %d", MaxShiftDays),
		}
	}
	return nil
}
