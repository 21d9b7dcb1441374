// Package identity synthesizes demographic records for test fixtures.
// All randomness flows through an injected Source so seeded runs are
// reproducible.
package identity

import (
	"strings"
	"time"
)

// Record is a complete demographic persona, either synthetic or masked.
type Record struct {
	ID         string    `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Gender     Gender    `json:"gender"`
	BirthDate  time.Time `json:"birth_date"`
	SSN        string    `json:"ssn"`
	CreditCard string    `json:"credit_card_number"`
	Address    string    `json:"address"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	PostalCode string    `json:"postal_code"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
}

// Address is a geographically consistent street/city/state/zip tuple.
type Address struct {
	Street     string
	City       string
	State      string
	PostalCode string
}

// Contact holds an email address and phone number.
type Contact struct {
	Email string
	Phone string
}

// column names shared with the tabular codec
const (
	FieldFirstName  = "firstName"
	FieldLastName   = "lastName"
	FieldGender     = "gender"
	FieldBirthDate  = "birthDate"
	FieldSSN        = "ssn"
	FieldCreditCard = "creditCardNumber"
	FieldAddress    = "address"
	FieldCity       = "city"
	FieldState      = "state"
	FieldPostalCode = "postalCode"
	FieldEmail      = "email"
	FieldPhone      = "phone"
	FieldID         = "recordId"
)

// InputRecord is one source row keyed by column name. An empty or
// whitespace-only cell counts as absent.
type InputRecord map[string]string

// Get returns the trimmed value for field and whether it is present.
func (r InputRecord) Get(field string) (string, bool) {
	v, ok := r[field]
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

// Has reports whether field carries a non-empty value.
func (r InputRecord) Has(field string) bool {
	_, ok := r.Get(field)
	return ok
}
