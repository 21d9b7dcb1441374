package identity

// Compose assembles a complete synthetic record. A valid hint fixes the
// gender; otherwise Male or Female is drawn first and held for the name.
// Every field generator runs exactly once, in a fixed order, so a seeded
// source yields the same record every time.
func (g *Generator) Compose(hint Gender) Record {
	gender := hint
	if !gender.Valid() {
		gender = g.Gender()
	}

	first, last := g.Name(gender)
	dob := g.BirthDate()
	ssn := g.SSN()
	card := g.CreditCard()
	addr := g.Address()
	contact := g.Contact(first, last)

	return Record{
		ID:         g.UUID(),
		FirstName:  first,
		LastName:   last,
		Gender:     gender,
		BirthDate:  dob,
		SSN:        ssn,
		CreditCard: card,
		Address:    addr.Street,
		City:       addr.City,
		State:      addr.State,
		PostalCode: addr.PostalCode,
		Email:      contact.Email,
		Phone:      contact.Phone,
	}
}

// ComposeRandom assembles a record with a randomly drawn gender.
func (g *Generator) ComposeRandom() Record {
	return g.Compose("")
}
