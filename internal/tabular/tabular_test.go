package tabular

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zarlcorp/zmask/internal/identity"
)

func testRecord() identity.Record {
	return identity.Record{
		ID:         "0b6e2c52-1b0e-4c59-9a56-0d3e0f6a1f11",
		FirstName:  "Jane",
		LastName:   "Doe",
		Gender:     identity.Female,
		BirthDate:  time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC),
		SSN:        "123-45-6789",
		CreditCard: "4111111111111111",
		Address:    "123 Oak Ave",
		City:       "Portland",
		State:      "OR",
		PostalCode: "97201",
		Email:      "jane.doe@example.com",
		Phone:      "(503) 555-0142",
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, "")
	require.NoError(t, w.Write(testRecord()))
	require.NoError(t, w.Write(testRecord()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3, "header written once")
	assert.Equal(t, strings.Join(Columns, ","), lines[0])
	assert.Equal(t,
		"Jane,Doe,Female,1990-06-15,123-45-6789,4111111111111111,123 Oak Ave,Portland,OR,97201,jane.doe@example.com,(503) 555-0142,0b6e2c52-1b0e-4c59-9a56-0d3e0f6a1f11",
		lines[1])
}

func TestWriteLayoutAndZeroDate(t *testing.T) {
	rec := testRecord()
	assert.Equal(t, "06-15-1990", Row(rec, "01-02-2006")[3])

	rec.BirthDate = time.Time{}
	assert.Equal(t, "", Row(rec, identity.DateLayout)[3])
}

func TestWriteHeaderOnlyForEmptyBatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf, "").Write())
	assert.Equal(t, strings.Join(Columns, ",")+"\n", buf.String())
}

func TestReadAll(t *testing.T) {
	in := "\ufeffgender, birthDate,firstName,creditCard,uuid,notes\n" +
		"Male,1990-01-01,John,4111111111111111,abc,x\n" +
		",,,,,\n" +
		"\n" +
		"Female,01-02-1985\n"

	recs, err := ReadAll(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, recs, 2, "blank rows skipped")

	assert.Equal(t, "Male", recs[0]["gender"])
	assert.Equal(t, "1990-01-01", recs[0]["birthDate"])
	assert.Equal(t, "4111111111111111", recs[0][identity.FieldCreditCard])
	assert.Equal(t, "abc", recs[0][identity.FieldID])
	assert.Equal(t, "x", recs[0]["notes"])

	assert.Equal(t, "01-02-1985", recs[1]["birthDate"])
	assert.False(t, recs[1].Has("firstName"), "short row leaves column absent")
}

func TestReadAllRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf, "").Write(testRecord()))

	recs, err := ReadAll(&buf)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	want := testRecord()
	got := recs[0]
	assert.Equal(t, want.FirstName, got["firstName"])
	assert.Equal(t, "1990-06-15", got["birthDate"])
	assert.Equal(t, want.CreditCard, got[identity.FieldCreditCard])
	assert.Equal(t, want.ID, got[identity.FieldID])
}

func TestReadAllErrors(t *testing.T) {
	_, err := ReadAll(strings.NewReader(""))
	assert.True(t, errors.Is(err, ErrNoHeader))

	_, err = ReadAll(strings.NewReader("gender,birthDate\nMale,\"1990-01-01\n"))
	var re *RowError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, 2, re.Line)
}

func TestReadAllHeaderOnly(t *testing.T) {
	recs, err := ReadAll(strings.NewReader("gender,birthDate\n"))
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, []identity.Record{testRecord()}))

	var out []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "Female", out[0]["gender"])
	assert.Equal(t, "4111111111111111", out[0]["credit_card_number"])
	assert.Contains(t, buf.String(), "\n  ")
}
