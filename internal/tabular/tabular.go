// Package tabular converts demographic records to and from delimited text.
package tabular

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/zarlcorp/zmask/internal/identity"
)

// Columns is the fixed output column order.
var Columns = []string{
	identity.FieldFirstName,
	identity.FieldLastName,
	identity.FieldGender,
	identity.FieldBirthDate,
	identity.FieldSSN,
	identity.FieldCreditCard,
	identity.FieldAddress,
	identity.FieldCity,
	identity.FieldState,
	identity.FieldPostalCode,
	identity.FieldEmail,
	identity.FieldPhone,
	identity.FieldID,
}

// header aliases found in legacy datasets
var aliases = map[string]string{
	"creditcard": identity.FieldCreditCard,
	"uuid":       identity.FieldID,
	"id":         identity.FieldID,
	"dob":        identity.FieldBirthDate,
	"zip":        identity.FieldPostalCode,
}

// ErrNoHeader is returned when the input has no header row.
var ErrNoHeader = errors.New("missing header row")

// RowError reports a malformed input row.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// ReadAll reads a header row followed by data rows. Rows whose cells are
// all empty are skipped. Short rows leave the missing columns absent.
func ReadAll(r io.Reader) ([]identity.InputRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", rowErr(err))
	}
	names := normalizeHeader(header)

	records := []identity.InputRecord{}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, rowErr(err)
		}

		rec := make(identity.InputRecord, len(names))
		blank := true
		for i, v := range row {
			if i >= len(names) || names[i] == "" {
				continue
			}
			rec[names[i]] = v
			if strings.TrimSpace(v) != "" {
				blank = false
			}
		}
		if blank {
			line, _ := cr.FieldPos(0)
			slog.Warn("skipping empty row", "line", line)
			continue
		}
		records = append(records, rec)
	}

	return records, nil
}

func rowErr(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &RowError{Line: pe.StartLine, Err: pe.Err}
	}
	return err
}

func normalizeHeader(header []string) []string {
	names := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if canon, ok := aliases[strings.ToLower(h)]; ok {
			h = canon
		}
		names[i] = h
	}
	return names
}

// Writer writes records as CSV in Columns order.
type Writer struct {
	cw          *csv.Writer
	layout      string
	wroteHeader bool
}

// NewWriter returns a writer formatting dates with layout (identity.DateLayout
// when empty).
func NewWriter(w io.Writer, layout string) *Writer {
	if layout == "" {
		layout = identity.DateLayout
	}
	return &Writer{cw: csv.NewWriter(w), layout: layout}
}

// Write emits the header on first use, then one row per record, and flushes.
func (w *Writer) Write(recs ...identity.Record) error {
	if !w.wroteHeader {
		if err := w.cw.Write(Columns); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		w.wroteHeader = true
	}
	for _, r := range recs {
		if err := w.cw.Write(Row(r, w.layout)); err != nil {
			return fmt.Errorf("write record %s: %w", r.ID, err)
		}
	}
	w.cw.Flush()
	return w.cw.Error()
}

// Row renders rec in Columns order.
func Row(rec identity.Record, layout string) []string {
	dob := ""
	if !rec.BirthDate.IsZero() {
		dob = rec.BirthDate.Format(layout)
	}
	return []string{
		rec.FirstName,
		rec.LastName,
		string(rec.Gender),
		dob,
		rec.SSN,
		rec.CreditCard,
		rec.Address,
		rec.City,
		rec.State,
		rec.PostalCode,
		rec.Email,
		rec.Phone,
		rec.ID,
	}
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
