// Package store keeps chosen fixture records in an encrypted vault so a
// test suite can reuse the exact same personas later.
package store

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/zarlcorp/core/pkg/zcrypto"
	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/core/pkg/zstore"
	"github.com/zarlcorp/zmask/internal/identity"
)

// Kind tells how a record was produced.
type Kind string

const (
	KindGenerated Kind = "generated"
	KindMasked    Kind = "masked"
)

// ErrNotFound is returned when a record or batch does not exist.
var ErrNotFound = errors.New("not found")

// Entry is a saved record with its provenance.
type Entry struct {
	Record  identity.Record `json:"record"`
	Kind    Kind            `json:"kind"`
	BatchID string          `json:"batch_id,omitempty"`
	SavedAt time.Time       `json:"saved_at"`
}

// Manifest describes one saved batch.
type Manifest struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Seed      *uint64   `json:"seed,omitempty"`
	ShiftDays int       `json:"shift_days,omitempty"`
	RecordIDs []string  `json:"record_ids"`
	CreatedAt time.Time `json:"created_at"`
}

// Vault is an encrypted store of fixture records and batch manifests.
type Vault struct {
	store   *zstore.Store
	records *zstore.Collection[Entry]
	batches *zstore.Collection[Manifest]
	now     func() time.Time
}

// Open opens or initializes the vault in dir. The password buffer is
// wiped before Open returns.
func Open(dir string, password []byte) (*Vault, error) {
	defer zcrypto.Erase(password)

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("open vault: create dir: %w", err)
	}

	fsys := zfilesystem.NewOSFileSystem(dir)
	s, err := zstore.Open(fsys, password)
	if err != nil {
		return nil, fmt.Errorf("open vault: %w", err)
	}

	records, err := zstore.NewCollection[Entry](s, "records")
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("open vault: records: %w", err)
	}

	batches, err := zstore.NewCollection[Manifest](s, "batches")
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("open vault: batches: %w", err)
	}

	return &Vault{store: s, records: records, batches: batches, now: time.Now}, nil
}

// Save stores a single record outside any batch.
func (v *Vault) Save(kind Kind, rec identity.Record) error {
	e := Entry{Record: rec, Kind: kind, SavedAt: v.now()}
	if err := v.records.Put(rec.ID, e); err != nil {
		return fmt.Errorf("save record %s: %w", rec.ID, err)
	}
	return nil
}

// SaveBatch stores every record plus a manifest listing them. The manifest
// ID and timestamp are assigned here and returned.
func (v *Vault) SaveBatch(m Manifest, recs []identity.Record) (Manifest, error) {
	m.ID = uuid.NewString()
	m.CreatedAt = v.now()
	m.RecordIDs = make([]string, 0, len(recs))

	for _, rec := range recs {
		e := Entry{Record: rec, Kind: m.Kind, BatchID: m.ID, SavedAt: m.CreatedAt}
		if err := v.records.Put(rec.ID, e); err != nil {
			return Manifest{}, fmt.Errorf("save batch: record %s: %w", rec.ID, err)
		}
		m.RecordIDs = append(m.RecordIDs, rec.ID)
	}

	if err := v.batches.Put(m.ID, m); err != nil {
		return Manifest{}, fmt.Errorf("save batch: manifest: %w", err)
	}
	return m, nil
}

// Entries returns every saved record, newest first.
func (v *Vault) Entries() ([]Entry, error) {
	es, err := v.records.List()
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	// zstore does not guarantee order
	sort.SliceStable(es, func(i, j int) bool {
		if es[i].SavedAt.Equal(es[j].SavedAt) {
			return es[i].Record.ID < es[j].Record.ID
		}
		return es[i].SavedAt.After(es[j].SavedAt)
	})
	return es, nil
}

// Entry returns one saved record by ID.
func (v *Vault) Entry(id string) (Entry, error) {
	es, err := v.records.List()
	if err != nil {
		return Entry{}, fmt.Errorf("get record %s: %w", id, err)
	}
	for _, e := range es {
		if e.Record.ID == id {
			return e, nil
		}
	}
	return Entry{}, ErrNotFound
}

// Batches returns every manifest, newest first.
func (v *Vault) Batches() ([]Manifest, error) {
	ms, err := v.batches.List()
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	sort.SliceStable(ms, func(i, j int) bool {
		return ms[i].CreatedAt.After(ms[j].CreatedAt)
	})
	return ms, nil
}

// Delete removes a record and drops it from its batch manifest. A batch
// left empty is removed as well.
func (v *Vault) Delete(id string) error {
	e, err := v.Entry(id)
	if err != nil {
		return err
	}

	if err := v.records.Delete(id); err != nil {
		return fmt.Errorf("delete record %s: %w", id, err)
	}

	if e.BatchID == "" {
		return nil
	}
	m, err := v.batches.Get(e.BatchID)
	if errors.Is(err, zstore.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("get batch %s: %w", e.BatchID, err)
	}
	m.RecordIDs = slices.DeleteFunc(m.RecordIDs, func(rid string) bool { return rid == id })
	if len(m.RecordIDs) == 0 {
		if err := v.batches.Delete(m.ID); err != nil {
			return fmt.Errorf("delete batch %s: %w", m.ID, err)
		}
		return nil
	}
	if err := v.batches.Put(m.ID, m); err != nil {
		return fmt.Errorf("update batch %s: %w", m.ID, err)
	}
	return nil
}

// Close releases the vault's key material.
func (v *Vault) Close() {
	if v.store != nil {
		v.store.Close()
		v.store = nil
	}
}
