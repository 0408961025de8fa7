// Package directory owns the cached view of all participants and the safe
// read/write discipline against the participants sheet.
package directory

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/Sanmen87/taini-santa/internal/models"
	"github.com/Sanmen87/taini-santa/internal/rowstore"
	"github.com/sirupsen/logrus"
)

// telegramIDColumn is the 1-based position of the Telegram ID column,
// the sole lookup key.
const telegramIDColumn = 2

const defaultBatchChunk = 40

// Stored pairs a participant with its current row in the backing sheet.
// The row is an ephemeral storage detail used only to target updates.
type Stored struct {
	Participant models.Participant
	Row         int
}

type Options struct {
	Sheet      string
	CacheTTL   time.Duration
	BatchChunk int

	// Clock overrides time.Now, for tests.
	Clock func() time.Time
}

type Directory struct {
	store rowstore.Store
	sheet string
	chunk int
	now   func() time.Time
	cache *snapshotCache

	headerMu sync.Mutex
	headerOK bool
}

func New(store rowstore.Store, opts Options) *Directory {
	now := opts.Clock
	if now == nil {
		now = time.Now
	}
	chunk := opts.BatchChunk
	if chunk < 1 {
		chunk = defaultBatchChunk
	}
	return &Directory{
		store: store,
		sheet: opts.Sheet,
		chunk: chunk,
		now:   now,
		cache: newSnapshotCache(opts.CacheTTL, now),
	}
}

// GetByTelegramID resolves a participant by the external user identifier.
// A missing participant surfaces as a rowstore not-found error, distinct
// from transport failures.
func (d *Directory) GetByTelegramID(ctx context.Context, telegramID int64) (Stored, error) {
	if err := d.ensureHeader(ctx); err != nil {
		return Stored{}, err
	}

	if cached, ok := d.cache.get(telegramID); ok {
		return cached, nil
	}

	row, err := d.findRow(ctx, telegramID)
	if err != nil {
		return Stored{}, err
	}
	values, err := d.store.ReadRow(ctx, d.sheet, row)
	if err != nil {
		return Stored{}, fmt.Errorf("reading participant row %d: %w", row, err)
	}
	return Stored{Participant: models.ParticipantFromRow(values), Row: row}, nil
}

// Upsert creates or overwrites the participant's row, stamping updated_at.
// The row is re-resolved by Telegram ID on every call: append does not
// report a position, and rows may have moved under concurrent edits.
func (d *Directory) Upsert(ctx context.Context, p models.Participant) (Stored, error) {
	if err := d.ensureHeader(ctx); err != nil {
		return Stored{}, err
	}

	p.UpdatedAt = d.now().UTC().Format(time.RFC3339)

	row, err := d.findRow(ctx, p.TelegramID)
	switch {
	case rowstore.IsNotFound(err):
		logrus.Infof("creating participant tg_id=%d", p.TelegramID)
		if err := d.store.AppendRow(ctx, d.sheet, p.ToRow()); err != nil {
			return Stored{}, fmt.Errorf("appending participant: %w", err)
		}
		row, err = d.findRow(ctx, p.TelegramID)
		if rowstore.IsNotFound(err) {
			return Stored{}, errors.New("locating just-appended participant row")
		}
		if err != nil {
			return Stored{}, err
		}
	case err != nil:
		return Stored{}, err
	default:
		logrus.Infof("updating participant tg_id=%d row=%d", p.TelegramID, row)
		if err := d.store.WriteRow(ctx, d.sheet, row, p.ToRow()); err != nil {
			return Stored{}, fmt.Errorf("writing participant row %d: %w", row, err)
		}
	}

	d.cache.invalidate()
	return Stored{Participant: p, Row: row}, nil
}

// BulkUpsert overwrites many already-located rows in chunked batch writes.
// Every entry must carry a row position: this path is for records that went
// through lookup or upsert before, e.g. after a draw.
func (d *Directory) BulkUpsert(ctx context.Context, entries []Stored) error {
	if len(entries) == 0 {
		return nil
	}
	if err := d.ensureHeader(ctx); err != nil {
		return err
	}

	updatedAt := d.now().UTC().Format(time.RFC3339)
	updates := make([]rowstore.RowUpdate, 0, len(entries))
	for _, e := range entries {
		if e.Row < 2 {
			return fmt.Errorf("participant tg_id=%d has no row position for bulk update", e.Participant.TelegramID)
		}
		e.Participant.UpdatedAt = updatedAt
		updates = append(updates, rowstore.RowUpdate{Row: e.Row, Values: e.Participant.ToRow()})
	}

	defer d.cache.invalidate()
	for start := 0; start < len(updates); start += d.chunk {
		end := start + d.chunk
		if end > len(updates) {
			end = len(updates)
		}
		if err := d.store.BatchWrite(ctx, d.sheet, updates[start:end]); err != nil {
			return fmt.Errorf("batch writing rows %d..%d: %w", start, end-1, err)
		}
	}
	return nil
}

// SetActive flips the opt-in flag, e.g. for /leave and rejoin.
func (d *Directory) SetActive(ctx context.Context, telegramID int64, active bool) (Stored, error) {
	stored, err := d.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return Stored{}, err
	}
	stored.Participant.Active = active
	return d.Upsert(ctx, stored.Participant)
}

// ListAll returns every participant row after the header, in sheet order.
// Results come from a TTL snapshot cache; returned values are independent
// copies, safe for callers to mutate.
func (d *Directory) ListAll(ctx context.Context) ([]Stored, error) {
	if err := d.ensureHeader(ctx); err != nil {
		return nil, err
	}

	if cached, ok := d.cache.list(); ok {
		return cached, nil
	}

	rows, err := d.store.ReadAllRows(ctx, d.sheet)
	if err != nil {
		return nil, fmt.Errorf("reading participants: %w", err)
	}
	entries := make([]Stored, 0, len(rows))
	for i, row := range rows {
		entries = append(entries, Stored{
			Participant: models.ParticipantFromRow(row),
			Row:         i + 2,
		})
	}
	d.cache.set(entries)
	return entries, nil
}

func (d *Directory) findRow(ctx context.Context, telegramID int64) (int, error) {
	row, err := d.store.FindRowByValue(ctx, d.sheet, telegramIDColumn, strconv.FormatInt(telegramID, 10))
	if err != nil && !rowstore.IsNotFound(err) {
		return 0, fmt.Errorf("finding participant tg_id=%d: %w", telegramID, err)
	}
	return row, err
}

// ensureHeader fixes up the header row once per process. Data rows are
// never touched.
func (d *Directory) ensureHeader(ctx context.Context) error {
	d.headerMu.Lock()
	defer d.headerMu.Unlock()
	if d.headerOK {
		return nil
	}

	header, err := d.store.ReadHeader(ctx, d.sheet)
	if err != nil {
		return fmt.Errorf("reading participants header: %w", err)
	}
	if !equalHeader(header, models.ParticipantColumns) {
		logrus.Infof("fixing up participants header on sheet %q", d.sheet)
		if err := d.store.WriteHeader(ctx, d.sheet, models.ParticipantColumns); err != nil {
			return fmt.Errorf("writing participants header: %w", err)
		}
	}
	d.headerOK = true
	return nil
}

func equalHeader(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
