package rowstore

import (
	"context"
	"sync"
)

// Memory is an in-process Store used by tests. Sheets are row slices with
// the header at index 0, mirroring the 1-based addressing of the real store.
type Memory struct {
	mu     sync.Mutex
	sheets map[string][][]string

	// FailWith, when set, makes every operation return that error.
	// Tests use it to simulate transport failures.
	FailWith error
}

func NewMemory() *Memory {
	return &Memory{sheets: make(map[string][][]string)}
}

// Seed replaces the sheet's contents, header included.
func (m *Memory) Seed(sheet string, rows [][]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := make([][]string, len(rows))
	for i, row := range rows {
		copied[i] = append([]string(nil), row...)
	}
	m.sheets[sheet] = copied
}

// Rows returns a copy of the sheet's contents, header included.
func (m *Memory) Rows(sheet string) [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows := m.sheets[sheet]
	copied := make([][]string, len(rows))
	for i, row := range rows {
		copied[i] = append([]string(nil), row...)
	}
	return copied
}

func (m *Memory) ReadHeader(_ context.Context, sheet string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	rows := m.sheets[sheet]
	if len(rows) == 0 {
		return nil, nil
	}
	return append([]string(nil), rows[0]...), nil
}

func (m *Memory) WriteHeader(ctx context.Context, sheet string, columns []string) error {
	return m.WriteRow(ctx, sheet, 1, columns)
}

func (m *Memory) FindRowByValue(_ context.Context, sheet string, column int, value string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return 0, m.FailWith
	}
	for i, row := range m.sheets[sheet] {
		if column-1 < len(row) && row[column-1] == value {
			return i + 1, nil
		}
	}
	return 0, notFound("find_row")
}

func (m *Memory) ReadRow(_ context.Context, sheet string, row int) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	rows := m.sheets[sheet]
	if row < 1 || row > len(rows) {
		return nil, notFound("read_row")
	}
	return append([]string(nil), rows[row-1]...), nil
}

func (m *Memory) ReadAllRows(_ context.Context, sheet string) ([][]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	rows := m.sheets[sheet]
	if len(rows) <= 1 {
		return nil, nil
	}
	out := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		out = append(out, append([]string(nil), row...))
	}
	return out, nil
}

func (m *Memory) AppendRow(_ context.Context, sheet string, values []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	m.sheets[sheet] = append(m.sheets[sheet], append([]string(nil), values...))
	return nil
}

func (m *Memory) WriteRow(_ context.Context, sheet string, row int, values []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	rows := m.sheets[sheet]
	for len(rows) < row {
		rows = append(rows, nil)
	}
	rows[row-1] = append([]string(nil), values...)
	m.sheets[sheet] = rows
	return nil
}

func (m *Memory) BatchWrite(ctx context.Context, sheet string, updates []RowUpdate) error {
	for _, u := range updates {
		if err := m.WriteRow(ctx, sheet, u.Row, u.Values); err != nil {
			return err
		}
	}
	return nil
}
