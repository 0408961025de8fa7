package rowstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorKinds(t *testing.T) {
	nf := notFound("find_row")
	assert.True(t, IsNotFound(nf))
	assert.Equal(t, KindNotFound, KindOf(nf))

	tr := &Error{Kind: KindTransport, Op: "read_all", Err: context.DeadlineExceeded}
	assert.False(t, IsNotFound(tr))
	assert.Equal(t, KindTransport, KindOf(tr))

	assert.Equal(t, KindUnknown, KindOf(assert.AnError))
}

func TestMemoryFindAndRead(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	m.Seed("Participants", [][]string{
		{"col_a", "col_b"},
		{"x", "1"},
		{"y", "2"},
	})

	row, err := m.FindRowByValue(ctx, "Participants", 2, "2")
	require.NoError(t, err)
	assert.Equal(t, 3, row)

	_, err = m.FindRowByValue(ctx, "Participants", 2, "3")
	assert.True(t, IsNotFound(err))

	values, err := m.ReadRow(ctx, "Participants", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "1"}, values)

	all, err := m.ReadAllRows(ctx, "Participants")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestMemoryWrites(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.WriteHeader(ctx, "Polls", []string{"id", "q"}))
	require.NoError(t, m.AppendRow(ctx, "Polls", []string{"p1", "2+2?"}))
	require.NoError(t, m.BatchWrite(ctx, "Polls", []RowUpdate{
		{Row: 2, Values: []string{"p1", "3+3?"}},
	}))

	values, err := m.ReadRow(ctx, "Polls", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "3+3?"}, values)
}

func TestColumnLetter(t *testing.T) {
	assert.Equal(t, "A", columnLetter(1))
	assert.Equal(t, "B", columnLetter(2))
	assert.Equal(t, "Z", columnLetter(26))
	assert.Equal(t, "AA", columnLetter(27))
	assert.Equal(t, "AB", columnLetter(28))
}
