package draw

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/Sanmen87/taini-santa/internal/directory"
	"github.com/Sanmen87/taini-santa/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eligibleSet(n int) []directory.Stored {
	entries := make([]directory.Stored, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, directory.Stored{
			Participant: models.Participant{
				TelegramID: int64(1000 + i),
				FullName:   fmt.Sprintf("Участник Номер %d", i),
				Department: "IT",
				Phone:      "+79990000001",
				Active:     true,
				Validated:  true,
			},
			Row: i + 2,
		})
	}
	return entries
}

func TestPerformCycleProperties(t *testing.T) {
	for _, n := range []int{2, 3, 5, 17, 100} {
		engine := New(rand.New(rand.NewSource(int64(n))))
		assigned, err := engine.Perform(eligibleSet(n))
		require.NoError(t, err, "n=%d", n)
		require.Len(t, assigned, n)

		givers := map[int64]bool{}
		receivers := map[int64]bool{}
		for _, e := range assigned {
			p := e.Participant
			assert.NotZero(t, p.RecipientID)
			assert.NotEqual(t, p.TelegramID, p.RecipientID, "no self-assignment")
			assert.False(t, givers[p.TelegramID], "each gives once")
			assert.False(t, receivers[p.RecipientID], "each receives once")
			assert.False(t, p.Notified, "draw resets notified")
			assert.NotEmpty(t, p.RecipientName)
			assert.Contains(t, p.RecipientInfo, "Отдел:")
			givers[p.TelegramID] = true
			receivers[p.RecipientID] = true
		}
		assert.Len(t, receivers, n)
	}
}

func TestPerformPairForcedAtTwo(t *testing.T) {
	engine := New(rand.New(rand.NewSource(1)))
	assigned, err := engine.Perform(eligibleSet(2))
	require.NoError(t, err)
	assert.Equal(t, assigned[0].Participant.RecipientID, assigned[1].Participant.TelegramID)
	assert.Equal(t, assigned[1].Participant.RecipientID, assigned[0].Participant.TelegramID)
}

func TestPerformInsufficient(t *testing.T) {
	engine := New(rand.New(rand.NewSource(1)))

	for _, entries := range [][]directory.Stored{nil, eligibleSet(1)} {
		_, err := engine.Perform(entries)
		assert.ErrorIs(t, err, ErrInsufficient)
	}

	// Ineligible participants do not count toward the minimum.
	entries := eligibleSet(3)
	entries[0].Participant.Active = false
	entries[1].Participant.Validated = false
	_, err := engine.Perform(entries)
	assert.ErrorIs(t, err, ErrInsufficient)
}

func TestPerformConflictOnSecondRun(t *testing.T) {
	engine := New(rand.New(rand.NewSource(7)))
	entries := eligibleSet(4)

	assigned, err := engine.Perform(entries)
	require.NoError(t, err)

	before := make([]models.Participant, len(assigned))
	for i, e := range assigned {
		before[i] = e.Participant
	}

	_, err = engine.Perform(assigned)
	assert.ErrorIs(t, err, ErrAlreadyDrawn)
	for i, e := range assigned {
		assert.Equal(t, before[i], e.Participant, "conflict must leave assignments untouched")
	}
}

func TestPerformSkipsIneligible(t *testing.T) {
	engine := New(rand.New(rand.NewSource(3)))
	entries := eligibleSet(5)
	entries[2].Participant.Active = false

	assigned, err := engine.Perform(entries)
	require.NoError(t, err)
	assert.Len(t, assigned, 4)
	for _, e := range assigned {
		assert.NotEqual(t, entries[2].Participant.TelegramID, e.Participant.TelegramID)
		assert.NotEqual(t, entries[2].Participant.TelegramID, e.Participant.RecipientID)
	}
}
