package polls

import (
	"context"
	"testing"
	"time"

	"github.com/Sanmen87/taini-santa/internal/models"
	"github.com/Sanmen87/taini-santa/internal/rowstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() (*Service, *rowstore.Memory) {
	store := rowstore.NewMemory()
	svc := New(store, Options{
		PollsSheet:     "Polls",
		ResponsesSheet: "PollResponses",
		Clock: func() time.Time {
			return time.Date(2024, 12, 1, 12, 0, 0, 0, time.UTC)
		},
	})
	return svc, store
}

func TestCreateAndLookup(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	created, err := svc.Create(ctx, "Сколько будет 2+2?", []string{"3", "4"}, 1, 10)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, models.PollStatusDraft, created.Status)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = svc.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrPollNotFound)
}

func TestActivePoll(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService()

	_, err := svc.ActivePoll(ctx)
	assert.ErrorIs(t, err, ErrNoActivePoll)

	created, err := svc.Create(ctx, "Вопрос?", []string{"да", "нет"}, -1, 0)
	require.NoError(t, err)

	// Activation is an admin edit of the status cell.
	created.Status = models.PollStatusActive
	require.NoError(t, store.WriteRow(ctx, "Polls", 2, created.ToRow()))

	active, err := svc.ActivePoll(ctx)
	require.NoError(t, err)
	assert.Equal(t, created.ID, active.ID)
}

func TestResponseUniquenessScan(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	ok, err := svc.HasResponse(ctx, "p1", 100)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, svc.AddResponse(ctx, models.PollResponse{
		PollID:      "p1",
		TelegramID:  100,
		AnswerIndex: 1,
		IsCorrect:   true,
	}))

	ok, err = svc.HasResponse(ctx, "p1", 100)
	require.NoError(t, err)
	assert.True(t, ok)

	// Same participant, different poll.
	ok, err = svc.HasResponse(ctx, "p2", 100)
	require.NoError(t, err)
	assert.False(t, ok)

	responses, err := svc.ListResponses(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, "2024-12-01T12:00:00Z", responses[0].SubmittedAt)
}
