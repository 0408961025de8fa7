package notify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Sanmen87/taini-santa/internal/directory"
	"github.com/Sanmen87/taini-santa/internal/models"
	"github.com/Sanmen87/taini-santa/internal/rowstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSheet = "Participants"

type recorderSender struct {
	sent   []int64
	texts  []string
	failOn map[int64]error
}

func (s *recorderSender) Send(telegramID int64, text string) error {
	if err := s.failOn[telegramID]; err != nil {
		return err
	}
	s.sent = append(s.sent, telegramID)
	s.texts = append(s.texts, text)
	return nil
}

func assigned(id, recipientID int64, notified bool) models.Participant {
	return models.Participant{
		TelegramID:    id,
		FullName:      "Участник Тест Тестович",
		Department:    "IT",
		Phone:         "+79990000001",
		Active:        true,
		Validated:     true,
		RecipientID:   recipientID,
		RecipientName: "Получатель Тест Тестович",
		RecipientInfo: "Отдел: IT\nТелефон: +79990000002",
		Notified:      notified,
	}
}

func setup(t *testing.T, participants ...models.Participant) (*Dispatcher, *recorderSender, *directory.Directory) {
	t.Helper()
	store := rowstore.NewMemory()
	dir := directory.New(store, directory.Options{Sheet: testSheet})
	for _, p := range participants {
		_, err := dir.Upsert(context.Background(), p)
		require.NoError(t, err)
	}
	sender := &recorderSender{failOn: map[int64]error{}}
	return New(dir, sender, nil), sender, dir
}

func listAll(t *testing.T, dir *directory.Directory) []directory.Stored {
	t.Helper()
	entries, err := dir.ListAll(context.Background())
	require.NoError(t, err)
	return entries
}

func TestFirstNotificationSkipsNotified(t *testing.T) {
	d, sender, dir := setup(t,
		assigned(1, 2, false),
		assigned(2, 1, true),
	)

	sent, failed := d.Notify(context.Background(), listAll(t, dir), FirstNotification)
	assert.Equal(t, 1, sent)
	assert.Zero(t, failed)
	assert.Equal(t, []int64{1}, sender.sent)
	assert.True(t, strings.HasPrefix(sender.texts[0], "🎁"))

	// The delivered participant is now flagged, so a rerun sends nothing.
	sent, failed = d.Notify(context.Background(), listAll(t, dir), FirstNotification)
	assert.Zero(t, sent)
	assert.Zero(t, failed)
}

func TestReminderResendsToEveryone(t *testing.T) {
	d, sender, dir := setup(t,
		assigned(1, 2, false),
		assigned(2, 1, true),
	)

	sent, failed := d.Notify(context.Background(), listAll(t, dir), Reminder)
	assert.Equal(t, 2, sent)
	assert.Zero(t, failed)
	assert.Len(t, sender.sent, 2)
	assert.True(t, strings.HasPrefix(sender.texts[0], "🔔"))
}

func TestNotifySkipsIneligibleAndUnassigned(t *testing.T) {
	inactive := assigned(3, 1, false)
	inactive.Active = false
	unassigned := models.Participant{
		TelegramID: 4,
		FullName:   "Без Пары Тестович",
		Active:     true,
		Validated:  true,
	}

	d, sender, dir := setup(t, assigned(1, 2, false), inactive, unassigned)

	sent, _ := d.Notify(context.Background(), listAll(t, dir), Reminder)
	assert.Equal(t, 1, sent)
	assert.Equal(t, []int64{1}, sender.sent)
}

func TestNotifyCountsFailuresAndContinues(t *testing.T) {
	d, sender, dir := setup(t,
		assigned(1, 2, false),
		assigned(2, 3, false),
		assigned(3, 1, false),
	)
	sender.failOn[2] = errors.New("blocked by user")

	sent, failed := d.Notify(context.Background(), listAll(t, dir), FirstNotification)
	assert.Equal(t, 2, sent)
	assert.Equal(t, 1, failed)
	assert.Equal(t, []int64{1, 3}, sender.sent)

	// The failed participant stays unnotified and gets the next first run.
	stored, err := dir.GetByTelegramID(context.Background(), 2)
	require.NoError(t, err)
	assert.False(t, stored.Participant.Notified)

	sent, failed = d.Notify(context.Background(), listAll(t, dir), FirstNotification)
	assert.Zero(t, sent, "already-notified participants are skipped")
	assert.Equal(t, 1, failed)
}

func TestNotifyPersistsNotifiedFlag(t *testing.T) {
	d, _, dir := setup(t, assigned(1, 2, false), assigned(2, 1, false))

	sent, failed := d.Notify(context.Background(), listAll(t, dir), FirstNotification)
	assert.Equal(t, 2, sent)
	assert.Zero(t, failed)

	for _, id := range []int64{1, 2} {
		stored, err := dir.GetByTelegramID(context.Background(), id)
		require.NoError(t, err)
		assert.True(t, stored.Participant.Notified)
	}
}
