package bot

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Sanmen87/taini-santa/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuizPayload(t *testing.T) {
	id, index, ok := parseQuizPayload("abc-123|2")
	require.True(t, ok)
	assert.Equal(t, "abc-123", id)
	assert.Equal(t, 2, index)

	for _, bad := range []string{"", "no-separator", "|1", "id|", "id|x", "id|-1"} {
		_, _, ok := parseQuizPayload(bad)
		assert.False(t, ok, "payload %q must be rejected", bad)
	}
}

func TestQuizVerdict(t *testing.T) {
	poll := models.PollQuestion{
		Question:     "Сколько будет 2+2?",
		Options:      []string{"Три", "Четыре", "Пять"},
		CorrectIndex: 1,
		Points:       3,
	}

	assert.Equal(t, "🎉 Верно! Вы заработали 3 очков.", quizVerdict(poll, true))

	wrong := quizVerdict(poll, false)
	assert.Contains(t, wrong, "Четыре", "the right option must be revealed")
	assert.NotContains(t, wrong, "%s")

	poll.CorrectIndex = -1
	assert.Equal(t, textQuizAccepted, quizVerdict(poll, false))

	// Out-of-range index in the sheet must not panic.
	poll.CorrectIndex = 7
	assert.Equal(t, textQuizAccepted, quizVerdict(poll, false))
}

func TestDrawReportIncludesTotal(t *testing.T) {
	report := fmt.Sprintf(textNotifyReport, 5, 4, 1)
	assert.Contains(t, report, "Всего участников: 5")
	assert.Contains(t, report, "Уведомлено: 4")
	assert.Contains(t, report, "Ошибок отправки: 1")
}

func TestFormatParticipantLine(t *testing.T) {
	p := models.Participant{
		TelegramID: 100,
		FullName:   "Иванов Иван Иванович",
		Department: "Бухгалтерия",
		Phone:      "+79991234567",
		Active:     true,
		Validated:  true,
	}
	line := formatParticipantLine(p)
	assert.Contains(t, line, "✅")
	assert.Contains(t, line, "🟢")
	assert.Contains(t, line, "Иванов Иван Иванович")
	assert.Contains(t, line, "<code>100</code>")

	p.Validated = false
	p.Active = false
	line = formatParticipantLine(p)
	assert.Contains(t, line, "⏳")
	assert.Contains(t, line, "⚪️")
}

func TestProfileText(t *testing.T) {
	p := models.Participant{
		FullName:   "Петров Пётр",
		Department: "ИТ",
		Phone:      "+79990001122",
		Active:     true,
		Validated:  false,
	}
	text := profileText(p)
	assert.Contains(t, text, "Петров Пётр")
	assert.Contains(t, text, "ИТ")
	assert.Contains(t, text, "+79990001122")
	assert.True(t, strings.Contains(text, "Да") && strings.Contains(text, "Нет"))
}

func TestConversationsRegistration(t *testing.T) {
	conv := newConversations()

	_, ok := conv.registration(1)
	assert.False(t, ok)

	conv.startRegistration(1)
	state, ok := conv.registration(1)
	require.True(t, ok)
	assert.Equal(t, stepFullName, state.step)

	state.step = stepPhone
	state.fullName = "Иванов Иван"

	again, ok := conv.registration(1)
	require.True(t, ok)
	assert.Equal(t, stepPhone, again.step)
	assert.Equal(t, "Иванов Иван", again.fullName)

	conv.clearRegistration(1)
	_, ok = conv.registration(1)
	assert.False(t, ok)
}

func TestConversationsBroadcast(t *testing.T) {
	conv := newConversations()

	assert.False(t, conv.inBroadcast(7))
	conv.startBroadcast(7)
	assert.True(t, conv.inBroadcast(7))
	assert.False(t, conv.inBroadcast(8))
	conv.clearBroadcast(7)
	assert.False(t, conv.inBroadcast(7))
}

func TestQuizMarkupPayloadRoundTrip(t *testing.T) {
	poll := models.PollQuestion{
		ID:      "poll-1",
		Options: []string{"Один", "Два", "Три"},
	}
	markup := quizOptionsMarkup(poll)
	require.Len(t, markup.InlineKeyboard, 3)

	for i, row := range markup.InlineKeyboard {
		require.Len(t, row, 1)
		id, index, ok := parseQuizPayload(row[0].Data)
		require.True(t, ok)
		assert.Equal(t, "poll-1", id)
		assert.Equal(t, i, index)
	}
}
