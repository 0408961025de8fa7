package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParticipantRoundTrip(t *testing.T) {
	p := Participant{
		TelegramID:    123456789,
		Username:      "ivanov",
		FullName:      "Иванов Иван Иванович",
		Department:    "Отдел разработки",
		Phone:         "+79991234567",
		Active:        true,
		Validated:     true,
		ValidatorID:   42,
		ValidationTS:  "2024-12-01T10:00:00Z",
		RecipientID:   987654321,
		RecipientName: "Петров Пётр Петрович",
		RecipientInfo: "Отдел: Бухгалтерия\nТелефон: +79990000000",
		Notified:      true,
		AdminComment:  "ок",
		UpdatedAt:     "2024-12-01T10:00:00Z",
	}

	row := p.ToRow()
	require.Len(t, row, len(ParticipantColumns))

	got := ParticipantFromRow(row)
	assert.Equal(t, p, got)
}

func TestParticipantFromRowShort(t *testing.T) {
	got := ParticipantFromRow([]string{"2024-12-01T10:00:00Z", "123", "ivanov"})
	assert.Equal(t, int64(123), got.TelegramID)
	assert.Equal(t, "ivanov", got.Username)
	assert.False(t, got.Active)
	assert.False(t, got.Validated)
	assert.False(t, got.Notified)
	assert.Zero(t, got.RecipientID)
}

func TestParticipantFromRowMalformed(t *testing.T) {
	got := ParticipantFromRow([]string{"", "garbage", "", "", "", "", "yes", "мда"})
	assert.Zero(t, got.TelegramID, "unparseable tg_id must read as zero")
	assert.False(t, got.Active)
	assert.False(t, got.Validated)
}

func TestParticipantBoolRendering(t *testing.T) {
	p := Participant{TelegramID: 1, Active: true}
	row := p.ToRow()
	assert.Equal(t, "TRUE", row[6])
	assert.Equal(t, "FALSE", row[7])

	assert.True(t, ParticipantFromRow([]string{"", "1", "", "", "", "", "true"}).Active)
}

func TestParticipantEligible(t *testing.T) {
	p := Participant{Active: true}
	assert.False(t, p.Eligible())
	p.Validated = true
	assert.True(t, p.Eligible())
	p.Active = false
	assert.False(t, p.Eligible())
}

func TestPollQuestionRoundTrip(t *testing.T) {
	q := PollQuestion{
		ID:           "p1",
		Question:     "Сколько будет 2+2?",
		Options:      []string{"3", "4", "5"},
		CorrectIndex: 1,
		Points:       10,
		Status:       PollStatusActive,
	}
	got := PollQuestionFromRow(q.ToRow())
	assert.Equal(t, q, got)
}

func TestPollQuestionDefaults(t *testing.T) {
	got := PollQuestionFromRow([]string{"p2", "вопрос", "a |  | b", "", ""})
	assert.Equal(t, []string{"a", "b"}, got.Options)
	assert.Equal(t, -1, got.CorrectIndex)
	assert.Zero(t, got.Points)
	assert.Equal(t, PollStatusDraft, got.Status)
}

func TestPollResponseRoundTrip(t *testing.T) {
	r := PollResponse{
		PollID:      "p1",
		TelegramID:  123,
		AnswerIndex: 2,
		IsCorrect:   true,
		SubmittedAt: "2024-12-01T10:00:00Z",
	}
	got := PollResponseFromRow(r.ToRow())
	assert.Equal(t, r, got)

	bad := PollResponseFromRow([]string{"p1", "123", "abc"})
	assert.Equal(t, -1, bad.AnswerIndex)
}
