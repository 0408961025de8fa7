package models

import (
	"strconv"
	"strings"
)

// Poll lifecycle statuses, administrator-controlled.
const (
	PollStatusDraft  = "draft"
	PollStatusActive = "active"
	PollStatusClosed = "closed"
)

var PollColumns = []string{
	"ID",
	"Вопрос",
	"Варианты",
	"Правильный индекс",
	"Очки",
	"Статус",
}

var PollResponseColumns = []string{
	"Poll ID",
	"Telegram ID",
	"Ответ",
	"Правильный",
	"Время ответа",
}

// PollQuestion is one quiz question. Options are stored pipe-delimited in a
// single cell; CorrectIndex is -1 when the question has no right answer.
type PollQuestion struct {
	ID           string
	Question     string
	Options      []string
	CorrectIndex int
	Points       int
	Status       string
}

// PollResponse binds a poll and a participant to the chosen option.
// AnswerIndex is -1 when the stored cell is malformed.
type PollResponse struct {
	PollID      string
	TelegramID  int64
	AnswerIndex int
	IsCorrect   bool
	SubmittedAt string
}

func PollQuestionFromRow(row []string) PollQuestion {
	status := cell(row, 5)
	if status == "" {
		status = PollStatusDraft
	}
	return PollQuestion{
		ID:           cell(row, 0),
		Question:     cell(row, 1),
		Options:      splitOptions(cell(row, 2)),
		CorrectIndex: parseIndex(cell(row, 3)),
		Points:       int(parseInt64(cell(row, 4))),
		Status:       status,
	}
}

func (q *PollQuestion) ToRow() []string {
	correct := ""
	if q.CorrectIndex >= 0 {
		correct = strconv.Itoa(q.CorrectIndex)
	}
	return []string{
		q.ID,
		q.Question,
		strings.Join(q.Options, "|"),
		correct,
		strconv.Itoa(q.Points),
		q.Status,
	}
}

func PollResponseFromRow(row []string) PollResponse {
	return PollResponse{
		PollID:      cell(row, 0),
		TelegramID:  parseInt64(cell(row, 1)),
		AnswerIndex: parseIndex(cell(row, 2)),
		IsCorrect:   parseBool(cell(row, 3)),
		SubmittedAt: cell(row, 4),
	}
}

func (r *PollResponse) ToRow() []string {
	return []string{
		r.PollID,
		formatInt64(r.TelegramID),
		strconv.Itoa(r.AnswerIndex),
		formatBool(r.IsCorrect),
		r.SubmittedAt,
	}
}

func splitOptions(raw string) []string {
	var opts []string
	for _, part := range strings.Split(raw, "|") {
		if part = strings.TrimSpace(part); part != "" {
			opts = append(opts, part)
		}
	}
	return opts
}

func parseIndex(s string) int {
	s = strings.TrimSpace(s)
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return -1
	}
	return v
}
