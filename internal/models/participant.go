package models

import (
	"strconv"
	"strings"
)

// ParticipantColumns is the header row of the participants sheet. Column
// order is a compatibility contract with the spreadsheet: FromRow and ToRow
// follow it strictly.
var ParticipantColumns = []string{
	"Время обновления",
	"Telegram ID",
	"Username",
	"ФИО",
	"Отдел",
	"Телефон",
	"Участвует",
	"Подтверждён",
	"Валидатор",
	"Время валидации",
	"Telegram ID получателя",
	"ФИО получателя",
	"Инфо о получателе",
	"Уведомлён",
	"Комментарий администратора",
}

// Participant is one registered player. Zero values stand for unset optional
// fields: a zero TelegramID marks an unparseable row and must be treated as
// invalid by callers.
type Participant struct {
	TelegramID   int64
	Username     string
	FullName     string
	Department   string
	Phone        string
	Active       bool
	Validated    bool
	ValidatorID  int64
	ValidationTS string

	RecipientID   int64
	RecipientName string
	RecipientInfo string
	Notified      bool

	AdminComment string
	UpdatedAt    string
}

// Eligible reports whether the participant takes part in the draw.
func (p *Participant) Eligible() bool {
	return p.Active && p.Validated
}

// HasRecipient reports whether a draw already assigned someone to this
// participant.
func (p *Participant) HasRecipient() bool {
	return p.RecipientID != 0
}

// ParticipantFromRow deserializes a sheet row. Short rows are tolerated
// (missing trailing cells read as empty), malformed cells fall back to zero
// values, the function never fails.
func ParticipantFromRow(row []string) Participant {
	return Participant{
		UpdatedAt:     cell(row, 0),
		TelegramID:    parseInt64(cell(row, 1)),
		Username:      cell(row, 2),
		FullName:      cell(row, 3),
		Department:    cell(row, 4),
		Phone:         cell(row, 5),
		Active:        parseBool(cell(row, 6)),
		Validated:     parseBool(cell(row, 7)),
		ValidatorID:   parseInt64(cell(row, 8)),
		ValidationTS:  cell(row, 9),
		RecipientID:   parseInt64(cell(row, 10)),
		RecipientName: cell(row, 11),
		RecipientInfo: cell(row, 12),
		Notified:      parseBool(cell(row, 13)),
		AdminComment:  cell(row, 14),
	}
}

// ToRow serializes the participant into exactly one cell per column, in
// ParticipantColumns order.
func (p *Participant) ToRow() []string {
	return []string{
		p.UpdatedAt,
		formatInt64(p.TelegramID),
		p.Username,
		p.FullName,
		p.Department,
		p.Phone,
		formatBool(p.Active),
		formatBool(p.Validated),
		formatInt64(p.ValidatorID),
		p.ValidationTS,
		formatInt64(p.RecipientID),
		p.RecipientName,
		p.RecipientInfo,
		formatBool(p.Notified),
		p.AdminComment,
	}
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func parseBool(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "TRUE")
}

func formatBool(v bool) string {
	if v {
		return "TRUE"
	}
	return "FALSE"
}

func parseInt64(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// formatInt64 renders zero as the empty cell: zero means "unset" for every
// integer column the sheet has.
func formatInt64(v int64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatInt(v, 10)
}
