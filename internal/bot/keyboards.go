package bot

import (
	"fmt"
	"strconv"

	"github.com/Sanmen87/taini-santa/internal/models"
	"gopkg.in/telebot.v4"
)

// Inline button templates. Handlers are attached to them by unique name;
// the payload travels in the data part.
var (
	btnRegisterStart = telebot.Btn{Unique: "register_start", Text: "🎄 Принять участие"}
	btnProfileEdit   = telebot.Btn{Unique: "profile_edit", Text: "✏️ Изменить данные"}
	btnLeaveGame     = telebot.Btn{Unique: "leave_game", Text: "🚪 Выйти из игры"}
	btnAdminApprove  = telebot.Btn{Unique: "adm_approve", Text: "✅ Подтвердить"}
	btnAdminReject   = telebot.Btn{Unique: "adm_reject", Text: "❌ Отклонить"}
	btnQuizAnswer    = telebot.Btn{Unique: "quiz_answer"}
)

// Admin reply-keyboard labels, matched as plain text.
const (
	labelAdminListAll       = "👥 Участники"
	labelAdminListValidated = "✅ Подтверждённые"
	labelAdminDraw          = "🎲 Провести жеребьёвку"
	labelAdminNotify        = "📨 Разослать результаты"
	labelAdminBroadcast     = "📢 Общая рассылка"
	labelCancel             = "Отмена"
)

func startNewUserMarkup() *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	markup.Inline(markup.Row(markup.Data(btnRegisterStart.Text, btnRegisterStart.Unique)))
	return markup
}

func existingProfileMarkup() *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	markup.Inline(
		markup.Row(markup.Data(btnProfileEdit.Text, btnProfileEdit.Unique)),
		markup.Row(markup.Data(btnLeaveGame.Text, btnLeaveGame.Unique)),
	)
	return markup
}

func cancelMarkup() *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{ResizeKeyboard: true, OneTimeKeyboard: true}
	markup.Reply(markup.Row(markup.Text(labelCancel)))
	return markup
}

func adminMenuMarkup() *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{ResizeKeyboard: true}
	markup.Reply(
		markup.Row(markup.Text(labelAdminListAll), markup.Text(labelAdminListValidated)),
		markup.Row(markup.Text(labelAdminDraw), markup.Text(labelAdminNotify)),
		markup.Row(markup.Text(labelAdminBroadcast)),
	)
	return markup
}

func adminParticipantActionsMarkup(telegramID int64) *telebot.ReplyMarkup {
	payload := strconv.FormatInt(telegramID, 10)
	markup := &telebot.ReplyMarkup{}
	markup.Inline(markup.Row(
		markup.Data(btnAdminApprove.Text, btnAdminApprove.Unique, payload),
		markup.Data(btnAdminReject.Text, btnAdminReject.Unique, payload),
	))
	return markup
}

func quizOptionsMarkup(poll models.PollQuestion) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	rows := make([]telebot.Row, 0, len(poll.Options))
	for i, option := range poll.Options {
		rows = append(rows, markup.Row(markup.Data(
			fmt.Sprintf("%d. %s", i+1, option),
			btnQuizAnswer.Unique,
			poll.ID, strconv.Itoa(i),
		)))
	}
	markup.Inline(rows...)
	return markup
}
