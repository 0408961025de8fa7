package bot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Sanmen87/taini-santa/internal/models"
	"github.com/Sanmen87/taini-santa/internal/polls"
	"gopkg.in/telebot.v4"
)

func (b *Bot) handleQuiz(uc *UpdateContext) error {
	poll, err := b.polls.ActivePoll(uc)
	switch {
	case err == polls.ErrNoActivePoll:
		return uc.TC().Send(textQuizNoActive)
	case err != nil:
		return err
	}

	has, err := b.polls.HasResponse(uc, poll.ID, uc.Sender().ID)
	if err != nil {
		return err
	}
	if has {
		return uc.TC().Send(textQuizAlready)
	}

	return uc.TC().Send(poll.Question, quizOptionsMarkup(poll))
}

// handleQuizAnswer records the chosen option. The button payload is
// "<poll id>|<option index>".
func (b *Bot) handleQuizAnswer(uc *UpdateContext) error {
	pollID, index, ok := parseQuizPayload(uc.TC().Data())
	if !ok {
		return uc.TC().Respond(&telebot.CallbackResponse{
			Text:      "Некорректные данные кнопки.",
			ShowAlert: true,
		})
	}

	poll, err := b.polls.GetByID(uc, pollID)
	switch {
	case err == polls.ErrPollNotFound:
		return uc.TC().Respond(&telebot.CallbackResponse{
			Text:      "Викторина больше недоступна.",
			ShowAlert: true,
		})
	case err != nil:
		return err
	}
	if index >= len(poll.Options) {
		return uc.TC().Respond(&telebot.CallbackResponse{
			Text:      "Некорректные данные кнопки.",
			ShowAlert: true,
		})
	}

	has, err := b.polls.HasResponse(uc, poll.ID, uc.Sender().ID)
	if err != nil {
		return err
	}
	if has {
		if err := uc.TC().Respond(&telebot.CallbackResponse{}); err != nil {
			uc.L().Debugf("failed to answer callback: %v", err)
		}
		return uc.TC().Send(textQuizAlready)
	}

	correct := poll.CorrectIndex >= 0 && index == poll.CorrectIndex
	resp := models.PollResponse{
		PollID:      poll.ID,
		TelegramID:  uc.Sender().ID,
		AnswerIndex: index,
		IsCorrect:   correct,
	}
	if err := b.polls.AddResponse(uc, resp); err != nil {
		return fmt.Errorf("recording quiz answer: %w", err)
	}

	if err := uc.TC().Respond(&telebot.CallbackResponse{}); err != nil {
		uc.L().Debugf("failed to answer callback: %v", err)
	}

	return uc.TC().Send(quizVerdict(poll, correct))
}

// quizVerdict renders the reply for a recorded answer. A CorrectIndex
// pointing outside the options (the cell is admin-edited) degrades to the
// no-right-answer reply.
func quizVerdict(poll models.PollQuestion, correct bool) string {
	switch {
	case poll.CorrectIndex < 0 || poll.CorrectIndex >= len(poll.Options):
		return textQuizAccepted
	case correct:
		return fmt.Sprintf(textQuizCorrect, poll.Points)
	default:
		return fmt.Sprintf(textQuizIncorrect, poll.Options[poll.CorrectIndex])
	}
}

func parseQuizPayload(data string) (pollID string, index int, ok bool) {
	parts := strings.SplitN(strings.TrimSpace(data), "|", 2)
	if len(parts) != 2 || parts[0] == "" {
		return "", 0, false
	}
	index, err := strconv.Atoi(parts[1])
	if err != nil || index < 0 {
		return "", 0, false
	}
	return parts[0], index, true
}

// handleNewPoll creates a draft quiz from "/newpoll Вопрос | вар1 | вар2".
func (b *Bot) handleNewPoll(uc *UpdateContext) error {
	payload := strings.TrimSpace(uc.Message().Payload)
	parts := strings.Split(payload, "|")
	if payload == "" || len(parts) < 3 {
		return uc.TC().Send(textNewPollUsage)
	}

	question := strings.TrimSpace(parts[0])
	var options []string
	for _, raw := range parts[1:] {
		if opt := strings.TrimSpace(raw); opt != "" {
			options = append(options, opt)
		}
	}
	if question == "" || len(options) < 2 {
		return uc.TC().Send(textNewPollUsage)
	}

	poll, err := b.polls.Create(uc, question, options, -1, 0)
	if err != nil {
		return fmt.Errorf("creating poll: %w", err)
	}
	uc.L().Infof("poll %s created with %d options", poll.ID, len(options))
	return uc.TC().Send(fmt.Sprintf(textNewPollDone, poll.ID))
}
