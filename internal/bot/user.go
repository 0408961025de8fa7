package bot

import (
	"fmt"
	"strings"

	"github.com/Sanmen87/taini-santa/internal/models"
	"github.com/Sanmen87/taini-santa/internal/rowstore"
	"gopkg.in/telebot.v4"
)

func profileText(p models.Participant) string {
	return fmt.Sprintf(
		textProfileTemplate,
		p.FullName,
		p.Department,
		p.Phone,
		formatBoolRu(p.Active),
		formatBoolRu(p.Validated),
	)
}

func (b *Bot) handleStart(uc *UpdateContext) error {
	b.conv.clearRegistration(uc.Sender().ID)

	stored, err := b.dir.GetByTelegramID(uc, uc.Sender().ID)
	switch {
	case rowstore.IsNotFound(err):
		return uc.TC().Send(textStartNewUser, startNewUserMarkup())
	case rowstore.KindOf(err) == rowstore.KindTransport:
		uc.L().Errorf("sheets unavailable: %v", err)
		return uc.TC().Send(textSheetsUnavailable)
	case err != nil:
		return err
	}
	return uc.TC().Send(profileText(stored.Participant), existingProfileMarkup())
}

func (b *Bot) handleProfile(uc *UpdateContext) error {
	stored, err := b.dir.GetByTelegramID(uc, uc.Sender().ID)
	switch {
	case rowstore.IsNotFound(err):
		return uc.TC().Send(textProfileNotFound)
	case err != nil:
		return err
	}
	return uc.TC().Send(profileText(stored.Participant), existingProfileMarkup())
}

func (b *Bot) handleLeave(uc *UpdateContext) error {
	_, err := b.dir.SetActive(uc, uc.Sender().ID, false)
	switch {
	case rowstore.IsNotFound(err):
		return uc.TC().Send(textProfileNotFound)
	case err != nil:
		return err
	}
	uc.L().Info("participant left the game")
	return uc.TC().Send(textLeaveConfirm)
}

func (b *Bot) handleLeaveButton(uc *UpdateContext) error {
	if err := b.handleLeave(uc); err != nil {
		return err
	}
	return uc.TC().Respond()
}

// handleRegisterStart begins the three-step form. Editing an existing profile
// walks the same steps.
func (b *Bot) handleRegisterStart(uc *UpdateContext) error {
	b.conv.startRegistration(uc.Sender().ID)
	if err := uc.TC().Send(textRegAskFullName, cancelMarkup()); err != nil {
		return err
	}
	return uc.TC().Respond()
}

func (b *Bot) handleRegistrationStep(uc *UpdateContext) error {
	sender := uc.Sender()
	state, ok := b.conv.registration(sender.ID)
	if !ok {
		return nil
	}

	text := strings.TrimSpace(uc.Message().Text)
	if strings.EqualFold(text, labelCancel) {
		b.conv.clearRegistration(sender.ID)
		return uc.TC().Send(textRegCancelled, &telebot.ReplyMarkup{RemoveKeyboard: true})
	}

	switch state.step {
	case stepFullName:
		if !models.ValidFullName(text) {
			return uc.TC().Send(textRegFullNameBad)
		}
		state.fullName = text
		state.step = stepDepartment
		return uc.TC().Send(textRegAskDepartment)

	case stepDepartment:
		if models.LooksLikePhone(text) {
			return uc.TC().Send(textRegDepartmentLooksLikePhone)
		}
		if len([]rune(text)) < 3 {
			return uc.TC().Send(textRegDepartmentTooShort)
		}
		state.department = text
		state.step = stepPhone
		return uc.TC().Send(textRegAskPhone)

	case stepPhone:
		phone, ok := models.NormalizePhone(text)
		if !ok {
			return uc.TC().Send(textRegPhoneBad)
		}
		b.conv.clearRegistration(sender.ID)
		return b.finishRegistration(uc, state, phone)
	}
	return nil
}

func (b *Bot) finishRegistration(uc *UpdateContext, state *regState, phone string) error {
	sender := uc.Sender()

	var p models.Participant
	stored, err := b.dir.GetByTelegramID(uc, sender.ID)
	switch {
	case rowstore.IsNotFound(err):
		p = models.Participant{
			TelegramID: sender.ID,
			Username:   sender.Username,
			Active:     true,
		}
	case err != nil:
		return err
	default:
		// Re-registration re-activates but keeps the validation verdict.
		p = stored.Participant
		p.Active = true
		p.Username = sender.Username
	}
	p.FullName = state.fullName
	p.Department = state.department
	p.Phone = phone

	saved, err := b.dir.Upsert(uc, p)
	if err != nil {
		return fmt.Errorf("saving registration: %w", err)
	}
	uc.L().Infof("registration saved for tg_id=%d", saved.Participant.TelegramID)

	if err := uc.TC().Send(textRegFinished, &telebot.ReplyMarkup{RemoveKeyboard: true}); err != nil {
		return err
	}

	b.notifyAdminChat(uc, saved.Participant)
	return nil
}

// notifyAdminChat pushes the fresh application with approve/reject buttons
// into the validation chat. Failure to deliver is logged, not fatal: the
// application is already in the sheet.
func (b *Bot) notifyAdminChat(uc *UpdateContext, p models.Participant) {
	if b.config.AdminChatID == 0 {
		uc.L().Warn("admin_chat_id is not set; skip sending application to admin chat")
		return
	}

	username := p.Username
	if username == "" {
		username = "—"
	}
	text := fmt.Sprintf(
		textAdminNewApplication,
		p.FullName,
		p.Department,
		p.Phone,
		username,
		p.TelegramID,
	)
	if _, err := b.tb.Send(
		telebot.ChatID(b.config.AdminChatID),
		text,
		adminParticipantActionsMarkup(p.TelegramID),
	); err != nil {
		uc.L().Warnf("failed to send application to admin chat: %v", err)
	}
}
