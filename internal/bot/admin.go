package bot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Sanmen87/taini-santa/internal/directory"
	"github.com/Sanmen87/taini-santa/internal/draw"
	"github.com/Sanmen87/taini-santa/internal/models"
	"github.com/Sanmen87/taini-santa/internal/notify"
	"github.com/Sanmen87/taini-santa/internal/rowstore"
	"gopkg.in/telebot.v4"
)

// listChunkSize bounds one participants listing message.
const listChunkSize = 30

func (b *Bot) handleAdminMenu(uc *UpdateContext) error {
	return uc.TC().Send(textAdminMenu, adminMenuMarkup())
}

// loadParticipants reads the directory, translating transport trouble into
// an admin-readable message. A nil slice with nil error means the failure
// was already reported.
func (b *Bot) loadParticipants(uc *UpdateContext) ([]directory.Stored, error) {
	entries, err := b.dir.ListAll(uc)
	if err != nil {
		if rowstore.KindOf(err) == rowstore.KindTransport {
			uc.L().Errorf("failed to load participants: %v", err)
			return nil, uc.TC().Send(textSheetsUnavailable)
		}
		return nil, err
	}
	return entries, nil
}

func (b *Bot) handleListParticipants(uc *UpdateContext, onlyValidated bool) error {
	entries, err := b.loadParticipants(uc)
	if err != nil || entries == nil {
		return err
	}

	var filtered []models.Participant
	for _, e := range entries {
		p := e.Participant
		if !p.Active {
			continue
		}
		if onlyValidated && !p.Validated {
			continue
		}
		filtered = append(filtered, p)
	}

	if len(filtered) == 0 {
		if onlyValidated {
			return uc.TC().Send(textNoValidatedParticipants)
		}
		return uc.TC().Send(textNoActiveParticipants)
	}

	title := textListAllTitle
	if onlyValidated {
		title = textListValidatedTitle
	}
	if err := uc.TC().Send(fmt.Sprintf(title, len(filtered))); err != nil {
		return err
	}

	var lines []string
	for _, p := range filtered {
		lines = append(lines, formatParticipantLine(p))
		if len(lines) >= listChunkSize {
			if err := uc.TC().Send(strings.Join(lines, "\n")); err != nil {
				return err
			}
			lines = nil
		}
	}
	if len(lines) > 0 {
		return uc.TC().Send(strings.Join(lines, "\n"))
	}
	return nil
}

func formatParticipantLine(p models.Participant) string {
	status := "⏳"
	if p.Validated {
		status = "✅"
	}
	active := "⚪️"
	if p.Active {
		active = "🟢"
	}
	return fmt.Sprintf(
		"%s%s <b>%s</b> — %s (%s) [<code>%d</code>]",
		status, active, p.FullName, p.Department, p.Phone, p.TelegramID,
	)
}

// handleDraw runs the pairing and immediately fans the first notifications
// out, reporting counts back to the administrator.
func (b *Bot) handleDraw(uc *UpdateContext) error {
	b.drawMu.Lock()
	defer b.drawMu.Unlock()

	entries, err := b.loadParticipants(uc)
	if err != nil || entries == nil {
		return err
	}

	assigned, err := b.engine.Perform(entries)
	switch {
	case err == draw.ErrInsufficient:
		return uc.TC().Send(textDrawInsufficient)
	case err == draw.ErrAlreadyDrawn:
		return uc.TC().Send(textDrawConflict)
	case err != nil:
		return err
	}

	if err := b.dir.BulkUpsert(uc, assigned); err != nil {
		return fmt.Errorf("persisting draw: %w", err)
	}
	uc.L().Infof("draw performed for %d participants", len(assigned))

	if err := uc.TC().Send(fmt.Sprintf(textDrawDone, len(assigned))); err != nil {
		return err
	}

	fresh, err := b.loadParticipants(uc)
	if err != nil || fresh == nil {
		return err
	}
	sent, failed := b.dispatcher.Notify(uc, fresh, notify.FirstNotification)
	return uc.TC().Send(fmt.Sprintf(textNotifyReport, len(assigned), sent, failed))
}

// handleNotify is the reminder path: resend to everyone with an assignment.
func (b *Bot) handleNotify(uc *UpdateContext) error {
	entries, err := b.loadParticipants(uc)
	if err != nil || entries == nil {
		return err
	}
	sent, failed := b.dispatcher.Notify(uc, entries, notify.Reminder)
	return uc.TC().Send(fmt.Sprintf(textReminderReport, sent, failed))
}

func (b *Bot) handleBroadcastStart(uc *UpdateContext) error {
	b.conv.startBroadcast(uc.Sender().ID)
	return uc.TC().Send(textBroadcastStart)
}

func (b *Bot) handleBroadcastCancel(uc *UpdateContext) error {
	b.conv.clearBroadcast(uc.Sender().ID)
	return uc.TC().Send(textBroadcastCancelled)
}

// handleBroadcastMessage copies the admin's message as-is to everyone in
// the table with a Telegram ID, active or not.
func (b *Bot) handleBroadcastMessage(uc *UpdateContext) error {
	b.conv.clearBroadcast(uc.Sender().ID)

	entries, err := b.loadParticipants(uc)
	if err != nil || entries == nil {
		return err
	}

	var targets []int64
	for _, e := range entries {
		if e.Participant.TelegramID != 0 {
			targets = append(targets, e.Participant.TelegramID)
		}
	}
	if len(targets) == 0 {
		return uc.TC().Send(textBroadcastEmpty)
	}

	if err := uc.TC().Send(fmt.Sprintf(textBroadcastBegin, len(targets))); err != nil {
		return err
	}

	sent, failed := 0, 0
	for _, id := range targets {
		if _, err := b.tb.Copy(telebot.ChatID(id), uc.Message()); err != nil {
			failed++
			uc.L().Warnf("failed to broadcast to tg_id=%d: %v", id, err)
			continue
		}
		sent++
	}
	return uc.TC().Send(fmt.Sprintf(textBroadcastReport, sent, failed))
}

// handleValidation covers both the approve and the reject buttons in the
// admin chat.
func (b *Bot) handleValidation(approve bool) func(*UpdateContext) error {
	return func(uc *UpdateContext) error {
		if !b.config.IsAdmin(uc.Sender().ID) {
			return uc.TC().Respond(&telebot.CallbackResponse{
				Text:      "Недостаточно прав для этого действия.",
				ShowAlert: true,
			})
		}

		targetID, err := strconv.ParseInt(strings.TrimSpace(uc.TC().Data()), 10, 64)
		if err != nil {
			return uc.TC().Respond(&telebot.CallbackResponse{
				Text:      "Некорректные данные кнопки.",
				ShowAlert: true,
			})
		}

		stored, err := b.dir.GetByTelegramID(uc, targetID)
		switch {
		case rowstore.IsNotFound(err):
			return uc.TC().Respond(&telebot.CallbackResponse{
				Text:      "Участник не найден.",
				ShowAlert: true,
			})
		case err != nil:
			return err
		}

		p := stored.Participant
		p.Validated = approve
		p.Active = approve
		p.ValidatorID = uc.Sender().ID
		p.ValidationTS = nowUTC()

		if _, err := b.dir.Upsert(uc, p); err != nil {
			return fmt.Errorf("saving validation verdict: %w", err)
		}
		uc.L().Infof("participant tg_id=%d validation set to %v", targetID, approve)

		// Strip the buttons so the card cannot be actioned twice.
		if _, err := b.tb.EditReplyMarkup(uc.Message(), nil); err != nil {
			uc.L().Debugf("failed to remove validation markup: %v", err)
		}

		verdict := "Анкета подтверждена ✅"
		reply := textApproved
		if !approve {
			verdict = "Анкета отклонена ❌"
			reply = textRejected
		}
		if err := uc.TC().Respond(&telebot.CallbackResponse{Text: verdict}); err != nil {
			uc.L().Debugf("failed to answer callback: %v", err)
		}

		if _, err := b.tb.Send(telebot.ChatID(targetID), reply); err != nil {
			uc.L().Warnf("failed to notify participant %d about verdict: %v", targetID, err)
		}
		return nil
	}
}
