// Package notify fans recipient-reveal messages out to drawn participants.
package notify

import (
	"context"
	"fmt"

	"github.com/Sanmen87/taini-santa/internal/directory"
	"github.com/Sanmen87/taini-santa/internal/models"
	"github.com/sirupsen/logrus"
)

// Mode selects between the one-time reveal and a repeatable reminder.
type Mode int

const (
	// FirstNotification sends the reveal once: participants already
	// flagged as notified are skipped.
	FirstNotification Mode = iota
	// Reminder resends to every assigned participant regardless of the
	// notified flag.
	Reminder
)

const (
	firstTemplate = "🎁 Ваш получатель в игре «Тайный Санта»:\n\n" +
		"ФИО: %s\n%s\n\n" +
		"Помните про лимит бюджета и дату обмена подарками!"

	reminderTemplate = "🔔 Напоминаем: вы участвуете в игре «Тайный Санта»!\n\n" +
		"Ваш получатель:\nФИО: %s\n%s\n\n" +
		"Пожалуйста, не забудьте подготовить и вручить подарок вовремя. " +
		"Сохраняйте интригу и не раскрывайте свою личность раньше времени 🙂"
)

// Sender delivers one message to one Telegram user.
type Sender interface {
	Send(telegramID int64, text string) error
}

// FanOut walks the candidates and returns one error slot per candidate
// (nil for delivered). The default is sequential delivery, which bounds
// pressure on the messaging gateway; a bounded-concurrency variant can be
// substituted without touching the dispatcher's eligibility or counting.
type FanOut func(candidates []directory.Stored, deliver func(directory.Stored) error) []error

func Sequential(candidates []directory.Stored, deliver func(directory.Stored) error) []error {
	errs := make([]error, len(candidates))
	for i, c := range candidates {
		errs[i] = deliver(c)
	}
	return errs
}

type Dispatcher struct {
	dir    *directory.Directory
	sender Sender
	fanOut FanOut
}

func New(dir *directory.Directory, sender Sender, fanOut FanOut) *Dispatcher {
	if fanOut == nil {
		fanOut = Sequential
	}
	return &Dispatcher{dir: dir, sender: sender, fanOut: fanOut}
}

// Notify delivers recipient reveals to every eligible assigned participant.
// Per-recipient failures are counted and never abort the rest. Successful
// first notifications flip the participant's notified flag and persist it;
// reminders leave the flag alone.
func (d *Dispatcher) Notify(ctx context.Context, entries []directory.Stored, mode Mode) (sent, failed int) {
	var candidates []directory.Stored
	for _, e := range entries {
		p := e.Participant
		if !p.Eligible() || !p.HasRecipient() || p.RecipientName == "" {
			continue
		}
		if mode == FirstNotification && p.Notified {
			continue
		}
		candidates = append(candidates, e)
	}

	errs := d.fanOut(candidates, func(e directory.Stored) error {
		p := e.Participant
		if err := d.sender.Send(p.TelegramID, renderReveal(p, mode)); err != nil {
			return fmt.Errorf("sending to tg_id=%d: %w", p.TelegramID, err)
		}
		if !p.Notified {
			p.Notified = true
			if _, err := d.dir.Upsert(ctx, p); err != nil {
				// Delivery happened; the stale flag only risks one
				// duplicate reveal on the next first-notification run.
				logrus.Warnf("failed to persist notified flag for tg_id=%d: %v", p.TelegramID, err)
			}
		}
		return nil
	})

	for _, err := range errs {
		if err != nil {
			failed++
			logrus.Warnf("failed to notify participant: %v", err)
			continue
		}
		sent++
	}
	return sent, failed
}

func renderReveal(p models.Participant, mode Mode) string {
	if mode == Reminder {
		return fmt.Sprintf(reminderTemplate, p.RecipientName, p.RecipientInfo)
	}
	return fmt.Sprintf(firstTemplate, p.RecipientName, p.RecipientInfo)
}
