// Package bot routes Telegram updates into the participant directory, the
// draw engine and the notification dispatcher.
package bot

import (
	"context"
	"sync"
	"time"

	"github.com/Sanmen87/taini-santa/internal/config"
	"github.com/Sanmen87/taini-santa/internal/directory"
	"github.com/Sanmen87/taini-santa/internal/draw"
	"github.com/Sanmen87/taini-santa/internal/notify"
	"github.com/Sanmen87/taini-santa/internal/polls"
	"gopkg.in/telebot.v4"
)

type Bot struct {
	config     *config.Config
	dir        *directory.Directory
	polls      *polls.Service
	engine     *draw.Engine
	dispatcher *notify.Dispatcher
	tb         *telebot.Bot
	conv       *conversations

	// drawMu serializes draws within this process. The check against the
	// sheet stays non-atomic across processes; see the engine's guard.
	drawMu sync.Mutex
}

func New(
	cfg *config.Config,
	dir *directory.Directory,
	pollsSvc *polls.Service,
	engine *draw.Engine,
	dispatcher *notify.Dispatcher,
	tb *telebot.Bot,
) *Bot {
	b := &Bot{
		config:     cfg,
		dir:        dir,
		polls:      pollsSvc,
		engine:     engine,
		dispatcher: dispatcher,
		tb:         tb,
		conv:       newConversations(),
	}
	b.register()
	return b
}

func (b *Bot) register() {
	b.tb.Handle("/start", b.wrap(b.handleStart))
	b.tb.Handle("/profile", b.wrap(b.handleProfile))
	b.tb.Handle("/leave", b.wrap(b.handleLeave))
	b.tb.Handle("/quiz", b.wrap(b.handleQuiz))

	b.tb.Handle("/admin", b.wrap(b.adminOnly(b.handleAdminMenu)))
	b.tb.Handle("/draw", b.wrap(b.adminOnly(b.handleDraw)))
	b.tb.Handle("/notify", b.wrap(b.adminOnly(b.handleNotify)))
	b.tb.Handle("/broadcast", b.wrap(b.adminOnly(b.handleBroadcastStart)))
	b.tb.Handle("/cancel_broadcast", b.wrap(b.adminOnly(b.handleBroadcastCancel)))
	b.tb.Handle("/newpoll", b.wrap(b.adminOnly(b.handleNewPoll)))

	b.tb.Handle(telebot.OnText, b.wrap(b.handleText))
	for _, media := range []string{
		telebot.OnPhoto,
		telebot.OnVideo,
		telebot.OnDocument,
		telebot.OnSticker,
		telebot.OnVoice,
		telebot.OnAudio,
	} {
		b.tb.Handle(media, b.wrap(b.handleMedia))
	}

	b.tb.Handle(&btnRegisterStart, b.wrap(b.handleRegisterStart))
	b.tb.Handle(&btnProfileEdit, b.wrap(b.handleRegisterStart))
	b.tb.Handle(&btnLeaveGame, b.wrap(b.handleLeaveButton))
	b.tb.Handle(&btnAdminApprove, b.wrap(b.handleValidation(true)))
	b.tb.Handle(&btnAdminReject, b.wrap(b.handleValidation(false)))
	b.tb.Handle(&btnQuizAnswer, b.wrap(b.handleQuizAnswer))
}

// wrap binds a deadline and scoped logging to the handler and converts any
// uncaught failure into a generic apology: one broken interaction must never
// take the process down.
func (b *Bot) wrap(handler func(*UpdateContext) error) telebot.HandlerFunc {
	return func(c telebot.Context) error {
		ctx, cancel := context.WithTimeout(context.Background(), b.config.BotHandleTimeout)
		defer cancel()

		uc := NewUpdateContext(ctx, c)
		if err := handler(uc); err != nil {
			uc.L().Errorf("handler failed: %v", err)
			if sendErr := c.Send(textUnexpectedError); sendErr != nil {
				uc.L().Warnf("failed to send error reply: %v", sendErr)
			}
		}
		return nil
	}
}

func (b *Bot) adminOnly(handler func(*UpdateContext) error) func(*UpdateContext) error {
	return func(uc *UpdateContext) error {
		if uc.Sender() == nil || !b.config.IsAdmin(uc.Sender().ID) {
			uc.L().Debug("ignoring admin command from non-admin")
			return nil
		}
		return handler(uc)
	}
}

func (b *Bot) Start() {
	b.tb.Start()
}

func (b *Bot) Stop() {
	b.tb.Stop()
}

// handleText multiplexes free-text messages: broadcast capture, admin menu
// buttons, then registration steps.
func (b *Bot) handleText(uc *UpdateContext) error {
	sender := uc.Sender()
	if sender == nil || uc.Message() == nil {
		return nil
	}

	if b.config.IsAdmin(sender.ID) && b.conv.inBroadcast(sender.ID) {
		if uc.Message().Text == labelCancel {
			return b.handleBroadcastCancel(uc)
		}
		return b.handleBroadcastMessage(uc)
	}

	if b.config.IsAdmin(sender.ID) {
		switch uc.Message().Text {
		case labelAdminListAll:
			return b.handleListParticipants(uc, false)
		case labelAdminListValidated:
			return b.handleListParticipants(uc, true)
		case labelAdminDraw:
			return b.handleDraw(uc)
		case labelAdminNotify:
			return b.handleNotify(uc)
		case labelAdminBroadcast:
			return b.handleBroadcastStart(uc)
		}
	}

	if _, ok := b.conv.registration(sender.ID); ok {
		return b.handleRegistrationStep(uc)
	}

	uc.L().Debug("ignoring free-text message outside any flow")
	return nil
}

// handleMedia only matters for the admin broadcast flow, which copies
// arbitrary content.
func (b *Bot) handleMedia(uc *UpdateContext) error {
	sender := uc.Sender()
	if sender == nil {
		return nil
	}
	if b.config.IsAdmin(sender.ID) && b.conv.inBroadcast(sender.ID) {
		return b.handleBroadcastMessage(uc)
	}
	return nil
}

func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
