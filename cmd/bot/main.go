package main

import (
	"context"
	"math/rand"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/Sanmen87/taini-santa/internal/bot"
	"github.com/Sanmen87/taini-santa/internal/config"
	"github.com/Sanmen87/taini-santa/internal/directory"
	"github.com/Sanmen87/taini-santa/internal/draw"
	"github.com/Sanmen87/taini-santa/internal/logging"
	"github.com/Sanmen87/taini-santa/internal/notify"
	"github.com/Sanmen87/taini-santa/internal/polls"
	"github.com/Sanmen87/taini-santa/internal/rowstore"
	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v4"
)

func main() {
	config.SetupCommon()
	logging.Init()

	cfg := config.New()
	logrus.Debugf("config: %+v", cfg)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	initCtx, initCancel := context.WithTimeout(ctx, 10*time.Second)
	defer initCancel()

	store, err := rowstore.NewGoogle(initCtx, cfg.CredentialsPath, cfg.SpreadsheetID)
	if err != nil {
		logrus.Fatalf("Failed to connect to spreadsheet: %v", err)
	}

	dir := directory.New(store, directory.Options{
		Sheet:      cfg.ParticipantsSheet,
		CacheTTL:   cfg.CacheTTL,
		BatchChunk: cfg.BatchChunk,
	})

	pollsSvc := polls.New(store, polls.Options{
		PollsSheet:     cfg.PollsSheet,
		ResponsesSheet: cfg.PollResponsesSheet,
	})

	tb, err := telebot.NewBot(telebot.Settings{
		Token:     cfg.BotToken,
		ParseMode: telebot.ModeHTML,
		Poller: &telebot.LongPoller{
			Timeout:        10 * time.Second,
			AllowedUpdates: []string{"message", "callback_query"},
		},
	})
	if err != nil {
		logrus.Fatalf("Failed to create bot: %v", err)
	}

	engine := draw.New(rand.New(rand.NewSource(time.Now().UnixNano())))
	dispatcher := notify.New(dir, bot.NewSender(tb), nil)

	b := bot.New(cfg, dir, pollsSvc, engine, dispatcher, tb)

	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		b.Start()
	}()

	<-ctx.Done()

	b.Stop()

	logrus.Info("waiting for services to finish")
	wg.Wait()
}
