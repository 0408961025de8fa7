package main

import (
	"context"
	"time"

	"github.com/Sanmen87/taini-santa/internal/config"
	"github.com/Sanmen87/taini-santa/internal/logging"
	"github.com/Sanmen87/taini-santa/internal/models"
	"github.com/Sanmen87/taini-santa/internal/rowstore"
	"github.com/sirupsen/logrus"
)

// Writes the header rows into every sheet the bot uses. Run once against
// a fresh spreadsheet before starting the bot.
func main() {
	config.SetupCommon()
	logging.Init()

	cfg := config.New()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := rowstore.NewGoogle(ctx, cfg.CredentialsPath, cfg.SpreadsheetID)
	if err != nil {
		logrus.Fatalf("Failed to connect to spreadsheet: %v", err)
	}

	for _, s := range []struct {
		sheet  string
		header []string
	}{
		{cfg.ParticipantsSheet, models.ParticipantColumns},
		{cfg.PollsSheet, models.PollColumns},
		{cfg.PollResponsesSheet, models.PollResponseColumns},
	} {
		if err := store.WriteHeader(ctx, s.sheet, s.header); err != nil {
			logrus.Fatalf("Failed to write header for sheet %q: %v", s.sheet, err)
		}
		logrus.Infof("sheet %q header written (%d columns)", s.sheet, len(s.header))
	}
}
