package main

import (
	"context"
	"time"

	"github.com/Sanmen87/taini-santa/internal/api"
	"github.com/Sanmen87/taini-santa/internal/config"
	"github.com/Sanmen87/taini-santa/internal/directory"
	"github.com/Sanmen87/taini-santa/internal/logging"
	"github.com/Sanmen87/taini-santa/internal/rowstore"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

func main() {
	config.SetupCommon()
	logging.Init()

	cfg := config.New()
	logrus.Debugf("config: %+v", cfg)

	initCtx, initCancel := context.WithTimeout(context.Background(), 10*time.Second)
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

	service := api.NewService(cfg, dir)
	e := echo.New()
	service.Register(e)
	if err := e.Start(cfg.APIListen); err != nil {
		logrus.Fatalf("API server stopped: %v", err)
	}
}
