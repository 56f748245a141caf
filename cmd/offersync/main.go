package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"google.golang.org/api/googleapi"

	"offersync/internal/config"
	"offersync/internal/journal"
	"offersync/internal/lock"
	"offersync/internal/log"
	"offersync/internal/notify"
	"offersync/internal/schedule"
	"offersync/internal/services"
	gsheet "offersync/internal/sheets/google"
)

// Exit codes: 0 also covers intentional no-ops (outside the work
// window, lock held, empty settings). 2 is reserved for Google API
// failures so the scheduler can tell remote trouble from our own.
const (
	exitOK       = 0
	exitInternal = 1
	exitAPI      = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load .env file for local development (ignore errors in production)
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		return exitInternal
	}

	now, err := schedule.NowIn(cfg.TimeZone)
	if err != nil {
		logger.Error("load time zone", "tz", cfg.TimeZone, "error", err)
		return exitInternal
	}
	if !schedule.InWorkWindow(now, cfg.WorkStartHour, cfg.WorkEndHour) {
		logger.Info(fmt.Sprintf("outside work window (%d:00-%d:00), skipping run", cfg.WorkStartHour, cfg.WorkEndHour))
		return exitOK
	}

	lk, err := lock.Acquire(cfg.LockFile)
	if errors.Is(err, lock.ErrHeld) {
		logger.Info("another run holds the lock, skipping", "lock", cfg.LockFile)
		return exitOK
	}
	if err != nil {
		logger.Error("acquire lock", "lock", cfg.LockFile, "error", err)
		return exitInternal
	}
	defer lk.Release()

	ctx := context.Background()

	creds, err := cfg.CredentialsJSON()
	if err != nil {
		logger.Error("load credentials", "error", err)
		return exitInternal
	}
	client, err := gsheet.NewClient(ctx, creds)
	if err != nil {
		logger.Error("create sheets client", "error", err)
		return exitInternal
	}

	// Journal and notifications are optional observability: failing to
	// set them up must not stop the sync.
	var recorder services.Recorder
	if cfg.JournalDBPath != "" {
		j, err := journal.Open(cfg.JournalDBPath)
		if err != nil {
			logger.Warn("journal disabled", "path", cfg.JournalDBPath, "error", err)
		} else {
			defer j.Close()
			recorder = j
		}
	}
	var notifier services.Notifier
	if cfg.AMQPURL != "" {
		n, err := notify.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("notifications disabled", "error", err)
		} else {
			defer n.Close()
			notifier = n
		}
	}

	syncer := services.NewSyncer(client, services.Options{
		SourceSpreadsheetID: cfg.SourceSpreadsheetID,
		TargetSpreadsheetID: cfg.TargetSpreadsheetID,
		SettingsSheetName:   cfg.SettingsSheetName,
	}, logger, recorder, notifier)

	if err := syncer.Run(ctx, now); err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			logger.Error("Google API error", "code", apiErr.Code, "error", err)
			return exitAPI
		}
		logger.Error("sync run failed", "error", err)
		return exitInternal
	}
	return exitOK
}
