package app

import (
	"fmt"
	"time"

	"github.com/ShigeoUeda/hylable-discussion-backup/config"
	boardusecases "github.com/ShigeoUeda/hylable-discussion-backup/internal/domain/board/usecases"
	"github.com/ShigeoUeda/hylable-discussion-backup/internal/domain/discussion/usecases"
	"github.com/ShigeoUeda/hylable-discussion-backup/internal/hylable"
	"github.com/ShigeoUeda/hylable-discussion-backup/internal/miro"
)

type App struct {
	Poller      *usecases.Poller
	Transcripts *usecases.TranscriptFetcher
	Exporter    *usecases.Exporter
	Backup      *boardusecases.Backup
}

func New(cfg *config.Config) (*App, error) {
	location, err := time.LoadLocation(cfg.DisplayTimezone)
	if err != nil {
		return nil, fmt.Errorf("loading display timezone %q: %w", cfg.DisplayTimezone, err)
	}

	hylableClient := hylable.NewClient(cfg.HylableBaseURL, cfg.HylableAPIKey)
	miroClient := miro.NewClient(cfg.MiroBaseURL, cfg.MiroAccessToken)

	poller := &usecases.Poller{
		Client:   hylableClient,
		Interval: cfg.PollInterval,
		Timeout:  cfg.PollTimeout,
		Location: location,
	}

	transcripts := &usecases.TranscriptFetcher{
		Client:   hylableClient,
		Location: location,
	}

	backup := &boardusecases.Backup{
		Client: miroClient,
	}

	return &App{
		Poller:      poller,
		Transcripts: transcripts,
		Exporter:    &usecases.Exporter{},
		Backup:      backup,
	}, nil
}
