package main

import (
	"context"
	"log/slog"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"

	"github.com/japaniel/speakmeaning/pkg/app"
	"github.com/japaniel/speakmeaning/pkg/config"
	"github.com/japaniel/speakmeaning/pkg/dictionary"
	"github.com/japaniel/speakmeaning/pkg/gui"
	"github.com/japaniel/speakmeaning/pkg/speech"
)

const appID = "io.github.japaniel.speakmeaning"

func runGUI(ctx context.Context, cfg *config.Config, lookuper dictionary.Lookuper, engine speech.Engine, logger *slog.Logger) int {
	a := fyneapp.NewWithID(appID)
	win := gui.New(a, cfg.Window)

	speaker := speech.NewSpeaker(engine, cfg.SpeechEngineConfig(), cfg.Speech.QueueSize, logger)
	defer speaker.Close()

	ctrl := app.NewController(win, lookuper, speaker, app.Options{
		Workers:  cfg.Lookup.Workers,
		Queue:    cfg.Lookup.Queue,
		Dispatch: gui.Dispatch,
		Logger:   logger,
	})
	defer ctrl.Close()
	win.Bind(ctrl)

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			logger.Info("shutting down", slog.String("reason", context.Cause(ctx).Error()))
			fyne.Do(a.Quit)
		case <-stop:
		}
	}()

	win.ShowAndRun()
	return 0
}
