package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/theater/internal/app"
	"github.com/llehouerou/theater/internal/config"
	"github.com/llehouerou/theater/internal/errmsg"
	"github.com/llehouerou/theater/internal/icons"
	"github.com/llehouerou/theater/internal/logging"
	"github.com/llehouerou/theater/internal/mpris"
	"github.com/llehouerou/theater/internal/notify"
	"github.com/llehouerou/theater/internal/playback"
	"github.com/llehouerou/theater/internal/player"
	"github.com/llehouerou/theater/internal/state"
	"github.com/llehouerou/theater/internal/stderr"
	"github.com/llehouerou/theater/internal/tracksource"
	"github.com/llehouerou/theater/internal/ui/poster"
)

func run(arg string, opts options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return errmsg.Wrap(errmsg.OpConfigLoad, err)
	}
	icons.Init(cfg.IconStyle())

	log, logCloser := openLog(cfg)
	defer logCloser.Close()

	if capture, err := stderr.Start(log); err != nil {
		log.WithError(err).Debug("stderr capture unavailable")
	} else {
		defer capture.Stop()
	}

	store, err := openState(cfg)
	if err != nil {
		return errmsg.Wrap(errmsg.OpStateOpen, err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn(errmsg.Format(errmsg.OpStateFlush, err))
		}
	}()

	src, err := loadSource(arg, opts, log)
	if err != nil {
		return errmsg.WrapWith(errmsg.OpSourceLoad, arg, err)
	}

	prefs := state.NewPreferences(store, log)
	screen := app.NewScreen()
	engine := playback.NewEngine(player.NewBeepOpener(), prefs,
		playback.WithEngineLogger(log),
		playback.WithCapabilities(screen),
	)

	var program *tea.Program
	ctrl := playback.New(engine, prefs, src,
		playback.WithLogger(log),
		playback.WithCountdownDelay(cfg.CountdownTicks()),
		// Close may be called from inside Update, where Quit would block.
		playback.WithOnClose(func() { go program.Quit() }),
	)
	defer ctrl.Stop()

	model := app.New(ctrl, screen, cfg.GetPlaybackConfig())
	if cfg.PostersEnabled() && poster.Supported(os.Getenv) {
		model = model.WithPoster(poster.New())
	}
	program = tea.NewProgram(model)

	if cfg.MPRISEnabled() && !opts.noMPRIS {
		adapter, err := mpris.New(ctrl)
		if err != nil {
			log.Warn(errmsg.Format(errmsg.OpMPRISStart, err))
		} else {
			defer adapter.Close()
		}
	}

	if cfg.NotificationsEnabled() {
		n, err := notify.New()
		if err != nil {
			log.Warn(errmsg.Format(errmsg.OpNotifyStart, err))
		} else {
			go notify.NewAnnouncer(n, log).Run(ctrl)
		}
	}

	ctrl.Start()
	if _, err := program.Run(); err != nil {
		return errmsg.Wrap(errmsg.OpInitialize, err)
	}
	return nil
}

// openLog opens the configured log file, falling back to a discarding
// logger so a read-only state directory does not prevent playback.
func openLog(cfg *config.Config) (*logrus.Logger, io.Closer) {
	path, err := cfg.LogFilePath()
	if err == nil {
		var log *logrus.Logger
		var closer io.Closer
		if log, closer, err = logging.Open(path, cfg.LogLevel()); err == nil {
			return log, closer
		}
	}
	fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpLogOpen, err))
	return logging.Discard(), io.NopCloser(nil)
}

func openState(cfg *config.Config) (*state.Manager, error) {
	if cfg.State.Path != "" {
		return state.OpenPath(cfg.State.Path)
	}
	return state.Open()
}

// loadSource resolves the command-line argument and applies flag
// overrides. An input without tracks starts the player idle.
func loadSource(arg string, opts options, log logrus.FieldLogger) (playback.Source, error) {
	src, err := tracksource.Load(arg)
	switch {
	case errors.Is(err, tracksource.ErrEmpty):
		log.WithField("input", arg).Warn("nothing to play")
	case err != nil:
		return playback.Source{}, err
	}

	if opts.name != "" {
		src.Name = opts.name
	}
	if opts.startSet {
		src.StartIndex = opts.start
	}
	return src, nil
}
