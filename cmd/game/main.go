package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/tomz197/starfall/internal/backend/tcellui"
	"github.com/tomz197/starfall/internal/loop"
	"github.com/tomz197/starfall/internal/loop/client"
	"github.com/tomz197/starfall/internal/loop/config"
	"github.com/tomz197/starfall/internal/loop/server"
	"github.com/tomz197/starfall/internal/sound"
)

func main() {
	var (
		ui         = flag.String("ui", "ansi", "terminal backend: ansi or tcell")
		preset     = flag.String("preset", "classic", "game variant: classic or barrage")
		difficulty = flag.String("difficulty", "normal", "easy, normal or hard")
		seed       = flag.Uint64("seed", 0, "random seed (0 picks one)")
		withSound  = flag.Bool("sound", false, "play sound effects")
		volume     = flag.Float64("volume", 0.8, "sound volume between 0 and 1")
		logPath    = flag.String("log", "", "write logs to this file")
		logLevel   = flag.String("log-level", "info", "log level")
	)
	flag.Parse()

	logger, closeLog, err := newLogger(*logPath, *logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	tuning, err := config.Load(*preset, *difficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid settings: %v\n", err)
		os.Exit(2)
	}
	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}
	logger.Info("starting", "ui", *ui, "preset", tuning.Name, "seed", *seed)

	events := loop.MultiSink{loop.LogSink{Logger: logger}}
	if *withSound {
		player := sound.NewPlayer(sound.DefaultSampleRate, *volume)
		if err := player.Init(); err != nil {
			logger.Warn("sound disabled", "err", err)
		} else {
			defer player.Close()
			events = append(events, player)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var res loop.Result
	switch *ui {
	case "ansi":
		res, err = runANSI(ctx, tuning, *seed, events, logger)
	case "tcell":
		res, err = runTcell(ctx, tuning, *seed, events, logger)
	default:
		err = fmt.Errorf("unknown ui %q", *ui)
	}
	if err != nil {
		logger.Error("game failed", "err", err)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Final score: %d\n", res.Score)
}

// runANSI plays on the raw terminal with the half-block ANSI renderer.
func runANSI(ctx context.Context, tuning config.Tuning, seed uint64, events loop.EventSink, logger *log.Logger) (loop.Result, error) {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return loop.Result{}, fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	gs := server.NewServer(server.Options{MaxSessions: 1, Logger: logger})
	c := client.NewClient(gs, bufio.NewReader(os.Stdin), os.Stdout, client.Options{
		Username:  os.Getenv("USER"),
		Tuning:    tuning,
		Seed:      seed,
		ShowTitle: true,
		Events:    events,
		Logger:    logger,
	})
	return c.Run(ctx)
}

// runTcell plays on a tcell screen.
func runTcell(ctx context.Context, tuning config.Tuning, seed uint64, events loop.EventSink, logger *log.Logger) (loop.Result, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return loop.Result{}, err
	}
	if err := s.Init(); err != nil {
		return loop.Result{}, err
	}
	defer s.Fini()
	s.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	s.HideCursor()
	s.Clear()

	scr := tcellui.NewScreen(s, tuning.Field.Width, tuning.Field.Height)
	kb := tcellui.NewKeyboard()
	go kb.Listen(s)

	return loop.Run(ctx, loop.Options{
		Tuning: tuning,
		Seed:   seed,
		Input:  kb,
		Drawer: scr,
		Events: events,
		Logger: logger,
		Presenter: &loop.ScreenPresenter{
			Drawer: scr,
			Input:  kb,
			Pacer:  loop.NewFramePacer(config.GameOverFrameTime),
			Field:  tuning.Field,
		},
	})
}

// newLogger logs to path, or nowhere: the terminal belongs to the game.
func newLogger(path, level string) (*log.Logger, func(), error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}
	var w io.Writer = io.Discard
	closeFn := func() {}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		w = f
		closeFn = func() { _ = f.Close() }
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "starfall",
		Level:           lvl,
	})
	return logger, closeFn, nil
}
