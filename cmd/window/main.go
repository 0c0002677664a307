package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/starfall/internal/backend/ebitenui"
	"github.com/tomz197/starfall/internal/loop"
	"github.com/tomz197/starfall/internal/loop/config"
	"github.com/tomz197/starfall/internal/sound"
)

func main() {
	var (
		preset     = flag.String("preset", "classic", "game variant: classic or barrage")
		difficulty = flag.String("difficulty", "normal", "easy, normal or hard")
		seed       = flag.Uint64("seed", 0, "random seed (0 picks one)")
		withSound  = flag.Bool("sound", true, "play sound effects")
		volume     = flag.Float64("volume", 0.8, "sound volume between 0 and 1")
		logLevel   = flag.String("log-level", "info", "log level")
	)
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "starfall",
	})
	if lvl, err := log.ParseLevel(*logLevel); err == nil {
		logger.SetLevel(lvl)
	}

	tuning, err := config.Load(*preset, *difficulty)
	if err != nil {
		logger.Fatal("invalid settings", "err", err)
	}
	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}

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

	g, err := ebitenui.NewGame(ebitenui.Options{
		Tuning: tuning,
		Seed:   *seed,
		Events: events,
		Logger: logger,
	})
	if err != nil {
		logger.Fatal("create game", "err", err)
	}
	if err := ebitenui.Run("Starfall", g); err != nil {
		logger.Fatal("game failed", "err", err)
	}
	if res, over := g.Result(); over {
		fmt.Printf("Final score: %d\n", res.Score)
	}
}
