package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hihaluemen/tetris-claude/internal/audio"
	"github.com/hihaluemen/tetris-claude/internal/config"
	"github.com/hihaluemen/tetris-claude/internal/debuglog"
	"github.com/hihaluemen/tetris-claude/internal/ui"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	configPath := flag.String("config", "", "settings file (default: user config dir)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	debuglog.Enable(*debug || cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tetris: %v, using defaults\n", err)
		debuglog.Logf("config error: %v", err)
	}
	debuglog.Logf("start debug=%v config=%s", debuglog.Enabled(), cfg.Path())

	sound, music := openAudio(cfg)
	program := tea.NewProgram(ui.NewModel(cfg, sound, music), tea.WithAltScreen())
	_, err = program.Run()
	music.Stop()
	if err != nil {
		debuglog.Logf("program error: %v", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openAudio prepares sound output. The game runs silent when no device is
// available or the music file cannot be read.
func openAudio(cfg config.Config) (*audio.Effects, *audio.Music) {
	rate := audio.DefaultSampleRate
	if cfg.MusicFile != "" {
		if probed, err := audio.ProbeSampleRate(cfg.MusicFile); err == nil {
			rate = probed
		} else {
			debuglog.Logf("music probe error: %v", err)
		}
	}
	ctx, rate, err := audio.Context(rate)
	if err != nil {
		debuglog.Logf("audio init error: %v", err)
		return audio.NewEffects(nil, rate, false), nil
	}
	volume := audio.VolumeFromPercent(cfg.Volume)
	sound := audio.NewEffects(ctx, rate, cfg.Sound)
	sound.SetVolume(volume)
	music, err := audio.NewMusic(ctx, cfg.MusicFile, volume)
	if err != nil {
		debuglog.Logf("music error: %v", err)
		return sound, nil
	}
	return sound, music
}
