// Package main provides a headless timeline verification tool for the birthday card
// opening animation.
//
// Usage:
//
//	go run ./cmd/verify_timeline [flags]
//
// Flags:
//
//	--config <file>   Scene config to preview (default: built-in defaults)
//	--dump            Print a sample table instead of the interactive preview
//	--step <seconds>  Sample interval for --dump (default: 0.1)
//	--speed <factor>  Playback speed of the interactive preview (default: 1)
//	--verbose         Enable verbose logging
//
// Controls (interactive preview):
//
//	Space   - Pause/resume
//	R       - Restart from the beginning
//	Q/ESC   - Quit
//
// Purpose:
//   - Check the derived schedule after changing timeline constants
//   - Watch the overlay/environment signals cross over during the fade
//   - Verify the completion frame lands on the exact end poses
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/birthdaycard/pkg/config"
	"github.com/decker502/birthdaycard/pkg/timeline"
)

var (
	configFlag  = flag.String("config", "", "Scene config file (default: built-in defaults)")
	dumpFlag    = flag.Bool("dump", false, "Print a sample table and exit")
	stepFlag    = flag.Float64("step", 0.1, "Sample interval in seconds for --dump")
	speedFlag   = flag.Float64("speed", 1, "Playback speed for the interactive preview")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging")
)

func main() {
	flag.Parse()
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	cfg := config.DefaultSceneConfig()
	if *configFlag != "" {
		loaded, err := config.LoadSceneConfig(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	ctrl := timeline.NewController(cfg.Timeline)

	if *dumpFlag {
		if err := dumpSamples(os.Stdout, ctrl, *stepFlag); err != nil {
			fmt.Fprintf(os.Stderr, "dump failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := runPreview(ctrl, *speedFlag); err != nil {
		fmt.Fprintf(os.Stderr, "preview failed: %v\n", err)
		os.Exit(1)
	}
}

// runPreview 交互式预览：每 1/60 秒推进一次时间轴并重绘
func runPreview(ctrl *timeline.Controller, speed float64) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	defer screen.Fini()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	p := newPlayback(ctrl)
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
					return nil
				}
				if ev.Key() == tcell.KeyRune {
					switch ev.Rune() {
					case 'q':
						return nil
					case ' ':
						p.togglePause()
					case 'r':
						p.restart()
					}
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case <-ticker.C:
			p.advance(speed / 60)
			screen.Clear()
			drawPreview(screen, ctrl, p.frame, p.playing)
			screen.Show()
		}
	}
}
