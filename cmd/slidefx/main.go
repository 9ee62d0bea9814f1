// Command slidefx renders a slideshow video from a TOML show
// configuration.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/slidefx/slidefx"
	"github.com/slidefx/slidefx/encode"
	"github.com/slidefx/slidefx/slideshow"
)

func main() {
	var (
		configPath = flag.String("config", "show.toml", "show configuration file")
		output     = flag.String("o", "", "output file (overrides config)")
		verbose    = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	if *verbose {
		slidefx.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if !encode.Installed() {
		log.Fatalf("ffmpeg not found (looked for %q); install it or set PATH", encode.FFmpegPath)
	}

	show, err := slideshow.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *output != "" {
		show.Output = *output
	}

	fmt.Printf("Rendering %d slides at %dx%d @ %g fps (%d frames)\n",
		len(show.Slides), show.Width, show.Height, show.FPS, show.TotalFrames())

	gen := slideshow.NewVideoGenerator(show)
	if err := gen.Generate(printProgress); err != nil {
		fmt.Println()
		log.Fatalf("Render failed: %v", err)
	}

	fmt.Printf("\nDone: %s\n", show.Output)
}

func printProgress(current, total int, speed float64) {
	const barWidth = 30
	filled := 0
	pct := 0.0
	if total > 0 {
		filled = barWidth * current / total
		pct = float64(current) / float64(total) * 100
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	fmt.Printf("\r  [%s] %5.1f%% (%d/%d) %.2fx", bar, pct, current, total, speed)
}
