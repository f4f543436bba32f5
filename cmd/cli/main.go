package main

import (
	"fmt"
	"os"

	"github.com/de-tools/data-brief/pkg/runtime/terminal"
	"github.com/de-tools/data-brief/pkg/services/config"
	"github.com/de-tools/data-brief/pkg/services/speech"
	"github.com/de-tools/data-brief/pkg/store/client"
)

func main() {
	cfg, err := config.LoadConfig(os.Getenv("DATABRIEF_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cli := terminal.NewCLI(terminal.Options{
		Client:      client.NewClient(cfg.ServiceURL),
		Synthesizer: synthesizerFor(cfg.Speech),
		Recognizer:  speech.NewCommandRecognizer(cfg.Speech.ListenCommand),
		ExportDir:   cfg.ExportDir,
		Output:      os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func synthesizerFor(cfg config.Speech) speech.Synthesizer {
	switch cfg.Engine {
	case "off":
		return speech.Disabled()
	case "online":
		return speech.NewOnlineSynthesizer(cfg.CacheDir, cfg.Language)
	default:
		if cfg.Command != "" {
			return speech.NewCommandSynthesizer(cfg.Command)
		}
		return speech.DefaultSynthesizer()
	}
}
