// Command whisper-app is a background voice transcriber: a global hotkey
// toggles microphone recording, the audio goes to a speech-to-text API,
// and the transcript is pasted at the cursor.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/PieterBecking/whisper-app/internal/app"
	"github.com/PieterBecking/whisper-app/internal/config"
	"github.com/PieterBecking/whisper-app/internal/logging"
)

func main() {
	flags := config.RegisterFlags(flag.CommandLine)
	flag.Parse()

	if err := logging.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "[main] logging init failed: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync()

	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[main] %v\n", err)
		os.Exit(1)
	}
	flags.Apply(flag.CommandLine, &cfg)

	if err := config.ResolveToken(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "[main] %v\n", err)
		fmt.Fprintf(os.Stderr, "[main] export %s=<your key> and restart\n", config.EnvAPIKey)
		os.Exit(1)
	}
	if err := config.Validate(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "[main] %v\n", err)
		os.Exit(1)
	}

	if err := app.Run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "[main] %v\n", err)
		os.Exit(1)
	}
}
