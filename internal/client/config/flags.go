package config

import (
	"flag"
	"os"

	"github.com/pastelog/pastelog/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-s string   base URL of the pastelog server
//	-m string   path to the local mirror database
//	-g string   GitHub token for gist imports
//	-k string   Gemini API key for summaries
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-s", "-m", "-g", "-k"})

	fs := flag.NewFlagSet("client", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "s", cfg.ServerEndpointAddr, "base URL of the pastelog server")
	fs.StringVar(&cfg.MirrorPath, "m", cfg.MirrorPath, "path to the local mirror database")
	fs.StringVar(&cfg.GistToken, "g", cfg.GistToken, "GitHub token for gist imports")
	fs.StringVar(&cfg.SummaryAPIKey, "k", cfg.SummaryAPIKey, "Gemini API key for summaries")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
