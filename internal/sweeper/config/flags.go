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
//	-d string     PostgreSQL DSN
//	-p string     sweep policy, "mark" or "delete"
//	-i duration   rerun interval, 0 for a one-shot sweep
//	-b string     S3 bucket for archiving purged records
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-p", "-i", "-b"})

	fs := flag.NewFlagSet("sweeper", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "PostgreSQL DSN")
	fs.StringVar(&cfg.Policy, "p", cfg.Policy, "sweep policy: mark or delete")
	fs.DurationVar(&cfg.Interval, "i", cfg.Interval, "rerun interval, 0 for a one-shot sweep")
	fs.StringVar(&cfg.S3Bucket, "b", cfg.S3Bucket, "S3 bucket for archiving purged records")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
