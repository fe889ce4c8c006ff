package config

import (
	"flag"
	"os"

	"github.com/freecbt/journal/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   path of the sqlite journal file (default from Config)
//	-l string   locale tag for distortion labels (default from Config)
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "path of the journal database file")
	fs.StringVar(&cfg.Locale, "l", cfg.Locale, "locale for distortion labels")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
