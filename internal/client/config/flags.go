package config

import (
	"flag"
	"os"

	"github.com/vetdesk/vetdesk/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   base URL of the backend server
//	-d string   path of the local client database
//
// os.Args is filtered down to the flags handled here so this FlagSet does
// not trip over flags owned by other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the backend server")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local client database")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
