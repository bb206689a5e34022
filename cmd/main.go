package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tb2gmail/internal/config"
	"tb2gmail/internal/logger"
	"tb2gmail/internal/thunderbird"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app carries what every subcommand needs once the root command has run.
type app struct {
	cfgFile string
	cfg     *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "tb2gmail",
		Short: "Migrate Thunderbird message filters to Gmail filters or Sieve",
		Long: `tb2gmail reads a Thunderbird msgFilterRules.dat file and turns its rules
into Gmail filters (search query plus label changes) or into a Sieve script
for a Dovecot server.

Examples:
  # Show what Thunderbird has
  tb2gmail parse msgFilterRules.dat

  # Compile to Gmail filters without touching an account
  tb2gmail compile msgFilterRules.dat

  # Write and install a Sieve script
  tb2gmail sieve msgFilterRules.dat --dest ./out --install chris@example.com`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.cfgFile)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			a.cfg = cfg
			logger.Initialize(cfg.Logging, cmd.ErrOrStderr())
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file (default ./tb2gmail.yaml, then /etc/tb2gmail.yaml)")

	root.AddCommand(a.newParseCmd(), a.newCompileCmd(), a.newSieveCmd())
	return root
}

// loadRules parses path. An empty file is not an error; it yields nil.
func loadRules(path string) (*thunderbird.RuleSet, error) {
	rs, err := thunderbird.ParseFile(path)
	if err != nil {
		return nil, err
	}
	if rs == nil {
		logger.Warn("no rules found", "file", path)
	}
	return rs, nil
}
