package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tb2gmail/internal/logger"
	"tb2gmail/internal/sieve"
)

func (a *app) newSieveCmd() *cobra.Command {
	var (
		dest    string
		install string
		split   bool
	)

	cmd := &cobra.Command{
		Use:   "sieve FILE",
		Short: "Convert enabled rules into a Sieve script",
		Long: `Convert every enabled rule into Sieve and write one combined script
named after sieve.script_name into --dest. With --split, each rule is also
written to its own file. With --install, the combined script is uploaded and
activated for that mailbox through sieve.doveadm_command.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := loadRules(args[0])
			if err != nil {
				return err
			}

			scripts := sieve.ConvertRuleSet(rs)
			combined := sieve.CombineScripts(a.cfg.Sieve.ScriptName, scripts)

			// The validating interpreter lacks some extensions Dovecot has
			// (body, date), so a failure here is only a warning.
			if err := sieve.Validate(combined); err != nil {
				logger.Warn("sieve validation", "error", err)
			}

			out := []sieve.SieveScript{combined}
			if split {
				out = append(out, scripts...)
			}
			paths, err := sieve.WriteScripts(out, dest)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			logger.Info("sieve scripts written", "rules", len(scripts), "dest", dest)

			if install == "" {
				return nil
			}
			in := &sieve.Installer{Command: a.cfg.Sieve.DoveadmCmd, ScriptName: a.cfg.Sieve.ScriptName}
			if err := in.Install(cmd.Context(), install, combined); err != nil {
				return fmt.Errorf("installing sieve for %s: %w", install, err)
			}
			logger.Info("sieve installed", "user", install, "script", a.cfg.Sieve.ScriptName)
			return nil
		},
	}
	cmd.Flags().StringVar(&dest, "dest", "./sieve", "destination folder for sieve scripts")
	cmd.Flags().StringVar(&install, "install", "", "mailbox to install the combined script for")
	cmd.Flags().BoolVar(&split, "split", false, "also write one script per rule")
	return cmd
}
