package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"tb2gmail/internal/thunderbird"
)

type ruleView struct {
	Name       string   `yaml:"name"`
	Enabled    bool     `yaml:"enabled"`
	Type       []string `yaml:"type"`
	Conditions []string `yaml:"conditions,omitempty"`
	Actions    []string `yaml:"actions,omitempty"`
}

type ruleSetView struct {
	Version string     `yaml:"version"`
	Logging *bool      `yaml:"logging,omitempty"`
	Rules   []ruleView `yaml:"rules"`
}

func newRuleSetView(rs *thunderbird.RuleSet) ruleSetView {
	v := ruleSetView{Version: rs.Version}
	if logging, declared := rs.Logging(); declared {
		v.Logging = &logging
	}
	for _, r := range rs.Rules {
		rv := ruleView{Name: r.Name, Enabled: r.Enabled, Type: r.TypeNames()}
		for _, c := range r.Conditions.Conditions() {
			rv.Conditions = append(rv.Conditions, c.String())
		}
		for _, a := range r.Actions {
			rv.Actions = append(rv.Actions, a.String())
		}
		v.Rules = append(v.Rules, rv)
	}
	return v
}

func (a *app) newParseCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Parse a msgFilterRules.dat file and print its rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := loadRules(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if rs == nil {
				rs = &thunderbird.RuleSet{}
			}

			switch format {
			case "text":
				_, err = fmt.Fprintln(out, rs.String())
				return err
			case "yaml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(newRuleSetView(rs)); err != nil {
					return fmt.Errorf("encoding rules: %w", err)
				}
				return enc.Close()
			default:
				return fmt.Errorf("unknown format %q (want text or yaml)", format)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, yaml")
	return cmd
}
