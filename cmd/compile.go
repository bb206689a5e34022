package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"tb2gmail/internal/gmail"
	"tb2gmail/internal/logger"
	"tb2gmail/internal/thunderbird"
)

type failureView struct {
	Rule              string `yaml:"rule"`
	Error             string `yaml:"error"`
	ForwardingAddress string `yaml:"forwarding_address,omitempty"`
}

type compileReport struct {
	Filters       []*gmail.Filter `yaml:"filters"`
	LabelsCreated []gmail.Label   `yaml:"labels_created,omitempty"`
	Failures      []failureView   `yaml:"failures,omitempty"`
}

func (a *app) newCompileCmd() *cobra.Command {
	var publishTo string

	cmd := &cobra.Command{
		Use:   "compile FILE",
		Short: "Compile enabled rules into Gmail filters",
		Long: `Compile every enabled rule into a Gmail filter against an in-memory label
directory seeded from labels.existing, and print the result as YAML.

Rules that cannot be expressed as a Gmail filter are logged and listed under
"failures"; the remaining rules still compile.

With --publish-to, filters are published into a YAML file instead of only
printed. Filters already present in that file are reported as existing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := loadRules(args[0])
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			labels := a.seedLabels()
			w := &gmail.Writer{Compiler: a.newCompiler(labels, reg)}

			dryRun := publishTo == ""
			var store *fileStore
			if !dryRun {
				if store, err = openFileStore(publishTo); err != nil {
					return err
				}
				w.Publisher = store
			}

			filters, failures, err := w.EnsureFilters(rs, dryRun)
			if err != nil {
				return err
			}
			if store != nil {
				if err := store.save(); err != nil {
					return err
				}
			}

			report := compileReport{Filters: filters, LabelsCreated: labels.Created()}
			for _, f := range failures {
				logger.Warn("rule not compiled", "rule", f.Rule.Name, "error", f.Err)
				report.Failures = append(report.Failures, failureView{
					Rule:              f.Rule.Name,
					Error:             f.Err.Error(),
					ForwardingAddress: f.ForwardingAddress,
				})
			}
			logMetrics(reg)

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(report); err != nil {
				return fmt.Errorf("encoding filters: %w", err)
			}
			return enc.Close()
		},
	}
	cmd.Flags().StringVar(&publishTo, "publish-to", "", "append filters to this YAML file instead of a dry run")
	return cmd
}

func (a *app) seedLabels() *gmail.MemoryLabels {
	existing := make([]gmail.Label, 0, len(a.cfg.Labels.Existing))
	for i, name := range a.cfg.Labels.Existing {
		existing = append(existing, gmail.Label{ID: fmt.Sprintf("Label_%d", i+1), Name: name})
	}
	return gmail.NewMemoryLabels(existing...)
}

func (a *app) newCompiler(labels gmail.LabelDirectory, reg prometheus.Registerer) *gmail.Compiler {
	c := gmail.NewCompiler(labels)
	c.Metrics = gmail.NewMetrics(reg)
	c.Actions.CaseSensitive = a.cfg.Labels.CaseSensitive

	names := make(map[string]string, len(thunderbird.DefaultTagNames))
	for tag, name := range thunderbird.DefaultTagNames {
		names[tag] = name
	}
	for tag, name := range a.cfg.Labels.TagNames {
		names[tag] = name
	}
	c.Actions.TagNames = names
	return c
}

// logMetrics reports every counter at debug level.
func logMetrics(g prometheus.Gatherer) {
	families, err := g.Gather()
	if err != nil {
		logger.Warn("gathering metrics", "error", err)
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			args := []any{"value", m.GetCounter().GetValue()}
			for _, lp := range m.GetLabel() {
				args = append(args, lp.GetName(), lp.GetValue())
			}
			logger.Debug(mf.GetName(), args...)
		}
	}
}

// ───── YAML file publisher ─────

// fileStore publishes filters into a YAML file, the way a Gmail account
// would hold them. A filter with the same query and action as a stored one
// is rejected as existing.
type fileStore struct {
	path    string
	filters []*gmail.Filter
}

func openFileStore(path string) (*fileStore, error) {
	s := &fileStore{path: path}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s.filters); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return s, nil
}

func (s *fileStore) Publish(f *gmail.Filter) error {
	want, err := yaml.Marshal(filterKey(f))
	if err != nil {
		return err
	}
	for _, existing := range s.filters {
		got, err := yaml.Marshal(filterKey(existing))
		if err != nil {
			return err
		}
		if string(got) == string(want) {
			return gmail.ErrFilterAlreadyExists
		}
	}
	s.filters = append(s.filters, f)
	return nil
}

func (s *fileStore) save() error {
	data, err := yaml.Marshal(s.filters)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", s.path, err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	return nil
}

func filterKey(f *gmail.Filter) any {
	return struct {
		Criteria gmail.Criteria
		Action   gmail.FilterAction
	}{f.Criteria, f.Action}
}
