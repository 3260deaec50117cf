package audit

import (
	"fmt"
	"os"

	"github.com/graspable/uiaudit/pkg/report"
	"gopkg.in/yaml.v3"
)

// RulesConfig is the optional YAML rules file:
//
//	disable:
//	  - IMG-002
//	severity:
//	  LNK-003: med
type RulesConfig struct {
	Disable  []string          `yaml:"disable"`
	Severity map[string]string `yaml:"severity"`
}

// LoadRules reads and validates a YAML rules file into Options.
func LoadRules(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("reading rules file: %w", err)
	}
	var cfg RulesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Options{}, fmt.Errorf("parsing rules file: %w", err)
	}
	return cfg.Options()
}

// Options validates the config against the rule registry and converts it.
func (c RulesConfig) Options() (Options, error) {
	opts := Options{}

	for _, id := range c.Disable {
		if !KnownRule(id) {
			return Options{}, fmt.Errorf("unknown rule id %q in disable list", id)
		}
		if opts.Disabled == nil {
			opts.Disabled = make(map[string]bool)
		}
		opts.Disabled[id] = true
	}

	for id, sev := range c.Severity {
		if !KnownRule(id) {
			return Options{}, fmt.Errorf("unknown rule id %q in severity overrides", id)
		}
		s := report.Severity(sev)
		if s != report.High && s != report.Med && s != report.Low {
			return Options{}, fmt.Errorf("invalid severity %q for rule %s (want high, med or low)", sev, id)
		}
		if opts.Severities == nil {
			opts.Severities = make(map[string]report.Severity)
		}
		opts.Severities[id] = s
	}

	return opts, nil
}
