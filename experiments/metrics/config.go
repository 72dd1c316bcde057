package metrics

import "time"

// AgentConfig describes one seat of a match-up
type AgentConfig struct {
	ID       int           `yaml:"id"`
	Kind     string        `yaml:"kind"` // heuristic, flat, tree, rollout or human
	Duration time.Duration `yaml:"duration"`
	Episodes int           `yaml:"episodes"`
	Block    string        `yaml:"block"` // first-stopper (default) or unambiguous
}
