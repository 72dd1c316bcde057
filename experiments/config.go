package experiments

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"santorini/experiments/metrics"
	"santorini/meta"
)

// Config describes an experiment: every match-up plays Games games, alternating which agent
// takes seat 0
type Config struct {
	Name        string                `yaml:"name"`
	Games       int                   `yaml:"games"`
	Seed        uint64                `yaml:"seed"`
	Concurrency int                   `yaml:"concurrency"`
	Positions   string                `yaml:"positions"` // Optional starting positions file
	Output      string                `yaml:"output"`    // CSV directory, nothing is written if empty
	Agents      []metrics.AgentConfig `yaml:"agents"`
	MatchUps    [][]int               `yaml:"matchups"` // Pairs of agent ids
}

func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read experiment config: %w", err)
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse experiment config: %w", err)
	}
	config.setDefaults()
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c *Config) setDefaults() {
	if c.Name == "" {
		c.Name = "experiment"
	}
	if c.Games <= 0 {
		c.Games = meta.GAMES
	}
	if c.Concurrency <= 0 {
		c.Concurrency = meta.GO_ROUTINES
	}
}

func (c Config) Validate() error {
	agents := make(map[int]metrics.AgentConfig, len(c.Agents))
	for _, agent := range c.Agents {
		if _, ok := agents[agent.ID]; ok {
			return fmt.Errorf("duplicate agent id %d", agent.ID)
		}
		if agent.Kind == "human" {
			return fmt.Errorf("agent %d: human agents cannot play experiments", agent.ID)
		}
		agents[agent.ID] = agent
	}
	if len(c.MatchUps) == 0 {
		return fmt.Errorf("experiment %q has no match-ups", c.Name)
	}
	for i, matchUp := range c.MatchUps {
		if len(matchUp) != 2 {
			return fmt.Errorf("match-up %d: expected 2 agent ids, got %d", i+1, len(matchUp))
		}
		for _, id := range matchUp {
			if _, ok := agents[id]; !ok {
				return fmt.Errorf("match-up %d: unknown agent id %d", i+1, id)
			}
		}
	}
	return nil
}

// agent returns the configuration of a validated agent id
func (c Config) agent(id int) metrics.AgentConfig {
	for _, agent := range c.Agents {
		if agent.ID == id {
			return agent
		}
	}
	panic(fmt.Sprintf("agent %d is not configured", id))
}
