package sim

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/thoas/go-funk"
)

// Config is the complete simulation configuration.
type Config struct {
	Simulation Settings      `hcl:"simulation,block"`
	Tables     []TableConfig `hcl:"table,block"`
}

// Settings contains run-level configuration. HistoryDir and PHHDir
// enable the text and PHH hand exports when set.
type Settings struct {
	Hands      int    `hcl:"hands,optional"`
	Seed       int64  `hcl:"seed,optional"`
	LogLevel   string `hcl:"log_level,optional"`
	HistoryDir string `hcl:"history_dir,optional"`
	PHHDir     string `hcl:"phh_dir,optional"`
}

// TableConfig defines one simulated table. Policies are assigned to
// seats round-robin, so a two-entry list alternates around the table.
type TableConfig struct {
	Name       string   `hcl:"name,label"`
	Seats      int      `hcl:"seats,optional"`
	Chips      int      `hcl:"chips,optional"`
	SmallBlind int      `hcl:"small_blind"`
	BigBlind   int      `hcl:"big_blind"`
	Hands      int      `hcl:"hands,optional"`
	Policies   []string `hcl:"policies,optional"`
}

// DefaultConfig returns the configuration used when no file exists: one
// six-seat 5/10 table playing a hundred hands.
func DefaultConfig() *Config {
	return &Config{
		Simulation: Settings{
			Hands:    100,
			LogLevel: "info",
		},
		Tables: []TableConfig{
			{
				Name:       "main",
				Seats:      6,
				Chips:      1000,
				SmallBlind: 5,
				BigBlind:   10,
				Hands:      100,
				Policies:   []string{"call", "rand", "tag"},
			},
		},
	}
}

// LoadConfig loads simulation configuration from an HCL file. A missing
// file yields the defaults.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	if config.Simulation.Hands == 0 {
		config.Simulation.Hands = 100
	}
	if config.Simulation.LogLevel == "" {
		config.Simulation.LogLevel = "info"
	}

	for i := range config.Tables {
		if config.Tables[i].Seats == 0 {
			config.Tables[i].Seats = 6
		}
		if config.Tables[i].Chips == 0 {
			config.Tables[i].Chips = config.Tables[i].BigBlind * 100 // 100 big blind stacks
		}
		if config.Tables[i].Hands == 0 {
			config.Tables[i].Hands = config.Simulation.Hands
		}
		if len(config.Tables[i].Policies) == 0 {
			config.Tables[i].Policies = []string{"call", "rand", "tag"}
		}
	}

	return &config, nil
}

// Validate validates the simulation configuration.
func (c *Config) Validate() error {
	if c.Simulation.Hands <= 0 {
		return fmt.Errorf("hands must be positive, got %d", c.Simulation.Hands)
	}

	if len(c.Tables) == 0 {
		return fmt.Errorf("at least one table must be configured")
	}

	for _, table := range c.Tables {
		if table.SmallBlind <= 0 {
			return fmt.Errorf("table %s: small blind must be positive", table.Name)
		}
		if table.BigBlind <= table.SmallBlind {
			return fmt.Errorf("table %s: big blind must be greater than small blind", table.Name)
		}
		if table.Seats < 2 || table.Seats > 10 {
			return fmt.Errorf("table %s: seats must be between 2 and 10", table.Name)
		}
		if table.Chips < table.BigBlind {
			return fmt.Errorf("table %s: starting chips must cover the big blind", table.Name)
		}
		if table.Hands <= 0 {
			return fmt.Errorf("table %s: hands must be positive", table.Name)
		}
		for _, policy := range table.Policies {
			if !funk.ContainsString(PolicyNames(), policy) {
				return fmt.Errorf("table %s: invalid policy %s", table.Name, policy)
			}
		}
	}

	return nil
}

// TotalHands returns the hands to be played across all tables.
func (c *Config) TotalHands() int {
	total := 0
	for _, table := range c.Tables {
		total += table.Hands
	}
	return total
}
