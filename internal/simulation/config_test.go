package simulation

import (
	"errors"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	t.Run("DefaultsAreValid", func(t *testing.T) {
		if err := DefaultConfig().Validate(); err != nil {
			t.Errorf("DefaultConfig failed validation: %v", err)
		}
	})

	// Each mutation must be rejected with ErrInvalidConfig, never clamped.
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"ZeroWidth", func(c *Config) { c.WorldWidth = 0 }},
		{"NegativeHeight", func(c *Config) { c.WorldHeight = -10 }},
		{"ZeroPopulation", func(c *Config) { c.Population = 0 }},
		{"HomeOffPlane", func(c *Config) { c.HomeX = c.WorldWidth + 1 }},
		{"ZeroSpeed", func(c *Config) { c.AntSpeed = 0 }},
		{"NegativeNoise", func(c *Config) { c.HeadingNoise = -0.1 }},
		{"NegativeSeparation", func(c *Config) { c.MinSeparation = -1 }},
		{"ZeroCellSize", func(c *Config) { c.FieldCellSize = 0 }},
		{"DecayZero", func(c *Config) { c.DecayFactor = 0 }},
		{"DecayOne", func(c *Config) { c.DecayFactor = 1 }},
		{"UseRateZero", func(c *Config) { c.DepositUseRate = 0 }},
		{"UseRateAboveOne", func(c *Config) { c.DepositUseRate = 1.1 }},
		{"ZeroMaxIntensity", func(c *Config) { c.MaxIntensity = 0 }},
		{"NegativeRadius", func(c *Config) { c.PickupRadius = -1 }},
		{"NegativeWorkers", func(c *Config) { c.NumWorkers = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Population = -5

	if _, err := New(cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("New should propagate the configuration error, got %v", err)
	}
}
