package simulation

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

type Config struct {
	// World dimensions
	WorldWidth  float64 `json:"worldWidth"`
	WorldHeight float64 `json:"worldHeight"`

	// Population (fixed for the lifetime of the simulation)
	Population int    `json:"population"`
	Seed       uint64 `json:"seed"`

	// Colony home (drop-off point, also where ants spawn)
	HomeX float64 `json:"homeX"`
	HomeY float64 `json:"homeY"`

	// Kinematics / steering weights
	AntSpeed       float64 `json:"antSpeed"`       // distance per unit of dt
	HeadingNoise   float64 `json:"headingNoise"`   // std-dev (radians) of Gaussian heading jitter
	GradientWeight float64 `json:"gradientWeight"` // pull of the pheromone gradient
	TargetWeight   float64 `json:"targetWeight"`   // pull toward target food / home
	AvoidWeight    float64 `json:"avoidWeight"`    // separation steering strength
	MinSeparation  float64 `json:"minSeparation"`  // collision distance between two ants

	// Interaction radii
	PickupRadius  float64 `json:"pickupRadius"`  // how close to food before grabbing a unit
	DropoffRadius float64 `json:"dropoffRadius"` // how close to home before delivering
	SenseRadius   float64 `json:"senseRadius"`   // how far a searching ant can spot food
	SampleRadius  float64 `json:"sampleRadius"`  // gradient sampling ring radius

	// Pheromone field
	FieldCellSize  float64 `json:"fieldCellSize"`
	DecayFactor    float64 `json:"decayFactor"`    // per unit of dt, must be in (0,1)
	DepositAmount  float64 `json:"depositAmount"`  // reserve an ant starts a trail with
	DepositUseRate float64 `json:"depositUseRate"` // reserve shrink per deposit, in (0,1]
	MaxIntensity   float64 `json:"maxIntensity"`   // cap for a single cell

	// Step execution
	NumWorkers int `json:"numWorkers"` // proposal-phase workers, 0 means GOMAXPROCS
}

// DefaultConfig mirrors the parameters of the classic 600x400 colony run.
func DefaultConfig() *Config {
	return &Config{
		WorldWidth:     600,
		WorldHeight:    400,
		Population:     100,
		Seed:           1,
		HomeX:          300,
		HomeY:          200,
		AntSpeed:       2.0,
		HeadingNoise:   0.35,
		GradientWeight: 1.0,
		TargetWeight:   0.8,
		AvoidWeight:    0.6,
		MinSeparation:  8,
		PickupRadius:   4,
		DropoffRadius:  20,
		SenseRadius:    40,
		SampleRadius:   8,
		FieldCellSize:  4,
		DecayFactor:    0.999,
		DepositAmount:  100,
		DepositUseRate: 0.995,
		MaxIntensity:   100,
		NumWorkers:     0,
	}
}

// Validate checks the semantic invariants the JSON schema cannot express.
// The first violation is returned wrapped in ErrInvalidConfig; nothing is
// ever silently clamped.
func (c *Config) Validate() error {
	fail := func(format string, args ...interface{}) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}

	if c.WorldWidth <= 0 || c.WorldHeight <= 0 {
		return fail("world dimensions must be positive, got %gx%g", c.WorldWidth, c.WorldHeight)
	}
	if c.Population <= 0 {
		return fail("population must be > 0, got %d", c.Population)
	}
	if c.HomeX < 0 || c.HomeX > c.WorldWidth || c.HomeY < 0 || c.HomeY > c.WorldHeight {
		return fail("home (%g, %g) outside plane bounds", c.HomeX, c.HomeY)
	}
	if c.AntSpeed <= 0 {
		return fail("antSpeed must be > 0, got %g", c.AntSpeed)
	}
	if c.HeadingNoise < 0 {
		return fail("headingNoise must be >= 0, got %g", c.HeadingNoise)
	}
	if c.MinSeparation < 0 {
		return fail("minSeparation must be >= 0, got %g", c.MinSeparation)
	}
	if c.FieldCellSize <= 0 {
		return fail("fieldCellSize must be > 0, got %g", c.FieldCellSize)
	}
	if c.DecayFactor <= 0 || c.DecayFactor >= 1 {
		return fail("decayFactor must be in (0,1), got %g", c.DecayFactor)
	}
	if c.DepositAmount < 0 {
		return fail("depositAmount must be >= 0, got %g", c.DepositAmount)
	}
	if c.DepositUseRate <= 0 || c.DepositUseRate > 1 {
		return fail("depositUseRate must be in (0,1], got %g", c.DepositUseRate)
	}
	if c.MaxIntensity <= 0 {
		return fail("maxIntensity must be > 0, got %g", c.MaxIntensity)
	}
	if c.PickupRadius < 0 || c.DropoffRadius < 0 || c.SenseRadius < 0 || c.SampleRadius < 0 {
		return fail("interaction radii must be >= 0")
	}
	if c.NumWorkers < 0 {
		return fail("numWorkers must be >= 0, got %d", c.NumWorkers)
	}
	return nil
}

// LoadConfig loads configuration from a JSON file and validates it against the schema.
func LoadConfig(configFile string, schemaFile string) (*Config, error) {
	// 1. Compile Schema
	sch, err := jsonschema.Compile(schemaFile)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	// 2. Read Config File
	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// 3. Validate against the schema first, for readable range errors
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// 4. Unmarshal into the struct and re-check the semantic invariants
	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
