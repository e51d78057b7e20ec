package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"jobShop/internal/aco"
	"jobShop/internal/descent"
	"jobShop/internal/ga"
	"jobShop/internal/greedy"
	"jobShop/internal/pso"
	"jobShop/internal/sa"
	"jobShop/internal/ts"
)

// Bench - параметры серии запусков.
type Bench struct {
	Runs          int           `mapstructure:"runs"`
	Pairs         []string      `mapstructure:"pairs"`
	Instances     []string      `mapstructure:"instances"`
	InstanceSeed  int64         `mapstructure:"instance_seed"`
	Algorithms    []string      `mapstructure:"algorithms"`
	PerRunTimeout time.Duration `mapstructure:"per_run_timeout"`
	Out           string        `mapstructure:"out"`
}

// Config - полная конфигурация запуска. Отсутствующие в файле поля
// сохраняют значения по умолчанию.
type Config struct {
	Solver  string        `mapstructure:"solver"`
	Base    string        `mapstructure:"base"`
	Seed    int64         `mapstructure:"seed"`
	Timeout time.Duration `mapstructure:"timeout"`

	Greedy    greedy.Config  `mapstructure:"greedy"`
	Descent   descent.Config `mapstructure:"descent"`
	Tabu      ts.Config      `mapstructure:"tabu"`
	Annealing sa.Config      `mapstructure:"annealing"`
	Genetic   ga.Config      `mapstructure:"genetic"`
	Swarm     pso.Config     `mapstructure:"swarm"`
	Colony    aco.Config     `mapstructure:"colony"`

	Bench Bench `mapstructure:"bench"`
}

func Default() Config {
	return Config{
		Solver:  "tabu",
		Base:    "greedy",
		Seed:    1000,
		Timeout: 10 * time.Second,

		Greedy:    greedy.DefaultConfig(),
		Descent:   descent.DefaultConfig(),
		Tabu:      ts.DefaultConfig(),
		Annealing: sa.DefaultConfig(),
		Genetic:   ga.DefaultConfig(),
		Swarm:     pso.DefaultConfig(),
		Colony:    aco.DefaultConfig(),

		Bench: Bench{
			Runs:         10,
			Pairs:        []string{"10x5", "15x10", "20x10"},
			InstanceSeed: 777,
			Algorithms:   []string{"greedy", "descent", "tabu"},
			Out:          "artifacts/results.csv",
		},
	}
}

func (c Config) Validate() error {
	switch c.Solver {
	case "greedy", "random", "descent", "tabu", "annealing", "genetic", "swarm", "colony":
	default:
		return fmt.Errorf("неизвестный солвер %q", c.Solver)
	}
	switch c.Base {
	case "greedy", "random":
	default:
		return fmt.Errorf("неизвестный базовый солвер %q", c.Base)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout должен быть >= 0 (получено %v)", c.Timeout)
	}
	if err := c.Greedy.Validate(); err != nil {
		return err
	}
	if err := c.Descent.Validate(); err != nil {
		return err
	}
	if err := c.Tabu.Validate(); err != nil {
		return err
	}
	if err := c.Annealing.Validate(); err != nil {
		return err
	}
	if err := c.Genetic.Validate(); err != nil {
		return err
	}
	if err := c.Swarm.Validate(); err != nil {
		return err
	}
	if err := c.Colony.Validate(); err != nil {
		return err
	}
	if c.Bench.Runs <= 0 {
		return fmt.Errorf("bench.runs должно быть > 0 (получено %d)", c.Bench.Runs)
	}
	return nil
}

// Load читает YAML, проверяет его по схеме и накладывает на значения по умолчанию.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (Config, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	if raw == nil {
		raw = map[string]any{}
	}

	if err := validateSchema(raw); err != nil {
		return Config{}, err
	}

	cfg := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ZeroFields:       true,
		ErrorUnused:      true,
		Result:           &cfg,
	})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateSchema(raw map[string]any) error {
	schema, err := jsonschema.CompileString("config.schema.json", schemaJSON)
	if err != nil {
		return fmt.Errorf("failed to compile schema: %w", err)
	}

	// Schema validation works on plain JSON values
	jsonData, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	var doc any
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("config does not match schema: %w", err)
	}
	return nil
}
