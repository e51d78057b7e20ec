package descent

import "fmt"

type Config struct {
	// MaxSteps ограничивает число принятых ходов; 0 - без ограничения.
	MaxSteps int `mapstructure:"max_steps"`
}

func DefaultConfig() Config {
	return Config{MaxSteps: 0}
}

func (c Config) Validate() error {
	if c.MaxSteps < 0 {
		return fmt.Errorf(
			"MaxSteps должно быть >= 0 (получено %d)",
			c.MaxSteps,
		)
	}
	return nil
}
