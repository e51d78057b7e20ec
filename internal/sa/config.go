package sa

import "fmt"

type Config struct {
	Iterations int `mapstructure:"iterations"`

	InitialTemp float64 `mapstructure:"initial_temp"`
	FinalTemp   float64 `mapstructure:"final_temp"`
	Alpha       float64 `mapstructure:"alpha"`
}

func DefaultConfig() Config {
	return Config{
		Iterations: 5000,

		InitialTemp: 50.0,
		FinalTemp:   0.5,
		Alpha:       0.999,
	}
}

func (c Config) Validate() error {
	if c.Iterations <= 0 {
		return fmt.Errorf(
			"Iterations должно быть > 0 (получено %d)",
			c.Iterations,
		)
	}
	if c.InitialTemp <= 0 {
		return fmt.Errorf(
			"InitialTemp должно быть > 0 (получено %f)",
			c.InitialTemp,
		)
	}
	if c.FinalTemp <= 0 {
		return fmt.Errorf(
			"FinalTemp должно быть > 0 (получено %f)",
			c.FinalTemp,
		)
	}
	if c.FinalTemp >= c.InitialTemp {
		return fmt.Errorf(
			"FinalTemp должно быть < InitialTemp (получено %f >= %f)",
			c.FinalTemp,
			c.InitialTemp,
		)
	}
	if c.Alpha <= 0 || c.Alpha >= 1 {
		return fmt.Errorf(
			"alpha должно лежать в интервале (0,1) (получено %f)",
			c.Alpha,
		)
	}
	return nil
}
