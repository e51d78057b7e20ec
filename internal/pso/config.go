package pso

import "fmt"

type Config struct {
	Iterations int `mapstructure:"iterations"`
	// IterationsPerOperation используется, если Iterations <= 0
	IterationsPerOperation int `mapstructure:"iterations_per_operation"`

	Particles int `mapstructure:"particles"`

	W  float64 `mapstructure:"w"`
	C1 float64 `mapstructure:"c1"`
	C2 float64 `mapstructure:"c2"`

	VMax float64 `mapstructure:"vmax"`

	PosMin float64 `mapstructure:"pos_min"`
	PosMax float64 `mapstructure:"pos_max"`
}

func DefaultConfig() Config {
	return Config{
		Iterations:             0,
		IterationsPerOperation: 4,

		Particles: 30,

		W:  0.729,
		C1: 1.49445,
		C2: 1.49445,

		VMax:   0.25,
		PosMin: 0.0,
		PosMax: 1.0,
	}
}

func (c Config) Validate() error {
	if c.Iterations <= 0 && c.IterationsPerOperation <= 0 {
		return fmt.Errorf(
			"должно быть задано Iterations > 0 или IterationsPerOperation > 0",
		)
	}
	if c.Particles <= 0 {
		return fmt.Errorf(
			"Particles должно быть > 0 (получено %d)",
			c.Particles,
		)
	}
	if c.W < 0 {
		return fmt.Errorf(
			"W должно быть >= 0 (получено %f)",
			c.W,
		)
	}
	if c.C1 < 0 || c.C2 < 0 {
		return fmt.Errorf(
			"C1 и C2 должны быть >= 0 (получено %f, %f)",
			c.C1,
			c.C2,
		)
	}
	if c.PosMin >= c.PosMax {
		if !(c.PosMin == 0 && c.PosMax == 0) {
			return fmt.Errorf(
				"для ограничения PosMin должно быть < PosMax (получено %f >= %f)",
				c.PosMin,
				c.PosMax,
			)
		}
	}
	return nil
}
