package ts

import "fmt"

type Config struct {
	MaxIterations int `mapstructure:"max_iterations"`

	// TabuTenure - на сколько итераций запрещается повторный обмен пары операций
	TabuTenure int `mapstructure:"tabu_tenure"`

	// TabuTenureRand - случайная добавка к сроку табу [0..rand]
	TabuTenureRand int `mapstructure:"tabu_tenure_rand"`
}

func DefaultConfig() Config {
	return Config{
		MaxIterations: 1000,

		TabuTenure:     7,
		TabuTenureRand: 0,
	}
}

func (c Config) Validate() error {
	if c.MaxIterations <= 0 {
		return fmt.Errorf(
			"MaxIterations должно быть > 0 (получено %d)",
			c.MaxIterations,
		)
	}
	if c.TabuTenure <= 0 {
		return fmt.Errorf(
			"TabuTenure должно быть > 0 (получено %d)",
			c.TabuTenure,
		)
	}
	if c.TabuTenureRand < 0 {
		return fmt.Errorf(
			"TabuTenureRand должно быть >= 0 (получено %d)",
			c.TabuTenureRand,
		)
	}
	return nil
}
