package greedy

import "fmt"

// Priority - правило диспетчеризации.
type Priority string

const (
	// SPT - кратчайшая длительность операции
	SPT Priority = "SPT"
	// LPT - наибольшая длительность операции
	LPT Priority = "LPT"
	// SRPT - наименьшая оставшаяся длительность работы
	SRPT Priority = "SRPT"
	// LRPT - наибольшая оставшаяся длительность работы
	LRPT Priority = "LRPT"

	EST_SPT  Priority = "EST_SPT"
	EST_LPT  Priority = "EST_LPT"
	EST_SRPT Priority = "EST_SRPT"
	EST_LRPT Priority = "EST_LRPT"
)

var Priorities = []Priority{SPT, LPT, SRPT, LRPT, EST_SPT, EST_LPT, EST_SRPT, EST_LRPT}

type Config struct {
	Priority Priority `mapstructure:"priority"`
}

func DefaultConfig() Config {
	return Config{Priority: EST_LRPT}
}

func (c Config) Validate() error {
	switch c.Priority {
	case SPT, LPT, SRPT, LRPT, EST_SPT, EST_LPT, EST_SRPT, EST_LRPT:
		// ok
	default:
		return fmt.Errorf(
			"неизвестное правило приоритета %q",
			c.Priority,
		)
	}
	return nil
}

// restricted сообщает, что правило сначала оставляет операции
// с минимальным ранним временем начала.
func (p Priority) restricted() bool {
	switch p {
	case EST_SPT, EST_LPT, EST_SRPT, EST_LRPT:
		return true
	}
	return false
}

// base возвращает правило без EST-фильтра.
func (p Priority) base() Priority {
	switch p {
	case EST_SPT:
		return SPT
	case EST_LPT:
		return LPT
	case EST_SRPT:
		return SRPT
	case EST_LRPT:
		return LRPT
	}
	return p
}
