package bench

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"strconv"
	"strings"
)

// ParsePairs разбирает конфигурации вида "20x5" в случайные экземпляры.
// Сид экземпляра зависит от позиции и размеров, поэтому он фиксирован для конфигурации.
func ParsePairs(pairs []string, baseInstanceSeed int64) ([]Case, error) {
	cases := make([]Case, 0, len(pairs))
	for i, p := range pairs {
		jm := strings.Split(strings.TrimSpace(p), "x")
		if len(jm) != 2 {
			return nil, fmt.Errorf("пара %q невалидной схемы, пример: 20x5", p)
		}
		jobs, err := strconv.Atoi(strings.TrimSpace(jm[0]))
		if err != nil {
			return nil, fmt.Errorf("пара %q: ошибка парсинга количества работ: %w", p, err)
		}
		machines, err := strconv.Atoi(strings.TrimSpace(jm[1]))
		if err != nil {
			return nil, fmt.Errorf("пара %q: ошибка парсинга количества машин: %w", p, err)
		}
		if jobs <= 0 || machines <= 0 {
			return nil, fmt.Errorf("пара %q: количество работ и машин должно быть > 0", p)
		}

		seed := baseInstanceSeed + int64(i)*10_000 + int64(jobs)*100 + int64(machines)
		cases = append(cases, RandomCase(jobs, machines, seed))
	}
	return cases, nil
}

func randForSeed(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func dirOf(path string) string {
	d := filepath.Dir(path)
	if d == "." {
		return ""
	}
	return d
}

func itoa(v int) string { return strconv.Itoa(v) }

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
