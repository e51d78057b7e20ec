package ga

import (
	"math/rand"

	"jobShop/internal/jobshop"
)

// shuffleSequence выполняет случайную перестановку элементов.
func shuffleSequence(p jobshop.JobNumbers, rng *rand.Rand) {
	for i := len(p) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		p[i], p[j] = p[j], p[i]
	}
}

// tournamentSelect реализует турнирный отбор.
// возвращается индекс особи с наилучшим значением fitness (минимальное значение целевой функции).
func tournamentSelect(scores []int, tournamentSize int, rng *rand.Rand) int {
	best := rng.Intn(len(scores))
	bestScore := scores[best]
	for i := 1; i < tournamentSize; i++ {
		cand := rng.Intn(len(scores))
		if scores[cand] < bestScore {
			best = cand
			bestScore = scores[cand]
		}
	}
	return best
}

// jobOrderCrossover реализует оператор JOX: гены случайного подмножества
// работ остаются на местах первого родителя, остальные позиции заполняются
// в порядке второго родителя. Число вхождений каждой работы сохраняется.
func jobOrderCrossover(
	p1, p2, c1, c2 jobshop.JobNumbers,
	jobs int,
	rng *rand.Rand,
	mark []int,
	stamp *int,
) {
	*stamp++
	curStamp := *stamp

	// Выбор подмножества работ, хотя бы одна работа обязательна
	mark[rng.Intn(jobs)] = curStamp
	for j := 0; j < jobs; j++ {
		if rng.Intn(2) == 0 {
			mark[j] = curStamp
		}
	}

	fill := func(child, keep, donor jobshop.JobNumbers) {
		pos := 0
		for i, gene := range keep {
			if mark[gene] == curStamp {
				child[i] = gene
			} else {
				child[i] = -1
			}
		}
		for _, gene := range donor {
			if mark[gene] == curStamp {
				continue
			}
			for child[pos] != -1 {
				pos++
			}
			child[pos] = gene
		}
	}

	fill(c1, p1, p2)
	fill(c2, p2, p1)
}

// mutateSwap реализует оператор мутации Swap.
func mutateSwap(p jobshop.JobNumbers, rng *rand.Rand) {
	if len(p) < 2 {
		return
	}
	i := rng.Intn(len(p))
	j := rng.Intn(len(p) - 1)
	if j >= i {
		j++
	}
	p[i], p[j] = p[j], p[i]
}
