package main

import (
	"fmt"
	"math/rand"

	"jobShop/internal/aco"
	"jobShop/internal/config"
	"jobShop/internal/descent"
	"jobShop/internal/ga"
	"jobShop/internal/greedy"
	"jobShop/internal/opt"
	"jobShop/internal/pso"
	"jobShop/internal/random"
	"jobShop/internal/sa"
	"jobShop/internal/ts"
)

var solverNames = []string{"greedy", "random", "descent", "tabu", "annealing", "genetic", "swarm", "colony"}

// newOptimizer собирает солвер name; локальный поиск стартует с cfg.Base.
func newOptimizer(cfg config.Config, name string, seed int64) (opt.Optimizer, error) {
	rng := rand.New(rand.NewSource(seed))

	var base opt.Optimizer
	switch cfg.Base {
	case "random":
		r, err := random.New(rng)
		if err != nil {
			return nil, err
		}
		base = r
	default:
		g, err := greedy.New(cfg.Greedy)
		if err != nil {
			return nil, err
		}
		base = g
	}

	switch name {
	case "greedy":
		return greedy.New(cfg.Greedy)
	case "random":
		return random.New(rng)
	case "descent":
		return descent.New(cfg.Descent, base)
	case "tabu":
		return ts.New(cfg.Tabu, rng, base)
	case "annealing":
		return sa.New(cfg.Annealing, rng, base)
	case "genetic":
		return ga.New(cfg.Genetic, rng)
	case "swarm":
		return pso.New(cfg.Swarm, rng)
	case "colony":
		return aco.New(cfg.Colony, rng)
	}
	return nil, fmt.Errorf("солвер %q не предоставлен в программе; доступные: %v", name, solverNames)
}
