package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"jobShop/internal/bench"
	"jobShop/internal/config"
	"jobShop/internal/greedy"
	"jobShop/internal/instances"
	"jobShop/internal/jobshop"
	"jobShop/internal/opt"
)

var (
	instanceFile  string
	randomPair    string
	solverName    string
	baseName      string
	priority      string
	timeout       time.Duration
	seed          int64
	maxIterations int
	tabuTenure    int
	traceFile     string
	printSchedule bool
)

func registerSolveCommand(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Решить один экземпляр",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := applySolveFlags(cmd, &cfg); err != nil {
				return err
			}
			return runSolve(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&instanceFile, "instance", "i", "", "файл экземпляра (текст JSPLIB или .yaml)")
	cmd.Flags().StringVar(&randomPair, "random", "", "случайный экземпляр: количество работ Х количество станков, например 10x5")
	cmd.Flags().StringVarP(&solverName, "solver", "s", "", "солвер: greedy | random | descent | tabu | annealing | genetic | swarm | colony")
	cmd.Flags().StringVar(&baseName, "base", "", "начальное решение для локального поиска: greedy | random")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "правило жадного алгоритма: SPT, LPT, SRPT, LRPT, EST_SPT, EST_LPT, EST_SRPT, EST_LRPT")
	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 0, "дедлайн решения; 0 - без ограничения")
	cmd.Flags().Int64Var(&seed, "seed", 0, "сид генератора случайных чисел")
	cmd.Flags().IntVar(&maxIterations, "max-iter", 0, "максимальное число итераций табу-поиска")
	cmd.Flags().IntVar(&tabuTenure, "tenure", 0, "длина табу (в итерациях)")
	cmd.Flags().StringVar(&traceFile, "trace", "", "файл для значений целевой функции по итерациям (по одному в строке)")
	cmd.Flags().BoolVar(&printSchedule, "print", false, "вывести времена начала операций")

	root.AddCommand(cmd)
}

// applySolveFlags накладывает явно заданные флаги поверх конфигурации.
func applySolveFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("solver") {
		cfg.Solver = solverName
	}
	if flags.Changed("base") {
		cfg.Base = baseName
	}
	if flags.Changed("priority") {
		cfg.Greedy.Priority = greedy.Priority(strings.ToUpper(priority))
	}
	if flags.Changed("timeout") {
		cfg.Timeout = timeout
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("max-iter") {
		cfg.Tabu.MaxIterations = maxIterations
	}
	if flags.Changed("tenure") {
		cfg.Tabu.TabuTenure = tabuTenure
	}
	return cfg.Validate()
}

func loadInstance(cfg config.Config) (*jobshop.Instance, string, error) {
	switch {
	case instanceFile != "" && randomPair != "":
		return nil, "", fmt.Errorf("нужно задать только один из флагов --instance и --random")
	case instanceFile != "":
		inst, err := instances.LoadFile(instanceFile)
		return inst, instanceFile, err
	case randomPair != "":
		cases, err := bench.ParsePairs([]string{randomPair}, cfg.Bench.InstanceSeed)
		if err != nil {
			return nil, "", err
		}
		return cases[0].Instance, cases[0].Name, nil
	}
	return nil, "", fmt.Errorf("экземпляр не задан: используйте --instance или --random")
}

func runSolve(ctx context.Context, cfg config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	inst, name, err := loadInstance(cfg)
	if err != nil {
		return err
	}

	solver, err := newOptimizer(cfg, cfg.Solver, cfg.Seed)
	if err != nil {
		return err
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithDeadline(ctx, time.Now().Add(cfg.Timeout))
		defer cancel()
	}

	res, err := solver.Solve(ctx, inst)
	if err != nil {
		return err
	}
	if res.Schedule == nil {
		return jobshop.ErrInfeasible
	}

	fmt.Printf("Экземпляр: %s (%d работ, %d машин)\n", name, inst.Jobs, inst.Machines)
	fmt.Printf("Солвер: %s | makespan=%d | причина=%s | итераций=%d | оценок=%d | время=%v\n",
		cfg.Solver, res.Makespan(), res.Cause, res.Iterations, res.Evaluations, res.Duration)
	if !res.Schedule.IsValid() {
		return fmt.Errorf("построено некорректное расписание")
	}
	if printSchedule {
		fmt.Print(res.Schedule)
	}

	if traceFile != "" {
		if err := writeTrace(traceFile, res); err != nil {
			return fmt.Errorf("ошибка при записи трассы: %w", err)
		}
	}
	return nil
}

// writeTrace пишет makespan после каждого принятого хода, по одному в строке.
func writeTrace(path string, res opt.Result) error {
	var b strings.Builder
	for _, ms := range res.Makespans {
		b.WriteString(strconv.Itoa(ms))
		b.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}
