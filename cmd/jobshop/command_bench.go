package main

import (
	"context"
	"fmt"
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"jobShop/internal/bench"
	"jobShop/internal/config"
	"jobShop/internal/instances"
	"jobShop/internal/opt"
)

var (
	benchOut   string
	benchRuns  int
	benchPairs []string
	benchAlgos []string
	benchFiles []string
)

func registerBenchCommand(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Серия запусков солверов с выгрузкой статистики в CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("out") {
				cfg.Bench.Out = benchOut
			}
			if flags.Changed("runs") {
				cfg.Bench.Runs = benchRuns
			}
			if flags.Changed("pairs") {
				cfg.Bench.Pairs = benchPairs
			}
			if flags.Changed("algos") {
				cfg.Bench.Algorithms = benchAlgos
			}
			if flags.Changed("instances") {
				cfg.Bench.Instances = benchFiles
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runBench(ctx, cfg)
		},
	}

	cmd.Flags().StringVarP(&benchOut, "out", "o", "artifacts/results.csv", "путь к выходному CSV-файлу")
	cmd.Flags().IntVar(&benchRuns, "runs", 10, "количество запусков каждого алгоритма (с разными сидами)")
	cmd.Flags().StringSliceVar(&benchPairs, "pairs", nil, "конфигурации: количество работ Х количество станков (через запятую)")
	cmd.Flags().StringSliceVar(&benchAlgos, "algos", nil, "список алгоритмов: greedy, random, descent, tabu, annealing, genetic, swarm, colony (через запятую)")
	cmd.Flags().StringSliceVar(&benchFiles, "instances", nil, "файлы экземпляров (через запятую)")

	root.AddCommand(cmd)
}

func runBench(ctx context.Context, cfg config.Config) error {
	cases, err := bench.ParsePairs(cfg.Bench.Pairs, cfg.Bench.InstanceSeed)
	if err != nil {
		return err
	}
	for _, path := range cfg.Bench.Instances {
		inst, err := instances.LoadFile(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		cases = append(cases, bench.Case{Name: path, Instance: inst})
	}
	if len(cases) == 0 {
		return fmt.Errorf("нет экземпляров для запуска")
	}

	var selected []bench.Algorithm
	for _, name := range lo.Uniq(cfg.Bench.Algorithms) {
		if !lo.Contains(solverNames, name) {
			return fmt.Errorf("алгоритм не предоставлен в программе %q; доступные: %v", name, solverNames)
		}
		selected = append(selected, bench.Algorithm{
			Name: name,
			Factory: func(seed int64) (opt.Optimizer, error) {
				return newOptimizer(cfg, name, seed)
			},
		})
	}

	runner := bench.Runner{
		Runs:          cfg.Bench.Runs,
		BaseSeed:      cfg.Seed,
		PerRunTimeout: cfg.Bench.PerRunTimeout,
	}

	var records []bench.Record
	for _, c := range cases {
		for _, a := range selected {
			fmt.Printf("Запущен алгоритм %s; %s, %d работ %d машин (общее кол-во запусков=%d)...\n",
				a.Name, c.Name, c.Instance.Jobs, c.Instance.Machines, runner.Runs)

			rec, err := runner.RunCase(ctx, c, a)
			if err != nil {
				return fmt.Errorf("%s/%s: %w", a.Name, c.Name, err)
			}
			records = append(records, rec)

			fmt.Printf("  Значение целевой функции: лучшее=%d среднее=%.2f стандартное отклонение=%.2f | Время: среднее=%.2fms среднее отклонение=%.2fms\n",
				rec.MakespanBest, rec.MakespanMean, rec.MakespanStd,
				rec.TimeMeanMs, rec.TimeStdMs,
			)
		}
	}

	if err := bench.WriteCSV(cfg.Bench.Out, records); err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка при записи в CSV:", err)
		return err
	}
	fmt.Println("Saved:", cfg.Bench.Out)
	return nil
}
