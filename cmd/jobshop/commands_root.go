package main

import (
	"io"
	"log"

	"github.com/spf13/cobra"

	"jobShop/internal/config"
)

var (
	configFile string
	quiet      bool
)

var rootCmd = &cobra.Command{
	Use:           "jobshop",
	Short:         "Job-shop: жадные правила, спуск и табу-поиск",
	Long:          "jobshop строит расписания для задачи job-shop и улучшает их локальным поиском по окрестности Новицкого-Смутницкого",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if quiet {
			log.SetOutput(io.Discard)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "YAML-файл конфигурации запуска")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "не выводить сообщения об отброшенных ходах")

	registerSolveCommand(rootCmd)
	registerBenchCommand(rootCmd)
	registerValidateCommand(rootCmd)
}

// loadConfig возвращает конфигурацию по умолчанию или из файла --config.
func loadConfig() (config.Config, error) {
	if configFile == "" {
		return config.Default(), nil
	}
	return config.Load(configFile)
}
