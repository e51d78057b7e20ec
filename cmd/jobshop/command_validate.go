package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jobShop/internal/instances"
)

func registerValidateCommand(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "validate [instance files...]",
		Short: "Проверить конфигурацию и файлы экземпляров",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig(); err != nil {
				return err
			}
			if configFile != "" {
				fmt.Printf("✓ %s\n", configFile)
			}
			for _, path := range args {
				inst, err := instances.LoadFile(path)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				fmt.Printf("✓ %s: %d работ, %d машин, %d операций в работе\n", path, inst.Jobs, inst.Machines, inst.Tasks)
			}
			return nil
		},
	}
	root.AddCommand(cmd)
}
