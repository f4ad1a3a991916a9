package main

import (
	"fmt"
	"os"

	"github.com/BrandonKowalski/navigator/pkg/navigator"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "navigator",
	Short: "Navigator drives stacked page navigation",
	Long:  `Navigator loads page templates, pushes and pops them with animated transitions and reports what happened.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		cfg, err := navigator.LoadConfig(path)
		if err != nil {
			return err
		}
		if dir, _ := cmd.Flags().GetString("templates"); dir != "" {
			cfg.TemplateDir = dir
		}
		cfg.Apply()
		config = cfg
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		navigator.CloseLogger()
	},
}

// config is loaded before any subcommand runs.
var config navigator.Config

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to a TOML config file")
	rootCmd.PersistentFlags().StringP("templates", "t", "", "Directory containing page templates")
}
