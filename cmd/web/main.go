package main

import (
	"fmt"
	"os"

	"github.com/clocksynk/dashboard/pkg/runtime/terminal/commands"
)

func main() {
	env := &commands.Env{Output: os.Stdout}
	rootCmd := commands.NewWebCmd(env)
	rootCmd.Flags().StringVarP(&env.ConfigPath, "config", "c", "",
		"Path to a YAML config file (CLOCKSYNK_* environment variables override it)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
