package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/espalier/internal/cli"
)

var inspectModelDir string

var inspectCmd = &cobra.Command{
	Use:   "inspect SRC",
	Short: "List the input variables a template instance model declares",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Inspect(os.Stdout, args[0], inspectModelDir)
	},
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectModelDir, "model", "m", cli.DefaultModelDir, "Model directory inside the TIM")
	rootCmd.AddCommand(inspectCmd)
}
