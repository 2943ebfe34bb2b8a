package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/espalier/internal/cli"
	"github.com/aretw0/espalier/internal/logging"
)

var applyOpts struct {
	modelDir string
	seed     int64
	vars     []string
	varFiles []string
}

var applyCmd = &cobra.Command{
	Use:   "apply SRC DEST",
	Short: "Convert a template instance model into a scenario",
	Long: `Apply renders the TIM at SRC (a local path or a git URL) into a
scenario at DEST. Required inputs are passed with --var or --var-file;
use 'espalier inspect' to list what a model declares.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cli.ApplyOptions{
			Source:   args[0],
			Dest:     args[1],
			ModelDir: applyOpts.modelDir,
			Vars:     applyOpts.vars,
			VarFiles: applyOpts.varFiles,
			Logger:   logging.New(logging.Level(verbose)),
		}
		if cmd.Flags().Changed("seed") {
			opts.Seed = &applyOpts.seed
		}

		result, err := cli.Apply(opts)
		if errors.Is(err, cli.ErrMissingInputs) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		if err != nil {
			return err
		}
		fmt.Printf("Generated scenario at %s (seed %d)\n", args[1], result.Seed)
		return nil
	},
}

func init() {
	applyCmd.Flags().StringVarP(&applyOpts.modelDir, "model", "m", cli.DefaultModelDir, "Model directory inside the TIM")
	applyCmd.Flags().Int64VarP(&applyOpts.seed, "seed", "s", 0, "Root seed (overrides the configured seed)")
	applyCmd.Flags().StringArrayVar(&applyOpts.vars, "var", nil, "Input variable as <name>=<value> (repeatable)")
	applyCmd.Flags().StringArrayVar(&applyOpts.varFiles, "var-file", nil, "YAML/JSON file with input variables (repeatable)")
	rootCmd.AddCommand(applyCmd)
}
