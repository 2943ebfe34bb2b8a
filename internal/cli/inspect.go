package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"github.com/muesli/termenv"

	"github.com/aretw0/espalier/internal/config"
)

// Inspect loads the TIM config at src and writes its declared inputs to w,
// one per line, so a user can see what --var definitions an apply run needs.
func Inspect(w io.Writer, src, modelDir string) error {
	if modelDir == "" {
		modelDir = DefaultModelDir
	}
	cfg, err := config.Load(filepath.Join(src, modelDir, ConfigFile))
	if err != nil {
		return err
	}
	PrintInputs(w, cfg.Inputs)
	return nil
}

// PrintInputs renders the input declarations sorted by name. Required inputs
// are highlighted so they stand out from optional ones.
func PrintInputs(w io.Writer, inputs map[string]config.Input) {
	out := termenv.NewOutput(w)

	if len(inputs) == 0 {
		fmt.Fprintln(w, out.String("This model declares no inputs.").Faint())
		return
	}

	names := make([]string, 0, len(inputs))
	for name := range inputs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		input := inputs[name]

		label := out.String(name)
		kind := "optional"
		if input.Required {
			label = label.Foreground(termenv.ANSIBrightMagenta)
			kind = "required"
		} else {
			label = label.Foreground(termenv.ANSIBrightGreen)
		}

		fmt.Fprintf(w, "%s (%s, %s)", label, kind,
			out.String(input.Model).Foreground(termenv.ANSICyan))
		if input.Default != nil {
			fmt.Fprintf(w, " [default: %s]", *input.Default)
		}
		if input.Description != "" {
			fmt.Fprintf(w, "\n    %s", out.String(input.Description).Faint())
		}
		fmt.Fprintln(w)
	}
}
