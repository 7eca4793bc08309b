package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"
)

func newRootCmd(env *Environment) *cobra.Command {
	root := &cobra.Command{
		Use:   "mdexport",
		Short: "Export Markdown documents to HTML, PDF, DOCX and plain text",
		Long: `mdexport converts Markdown guides into shareable documents: a styled HTML
page, a PDF printed by the first working engine, a Word document and a
framed plain-text copy. Run 'mdexport doctor' to see which PDF engines are
usable on this machine.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			setMaxProcs(env, verbose)
			warnUnknownEnvVars(env.Stderr, os.Environ())
		},
	}
	root.SetOut(env.Stdout)
	root.SetErr(env.Stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	})

	pf := root.PersistentFlags()
	pf.StringP("config", "c", "", "config file path or name (searched in . and the user config dir)")
	pf.BoolP("quiet", "q", false, "only print errors")
	pf.BoolP("verbose", "v", false, "print timings and pool details")
	root.MarkFlagsMutuallyExclusive("quiet", "verbose")

	root.AddCommand(newConvertCmd(env), newDoctorCmd(env), newVersionCmd(env))
	return root
}

// setMaxProcs aligns GOMAXPROCS with the container CPU quota. Its error
// only means GOMAXPROCS was invalid, and the runtime default then applies.
func setMaxProcs(env *Environment, verbose bool) {
	logger := func(string, ...any) {}
	if verbose {
		logger = func(format string, args ...any) {
			fmt.Fprintf(env.Stderr, format+"\n", args...)
		}
	}
	_, _ = maxprocs.Set(maxprocs.Logger(logger))
}
