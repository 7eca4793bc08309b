// Command mdexport converts Markdown files to HTML, PDF, DOCX and text.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/alnah/go-mdexport"
	"github.com/alnah/go-mdexport/internal/config"
	"github.com/alnah/go-mdexport/internal/fileutil"
	"github.com/alnah/go-mdexport/internal/hints"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], DefaultEnv()))
}

// run executes the CLI and returns the process exit code.
func run(parent context.Context, args []string, env *Environment) int {
	ctx, stop := notifyContext(parent)
	defer stop()

	root := newRootCmd(env)
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// hintFor returns a remediation hint for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, mdexport.ErrNoPDFEngine):
		return hints.ForNoPDFEngine(failedEngines(err))
	case errors.Is(err, mdexport.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.SearchPaths(defaultConfigName))
	case errors.Is(err, mdexport.ErrStyleNotFound):
		return hints.ForStyleNotFound(mdexport.StyleNames())
	case errors.Is(err, fileutil.ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}
