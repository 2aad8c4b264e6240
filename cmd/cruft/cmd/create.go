package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/christokur/cruft/internal/cookiecutter"
	"github.com/christokur/cruft/internal/engine"
	"github.com/christokur/cruft/internal/render"
	"github.com/christokur/cruft/internal/source"
)

var (
	createOutputDir        string
	createConfigFile       string
	createDefaultConfig    bool
	createReplayFile       string
	createExtraContext     string
	createExtraContextFile string
	createNoInput          bool
	createDirectory        string
	createCheckout         string
	createOverwrite        bool
	createSkip             []string
)

var createCmd = &cobra.Command{
	Use:   "create TEMPLATE",
	Short: "Create a new project from a cookiecutter template",
	Long: `Clone TEMPLATE (a git URL, a local repository or an abbreviation such as
gh:org/repo), render it into a new project directory and record how the
project was generated in .cruft.json.`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

func init() {
	f := createCmd.Flags()
	f.StringVarP(&createOutputDir, "output-dir", "o", ".", "directory to create the project in")
	f.StringVar(&createConfigFile, "config-file", "", "user config file")
	f.BoolVar(&createDefaultConfig, "default-config", false, "ignore user config files")
	f.StringVar(&createReplayFile, "replay-file", "", "replay file to pre-fill and record answers")
	f.StringVar(&createExtraContext, "extra-context", "", "JSON object overriding template variables")
	f.StringVar(&createExtraContextFile, "extra-context-file", "", "JSON or .env file overriding template variables")
	f.BoolVar(&createNoInput, "no-input", false, "do not prompt; use defaults and overrides")
	f.StringVar(&createDirectory, "directory", "", "template subdirectory inside the repository")
	f.StringVar(&createCheckout, "checkout", "", `ref to use: a branch, tag or commit, "branch:<name>" or ":latest:"`)
	f.BoolVarP(&createOverwrite, "overwrite-if-exists", "f", false, "write into an existing project directory")
	f.StringArrayVar(&createSkip, "skip", nil, "path pattern for later updates to skip (repeatable)")

	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	logger := LoggerFromContext(cmd.Context())

	extra, err := parseExtraContext(createExtraContext)
	if err != nil {
		return err
	}

	noInput := createNoInput || env.NoInput
	if !noInput && !stdinIsTerminal(cmd) {
		logger.Warn("standard input is not a terminal; answers are read from piped input")
	}

	e := &engine.CreateEngine{
		VCS:      &source.Git{},
		Renderer: &render.Renderer{Logger: logger},
		Prompter: &cookiecutter.LinePrompter{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()},
		Env:      env,
		Logger:   logger,
	}
	projectDir, err := e.Create(cmd.Context(), engine.CreateOptions{
		Template:         args[0],
		OutputDir:        createOutputDir,
		ConfigFile:       createConfigFile,
		DefaultConfig:    createDefaultConfig,
		ReplayFile:       createReplayFile,
		ExtraContext:     extra,
		ExtraContextFile: createExtraContextFile,
		NoInput:          noInput,
		Directory:        createDirectory,
		Checkout:         createCheckout,
		Overwrite:        createOverwrite,
		Skip:             createSkip,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created project in %s\n", projectDir)
	return nil
}

// stdinIsTerminal reports whether the command reads from an interactive
// terminal.
func stdinIsTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.InOrStdin().(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
