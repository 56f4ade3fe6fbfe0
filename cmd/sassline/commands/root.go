// Package commands implements the sassline command line.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/sassline/internal/app"
	"go.trai.ch/sassline/internal/build"
	"go.trai.ch/sassline/internal/core/domain"
)

// CLI represents the command line interface for sassline.
type CLI struct {
	app     Application
	rootCmd *cobra.Command

	configPath string
	json       bool
	verbose    bool
}

// Application represents the application logic interface.
type Application interface {
	Compile(ctx context.Context, opts app.CompileOptions) (domain.Outcome, error)
	Serve(ctx context.Context, opts app.ServeOptions) error
	ConfigureLogging(json, verbose bool)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	c := &CLI{app: a}

	rootCmd := &cobra.Command{
		Use:           "sassline",
		Short:         "Compile Sass documents of a workspace on save",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		PersistentPreRun: func(*cobra.Command, []string) {
			c.app.ConfigureLogging(c.json, c.verbose)
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", "", "Path to "+domain.ConfigFileName+" (default: discovered from the working directory)")
	flags.BoolVar(&c.json, "json", false, "Write logs as JSON")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "Show debug output")

	c.rootCmd = rootCmd
	rootCmd.AddCommand(c.newCompileCmd())
	rootCmd.AddCommand(c.newServeCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
