package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/sassline/internal/app"
	"go.trai.ch/sassline/internal/core/domain"
	"go.trai.ch/sassline/internal/ui/output"
	"go.trai.ch/sassline/internal/ui/style"
	"go.trai.ch/zerr"
)

// ErrCompileReported is returned when a compile failed and its diagnostic
// has already been shown to the user.
var ErrCompileReported = zerr.New("compile failed")

func (c *CLI) newCompileCmd() *cobra.Command {
	var workspace string

	cmd := &cobra.Command{
		Use:   "compile <path>",
		Short: "Run the compile chain starting at a workspace document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outcome, err := c.app.Compile(cmd.Context(), app.CompileOptions{
				ConfigPath: c.configPath,
				Workspace:  workspace,
				Path:       args[0],
			})

			out := output.New(cmd.OutOrStdout())
			chain := strings.Join(outcome.Chain, " "+style.Arrow+" ")

			switch {
			case err != nil && outcome.Kind == domain.OutcomeFailed && outcome.JobID != "":
				_, _ = fmt.Fprintln(out, output.Color(out, style.Red, style.Cross+" "+chain))
				return zerr.Wrap(ErrCompileReported, err.Error())
			case err != nil:
				return err
			case outcome.Kind == domain.OutcomeRendered:
				_, _ = fmt.Fprintln(out, output.Color(out, style.Green, style.Check+" "+chain))
			default:
				_, _ = fmt.Fprintln(out, output.Color(out, style.Slate, style.Dot+" "+args[0]+": "+describe(outcome.Kind)))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace identifier (default: workspace.id from the config)")
	return cmd
}

func describe(kind domain.OutcomeKind) string {
	switch kind {
	case domain.OutcomeNoDirective:
		return "no out directive, nothing to compile"
	case domain.OutcomeSamePath:
		return "out directive resolves to the document itself, skipped"
	case domain.OutcomeIgnored:
		return "not a Sass document"
	default:
		return string(kind)
	}
}
