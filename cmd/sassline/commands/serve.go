package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/sassline/internal/app"
)

func (c *CLI) newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Compile documents whenever they are saved",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Serve(cmd.Context(), app.ServeOptions{ConfigPath: c.configPath})
		},
	}
}
