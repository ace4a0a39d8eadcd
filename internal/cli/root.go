package cli

import (
	"github.com/spf13/cobra"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	ServerURL string
	Env       string
}

// NewRootCommand creates the root command for the blogboard CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "blogcli",
		Short: "Blogboard terminal client",
		Long:  "Browse, search and manage blogboard posts from the terminal.",
	}

	cmd.PersistentFlags().StringVar(&opts.ServerURL, "server-url", "http://localhost:8081", "base URL of the blogboard server")
	cmd.PersistentFlags().StringVar(&opts.Env, "env", "prod", "logging environment (dev|prod|test)")

	cmd.AddCommand(NewBrowseCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))

	return cmd
}
