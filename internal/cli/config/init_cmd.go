package config

import (
	"errors"
	"fmt"

	"github.com/ariel-frischer/claude-notify/internal/cli/shared"
	cfgpkg "github.com/ariel-frischer/claude-notify/internal/config"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Long: `Write the default configuration, including an entry for each common
notification type, to the config file so it can be edited by hand.`,
		Example: `  claude-notify config init
  claude-notify config init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := shared.ConfigPath(cmd)
			if err := cfgpkg.InitFile(path, force); err != nil {
				if errors.Is(err, cfgpkg.ErrConfigExists) {
					return fmt.Errorf("%w (use --force to overwrite)", err)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote default configuration to %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config file")
	return cmd
}
