package config

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ariel-frischer/claude-notify/internal/cli/shared"
	cfgpkg "github.com/ariel-frischer/claude-notify/internal/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show and edit the claude-notify configuration",
		Long: `Show and edit the claude-notify configuration.

Without a subcommand, prints the effective configuration (defaults, config
file, ~/.config/claude-notify/.env and environment merged) as YAML. The ntfy
token is masked.`,
		Example: `  # Effective configuration
  claude-notify config

  # As JSON
  claude-notify config show --json

  # Change a value
  claude-notify config set ntfy.topic my-secret-topic`,
		Args: cobra.NoArgs,
		RunE: runConfigShow,
	}
	cmd.GroupID = shared.GroupConfiguration
	cmd.Flags().Bool("json", false, "Output in JSON format")

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	}
	show.Flags().Bool("json", false, "Output in JSON format")

	path := &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), shared.ConfigPath(cmd))
		},
	}

	keys := &cobra.Command{
		Use:   "keys",
		Short: "List all settable configuration keys",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printKeys(cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(show, path, keys, newConfigSetCmd(), newInitCmd())
	return cmd
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, path, err := shared.LoadConfig(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	redacted := cfg.Redacted()

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(redacted)
	}

	data, err := yaml.Marshal(redacted)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	fmt.Fprintf(out, "# %s\n", path)
	_, err = out.Write(data)
	return err
}

func printKeys(out io.Writer) {
	cyan := color.New(color.FgCyan).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	for _, key := range cfgpkg.SortedKeys() {
		schema := cfgpkg.KnownKeys[key]
		typ := schema.Type.String()
		if len(schema.AllowedValues) > 0 {
			typ = fmt.Sprintf("%s %v", typ, schema.AllowedValues)
		}
		fmt.Fprintf(out, "%s %s\n", cyan(fmt.Sprintf("%-26s", key)), dim(typ))
		fmt.Fprintf(out, "  %s\n", schema.Description)
	}
}
