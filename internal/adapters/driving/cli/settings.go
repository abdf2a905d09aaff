package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var settingsOutput string

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change the backend location, request limits, search-bar tuning
and account details. Settings are stored in ~/.closet/config.toml.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long: `Parses and stores a single setting. Run 'closet settings show' for the
list of keys.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print where settings are stored",
	Args:  cobra.NoArgs,
	RunE:  runSettingsPath,
}

func init() {
	settingsCmd.PersistentFlags().StringVarP(&settingsOutput, "output", "o", outputTable, "output format: table, json or yaml")
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsPathCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if err := validateOutput(settingsOutput); err != nil {
		return err
	}
	if err := requireSettings(); err != nil {
		return err
	}

	values, err := settingsService.Values()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	if done, err := writeStructured(cmd.OutOrStdout(), settingsOutput, values); done {
		return err
	}

	width := 0
	for _, v := range values {
		width = max(width, len(v.Key))
	}
	for _, v := range values {
		value := v.Value
		if value == "" {
			value = "-"
		}
		cmd.Printf("%-*s  %s\n", width, v.Key, value)
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if err := requireSettings(); err != nil {
		return err
	}
	if err := settingsService.SetValue(args[0], args[1]); err != nil {
		return err
	}
	cmd.Printf("Set %s\n", args[0])
	return nil
}

func runSettingsPath(cmd *cobra.Command, _ []string) error {
	if err := requireSettings(); err != nil {
		return err
	}
	cmd.Println(settingsService.Path())
	return nil
}
