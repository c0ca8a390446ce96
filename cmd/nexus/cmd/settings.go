package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"nexus/internal/settings"
)

func newSettingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect and change the stored settings",
	}
	cmd.AddCommand(
		newSettingsShowCommand(),
		newSettingsExportCommand(),
		newSettingsImportCommand(),
		newSettingsResetCommand(),
	)
	return cmd
}

func newSettingsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd.Context(), func(_ context.Context, store *settings.Store) error {
				return encodeSettings(cmd.OutOrStdout(), store, "json")
			})
		},
	}
}

func newSettingsExportCommand() *cobra.Command {
	var (
		format string
		output string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the settings document as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd.Context(), func(_ context.Context, store *settings.Store) error {
				if output == "" || output == "-" {
					return encodeSettings(cmd.OutOrStdout(), store, format)
				}
				file, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				if err := encodeSettings(file, store, format); err != nil {
					file.Close()
					return err
				}
				return file.Close()
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "output format (json, yaml)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")
	return cmd
}

func newSettingsImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the settings with a JSON or YAML document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			document, err := toJSON(data)
			if err != nil {
				return fmt.Errorf("decode %s: %w", args[0], err)
			}
			return withStore(cmd.Context(), func(ctx context.Context, store *settings.Store) error {
				if err := store.Replace(ctx, document); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported settings from %s\n", args[0])
				return nil
			})
		},
	}
}

func newSettingsResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, store *settings.Store) error {
				store.ResetSettings(ctx)
				fmt.Fprintln(cmd.OutOrStdout(), "settings reset to defaults")
				return nil
			})
		},
	}
}

func encodeSettings(w io.Writer, store *settings.Store, format string) error {
	current := store.Settings()
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(current)
	case "yaml", "yml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(current); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// toJSON returns valid JSON unchanged and converts anything else from YAML.
func toJSON(data []byte) ([]byte, error) {
	if json.Valid(data) {
		return data, nil
	}
	var document map[string]any
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, err
	}
	if document == nil {
		return nil, fmt.Errorf("empty document")
	}
	return json.Marshal(document)
}
