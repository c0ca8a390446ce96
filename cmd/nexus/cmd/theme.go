package cmd

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"nexus/internal/settings"
	"nexus/internal/views/theme"
	"nexus/models"
)

var (
	nameStyle  = lipgloss.NewStyle().Width(18).Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func newThemeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "List, show and select themes",
	}
	cmd.AddCommand(newThemeListCommand(), newThemeShowCommand(), newThemeSetCommand())
	return cmd
}

func newThemeListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the catalog themes with colour swatches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd.Context(), func(_ context.Context, store *settings.Store) error {
				themes := store.Themes()
				if len(themes) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("no themes available"))
					return nil
				}
				names := make([]string, 0, len(themes))
				for name := range themes {
					names = append(names, name)
				}
				sort.Strings(names)
				for _, name := range names {
					fmt.Fprintln(cmd.OutOrStdout(), nameStyle.Render(name)+swatches(themes[name]))
				}
				return nil
			})
		},
	}
}

func newThemeShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current theme mode and its colours",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, store *settings.Store) error {
				current := store.Settings().Theme
				mode := string(current.Theme)
				if current.Theme == models.ThemeModePreset && current.PresetTheme != "" {
					mode += " (" + current.PresetTheme + ")"
				}
				fmt.Fprintln(cmd.OutOrStdout(), nameStyle.Render("mode")+mode)

				resolved := store.CurrentTheme(ctx)
				if resolved == nil {
					fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("theme could not be resolved"))
					return nil
				}
				writeVariables(cmd.OutOrStdout(), *resolved)
				return nil
			})
		},
	}
}

func newThemeSetCommand() *cobra.Command {
	var preset string
	cmd := &cobra.Command{
		Use:   "set <mode>",
		Short: "Select a theme mode (light, dark, system, preset, custom or a catalog name)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, store *settings.Store) error {
				mode := models.ThemeMode(strings.TrimSpace(args[0]))
				if preset != "" && mode != models.ThemeModePreset {
					return fmt.Errorf("--preset requires the preset mode")
				}
				if err := store.SetTheme(ctx, mode, preset, nil); err != nil {
					return err
				}
				if store.CurrentTheme(ctx) == nil {
					fmt.Fprintf(cmd.OutOrStdout(), "theme mode set to %s, but it does not resolve to a theme\n", mode)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "theme mode set to %s\n", mode)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&preset, "preset", "", "catalog theme name for the preset mode")
	return cmd
}

func swatches(t models.Theme) string {
	var b strings.Builder
	for _, v := range theme.Variables(t) {
		if strings.HasPrefix(v.Value, "#") {
			b.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(v.Value)).Render("  "))
		}
	}
	return b.String()
}

func writeVariables(w io.Writer, t models.Theme) {
	for _, v := range theme.Variables(t) {
		swatch := "  "
		if strings.HasPrefix(v.Value, "#") {
			swatch = lipgloss.NewStyle().Background(lipgloss.Color(v.Value)).Render("  ")
		}
		fmt.Fprintf(w, "%s%s %s\n", nameStyle.Render(strings.TrimPrefix(v.Name, "--")), swatch, v.Value)
	}
}
