package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"nexus/internal/settings"
)

func newImageCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "image",
		Short: "List and select background images",
	}
	cmd.AddCommand(newImageListCommand(), newImageSelectCommand())
	return cmd
}

func newImageListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the catalog images, marking the selected one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd.Context(), func(_ context.Context, store *settings.Store) error {
				images, _ := store.Images()
				selected := store.Settings().Background.SelectedImage
				ids := make([]string, 0, len(images))
				for id := range images {
					ids = append(ids, id)
				}
				sort.Strings(ids)

				for _, id := range ids {
					image := images[id]
					marker := " "
					if id == selected {
						marker = "*"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n", marker, nameStyle.Render(id), image.Src, mutedStyle.Render(image.Credit))
				}
				return nil
			})
		},
	}
}

func newImageSelectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "select <src>",
		Short: "Select the catalog image with the given source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, store *settings.Store) error {
				if err := store.SetCurrentImage(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "background image set to %s\n", args[0])
				return nil
			})
		},
	}
}
