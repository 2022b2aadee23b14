package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerkeep/ledgerkeep/internal/cli"
)

func resetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase all learned preferences",
		Long: `Remove every custom name, merchant history, named default, and raw
mapping. Finalized transaction exports are not touched.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			force, _ := cmd.Flags().GetBool("force")
			if !force {
				return fmt.Errorf("refusing to erase preferences without --force")
			}

			preferences, store, err := openPrefs(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			ctx := cmd.Context()
			ok := preferences.ClearCustomNames(ctx)
			ok = preferences.ClearHistories(ctx) && ok
			ok = preferences.ClearDefaults(ctx) && ok
			ok = preferences.ClearMappings(ctx) && ok
			if !ok {
				return fmt.Errorf("failed to clear preferences")
			}

			fmt.Println(cli.FormatSuccess("all preferences erased"))
			return nil
		},
	}
	cmd.Flags().Bool("force", false, "confirm the erase")
	return cmd
}
