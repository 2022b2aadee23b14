package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerkeep/ledgerkeep/internal/cli"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect learned category history",
		Long:  `View what the learner has recorded from your approvals, or forget it.`,
	}

	cmd.AddCommand(historyListCmd())
	cmd.AddCommand(historyClearCmd())

	return cmd
}

func historyListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List merchant histories and learned preferences",
		RunE: func(cmd *cobra.Command, _ []string) error {
			preferences, store, err := openPrefs(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			histories := preferences.Histories(cmd.Context())
			if len(histories) == 0 {
				fmt.Println(cli.SubtleStyle.Render("no history recorded yet"))
				return nil
			}
			for _, history := range histories {
				preference := "none"
				if history.MostCommon != nil {
					preference = history.MostCommon.Category
					if history.MostCommon.SubCategory != "" {
						preference += " / " + history.MostCommon.SubCategory
					}
				}
				fmt.Printf("%-30s %-35s %.0f%% of %d choices\n",
					truncate(history.OriginalName, 30), preference,
					history.Confidence*100, len(history.Choices))
			}
			return nil
		},
	}
}

func historyClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear [merchant]",
		Short: "Forget history for one merchant, or everything",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			preferences, store, err := openPrefs(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if len(args) == 1 {
				if preferences.ClearHistory(cmd.Context(), args[0]) {
					fmt.Println(cli.FormatSuccess("history cleared for " + args[0]))
				} else {
					fmt.Println(cli.FormatWarning("no history for that merchant"))
				}
				return nil
			}

			if !preferences.ClearHistories(cmd.Context()) {
				return fmt.Errorf("failed to clear history")
			}
			fmt.Println(cli.FormatSuccess("all history cleared"))
			return nil
		},
	}
}
