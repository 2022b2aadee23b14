package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerkeep/ledgerkeep/internal/cli"
)

func mappingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mappings",
		Short: "Manage raw statement mappings",
		Long:  `Link raw statement identities to clean merchant names so future
imports resolve them without cleaning heuristics.`,
	}

	cmd.AddCommand(mappingsListCmd())
	cmd.AddCommand(mappingsLinkCmd())
	cmd.AddCommand(mappingsClearCmd())

	return cmd
}

func mappingsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all raw mappings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			preferences, store, err := openPrefs(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			mappings := preferences.Mappings(cmd.Context())
			if len(mappings) == 0 {
				fmt.Println(cli.SubtleStyle.Render("no mappings yet"))
				return nil
			}
			for key, mapping := range mappings {
				auto := ""
				if mapping.AutoApply {
					auto = "auto"
				}
				fmt.Printf("%-40s %-25s %-4s used %d\n",
					truncate(key, 40), mapping.MerchantName, auto, mapping.UseCount)
			}
			return nil
		},
	}
}

func mappingsLinkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link <raw-merchant> <name>",
		Short: "Link a raw statement identity to a merchant name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			preferences, store, err := openPrefs(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			location, _ := cmd.Flags().GetString("location")
			autoApply, _ := cmd.Flags().GetBool("auto")

			if !preferences.LinkRawData(cmd.Context(), args[0], location, args[1], autoApply) {
				return fmt.Errorf("raw merchant and name must both be non-empty")
			}
			fmt.Println(cli.FormatSuccess("mapping saved"))
			return nil
		},
	}
	cmd.Flags().String("location", "", "location component of the raw identity")
	cmd.Flags().Bool("auto", false, "auto-apply this merchant's main default on import")
	return cmd
}

func mappingsClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every raw mapping and auto-apply flag",
		RunE: func(cmd *cobra.Command, _ []string) error {
			preferences, store, err := openPrefs(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if !preferences.ClearMappings(cmd.Context()) {
				return fmt.Errorf("failed to clear mappings")
			}
			fmt.Println(cli.FormatSuccess("mappings cleared"))
			return nil
		},
	}
}
