package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerkeep/ledgerkeep/internal/cli"
)

func namesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "names",
		Short: "Manage custom merchant names",
		Long:  `View, set, and remove user overrides of merchant display names.`,
	}

	cmd.AddCommand(namesListCmd())
	cmd.AddCommand(namesSetCmd())
	cmd.AddCommand(namesDeleteCmd())
	cmd.AddCommand(namesClearCmd())

	return cmd
}

func namesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all custom merchant names",
		RunE: func(cmd *cobra.Command, _ []string) error {
			preferences, store, err := openPrefs(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			entries := preferences.CustomNames(cmd.Context())
			if len(entries) == 0 {
				fmt.Println(cli.SubtleStyle.Render("no custom names yet"))
				return nil
			}
			for key, entry := range entries {
				fmt.Printf("%-40s %-25s used %d\n", key, entry.CustomName, entry.UseCount)
			}
			return nil
		},
	}
}

func namesSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <raw-merchant> <name>",
		Short: "Set a custom display name for a raw merchant",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			preferences, store, err := openPrefs(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			location, _ := cmd.Flags().GetString("location")
			if !preferences.SetCustomName(cmd.Context(), args[0], location, args[1]) {
				return fmt.Errorf("raw merchant and name must both be non-empty")
			}
			fmt.Println(cli.FormatSuccess("custom name saved"))
			return nil
		},
	}
	cmd.Flags().String("location", "", "location component of the raw identity")
	return cmd
}

func namesDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <raw-merchant>",
		Short: "Remove a custom merchant name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			preferences, store, err := openPrefs(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			location, _ := cmd.Flags().GetString("location")
			if preferences.RemoveCustomName(cmd.Context(), args[0], location) {
				fmt.Println(cli.FormatSuccess("custom name removed"))
			} else {
				fmt.Println(cli.FormatWarning("no custom name for that merchant"))
			}
			return nil
		},
	}
	cmd.Flags().String("location", "", "location component of the raw identity")
	return cmd
}

func namesClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every custom merchant name",
		RunE: func(cmd *cobra.Command, _ []string) error {
			preferences, store, err := openPrefs(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if !preferences.ClearCustomNames(cmd.Context()) {
				return fmt.Errorf("failed to clear custom names")
			}
			fmt.Println(cli.FormatSuccess("custom names cleared"))
			return nil
		},
	}
}
