package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerkeep/ledgerkeep/internal/cli"
	"github.com/ledgerkeep/ledgerkeep/internal/model"
)

func defaultsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Manage named category defaults",
		Long:  `View, create, and manage per-merchant named category presets.`,
	}

	cmd.AddCommand(defaultsListCmd())
	cmd.AddCommand(defaultsSetCmd())
	cmd.AddCommand(defaultsMainCmd())
	cmd.AddCommand(defaultsDeleteCmd())
	cmd.AddCommand(defaultsClearCmd())

	return cmd
}

func defaultsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [merchant]",
		Short: "List named defaults, optionally for one merchant",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			preferences, store, err := openPrefs(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if len(args) == 1 {
				printDefaults(args[0], preferences.Defaults(cmd.Context(), args[0]))
				return nil
			}

			all := preferences.AllDefaults(cmd.Context())
			if len(all) == 0 {
				fmt.Println(cli.SubtleStyle.Render("no named defaults yet"))
				return nil
			}
			for _, record := range all {
				printDefaults(record.Merchant, record.Defaults)
			}
			return nil
		},
	}
}

func printDefaults(merchantName string, defaults []model.Default) {
	if len(defaults) == 0 {
		fmt.Println(cli.SubtleStyle.Render("no defaults for " + merchantName))
		return
	}
	fmt.Println(cli.FormatTitle(merchantName))
	for _, d := range defaults {
		label := d.Name
		if d.Source == model.DefaultLegacy {
			label += " (legacy)"
		}
		category := d.Category
		if d.SubCategory != "" {
			category += " / " + d.SubCategory
		}
		fmt.Printf("  %-25s %-35s used %d\n", label, category, d.UseCount)
	}
}

func defaultsSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <merchant> <name> <category>",
		Short: "Create or overwrite a named default",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			preferences, store, err := openPrefs(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			subCategory, _ := cmd.Flags().GetString("sub")
			notes, _ := cmd.Flags().GetString("notes")
			txType, _ := cmd.Flags().GetString("type")
			recurring, _ := cmd.Flags().GetBool("recurring")

			if !preferences.CreateDefault(cmd.Context(), args[0], args[1], args[2], subCategory, notes, txType, recurring) {
				return fmt.Errorf("invalid default: expense defaults need a category and subcategory")
			}
			fmt.Println(cli.FormatSuccess("default saved"))
			return nil
		},
	}
	cmd.Flags().String("sub", "", "subcategory (required for expense type)")
	cmd.Flags().String("notes", "", "notes copied onto transactions")
	cmd.Flags().String("type", model.TypeExpense, "transaction type (expense, income, payment)")
	cmd.Flags().Bool("recurring", false, "mark transactions as recurring")
	return cmd
}

func defaultsMainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "main <merchant> [name]",
		Short: "Show or set a merchant's main default",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			preferences, store, err := openPrefs(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if len(args) == 2 {
				if !preferences.SetMainDefault(cmd.Context(), args[0], args[1]) {
					return fmt.Errorf("no default named %q for %s", args[1], args[0])
				}
				fmt.Println(cli.FormatSuccess("main default set"))
				return nil
			}

			main := preferences.MainDefault(cmd.Context(), args[0])
			if main == nil {
				fmt.Println(cli.SubtleStyle.Render("no defaults for " + args[0]))
				return nil
			}
			fmt.Printf("%s: %s / %s\n", main.Name, main.Category, main.SubCategory)
			return nil
		},
	}
}

func defaultsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <merchant> <name>",
		Short: "Delete one named default",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			preferences, store, err := openPrefs(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if preferences.DeleteDefault(cmd.Context(), args[0], args[1]) {
				fmt.Println(cli.FormatSuccess("default deleted"))
			} else {
				fmt.Println(cli.FormatWarning("no such default"))
			}
			return nil
		},
	}
}

func defaultsClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every named default",
		RunE: func(cmd *cobra.Command, _ []string) error {
			preferences, store, err := openPrefs(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if !preferences.ClearDefaults(cmd.Context()) {
				return fmt.Errorf("failed to clear defaults")
			}
			fmt.Println(cli.FormatSuccess("defaults cleared"))
			return nil
		},
	}
}
