package main

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ledgerkeep/ledgerkeep/internal/cli"
	"github.com/ledgerkeep/ledgerkeep/internal/common"
	"github.com/ledgerkeep/ledgerkeep/internal/importer"
	"github.com/ledgerkeep/ledgerkeep/internal/model"
	"github.com/ledgerkeep/ledgerkeep/internal/review"
	"github.com/ledgerkeep/ledgerkeep/internal/suggest"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import a statement CSV and review proposed transactions",
		Long: `Parse a statement CSV, propose a merchant name and category for every
row, and walk through an interactive review. Approved transactions are
written out as finalized records; your corrections teach the learner.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	cmd.Flags().String("out", "", "write finalized transactions to this JSON file (default: stdout)")
	cmd.Flags().Bool("auto", false, "approve all valid proposals and finalize without prompting")
	cmd.Flags().String("account-id", "", "account identifier stamped on finalized transactions")
	cmd.Flags().String("account-type", "", "account subtype (e.g. cash, credit card)")
	cmd.Flags().String("account-category", "", "account category (e.g. depository, debt)")

	_ = viper.BindPFlag("import.account_id", cmd.Flags().Lookup("account-id"))
	_ = viper.BindPFlag("import.account_type", cmd.Flags().Lookup("account-type"))
	_ = viper.BindPFlag("import.account_category", cmd.Flags().Lookup("account-category"))

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	preferences, store, err := openPrefs(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	accountID := viper.GetString("import.account_id")
	accountType := viper.GetString("import.account_type")
	accountCategory := viper.GetString("import.account_category")

	session := review.NewSession(preferences, preferences, accountID, accountType)

	rows, err := readCSVRows(args[0])
	if err != nil {
		// A parse failure keeps the session on the upload step.
		session.Fail(err.Error())
		fmt.Println(cli.FormatError("could not parse statement: " + session.Err()))
		return common.NewUserError("import failed", common.ErrParseFailure)
	}

	engine := suggest.NewEngine(preferences)
	builder := importer.NewBuilder(preferences, engine, accountType, accountCategory)

	bar := progressbar.NewOptions(len(rows),
		progressbar.OptionSetDescription("proposing"),
		progressbar.OptionClearOnFinish(),
	)
	records := make([]model.RawRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, importer.RecordFromRow(row))
		_ = bar.Add(1)
	}

	session.Load(builder.Propose(ctx, records))
	fmt.Println(cli.FormatTitle(fmt.Sprintf("Imported %d transactions", session.Len())))

	auto, _ := cmd.Flags().GetBool("auto")
	if auto {
		approved := session.ApproveAllValid()
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("approved %d valid transactions", approved)))
	} else if err := reviewLoop(ctx, session); err != nil {
		return err
	}

	finalized := session.Finalize(ctx)
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("finalized %d transactions", len(finalized))))

	outPath, _ := cmd.Flags().GetString("out")
	return writeFinalized(finalized, outPath)
}

// readCSVRows parses the statement into string-keyed row dictionaries using
// the header row. This is the "external collaborator" feeding the core.
func readCSVRows(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open statement: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", len(rows)+2, err)
		}

		row := make(map[string]string, len(header))
		for i, column := range header {
			if i < len(record) {
				row[column] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func writeFinalized(finalized []model.FinalizedTransaction, outPath string) error {
	data, err := json.MarshalIndent(finalized, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode finalized transactions: %w", err)
	}

	if outPath == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(outPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
