package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ledgerkeep/ledgerkeep/internal/cli"
	"github.com/ledgerkeep/ledgerkeep/internal/model"
	"github.com/ledgerkeep/ledgerkeep/internal/review"
	"github.com/ledgerkeep/ledgerkeep/internal/suggest"
)

// reviewLoop drives the interactive approval workflow over a session.
func reviewLoop(ctx context.Context, session *review.Session) error {
	reader := cli.NewLineReader(os.Stdin)
	printReviewHelp()

	for {
		fmt.Printf("%s ", cli.FormatPrompt(fmt.Sprintf("[%d%% approved]", session.Progress())))
		line, err := reader.ReadLine(ctx)
		if errors.Is(err, cli.ErrInputCancelled) {
			return nil
		}
		if err != nil {
			return nil
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		command, args := fields[0], fields[1:]

		switch command {
		case "list", "l":
			printTransactions(session)
		case "approve", "a":
			withIndexArg(session, args, func(txn model.ProposedTransaction) {
				if !txn.IsValid() {
					fmt.Println(cli.FormatWarning("transaction is incomplete; set its category first"))
					return
				}
				if session.Approve(txn.ID) {
					fmt.Println(cli.FormatSuccess("approved " + txn.MerchantName))
				}
			})
		case "all":
			count := session.ApproveAllValid()
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("approved %d valid transactions", count)))
		case "defaults":
			count := session.ApproveAllWithDefaults(ctx)
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("approved %d transactions with defaults", count)))
		case "undo", "u":
			if session.Undo() {
				fmt.Println(cli.FormatSuccess("undone"))
			} else {
				fmt.Println(cli.FormatWarning("nothing to undo"))
			}
		case "unapprove":
			withIndexArg(session, args, func(txn model.ProposedTransaction) {
				if session.Unapprove(txn.ID) {
					fmt.Println(cli.FormatSuccess("returned to review: " + txn.MerchantName))
				}
			})
		case "set", "s":
			withIndexArg(session, args, func(txn model.ProposedTransaction) {
				editTransaction(ctx, reader, session, txn)
			})
		case "bulk", "b":
			withIndexArg(session, args, func(txn model.ProposedTransaction) {
				bulkApply(ctx, reader, session, txn)
			})
		case "reset":
			session.Reset()
			fmt.Println(cli.FormatWarning("all approvals cleared"))
		case "done", "d":
			return nil
		case "quit", "q":
			return fmt.Errorf("review aborted")
		case "help", "h", "?":
			printReviewHelp()
		default:
			fmt.Println(cli.FormatWarning("unknown command: " + command))
		}
	}
}

func printReviewHelp() {
	fmt.Println(cli.SubtleStyle.Render(`commands:
  list             show all transactions
  approve <n>      approve one transaction
  all              approve everything valid
  defaults         approve everything with an applicable default
  set <n>          edit category/subcategory/notes
  bulk <n>         apply a category across all matching merchants
  unapprove <n>    return an approved transaction to review
  undo             revert the last approval change
  reset            clear all approvals
  done             finalize approved transactions
  quit             abandon the session`))
}

func printTransactions(session *review.Session) {
	for i, txn := range session.Transactions() {
		status := cli.PendingIcon
		if txn.Approved {
			status = cli.SuccessIcon
		}
		category := txn.Category
		if txn.SubCategory != "" {
			category += " / " + txn.SubCategory
		}
		if category == "" {
			category = cli.WarningStyle.Render("uncategorized")
		}
		fmt.Printf("%s %3d  %s  %10s  %-30s %s\n",
			status, i+1,
			txn.Original.Date.Format("2006-01-02"),
			txn.Original.Amount.StringFixed(2),
			truncate(txn.MerchantName, 30),
			category,
		)
	}
}

// withIndexArg resolves a 1-based index argument into a transaction.
func withIndexArg(session *review.Session, args []string, fn func(model.ProposedTransaction)) {
	if len(args) != 1 {
		fmt.Println(cli.FormatWarning("expected a transaction number"))
		return
	}
	n, err := strconv.Atoi(args[0])
	transactions := session.Transactions()
	if err != nil || n < 1 || n > len(transactions) {
		fmt.Println(cli.FormatWarning("no such transaction"))
		return
	}
	fn(transactions[n-1])
}

func editTransaction(ctx context.Context, reader *cli.LineReader, session *review.Session, txn model.ProposedTransaction) {
	category := promptField(ctx, reader, "category", txn.Category)
	// Income categories never take a subcategory, so skip the prompt.
	subCategory := ""
	if !suggest.IsIncomeCategory(category) {
		subCategory = promptField(ctx, reader, "subcategory", txn.SubCategory)
	}
	notes := promptField(ctx, reader, "notes", txn.Notes)

	ok := session.Update(txn.ID, func(t *model.ProposedTransaction) {
		t.Category = category
		t.SubCategory = subCategory
		t.Notes = notes
		t.AutoSuggested = false
	})
	if !ok {
		fmt.Println(cli.FormatWarning("unapprove the transaction before editing"))
	}
}

func bulkApply(ctx context.Context, reader *cli.LineReader, session *review.Session, target model.ProposedTransaction) {
	transactions := session.Transactions()
	matches := review.FindMatches(transactions, target)
	summary := review.Summarize(matches)

	var preview strings.Builder
	for _, row := range summary.Preview {
		fmt.Fprintf(&preview, "%s  %10s  %s\n",
			row.Date.Format("2006-01-02"), row.Amount.StringFixed(2), row.Merchant)
	}
	fmt.Fprintf(&preview, "%d transactions totaling %s", summary.Count, summary.TotalAmount.StringFixed(2))
	fmt.Println(cli.RenderBox("Matching "+target.MerchantName, preview.String()))

	if promptField(ctx, reader, "apply to all? (y/n)", "n") != "y" {
		return
	}

	category := promptField(ctx, reader, "category", target.Category)
	subCategory := promptField(ctx, reader, "subcategory", target.SubCategory)

	indices := make([]int, 0, len(matches))
	for _, m := range matches {
		indices = append(indices, m.Index)
	}

	updated := review.ApplyCategory(transactions, indices, review.CategoryPatch{
		Category:    &category,
		SubCategory: &subCategory,
	})
	if session.Replace(updated) {
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("updated %d transactions", len(indices))))
	}
}

func promptField(ctx context.Context, reader *cli.LineReader, label, current string) string {
	if current != "" {
		fmt.Printf("%s %s ", cli.FormatPrompt(label), cli.SubtleStyle.Render("["+current+"]"))
	} else {
		fmt.Printf("%s ", cli.FormatPrompt(label))
	}
	line, err := reader.ReadLine(ctx)
	if err != nil || line == "" {
		return current
	}
	return line
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit-1] + "…"
}
