// ABOUTME: Account CLI commands
// ABOUTME: Human-friendly commands for accounts and their buying signals
package cli

import (
	"fmt"
	"strconv"

	"github.com/harperreed/outlab/db"
	"github.com/harperreed/outlab/models"
	"github.com/spf13/cobra"
)

func (a *app) accountCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage target accounts",
	}
	cmd.AddCommand(a.accountAddCommand(), a.accountListCommand(), a.accountAddSignalCommand(), a.accountSignalsCommand())
	return cmd
}

func (a *app) accountAddCommand() *cobra.Command {
	var acc models.Account

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := a.database()
			if err != nil {
				return err
			}
			if err := db.CreateAccount(cmd.Context(), database, &acc); err != nil {
				return fmt.Errorf("failed to create account: %w", err)
			}
			success(cmd.OutOrStdout(), "Account created: %s (ID: %d)", acc.Name, acc.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&acc.Name, "name", "", "Account name (required)")
	cmd.Flags().StringVar(&acc.Industry, "industry", "", "Industry")
	cmd.Flags().StringVar(&acc.Website, "website", "", "Website URL")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func (a *app) accountListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := a.database()
			if err != nil {
				return err
			}
			accounts, err := db.ListAccounts(cmd.Context(), database)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(accounts) == 0 {
				fmt.Fprintln(out, "No accounts found")
				return nil
			}
			rows := make([][]string, 0, len(accounts))
			for _, acc := range accounts {
				rows = append(rows, []string{strconv.FormatInt(acc.ID, 10), acc.Name, acc.Industry, acc.Website})
			}
			return printTable(out, []string{"ID", "NAME", "INDUSTRY", "WEBSITE"}, rows)
		},
	}
}

func (a *app) accountAddSignalCommand() *cobra.Command {
	var typ, details string

	cmd := &cobra.Command{
		Use:   "add-signal <account>",
		Short: "Record a buying signal for an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := a.database()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			acc, err := resolveAccount(ctx, database, args[0])
			if err != nil {
				return err
			}
			signal := &models.AccountSignal{AccountID: acc.ID, SignalType: typ, Details: details}
			if err := db.AddAccountSignal(ctx, database, signal); err != nil {
				return fmt.Errorf("failed to add signal: %w", err)
			}
			success(cmd.OutOrStdout(), "Signal added to %s: %s", acc.Name, signal.SignalType)
			return nil
		},
	}

	cmd.Flags().StringVar(&typ, "type", "", "Signal type, e.g. Funding or Hiring (required)")
	cmd.Flags().StringVar(&details, "details", "", "Details")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func (a *app) accountSignalsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "signals <account>",
		Short: "List an account's signals, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := a.database()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			acc, err := resolveAccount(ctx, database, args[0])
			if err != nil {
				return err
			}
			signals, err := db.ListAccountSignals(ctx, database, acc.ID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(signals) == 0 {
				fmt.Fprintf(out, "No signals for %s\n", acc.Name)
				return nil
			}
			rows := make([][]string, 0, len(signals))
			for _, s := range signals {
				rows = append(rows, []string{s.Date.Format("2006-01-02"), s.SignalType, s.Details})
			}
			return printTable(out, []string{"DATE", "TYPE", "DETAILS"}, rows)
		},
	}
}
