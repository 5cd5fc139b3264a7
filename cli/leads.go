// ABOUTME: Lead CLI commands
// ABOUTME: Imports, lists, and works the contacts in a cadence, including conversion
package cli

import (
	"fmt"
	"strconv"

	"github.com/harperreed/outlab/db"
	"github.com/harperreed/outlab/importer"
	"github.com/harperreed/outlab/models"
	"github.com/spf13/cobra"
)

func (a *app) leadCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "lead",
		Aliases: []string{"contact"},
		Short:   "Manage the leads in a cadence",
	}
	cmd.AddCommand(
		a.leadImportCommand(),
		a.leadListCommand(),
		a.leadAddCommand(),
		a.leadStatusCommand(),
		a.leadLogActivityCommand(),
		a.leadConvertCommand(),
	)
	return cmd
}

func (a *app) leadImportCommand() *cobra.Command {
	var skip bool

	cmd := &cobra.Command{
		Use:   "import <cadence-id> <file>",
		Short: "Import leads from a CSV or XLSX file",
		Long: `Import leads from a CSV or XLSX file. Recognised columns are email,
first_name, last_name, title, account_name, account_industry, and
account_website. Rows without an email are skipped. Every imported lead
receives the cadence's activity templates unless --skip-cadence-activities
is set. The import is all-or-nothing: one bad row rolls back the whole file.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("cadence", args[0])
			if err != nil {
				return err
			}
			rows, err := importer.ReadFile(args[1])
			if err != nil {
				return err
			}
			im, err := a.importer()
			if err != nil {
				return err
			}

			result, err := im.Ingest(cmd.Context(), id, rows, importer.Options{SkipCadenceActivities: skip})
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}

			out := cmd.OutOrStdout()
			success(out, "Imported %d lead(s)", result.Processed)
			field(out, "Created", strconv.Itoa(result.Created))
			field(out, "Updated", strconv.Itoa(result.Updated))
			field(out, "Skipped", strconv.Itoa(result.Skipped))
			field(out, "Accounts created", strconv.Itoa(result.AccountsCreated))
			if !skip {
				field(out, "Activities created", strconv.Itoa(result.ActivitiesCreated))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&skip, "skip-cadence-activities", false, "Don't stamp the cadence's activity templates onto imported leads")
	return cmd
}

func (a *app) leadListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list <cadence-id>",
		Short: "List the leads in a cadence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("cadence", args[0])
			if err != nil {
				return err
			}
			database, err := a.database()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			if _, err := db.GetCadence(ctx, database, id); err != nil {
				return err
			}
			contacts, err := db.ListContacts(ctx, database, id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(contacts) == 0 {
				fmt.Fprintln(out, "No leads found")
				return nil
			}

			accountNames := make(map[int64]string)
			rows := make([][]string, 0, len(contacts))
			for i := range contacts {
				c := &contacts[i]
				account := ""
				if c.AccountID != nil {
					name, ok := accountNames[*c.AccountID]
					if !ok {
						if acc, err := db.GetAccount(ctx, database, *c.AccountID); err == nil {
							name = acc.Name
						}
						accountNames[*c.AccountID] = name
					}
					account = name
				}
				rows = append(rows, []string{strconv.FormatInt(c.ID, 10), c.FullName(), c.Email, c.Title, account, string(c.Status)})
			}
			if err := printTable(out, []string{"ID", "NAME", "EMAIL", "TITLE", "ACCOUNT", "STATUS"}, rows); err != nil {
				return err
			}
			fmt.Fprintf(out, "\nTotal: %d lead(s)\n", len(contacts))
			return nil
		},
	}
}

func (a *app) leadAddCommand() *cobra.Command {
	var c models.Contact
	var account string

	cmd := &cobra.Command{
		Use:   "add <cadence-id>",
		Short: "Add a single lead to a cadence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("cadence", args[0])
			if err != nil {
				return err
			}
			database, err := a.database()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			c.CadenceID = id
			if account != "" {
				acc, err := resolveAccount(ctx, database, account)
				if err != nil {
					return err
				}
				c.AccountID = &acc.ID
			}
			if err := db.CreateContact(ctx, database, &c); err != nil {
				return fmt.Errorf("failed to add lead: %w", err)
			}
			success(cmd.OutOrStdout(), "Lead added: %s (ID: %d)", c.Email, c.ID)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&c.Email, "email", "", "Email address (required)")
	f.StringVar(&c.FirstName, "first-name", "", "First name")
	f.StringVar(&c.LastName, "last-name", "", "Last name")
	f.StringVar(&c.Title, "title", "", "Job title")
	f.StringVar(&account, "account", "", "Existing account ID or name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (a *app) leadStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status <contact-id> <new|active|paused|converted>",
		Short: "Set a lead's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("contact", args[0])
			if err != nil {
				return err
			}
			status, err := models.ParseContactStatus(args[1])
			if err != nil {
				return err
			}
			database, err := a.database()
			if err != nil {
				return err
			}
			if err := db.SetContactStatus(cmd.Context(), database, id, status); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Lead %d is now %s", id, status)
			return nil
		},
	}
}

func (a *app) leadLogActivityCommand() *cobra.Command {
	var typ, content string

	cmd := &cobra.Command{
		Use:   "log-activity <contact-id>",
		Short: "Record a touchpoint with a lead",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("contact", args[0])
			if err != nil {
				return err
			}
			activityType, err := models.ParseActivityType(typ)
			if err != nil {
				return err
			}
			database, err := a.database()
			if err != nil {
				return err
			}

			activity := &models.Activity{ContactID: id, Type: activityType, Content: content}
			if err := db.LogActivity(cmd.Context(), database, activity); err != nil {
				return fmt.Errorf("failed to log activity: %w", err)
			}
			success(cmd.OutOrStdout(), "Logged %s for lead %d", activity.Type, id)
			return nil
		},
	}

	cmd.Flags().StringVar(&typ, "type", "", "Activity type: email, call, linkedin, or task (required)")
	cmd.Flags().StringVar(&content, "content", "", "What happened")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func (a *app) leadConvertCommand() *cobra.Command {
	var stage string
	var amount float64

	cmd := &cobra.Command{
		Use:   "convert <contact-id>",
		Short: "Convert a lead into an opportunity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("contact", args[0])
			if err != nil {
				return err
			}
			oppStage, err := models.ParseOpportunityStage(stage)
			if err != nil {
				return err
			}
			database, err := a.database()
			if err != nil {
				return err
			}

			opp, err := db.ConvertContact(cmd.Context(), database, id, oppStage, amount)
			if err != nil {
				return fmt.Errorf("failed to convert lead: %w", err)
			}
			success(cmd.OutOrStdout(), "Opportunity created (ID: %d) at %s for $%.2f", opp.ID, opp.Stage, opp.Amount)
			return nil
		},
	}

	cmd.Flags().StringVar(&stage, "stage", "", "Stage: New, Qualified, Proposal, Won, or Lost (default New)")
	cmd.Flags().Float64Var(&amount, "amount", 0, "Opportunity amount")
	return cmd
}

func (a *app) opportunityCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "opportunity",
		Aliases: []string{"opp"},
		Short:   "Inspect the opportunity pipeline",
	}

	var contactIDs []int64
	list := &cobra.Command{
		Use:   "list",
		Short: "List opportunities with their contact, account, and campaign",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := a.database()
			if err != nil {
				return err
			}
			entries, err := db.ListPipeline(cmd.Context(), database)
			if err != nil {
				return err
			}

			wanted := make(map[int64]bool, len(contactIDs))
			for _, id := range contactIDs {
				wanted[id] = true
			}

			var rows [][]string
			var total float64
			for _, e := range entries {
				if len(wanted) > 0 && !wanted[e.ContactID] {
					continue
				}
				contact := e.ContactName
				if contact == "" {
					contact = e.ContactEmail
				}
				rows = append(rows, []string{
					strconv.FormatInt(e.ID, 10), contact, e.AccountName, e.CampaignName,
					string(e.Stage), fmt.Sprintf("%.2f", e.Amount), e.CreatedAt.Format("2006-01-02"),
				})
				total += e.Amount
			}

			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintln(out, "No opportunities found")
				return nil
			}
			if err := printTable(out, []string{"ID", "CONTACT", "ACCOUNT", "CAMPAIGN", "STAGE", "AMOUNT", "CREATED"}, rows); err != nil {
				return err
			}
			fmt.Fprintf(out, "\nTotal: %d opportunities, $%.2f\n", len(rows), total)
			return nil
		},
	}
	list.Flags().Int64SliceVar(&contactIDs, "contact", nil, "Only these contact IDs (repeatable)")

	cmd.AddCommand(list)
	return cmd
}
