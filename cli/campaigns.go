// ABOUTME: Campaign and document CLI commands
// ABOUTME: Create, inspect, and delete campaigns and manage their attached documents
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/harperreed/outlab/db"
	"github.com/harperreed/outlab/files"
	"github.com/harperreed/outlab/metrics"
	"github.com/harperreed/outlab/models"
	"github.com/spf13/cobra"
)

func (a *app) campaignCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "campaign",
		Short: "Manage campaign hypotheses",
	}
	cmd.AddCommand(a.campaignAddCommand(), a.campaignListCommand(), a.campaignShowCommand(), a.campaignDeleteCommand())
	return cmd
}

func (a *app) campaignAddCommand() *cobra.Command {
	var c models.Campaign

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a campaign",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := a.database()
			if err != nil {
				return err
			}
			if err := db.CreateCampaign(cmd.Context(), database, &c); err != nil {
				return fmt.Errorf("failed to create campaign: %w", err)
			}
			success(cmd.OutOrStdout(), "Campaign created: %s (ID: %d)", c.Name, c.ID)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&c.Name, "name", "", "Campaign name (required)")
	f.StringVar(&c.HypothesisType, "hypothesis-type", "", "Hypothesis type, e.g. use-case led")
	f.StringVar(&c.Industry, "industry", "", "Target industry")
	f.StringVar(&c.ICPPersonas, "personas", "", "Ideal customer personas")
	f.StringVar(&c.MessageAngle, "message-angle", "", "Messaging angle")
	f.StringVar(&c.Trigger, "trigger", "", "Trigger event")
	f.StringVar(&c.Product, "product", "", "Product being pitched")
	f.StringVar(&c.HypothesisUserStory, "user-story", "", "Hypothesis user story")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func (a *app) campaignListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List campaigns, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := a.database()
			if err != nil {
				return err
			}
			campaigns, err := db.ListCampaigns(cmd.Context(), database)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(campaigns) == 0 {
				fmt.Fprintln(out, "No campaigns found")
				return nil
			}

			rows := make([][]string, 0, len(campaigns))
			for _, c := range campaigns {
				rows = append(rows, []string{strconv.FormatInt(c.ID, 10), c.Name, c.HypothesisType, c.Industry, c.CreatedAt.Format("2006-01-02")})
			}
			if err := printTable(out, []string{"ID", "NAME", "HYPOTHESIS", "INDUSTRY", "CREATED"}, rows); err != nil {
				return err
			}
			fmt.Fprintf(out, "\nTotal: %d campaign(s)\n", len(campaigns))
			return nil
		},
	}
}

func (a *app) campaignShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <campaign>",
		Short: "Show a campaign with its cadence, documents, and metrics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := a.database()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			campaign, err := resolveCampaign(ctx, database, args[0])
			if err != nil {
				return err
			}
			m, err := metrics.ComputeCampaignMetrics(ctx, database, campaign.ID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			heading(out, fmt.Sprintf("%s (ID: %d)", campaign.Name, campaign.ID))
			var object string
			for _, row := range metrics.OverviewRows(campaign, m) {
				if row.Object != object {
					object = row.Object
					fmt.Fprintln(out)
					heading(out, object)
				}
				field(out, row.Field, row.Value)
			}

			if cadence, err := db.GetCadenceForCampaign(ctx, database, campaign.ID); err == nil {
				fmt.Fprintln(out)
				fmt.Fprintf(out, "Cadence: %s (ID: %d)\n", cadence.Name, cadence.ID)
			}

			docs, err := db.ListDocuments(ctx, database, campaign.ID)
			if err != nil {
				return err
			}
			if len(docs) > 0 {
				fmt.Fprintln(out)
				heading(out, "Documents")
				for _, d := range docs {
					fmt.Fprintf(out, "  • %s (ID: %d)\n", d.Name, d.ID)
				}
			}
			return nil
		},
	}
}

func (a *app) campaignDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <campaign>",
		Short: "Delete a campaign and everything under it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := a.database()
			if err != nil {
				return err
			}
			store, err := a.files()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			campaign, err := resolveCampaign(ctx, database, args[0])
			if err != nil {
				return err
			}
			if err := store.DeleteCampaign(ctx, database, campaign.ID); err != nil {
				return fmt.Errorf("failed to delete campaign: %w", err)
			}
			success(cmd.OutOrStdout(), "Campaign deleted: %s", campaign.Name)
			return nil
		},
	}
}

func (a *app) documentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "document",
		Short: "Manage campaign documents",
	}
	cmd.AddCommand(a.documentAddCommand(), a.documentListCommand(), a.documentGetCommand())
	return cmd
}

func (a *app) documentAddCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "add <campaign> <file>",
		Short: "Attach a file to a campaign",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := a.database()
			if err != nil {
				return err
			}
			store, err := a.files()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			campaign, err := resolveCampaign(ctx, database, args[0])
			if err != nil {
				return err
			}

			f, err := os.Open(args[1])
			if err != nil {
				return fmt.Errorf("%w: %v", models.ErrValidation, err)
			}
			defer func() { _ = f.Close() }()

			if name == "" {
				name = filepath.Base(args[1])
			}
			doc, err := store.AttachDocument(ctx, database, campaign.ID, name, f)
			if err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Document attached: %s (ID: %d)", doc.Name, doc.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name (default: file name)")
	return cmd
}

func (a *app) documentListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list <campaign>",
		Short: "List a campaign's documents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := a.database()
			if err != nil {
				return err
			}
			store, err := a.files()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			campaign, err := resolveCampaign(ctx, database, args[0])
			if err != nil {
				return err
			}
			docs, err := db.ListDocuments(ctx, database, campaign.ID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(docs) == 0 {
				fmt.Fprintln(out, "No documents found")
				return nil
			}
			rows := make([][]string, 0, len(docs))
			for _, d := range docs {
				state := "ok"
				if !store.Exists(d.FilePath) {
					state = "file missing"
				}
				rows = append(rows, []string{strconv.FormatInt(d.ID, 10), d.Name, d.UploadedAt.Format("2006-01-02"), state})
			}
			return printTable(out, []string{"ID", "NAME", "UPLOADED", "STATE"}, rows)
		},
	}
}

func (a *app) documentGetCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "get <document-id>",
		Short: "Write a stored document to disk",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("document", args[0])
			if err != nil {
				return err
			}
			database, err := a.database()
			if err != nil {
				return err
			}
			store, err := a.files()
			if err != nil {
				return err
			}

			doc, err := db.GetDocument(cmd.Context(), database, id)
			if err != nil {
				return err
			}
			data, err := store.Open(doc.FilePath)
			if errors.Is(err, files.ErrFileMissing) {
				return fmt.Errorf("document %q: file missing from %s", doc.Name, store.Dir())
			}
			if err != nil {
				return err
			}

			if output == "" {
				output = files.SanitizeName(doc.Name)
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Wrote %s (%d bytes)", output, len(data))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: document name)")
	return cmd
}
