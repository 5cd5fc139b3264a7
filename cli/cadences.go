// ABOUTME: Cadence CLI commands
// ABOUTME: Creates a campaign's cadence and manages its activity templates
package cli

import (
	"fmt"
	"strconv"

	"github.com/harperreed/outlab/db"
	"github.com/harperreed/outlab/models"
	"github.com/spf13/cobra"
)

func (a *app) cadenceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cadence",
		Short: "Manage campaign cadences",
	}
	cmd.AddCommand(a.cadenceCreateCommand(), a.cadenceShowCommand(), a.cadenceAddActivityCommand())
	return cmd
}

func (a *app) cadenceCreateCommand() *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "create <campaign>",
		Short: "Create the cadence for a campaign",
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
			cadence := &models.Cadence{CampaignID: campaign.ID, Name: name, Description: description}
			if err := db.CreateCadence(ctx, database, cadence); err != nil {
				return fmt.Errorf("failed to create cadence: %w", err)
			}
			success(cmd.OutOrStdout(), "Cadence created: %s (ID: %d) for %s", cadence.Name, cadence.ID, campaign.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Cadence name (required)")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func (a *app) cadenceShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <campaign>",
		Short: "Show a campaign's cadence and its activity templates",
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
			cadence, err := db.GetCadenceForCampaign(ctx, database, campaign.ID)
			if err != nil {
				return err
			}
			templates, err := db.ListCadenceActivities(ctx, database, cadence.ID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			heading(out, fmt.Sprintf("%s (ID: %d)", cadence.Name, cadence.ID))
			field(out, "Campaign", campaign.Name)
			field(out, "Description", cadence.Description)
			fmt.Fprintln(out)

			if len(templates) == 0 {
				fmt.Fprintln(out, "No activity templates")
				return nil
			}
			rows := make([][]string, 0, len(templates))
			for i, t := range templates {
				rows = append(rows, []string{strconv.Itoa(i + 1), string(t.Type), t.Content})
			}
			return printTable(out, []string{"STEP", "TYPE", "CONTENT"}, rows)
		},
	}
}

func (a *app) cadenceAddActivityCommand() *cobra.Command {
	var typ, content string

	cmd := &cobra.Command{
		Use:   "add-activity <cadence-id>",
		Short: "Add an activity template and stamp it onto every lead in the cadence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("cadence", args[0])
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

			template := &models.CadenceActivity{CadenceID: id, Type: activityType, Content: content}
			applied, err := db.AddCadenceActivity(cmd.Context(), database, template)
			if err != nil {
				return fmt.Errorf("failed to add activity: %w", err)
			}
			success(cmd.OutOrStdout(), "Activity template added (ID: %d), applied to %d lead(s)", template.ID, applied)
			return nil
		},
	}

	cmd.Flags().StringVar(&typ, "type", "", "Activity type: email, call, linkedin, or task (required)")
	cmd.Flags().StringVar(&content, "content", "", "Template content")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}
