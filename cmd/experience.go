package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/nikogura/portfolio-admin/pkg/editor"
	"github.com/nikogura/portfolio-admin/pkg/model"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var experienceForm model.Experience

//nolint:gochecknoglobals // Cobra boilerplate
var experienceCmd = &cobra.Command{
	Use:   "experience",
	Short: "Add, update or delete experience entries",
}

//nolint:gochecknoglobals // Cobra boilerplate
var experienceAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an experience entry at the top of the list",
	Long: `Example:
  portfolio-admin experience add --company Acme --role "Staff Engineer" \
    --period "2021 - Present" --tech-stack "Go, Kafka" \
    --duty "Led the platform team" --duty "Built the billing pipeline" --domain Payments`,
	RunE: runExperienceAdd,
}

//nolint:gochecknoglobals // Cobra boilerplate
var experienceUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an experience entry; fields not given keep their value",
	Args:  cobra.ExactArgs(1),
	RunE:  runExperienceUpdate,
}

//nolint:gochecknoglobals // Cobra boilerplate
var experienceDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an experience entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runExperienceDelete,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(experienceCmd)
	experienceCmd.AddCommand(experienceAddCmd)
	experienceCmd.AddCommand(experienceUpdateCmd)
	experienceCmd.AddCommand(experienceDeleteCmd)

	for _, c := range []*cobra.Command{experienceAddCmd, experienceUpdateCmd} {
		c.Flags().StringVar(&experienceForm.Company, "company", "", "Company name")
		c.Flags().StringVar(&experienceForm.Role, "role", "", "Role")
		c.Flags().StringVar(&experienceForm.Period, "period", "", "Display period, e.g. \"2020 - 2023\"")
		c.Flags().StringVar(&experienceForm.TechStack, "tech-stack", "", "Free-text tech stack")
		c.Flags().StringArrayVar(&experienceForm.Duties, "duty", nil, "Duty line (repeatable)")
		c.Flags().StringArrayVar(&experienceForm.Domain, "domain", nil, "Domain or project area (repeatable)")
	}
	experienceAddCmd.MarkFlagRequired("company") //nolint:errcheck // flag is defined above
}

// withAdmin loads the portfolio in admin mode and runs fn.
func withAdmin(fn func(ctx context.Context, a *app) (err error)) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var a *app
	a, err = newApp()
	if err != nil {
		return err
	}
	defer a.close()

	err = a.admin(ctx)
	if err != nil {
		return err
	}

	err = fn(ctx, a)
	return err
}

func mergeExperienceForm(cmd *cobra.Command, form, current model.Experience) (out model.Experience) {
	out = form
	if !cmd.Flags().Changed("company") {
		out.Company = current.Company
	}
	if !cmd.Flags().Changed("role") {
		out.Role = current.Role
	}
	if !cmd.Flags().Changed("period") {
		out.Period = current.Period
	}
	if !cmd.Flags().Changed("tech-stack") {
		out.TechStack = current.TechStack
	}
	if !cmd.Flags().Changed("duty") {
		out.Duties = current.Duties
	}
	if !cmd.Flags().Changed("domain") {
		out.Domain = current.Domain
	}
	return out
}

func runExperienceAdd(cmd *cobra.Command, args []string) (err error) {
	err = withAdmin(func(ctx context.Context, a *app) (err error) {
		err = a.session.Edit(editor.SectionExperience, model.NewID)
		if err != nil {
			return err
		}

		err = a.session.SaveExperience(ctx, experienceForm)
		if err != nil {
			return err
		}

		added := a.session.View().Experience[0]
		fmt.Printf("Experience %s added (%s at %s)\n", added.ID, added.Role, added.Company)
		return err
	})
	return err
}

func runExperienceUpdate(cmd *cobra.Command, args []string) (err error) {
	id := args[0]
	err = withAdmin(func(ctx context.Context, a *app) (err error) {
		current, ok := a.session.View().ExperienceByID(id)
		if !ok {
			err = errors.Errorf("no experience entry with id %s", id)
			return err
		}

		err = a.session.Edit(editor.SectionExperience, id)
		if err != nil {
			return err
		}

		err = a.session.SaveExperience(ctx, mergeExperienceForm(cmd, experienceForm, current))
		if err != nil {
			return err
		}

		fmt.Printf("Experience %s updated\n", id)
		return err
	})
	return err
}

func runExperienceDelete(cmd *cobra.Command, args []string) (err error) {
	err = withAdmin(func(ctx context.Context, a *app) (err error) {
		err = a.session.DeleteExperience(ctx, args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Experience %s deleted\n", args[0])
		return err
	})
	return err
}
