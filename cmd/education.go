package cmd

import (
	"context"
	"fmt"

	"github.com/nikogura/portfolio-admin/pkg/editor"
	"github.com/nikogura/portfolio-admin/pkg/model"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var educationForm model.Education

//nolint:gochecknoglobals // Cobra boilerplate
var educationCmd = &cobra.Command{
	Use:   "education",
	Short: "Add, update or delete education entries",
}

//nolint:gochecknoglobals // Cobra boilerplate
var educationAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an education entry at the top of the list",
	Long: `Example:
  portfolio-admin education add --school MIT --degree BSc --major "Computer Science" --year 2010`,
	RunE: runEducationAdd,
}

//nolint:gochecknoglobals // Cobra boilerplate
var educationUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an education entry; fields not given keep their value",
	Args:  cobra.ExactArgs(1),
	RunE:  runEducationUpdate,
}

//nolint:gochecknoglobals // Cobra boilerplate
var educationDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an education entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runEducationDelete,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(educationCmd)
	educationCmd.AddCommand(educationAddCmd)
	educationCmd.AddCommand(educationUpdateCmd)
	educationCmd.AddCommand(educationDeleteCmd)

	for _, c := range []*cobra.Command{educationAddCmd, educationUpdateCmd} {
		c.Flags().StringVar(&educationForm.School, "school", "", "School")
		c.Flags().StringVar(&educationForm.Degree, "degree", "", "Degree")
		c.Flags().StringVar(&educationForm.Major, "major", "", "Major")
		c.Flags().StringVar(&educationForm.Year, "year", "", "Year (optional)")
	}
	educationAddCmd.MarkFlagRequired("school") //nolint:errcheck // flag is defined above
}

func mergeEducationForm(cmd *cobra.Command, form, current model.Education) (out model.Education) {
	out = form
	if !cmd.Flags().Changed("school") {
		out.School = current.School
	}
	if !cmd.Flags().Changed("degree") {
		out.Degree = current.Degree
	}
	if !cmd.Flags().Changed("major") {
		out.Major = current.Major
	}
	if !cmd.Flags().Changed("year") {
		out.Year = current.Year
	}
	return out
}

func runEducationAdd(cmd *cobra.Command, args []string) (err error) {
	err = withAdmin(func(ctx context.Context, a *app) (err error) {
		err = a.session.Edit(editor.SectionEducation, model.NewID)
		if err != nil {
			return err
		}

		err = a.session.SaveEducation(ctx, educationForm)
		if err != nil {
			return err
		}

		added := a.session.View().Education[0]
		fmt.Printf("Education %s added (%s)\n", added.ID, added.School)
		return err
	})
	return err
}

func runEducationUpdate(cmd *cobra.Command, args []string) (err error) {
	id := args[0]
	err = withAdmin(func(ctx context.Context, a *app) (err error) {
		current, ok := a.session.View().EducationByID(id)
		if !ok {
			err = errors.Errorf("no education entry with id %s", id)
			return err
		}

		err = a.session.Edit(editor.SectionEducation, id)
		if err != nil {
			return err
		}

		err = a.session.SaveEducation(ctx, mergeEducationForm(cmd, educationForm, current))
		if err != nil {
			return err
		}

		fmt.Printf("Education %s updated\n", id)
		return err
	})
	return err
}

func runEducationDelete(cmd *cobra.Command, args []string) (err error) {
	err = withAdmin(func(ctx context.Context, a *app) (err error) {
		err = a.session.DeleteEducation(ctx, args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Education %s deleted\n", args[0])
		return err
	})
	return err
}
