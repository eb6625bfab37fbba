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
var skillsCategory string

//nolint:gochecknoglobals // Cobra boilerplate
var skillsList string

//nolint:gochecknoglobals // Cobra boilerplate
var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Manage skill categories and their skills",
}

//nolint:gochecknoglobals // Cobra boilerplate
var skillsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a skill category with its skills",
	Long: `Example:
  portfolio-admin skills add --category "Cloud/Infra" --skills "Docker, Kubernetes, Terraform"`,
	RunE: runSkillsAdd,
}

//nolint:gochecknoglobals // Cobra boilerplate
var skillsUpdateCmd = &cobra.Command{
	Use:   "update <category-id>",
	Short: "Rename a category and/or replace its skills",
	Long: `Skills missing from --skills are removed from the category, new ones are added,
and a changed --category renames it.

Example:
  portfolio-admin skills update 4f7c... --skills "Go, Rust"
  portfolio-admin skills update 4f7c... --category "Languages"`,
	Args: cobra.ExactArgs(1),
	RunE: runSkillsUpdate,
}

//nolint:gochecknoglobals // Cobra boilerplate
var skillsDeleteCmd = &cobra.Command{
	Use:   "delete <category-id>",
	Short: "Delete a skill category",
	Args:  cobra.ExactArgs(1),
	RunE:  runSkillsDelete,
}

//nolint:gochecknoglobals // Cobra boilerplate
var otherSkillsCmd = &cobra.Command{
	Use:   "other-skills",
	Short: "Manage free-text skills",
}

//nolint:gochecknoglobals // Cobra boilerplate
var otherSkillsAddCmd = &cobra.Command{
	Use:   "add <skill>",
	Short: "Add a skill",
	Args:  cobra.ExactArgs(1),
	RunE:  runOtherSkillsAdd,
}

//nolint:gochecknoglobals // Cobra boilerplate
var otherSkillsUpdateCmd = &cobra.Command{
	Use:   "update <id> <skill>",
	Short: "Rename a skill",
	Args:  cobra.ExactArgs(2),
	RunE:  runOtherSkillsUpdate,
}

//nolint:gochecknoglobals // Cobra boilerplate
var otherSkillsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a skill",
	Args:  cobra.ExactArgs(1),
	RunE:  runOtherSkillsDelete,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(skillsCmd)
	skillsCmd.AddCommand(skillsAddCmd)
	skillsCmd.AddCommand(skillsUpdateCmd)
	skillsCmd.AddCommand(skillsDeleteCmd)

	for _, c := range []*cobra.Command{skillsAddCmd, skillsUpdateCmd} {
		c.Flags().StringVar(&skillsCategory, "category", "", "Category name")
		c.Flags().StringVar(&skillsList, "skills", "", "Comma separated skills")
	}
	skillsAddCmd.MarkFlagRequired("category") //nolint:errcheck // flag is defined above

	rootCmd.AddCommand(otherSkillsCmd)
	otherSkillsCmd.AddCommand(otherSkillsAddCmd)
	otherSkillsCmd.AddCommand(otherSkillsUpdateCmd)
	otherSkillsCmd.AddCommand(otherSkillsDeleteCmd)
}

func runSkillsAdd(cmd *cobra.Command, args []string) (err error) {
	err = withAdmin(func(ctx context.Context, a *app) (err error) {
		err = a.session.Edit(editor.SectionSkillsAdd, model.NewID)
		if err != nil {
			return err
		}

		form := editor.SkillsForm{Category: skillsCategory, Skills: editor.ParseSkillList(skillsList)}
		err = a.session.AddSkillCategory(ctx, form)
		if err != nil {
			return err
		}

		groups := a.session.View().SkillCategories
		fmt.Printf("Skill category %s added (%s)\n", groups[len(groups)-1].ID, skillsCategory)
		return err
	})
	return err
}

func runSkillsUpdate(cmd *cobra.Command, args []string) (err error) {
	id := args[0]
	err = withAdmin(func(ctx context.Context, a *app) (err error) {
		current, ok := a.session.View().SkillGroupByID(id)
		if !ok {
			err = errors.Errorf("no skill category with id %s", id)
			return err
		}

		form := editor.SkillsForm{Category: current.Name, Skills: current.Skills}
		if cmd.Flags().Changed("category") {
			form.Category = skillsCategory
		}
		if cmd.Flags().Changed("skills") {
			form.Skills = editor.ParseSkillList(skillsList)
		}

		err = a.session.Edit(editor.SectionSkills, id)
		if err != nil {
			return err
		}

		err = a.session.SaveSkills(ctx, form)
		if err != nil {
			return err
		}

		fmt.Printf("Skill category %s updated\n", id)
		return err
	})
	return err
}

func runSkillsDelete(cmd *cobra.Command, args []string) (err error) {
	err = withAdmin(func(ctx context.Context, a *app) (err error) {
		err = a.session.DeleteSkillCategory(ctx, args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Skill category %s deleted\n", args[0])
		return err
	})
	return err
}

func runOtherSkillsAdd(cmd *cobra.Command, args []string) (err error) {
	name := args[0]
	err = withAdmin(func(ctx context.Context, a *app) (err error) {
		err = a.session.Edit(editor.SectionOtherSkills, model.NewID)
		if err != nil {
			return err
		}

		err = a.session.SaveOtherSkill(ctx, editor.OtherSkillForm{Skill: name})
		if err != nil {
			return err
		}

		skills := a.session.View().OtherSkills
		fmt.Printf("Skill %s added (%s)\n", skills[len(skills)-1].ID, name)
		return err
	})
	return err
}

func runOtherSkillsUpdate(cmd *cobra.Command, args []string) (err error) {
	id, name := args[0], args[1]
	err = withAdmin(func(ctx context.Context, a *app) (err error) {
		err = a.session.Edit(editor.SectionOtherSkills, id)
		if err != nil {
			return err
		}

		err = a.session.SaveOtherSkill(ctx, editor.OtherSkillForm{Skill: name})
		if err != nil {
			return err
		}

		fmt.Printf("Skill %s renamed to %s\n", id, name)
		return err
	})
	return err
}

func runOtherSkillsDelete(cmd *cobra.Command, args []string) (err error) {
	err = withAdmin(func(ctx context.Context, a *app) (err error) {
		err = a.session.DeleteOtherSkill(ctx, args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Skill %s deleted\n", args[0])
		return err
	})
	return err
}
