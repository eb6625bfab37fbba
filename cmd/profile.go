package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/nikogura/portfolio-admin/pkg/editor"
	"github.com/nikogura/portfolio-admin/pkg/model"
	"github.com/nikogura/portfolio-admin/pkg/source"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var profileForm editor.ProfileForm

//nolint:gochecknoglobals // Cobra boilerplate
var bioText string

//nolint:gochecknoglobals // Cobra boilerplate
var bioFile string

//nolint:gochecknoglobals // Cobra boilerplate
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Edit the profile contact fields",
	Long: `Updates the profile. Fields not given keep their current value.
Without a stored profile a new one is created.

Example:
  portfolio-admin profile --name "Ada Lovelace" --role "Engineer"
  portfolio-admin profile --github https://github.com/ada`,
	RunE: runProfile,
}

//nolint:gochecknoglobals // Cobra boilerplate
var bioCmd = &cobra.Command{
	Use:   "bio",
	Short: "Replace the profile bio",
	Long: `Replaces the bio. Only the bio is sent to the backend.

Example:
  portfolio-admin bio --text "Engineer who writes programs."
  portfolio-admin bio --file about.md
  portfolio-admin bio --file https://example.com/about.html`,
	RunE: runBio,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(bioCmd)

	profileCmd.Flags().StringVar(&profileForm.Name, "name", "", "Full name")
	profileCmd.Flags().StringVar(&profileForm.Role, "role", "", "Job title")
	profileCmd.Flags().StringVar(&profileForm.Email, "email", "", "Email address")
	profileCmd.Flags().StringVar(&profileForm.Phone, "phone", "", "Phone number")
	profileCmd.Flags().StringVar(&profileForm.Location, "location", "", "Location")
	profileCmd.Flags().StringVar(&profileForm.Skype, "skype", "", "Skype or other contact handle")
	profileCmd.Flags().StringVar(&profileForm.LinkedIn, "linkedin", "", "LinkedIn URL")
	profileCmd.Flags().StringVar(&profileForm.GitHub, "github", "", "GitHub URL")

	bioCmd.Flags().StringVar(&bioText, "text", "", "New bio text")
	bioCmd.Flags().StringVar(&bioFile, "file", "", "Read the bio from a file or http(s) URL")
	bioCmd.MarkFlagsMutuallyExclusive("text", "file")
	bioCmd.MarkFlagsOneRequired("text", "file")
}

// mergeProfileForm keeps current values for every flag the user did not pass.
func mergeProfileForm(cmd *cobra.Command, form editor.ProfileForm, current *model.Profile) (out editor.ProfileForm) {
	out = form
	if current == nil {
		return out
	}

	keep := func(flag string, dst *string, value string) {
		if !cmd.Flags().Changed(flag) {
			*dst = value
		}
	}

	keep("name", &out.Name, current.Name)
	keep("role", &out.Role, current.Role)
	keep("email", &out.Email, current.Email)
	keep("phone", &out.Phone, current.Phone)
	keep("location", &out.Location, current.Location)
	keep("skype", &out.Skype, current.Skype)
	keep("linkedin", &out.LinkedIn, current.LinkedIn)
	keep("github", &out.GitHub, current.GitHub)

	return out
}

func runProfile(cmd *cobra.Command, args []string) (err error) {
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

	current := a.session.View().Profile
	id := model.NewID
	if current != nil && current.ID != "" {
		id = current.ID
	} else {
		current = nil
	}

	err = a.session.Edit(editor.SectionProfile, id)
	if err != nil {
		return err
	}

	err = a.session.SaveProfile(ctx, mergeProfileForm(cmd, profileForm, current))
	if err != nil {
		return err
	}

	fmt.Println("Profile saved")
	return err
}

func runBio(cmd *cobra.Command, args []string) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	bio := bioText
	if bioFile != "" {
		bio, err = source.Text(ctx, bioFile)
		if err != nil {
			err = errors.Wrap(err, "failed to read bio")
			return err
		}
	}

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

	var id string
	if p := a.session.View().Profile; p != nil {
		id = p.ID
	}

	err = a.session.Edit(editor.SectionBio, id)
	if err != nil {
		return err
	}

	err = a.session.SaveBio(ctx, editor.BioForm{Bio: bio})
	if err != nil {
		return err
	}

	fmt.Println("Bio saved")
	return err
}
