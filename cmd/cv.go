package cmd

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nikogura/portfolio-admin/pkg/api"
	"github.com/nikogura/portfolio-admin/pkg/renderer"
	"github.com/nikogura/portfolio-admin/pkg/services"
	"github.com/nikogura/portfolio-admin/pkg/source"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var cvMode string

//nolint:gochecknoglobals // Cobra boilerplate
var cvStyle string

//nolint:gochecknoglobals // Cobra boilerplate
var cvCmd = &cobra.Command{
	Use:   "cv <file.pdf|url>",
	Short: "Extract portfolio data from a PDF CV",
	Long: `Uploads a PDF CV to the Portfolio API for extraction.

In preview mode the extracted data is rendered but nothing is stored.
In replace mode the backend replaces the stored portfolio with the extracted
data and the page is reloaded.

Example:
  portfolio-admin cv resume.pdf
  portfolio-admin cv resume.pdf --mode replace
  portfolio-admin cv https://example.com/files/resume.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runCV,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(cvCmd)

	cvCmd.Flags().StringVar(&cvMode, "mode", api.ModePreview, "preview or replace")
	cvCmd.Flags().StringVar(&cvStyle, "style", "", "Glamour style for the rendered result")
}

func runCV(cmd *cobra.Command, args []string) (err error) {
	path := args[0]
	if cvMode != api.ModePreview && cvMode != api.ModeReplace {
		err = errors.Errorf("--mode must be %q or %q", api.ModePreview, api.ModeReplace)
		return err
	}

	err = withAdmin(func(ctx context.Context, a *app) (err error) {
		var doc source.Document
		doc, err = source.Fetch(ctx, path)
		if err != nil {
			err = errors.Wrap(err, "failed to load CV")
			return err
		}

		name := doc.Name
		if strings.Contains(doc.ContentType, "pdf") && !strings.EqualFold(filepath.Ext(name), ".pdf") {
			name += ".pdf"
		}

		s := startSpinner(fmt.Sprintf("Processing %s (%s)...", name, cvMode))
		_, err = a.session.ProcessCV(ctx, services.CVFile{Name: name, Content: bytes.NewReader(doc.Data)}, cvMode)
		s.stop()
		if err != nil {
			return err
		}

		var out string
		out, err = renderer.Terminal(renderer.Markdown(a.session.View()), 80, cvStyle)
		if err != nil {
			return err
		}

		fmt.Print(out)
		return err
	})
	return err
}
