package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikogura/portfolio-admin/pkg/config"
	"github.com/nikogura/portfolio-admin/pkg/model"
	"github.com/nikogura/portfolio-admin/pkg/renderer"
	"github.com/nikogura/portfolio-admin/pkg/snapshot"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var showWidth int

//nolint:gochecknoglobals // Cobra boilerplate
var showStyle string

//nolint:gochecknoglobals // Cobra boilerplate
var showRaw bool

//nolint:gochecknoglobals // Cobra boilerplate
var showRetry bool

//nolint:gochecknoglobals // Cobra boilerplate
var showFrom string

//nolint:gochecknoglobals // Cobra boilerplate
var exportOutputDir string

//nolint:gochecknoglobals // Cobra boilerplate
var exportName string

//nolint:gochecknoglobals // Cobra boilerplate
var exportPDF bool

//nolint:gochecknoglobals // Cobra boilerplate
var exportKeepMarkdown bool

//nolint:gochecknoglobals // Cobra boilerplate
var exportJSON bool

//nolint:gochecknoglobals // Cobra boilerplate
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Render the portfolio in the terminal",
	Long: `Loads every section from the Portfolio API and renders the page.
Without any stored data a placeholder page is shown.

Example:
  portfolio-admin show
  portfolio-admin show --style light --width 100
  portfolio-admin show --raw > portfolio.md
  portfolio-admin show --from portfolio.json`,
	RunE: runShow,
}

//nolint:gochecknoglobals // Cobra boilerplate
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the portfolio to markdown and optionally PDF",
	Long: `Writes the rendered portfolio as markdown. With --pdf the markdown is converted
with pandoc, using the template and class file from the config when set.

Example:
  portfolio-admin export
  portfolio-admin export --pdf --output-dir ~/Documents
  portfolio-admin export --json`,
	RunE: runExport,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(exportCmd)

	showCmd.Flags().IntVar(&showWidth, "width", 80, "Word wrap width")
	showCmd.Flags().StringVar(&showStyle, "style", "", "Glamour style (dark, light, notty); default detects the terminal")
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "Print markdown without terminal styling")
	showCmd.Flags().BoolVar(&showRetry, "retry", false, "Retry once if the first load fails")
	showCmd.Flags().StringVar(&showFrom, "from", "", "Render a snapshot written by 'export --json' instead of calling the API")

	exportCmd.Flags().StringVar(&exportOutputDir, "output-dir", "", "Output directory (default from config)")
	exportCmd.Flags().StringVar(&exportName, "name", "portfolio", "Base file name without extension")
	exportCmd.Flags().BoolVar(&exportPDF, "pdf", false, "Also render a PDF with pandoc")
	exportCmd.Flags().BoolVar(&exportKeepMarkdown, "keep-markdown", true, "Keep the markdown file after PDF generation")
	exportCmd.Flags().BoolVar(&exportJSON, "json", false, "Also write a JSON snapshot that 'show --from' can render offline")
}

func runShow(cmd *cobra.Command, args []string) (err error) {
	var view *model.View
	if showFrom != "" {
		var file snapshot.File
		file, err = snapshot.Load(showFrom)
		if err != nil {
			return err
		}
		view = file.View
	} else {
		view, err = fetchView()
		if err != nil {
			return err
		}
	}

	md := renderer.Markdown(view)
	if showRaw {
		fmt.Print(md)
		return err
	}

	var out string
	out, err = renderer.Terminal(md, showWidth, showStyle)
	if err != nil {
		return err
	}

	fmt.Print(out)
	return err
}

// fetchView loads the portfolio from the API, retrying once when --retry is set.
func fetchView() (view *model.View, err error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var a *app
	a, err = newApp()
	if err != nil {
		return view, err
	}
	defer a.close()

	err = a.load(ctx)
	if err != nil {
		if !showRetry {
			fmt.Fprintln(os.Stderr, "Pass --retry to retry once automatically.")
			return view, err
		}
		fmt.Println("Retrying...")
		err = a.session.Retry(ctx)
		if err != nil {
			return view, err
		}
	}

	view = a.session.View()
	return view, err
}

func runExport(cmd *cobra.Command, args []string) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var a *app
	a, err = newApp()
	if err != nil {
		return err
	}
	defer a.close()

	err = a.load(ctx)
	if err != nil {
		return err
	}

	outDir := getOutputDir(exportOutputDir, a.cfg.Defaults.OutputDir)

	var mdPath string
	mdPath, err = exportView(ctx, a.session.View(), outDir, exportName, exportPDF, a.cfg.Pandoc)
	if err != nil {
		return err
	}

	if exportJSON {
		jsonPath := filepath.Join(outDir, exportName+".json")
		err = snapshot.Save(jsonPath, a.cfg.APIURL, a.session.View())
		if err != nil {
			return err
		}
		fmt.Printf("Snapshot written to %s\n", jsonPath)
	}

	if exportPDF && !exportKeepMarkdown {
		err = renderer.CleanupMarkdown(mdPath)
		if err != nil {
			return err
		}
	}

	return err
}

// exportView writes view as markdown under outDir and renders a PDF next to it when asked.
func exportView(ctx context.Context, view *model.View, outDir, name string, pdf bool, pandoc config.PandocConfig) (mdPath string, err error) {
	mdPath = filepath.Join(outDir, name+".md")

	err = renderer.WriteMarkdown(renderer.Markdown(view), mdPath)
	if err != nil {
		return mdPath, err
	}
	fmt.Printf("Markdown written to %s\n", mdPath)

	if !pdf {
		return mdPath, err
	}

	pdfPath := strings.TrimSuffix(mdPath, ".md") + ".pdf"
	s := startSpinner("Rendering PDF with pandoc...")
	err = renderer.RenderPDF(ctx, mdPath, pdfPath, renderer.PDFOptions{
		TemplatePath: pandoc.TemplatePath,
		ClassPath:    pandoc.ClassFile,
	})
	s.stop()
	if err != nil {
		err = errors.Wrap(err, "failed to render PDF")
		return mdPath, err
	}

	fmt.Printf("PDF written to %s\n", pdfPath)
	return mdPath, err
}

func getOutputDir(flagValue, configValue string) (outDir string) {
	outDir = flagValue
	if outDir == "" {
		outDir = configValue
	}
	return outDir
}
