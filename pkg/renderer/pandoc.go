package renderer

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/pkg/errors"
)

// PDFOptions customises pandoc output. Both fields are optional.
type PDFOptions struct {
	// TemplatePath is a LaTeX template passed to pandoc --template.
	TemplatePath string
	// ClassPath is a .cls file whose directory is added to TEXINPUTS.
	ClassPath string
}

// RenderPDF converts a markdown file to PDF with pandoc.
func RenderPDF(ctx context.Context, markdownPath, outputPath string, opts PDFOptions) (err error) {
	err = checkPandocExists(ctx)
	if err != nil {
		return err
	}

	inputs := []string{markdownPath}
	if opts.TemplatePath != "" {
		inputs = append(inputs, opts.TemplatePath)
	}
	if opts.ClassPath != "" {
		inputs = append(inputs, opts.ClassPath)
	}

	err = validateFiles(inputs...)
	if err != nil {
		return err
	}

	outputDir := filepath.Dir(outputPath)
	err = os.MkdirAll(outputDir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create output directory: %s", outputDir)
		return err
	}

	cmd := exec.CommandContext(ctx, "pandoc", pandocArgs(markdownPath, outputPath, opts)...)

	if opts.ClassPath != "" {
		texinputs := filepath.Dir(opts.ClassPath) + ":" + os.Getenv("TEXINPUTS")
		cmd.Env = append(os.Environ(), "TEXINPUTS="+texinputs)
	}

	var output []byte
	output, err = cmd.CombinedOutput()
	if err != nil {
		err = errors.Wrapf(err, "pandoc failed: %s", string(output))
		return err
	}

	return err
}

func pandocArgs(markdownPath, outputPath string, opts PDFOptions) (args []string) {
	args = []string{
		"-f", "markdown",
		"-t", "pdf",
		"-o", outputPath,
	}
	if opts.TemplatePath != "" {
		args = append(args, "--template", opts.TemplatePath)
	}
	args = append(args, "--number-sections=false", markdownPath)
	return args
}

// checkPandocExists verifies pandoc is installed.
func checkPandocExists(ctx context.Context) (err error) {
	cmd := exec.CommandContext(ctx, "pandoc", "--version")
	err = cmd.Run()
	if err != nil {
		err = errors.New("pandoc not found in PATH (install pandoc to generate PDFs)")
		return err
	}
	return err
}

// validateFiles checks that required files exist.
func validateFiles(paths ...string) (err error) {
	for _, path := range paths {
		_, err = os.Stat(path)
		if os.IsNotExist(err) {
			err = errors.Errorf("file not found: %s", path)
			return err
		}
	}
	return err
}

// WriteMarkdown writes markdown content to a file.
func WriteMarkdown(content, outputPath string) (err error) {
	outputDir := filepath.Dir(outputPath)
	err = os.MkdirAll(outputDir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create output directory: %s", outputDir)
		return err
	}

	err = os.WriteFile(outputPath, []byte(content), 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write markdown file: %s", outputPath)
		return err
	}

	return err
}

// CleanupMarkdown removes intermediate markdown files after PDF generation.
func CleanupMarkdown(paths ...string) (err error) {
	for _, path := range paths {
		err = os.Remove(path)
		if err != nil {
			err = errors.Wrapf(err, "failed to remove markdown file: %s", path)
			return err
		}
	}
	return err
}
