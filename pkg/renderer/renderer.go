package renderer

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/pkg/errors"

	"resume-press/pkg/latex"
)

// Delims are the template action delimiters.
type Delims struct {
	Left  string
	Right string
}

// Render merges profile data into the LaTeX template at templatePath.
// The latexEscape transformation is available to the template author for
// any field that may contain LaTeX-significant characters. Referencing a
// field the profile does not define is a render error, not a silent blank.
func Render(templatePath string, data map[string]interface{}, delims Delims) (rendered string, err error) {
	funcs := template.FuncMap{
		"latexEscape": latex.EscapeValue,
	}

	tmpl := template.New(filepath.Base(templatePath)).
		Delims(delims.Left, delims.Right).
		Funcs(funcs).
		Option("missingkey=error")

	tmpl, err = tmpl.ParseFiles(templatePath)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse template: %s", templatePath)
		return rendered, err
	}

	var builder strings.Builder
	err = tmpl.Execute(&builder, data)
	if err != nil {
		err = errors.Wrapf(err, "failed to render template: %s", templatePath)
		return rendered, err
	}

	rendered = builder.String()
	return rendered, err
}

// WriteTeX writes rendered LaTeX source to a file.
func WriteTeX(content, outputPath string) (err error) {
	// Ensure output directory exists
	outputDir := filepath.Dir(outputPath)
	err = os.MkdirAll(outputDir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create output directory: %s", outputDir)
		return err
	}

	err = os.WriteFile(outputPath, []byte(content), 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write tex file: %s", outputPath)
		return err
	}

	return err
}

// Compile runs the external LaTeX compiler on texPath, producing a PDF in
// outputDir. The subprocess blocks until the compiler exits; the call is
// attempted exactly once, no retries.
func Compile(ctx context.Context, command, texPath, outputDir string) (pdfPath string, err error) {
	// Ensure output directory exists
	err = os.MkdirAll(outputDir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create output directory: %s", outputDir)
		return pdfPath, err
	}

	cmd := exec.CommandContext(
		ctx,
		command,
		"-interaction=nonstopmode",
		"-output-directory", outputDir,
		texPath,
	)

	// Capture output
	var output []byte
	output, err = cmd.CombinedOutput()
	if err != nil {
		err = errors.Wrapf(err, "%s failed: %s", command, string(output))
		return pdfPath, err
	}

	// The compiler names the artifact after the tex file's basename.
	stem := strings.TrimSuffix(filepath.Base(texPath), filepath.Ext(texPath))
	pdfPath = filepath.Join(outputDir, stem+".pdf")

	_, err = os.Stat(pdfPath)
	if os.IsNotExist(err) {
		err = errors.Errorf("compiler exited cleanly but produced no artifact: %s", pdfPath)
		return pdfPath, err
	}

	return pdfPath, err
}

// CheckCompilerExists verifies the LaTeX compiler is installed.
func CheckCompilerExists(command string) (err error) {
	cmd := exec.Command(command, "--version")
	err = cmd.Run()
	if err != nil {
		err = errors.Errorf("%s not found in PATH (install a LaTeX distribution to compile PDFs)", command)
		return err
	}
	return err
}

// Publish copies the compiled artifact verbatim into publishDir under name.
func Publish(srcPath, publishDir, name string) (destPath string, err error) {
	err = os.MkdirAll(publishDir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create publish directory: %s", publishDir)
		return destPath, err
	}

	var data []byte
	data, err = os.ReadFile(srcPath)
	if err != nil {
		err = errors.Wrapf(err, "failed to read compiled artifact: %s", srcPath)
		return destPath, err
	}

	destPath = filepath.Join(publishDir, name)
	err = os.WriteFile(destPath, data, 0644)
	if err != nil {
		err = errors.Wrapf(err, "failed to publish artifact: %s", destPath)
		return destPath, err
	}

	return destPath, err
}
