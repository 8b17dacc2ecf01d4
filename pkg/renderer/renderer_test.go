package renderer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var testDelims = Delims{Left: "(((", Right: ")))"}

func writeTemplate(t *testing.T, content string) (path string) {
	t.Helper()

	path = filepath.Join(t.TempDir(), "resume.tex.tmpl")
	err := os.WriteFile(path, []byte(content), 0600)
	if err != nil {
		t.Fatalf("Failed to write template: %v", err)
	}

	return path
}

// writeStubCompiler creates a fake LaTeX compiler that accepts the real
// argument order (-interaction=nonstopmode -output-directory <dir> <tex>)
// and drops a PDF named after the tex file into the output directory.
func writeStubCompiler(t *testing.T, dir string) (path string) {
	t.Helper()

	script := `#!/bin/sh
outdir="$3"
tex="$4"
base=$(basename "$tex" .tex)
printf '%%PDF-1.4 stub\n' > "$outdir/$base.pdf"
`
	path = filepath.Join(dir, "fakelatex")
	err := os.WriteFile(path, []byte(script), 0755)
	if err != nil {
		t.Fatalf("Failed to write stub compiler: %v", err)
	}

	return path
}

func TestRenderEscapesFields(t *testing.T) {
	templatePath := writeTemplate(t, `Name: ((( latexEscape .name )))`)

	data := map[string]interface{}{"name": "A&B_C%D"}
	rendered, err := Render(templatePath, data, testDelims)
	if err != nil {
		t.Fatalf("Failed to render: %v", err)
	}

	want := `Name: A\&B\_C\%D`
	if rendered != want {
		t.Errorf("Rendered %q, want %q", rendered, want)
	}
}

func TestRenderLeavesLaTeXBracesAlone(t *testing.T) {
	// Template body braces are LaTeX syntax and must pass through untouched;
	// only the configured delimiters are template actions.
	templatePath := writeTemplate(t, `\textbf{((( latexEscape .name )))}`)

	data := map[string]interface{}{"name": "Jane"}
	rendered, err := Render(templatePath, data, testDelims)
	if err != nil {
		t.Fatalf("Failed to render: %v", err)
	}

	if rendered != `\textbf{Jane}` {
		t.Errorf("Rendered %q, want %q", rendered, `\textbf{Jane}`)
	}
}

func TestRenderNonStringField(t *testing.T) {
	templatePath := writeTemplate(t, `Count: ((( latexEscape .count )))`)

	data := map[string]interface{}{"count": 7}
	rendered, err := Render(templatePath, data, testDelims)
	if err != nil {
		t.Fatalf("Failed to render: %v", err)
	}

	if rendered != "Count: 7" {
		t.Errorf("Rendered %q, want %q", rendered, "Count: 7")
	}
}

func TestRenderMissingFieldFails(t *testing.T) {
	templatePath := writeTemplate(t, `((( .does_not_exist )))`)

	_, err := Render(templatePath, map[string]interface{}{}, testDelims)
	if err == nil {
		t.Error("Expected error rendering missing field, got nil")
	}
}

func TestRenderMissingTemplate(t *testing.T) {
	_, err := Render("/nonexistent/template.tmpl", map[string]interface{}{}, testDelims)
	if err == nil {
		t.Error("Expected error for missing template, got nil")
	}
}

func TestWriteTeX(t *testing.T) {
	tmpDir := t.TempDir()
	texPath := filepath.Join(tmpDir, "resume.tex")
	content := `\documentclass{article}`

	err := WriteTeX(content, texPath)
	if err != nil {
		t.Fatalf("Failed to write tex: %v", err)
	}

	data, err := os.ReadFile(texPath)
	if err != nil {
		t.Fatalf("Failed to read written file: %v", err)
	}

	if string(data) != content {
		t.Errorf("Expected content %q, got %q", content, string(data))
	}
}

func TestWriteTeXCreatesDir(t *testing.T) {
	tmpDir := t.TempDir()
	nestedPath := filepath.Join(tmpDir, "nested", "dir", "resume.tex")

	err := WriteTeX("test", nestedPath)
	if err != nil {
		t.Fatalf("Failed to write tex: %v", err)
	}

	_, err = os.Stat(nestedPath)
	if os.IsNotExist(err) {
		t.Error("Tex file was not created in nested directory")
	}
}

func TestCompileWithStub(t *testing.T) {
	tmpDir := t.TempDir()
	stub := writeStubCompiler(t, tmpDir)

	texPath := filepath.Join(tmpDir, "resume_2.tex")
	err := os.WriteFile(texPath, []byte(`\documentclass{article}`), 0600)
	if err != nil {
		t.Fatalf("Failed to write tex: %v", err)
	}

	outputDir := filepath.Join(tmpDir, "out")
	pdfPath, err := Compile(context.Background(), stub, texPath, outputDir)
	if err != nil {
		t.Fatalf("Failed to compile: %v", err)
	}

	if filepath.Base(pdfPath) != "resume_2.pdf" {
		t.Errorf("Expected artifact resume_2.pdf, got %s", filepath.Base(pdfPath))
	}

	_, err = os.Stat(pdfPath)
	if os.IsNotExist(err) {
		t.Error("Compiled artifact does not exist")
	}
}

func TestCompileFailure(t *testing.T) {
	tmpDir := t.TempDir()

	script := `#!/bin/sh
echo "! LaTeX Error: Missing begin document" >&2
exit 1
`
	stub := filepath.Join(tmpDir, "faillatex")
	err := os.WriteFile(stub, []byte(script), 0755)
	if err != nil {
		t.Fatalf("Failed to write stub compiler: %v", err)
	}

	texPath := filepath.Join(tmpDir, "resume.tex")
	err = os.WriteFile(texPath, []byte("broken"), 0600)
	if err != nil {
		t.Fatalf("Failed to write tex: %v", err)
	}

	_, err = Compile(context.Background(), stub, texPath, tmpDir)
	if err == nil {
		t.Fatal("Expected error from failing compiler, got nil")
	}

	// The compiler diagnostic must survive into the error.
	if !strings.Contains(err.Error(), "LaTeX Error") {
		t.Errorf("Expected compiler output in error, got: %v", err)
	}
}

func TestCompileMissingArtifact(t *testing.T) {
	tmpDir := t.TempDir()

	// Exits cleanly but writes nothing.
	script := "#!/bin/sh\nexit 0\n"
	stub := filepath.Join(tmpDir, "noopcompiler")
	err := os.WriteFile(stub, []byte(script), 0755)
	if err != nil {
		t.Fatalf("Failed to write stub compiler: %v", err)
	}

	texPath := filepath.Join(tmpDir, "resume.tex")
	err = os.WriteFile(texPath, []byte("x"), 0600)
	if err != nil {
		t.Fatalf("Failed to write tex: %v", err)
	}

	_, err = Compile(context.Background(), stub, texPath, tmpDir)
	if err == nil {
		t.Error("Expected error when compiler produces no artifact, got nil")
	}
}

func TestCheckCompilerExists(t *testing.T) {
	// This test will pass if pdflatex is installed, skip otherwise.
	err := CheckCompilerExists("pdflatex")
	if err != nil {
		t.Skip("pdflatex not installed, skipping test")
	}
}

func TestCheckCompilerExistsMissing(t *testing.T) {
	err := CheckCompilerExists("definitely-not-a-latex-compiler")
	if err == nil {
		t.Error("Expected error for missing compiler, got nil")
	}
}

func TestPublish(t *testing.T) {
	tmpDir := t.TempDir()

	srcPath := filepath.Join(tmpDir, "resume_1.pdf")
	content := []byte("%PDF-1.4 artifact")
	err := os.WriteFile(srcPath, content, 0600)
	if err != nil {
		t.Fatalf("Failed to write artifact: %v", err)
	}

	publishDir := filepath.Join(tmpDir, "dist")
	destPath, err := Publish(srcPath, publishDir, "resume_1.pdf")
	if err != nil {
		t.Fatalf("Failed to publish: %v", err)
	}

	data, err := os.ReadFile(destPath)
	if err != nil {
		t.Fatalf("Failed to read published artifact: %v", err)
	}

	if string(data) != string(content) {
		t.Error("Published artifact differs from source")
	}
}

func TestPublishMissingSource(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := Publish(filepath.Join(tmpDir, "missing.pdf"), filepath.Join(tmpDir, "dist"), "resume.pdf")
	if err == nil {
		t.Error("Expected error publishing missing artifact, got nil")
	}
}
