package generator

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"resume-press/pkg/config"
	"resume-press/pkg/naming"
	"resume-press/pkg/profile"
	"resume-press/pkg/renderer"
)

// Generator sequences the profile-to-artifact pipeline: load, inject the
// computed experience field, render, compile, publish. One profile per run,
// no shared state beyond the filesystem.
type Generator struct {
	cfg     config.Config
	verbose bool
}

// New creates a Generator from explicit configuration.
func New(cfg config.Config, verbose bool) (g *Generator) {
	g = &Generator{
		cfg:     cfg,
		verbose: verbose,
	}
	return g
}

// RenderDocument loads the profile, injects years_of_experience as of now,
// and renders the LaTeX source.
func (g *Generator) RenderDocument(profilePath string, now time.Time) (rendered string, err error) {
	var p profile.Profile
	p, err = profile.Load(profilePath)
	if err != nil {
		return rendered, err
	}

	var epoch time.Time
	epoch, err = g.cfg.Epoch()
	if err != nil {
		return rendered, err
	}

	p.InjectExperience(epoch, now)

	delims := renderer.Delims{
		Left:  g.cfg.Delims.Left,
		Right: g.cfg.Delims.Right,
	}

	rendered, err = renderer.Render(g.cfg.TemplatePath, p, delims)
	if err != nil {
		return rendered, err
	}

	return rendered, err
}

// Generate runs the full pipeline for one profile and returns the published
// artifact path. A compiler failure is logged and yields an empty path with
// a nil error; every other failure is fatal to the run.
func (g *Generator) Generate(ctx context.Context, profilePath string) (artifactPath string, err error) {
	outputName := naming.OutputName(filepath.Base(profilePath))
	stem := strings.TrimSuffix(outputName, naming.ArtifactExt)

	var rendered string
	rendered, err = g.RenderDocument(profilePath, time.Now())
	if err != nil {
		return artifactPath, err
	}

	texPath := filepath.Join(g.cfg.OutputDir, stem+".tex")
	err = renderer.WriteTeX(rendered, texPath)
	if err != nil {
		return artifactPath, err
	}

	if g.verbose {
		fmt.Printf("Generated %s\n", texPath)
	}

	var pdfPath string
	pdfPath, err = renderer.Compile(ctx, g.cfg.LaTeX.Command, texPath, g.cfg.OutputDir)
	if err != nil {
		// A failed compilation leaves the run alive with no artifact.
		fmt.Printf("Warning: failed to compile PDF: %v\n", err)
		err = nil
		return artifactPath, err
	}

	if g.verbose {
		fmt.Printf("PDF generated: %s\n", pdfPath)
	}

	artifactPath, err = renderer.Publish(pdfPath, g.cfg.PublishDir, outputName)
	if err != nil {
		err = errors.Wrap(err, "failed to publish artifact")
		return artifactPath, err
	}

	fmt.Printf("Published %s\n", artifactPath)

	return artifactPath, err
}
