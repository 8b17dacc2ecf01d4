package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"resume-press/pkg/config"
	"resume-press/pkg/generator"
)

//nolint:gochecknoglobals // Cobra boilerplate
var verbose bool

//nolint:gochecknoglobals // Cobra boilerplate
var configFile string

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "resume-press [profile.json]",
	Short: "Compile resume profiles into published PDFs",
	Long: `resume-press renders a JSON resume profile through a LaTeX template and
compiles it to PDF, publishing the artifact under a name derived from the
profile filename.

Profile text is escaped for LaTeX via the latexEscape template
transformation, and a computed years_of_experience field is injected
before rendering.

Example:
  resume-press
  resume-press profiles/2_fullstack.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRoot,
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.resume-press/config.json)")
}

func runRoot(cmd *cobra.Command, args []string) (err error) {
	// Load configuration
	var cfg config.Config
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return err
	}

	// Default profile when no argument is given
	profilePath := cfg.DefaultProfile()
	if len(args) > 0 {
		profilePath = args[0]
	}

	if getVerbose() {
		fmt.Printf("Generating resume from: %s\n", profilePath)
	}

	gen := generator.New(cfg, getVerbose())

	var artifactPath string
	artifactPath, err = gen.Generate(context.Background(), profilePath)
	if err != nil {
		return err
	}

	if artifactPath == "" {
		fmt.Println("No artifact produced")
	}

	return err
}

// getVerbose returns the verbose flag value.
func getVerbose() (result bool) {
	result = verbose
	return result
}

// getConfigFile returns the config file path.
func getConfigFile() (result string) {
	result = configFile
	return result
}
