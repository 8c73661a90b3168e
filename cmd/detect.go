// Package cmd — detect command.
// This is the main command that orchestrates the pipeline:
// fetch (or read) → detect → render → write.
//
// It handles flag validation, detector configuration, and renderer selection.
package cmd

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"time"

	"github.com/gaurav-prasanna/navpipe/core"
	"github.com/gaurav-prasanna/navpipe/core/detect"
	"github.com/gaurav-prasanna/navpipe/core/fetch"
	"github.com/gaurav-prasanna/navpipe/core/normalize"
	"github.com/gaurav-prasanna/navpipe/core/output"
	"github.com/gaurav-prasanna/navpipe/core/render"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Flag variables.
var (
	flagFile       string
	flagBaseURL    string
	flagSelector   string
	flagSelectors  string
	flagExclude    []string
	flagMaxDepth   int
	flagDuplicates string
	flagMaxBytes   int64

	flagJSON     bool
	flagMarkdown bool
	flagHTML     bool
	flagPDF      bool
	flagFlat     bool

	flagOutputDir string
)

var detectCmd = &cobra.Command{
	Use:   "detect [url]",
	Short: "Detect the navigation structure of a page",
	Long: `Detect fetches a webpage (or reads a local file), finds its navigation
structure, and renders it in the selected output format.

Examples:
  navpipe detect https://example.com/docs/
  navpipe detect https://example.com/docs/ --markdown --output_dir ./out
  navpipe detect --file page.html --base-url https://example.com/ --flat
  navpipe detect https://example.com/ --selector "#sidebar" --exclude "*/tag/*"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)

	// Input flags.
	detectCmd.Flags().StringVar(&flagFile, "file", "", "Read markup from a local file instead of fetching")
	detectCmd.Flags().StringVar(&flagBaseURL, "base-url", "", "Base URL for resolving links (required with --file)")
	detectCmd.Flags().Int64Var(&flagMaxBytes, "max-bytes", fetch.DefaultMaxBytes, "Maximum size of the page markup")

	// Detection flags.
	detectCmd.Flags().StringVar(&flagSelector, "selector", "", "Use the first element matching this CSS or XPath selector")
	addDetectionFlags(detectCmd)

	// Output format flags (mutually exclusive).
	detectCmd.Flags().BoolVar(&flagJSON, "json", false, "Output structured JSON (default)")
	detectCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Output Markdown")
	detectCmd.Flags().BoolVar(&flagHTML, "html", false, "Output an HTML list")
	detectCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output PDF")
	detectCmd.Flags().BoolVar(&flagFlat, "flat", false, "Output one line per entry")

	// Output directory.
	detectCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: stdout)")
}

// addDetectionFlags registers the detector settings on c.
func addDetectionFlags(c *cobra.Command) {
	c.Flags().StringVar(&flagSelectors, "selectors", "", "JSON or YAML file with the selector list to try")
	c.Flags().StringArrayVar(&flagExclude, "exclude", nil, "Glob of link URLs to drop (repeatable)")
	c.Flags().IntVar(&flagMaxDepth, "max-depth", detect.DefaultMaxDepth, "Maximum nesting depth")
	c.Flags().StringVar(&flagDuplicates, "duplicates", detect.KeepAll.String(), "Sibling duplicate titles: keep-all, keep-first, keep-last")
}

func runDetect(cmd *cobra.Command, args []string) error {
	// --- Validate flags ---
	if err := validateFlags(args); err != nil {
		return err
	}

	renderer, err := selectRenderer()
	if err != nil {
		return err
	}

	log := newLogger()
	detector, err := buildDetector(log)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	pageURL, html, err := loadPage(ctx, args)
	if err != nil {
		return err
	}

	res := detector.Analyze(html, pageURL)
	meta := buildMetadata(pageURL, res)
	if len(res.Structure) == 0 {
		log.WithField("url", pageURL).Warn("No navigation detected")
	}

	data, err := renderer.Render(res.Structure, meta)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if flagOutputDir == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	writer, err := output.New(flagOutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}
	path, err := writer.Write(pageURL, data, renderer.Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Written: %s (%d entries, depth %d)\n", path, res.Structure.Count(), res.Structure.Depth())
	return nil
}

// loadPage returns the page URL used as the base for links, and its markup.
func loadPage(ctx context.Context, args []string) (string, string, error) {
	if flagFile != "" {
		f, err := os.Open(flagFile)
		if err != nil {
			return "", "", fmt.Errorf("opening %s: %w", flagFile, err)
		}
		defer f.Close()

		data, err := io.ReadAll(io.LimitReader(f, flagMaxBytes+1))
		if err != nil {
			return "", "", fmt.Errorf("reading %s: %w", flagFile, err)
		}
		if int64(len(data)) > flagMaxBytes {
			return "", "", fmt.Errorf("%s exceeds %d bytes", flagFile, flagMaxBytes)
		}
		return flagBaseURL, string(data), nil
	}

	result, err := fetch.New(flagMaxBytes).Fetch(ctx, args[0])
	if err != nil {
		return "", "", fmt.Errorf("fetch: %w", err)
	}
	base := result.URL
	if flagBaseURL != "" {
		base = flagBaseURL
	}
	return base, result.HTML, nil
}

// buildDetector turns the detection flags into a configured Detector.
func buildDetector(log *logrus.Logger) (*detect.Detector, error) {
	opts, err := detectorOptions(log)
	if err != nil {
		return nil, err
	}
	if flagSelector != "" {
		opts = append(opts, detect.WithOverride(flagSelector))
	}
	return detect.New(opts...), nil
}

// detectorOptions returns the options shared by detect and serve.
func detectorOptions(log *logrus.Logger) ([]detect.Option, error) {
	policy, err := detect.ParseDuplicatePolicy(flagDuplicates)
	if err != nil {
		return nil, err
	}

	opts := []detect.Option{
		detect.WithLogger(log),
		detect.WithMaxDepth(flagMaxDepth),
		detect.WithDuplicatePolicy(policy),
		detect.WithExclude(flagExclude...),
	}
	if flagSelectors != "" {
		opts = append(opts, detect.WithSelectors(detect.LoadSelectors(flagSelectors, log)))
	}
	return opts, nil
}

// buildMetadata constructs OutlineMetadata from the page URL and result.
func buildMetadata(pageURL string, res detect.Result) core.OutlineMetadata {
	var domain string
	if parsed, err := url.Parse(pageURL); err == nil {
		domain = parsed.Host
	}

	return core.OutlineMetadata{
		URL:         pageURL,
		Domain:      domain,
		Title:       res.Title,
		Strategy:    res.Strategy,
		DetectedAt:  time.Now().UTC().Format(time.RFC3339),
		Fingerprint: res.Structure.Fingerprint(),
	}
}

// validateFlags checks the input source, the output format and the
// detection settings.
func validateFlags(args []string) error {
	switch {
	case flagFile != "" && len(args) > 0:
		return fmt.Errorf("pass either a URL or --file, not both")
	case flagFile == "" && len(args) == 0:
		return fmt.Errorf("a URL or --file is required")
	case flagFile != "" && flagBaseURL == "":
		return fmt.Errorf("--base-url is required with --file")
	}

	if len(args) > 0 {
		if err := validateURL(args[0]); err != nil {
			return err
		}
	}
	if flagBaseURL != "" {
		if err := validateURL(flagBaseURL); err != nil {
			return err
		}
	}

	// Count output formats.
	formatCount := 0
	for _, set := range []bool{flagJSON, flagMarkdown, flagHTML, flagPDF, flagFlat} {
		if set {
			formatCount++
		}
	}
	if formatCount > 1 {
		return fmt.Errorf("only one output format allowed per run (got %d)", formatCount)
	}

	// PDF is binary; keep it off the terminal.
	if flagPDF && flagOutputDir == "" {
		return fmt.Errorf("--output_dir is required when using --pdf")
	}

	if flagMaxDepth < 1 {
		return fmt.Errorf("--max-depth must be at least 1 (got %d)", flagMaxDepth)
	}
	if flagMaxBytes < 1 {
		return fmt.Errorf("--max-bytes must be positive (got %d)", flagMaxBytes)
	}
	if _, err := detect.ParseDuplicatePolicy(flagDuplicates); err != nil {
		return err
	}
	return nil
}

func validateURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid URL: %s (must include scheme, e.g. https://example.com)", rawURL)
	}
	return nil
}

// selectRenderer creates the appropriate Renderer based on flags.
// JSON is the default when no format flag is set.
func selectRenderer() (core.Renderer, error) {
	switch {
	case flagMarkdown:
		return render.NewMarkdownRenderer(normalize.New()), nil
	case flagHTML:
		return render.NewHTMLRenderer(), nil
	case flagPDF:
		return render.NewPDFRenderer(), nil
	case flagFlat:
		return render.NewTextRenderer(), nil
	default:
		return render.NewJSONRenderer(), nil
	}
}
