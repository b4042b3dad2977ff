package commands

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/nurtureai/nurtureai/internal/cli/ui"
	"github.com/nurtureai/nurtureai/internal/config"
	"github.com/nurtureai/nurtureai/internal/domain"
	"github.com/nurtureai/nurtureai/internal/links"
	"github.com/nurtureai/nurtureai/internal/logging"
	"github.com/nurtureai/nurtureai/internal/service"
	"github.com/nurtureai/nurtureai/internal/vision/backend"
)

var (
	analyzeCategory string
	analyzePro      bool
	analyzeImage    string
	analyzeQuestion string
	analyzeVerbose  bool
)

// newAnalyzer is replaced in tests.
var newAnalyzer = backend.New

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "analyze a photo with the configured vision model",
	Long: `Send a photo to the configured vision model with the instructions for the
chosen category and print the result with SAFE / NOT SAFE tags, the medical
disclaimer, and a WhatsApp share link.

Categories: food, drug (or medicine), cosmetic, calories. The --pro flag selects
the professional wording and has no effect for calories.`,
	Example: `  $ nurturectl analyze --category cosmetic --image cream.jpg
  $ nurturectl analyze -c calories -i lunch.png -q "Is this under 600 calories?"`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeCategory, "category", "c", "food", "Check type: food, drug, cosmetic, calories")
	analyzeCmd.Flags().BoolVar(&analyzePro, "pro", false, "Use the healthcare professional wording")
	analyzeCmd.Flags().StringVarP(&analyzeImage, "image", "i", "", "Path to a JPEG or PNG photo")
	analyzeCmd.Flags().StringVarP(&analyzeQuestion, "question", "q", "", "Optional specific question")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Log backend activity to stderr")

	analyzeCmd.SilenceUsage = true
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if len(args) > 0 {
		ui.PrintError(out, "unexpected argument: %s", args[0])
		fmt.Fprintf(out, "\nRun '%s --help' for usage.\n", cmd.CommandPath())
		return fmt.Errorf("invalid arguments")
	}

	category, err := domain.ParseCategory(analyzeCategory)
	if err != nil {
		ui.PrintError(out, "%v", err)
		return fmt.Errorf("invalid category")
	}
	expertise := domain.ExpertiseRegular
	if analyzePro {
		expertise = domain.ExpertiseProfessional
	}

	var image domain.Image
	if analyzeImage != "" {
		data, err := os.ReadFile(analyzeImage)
		if err != nil {
			ui.PrintError(out, "failed to read image: %v", err)
			return fmt.Errorf("image read failed")
		}
		image = domain.Image{Data: data, MimeType: http.DetectContentType(data)}
	}

	cfg := config.Load()
	level := "warn"
	if analyzeVerbose {
		level = "debug"
	}
	logger, cleanup, err := logging.New(level, "text", cfg.LogFile)
	if err != nil {
		ui.PrintError(out, "failed to initialize logger: %v", err)
		return fmt.Errorf("logger init failed")
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	analyzer, closeAnalyzer, err := newAnalyzer(ctx, cfg, logger)
	if err != nil {
		ui.PrintError(out, "%v", err)
		return fmt.Errorf("vision backend init failed")
	}
	defer closeAnalyzer()

	lb, err := links.NewBuilder(cfg.ChatNumber, cfg.ChatGreeting)
	if err != nil {
		ui.PrintError(out, "%v", err)
		return fmt.Errorf("invalid chat configuration")
	}

	svc := service.NewAnalysisService(analyzer, lb, cfg.ModelTimeout, logger)

	ui.PrintInfo(out, "Analyzing image... Please wait")
	result, err := svc.Analyze(ctx, domain.AnalysisRequest{
		Category:  category,
		Expertise: expertise,
		Image:     image,
		Question:  analyzeQuestion,
	})
	var invErr *service.InvocationError
	switch {
	case errors.Is(err, service.ErrMissingImage):
		ui.PrintWarning(out, "⚠️ Please upload an image to analyze (use --image)")
		return err
	case errors.Is(err, service.ErrUnsupportedImage):
		ui.PrintWarning(out, "⚠️ Unsupported image format. Please use a JPEG or PNG image")
		return err
	case errors.As(err, &invErr):
		ui.PrintError(out, "An unexpected error occurred: %v", invErr)
		return err
	case err != nil:
		ui.PrintError(out, "%v", err)
		return err
	}

	fmt.Fprintln(out)
	ui.PrintResult(out, result)
	return nil
}
