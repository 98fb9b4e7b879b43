package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tuberank/tuberank/internal/genai"
	"github.com/tuberank/tuberank/internal/observability"
	"github.com/tuberank/tuberank/internal/output"
)

var performanceCmd = &cobra.Command{
	Use:   "performance <url>",
	Short: "Analyze a published video's performance",
	Long: `Run a search-grounded analysis of a published YouTube video and
extract its view, like, and comment estimates plus a written analysis.`,
	Args: cobra.ExactArgs(1),
	RunE: runPerformance,
}

func init() {
	rootCmd.AddCommand(performanceCmd)

	performanceCmd.Flags().String("output", "table", "Output format: table, json, markdown")
}

func runPerformance(cmd *cobra.Command, args []string) error {
	url := strings.TrimSpace(args[0])
	if url == "" {
		return errors.New("url is required")
	}

	formatValue, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	format, err := output.ParseFormat(formatValue)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	service, err := buildGenerationService(cfg)
	if err != nil {
		return err
	}

	startedAt := time.Now()
	result, err := service.AnalyzePerformance(cmd.Context(), genai.PerformanceRequest{URL: url})
	if err != nil {
		return err
	}

	formatter := output.NewFormatter(format)
	rendered, err := formatter.FormatPerformance(result)
	if err != nil {
		return err
	}
	if rendered != "" {
		fmt.Println(rendered)
	}

	if format != output.FormatJSON {
		observability.CLILogger.Info("Performance analysis completed",
			zap.String("url", url),
			zap.Duration("elapsed", time.Since(startedAt)))
	}
	return nil
}
