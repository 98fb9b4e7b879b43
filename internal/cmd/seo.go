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

var seoCmd = &cobra.Command{
	Use:   "seo <topic>",
	Short: "Generate an SEO package for a video idea",
	Long: `Generate titles, a description, keywords, hashtags, a category,
an algorithm strategy, and thumbnail ideas for a video topic.`,
	Args: cobra.ExactArgs(1),
	RunE: runSEO,
}

func init() {
	rootCmd.AddCommand(seoCmd)

	seoCmd.Flags().String("category", "", "Video category hint (e.g. Education, Gaming)")
	seoCmd.Flags().String("audience", "", "Target audience description")
	seoCmd.Flags().String("language", "English", "Output language")
	seoCmd.Flags().String("output", "table", "Output format: table, json, markdown")
}

func runSEO(cmd *cobra.Command, args []string) error {
	topic := strings.TrimSpace(args[0])
	if topic == "" {
		return errors.New("topic is required")
	}

	category, err := cmd.Flags().GetString("category")
	if err != nil {
		return err
	}
	audience, err := cmd.Flags().GetString("audience")
	if err != nil {
		return err
	}
	language, err := cmd.Flags().GetString("language")
	if err != nil {
		return err
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
	result, err := service.GenerateSEO(cmd.Context(), genai.SEORequest{
		Topic:    topic,
		Category: category,
		Audience: audience,
		Language: language,
	})
	if err != nil {
		return err
	}

	formatter := output.NewFormatter(format)
	rendered, err := formatter.FormatSEO(result)
	if err != nil {
		return err
	}
	if rendered != "" {
		fmt.Println(rendered)
	}

	if format != output.FormatJSON {
		observability.CLILogger.Info("SEO package generated",
			zap.String("topic", topic),
			zap.Duration("elapsed", time.Since(startedAt)))
	}
	return nil
}
