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

var marketingCmd = &cobra.Command{
	Use:   "marketing <product>",
	Short: "Generate a marketing campaign for a product or service",
	Long:  "Generate a campaign strategy plus platform-specific social posts.",
	Args:  cobra.ExactArgs(1),
	RunE:  runMarketing,
}

func init() {
	rootCmd.AddCommand(marketingCmd)

	marketingCmd.Flags().String("audience", "", "Target audience description")
	marketingCmd.Flags().String("language", "English", "Output language")
	marketingCmd.Flags().String("output", "table", "Output format: table, json, markdown")
}

func runMarketing(cmd *cobra.Command, args []string) error {
	productName := strings.TrimSpace(args[0])
	if productName == "" {
		return errors.New("product name is required")
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
	result, err := service.GenerateMarketing(cmd.Context(), genai.MarketingRequest{
		ProductName: productName,
		Audience:    audience,
		Language:    language,
	})
	if err != nil {
		return err
	}

	formatter := output.NewFormatter(format)
	rendered, err := formatter.FormatMarketing(result)
	if err != nil {
		return err
	}
	if rendered != "" {
		fmt.Println(rendered)
	}

	if format != output.FormatJSON {
		observability.CLILogger.Info("Marketing campaign generated",
			zap.String("product", productName),
			zap.Duration("elapsed", time.Since(startedAt)))
	}
	return nil
}
