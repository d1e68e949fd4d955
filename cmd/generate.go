package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/slidecast/slidecast/pipeline"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a slide video from a PDF",
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")
		output, _ := cmd.Flags().GetString("output")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("max-slides") {
			cfg.Analysis.MaxSlides, _ = cmd.Flags().GetInt("max-slides")
		}
		if cmd.Flags().Changed("video-format") {
			cfg.Video.OutputFormat, _ = cmd.Flags().GetString("video-format")
		}
		if cmd.Flags().Changed("report") {
			cfg.Report.Enabled, _ = cmd.Flags().GetBool("report")
		}

		logger := newLogger()
		res := pipeline.New(logger, cfg).Run(cmd.Context(), input, output)

		switch res.Status {
		case pipeline.StatusFailed:
			return fmt.Errorf("pipeline failed: %s", res.ErrorMessage)
		case pipeline.StatusDegraded:
			fmt.Printf("Done (degraded: %s)\n", res.ErrorMessage)
		default:
			fmt.Println("Done")
		}
		fmt.Printf("Slides: %s\nVideo:  %s\nTook:   %s\n",
			res.SlidesPath, res.VideoPath, res.Duration.Round(10*time.Millisecond))
		return nil
	},
}

func init() {
	generateCmd.Flags().StringP("input", "i", "", "input PDF path")
	generateCmd.Flags().StringP("output", "o", "output", "output directory")
	generateCmd.Flags().Int("max-slides", 0, "override analysis.max_slides")
	generateCmd.Flags().String("video-format", "", "override video.output_format (mp4|gif)")
	generateCmd.Flags().Bool("report", false, "write the XLSX analysis report")
	_ = generateCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(generateCmd)
}
