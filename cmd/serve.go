package cmd

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/slidecast/slidecast/pipeline"
)

// Server identity constants.
const (
	serverName    = "slidecast"
	serverVersion = "0.1.0"
)

// MCP tool parameter keys, shared between schema and argument extraction.
const (
	argPDFPath   = "pdf_path"
	argOutputDir = "output_dir"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the pipeline as an MCP stdio server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := newLogger()

		s := server.NewMCPServer(serverName, serverVersion)
		registerTools(s, pipeline.New(logger, cfg))
		return server.ServeStdio(s)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// videoRunner is the pipeline surface the MCP tool needs; tests inject a
// stub.
type videoRunner interface {
	Run(ctx context.Context, pdfPath, outDir string) pipeline.Result
}

// registerTools binds MCP tool definitions to their handlers.
func registerTools(s *server.MCPServer, p videoRunner) {
	s.AddTool(
		mcp.NewTool("generate_video",
			mcp.WithDescription("Generate a narrated slide video from a PDF. "+
				"Pass an absolute PDF path and an output directory; returns the "+
				"slide deck and video paths."),
			mcp.WithString(argPDFPath,
				mcp.Required(),
				mcp.Description("Absolute path of the PDF to convert"),
			),
			mcp.WithString(argOutputDir,
				mcp.Required(),
				mcp.Description("Directory to write the slides and video into"),
			),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			pdfPath, ok := req.Params.Arguments[argPDFPath].(string)
			if !ok || pdfPath == "" {
				return mcp.NewToolResultError(argPDFPath + " is required"), nil
			}
			outDir, ok := req.Params.Arguments[argOutputDir].(string)
			if !ok || outDir == "" {
				return mcp.NewToolResultError(argOutputDir + " is required"), nil
			}

			res := p.Run(ctx, pdfPath, outDir)
			if res.Status == pipeline.StatusFailed {
				return mcp.NewToolResultError(res.ErrorMessage), nil
			}

			text := fmt.Sprintf("status: %s\nslides: %s\nvideo: %s\nduration: %s",
				res.Status, res.SlidesPath, res.VideoPath, res.Duration)
			if res.Status == pipeline.StatusDegraded {
				text += "\nnote: " + res.ErrorMessage
			}
			return mcp.NewToolResultText(text), nil
		},
	)
}
