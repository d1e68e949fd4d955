package pdftext

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/slidecast/slidecast/structure"
)

// unknownField fills metadata the document does not carry.
const unknownField = "Unknown"

// ReadMetadata pulls title, author, and page count from the document info
// dictionary. Metadata problems are not fatal: the caller gets Unknown
// fields and a zero page count with a warning.
func ReadMetadata(logger *slog.Logger, path string) structure.Metadata {
	meta := structure.Metadata{Title: unknownField, Author: unknownField}

	ctx, err := readContext(path)
	if err != nil {
		logger.Warn("pdf metadata unavailable", "path", path, "error", err)
		return meta
	}

	meta.TotalPages = ctx.PageCount
	if ctx.Title != "" {
		meta.Title = ctx.Title
	}
	if ctx.Author != "" {
		meta.Author = ctx.Author
	}
	return meta
}

func readContext(path string) (*model.Context, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}
	return ctx, nil
}
