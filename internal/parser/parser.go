// Package parser routes an uploaded statement to the correct format parser
// based on its file extension. It is the single entry point the CLI and the
// HTTP server use to turn raw statement bytes into transactions.
package parser

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"banktocfo/cfopack/internal/config"
	"banktocfo/cfopack/internal/csvparser"
	"banktocfo/cfopack/internal/models"
	"banktocfo/cfopack/internal/parsererror"

	"github.com/sirupsen/logrus"
)

var log = config.Logger

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// StatementParser parses one statement format into transactions.
type StatementParser interface {
	Parse(ctx context.Context, r io.Reader) ([]models.Transaction, error)
}

// csvAdapter lifts the context-free CSV parser into StatementParser. The
// file name is carried so schema errors can report which upload failed.
type csvAdapter struct {
	fileName string
}

func (a csvAdapter) Parse(_ context.Context, r io.Reader) ([]models.Transaction, error) {
	return csvparser.Parse(r, a.fileName)
}

// Router dispatches statements by extension.
type Router struct {
	pdf StatementParser
}

// NewRouter creates a router. The PDF parser is injected because it needs a
// rasterizer and a vision extractor; CSV parsing has no collaborators.
func NewRouter(pdf StatementParser) *Router {
	return &Router{pdf: pdf}
}

// ForFile returns the parser responsible for the named file, or an
// UnsupportedFormatError when no parser handles its extension.
func (rt *Router) ForFile(fileName string) (StatementParser, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv":
		return csvAdapter{fileName: fileName}, nil
	case ".pdf":
		if rt.pdf == nil {
			return nil, &parsererror.UnsupportedFormatError{
				FilePath: fileName,
				Reason:   "PDF parsing is not configured (missing vision API key)",
			}
		}
		return rt.pdf, nil
	default:
		return nil, &parsererror.UnsupportedFormatError{
			FilePath: fileName,
			Reason:   "only .csv and .pdf statements are supported",
		}
	}
}

// Parse runs the full routing step: pick a parser for fileName, parse the
// stream, and reject statements that yield no transactions at all.
func (rt *Router) Parse(ctx context.Context, fileName string, r io.Reader) ([]models.Transaction, error) {
	p, err := rt.ForFile(fileName)
	if err != nil {
		return nil, err
	}

	log.WithField("file", fileName).Info("Parsing statement")

	transactions, err := p.Parse(ctx, r)
	if err != nil {
		return nil, err
	}
	if len(transactions) == 0 {
		return nil, &parsererror.EmptyResultError{FilePath: fileName}
	}

	log.WithFields(logrus.Fields{
		"file":  fileName,
		"count": len(transactions),
	}).Info("Parsed statement")

	return transactions, nil
}
