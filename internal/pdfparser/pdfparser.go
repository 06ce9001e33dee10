// Package pdfparser parses PDF bank statements by rendering each page to an
// image and delegating transaction extraction to an external vision model.
// Results from all pages are merged, sorted by date and deduplicated, since
// overlapping page renders can surface the same transaction twice.
package pdfparser

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"banktocfo/cfopack/internal/config"
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

// Parser parses PDF statements with injectable rasterizer and extractor.
type Parser struct {
	rasterizer PageRasterizer
	extractor  VisionExtractor
}

// NewParser creates a PDF parser from its two collaborators.
func NewParser(rasterizer PageRasterizer, extractor VisionExtractor) *Parser {
	return &Parser{rasterizer: rasterizer, extractor: extractor}
}

// Parse reads PDF bytes and returns the merged, deduplicated transactions
// from every page. A page whose extraction fails is logged and contributes
// zero transactions; only a totally empty outcome is left for the router to
// reject.
func (p *Parser) Parse(ctx context.Context, r io.Reader) ([]models.Transaction, error) {
	tempFile, err := os.CreateTemp("", "cfopack-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("error creating temporary PDF file: %w", err)
	}
	defer func() {
		if err := os.Remove(tempFile.Name()); err != nil {
			log.WithError(err).Warn("Failed to remove temporary PDF file")
		}
	}()

	if _, err := io.Copy(tempFile, r); err != nil {
		tempFile.Close()
		return nil, fmt.Errorf("error writing temporary PDF file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return nil, fmt.Errorf("error closing temporary PDF file: %w", err)
	}

	pages, err := p.rasterizer.RasterizePages(tempFile.Name())
	if err != nil {
		return nil, &parsererror.ParseError{
			Parser: "PDF",
			Field:  "rasterization",
			Value:  tempFile.Name(),
			Err:    err,
		}
	}

	log.WithField("pages", len(pages)).Info("Processing PDF statement pages")

	var collected []models.Transaction
	for i, page := range pages {
		pageNum := i + 1

		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("pdf parse canceled: %w", err)
		}

		pageTxs, err := p.extractor.ExtractPage(ctx, page)
		if err != nil {
			extractErr := &parsererror.ExtractionError{Page: pageNum, Err: err}
			log.WithField("page", pageNum).WithError(extractErr).Warn("Page extraction failed, continuing")
			continue
		}

		log.WithFields(logrus.Fields{
			"page":  pageNum,
			"count": len(pageTxs),
		}).Debug("Extracted transactions from page")

		collected = append(collected, pageTxs...)
	}

	merged := MergeAndDedup(collected)

	log.WithFields(logrus.Fields{
		"pages": len(pages),
		"count": len(merged),
	}).Info("Parsed PDF statement")

	return merged, nil
}

// MergeAndDedup sorts transactions by date ascending and drops exact
// (date, description, amount) duplicates, keeping the first occurrence. The
// sort is stable so records from earlier pages keep their position among
// equal dates.
func MergeAndDedup(transactions []models.Transaction) []models.Transaction {
	sorted := make([]models.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})

	seen := make(map[string]bool, len(sorted))
	unique := sorted[:0]
	for _, tx := range sorted {
		key := tx.DedupKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, tx)
	}

	return unique
}
