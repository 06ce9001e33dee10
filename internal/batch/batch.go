// Package batch combines a directory of bank statements into one categorized
// transaction set, so several months of exports can feed a single CFO pack.
package batch

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"banktocfo/cfopack/internal/categorizer"
	"banktocfo/cfopack/internal/config"
	"banktocfo/cfopack/internal/models"
	"banktocfo/cfopack/internal/parser"
	"banktocfo/cfopack/internal/parsererror"
	"banktocfo/cfopack/internal/pdfparser"

	"github.com/sirupsen/logrus"
)

var log = config.Logger

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Processor runs the parse and categorize stages over every statement in a
// directory.
type Processor struct {
	router      *parser.Router
	categorizer *categorizer.Categorizer
}

// NewProcessor creates a batch processor.
func NewProcessor(router *parser.Router, cat *categorizer.Categorizer) *Processor {
	return &Processor{router: router, categorizer: cat}
}

// Result summarizes one directory run.
type Result struct {
	Transactions []models.Transaction
	Processed    []string
	Skipped      []string
}

// ProcessDirectory parses every supported statement in inputDir, merges the
// results and categorizes them. Statements that fail to parse are skipped
// with a warning so one bad export does not sink the whole batch. Duplicates
// across overlapping statements are dropped the same way overlapping PDF
// pages are.
func (p *Processor) ProcessDirectory(ctx context.Context, inputDir string) (*Result, error) {
	files, err := statementFiles(inputDir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, &parsererror.EmptyResultError{FilePath: inputDir}
	}

	log.WithFields(logrus.Fields{
		"dir":   inputDir,
		"files": len(files),
	}).Info("Processing statement directory")

	result := &Result{}
	for _, file := range files {
		transactions, err := p.processFile(ctx, file)
		if err != nil {
			log.WithField("file", filepath.Base(file)).WithError(err).Warn("Skipping statement")
			result.Skipped = append(result.Skipped, file)
			continue
		}
		result.Transactions = append(result.Transactions, transactions...)
		result.Processed = append(result.Processed, file)
	}

	if len(result.Transactions) == 0 {
		return nil, &parsererror.EmptyResultError{FilePath: inputDir}
	}

	result.Transactions = pdfparser.MergeAndDedup(result.Transactions)
	p.categorizer.Apply(result.Transactions)

	log.WithFields(logrus.Fields{
		"processed": len(result.Processed),
		"skipped":   len(result.Skipped),
		"count":     len(result.Transactions),
	}).Info("Batch processing complete")

	return result, nil
}

func (p *Processor) processFile(ctx context.Context, path string) ([]models.Transaction, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close statement file")
		}
	}()

	return p.router.Parse(ctx, filepath.Base(path), file)
}

// statementFiles lists the supported statements in dir, sorted by name so
// batches are deterministic.
func statementFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".csv", ".pdf":
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
