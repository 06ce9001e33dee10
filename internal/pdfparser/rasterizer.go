package pdfparser

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
)

// PageRasterizer renders each page of a PDF to an image. The interface
// exists for dependency injection: production uses poppler, tests use a
// mock.
type PageRasterizer interface {
	// RasterizePages renders every page of the PDF at the given path and
	// returns one PNG per page, in page order.
	RasterizePages(pdfPath string) ([][]byte, error)
}

// PopplerRasterizer implements PageRasterizer using the poppler pdftoppm
// command-line tool, which must be installed on the host.
type PopplerRasterizer struct {
	// DPI is the render resolution. 300 keeps statement text legible for
	// the vision model.
	DPI int
}

// NewPopplerRasterizer creates a rasterizer at the given DPI, defaulting to
// 300 when the value is not positive.
func NewPopplerRasterizer(dpi int) *PopplerRasterizer {
	if dpi <= 0 {
		dpi = 300
	}
	return &PopplerRasterizer{DPI: dpi}
}

// RasterizePages shells out to pdftoppm and collects the generated page
// images in page order.
func (r *PopplerRasterizer) RasterizePages(pdfPath string) ([][]byte, error) {
	outDir, err := os.MkdirTemp("", "cfopack-pages-*")
	if err != nil {
		return nil, fmt.Errorf("error creating page image directory: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(outDir); err != nil {
			log.WithError(err).Warn("Failed to remove page image directory")
		}
	}()

	prefix := filepath.Join(outDir, "page")
	cmd := exec.Command("pdftoppm", "-png", "-r", fmt.Sprint(r.DPI), pdfPath, prefix) // #nosec G204 -- dpi is an int, paths are internal
	if output, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("error running pdftoppm: %w (output: %s)", err, output)
	}

	// pdftoppm names files page-1.png, page-2.png, ... zero-padded for
	// larger documents; lexical order of equally padded names is page
	// order.
	names, err := filepath.Glob(prefix + "-*.png")
	if err != nil {
		return nil, fmt.Errorf("error listing page images: %w", err)
	}
	sort.Strings(names)

	pages := make([][]byte, 0, len(names))
	for _, name := range names {
		img, err := os.ReadFile(name) // #nosec G304 -- names come from our own temp dir
		if err != nil {
			return nil, fmt.Errorf("error reading page image %s: %w", name, err)
		}
		pages = append(pages, img)
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("pdftoppm produced no page images for %s", pdfPath)
	}

	return pages, nil
}

// MockRasterizer implements PageRasterizer for tests.
type MockRasterizer struct {
	Pages [][]byte
	Err   error
}

// RasterizePages returns the predefined pages or error.
func (m *MockRasterizer) RasterizePages(string) ([][]byte, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Pages, nil
}
