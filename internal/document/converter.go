package document

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"booklingo/internal/apperr"
	"booklingo/internal/contextutil"
)

const (
	ExtPDF  = ".pdf"
	ExtEPUB = ".epub"
)

// IsSupported reports whether the file name has a convertible extension.
func IsSupported(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ExtPDF, ExtEPUB:
		return true
	}
	return false
}

// Converter extracts text and metadata from PDF and EPUB files.
type Converter struct {
	epub *epubReader
}

// NewConverter creates a new converter.
func NewConverter() *Converter {
	return &Converter{epub: newEPUBReader()}
}

// Convert extracts the text of the book at path. The extension is checked before
// the file is opened; parser failures are reported as conversion errors.
func (c *Converter) Convert(ctx context.Context, path string) (*RawDocument, error) {
	const op = "document.Convert"
	logger := contextutil.LoggerFromContext(ctx)

	ext := strings.ToLower(filepath.Ext(path))
	var (
		doc *RawDocument
		err error
	)
	switch ext {
	case ExtPDF:
		doc, err = readPDF(path)
	case ExtEPUB:
		doc, err = c.epub.read(path)
	default:
		return nil, apperr.Errorf(apperr.KindUnsupportedFormat, op, "unsupported file extension %q", ext)
	}
	if err != nil {
		return nil, apperr.New(apperr.KindConversion, op, fmt.Errorf("failed to convert %s: %w", filepath.Base(path), err))
	}

	doc.IsImageOnly = utf8.RuneCountInString(strings.TrimSpace(doc.Text)) < imageOnlyThreshold

	logger.Debug("document converted",
		"format", strings.TrimPrefix(ext, "."),
		"chars", len(doc.Text),
		"pages", doc.Metadata.PageCount,
		"image_only", doc.IsImageOnly,
	)
	return doc, nil
}
