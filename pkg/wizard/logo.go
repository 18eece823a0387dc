package wizard

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/nfnt/resize"
	"golang.org/x/image/webp"

	apperrors "github.com/huanfeng/connhub-cli/internal/errors"
)

const (
	// DefaultLogoSize is the edge of the square PNG logos are resized to
	DefaultLogoSize = 144
	// DefaultMaxLogoBytes is the largest accepted logo upload
	DefaultMaxLogoBytes = 5 * 1024 * 1024
)

var logoExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true, ".svg": true,
}

// Logo is a processed application logo
type Logo struct {
	Name    string
	Content []byte
}

// LogoProcessor validates and normalizes logo uploads
type LogoProcessor struct {
	maxBytes int64
	size     uint
}

// NewLogoProcessor creates a processor. Zero values select the defaults.
func NewLogoProcessor(maxBytes int64, size uint) *LogoProcessor {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxLogoBytes
	}
	if size == 0 {
		size = DefaultLogoSize
	}
	return &LogoProcessor{maxBytes: maxBytes, size: size}
}

// Process checks the file type and size and resizes raster images to a
// square PNG. SVG files are passed through.
func (p *LogoProcessor) Process(name string, data []byte) (*Logo, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if !logoExtensions[ext] {
		return nil, apperrors.NewValidationError(apperrors.CodeValidationFailed,
			fmt.Sprintf("unsupported logo type %q", ext)).
			WithSuggestion("Use a PNG, JPEG, GIF, WebP or SVG image")
	}
	if int64(len(data)) > p.maxBytes {
		return nil, apperrors.NewValidationError(apperrors.CodeValidationFailed,
			fmt.Sprintf("logo is %s, the limit is %s", humanize.Bytes(uint64(len(data))), humanize.Bytes(uint64(p.maxBytes))))
	}
	if ext == ".svg" {
		return &Logo{Name: filepath.Base(name), Content: data}, nil
	}

	var img image.Image
	var err error
	if ext == ".webp" {
		img, err = webp.Decode(bytes.NewReader(data))
	} else {
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, apperrors.WrapError(err, apperrors.ErrorTypeParsing, apperrors.CodeValidationFailed, "failed to decode logo")
	}

	resized := resize.Resize(p.size, p.size, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := png.Encode(&buf, resized); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	return &Logo{Name: base + ".png", Content: buf.Bytes()}, nil
}
