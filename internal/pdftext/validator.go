package pdftext

import (
	"fmt"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Validator performs upfront checks on an uploaded file before extraction
// is attempted. CheckFile rejects what the caller must see as a bad request
// (missing file, wrong extension, oversized); CheckContent is advisory and
// reports whether the bytes parse as a PDF at all.
type Validator struct {
	maxFileSize int64
}

// NewValidator creates a validator with the given file size cap.
func NewValidator(maxFileSize int64) *Validator {
	return &Validator{maxFileSize: maxFileSize}
}

// CheckFile validates file presence, extension and size.
func (v *Validator) CheckFile(path string) error {
	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}

	if fileInfo.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}
	if !strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return fmt.Errorf("file is not a PDF: %s", path)
	}
	if fileInfo.Size() > v.maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)", fileInfo.Size(), v.maxFileSize)
	}

	return nil
}

// CheckContent parses the file with relaxed validation and reports whether
// it is structurally a PDF. A failure here does not reject the upload; the
// extraction pipeline degrades to its stub on unreadable content.
func (v *Validator) CheckContent(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cannot open file: %w", err)
	}
	defer file.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(file, conf)
	if err != nil {
		return fmt.Errorf("failed to read PDF context: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return fmt.Errorf("failed to ensure page count: %w", err)
	}

	return nil
}
