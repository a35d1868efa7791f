package recognize

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/arunima26vats/CosmicStack/internal/core/domain"
)

// PDFEngine extracts the embedded text layer of a PDF in-process.
// Scanned PDFs without a text layer yield an empty string.
type PDFEngine struct{}

func (PDFEngine) ExtractText(_ context.Context, _ string, data []byte) (text string, err error) {
	// The pdf package panics on some malformed documents instead of
	// returning an error.
	defer func() {
		if r := recover(); r != nil {
			err = domain.WrapError(domain.ErrRecognitionFailed, "parse pdf", fmt.Errorf("pdf reader panic: %v", r))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", domain.WrapError(domain.ErrRecognitionFailed, "parse pdf", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", domain.WrapError(domain.ErrRecognitionFailed, "extract pdf text", err)
	}

	var sb strings.Builder
	if _, err := io.Copy(&sb, plain); err != nil {
		return "", domain.WrapError(domain.ErrRecognitionFailed, "extract pdf text", err)
	}
	return strings.TrimSpace(sb.String()), nil
}
