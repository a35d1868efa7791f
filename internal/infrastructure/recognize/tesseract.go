package recognize

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/arunima26vats/CosmicStack/internal/core/domain"
)

// TesseractEngine shells out to a locally installed tesseract binary.
type TesseractEngine struct {
	binary string
}

func NewTesseractEngine(binary string) *TesseractEngine {
	if binary == "" {
		binary = "tesseract"
	}
	return &TesseractEngine{binary: binary}
}

func (t *TesseractEngine) ExtractText(ctx context.Context, filename string, data []byte) (string, error) {
	path, err := exec.LookPath(t.binary)
	if err != nil {
		return "", domain.WrapError(domain.ErrEngineUnavailable, "locate ocr binary", err)
	}

	dir, err := os.MkdirTemp("", "cosmicstack-ocr-*")
	if err != nil {
		return "", domain.WrapError(domain.ErrRecognitionFailed, "prepare ocr workspace", err)
	}
	defer os.RemoveAll(dir)

	// Tesseract sniffs the format from the file, but an accurate
	// extension avoids its noisier fallback paths.
	input := filepath.Join(dir, "input"+strings.ToLower(filepath.Ext(filename)))
	if err := os.WriteFile(input, data, 0o600); err != nil {
		return "", domain.WrapError(domain.ErrRecognitionFailed, "stage ocr input", err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, input, "stdout")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", domain.WrapError(domain.ErrEngineUnavailable, "run ocr binary", ctx.Err())
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}
		return "", domain.WrapError(domain.ErrRecognitionFailed, "run ocr binary", err)
	}
	return strings.TrimSpace(stdout.String()), nil
}
