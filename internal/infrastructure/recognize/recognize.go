package recognize

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/arunima26vats/CosmicStack/internal/infrastructure/resilience"
)

const defaultTimeout = 30 * time.Second

// Engine extracts text from one artifact format family.
type Engine interface {
	ExtractText(ctx context.Context, filename string, data []byte) (string, error)
}

// Recognizer dispatches artifacts to a format-specific engine by file
// extension. Image recognition goes through the configured engine
// (local binary or remote service); PDF, spreadsheet and plain-text
// extraction are handled in-process. Every call runs under a shared
// timeout and a per-operation circuit breaker.
type Recognizer struct {
	images   Engine
	pdfs     Engine
	sheets   Engine
	texts    Engine
	executor *resilience.Executor
	timeout  time.Duration
}

func New(images Engine, executor *resilience.Executor, timeout time.Duration) *Recognizer {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Recognizer{
		images:   images,
		pdfs:     PDFEngine{},
		sheets:   SheetEngine{},
		texts:    TextEngine{},
		executor: executor,
		timeout:  timeout,
	}
}

func (r *Recognizer) Recognize(ctx context.Context, filename string, data []byte) (string, error) {
	engine, operation := r.route(filename)

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var text string
	call := func(ctx context.Context) error {
		extracted, err := engine.ExtractText(ctx, filename, data)
		if err != nil {
			return err
		}
		text = extracted
		return nil
	}

	var err error
	if r.executor != nil {
		err = r.executor.Execute(ctx, operation, call, classifyRecognitionError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return "", wrapRecognitionError(err)
	}
	return text, nil
}

func (r *Recognizer) route(filename string) (Engine, string) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return r.pdfs, "ocr.pdf"
	case ".xlsx", ".xlsm":
		return r.sheets, "ocr.sheet"
	case ".txt", ".csv", ".md", ".log":
		return r.texts, "ocr.text"
	default:
		return r.images, "ocr.image"
	}
}
