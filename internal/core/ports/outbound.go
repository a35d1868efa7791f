package ports

import (
	"context"
	"io"

	"github.com/arunima26vats/CosmicStack/internal/core/domain"
)

// ObjectStore persists routed artifacts under category-qualified keys.
type ObjectStore interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	List(ctx context.Context) ([]domain.ObjectInfo, error)
}

// ImageInspector summarizes decodable image bytes for tag extraction.
type ImageInspector interface {
	Inspect(data []byte) (domain.ImageInfo, error)
}

// TextRecognizer extracts text from media bytes, by OCR or format-native
// parsing depending on the artifact.
type TextRecognizer interface {
	Recognize(ctx context.Context, filename string, data []byte) (string, error)
}

// Compressor is the byte transform applied when a submission asks for
// compression.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
	Suffix() string
}
