package usecase

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arunima26vats/CosmicStack/internal/core/domain"
	"github.com/arunima26vats/CosmicStack/internal/core/ports"
)

const (
	transformGzip = "gzip"
	transformOCR  = "ocr_extract"
)

func newDecision(kind domain.ArtifactKind, category, filename string, at time.Time) *domain.RoutingDecision {
	return &domain.RoutingDecision{
		ID:          uuid.NewString(),
		Kind:        kind,
		Category:    category,
		FileName:    filename,
		StoragePath: path.Join(category, filename),
		CreatedAt:   at,
	}
}

// compressArtifact encodes data and appends the codec suffix to the final
// name. It runs after categorization; the category and schema decisions are
// never revisited.
func compressArtifact(codec ports.Compressor, decision *domain.RoutingDecision, data []byte) ([]byte, error) {
	out, err := codec.Compress(data)
	if err != nil {
		return nil, fmt.Errorf("compress artifact: %w", err)
	}
	decision.FileName += codec.Suffix()
	decision.StoragePath += codec.Suffix()
	decision.Transforms = append(decision.Transforms, transformGzip)
	return out, nil
}

// persistArtifact writes the final bytes. On failure the caller still hands
// the decision back so the submitter can see what would have happened.
func persistArtifact(ctx context.Context, store ports.ObjectStore, decision *domain.RoutingDecision, data []byte) error {
	if err := store.Save(ctx, decision.StoragePath, bytes.NewReader(data)); err != nil {
		return domain.WrapError(domain.ErrPersistenceFailed, "save artifact", err)
	}
	return nil
}

// finalizeDecision applies the optional compression transform, seals the
// narrative, and persists the final bytes.
func finalizeDecision(ctx context.Context, codec ports.Compressor, store ports.ObjectStore, decision *domain.RoutingDecision, data []byte, compress bool, steps []string) (*domain.RoutingDecision, error) {
	if compress {
		var err error
		data, err = compressArtifact(codec, decision, data)
		if err != nil {
			return nil, err
		}
		steps = append(steps, "Compressed payload with gzip.")
	}

	steps = append(steps, fmt.Sprintf("Routing to %s.", decision.StoragePath))
	decision.Narrative = strings.Join(steps, " ")

	if err := persistArtifact(ctx, store, decision, data); err != nil {
		return decision, err
	}
	return decision, nil
}
