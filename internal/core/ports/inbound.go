package ports

import (
	"context"

	"github.com/arunima26vats/CosmicStack/internal/core/domain"
)

// MediaRouter is the inbound contract for routing binary media artifacts.
type MediaRouter interface {
	Route(ctx context.Context, sub domain.MediaSubmission) (*domain.RoutingDecision, error)
}

// StructuredRouter is the inbound contract for routing structured payloads.
type StructuredRouter interface {
	Route(ctx context.Context, sub domain.StructuredSubmission) (*domain.RoutingDecision, error)
}

// StorageReporter serves dashboard views derived from storage scans.
type StorageReporter interface {
	Stats(ctx context.Context) (*domain.StorageStats, error)
	RecentFiles(ctx context.Context) ([]domain.FileSummary, error)
}
