package bootstrap

import (
	"context"
	"fmt"

	"github.com/arunima26vats/CosmicStack/internal/config"
	"github.com/arunima26vats/CosmicStack/internal/core/classify"
	"github.com/arunima26vats/CosmicStack/internal/core/ports"
	"github.com/arunima26vats/CosmicStack/internal/core/usecase"
	"github.com/arunima26vats/CosmicStack/internal/infrastructure/compress/gzipc"
	"github.com/arunima26vats/CosmicStack/internal/infrastructure/imaging"
	"github.com/arunima26vats/CosmicStack/internal/infrastructure/recognize"
	"github.com/arunima26vats/CosmicStack/internal/infrastructure/resilience"
	"github.com/arunima26vats/CosmicStack/internal/infrastructure/storage/localfs"
	"github.com/arunima26vats/CosmicStack/internal/infrastructure/storage/memstore"
	"github.com/arunima26vats/CosmicStack/internal/infrastructure/storage/s3"
	"github.com/arunima26vats/CosmicStack/internal/observability/metrics"
)

type App struct {
	Config config.Config

	Registry *classify.Registry
	Store    ports.ObjectStore
	Metrics  *metrics.ServerMetrics

	MediaUC      ports.MediaRouter
	StructuredUC ports.StructuredRouter
	ReportUC     ports.StorageReporter
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	store, err := newStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	seeds, err := loadSeeds(cfg)
	if err != nil {
		return nil, err
	}
	registry := classify.NewRegistry(seeds)

	recognizer := recognize.New(
		newImageEngine(cfg),
		resilience.NewExecutor(resilience.RecognitionPolicy()),
		cfg.OCRTimeout(),
	)
	codec := gzipc.New(cfg.CompressionLevel)
	tagger := classify.NewTagger(imaging.NewInspector())

	return &App{
		Config:       cfg,
		Registry:     registry,
		Store:        store,
		Metrics:      metrics.NewServerMetrics("api"),
		MediaUC:      usecase.NewMediaRouteUseCase(registry, tagger, recognizer, codec, store),
		StructuredUC: usecase.NewStructuredRouteUseCase(codec, store),
		ReportUC:     usecase.NewStorageReportUseCase(store, cfg.StorageCapacityBytes, cfg.RecentFilesLimit),
	}, nil
}

func newStore(ctx context.Context, cfg config.Config) (ports.ObjectStore, error) {
	switch cfg.StorageBackend {
	case "s3":
		store, err := s3.New(ctx, s3.Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			UseSSL:    cfg.S3UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("init s3 storage: %w", err)
		}
		return store, nil
	case "memory":
		return memstore.New(), nil
	case "local", "":
		store, err := localfs.New(cfg.StoragePath)
		if err != nil {
			return nil, fmt.Errorf("init local storage: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

func loadSeeds(cfg config.Config) ([]classify.Seed, error) {
	if cfg.CategorySeedPath == "" {
		return classify.BuiltinSeeds(), nil
	}

	loaded, err := config.LoadCategorySeeds(cfg.CategorySeedPath)
	if err != nil {
		return nil, fmt.Errorf("load category seeds: %w", err)
	}
	seeds := make([]classify.Seed, 0, len(loaded))
	for _, seed := range loaded {
		seeds = append(seeds, classify.Seed{Name: seed.Name, Keywords: seed.Keywords})
	}
	return seeds, nil
}

func newImageEngine(cfg config.Config) recognize.Engine {
	if cfg.OCREngine == "remote" {
		return recognize.NewRemoteEngine(cfg.RemoteOCRURL, cfg.OCRTimeout())
	}
	return recognize.NewTesseractEngine(cfg.TesseractBinary)
}
