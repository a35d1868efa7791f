package usecase

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/arunima26vats/CosmicStack/internal/core/domain"
	"github.com/arunima26vats/CosmicStack/internal/core/ports"
)

const (
	defaultCapacityBytes = 100 << 30
	defaultRecentLimit   = 6
)

// fileTypeLabels maps lowercase extensions to the dashboard's display labels.
var fileTypeLabels = map[string]string{
	"pdf":  "Document",
	"txt":  "Document",
	"jpg":  "Image",
	"jpeg": "Image",
	"png":  "Image",
	"gif":  "Image",
	"mp4":  "Video",
	"mov":  "Video",
	"mp3":  "Audio",
	"wav":  "Audio",
	"zip":  "Archive",
	"gz":   "Archive",
	"json": "JSON",
}

// StorageReportUseCase answers dashboard queries by rescanning the object
// store on every call; no index is kept.
type StorageReportUseCase struct {
	store    ports.ObjectStore
	capacity int64
	recent   int
	now      func() time.Time
}

func NewStorageReportUseCase(store ports.ObjectStore, capacityBytes int64, recentLimit int) *StorageReportUseCase {
	if capacityBytes <= 0 {
		capacityBytes = defaultCapacityBytes
	}
	if recentLimit <= 0 {
		recentLimit = defaultRecentLimit
	}
	return &StorageReportUseCase{
		store:    store,
		capacity: capacityBytes,
		recent:   recentLimit,
		now:      time.Now,
	}
}

func (uc *StorageReportUseCase) Stats(ctx context.Context) (*domain.StorageStats, error) {
	objects, err := uc.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan storage: %w", err)
	}

	var used int64
	var last time.Time
	for _, obj := range objects {
		used += obj.Size
		if obj.ModTime.After(last) {
			last = obj.ModTime
		}
	}

	lastUpload := "N/A"
	if !last.IsZero() {
		lastUpload = timeAgo(uc.now(), last)
	}

	return &domain.StorageStats{
		StorageUsed:    formatSize(used),
		StorageTotal:   formatSize(uc.capacity),
		FilesProcessed: len(objects),
		LastUpload:     lastUpload,
	}, nil
}

func (uc *StorageReportUseCase) RecentFiles(ctx context.Context) ([]domain.FileSummary, error) {
	objects, err := uc.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan storage: %w", err)
	}

	sort.Slice(objects, func(i, j int) bool {
		return objects[i].ModTime.After(objects[j].ModTime)
	})
	if len(objects) > uc.recent {
		objects = objects[:uc.recent]
	}

	summaries := make([]domain.FileSummary, 0, len(objects))
	for _, obj := range objects {
		name := path.Base(obj.Key)
		summaries = append(summaries, domain.FileSummary{
			Name:      name,
			Size:      formatSize(obj.Size),
			Type:      typeLabel(name),
			Category:  categoryOf(obj.Key),
			Timestamp: obj.ModTime,
		})
	}
	return summaries, nil
}

func categoryOf(key string) string {
	dir := path.Dir(key)
	if dir == "." || dir == "/" {
		return ""
	}
	return dir
}

func typeLabel(name string) string {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(name)), ".")
	if label, ok := fileTypeLabels[ext]; ok {
		return label
	}
	return "Other"
}

// formatSize renders a byte count the way the dashboard displays it.
func formatSize(n int64) string {
	switch {
	case n < 1<<10:
		return fmt.Sprintf("%d B", n)
	case n < 1<<20:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	case n < 1<<30:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	default:
		return fmt.Sprintf("%.1f GB", float64(n)/(1<<30))
	}
}

// timeAgo renders a coarse relative timestamp for the dashboard.
func timeAgo(now, t time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return pluralize(int(diff.Minutes()), "minute")
	case diff < 24*time.Hour:
		return pluralize(int(diff.Hours()), "hour")
	default:
		return pluralize(int(diff.Hours()/24), "day")
	}
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
