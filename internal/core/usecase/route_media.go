package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/arunima26vats/CosmicStack/internal/core/classify"
	"github.com/arunima26vats/CosmicStack/internal/core/domain"
	"github.com/arunima26vats/CosmicStack/internal/core/ports"
)

// ocrMarker in the metadata comment redirects a media submission to the
// text-recognition path: only the extracted text artifact is persisted, not
// the original bytes.
const ocrMarker = "ocr"

const ocrArtifactSuffix = "_ocr.txt"

type MediaRouteUseCase struct {
	registry   *classify.Registry
	tagger     *classify.Tagger
	recognizer ports.TextRecognizer
	codec      ports.Compressor
	store      ports.ObjectStore
	now        func() time.Time
}

func NewMediaRouteUseCase(
	registry *classify.Registry,
	tagger *classify.Tagger,
	recognizer ports.TextRecognizer,
	codec ports.Compressor,
	store ports.ObjectStore,
) *MediaRouteUseCase {
	return &MediaRouteUseCase{
		registry:   registry,
		tagger:     tagger,
		recognizer: recognizer,
		codec:      codec,
		store:      store,
		now:        time.Now,
	}
}

// Route carries a media submission from raw bytes to a placement decision.
// Tag extraction is best-effort: unreadable bytes degrade to the fallback
// category instead of failing the submission.
func (uc *MediaRouteUseCase) Route(ctx context.Context, sub domain.MediaSubmission) (*domain.RoutingDecision, error) {
	name := sanitizeFilename(sub.Filename)

	if strings.Contains(strings.ToLower(sub.Comment), ocrMarker) {
		return uc.routeRecognizedText(ctx, name, sub)
	}

	tags := uc.tagger.MediaTags(name, sub.Data)
	steps := []string{fmt.Sprintf("Derived tags %v.", tags)}
	if len(tags) > 0 && tags[0] == classify.TagFailure {
		steps[0] = "Artifact bytes could not be interpreted; applied failure tags."
	}
	tags, steps = appendCommentTags(tags, steps, sub.Comment)

	category := uc.registry.Match(tags)
	steps = append(steps, fmt.Sprintf("Matched category %q.", category))

	decision := newDecision(domain.ArtifactMedia, category, name, uc.now().UTC())
	decision.Tags = tags

	return finalizeDecision(ctx, uc.codec, uc.store, decision, sub.Data, sub.Compress, steps)
}

// routeRecognizedText is the OCR redirect: a distinct terminal path that
// persists only the extracted text, never the original media bytes.
func (uc *MediaRouteUseCase) routeRecognizedText(ctx context.Context, name string, sub domain.MediaSubmission) (*domain.RoutingDecision, error) {
	text, err := uc.recognizer.Recognize(ctx, name, sub.Data)
	if err != nil {
		return nil, err
	}

	tags := classify.TextTags(text)
	tags = append(tags, classify.GenericDocumentTags()...)
	steps := []string{
		"Comment requested text recognition.",
		fmt.Sprintf("Recognized %d characters of text.", len(text)),
		fmt.Sprintf("Derived tags %v.", tags),
	}
	tags, steps = appendCommentTags(tags, steps, sub.Comment)

	category := uc.registry.Match(tags)
	steps = append(steps, fmt.Sprintf("Matched category %q.", category))

	textName := strings.TrimSuffix(name, filepath.Ext(name)) + ocrArtifactSuffix
	decision := newDecision(domain.ArtifactMedia, category, textName, uc.now().UTC())
	decision.Tags = tags
	decision.Transforms = append(decision.Transforms, transformOCR)

	return finalizeDecision(ctx, uc.codec, uc.store, decision, []byte(text), sub.Compress, steps)
}

func appendCommentTags(tags, steps []string, comment string) ([]string, []string) {
	extra := classify.CommentTags(comment)
	if len(extra) == 0 {
		return tags, steps
	}
	return append(tags, extra...), append(steps, fmt.Sprintf("Added comment tokens %v.", extra))
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" || base == "." {
		return "artifact.bin"
	}
	return base
}
