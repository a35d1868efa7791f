package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/arunima26vats/CosmicStack/internal/core/classify"
	"github.com/arunima26vats/CosmicStack/internal/core/domain"
	"github.com/arunima26vats/CosmicStack/internal/core/ports"
)

// structuredCategory is the single storage category for structured payloads;
// shape and schema vary per submission, placement does not.
const structuredCategory = "structured_json"

type StructuredRouteUseCase struct {
	codec ports.Compressor
	store ports.ObjectStore
	now   func() time.Time
}

func NewStructuredRouteUseCase(codec ports.Compressor, store ports.ObjectStore) *StructuredRouteUseCase {
	return &StructuredRouteUseCase{
		codec: codec,
		store: store,
		now:   time.Now,
	}
}

// Route validates and classifies a structured payload, synthesizing a table
// schema when the shape verdict is relational.
func (uc *StructuredRouteUseCase) Route(ctx context.Context, sub domain.StructuredSubmission) (*domain.RoutingDecision, error) {
	payload, err := domain.ParseJSON(sub.Payload)
	if err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	shape := classify.ClassifyShape(payload, sub.Comment)
	entity := classify.EntityName(payload, now)

	decision := newDecision(domain.ArtifactStructured, structuredCategory, entity+".json", now)
	decision.Entity = entity
	decision.Shape = &shape

	steps := []string{fmt.Sprintf("Classified payload shape as %s.", shape.Describe())}
	if shape.Shape == domain.ShapeRelational {
		schema := classify.SynthesizeSchema(payload)
		decision.Schema = &schema
		decision.SchemaText = schema.DDL
		steps = append(steps, fmt.Sprintf("Synthesized schema %s for entity %s.", schema.TableName, entity))
	} else {
		decision.SchemaText = "No fixed schema required (document-oriented storage)."
		steps = append(steps, fmt.Sprintf("Designated document collection %s.", entity))
	}

	return finalizeDecision(ctx, uc.codec, uc.store, decision, prettyJSON(sub.Payload), sub.Compress, steps)
}

// prettyJSON re-indents the submitted bytes without reordering members. The
// input has already parsed, so indentation failure cannot realistically
// happen; the raw bytes are the fallback.
func prettyJSON(raw []byte) []byte {
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "    "); err != nil {
		return raw
	}
	return out.Bytes()
}
