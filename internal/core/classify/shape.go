package classify

import (
	"strings"

	"github.com/arunima26vats/CosmicStack/internal/core/domain"
)

// ClassifyShape decides between relational and document-oriented storage for
// a structured payload. An explicit comment override always beats the
// structural heuristic; "relational" is checked first, so a comment carrying
// both markers forces relational.
func ClassifyShape(payload domain.Value, comment string) domain.ShapeDecision {
	lower := strings.ToLower(comment)
	if strings.Contains(lower, "relational") {
		return domain.ShapeDecision{Shape: domain.ShapeRelational, Reason: domain.ShapeForced}
	}
	if strings.Contains(lower, "document") || strings.Contains(lower, "flexible") {
		return domain.ShapeDecision{Shape: domain.ShapeDocument, Reason: domain.ShapeForced}
	}

	if isNested(payload) {
		return domain.ShapeDecision{Shape: domain.ShapeDocument, Reason: domain.ShapeHeuristic}
	}
	return domain.ShapeDecision{Shape: domain.ShapeRelational, Reason: domain.ShapeHeuristic}
}

// isNested reports whether the payload carries nested structure. For a batch
// only the first element is examined; an array whose first element is itself
// an array always counts as nested.
func isNested(v domain.Value) bool {
	switch v.Kind {
	case domain.KindObject:
		for _, m := range v.Members {
			if m.Value.Kind == domain.KindObject || m.Value.Kind == domain.KindArray {
				return true
			}
		}
	case domain.KindArray:
		if len(v.Items) == 0 {
			return false
		}
		switch v.Items[0].Kind {
		case domain.KindObject:
			return isNested(v.Items[0])
		case domain.KindArray:
			return true
		}
	}
	return false
}
