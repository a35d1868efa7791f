package recognize

import (
	"context"
	"errors"

	"github.com/arunima26vats/CosmicStack/internal/core/domain"
	"github.com/arunima26vats/CosmicStack/internal/infrastructure/resilience"
)

func classifyRecognitionError(err error) resilience.ErrorClassification {
	if err == nil {
		return resilience.ErrorClassification{}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.ErrorClassification{
			Retryable:     false,
			RecordFailure: false,
		}
	}
	if resilience.IsCircuitOpen(err) {
		return resilience.ErrorClassification{
			Retryable:     true,
			RecordFailure: true,
		}
	}
	if domain.IsKind(err, domain.ErrEngineUnavailable) {
		return resilience.ErrorClassification{
			Retryable:     true,
			RecordFailure: true,
		}
	}
	if domain.IsKind(err, domain.ErrRecognitionFailed) {
		// The engine is healthy, the artifact is not. Retrying the
		// same bytes cannot help and must not degrade breaker state.
		return resilience.ErrorClassification{
			Retryable:     false,
			RecordFailure: false,
		}
	}

	return resilience.ErrorClassification{
		Retryable:     false,
		RecordFailure: true,
	}
}

func wrapRecognitionError(err error) error {
	if err == nil {
		return nil
	}
	if domain.IsKind(err, domain.ErrEngineUnavailable) || domain.IsKind(err, domain.ErrRecognitionFailed) {
		return err
	}
	if resilience.IsCircuitOpen(err) || errors.Is(err, context.DeadlineExceeded) {
		return domain.WrapError(domain.ErrEngineUnavailable, "recognize text", err)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return domain.WrapError(domain.ErrRecognitionFailed, "recognize text", err)
}
