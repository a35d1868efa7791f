package recognize

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/arunima26vats/CosmicStack/internal/core/domain"
)

// TextEngine passes already-textual artifacts through unchanged so an
// operator-requested extraction on a .txt or .csv upload still works.
type TextEngine struct{}

func (TextEngine) ExtractText(_ context.Context, filename string, data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", domain.WrapError(domain.ErrRecognitionFailed, "read text artifact", fmt.Errorf("binary payload in %s", filename))
	}
	return strings.TrimSpace(string(data)), nil
}
