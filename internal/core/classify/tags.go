package classify

import (
	"path/filepath"
	"strings"

	"github.com/arunima26vats/CosmicStack/internal/core/ports"
)

const (
	// aspectThreshold separates portrait/landscape from roughly square frames.
	aspectThreshold = 1.2
	// channelThreshold is the mean channel intensity above which a color tag fires.
	channelThreshold = 180.0
)

// TagFailure marks an artifact whose bytes could not be interpreted as an
// image. The category matcher treats it as a sentinel only when it leads the
// tag sequence.
const TagFailure = "file_error"

// OCRBaseTag always leads tags derived from recognized text.
const OCRBaseTag = "ocr_document"

var (
	sentinelTags        = []string{TagFailure, "unsupported"}
	genericDocumentTags = []string{"document", "general"}

	imageExtensions = map[string]struct{}{
		".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".bmp": {}, ".webp": {},
	}
)

// Keyword sets scanned against recognized text. One hit anywhere in the text
// appends the set's tag.
var (
	financialKeywords = []string{"invoice", "bill", "receipt", "payable", "balance"}
	piiKeywords       = []string{"name", "address", "phone", "email", "ssn"}
	codeKeywords      = []string{"class", "import", "def", "public static", "int main", "function", "while", "for"}
)

// Tagger derives descriptive tags for media artifacts.
type Tagger struct {
	inspector ports.ImageInspector
}

func NewTagger(inspector ports.ImageInspector) *Tagger {
	return &Tagger{inspector: inspector}
}

// MediaTags is total over all byte inputs: an image that fails to decode
// yields the sentinel pair instead of an error, and non-image extensions get
// the generic document pair without touching the bytes.
func (t *Tagger) MediaTags(filename string, data []byte) []string {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := imageExtensions[ext]; !ok {
		return append([]string(nil), genericDocumentTags...)
	}

	info, err := t.inspector.Inspect(data)
	if err != nil || info.Width <= 0 || info.Height <= 0 {
		return append([]string(nil), sentinelTags...)
	}

	var tags []string
	if float64(info.Height)/float64(info.Width) > aspectThreshold {
		tags = append(tags, "portrait")
	}
	if float64(info.Width)/float64(info.Height) > aspectThreshold {
		tags = append(tags, "landscape")
	}
	if info.MeanRed > channelThreshold {
		tags = append(tags, "red_heavy")
	}
	if info.MeanGreen > channelThreshold {
		tags = append(tags, "green")
	}
	if info.MeanBlue > channelThreshold {
		tags = append(tags, "blue")
	}
	return tags
}

// TextTags derives tags from recognized text. The base tag leads so
// OCR-derived artifacts stay identifiable downstream.
func TextTags(text string) []string {
	tags := []string{OCRBaseTag}
	lower := strings.ToLower(text)
	if containsAny(lower, financialKeywords) {
		tags = append(tags, "financial_document")
	}
	if containsAny(lower, piiKeywords) {
		tags = append(tags, "potential_pii")
	}
	if containsAny(lower, codeKeywords) {
		tags = append(tags, "code_snippet")
	}
	return tags
}

// CommentTags tokenizes a caller-supplied metadata comment so a human can
// steer or augment automatic tagging.
func CommentTags(comment string) []string {
	return strings.Fields(strings.ToLower(comment))
}

// GenericDocumentTags returns a copy of the pair applied to non-image media.
func GenericDocumentTags() []string {
	return append([]string(nil), genericDocumentTags...)
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
