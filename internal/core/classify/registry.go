package classify

import (
	"sort"
	"sync"
)

const (
	// FallbackCategory receives artifacts whose tags matched nothing and
	// could not seed a new category.
	FallbackCategory = "unclassified"

	autoCategoryPrefix = "auto_"
)

// Seed declares one category for registry construction.
type Seed struct {
	Name     string
	Keywords []string
}

// BuiltinSeeds returns the default category set. Registration order matters:
// on tied scores the earlier category wins.
func BuiltinSeeds() []Seed {
	return []Seed{
		{Name: "photos_of_people", Keywords: []string{"face", "portrait", "selfie", "person"}},
		{Name: "nature_and_landscapes", Keywords: []string{"green", "blue", "sky", "water", "landscape"}},
		{Name: "financial_records", Keywords: []string{"financial_document", "invoice", "receipt", "bill", "payable"}},
		{Name: "code_and_snippets", Keywords: []string{"code_snippet", "code", "script", "source"}},
		{Name: "sensitive_documents", Keywords: []string{"potential_pii", "ssn", "passport", "confidential"}},
		{Name: "scanned_documents", Keywords: []string{"ocr_document", "scan", "handwriting"}},
		{Name: "general_documents", Keywords: []string{"document", "text", "notes"}},
	}
}

type category struct {
	name     string
	keywords map[string]struct{}
}

// Registry is the process-wide set of known categories. Categories keep
// insertion order, which makes tie-breaks deterministic. A single mutex
// covers the read-then-maybe-insert in Match so concurrent submissions with
// the same novel tag create exactly one category.
type Registry struct {
	mu     sync.Mutex
	cats   []*category
	byName map[string]*category
}

func NewRegistry(seeds []Seed) *Registry {
	r := &Registry{byName: make(map[string]*category)}
	for _, s := range seeds {
		r.insert(s.Name, s.Keywords...)
	}
	return r
}

// Add registers a category or grows an existing category's keyword set.
// Keyword sets never shrink.
func (r *Registry) Add(name string, keywords ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.insert(name, keywords...)
}

func (r *Registry) insert(name string, keywords ...string) {
	cat, ok := r.byName[name]
	if !ok {
		cat = &category{name: name, keywords: make(map[string]struct{}, len(keywords))}
		r.cats = append(r.cats, cat)
		r.byName[name] = cat
	}
	for _, kw := range keywords {
		cat.keywords[kw] = struct{}{}
	}
}

// Match scores the tag sequence against every category and returns the name
// with the highest overlap count. With no overlap anywhere, a new category
// named after the first tag is registered and returned, unless the sequence
// is empty or led by the failure sentinel, which falls back to
// FallbackCategory. The sentinel check looks at the first position only; a
// sentinel appearing later does not suppress category creation.
func (r *Registry) Match(tags []string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	best := ""
	bestCount := 0
	for _, cat := range r.cats {
		count := 0
		for _, tag := range tags {
			if _, ok := cat.keywords[tag]; ok {
				count++
			}
		}
		if count > bestCount {
			bestCount = count
			best = cat.name
		}
	}
	if bestCount > 0 {
		return best
	}

	if len(tags) == 0 || tags[0] == TagFailure {
		return FallbackCategory
	}

	name := autoCategoryPrefix + tags[0]
	if _, ok := r.byName[name]; !ok {
		r.insert(name, tags[0])
	}
	return name
}

// Len reports the number of registered categories.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cats)
}

// Names returns category names in registration order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, len(r.cats))
	for i, cat := range r.cats {
		names[i] = cat.name
	}
	return names
}

// Keywords returns a category's keyword set sorted alphabetically, or nil for
// an unknown category.
func (r *Registry) Keywords(name string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	cat, ok := r.byName[name]
	if !ok {
		return nil
	}
	keywords := make([]string, 0, len(cat.keywords))
	for kw := range cat.keywords {
		keywords = append(keywords, kw)
	}
	sort.Strings(keywords)
	return keywords
}
