package usecase

import (
	"context"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/arunima26vats/CosmicStack/internal/core/classify"
	"github.com/arunima26vats/CosmicStack/internal/core/domain"
)

type inspectorFake struct {
	info domain.ImageInfo
	err  error
}

func (f *inspectorFake) Inspect(_ []byte) (domain.ImageInfo, error) {
	return f.info, f.err
}

type recognizerFake struct {
	text     string
	err      error
	filename string
	called   bool
}

func (f *recognizerFake) Recognize(_ context.Context, filename string, _ []byte) (string, error) {
	f.called = true
	f.filename = filename
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type codecFake struct {
	err error
}

func (f *codecFake) Compress(data []byte) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]byte("gz:"), data...), nil
}

func (f *codecFake) Decompress(data []byte) ([]byte, error) {
	return []byte(strings.TrimPrefix(string(data), "gz:")), nil
}

func (f *codecFake) Suffix() string { return ".gz" }

type storeFake struct {
	savedKey  string
	savedBody string
	saves     int
	err       error
}

func (f *storeFake) Save(_ context.Context, key string, data io.Reader) error {
	if f.err != nil {
		return f.err
	}
	raw, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	f.savedKey = key
	f.savedBody = string(raw)
	f.saves++
	return nil
}

func (f *storeFake) Open(context.Context, string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("")), nil
}

func (f *storeFake) List(context.Context) ([]domain.ObjectInfo, error) {
	return nil, errors.New("not implemented")
}

func newMediaUseCase(insp *inspectorFake, rec *recognizerFake, store *storeFake) (*MediaRouteUseCase, *classify.Registry) {
	registry := classify.NewRegistry(classify.BuiltinSeeds())
	uc := NewMediaRouteUseCase(registry, classify.NewTagger(insp), rec, &codecFake{}, store)
	return uc, registry
}

func TestMediaRouteImage(t *testing.T) {
	store := &storeFake{}
	uc, _ := newMediaUseCase(&inspectorFake{info: domain.ImageInfo{Width: 100, Height: 200, MeanGreen: 220}}, &recognizerFake{}, store)

	decision, err := uc.Route(context.Background(), domain.MediaSubmission{
		Filename: "photo.jpg",
		Data:     []byte("raw image bytes"),
	})
	if err != nil {
		t.Fatalf("Route() error = %v", err)
	}
	if decision.ID == "" {
		t.Fatal("expected decision id")
	}
	if decision.Kind != domain.ArtifactMedia {
		t.Fatalf("Kind = %q", decision.Kind)
	}
	if !reflect.DeepEqual(decision.Tags, []string{"portrait", "green"}) {
		t.Fatalf("Tags = %v", decision.Tags)
	}
	// portrait and green tie across two categories; the earlier seed wins.
	if decision.Category != "photos_of_people" {
		t.Fatalf("Category = %q", decision.Category)
	}
	if decision.StoragePath != "photos_of_people/photo.jpg" {
		t.Fatalf("StoragePath = %q", decision.StoragePath)
	}
	if len(decision.Transforms) != 0 {
		t.Fatalf("Transforms = %v, want none", decision.Transforms)
	}
	if store.savedKey != decision.StoragePath || store.savedBody != "raw image bytes" {
		t.Fatalf("stored %q at %q", store.savedBody, store.savedKey)
	}
	if !strings.Contains(decision.Narrative, `Matched category "photos_of_people".`) {
		t.Fatalf("Narrative = %q", decision.Narrative)
	}
}

func TestMediaRouteNonImageExtension(t *testing.T) {
	store := &storeFake{}
	uc, _ := newMediaUseCase(&inspectorFake{}, &recognizerFake{}, store)

	decision, err := uc.Route(context.Background(), domain.MediaSubmission{
		Filename: "report.pdf",
		Data:     []byte("%PDF-1.4"),
	})
	if err != nil {
		t.Fatalf("Route() error = %v", err)
	}
	if decision.Category != "general_documents" {
		t.Fatalf("Category = %q", decision.Category)
	}
	if !reflect.DeepEqual(decision.Tags, []string{"document", "general"}) {
		t.Fatalf("Tags = %v", decision.Tags)
	}
}

func TestMediaRouteUnreadableImageDegrades(t *testing.T) {
	store := &storeFake{}
	uc, registry := newMediaUseCase(&inspectorFake{err: errors.New("bad magic")}, &recognizerFake{}, store)
	before := registry.Len()

	decision, err := uc.Route(context.Background(), domain.MediaSubmission{
		Filename: "corrupt.png",
		Data:     []byte{0x00},
	})
	if err != nil {
		t.Fatalf("Route() error = %v, unreadable bytes must not fail the submission", err)
	}
	if decision.Category != classify.FallbackCategory {
		t.Fatalf("Category = %q, want %q", decision.Category, classify.FallbackCategory)
	}
	if registry.Len() != before {
		t.Fatalf("registry grew on sentinel tags")
	}
	if store.saves != 1 {
		t.Fatalf("saves = %d, artifact must still be placed", store.saves)
	}
	if !strings.Contains(decision.Narrative, "could not be interpreted") {
		t.Fatalf("Narrative = %q", decision.Narrative)
	}
}

func TestMediaRouteCommentSteersCategory(t *testing.T) {
	store := &storeFake{}
	uc, _ := newMediaUseCase(&inspectorFake{info: domain.ImageInfo{Width: 100, Height: 100}}, &recognizerFake{}, store)

	decision, err := uc.Route(context.Background(), domain.MediaSubmission{
		Filename: "scan.png",
		Data:     []byte("png bytes"),
		Comment:  "tax CONFIDENTIAL",
	})
	if err != nil {
		t.Fatalf("Route() error = %v", err)
	}
	if decision.Category != "sensitive_documents" {
		t.Fatalf("Category = %q", decision.Category)
	}
	if !reflect.DeepEqual(decision.Tags, []string{"tax", "confidential"}) {
		t.Fatalf("Tags = %v", decision.Tags)
	}
}

func TestMediaRouteCompression(t *testing.T) {
	store := &storeFake{}
	uc, _ := newMediaUseCase(&inspectorFake{info: domain.ImageInfo{Width: 100, Height: 100}}, &recognizerFake{}, store)

	decision, err := uc.Route(context.Background(), domain.MediaSubmission{
		Filename: "photo.jpg",
		Data:     []byte("bytes"),
		Compress: true,
	})
	if err != nil {
		t.Fatalf("Route() error = %v", err)
	}
	if decision.FileName != "photo.jpg.gz" {
		t.Fatalf("FileName = %q", decision.FileName)
	}
	if !strings.HasSuffix(decision.StoragePath, ".gz") {
		t.Fatalf("StoragePath = %q", decision.StoragePath)
	}
	if !reflect.DeepEqual(decision.Transforms, []string{"gzip"}) {
		t.Fatalf("Transforms = %v", decision.Transforms)
	}
	if store.savedBody != "gz:bytes" {
		t.Fatalf("stored body = %q, want encoded bytes", store.savedBody)
	}
}

func TestMediaRouteOCRRedirect(t *testing.T) {
	store := &storeFake{}
	rec := &recognizerFake{text: "INVOICE balance due"}
	uc, _ := newMediaUseCase(&inspectorFake{}, rec, store)

	decision, err := uc.Route(context.Background(), domain.MediaSubmission{
		Filename: "scan 1.jpg",
		Data:     []byte("jpeg bytes"),
		Comment:  "please run ocr",
	})
	if err != nil {
		t.Fatalf("Route() error = %v", err)
	}
	if rec.filename != "scan_1.jpg" {
		t.Fatalf("recognizer got filename %q, want sanitized name", rec.filename)
	}
	if decision.FileName != "scan_1_ocr.txt" {
		t.Fatalf("FileName = %q", decision.FileName)
	}
	if decision.Category != "financial_records" {
		t.Fatalf("Category = %q", decision.Category)
	}
	wantTags := []string{"ocr_document", "financial_document", "document", "general", "please", "run", "ocr"}
	if !reflect.DeepEqual(decision.Tags, wantTags) {
		t.Fatalf("Tags = %v, want %v", decision.Tags, wantTags)
	}
	if !reflect.DeepEqual(decision.Transforms, []string{"ocr_extract"}) {
		t.Fatalf("Transforms = %v", decision.Transforms)
	}
	// Only the extracted text is persisted on this path.
	if store.savedBody != "INVOICE balance due" {
		t.Fatalf("stored body = %q", store.savedBody)
	}
	if !strings.Contains(decision.Narrative, "Recognized 19 characters") {
		t.Fatalf("Narrative = %q", decision.Narrative)
	}
}

func TestMediaRouteOCREngineUnavailable(t *testing.T) {
	store := &storeFake{}
	rec := &recognizerFake{err: domain.WrapError(domain.ErrEngineUnavailable, "recognize text", errors.New("binary not found"))}
	uc, _ := newMediaUseCase(&inspectorFake{}, rec, store)

	decision, err := uc.Route(context.Background(), domain.MediaSubmission{
		Filename: "scan.jpg",
		Data:     []byte("jpeg bytes"),
		Comment:  "ocr",
	})
	if decision != nil {
		t.Fatalf("decision = %+v, want nil", decision)
	}
	if !domain.IsKind(err, domain.ErrEngineUnavailable) {
		t.Fatalf("error = %v, want engine unavailable kind", err)
	}
	if store.saves != 0 {
		t.Fatalf("saves = %d, nothing may be written on engine failure", store.saves)
	}
}

func TestMediaRoutePersistenceFailureReturnsDecision(t *testing.T) {
	store := &storeFake{err: errors.New("disk full")}
	uc, _ := newMediaUseCase(&inspectorFake{info: domain.ImageInfo{Width: 100, Height: 100}}, &recognizerFake{}, store)

	decision, err := uc.Route(context.Background(), domain.MediaSubmission{
		Filename: "photo.jpg",
		Data:     []byte("bytes"),
	})
	if !domain.IsKind(err, domain.ErrPersistenceFailed) {
		t.Fatalf("error = %v, want persistence failed kind", err)
	}
	if decision == nil {
		t.Fatal("decision must still describe what would have happened")
	}
	if decision.Category == "" || decision.StoragePath == "" {
		t.Fatalf("decision incomplete: %+v", decision)
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"my photo (1).png", "my_photo__1_.png"},
		{"../../etc/passwd", "passwd"},
		{"отчёт.pdf", "_____.pdf"},
		{"", "artifact.bin"},
		{"clean-name_01.jpeg", "clean-name_01.jpeg"},
	}
	for _, tc := range cases {
		if got := sanitizeFilename(tc.in); got != tc.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
