package recognize

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/arunima26vats/CosmicStack/internal/core/domain"
	"github.com/arunima26vats/CosmicStack/internal/infrastructure/resilience"
)

type engineFake struct {
	text        string
	err         error
	calls       int
	gotFilename string
}

func (f *engineFake) ExtractText(_ context.Context, filename string, _ []byte) (string, error) {
	f.calls++
	f.gotFilename = filename
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func newRecognizer(images, pdfs, sheets, texts Engine) *Recognizer {
	return &Recognizer{
		images:   images,
		pdfs:     pdfs,
		sheets:   sheets,
		texts:    texts,
		executor: resilience.NewExecutor(resilience.RecognitionPolicy()),
		timeout:  time.Second,
	}
}

func TestRecognizeRoutesByExtension(t *testing.T) {
	cases := []struct {
		filename string
		want     string
	}{
		{"scan.PDF", "pdf"},
		{"ledger.xlsx", "sheet"},
		{"macro.xlsm", "sheet"},
		{"notes.txt", "text"},
		{"export.csv", "text"},
		{"photo.jpg", "image"},
		{"unknown.bin", "image"},
		{"no_extension", "image"},
	}
	for _, tc := range cases {
		images := &engineFake{text: "image"}
		rec := newRecognizer(images, &engineFake{text: "pdf"}, &engineFake{text: "sheet"}, &engineFake{text: "text"})

		got, err := rec.Recognize(context.Background(), tc.filename, []byte("payload"))
		if err != nil {
			t.Fatalf("Recognize(%s) error = %v", tc.filename, err)
		}
		if got != tc.want {
			t.Errorf("Recognize(%s) = %q, want %q", tc.filename, got, tc.want)
		}
	}
}

func TestRecognizePassesFilenameToEngine(t *testing.T) {
	images := &engineFake{text: "ok"}
	rec := newRecognizer(images, &engineFake{}, &engineFake{}, &engineFake{})

	if _, err := rec.Recognize(context.Background(), "scan_1.jpg", []byte{1}); err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}
	if images.gotFilename != "scan_1.jpg" {
		t.Errorf("engine filename = %q, want scan_1.jpg", images.gotFilename)
	}
}

func TestRecognizeOpensBreakerOnEngineOutage(t *testing.T) {
	images := &engineFake{err: domain.WrapError(domain.ErrEngineUnavailable, "call ocr service", errors.New("connection refused"))}
	rec := newRecognizer(images, &engineFake{}, &engineFake{}, &engineFake{})

	for i := 0; i < 5; i++ {
		if _, err := rec.Recognize(context.Background(), "photo.jpg", nil); !domain.IsKind(err, domain.ErrEngineUnavailable) {
			t.Fatalf("call %d: error = %v, want engine unavailable kind", i, err)
		}
	}
	if images.calls != 5 {
		t.Fatalf("engine calls = %d, want 5", images.calls)
	}

	_, err := rec.Recognize(context.Background(), "photo.jpg", nil)
	if !domain.IsKind(err, domain.ErrEngineUnavailable) {
		t.Fatalf("open-circuit error = %v, want engine unavailable kind", err)
	}
	if images.calls != 5 {
		t.Fatalf("engine invoked while circuit open: calls = %d", images.calls)
	}
}

func TestRecognizeBadInputDoesNotTripBreaker(t *testing.T) {
	images := &engineFake{err: domain.WrapError(domain.ErrRecognitionFailed, "run ocr binary", errors.New("unreadable scan"))}
	rec := newRecognizer(images, &engineFake{}, &engineFake{}, &engineFake{})

	for i := 0; i < 12; i++ {
		if _, err := rec.Recognize(context.Background(), "photo.jpg", nil); !domain.IsKind(err, domain.ErrRecognitionFailed) {
			t.Fatalf("call %d: error = %v, want recognition failed kind", i, err)
		}
	}
	if images.calls != 12 {
		t.Fatalf("engine calls = %d, want 12", images.calls)
	}
}

func TestTextEnginePassesThroughUTF8(t *testing.T) {
	got, err := TextEngine{}.ExtractText(context.Background(), "notes.txt", []byte("  hello world\n"))
	if err != nil {
		t.Fatalf("ExtractText() error = %v", err)
	}
	if got != "hello world" {
		t.Errorf("ExtractText() = %q, want %q", got, "hello world")
	}
}

func TestTextEngineRejectsBinary(t *testing.T) {
	_, err := TextEngine{}.ExtractText(context.Background(), "blob.txt", []byte{0xff, 0xfe, 0x00, 0x81})
	if !domain.IsKind(err, domain.ErrRecognitionFailed) {
		t.Fatalf("ExtractText() error = %v, want recognition failed kind", err)
	}
}

func TestPDFEngineRejectsGarbage(t *testing.T) {
	_, err := PDFEngine{}.ExtractText(context.Background(), "report.pdf", []byte("not a pdf at all"))
	if !domain.IsKind(err, domain.ErrRecognitionFailed) {
		t.Fatalf("ExtractText() error = %v, want recognition failed kind", err)
	}
}

func TestSheetEngineFlattensWorkbook(t *testing.T) {
	book := excelize.NewFile()
	defer book.Close()
	for ref, value := range map[string]string{"A1": "invoice", "B1": "total", "A2": "paper"} {
		if err := book.SetCellValue("Sheet1", ref, value); err != nil {
			t.Fatalf("SetCellValue(%s) error = %v", ref, err)
		}
	}
	buf, err := book.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer() error = %v", err)
	}

	got, err := SheetEngine{}.ExtractText(context.Background(), "ledger.xlsx", buf.Bytes())
	if err != nil {
		t.Fatalf("ExtractText() error = %v", err)
	}
	want := "invoice total\npaper"
	if got != want {
		t.Errorf("ExtractText() = %q, want %q", got, want)
	}
}

func TestSheetEngineRejectsGarbage(t *testing.T) {
	_, err := SheetEngine{}.ExtractText(context.Background(), "ledger.xlsx", []byte("junk"))
	if !domain.IsKind(err, domain.ErrRecognitionFailed) {
		t.Fatalf("ExtractText() error = %v, want recognition failed kind", err)
	}
}

func TestTesseractEngineMissingBinary(t *testing.T) {
	engine := NewTesseractEngine("cosmicstack-missing-ocr-binary")
	_, err := engine.ExtractText(context.Background(), "scan.png", []byte{1})
	if !domain.IsKind(err, domain.ErrEngineUnavailable) {
		t.Fatalf("ExtractText() error = %v, want engine unavailable kind", err)
	}
}

func TestRemoteEngineExtractsText(t *testing.T) {
	var gotPath, gotFilename string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		gotFilename, _ = payload["filename"].(string)
		if _, ok := payload["image"].(string); !ok {
			t.Fatalf("request missing image payload")
		}
		_, _ = w.Write([]byte(`{"text":" INVOICE 42 "}`))
	}))
	defer server.Close()

	engine := NewRemoteEngine(server.URL, time.Second)
	got, err := engine.ExtractText(context.Background(), "scan.png", []byte{1, 2, 3})
	if err != nil {
		t.Fatalf("ExtractText() error = %v", err)
	}
	if got != "INVOICE 42" {
		t.Errorf("ExtractText() = %q, want %q", got, "INVOICE 42")
	}
	if gotPath != "/v1/recognize" {
		t.Errorf("request path = %q, want /v1/recognize", gotPath)
	}
	if gotFilename != "scan.png" {
		t.Errorf("request filename = %q, want scan.png", gotFilename)
	}
}

func TestRemoteEngineStatusMapping(t *testing.T) {
	cases := []struct {
		status int
		kind   error
	}{
		{http.StatusInternalServerError, domain.ErrEngineUnavailable},
		{http.StatusBadGateway, domain.ErrEngineUnavailable},
		{http.StatusUnprocessableEntity, domain.ErrRecognitionFailed},
		{http.StatusBadRequest, domain.ErrRecognitionFailed},
	}
	for _, tc := range cases {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "engine says no", tc.status)
		}))
		engine := NewRemoteEngine(server.URL, time.Second)
		_, err := engine.ExtractText(context.Background(), "scan.png", nil)
		server.Close()

		if !domain.IsKind(err, tc.kind) {
			t.Errorf("status %d: error = %v, want kind %v", tc.status, err, tc.kind)
			continue
		}
		if !strings.Contains(err.Error(), "engine says no") {
			t.Errorf("status %d: expected response body in error, got %v", tc.status, err)
		}
	}
}

func TestRemoteEngineConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	engine := NewRemoteEngine(url, time.Second)
	_, err := engine.ExtractText(context.Background(), "scan.png", nil)
	if !domain.IsKind(err, domain.ErrEngineUnavailable) {
		t.Fatalf("ExtractText() error = %v, want engine unavailable kind", err)
	}
}
