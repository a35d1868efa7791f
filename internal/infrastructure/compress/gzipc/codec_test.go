package gzipc

import (
	"bytes"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
)

func TestRoundTrip(t *testing.T) {
	payloads := [][]byte{
		nil,
		[]byte("short"),
		[]byte(strings.Repeat("repetitive content ", 500)),
		{0x00, 0xff, 0x10, 0x80},
	}

	codec := New(gzip.DefaultCompression)
	for _, payload := range payloads {
		compressed, err := codec.Compress(payload)
		if err != nil {
			t.Fatalf("Compress() error = %v", err)
		}
		restored, err := codec.Decompress(compressed)
		if err != nil {
			t.Fatalf("Decompress() error = %v", err)
		}
		if !bytes.Equal(restored, payload) {
			t.Fatalf("round trip mismatch: got %d bytes, want %d", len(restored), len(payload))
		}
	}
}

func TestCompressShrinksRedundantInput(t *testing.T) {
	codec := New(gzip.BestCompression)
	payload := []byte(strings.Repeat("aaaaaaaaaa", 1000))

	compressed, err := codec.Compress(payload)
	if err != nil {
		t.Fatalf("Compress() error = %v", err)
	}
	if len(compressed) >= len(payload) {
		t.Fatalf("compressed %d bytes to %d, expected reduction", len(payload), len(compressed))
	}
}

func TestNewClampsInvalidLevel(t *testing.T) {
	codec := New(42)
	if _, err := codec.Compress([]byte("x")); err != nil {
		t.Fatalf("Compress() error = %v, invalid level must fall back", err)
	}
}

func TestDecompressRejectsGarbage(t *testing.T) {
	codec := New(gzip.DefaultCompression)
	if _, err := codec.Decompress([]byte("definitely not gzip")); err == nil {
		t.Fatal("expected error for non-gzip input")
	}
}

func TestSuffix(t *testing.T) {
	if got := New(0).Suffix(); got != ".gz" {
		t.Fatalf("Suffix() = %q", got)
	}
}
