package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestFromBytesPlainTextPassthrough(t *testing.T) {
	text := "Senior engineer with React and Go experience"
	got, err := FromBytes(context.Background(), []byte(text), "text/plain; charset=utf-8", "resume.txt")
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if got != text {
		t.Fatalf("got %q, want passthrough", got)
	}
}

func TestFromBytesTxtExtensionWithoutMime(t *testing.T) {
	got, err := FromBytes(context.Background(), []byte("hello"), "application/octet-stream", "resume.txt")
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if got != "hello" {
		t.Fatalf("got %q", got)
	}
}

func TestFromBytesDocx(t *testing.T) {
	doc := `<?xml version="1.0"?><w:document xmlns:w="ns"><w:body><w:p><w:r><w:t>Senior engineer.</w:t></w:r></w:p><w:p><w:r><w:t>Worked with Go.</w:t></w:r></w:p></w:body></w:document>`
	data := buildDocx(t, doc)

	got, err := FromBytes(context.Background(), data, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", "resume.docx")
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if !strings.Contains(got, "Senior engineer.") || !strings.Contains(got, "Worked with Go.") {
		t.Fatalf("extracted text missing content: %q", got)
	}
	if !strings.Contains(got, "\n") {
		t.Fatalf("paragraph break not preserved: %q", got)
	}
}

func TestFromBytesZipDocxNormalizes(t *testing.T) {
	data := buildDocx(t, `<w:document><w:body><w:p><w:r><w:t>hi</w:t></w:r></w:p></w:body></w:document>`)

	if _, err := FromBytes(context.Background(), data, "application/zip", "resume.docx"); err != nil {
		t.Fatalf("expected docx to extract from zip mime, got error: %v", err)
	}
}

func TestFromBytesRealZipRejected(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("notes.txt")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	_, err = FromBytes(context.Background(), buf.Bytes(), "application/zip", "notes.zip")
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestFromBytesUnsupportedMime(t *testing.T) {
	_, err := FromBytes(context.Background(), []byte{0xff, 0xd8}, "image/jpeg", "photo.jpg")
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}
