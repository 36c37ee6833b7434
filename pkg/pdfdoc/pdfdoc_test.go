package pdfdoc_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"pdfviewer/pkg/pdfdoc"
	"pdfviewer/pkg/pdfdoc/pdfdoctest"
)

func TestInspectPlainDocument(t *testing.T) {
	info, err := pdfdoc.Inspect(pdfdoctest.Blank(3))
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	if diff := cmp.Diff(pdfdoc.Info{Encrypted: false, Pages: 3}, info); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestInspectRejectsGarbage(t *testing.T) {
	if _, err := pdfdoc.Inspect([]byte("not a pdf")); err == nil {
		t.Fatalf("expected error for garbage input")
	}
}

func TestEncryptRequiresPassword(t *testing.T) {
	_, err := pdfdoc.Encrypt(pdfdoctest.Blank(1), "")
	if !errors.Is(err, pdfdoc.ErrPasswordRequired) {
		t.Fatalf("expected ErrPasswordRequired, got %v", err)
	}
}

func TestEncryptedDocumentNeedsPassword(t *testing.T) {
	enc, err := pdfdoc.Encrypt(pdfdoctest.Blank(2), "abc123")
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}
	if _, err := pdfdoc.Inspect(enc); !errors.Is(err, pdfdoc.ErrNeedsPassword) {
		t.Fatalf("expected ErrNeedsPassword, got %v", err)
	}
	if _, err := pdfdoc.Decrypt(enc, "wrong"); !errors.Is(err, pdfdoc.ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
	if _, err := pdfdoc.Decrypt(enc, ""); !errors.Is(err, pdfdoc.ErrPasswordRequired) {
		t.Fatalf("expected ErrPasswordRequired, got %v", err)
	}

	plain, err := pdfdoc.Decrypt(enc, "abc123")
	if err != nil {
		t.Fatalf("decrypt failed: %v", err)
	}
	info, err := pdfdoc.Inspect(plain)
	if err != nil {
		t.Fatalf("inspect decrypted failed: %v", err)
	}
	if diff := cmp.Diff(pdfdoc.Info{Encrypted: false, Pages: 2}, info); diff != "" {
		t.Fatalf("decrypted info mismatch (-want +got):\n%s", diff)
	}
}

func TestEncryptRefusesProtectedSource(t *testing.T) {
	enc, err := pdfdoc.Encrypt(pdfdoctest.Blank(1), "first")
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}
	if _, err := pdfdoc.Encrypt(enc, "second"); err == nil {
		t.Fatalf("expected encrypting a protected document to fail")
	}
}

func TestReencryptWithNewPassword(t *testing.T) {
	enc, err := pdfdoc.Encrypt(pdfdoctest.Blank(3), "oldpass")
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}
	plain, err := pdfdoc.Decrypt(enc, "oldpass")
	if err != nil {
		t.Fatalf("decrypt failed: %v", err)
	}
	changed, err := pdfdoc.Encrypt(plain, "newpass")
	if err != nil {
		t.Fatalf("re-encrypt failed: %v", err)
	}
	if _, err := pdfdoc.Decrypt(changed, "oldpass"); !errors.Is(err, pdfdoc.ErrInvalidPassword) {
		t.Fatalf("old password still opens the document: %v", err)
	}
	if _, err := pdfdoc.Decrypt(changed, "newpass"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}

func TestCodecOpen(t *testing.T) {
	raster := &pdfdoctest.Rasterizer{}
	codec := pdfdoc.NewCodec(raster)
	plain := pdfdoctest.Blank(3)

	pages, err := codec.Open(plain, "")
	if err != nil {
		t.Fatalf("open plain failed: %v", err)
	}
	if len(pages) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(pages))
	}

	enc, err := codec.Encrypt(plain, "abc123")
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}
	if _, err := codec.Open(enc, ""); !errors.Is(err, pdfdoc.ErrNeedsPassword) {
		t.Fatalf("expected ErrNeedsPassword, got %v", err)
	}
	if _, err := codec.Open(enc, "wrong"); !errors.Is(err, pdfdoc.ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
	pages, err = codec.Open(enc, "abc123")
	if err != nil {
		t.Fatalf("open with password failed: %v", err)
	}
	if len(pages) != 3 {
		t.Fatalf("expected 3 pages after unlock, got %d", len(pages))
	}
}

func TestCodecOpenWithoutRasterizer(t *testing.T) {
	var codec pdfdoc.Codec
	if _, err := codec.Open(pdfdoctest.Blank(1), ""); !errors.Is(err, pdfdoc.ErrNoRasterizer) {
		t.Fatalf("expected ErrNoRasterizer, got %v", err)
	}
}

func TestWriteFileLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.pdf")
	if err := pdfdoc.WriteFile(path, []byte("first")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := pdfdoc.WriteFile(path, []byte("second")); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "second" {
		t.Fatalf("unexpected content: %q", got)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}
}
