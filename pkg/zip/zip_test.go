package zip

import (
	"bytes"
	"io"
	"testing"

	"github.com/klauspost/compress/zip"
)

func TestArchiveAssets(t *testing.T) {
	data, err := ArchiveAssets([]Asset{
		{Filename: "image-1.jpg", MIME: "image/jpeg", Data: []byte("jpeg-bytes")},
		{Filename: "image-1.json", MIME: "application/json", Data: []byte(`{"id":1}`)},
	})
	if err != nil {
		t.Fatalf("ArchiveAssets: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if len(zr.File) != 2 {
		t.Fatalf("archive has %d files, want 2", len(zr.File))
	}
	want := map[string]string{"image-1.jpg": "jpeg-bytes", "image-1.json": `{"id":1}`}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		body, _ := io.ReadAll(rc)
		rc.Close()
		if string(body) != want[f.Name] {
			t.Fatalf("%s = %q, want %q", f.Name, body, want[f.Name])
		}
	}
}

func TestArchiveAssetsEmpty(t *testing.T) {
	data, err := ArchiveAssets(nil)
	if err != nil {
		t.Fatalf("ArchiveAssets(nil): %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil || len(zr.File) != 0 {
		t.Fatalf("empty archive = %v, %v", zr, err)
	}
}
