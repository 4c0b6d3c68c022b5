package imagedata

import (
	"strings"
	"testing"
)

// pngHeader is enough of a PNG for content sniffing.
var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

func TestLoadSniffsMimeType(t *testing.T) {
	img := Load(pngHeader, "")
	if img == nil {
		t.Fatal("Load returned nil for non-empty data")
	}
	if img.MimeType != "image/png" {
		t.Errorf("MimeType = %q, want image/png", img.MimeType)
	}
}

func TestLoadKeepsSuppliedMimeType(t *testing.T) {
	img := Load([]byte("payload"), "image/jpeg")
	if img.MimeType != "image/jpeg" {
		t.Errorf("MimeType = %q, want image/jpeg", img.MimeType)
	}
}

func TestLoadEmptyDataReturnsNil(t *testing.T) {
	if img := Load(nil, "image/png"); img != nil {
		t.Errorf("Load(nil) = %v, want nil", img)
	}
}

func TestToDataURI(t *testing.T) {
	img := &Image{Data: []byte("abc"), MimeType: "image/png"}
	got := img.ToDataURI()
	if !strings.HasPrefix(got, "data:image/png;base64,") {
		t.Errorf("ToDataURI() = %q, missing data URI prefix", got)
	}
	if !strings.HasSuffix(got, "YWJj") {
		t.Errorf("ToDataURI() = %q, payload not base64 of data", got)
	}
}

func TestToDataURINilImage(t *testing.T) {
	var img *Image
	if got := img.ToDataURI(); got != "" {
		t.Errorf("nil image ToDataURI() = %q, want empty", got)
	}
}
