package render

import (
	"bytes"
	"context"
	"testing"

	"github.com/matzehuels/featuremap/pkg/errors"
)

const tinySVG = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><rect width="10" height="10"/></svg>`

func TestToPDF(t *testing.T) {
	pdf, err := ToPDF([]byte(tinySVG))
	if !Available() {
		if !errors.Is(err, errors.ErrCodeUnsupported) {
			t.Fatalf("ToPDF() without %s error = %v, want UNSUPPORTED", Converter, err)
		}
		return
	}
	if err != nil {
		t.Fatalf("ToPDF: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("ToPDF() output does not start with %%PDF")
	}
}

func TestToPNG(t *testing.T) {
	if !Available() {
		t.Skip(Converter + " not installed")
	}
	png, err := ToPNG([]byte(tinySVG), 2)
	if err != nil {
		t.Fatalf("ToPNG: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("ToPNG() output is not a PNG")
	}
}

func TestConvertCancelled(t *testing.T) {
	if !Available() {
		t.Skip(Converter + " not installed")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Convert(ctx, []byte(tinySVG), "pdf", 1); err == nil {
		t.Error("Convert() with a cancelled context succeeded")
	}
}

func TestConvertMalformedInput(t *testing.T) {
	if !Available() {
		t.Skip(Converter + " not installed")
	}
	_, err := Convert(context.Background(), []byte("not svg"), "png", 1)
	if !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("Convert(garbage) error = %v, want INTERNAL_ERROR", err)
	}
}
