package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func testImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	return img
}

func pngBytes(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return buf.Bytes()
}

func jpegBytes(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("jpeg encode: %v", err)
	}
	return buf.Bytes()
}

func TestDetectType(t *testing.T) {
	t.Parallel()

	img := testImage(8, 8)

	if typ, err := DetectType(pngBytes(t, img)); err != nil || typ != "image/png" {
		t.Fatalf("png: %v %q", err, typ)
	}
	if typ, err := DetectType(jpegBytes(t, img)); err != nil || typ != "image/jpeg" {
		t.Fatalf("jpeg: %v %q", err, typ)
	}
	if _, err := DetectType([]byte("GIF89a notreally gif data")); err == nil {
		t.Fatal("expected unsupported type error")
	}
	if _, err := DetectType([]byte{0x89}); err == nil {
		t.Fatal("expected short-data error")
	}
}

func TestDetectType_IgnoresClaimedExtension(t *testing.T) {
	t.Parallel()

	// png bytes, whatever the upload called itself
	data := pngBytes(t, testImage(4, 4))
	typ, err := DetectType(data)
	if err != nil || typ != "image/png" {
		t.Fatalf("detect: %v %q", err, typ)
	}
}

func TestResize_ExactDimensions(t *testing.T) {
	t.Parallel()

	got := Resize(testImage(640, 480), 250, 250)
	b := got.Bounds()
	if b.Dx() != 250 || b.Dy() != 250 {
		t.Fatalf("unexpected bounds %v", b)
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	t.Parallel()

	src := testImage(16, 16)

	for _, typ := range []string{"image/png", "image/jpeg"} {
		data, err := Encode(src, typ)
		if err != nil {
			t.Fatalf("%s encode: %v", typ, err)
		}
		img, err := Decode(data, typ)
		if err != nil {
			t.Fatalf("%s decode: %v", typ, err)
		}
		if img.Bounds() != src.Bounds() {
			t.Fatalf("%s: bounds changed: %v", typ, img.Bounds())
		}
	}
}

func TestDecode_Garbage(t *testing.T) {
	t.Parallel()

	if _, err := Decode([]byte("not an image"), "image/png"); err == nil {
		t.Fatal("expected decode error")
	}
	if _, err := Decode(pngBytes(t, testImage(4, 4)), "image/bmp"); err == nil {
		t.Fatal("expected unsupported type error")
	}
}
