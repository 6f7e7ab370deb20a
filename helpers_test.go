package metcolour

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// fillImage returns a w×h RGBA image coloured by f.
func fillImage(w, h int, f func(x, y int) color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetRGBA(x, y, f(x, y))
		}
	}
	return img
}

// reddishImage has every pixel clearly red-dominant but with enough variety
// for k-means to find several clusters.
func reddishImage() *image.RGBA {
	return fillImage(64, 64, func(x, y int) color.RGBA {
		return color.RGBA{R: uint8(180 + x%60), G: uint8(y % 50), B: uint8((x + y) % 40), A: 255}
	})
}

// greyImage is a greyscale gradient.
func greyImage() *image.RGBA {
	return fillImage(64, 64, func(x, y int) color.RGBA {
		v := uint8((x*4 + y) % 256)
		return color.RGBA{R: v, G: v, B: v, A: 255}
	})
}

// gradientImage brightens left to right, or right to left when reversed.
func gradientImage(reversed bool) *image.RGBA {
	return fillImage(64, 64, func(x, _ int) color.RGBA {
		v := uint8(x * 4)
		if reversed {
			v = 255 - v
		}
		return color.RGBA{R: v, G: v / 2, B: 30, A: 255}
	})
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

// newImageServer serves body as image/png on every path.
// The server is closed automatically via t.Cleanup.
func newImageServer(t *testing.T, body []byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// redirectTransport returns a RoundTripper that rewrites all requests to target.
type redirectTransport string

func (rt redirectTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req2 := req.Clone(req.Context())
	req2.URL.Scheme = "http"
	req2.URL.Host = strings.TrimPrefix(string(rt), "http://")
	return http.DefaultTransport.RoundTrip(req2)
}
