// Package preview loads preview images and reports their display geometry.
package preview

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"boundsel/internal/geom"
)

// Image is a loaded preview.
type Image struct {
	Source  string
	Natural image.Point
	Shape   geom.PixelShape
	Display image.Image
}

// DefaultMaxBytes caps the size of a downloaded preview.
const DefaultMaxBytes = 32 << 20

// Loader fetches previews from files, http(s) URLs and data URIs.
type Loader struct {
	Width    int
	MaxBytes int64
	Client   *http.Client
}

// NewLoader returns a loader scaling previews to width pixels.
func NewLoader(width int, timeout time.Duration, maxBytes int64) *Loader {
	if width <= 0 {
		width = geom.DisplayWidth
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Loader{Width: width, MaxBytes: maxBytes, Client: &http.Client{Timeout: timeout}}
}

// Load decodes src and scales it to the loader width.
func (l *Loader) Load(ctx context.Context, src string) (Image, error) {
	if err := ctx.Err(); err != nil {
		return Image{}, err
	}
	img, err := l.decode(ctx, src)
	if err != nil {
		return Image{}, err
	}
	b := img.Bounds()
	shape, ok := geom.ShapeFor(b.Dx(), b.Dy(), l.Width)
	if !ok {
		return Image{}, fmt.Errorf("preview: empty image %s", Describe(src))
	}
	return Image{
		Source:  src,
		Natural: image.Pt(b.Dx(), b.Dy()),
		Shape:   shape,
		Display: imaging.Resize(img, shape.Width, shape.Height, imaging.Lanczos),
	}, nil
}

func (l *Loader) decode(ctx context.Context, src string) (image.Image, error) {
	switch {
	case strings.HasPrefix(src, "data:"):
		data, err := decodeDataURI(src)
		if err != nil {
			return nil, err
		}
		return decodeBytes(data)
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		return l.fetch(ctx, src)
	default:
		return openFile(src)
	}
}

func (l *Loader) fetch(ctx context.Context, src string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("preview: failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "boundsel/1.0")
	resp, err := l.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("preview: failed to download image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("preview: failed to download image: HTTP %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return nil, fmt.Errorf("preview: URL does not point to an image (Content-Type: %s)", ct)
	}
	if resp.ContentLength > l.MaxBytes {
		return nil, fmt.Errorf("preview: image too large (%d bytes, limit %d)", resp.ContentLength, l.MaxBytes)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, l.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("preview: failed to read image data: %w", err)
	}
	if int64(len(data)) > l.MaxBytes {
		return nil, fmt.Errorf("preview: image too large (limit %d bytes)", l.MaxBytes)
	}
	return decodeBytes(data)
}

func openFile(path string) (image.Image, error) {
	if img, err := imaging.Open(path, imaging.AutoOrientation(true)); err == nil {
		return img, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, err := decodeBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, path)
	}
	return img, nil
}

func decodeBytes(data []byte) (image.Image, error) {
	if img, _, err := image.Decode(bytes.NewReader(data)); err == nil {
		return img, nil
	}
	if img, err := webp.Decode(bytes.NewReader(data)); err == nil {
		return img, nil
	}
	return nil, fmt.Errorf("preview: unknown or unsupported format")
}

func decodeDataURI(src string) ([]byte, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(src, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("preview: malformed data URI")
	}
	if strings.HasSuffix(meta, ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("preview: data URI: %w", err)
		}
		return data, nil
	}
	s, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("preview: data URI: %w", err)
	}
	return []byte(s), nil
}

// Describe shortens data URIs for messages.
func Describe(src string) string {
	if strings.HasPrefix(src, "data:") && len(src) > 32 {
		return src[:32] + "…"
	}
	return src
}

// IsImageFile reports whether name has a supported image extension.
func IsImageFile(name string) bool {
	low := strings.ToLower(name)
	for _, ext := range []string{".png", ".jpg", ".jpeg", ".gif", ".webp"} {
		if strings.HasSuffix(low, ext) {
			return true
		}
	}
	return false
}
