package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os/exec"
	"strings"
	"time"
)

const (
	thumbWidth  = 300
	thumbHeight = 200

	// frame capture budget before falling back to a placeholder
	captureTimeout = 3 * time.Second
)

var placeholderPalette = []string{
	"#667eea", "#764ba2", "#f093fb", "#f5576c", "#4facfe", "#00f2fe",
}

// Thumbnailer captures a representative frame from a stored media file and
// renders it as a 300x200 data-URI image with a play glyph overlay.
type Thumbnailer struct {
	binary string
}

func NewThumbnailer() *Thumbnailer {
	return &Thumbnailer{binary: "ffmpeg"}
}

// Generate returns a thumbnail for the media at location. The seek point is
// min(duration*0.25, 2s). If the frame capture does not complete within its
// budget, a placeholder keyed on the format tag is returned together with a
// wrapped ErrThumbnailFailure so the caller can log the downgrade.
func (t *Thumbnailer) Generate(ctx context.Context, location string, duration int, format string) (string, error) {
	seek := float64(duration) * 0.25
	if seek > 2 {
		seek = 2
	}

	captureCtx, cancel := context.WithTimeout(ctx, captureTimeout)
	defer cancel()

	cmd := exec.CommandContext(captureCtx, t.binary,
		"-ss", fmt.Sprintf("%.2f", seek),
		"-i", location,
		"-frames:v", "1",
		"-vf", fmt.Sprintf("scale=%d:%d", thumbWidth, thumbHeight),
		"-f", "image2pipe",
		"-vcodec", "mjpeg",
		"-",
	)

	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return PlaceholderThumbnail(format), fmt.Errorf("%w: %v", ErrThumbnailFailure, err)
	}

	frame, err := jpeg.Decode(&out)
	if err != nil {
		return PlaceholderThumbnail(format), fmt.Errorf("%w: %v", ErrThumbnailFailure, err)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, thumbWidth, thumbHeight))
	for y := 0; y < thumbHeight; y++ {
		for x := 0; x < thumbWidth; x++ {
			canvas.Set(x, y, frame.At(x, y))
		}
	}
	drawPlayGlyph(canvas)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, canvas, &jpeg.Options{Quality: 80}); err != nil {
		return PlaceholderThumbnail(format), fmt.Errorf("%w: %v", ErrThumbnailFailure, err)
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// PlaceholderThumbnail renders a gradient card with a play glyph. The gradient
// color is keyed on the format tag so the same extension always produces the
// same card.
func PlaceholderThumbnail(format string) string {
	base := parseHexColor(placeholderPalette[paletteIndex(format)])
	light := lighten(base, 30)

	img := image.NewRGBA(image.Rect(0, 0, thumbWidth, thumbHeight))
	for y := 0; y < thumbHeight; y++ {
		for x := 0; x < thumbWidth; x++ {
			t := (float64(x)/thumbWidth + float64(y)/thumbHeight) / 2
			img.Set(x, y, blend(base, light, t))
		}
	}
	drawPlayGlyph(img)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return ""
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func paletteIndex(format string) int {
	sum := 0
	for _, r := range strings.ToLower(format) {
		sum += int(r)
	}
	return sum % len(placeholderPalette)
}

// drawPlayGlyph fills a white rightward triangle centered on the card.
func drawPlayGlyph(img *image.RGBA) {
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	for x := 120; x <= 180; x++ {
		half := 30 * float64(180-x) / 60
		for y := 100 - int(half); y <= 100+int(half); y++ {
			img.Set(x, y, white)
		}
	}
}

func parseHexColor(s string) color.RGBA {
	var r, g, b uint8
	fmt.Sscanf(strings.TrimPrefix(s, "#"), "%02x%02x%02x", &r, &g, &b)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func lighten(c color.RGBA, percent int) color.RGBA {
	amt := int(2.55 * float64(percent))
	return color.RGBA{
		R: clamp8(int(c.R) + amt),
		G: clamp8(int(c.G) + amt),
		B: clamp8(int(c.B) + amt),
		A: 255,
	}
}

func blend(a, b color.RGBA, t float64) color.RGBA {
	return color.RGBA{
		R: clamp8(int(float64(a.R)*(1-t) + float64(b.R)*t)),
		G: clamp8(int(float64(a.G)*(1-t) + float64(b.G)*t)),
		B: clamp8(int(float64(a.B)*(1-t) + float64(b.B)*t)),
		A: 255,
	}
}

func clamp8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
