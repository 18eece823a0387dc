package wizard

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngImage(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestLogoResizedToSquarePNG(t *testing.T) {
	p := NewLogoProcessor(0, 32)
	logo, err := p.Process("logo.PNG", pngImage(t, 100, 50))
	require.NoError(t, err)
	assert.Equal(t, "logo.png", logo.Name)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(logo.Content))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 32, cfg.Width)
	assert.Equal(t, 32, cfg.Height)
}

func TestLogoRejected(t *testing.T) {
	p := NewLogoProcessor(10, 0)

	_, err := p.Process("logo.bmp", []byte("x"))
	assert.Error(t, err)

	_, err = p.Process("logo.png", make([]byte, 11))
	assert.Error(t, err)

	_, err = NewLogoProcessor(0, 0).Process("logo.jpg", []byte("not an image"))
	assert.Error(t, err)
}

func TestSVGPassedThrough(t *testing.T) {
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg"/>`)
	logo, err := NewLogoProcessor(0, 0).Process("dir/logo.svg", svg)
	require.NoError(t, err)
	assert.Equal(t, "logo.svg", logo.Name)
	assert.Equal(t, svg, logo.Content)
}
