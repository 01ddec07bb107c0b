package helper

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestConvertToWebP_DownscalesAndEncodes(t *testing.T) {
	out, err := ConvertToWebP(bytes.NewReader(pngBytes(t, 400, 200)), WebPOptions{MaxW: 100, MaxH: 100, Quality: 70})
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	require.Equal(t, 100, cfg.Width)
	require.Equal(t, 50, cfg.Height)
}

func TestConvertToWebP_RejectsText(t *testing.T) {
	_, err := ConvertToWebP(strings.NewReader("definitely not an image"), DefaultWebPOptions)
	require.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestDiskImageStore_PutDelete(t *testing.T) {
	dir := t.TempDir()
	store := NewDiskImageStore(dir, "/uploads/")

	url, err := store.Put(context.Background(), "posts/a.webp", []byte("x"), "image/webp")
	require.NoError(t, err)
	require.Equal(t, "/uploads/posts/a.webp", url)

	_, err = os.Stat(filepath.Join(dir, "posts", "a.webp"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(context.Background(), "posts/a.webp"))
	require.NoError(t, store.Delete(context.Background(), "posts/a.webp"))
}

func TestBuildObjectKey(t *testing.T) {
	k := BuildObjectKey("/posts/")
	require.True(t, strings.HasPrefix(k, "posts/"))
	require.True(t, strings.HasSuffix(k, ".webp"))
}
