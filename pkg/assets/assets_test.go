package assets

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/cbodonnell/memoryline/pkg/catalog"
	"github.com/cbodonnell/memoryline/pkg/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestResolver_ImagePath(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "images", "apple.png"), 4, 4)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "images", "folder.png"), 0o755))
	r := NewResolver(dir)

	path, err := r.ImagePath("apple.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "images", "apple.png"), path)

	tests := []struct {
		name  string
		value string
	}{
		{name: "missing", value: "pear.png"},
		{name: "empty", value: ""},
		{name: "parent", value: "../secret.png"},
		{name: "directory", value: "folder.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.ImagePath(memory.Value(tt.value))
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestResolver_SoundPath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sounds"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sounds", "bell.wav"), []byte("RIFF"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sounds", "bell.flac"), []byte("fLaC"), 0o644))
	r := NewResolver(dir)

	path, format, err := r.SoundPath("bell.wav")
	require.NoError(t, err)
	assert.Equal(t, SoundFormatWAV, format)
	assert.Equal(t, filepath.Join(dir, "sounds", "bell.wav"), path)

	_, _, err = r.SoundPath("bell.flac")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, _, err = r.SoundPath("gong.wav")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSoundFormatOf(t *testing.T) {
	tests := []struct {
		path    string
		want    SoundFormat
		wantErr bool
	}{
		{path: "a.wav", want: SoundFormatWAV},
		{path: "a.MP3", want: SoundFormatMP3},
		{path: "a.ogg", want: SoundFormatVorbis},
		{path: "a.oga", want: SoundFormatVorbis},
		{path: "a.aiff", wantErr: true},
		{path: "noext", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := SoundFormatOf(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wide.png")
	writePNG(t, path, 200, 100)

	img, err := DecodeImage(path, 50, 50)
	require.NoError(t, err)
	assert.Equal(t, 50, img.Bounds().Dx())
	assert.Equal(t, 25, img.Bounds().Dy())

	img, err = DecodeImage(path, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())

	bad := filepath.Join(dir, "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("not an image"), 0o644))
	_, err = DecodeImage(bad, 10, 10)
	assert.Error(t, err)

	_, err = DecodeImage(filepath.Join(dir, "missing.png"), 10, 10)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestBundledAssetsCoverDefaultCatalog(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)
	r := NewResolver(filepath.Join("..", "..", "assets"))

	images, err := c.Category(catalog.CategoryImages)
	require.NoError(t, err)
	for _, v := range images.Values {
		path, err := r.ImagePath(v)
		require.NoError(t, err, "image %s", v)
		_, err = DecodeImage(path, 32, 32)
		assert.NoError(t, err, "image %s", v)
	}

	sounds, err := c.Category(catalog.CategorySounds)
	require.NoError(t, err)
	for _, v := range sounds.Values {
		_, format, err := r.SoundPath(v)
		require.NoError(t, err, "sound %s", v)
		assert.Equal(t, SoundFormatWAV, format)
	}
}
