package assets

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/cbodonnell/memoryline/pkg/memory"
	"github.com/nfnt/resize"
	_ "golang.org/x/image/webp"
)

const (
	imagesDir = "images"
	soundsDir = "sounds"
)

// SoundFormat is the container format of a sound file.
type SoundFormat string

const (
	SoundFormatWAV    SoundFormat = "wav"
	SoundFormatMP3    SoundFormat = "mp3"
	SoundFormatVorbis SoundFormat = "ogg"
)

var (
	ErrNotFound          = errors.New("asset not found")
	ErrUnsupportedFormat = errors.New("unsupported asset format")
)

// Resolver maps catalog values to files under an assets directory laid out as
// <dir>/images/<value> and <dir>/sounds/<value>.
type Resolver struct {
	dir string
}

func NewResolver(dir string) *Resolver {
	return &Resolver{dir: dir}
}

func (r *Resolver) Dir() string {
	return r.dir
}

// ImagePath returns the path of an image value, or ErrNotFound.
func (r *Resolver) ImagePath(value memory.Value) (string, error) {
	return r.lookup(imagesDir, value)
}

// SoundPath returns the path of a sound value and its format.
func (r *Resolver) SoundPath(value memory.Value) (string, SoundFormat, error) {
	path, err := r.lookup(soundsDir, value)
	if err != nil {
		return "", "", err
	}
	format, err := SoundFormatOf(path)
	if err != nil {
		return "", "", err
	}
	return path, format, nil
}

func (r *Resolver) lookup(sub string, value memory.Value) (string, error) {
	name := string(value)
	if name == "" || filepath.IsAbs(name) || strings.Contains(name, "..") {
		return "", fmt.Errorf("%w: invalid name %q", ErrNotFound, name)
	}
	path := filepath.Join(r.dir, sub, filepath.FromSlash(name))
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrNotFound, path)
	}
	return path, nil
}

// SoundFormatOf picks the decoder for a sound file by extension.
func SoundFormatOf(path string) (SoundFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return SoundFormatWAV, nil
	case ".mp3":
		return SoundFormatMP3, nil
	case ".ogg", ".oga":
		return SoundFormatVorbis, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// DecodeImage decodes a png, jpeg, gif or webp file. Images larger than
// maxWidth by maxHeight are scaled down keeping the aspect ratio; zero
// disables scaling.
func DecodeImage(path string, maxWidth, maxHeight uint) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	if maxWidth == 0 || maxHeight == 0 {
		return img, nil
	}
	return resize.Thumbnail(maxWidth, maxHeight, img, resize.Lanczos3), nil
}
