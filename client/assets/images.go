package assets

import (
	"github.com/cbodonnell/memoryline/pkg/assets"
	"github.com/cbodonnell/memoryline/pkg/log"
	"github.com/cbodonnell/memoryline/pkg/memory"
	"github.com/hajimehoshi/ebiten/v2"
)

// ImageLoader turns image values into textures, decoding each file once.
// Values that fail to load are remembered as missing and rendered as text.
type ImageLoader struct {
	resolver  *assets.Resolver
	maxWidth  uint
	maxHeight uint
	cache     map[memory.Value]*ebiten.Image
}

var _ memory.Preloader = &ImageLoader{}

func NewImageLoader(resolver *assets.Resolver, maxWidth, maxHeight uint) *ImageLoader {
	return &ImageLoader{
		resolver:  resolver,
		maxWidth:  maxWidth,
		maxHeight: maxHeight,
		cache:     make(map[memory.Value]*ebiten.Image),
	}
}

// Image returns the texture for value, or nil when it cannot be loaded.
func (l *ImageLoader) Image(value memory.Value) *ebiten.Image {
	if img, ok := l.cache[value]; ok {
		return img
	}
	img := l.load(value)
	l.cache[value] = img
	return img
}

// Preload decodes every value up front so the first reveal does not stall a frame.
func (l *ImageLoader) Preload(values []memory.Value) {
	for _, v := range values {
		l.Image(v)
	}
}

func (l *ImageLoader) load(value memory.Value) *ebiten.Image {
	path, err := l.resolver.ImagePath(value)
	if err != nil {
		log.Debug("Image %s unavailable: %v", value, err)
		return nil
	}
	img, err := assets.DecodeImage(path, l.maxWidth, l.maxHeight)
	if err != nil {
		log.Debug("Failed to load image %s: %v", value, err)
		return nil
	}
	return ebiten.NewImageFromImage(img)
}
