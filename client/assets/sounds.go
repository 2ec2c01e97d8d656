package assets

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/cbodonnell/memoryline/pkg/assets"
	"github.com/cbodonnell/memoryline/pkg/log"
	"github.com/cbodonnell/memoryline/pkg/memory"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// Speaker plays sound values through an ebiten audio context. Decoded PCM is
// cached per value. Missing or undecodable sounds are skipped.
type Speaker struct {
	context  *audio.Context
	resolver *assets.Resolver
	// pcm holds decoded samples, nil for sounds that failed to load.
	pcm map[memory.Value][]byte
	// players keeps the latest player alive until playback ends.
	players map[memory.Value]*audio.Player
}

var (
	_ memory.Speaker   = &Speaker{}
	_ memory.Preloader = &Speaker{}
	_ memory.Stopper   = &Speaker{}
)

func NewSpeaker(context *audio.Context, resolver *assets.Resolver) *Speaker {
	return &Speaker{
		context:  context,
		resolver: resolver,
		pcm:      make(map[memory.Value][]byte),
		players:  make(map[memory.Value]*audio.Player),
	}
}

// Play starts playback of value and returns immediately. A replay of the
// same value restarts it.
func (s *Speaker) Play(value memory.Value) {
	if s == nil || s.context == nil {
		return
	}
	pcm := s.load(value)
	if pcm == nil {
		return
	}
	s.releaseFinished()
	if p, ok := s.players[value]; ok {
		if err := p.Close(); err != nil {
			log.Debug("Failed to close player for %s: %v", value, err)
		}
	}
	p := s.context.NewPlayerFromBytes(pcm)
	p.Play()
	s.players[value] = p
}

// Preload decodes the values so the first reveal does not stall a frame.
func (s *Speaker) Preload(values []memory.Value) {
	if s == nil || s.context == nil {
		return
	}
	for _, v := range values {
		s.load(v)
	}
}

func (s *Speaker) load(value memory.Value) []byte {
	pcm, ok := s.pcm[value]
	if !ok {
		var err error
		pcm, err = s.decode(value)
		if err != nil {
			log.Debug("Sound %s unavailable: %v", value, err)
		}
		s.pcm[value] = pcm
	}
	return pcm
}

// releaseFinished closes the players that reached the end of their sound.
func (s *Speaker) releaseFinished() {
	for value, p := range s.players {
		if p.IsPlaying() {
			continue
		}
		if err := p.Close(); err != nil {
			log.Debug("Failed to close player for %s: %v", value, err)
		}
		delete(s.players, value)
	}
}

// Stop halts every sound that is still playing.
func (s *Speaker) Stop() {
	for value, p := range s.players {
		if err := p.Close(); err != nil {
			log.Debug("Failed to close player for %s: %v", value, err)
		}
		delete(s.players, value)
	}
}

func (s *Speaker) decode(value memory.Value) ([]byte, error) {
	path, format, err := s.resolver.SoundPath(value)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sound: %w", err)
	}

	sampleRate := s.context.SampleRate()
	var stream io.Reader
	switch format {
	case assets.SoundFormatWAV:
		stream, err = wav.DecodeWithSampleRate(sampleRate, bytes.NewReader(data))
	case assets.SoundFormatMP3:
		stream, err = mp3.DecodeWithSampleRate(sampleRate, bytes.NewReader(data))
	case assets.SoundFormatVorbis:
		stream, err = vorbis.DecodeWithSampleRate(sampleRate, bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("%w: %s", assets.ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to read decoded %s: %w", path, err)
	}
	return pcm, nil
}
