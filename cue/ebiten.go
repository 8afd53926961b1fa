package cue

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// SampleRate is the rate clips are resampled to.
const SampleRate = 44100

// EbitenPlayer plays wav clips through an ebiten audio context. Decoded
// clips are cached by name.
type EbitenPlayer struct {
	ctx *audio.Context

	mu      sync.Mutex
	decoded map[string][]byte
	volume  float64
}

// NewEbitenPlayer wraps ctx. Only one audio context may exist per process.
func NewEbitenPlayer(ctx *audio.Context, volume float64) *EbitenPlayer {
	return &EbitenPlayer{
		ctx:     ctx,
		decoded: make(map[string][]byte),
		volume:  volume,
	}
}

func (p *EbitenPlayer) Play(clip Clip) error {
	if p.ctx == nil {
		return ErrNoAudio
	}

	pcm, err := p.decode(clip)
	if err != nil {
		return err
	}

	p.mu.Lock()
	volume := p.volume
	p.mu.Unlock()

	player := p.ctx.NewPlayerFromBytes(pcm)
	player.SetVolume(volume)
	player.Play()
	return nil
}

// SetVolume changes the volume of clips started afterwards.
func (p *EbitenPlayer) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = v
}

func (p *EbitenPlayer) decode(clip Clip) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if pcm, ok := p.decoded[clip.Name]; ok {
		return pcm, nil
	}

	stream, err := wav.DecodeWithSampleRate(p.ctx.SampleRate(), bytes.NewReader(clip.Data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", clip.Name, err)
	}
	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", clip.Name, err)
	}

	p.decoded[clip.Name] = pcm
	return pcm, nil
}
