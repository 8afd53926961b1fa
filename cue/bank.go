// Package cue maps game actions to groups of sound clips and plays a random
// clip from the group whenever the action happens.
package cue

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// Action names a group of clips.
type Action string

const (
	PiecePlaced Action = "PiecePlaced"
	ClearLine   Action = "ClearLine"
	ReturnPiece Action = "ReturnPiece"
)

// Actions lists the actions the game triggers.
var Actions = []Action{PiecePlaced, ClearLine, ReturnPiece}

// Clip is an encoded sound.
type Clip struct {
	Name string
	Data []byte
}

// Player plays a clip without waiting for it to finish.
type Player interface {
	Play(Clip) error
}

// Rand picks clips. *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// Bank holds the clip groups. It is safe for concurrent use.
type Bank struct {
	mu     sync.Mutex
	groups map[Action][]Clip
	rng    Rand
	player Player
	logger *log.Logger
}

// NewBank creates an empty bank playing through player.
func NewBank(player Player, rng Rand, logger *log.Logger) *Bank {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Bank{
		groups: make(map[Action][]Clip),
		rng:    rng,
		player: player,
		logger: logger,
	}
}

// Register adds clips to the group of action. The first registration of an
// action wins; later ones are ignored.
func (b *Bank) Register(action Action, clips ...Clip) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.groups[action]; ok {
		return false
	}
	b.groups[action] = clips
	return true
}

// Has reports whether a group exists for action.
func (b *Bank) Has(action Action) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.groups[action]
	return ok
}

// Play picks a random clip for action and hands it to the player. A missing
// group is logged as a warning; an empty group plays nothing.
func (b *Bank) Play(action Action) (Clip, bool) {
	b.mu.Lock()
	clips, ok := b.groups[action]
	if !ok {
		b.mu.Unlock()
		b.logger.Warn("no sound group found", "action", action)
		return Clip{}, false
	}
	if len(clips) == 0 {
		b.mu.Unlock()
		return Clip{}, false
	}
	clip := clips[b.rng.IntN(len(clips))]
	b.mu.Unlock()

	if err := b.player.Play(clip); err != nil {
		b.logger.Error("playing sound", "action", action, "clip", clip.Name, "err", err)
		return clip, false
	}
	return clip, true
}

// Load registers every .wav file of fsys. Files live in one directory per
// action, e.g. "ClearLine/pop1.wav". Directories that are not actions are
// skipped.
func (b *Bank) Load(fsys fs.FS) error {
	known := make(map[Action]bool, len(Actions))
	for _, a := range Actions {
		known[a] = true
	}

	groups := make(map[Action][]Clip)
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(path.Ext(p), ".wav") {
			return nil
		}

		action := Action(path.Base(path.Dir(p)))
		if !known[action] {
			b.logger.Debug("skipping clip outside an action directory", "path", p)
			return nil
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("read clip %s: %w", p, err)
		}
		groups[action] = append(groups[action], Clip{Name: p, Data: data})
		return nil
	})
	if err != nil {
		return fmt.Errorf("load sound bank: %w", err)
	}

	loaded := make([]string, 0, len(groups))
	for action, clips := range groups {
		b.Register(action, clips...)
		loaded = append(loaded, fmt.Sprintf("%s=%d", action, len(clips)))
	}
	sort.Strings(loaded)
	b.logger.Info("sound bank loaded", "groups", strings.Join(loaded, " "))

	return nil
}

// ErrNoAudio is returned by players that cannot produce sound.
var ErrNoAudio = errors.New("audio unavailable")

// NopPlayer discards every clip.
type NopPlayer struct{}

func (NopPlayer) Play(Clip) error { return nil }

// Counter counts the clips it is asked to play.
type Counter struct {
	mu    sync.Mutex
	plays map[string]int
	total int
}

func (c *Counter) Play(clip Clip) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.plays == nil {
		c.plays = make(map[string]int)
	}
	c.plays[clip.Name]++
	c.total++
	return nil
}

// Plays returns how often the named clip was played.
func (c *Counter) Plays(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.plays[name]
}

// Total returns the number of clips played.
func (c *Counter) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}
