// Package audio plays the short cue sounds of the slideshow through beep.
package audio

import (
	"go.uber.org/zap"

	"github.com/iburimskiy/sketchdeck/internal/config"
)

// Cue names a sound effect.
type Cue int

const (
	// CueNext plays when the timer advances to a new image.
	CueNext Cue = iota
	// CueLimitReached plays when the completion limit is hit.
	CueLimitReached
)

var cueNames = map[Cue]string{
	CueNext:         "next",
	CueLimitReached: "limit-reached",
}

func (c Cue) String() string {
	if name, ok := cueNames[c]; ok {
		return name
	}
	return "unknown"
}

// Player plays cues. Play may be called before Unlock.
type Player interface {
	Play(cue Cue)
	Unlock()
}

// Nop is a Player that stays silent.
type Nop struct{}

func (Nop) Play(Cue) {}
func (Nop) Unlock()  {}

// NewPlayer builds the configured player. Disabled audio, or a configuration
// where no cue could be loaded, yields Nop.
func NewPlayer(cfg config.Audio, logger *zap.Logger) Player {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.Enabled {
		return Nop{}
	}
	p := NewBeepPlayer(SpeakerOutput{}, DefaultSampleRate, cfg.Volume, logger)
	sources := map[Cue]string{
		CueNext:         cfg.NextCue,
		CueLimitReached: cfg.LimitCue,
	}
	loaded := 0
	for cue, location := range sources {
		if location == "" {
			continue
		}
		if err := p.Load(cue, location); err != nil {
			logger.Warn("cue unavailable", zap.Stringer("cue", cue), zap.String("location", location), zap.Error(err))
			continue
		}
		loaded++
	}
	if loaded == 0 {
		return Nop{}
	}
	return p
}
