package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"go.uber.org/zap"
)

// DefaultSampleRate is the rate the speaker is opened at. Cues are resampled
// to it when decoded.
const DefaultSampleRate = beep.SampleRate(44100)

const fetchTimeout = 15 * time.Second

// Output is the sink cues are played on.
type Output interface {
	Init(sampleRate beep.SampleRate, bufferSize int) error
	Play(s ...beep.Streamer)
}

// SpeakerOutput plays through the process-wide beep speaker.
type SpeakerOutput struct{}

func (SpeakerOutput) Init(sampleRate beep.SampleRate, bufferSize int) error {
	return speaker.Init(sampleRate, bufferSize)
}

func (SpeakerOutput) Play(s ...beep.Streamer) { speaker.Play(s...) }

// BeepPlayer decodes each cue once into memory and opens the output lazily on
// first use.
type BeepPlayer struct {
	mu         sync.Mutex
	out        Output
	sampleRate beep.SampleRate
	volume     float64
	cues       map[Cue]*beep.Buffer
	initDone   bool
	client     *http.Client
	logger     *zap.Logger
}

// NewBeepPlayer returns a player with no cues loaded. volume is linear in
// [0, 1].
func NewBeepPlayer(out Output, sampleRate beep.SampleRate, volume float64, logger *zap.Logger) *BeepPlayer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	return &BeepPlayer{
		out:        out,
		sampleRate: sampleRate,
		volume:     volume,
		cues:       map[Cue]*beep.Buffer{},
		client:     &http.Client{Timeout: fetchTimeout},
		logger:     logger.Named("audio"),
	}
}

// Load decodes the file or http(s) URL at location and stores it for cue.
func (p *BeepPlayer) Load(cue Cue, location string) error {
	rc, err := open(p.client, location)
	if err != nil {
		return err
	}

	streamer, format, err := decode(rc, location)
	if err != nil {
		_ = rc.Close()
		return err
	}
	defer streamer.Close()

	buf := beep.NewBuffer(beep.Format{
		SampleRate:  p.sampleRate,
		NumChannels: format.NumChannels,
		Precision:   format.Precision,
	})
	var src beep.Streamer = streamer
	if format.SampleRate != p.sampleRate {
		src = beep.Resample(4, format.SampleRate, p.sampleRate, streamer)
	}
	buf.Append(src)
	if err := streamer.Err(); err != nil {
		return fmt.Errorf("decode %s: %w", location, err)
	}

	p.mu.Lock()
	p.cues[cue] = buf
	p.mu.Unlock()
	p.logger.Debug("cue loaded", zap.Stringer("cue", cue), zap.Int("samples", buf.Len()))
	return nil
}

// Has reports whether cue has been loaded.
func (p *BeepPlayer) Has(cue Cue) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.cues[cue]
	return ok
}

// Play starts cue. Missing cues and output failures are logged.
func (p *BeepPlayer) Play(cue Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	buf, ok := p.cues[cue]
	if !ok {
		p.logger.Debug("cue not loaded", zap.Stringer("cue", cue))
		return
	}
	if !p.ensureInit() {
		return
	}
	p.out.Play(p.wrap(buf.Streamer(0, buf.Len()), false))
}

// Unlock opens the output and plays every cue muted.
func (p *BeepPlayer) Unlock() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ensureInit() {
		return
	}
	for _, buf := range p.cues {
		p.out.Play(p.wrap(buf.Streamer(0, buf.Len()), true))
	}
}

func (p *BeepPlayer) ensureInit() bool {
	if p.initDone {
		return true
	}
	bufferSize := p.sampleRate.N(time.Second / 20)
	if err := p.out.Init(p.sampleRate, bufferSize); err != nil {
		p.logger.Warn("audio output unavailable", zap.Error(err))
		return false
	}
	p.initDone = true
	return true
}

func (p *BeepPlayer) wrap(s beep.Streamer, silent bool) beep.Streamer {
	v := &effects.Volume{Streamer: s, Base: 2, Silent: silent || p.volume <= 0}
	if p.volume > 0 {
		v.Volume = math.Log2(p.volume)
	}
	return v
}

func open(client *http.Client, location string) (io.ReadCloser, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, errors.New("empty cue location")
	}
	u, err := url.Parse(location)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		file, err := os.Open(location)
		if err != nil {
			return nil, fmt.Errorf("open cue: %w", err)
		}
		return file, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch cue: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch cue: %s returned %d", location, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read cue: %w", err)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func decode(rc io.ReadCloser, location string) (beep.StreamSeekCloser, beep.Format, error) {
	name := location
	if u, err := url.Parse(location); err == nil && u.Path != "" {
		name = u.Path
	}
	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
		err      error
	)
	switch ext := strings.ToLower(path.Ext(name)); ext {
	case ".wav":
		streamer, format, err = wav.Decode(rc)
	case ".mp3":
		streamer, format, err = mp3.Decode(rc)
	case ".flac":
		streamer, format, err = flac.Decode(rc)
	default:
		return nil, beep.Format{}, errors.New("unsupported cue type: " + ext)
	}
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("decode %s: %w", location, err)
	}
	return streamer, format, nil
}
