package audio_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/sketchdeck/internal/audio"
	"github.com/iburimskiy/sketchdeck/internal/config"
)

type fakeOutput struct {
	initCalls  int
	sampleRate beep.SampleRate
	initErr    error
	played     []beep.Streamer
}

func (f *fakeOutput) Init(sampleRate beep.SampleRate, bufferSize int) error {
	f.initCalls++
	f.sampleRate = sampleRate
	return f.initErr
}

func (f *fakeOutput) Play(s ...beep.Streamer) { f.played = append(f.played, s...) }

func writeCue(t *testing.T, dir, name string, rate beep.SampleRate, samples int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	format := beep.Format{SampleRate: rate, NumChannels: 1, Precision: 2}
	require.NoError(t, wav.Encode(f, beep.Silence(samples), format))
	return path
}

func drain(s beep.Streamer) int {
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			return total
		}
	}
}

func TestPlayInitialisesLazilyOnce(t *testing.T) {
	dir := t.TempDir()
	out := &fakeOutput{}
	p := audio.NewBeepPlayer(out, 8000, 1, nil)
	require.NoError(t, p.Load(audio.CueNext, writeCue(t, dir, "next.wav", 8000, 800)))

	assert.Zero(t, out.initCalls)
	p.Play(audio.CueNext)
	p.Play(audio.CueNext)

	assert.Equal(t, 1, out.initCalls)
	assert.Equal(t, beep.SampleRate(8000), out.sampleRate)
	require.Len(t, out.played, 2)
	assert.Equal(t, 800, drain(out.played[0]))
}

func TestLoadResamplesToOutputRate(t *testing.T) {
	dir := t.TempDir()
	out := &fakeOutput{}
	p := audio.NewBeepPlayer(out, 16000, 0.5, nil)
	require.NoError(t, p.Load(audio.CueLimitReached, writeCue(t, dir, "limit.wav", 8000, 800)))

	p.Play(audio.CueLimitReached)
	require.Len(t, out.played, 1)
	assert.InDelta(t, 1600, drain(out.played[0]), 16)
}

func TestPlayMissingCueIsSilent(t *testing.T) {
	out := &fakeOutput{}
	p := audio.NewBeepPlayer(out, 8000, 1, nil)

	p.Play(audio.CueLimitReached)
	assert.Empty(t, out.played)
	assert.False(t, p.Has(audio.CueLimitReached))
}

func TestUnlockPlaysEveryCueMuted(t *testing.T) {
	dir := t.TempDir()
	out := &fakeOutput{}
	p := audio.NewBeepPlayer(out, 8000, 1, nil)
	require.NoError(t, p.Load(audio.CueNext, writeCue(t, dir, "next.wav", 8000, 100)))
	require.NoError(t, p.Load(audio.CueLimitReached, writeCue(t, dir, "limit.wav", 8000, 100)))

	p.Unlock()
	require.Len(t, out.played, 2)

	buf := make([][2]float64, 100)
	for _, s := range out.played {
		n, _ := s.Stream(buf)
		assert.Equal(t, 100, n)
		for _, sample := range buf[:n] {
			assert.Zero(t, sample[0])
		}
	}
}

func TestInitFailureRetries(t *testing.T) {
	dir := t.TempDir()
	out := &fakeOutput{initErr: errors.New("no device")}
	p := audio.NewBeepPlayer(out, 8000, 1, nil)
	require.NoError(t, p.Load(audio.CueNext, writeCue(t, dir, "next.wav", 8000, 100)))

	p.Play(audio.CueNext)
	assert.Empty(t, out.played)

	out.initErr = nil
	p.Play(audio.CueNext)
	assert.Equal(t, 2, out.initCalls)
	assert.Len(t, out.played, 1)
}

func TestLoadFromURL(t *testing.T) {
	dir := t.TempDir()
	path := writeCue(t, dir, "next.wav", 8000, 400)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cues/next.wav" {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, path)
	}))
	defer srv.Close()

	p := audio.NewBeepPlayer(&fakeOutput{}, 8000, 1, nil)
	require.NoError(t, p.Load(audio.CueNext, srv.URL+"/cues/next.wav"))
	assert.True(t, p.Has(audio.CueNext))

	err := p.Load(audio.CueLimitReached, srv.URL+"/cues/missing.wav")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestLoadRejectsUnknownType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cue.ogg")
	require.NoError(t, os.WriteFile(path, []byte("OggS"), 0o644))

	p := audio.NewBeepPlayer(&fakeOutput{}, 8000, 1, nil)
	err := p.Load(audio.CueNext, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported cue type")
}

func TestNewPlayerFallsBackToNop(t *testing.T) {
	disabled := audio.NewPlayer(config.Audio{Enabled: false}, nil)
	assert.IsType(t, audio.Nop{}, disabled)

	missing := audio.NewPlayer(config.Audio{
		Enabled:  true,
		NextCue:  filepath.Join(t.TempDir(), "absent.mp3"),
		LimitCue: "",
		Volume:   1,
	}, nil)
	assert.IsType(t, audio.Nop{}, missing)

	assert.Equal(t, "next", audio.CueNext.String())
	assert.Equal(t, "limit-reached", audio.CueLimitReached.String())
}
