package slideshow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStepTimer(t *testing.T) {
	tests := []struct {
		current, dir, want int
	}{
		{0, 1, 15},
		{15, 1, 30},
		{20, 1, 30},
		{1200, 1, 1200},
		{5000, 1, 1200},
		{20, -1, 15},
		{15, -1, 0},
		{0, -1, 0},
		{5000, -1, 1200},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stepTimer(tt.current, tt.dir), "stepTimer(%d, %d)", tt.current, tt.dir)
	}
}

func TestStepLimit(t *testing.T) {
	assert.Equal(t, 1, stepLimit(0, 1))
	assert.Equal(t, 0, stepLimit(0, -1))
	assert.Equal(t, 4, stepLimit(5, -1))
}

func TestFormatTimer(t *testing.T) {
	assert.Equal(t, "off", formatTimer(0))
	assert.Equal(t, "00:45", formatTimer(45))
	assert.Equal(t, "01:30", formatTimer(90))
	assert.Equal(t, "02:05", formatDuration(125*time.Second))
}

func TestCountdownColorFadesToRed(t *testing.T) {
	full := countdownColor(1, 255)
	empty := countdownColor(0, 128)
	assert.Greater(t, full.G, full.R)
	assert.Greater(t, empty.R, empty.G)
	assert.Equal(t, uint8(128), empty.A)
	assert.Equal(t, countdownColor(1, 255), countdownColor(3, 255))
}

func TestHsvToRgbWrapsHue(t *testing.T) {
	r1, g1, b1 := hsvToRgb(-120, 1, 1)
	r2, g2, b2 := hsvToRgb(240, 1, 1)
	assert.Equal(t, []uint8{r2, g2, b2}, []uint8{r1, g1, b1})
	r, g, b := hsvToRgb(0, 1, 1)
	assert.Equal(t, []uint8{255, 0, 0}, []uint8{r, g, b})
}
