package slideshow

import (
	"fmt"
	"image/color"
	"math"
	"time"
)

// hsvToRgb converts HSV to RGB (hue: 0-360, saturation: 0-1, value: 0-1)
func hsvToRgb(h, s, v float64) (uint8, uint8, uint8) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return uint8((r + m) * 255), uint8((g + m) * 255), uint8((b + m) * 255)
}

// countdownColor fades from green (full) to red (empty).
func countdownColor(fraction float64, alpha uint8) color.RGBA {
	r, g, b := hsvToRgb(120*clamp01(fraction), 0.75, 0.9)
	return color.RGBA{R: r, G: g, B: b, A: alpha}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// formatTimer renders a per-image timer setting for the picker.
func formatTimer(seconds int) string {
	if seconds <= 0 {
		return "off"
	}
	return formatDuration(time.Duration(seconds) * time.Second)
}

// timerSteps are the values the timer adjuster cycles through.
var timerSteps = []int{0, 15, 30, 45, 60, 90, 120, 180, 300, 600, 900, 1200}

// stepTimer returns the next step above (dir > 0) or below current.
func stepTimer(current, dir int) int {
	if dir > 0 {
		for _, step := range timerSteps {
			if step > current {
				return step
			}
		}
		return timerSteps[len(timerSteps)-1]
	}
	for i := len(timerSteps) - 1; i >= 0; i-- {
		if timerSteps[i] < current {
			return timerSteps[i]
		}
	}
	return 0
}

// stepLimit moves the completion limit by delta, never below zero.
func stepLimit(current, delta int) int {
	next := current + delta
	if next < 0 {
		return 0
	}
	return next
}
