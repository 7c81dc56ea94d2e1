package slideshow

// rect is an axis-aligned box in screen pixels.
type rect struct {
	x, y, w, h float64
}

func (r rect) contains(px, py int) bool {
	x, y := float64(px), float64(py)
	return x >= r.x && x <= r.x+r.w && y >= r.y && y <= r.y+r.h
}

// fitRect scales an image of iw x ih to fit inside area, centred, never
// enlarging it. It returns the scale and the destination box.
func fitRect(iw, ih int, area rect) (float64, rect) {
	if iw <= 0 || ih <= 0 || area.w <= 0 || area.h <= 0 {
		return 0, rect{x: area.x, y: area.y}
	}
	scale := area.w / float64(iw)
	if s := area.h / float64(ih); s < scale {
		scale = s
	}
	if scale > 1 {
		scale = 1
	}
	w := float64(iw) * scale
	h := float64(ih) * scale
	return scale, rect{
		x: area.x + (area.w-w)/2,
		y: area.y + (area.h-h)/2,
		w: w,
		h: h,
	}
}

// rowOf lays out n boxes of width w and height h, separated by gap and
// centred horizontally in a screen of width screenW, at vertical position y.
func rowOf(n int, w, h, gap, screenW, y float64) []rect {
	if n <= 0 {
		return nil
	}
	total := float64(n)*w + float64(n-1)*gap
	x := (screenW - total) / 2
	out := make([]rect, n)
	for i := range out {
		out[i] = rect{x: x + float64(i)*(w+gap), y: y, w: w, h: h}
	}
	return out
}
