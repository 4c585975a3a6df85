// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "github.com/gogpu/scene3d"

// fade is a linear color interpolation over a fixed duration.
type fade struct {
	from, to scene3d.Color
	elapsed  float32
	duration float32
	active   bool
}

// StartFade interpolates the tint linearly from one color to another over
// duration seconds. A non-positive duration jumps to the end color.
func (d *Drawable) StartFade(from, to scene3d.Color, duration float32) {
	d.state.color = from
	if duration <= 0 {
		d.state.color = to
		d.fade = fade{}
		return
	}
	d.fade = fade{from: from, to: to, duration: duration, active: true}
}

// StartAlphaFade fades only the alpha of the current tint.
func (d *Drawable) StartAlphaFade(from, to, duration float32) {
	c := d.state.color
	d.StartFade(c.WithAlpha(from), c.WithAlpha(to), duration)
}

// AdvanceFade moves the fade dt seconds forward. The tint is clamped to the
// end color once the duration has elapsed, which ends the fade.
func (d *Drawable) AdvanceFade(dt float32) {
	f := &d.fade
	if !f.active {
		return
	}
	f.elapsed += dt
	t := f.elapsed / f.duration
	if t >= 1 {
		t = 1
		f.active = false
	}
	d.state.color = f.from.Lerp(f.to, t)
}

// StopFade freezes the tint at its current value.
func (d *Drawable) StopFade() {
	d.fade.active = false
}

// Fading reports whether a fade is in progress.
func (d *Drawable) Fading() bool {
	return d.fade.active
}
