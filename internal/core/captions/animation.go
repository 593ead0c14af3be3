// Copyright 2025 ReelComp Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// This file implements entrance/exit animation for a caption: given the
// caption's display window and a variant name, it evaluates the visual
// transform (offset, scale, opacity, visible text fraction) at any point in
// time. The entrance phase lasts min(0.3s, duration/4) and the exit phase
// min(0.2s, duration/5), so even sub-second captions keep a steady phase in
// the middle. Pop and typewriter run their entrance over duration/3 instead,
// matching their slower reveal.
//
// Evaluation is pure per timestamp, which lets the compositor sample it at
// whatever frame rate it renders. SafeAt wraps the evaluation in a panic
// recovery and substitutes a plain fade so a broken variant degrades to the
// simplest effect instead of failing the render.
package captions

import "math"

// Animation phase boundaries.
const (
	maxAnimInDuration  = 0.3
	maxAnimOutDuration = 0.2
)

// bounceAmplitude is the peak vertical displacement of the bounce variant, in
// pixels. Kept well inside the layout margin so the block stays in the safe
// area.
const bounceAmplitude = 12.0

// Phase is where a caption is in its lifecycle at a sampled timestamp.
type Phase int

const (
	PhasePending Phase = iota
	PhaseAnimatingIn
	PhaseSteady
	PhaseAnimatingOut
	PhaseDone
)

// Transform is the evaluated animation state at one timestamp. Offsets are in
// pixels relative to the caption's laid-out position; Scale multiplies the
// block around its center and is always strictly positive; Opacity is in
// [0, 1]; TextFraction is the fraction of the text revealed (always 1 except
// for the typewriter variant).
type Transform struct {
	OffsetX      float64
	OffsetY      float64
	Scale        float64
	Opacity      float64
	TextFraction float64
}

// SlideDistance is how far slide variants travel during the entrance, in
// pixels. Kept small so a caption near a frame edge cannot slide out of the
// safe area.
const SlideDistance = 50.0

// Animator evaluates one caption's animation over its display window.
type Animator struct {
	variant Variant
	start   float64
	end     float64
	animIn  float64
	animOut float64
}

// NewAnimator creates an animator for a caption shown from start to end
// seconds on the media timeline.
func NewAnimator(variant Variant, start, end float64) *Animator {
	d := end - start
	if d < 0 {
		d = 0
	}
	animIn := math.Min(maxAnimInDuration, d/4)
	animOut := math.Min(maxAnimOutDuration, d/5)
	if variant == VariantPop || variant == VariantTypewriter {
		animIn = d / 3
	}
	return &Animator{
		variant: variant,
		start:   start,
		end:     end,
		animIn:  animIn,
		animOut: animOut,
	}
}

// EntryDuration returns the length of the entrance phase in seconds. The
// compositor uses it to build time-based fade expressions.
func (a *Animator) EntryDuration() float64 {
	return a.animIn
}

// ExitDuration returns the length of the exit phase in seconds.
func (a *Animator) ExitDuration() float64 {
	return a.animOut
}

// PhaseAt returns the lifecycle phase at timestamp t on the media timeline.
func (a *Animator) PhaseAt(t float64) Phase {
	switch {
	case t < a.start:
		return PhasePending
	case t >= a.end:
		return PhaseDone
	case a.animIn > 0 && t < a.start+a.animIn:
		return PhaseAnimatingIn
	case a.animOut > 0 && t >= a.end-a.animOut:
		return PhaseAnimatingOut
	default:
		return PhaseSteady
	}
}

// At evaluates the transform at timestamp t. Outside the display window the
// caption is fully transparent.
func (a *Animator) At(t float64) Transform {
	tr := Transform{Scale: 1, Opacity: 1, TextFraction: 1}

	switch a.PhaseAt(t) {
	case PhasePending, PhaseDone:
		tr.Opacity = 0
		return tr
	case PhaseAnimatingIn:
		p := (t - a.start) / a.animIn // progress in [0, 1)
		a.applyEntrance(&tr, p)
	case PhaseAnimatingOut:
		p := (a.end - t) / a.animOut // remaining fraction in (0, 1]
		tr.Opacity = p
	}
	return tr
}

// applyEntrance shapes the transform during the entrance phase. Every variant
// keeps Scale strictly positive so the compositor never receives a degenerate
// or mirrored block.
func (a *Animator) applyEntrance(tr *Transform, p float64) {
	eased := easeOutQuad(p)
	switch a.variant {
	case VariantSlideUp:
		tr.Opacity = eased
		tr.OffsetY = SlideDistance * (1 - eased)
	case VariantSlideLeft:
		tr.Opacity = eased
		tr.OffsetX = SlideDistance * (1 - eased)
	case VariantSlideRight:
		tr.Opacity = eased
		tr.OffsetX = -SlideDistance * (1 - eased)
	case VariantZoomIn:
		tr.Opacity = eased
		tr.Scale = floorScale(0.5 + 0.5*eased)
	case VariantBounce:
		tr.Opacity = eased
		// Damped vertical oscillation: the amplitude decays to zero by the
		// end of the entrance so the block lands on its laid-out position.
		tr.OffsetY = -bounceAmplitude * (1 - p) * math.Sin(2*math.Pi*p)
	case VariantPop:
		tr.Opacity = eased
		// Overshoots past full size and settles back to 1.
		tr.Scale = floorScale(easeOutBack(p))
	case VariantTypewriter:
		tr.TextFraction = p
		tr.Opacity = eased
		tr.Scale = floorScale(0.95 + 0.05*eased)
	default: // fade-in and unknown variants
		tr.Opacity = eased
	}
}

// SafeAt is the compositor-facing entry point: any panic in variant evaluation
// is recovered and the caption degrades to a plain fade at the same timestamp.
func (a *Animator) SafeAt(t float64) (tr Transform) {
	defer func() {
		if r := recover(); r != nil {
			fallback := &Animator{variant: VariantFadeIn, start: a.start, end: a.end, animIn: a.animIn, animOut: a.animOut}
			tr = fallback.At(t)
		}
	}()
	return a.At(t)
}

func easeOutQuad(p float64) float64 {
	return 1 - (1-p)*(1-p)
}

// easeOutBack rises from 0, peaks near 1.09 around two thirds of the way in,
// and settles at exactly 1.
func easeOutBack(p float64) float64 {
	const c1 = 1.70158
	const c3 = c1 + 1
	q := p - 1
	return 1 + c3*q*q*q + c1*q*q
}

// floorScale clamps a scale factor away from zero.
func floorScale(s float64) float64 {
	if s < 0.01 {
		return 0.01
	}
	return s
}
