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

// This file wires the caption stages into one pipeline. Order matters:
// normalization must precede filler statistics (stage directions would skew
// the counts), filler suppression must precede style selection (the rules
// inspect the final text), and timing reconciliation must precede layout so
// only captions that will actually render get measured.
package captions

import (
	"log/slog"

	"github.com/Th3Ya0vi/ReelComp/internal/core/model"
)

// CaptionOverlay is one fully-resolved caption ready for composition: final
// text, display window, style, measured layout, and its animator.
type CaptionOverlay struct {
	Text     string
	Start    float64
	End      float64
	Style    CaptionStyle
	Params   *RenderParams
	Position *Position
	Variant  Variant
	Animator *Animator
}

// PipelineOptions tunes the pipeline stages. The zero value selects every
// default.
type PipelineOptions struct {
	FillerThreshold float64
	SplitThreshold  float64
	Seed            int64
	FullVariantSet  bool
	Measurer        TextMeasurer
}

// Pipeline transforms a raw transcript into render-ready caption overlays.
type Pipeline struct {
	suppressor *FillerSuppressor
	reconciler *Reconciler
	selector   *StyleSelector
	layout     *LayoutEngine
}

// NewPipeline assembles a pipeline from options.
func NewPipeline(opts PipelineOptions) *Pipeline {
	return &Pipeline{
		suppressor: NewFillerSuppressor(opts.FillerThreshold),
		reconciler: NewReconciler(opts.SplitThreshold),
		selector:   NewStyleSelector(opts.Seed, opts.FullVariantSet),
		layout:     NewLayoutEngine(opts.Measurer),
	}
}

// Build runs every stage over the transcript and returns the overlays for a
// frame of the given size and a media file of the given duration. Captions
// that fail layout are dropped individually; Build itself never fails.
func (p *Pipeline) Build(transcript model.Transcript, mediaDuration float64, frameWidth, frameHeight int) []*CaptionOverlay {
	work := transcript.Clone()
	for _, seg := range work {
		seg.Text = Normalize(seg.Text)
	}
	p.suppressor.Suppress(work)
	p.reconciler.Reconcile(work)
	windows := p.reconciler.RenderWindows(work, mediaDuration)

	overlays := make([]*CaptionOverlay, 0, len(windows))
	for i, seg := range windows {
		style := p.selector.StyleFor(seg.Text, i)
		params, pos := p.layout.Layout(seg.Text, style, frameWidth, frameHeight)
		if params == nil {
			slog.Warn("dropping caption that failed layout", "text", seg.Text)
			continue
		}
		variant := p.selector.VariantFor()
		overlays = append(overlays, &CaptionOverlay{
			Text:     seg.Text,
			Start:    seg.Start,
			End:      seg.End,
			Style:    style,
			Params:   params,
			Position: pos,
			Variant:  variant,
			Animator: NewAnimator(variant, seg.Start, seg.End),
		})
	}
	return overlays
}
