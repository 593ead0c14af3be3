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

// This file implements timing reconciliation for the caption track.
//
// Two concerns live here:
//
//  1. Reconcile: overlap resolution between consecutive segments, mutating
//     the transcript in place. Speech recognizers emit segments whose
//     intervals overlap slightly; overlapping pop-ups desynchronize the
//     caption track from the narration. After reconciliation every adjacent
//     pair satisfies prev.End <= curr.Start.
//
//  2. RenderWindows: the render-time view of the reconciled transcript,
//     computed against the actual media duration without mutating the stored
//     segments. Segments starting past the end of the media are dropped, end
//     times are clipped, too-short captions are extended to a readable
//     minimum or dropped entirely, and a terminal "thanks for watching"
//     phrase is kept only at its final occurrence so transcription artifacts
//     cannot replay it mid-video.
package captions

import (
	"strings"

	"github.com/Th3Ya0vi/ReelComp/internal/core/model"
)

// Timing constants. The split threshold is an empirically chosen tunable (see
// ReconcilerOptions), the duration bounds are readability floors.
const (
	// DefaultSplitThreshold decides how an overlap is resolved: when the next
	// caption starts more than this far into the previous one's window, the
	// previous caption is truncated at the next one's start; when the two
	// start nearly together the overlap is split at the midpoint between the
	// two boundaries so neither caption absorbs the whole error.
	DefaultSplitThreshold = 0.3

	// MinDuration is the hard floor: captions that cannot reach it are
	// dropped from the render.
	MinDuration = 0.3

	// SoftMinDuration is the readability target: shorter captions are
	// extended up to it when the media allows.
	SoftMinDuration = 0.8
)

// Reconciler resolves temporal overlaps and computes render windows.
type Reconciler struct {
	splitThreshold float64
}

// NewReconciler creates a reconciler. A non-positive splitThreshold selects
// the default.
func NewReconciler(splitThreshold float64) *Reconciler {
	if splitThreshold <= 0 {
		splitThreshold = DefaultSplitThreshold
	}
	return &Reconciler{splitThreshold: splitThreshold}
}

// Reconcile sorts the transcript by start time and resolves every overlap
// between consecutive segments, in place.
func (r *Reconciler) Reconcile(transcript model.Transcript) {
	if len(transcript) <= 1 {
		return
	}
	transcript.SortByStart()

	for i := 1; i < len(transcript); i++ {
		prev, curr := transcript[i-1], transcript[i]
		if curr.Start >= prev.End {
			continue
		}
		if curr.Start > prev.Start+r.splitThreshold {
			// The captions are staggered: favor the later caption's start.
			prev.End = curr.Start
		} else {
			// Nearly coincident starts: split the difference.
			mid := (prev.End + curr.Start) / 2
			prev.End = mid
			curr.Start = mid
		}
	}
}

// isTerminalPhrase reports whether a caption reads as a sign-off.
func isTerminalPhrase(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "thank") && strings.Contains(lower, "watch")
}

// RenderWindows returns the segments that should actually be rendered against
// a media file of the given duration, with clipped and extended times. The
// input transcript is not modified; callers keep the reconciled source of
// truth while the renderer consumes the clamped view.
func (r *Reconciler) RenderWindows(transcript model.Transcript, mediaDuration float64) model.Transcript {
	// Locate the last terminal sign-off; earlier occurrences are artifacts.
	lastTerminal := -1
	for i, seg := range transcript {
		if isTerminalPhrase(seg.Text) {
			lastTerminal = i
		}
	}

	out := make(model.Transcript, 0, len(transcript))
	for i, seg := range transcript {
		if seg.Start >= mediaDuration {
			continue
		}
		if lastTerminal >= 0 && i != lastTerminal && isTerminalPhrase(seg.Text) {
			continue
		}
		if strings.TrimSpace(seg.Text) == "" {
			continue
		}

		w := *seg
		if w.End > mediaDuration {
			w.End = mediaDuration
		}
		if w.Duration() < SoftMinDuration {
			w.End = w.Start + SoftMinDuration
			if w.End > mediaDuration {
				w.End = mediaDuration
			}
		}
		if w.Duration() < MinDuration {
			continue
		}
		out = append(out, &w)
	}
	return out
}
