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

// This file tests timing reconciliation and render-window computation.
package captions_test

import (
	"testing"

	"github.com/Th3Ya0vi/ReelComp/internal/core/captions"
	"github.com/Th3Ya0vi/ReelComp/internal/core/model"
	"github.com/stretchr/testify/assert"
)

func seg(text string, start, end float64) *model.CaptionSegment {
	return &model.CaptionSegment{Text: text, Start: start, End: end}
}

// TestReconcileSplitsNearlyCoincidentStarts verifies that two captions whose
// starts fall within the split threshold of each other meet at the midpoint
// of the overlapping boundaries: segments [0, 0.4] and [0.2, 1.0] start 0.2s
// apart and meet at 0.3.
func TestReconcileSplitsNearlyCoincidentStarts(t *testing.T) {
	transcript := model.Transcript{
		seg("first", 0, 0.4),
		seg("second", 0.2, 1.0),
	}

	captions.NewReconciler(0).Reconcile(transcript)

	assert.InDelta(t, 0.3, transcript[0].End, 1e-9)
	assert.InDelta(t, 0.3, transcript[1].Start, 1e-9)
}

// TestReconcileTruncatesStaggeredOverlap verifies that when the later caption
// starts well into the earlier one's window, the earlier caption is truncated
// at the later one's start: segments [0, 2] and [1.5, 3] resolve at 1.5.
func TestReconcileTruncatesStaggeredOverlap(t *testing.T) {
	transcript := model.Transcript{
		seg("first", 0, 2),
		seg("second", 1.5, 3),
	}

	captions.NewReconciler(0).Reconcile(transcript)

	assert.InDelta(t, 1.5, transcript[0].End, 1e-9)
	assert.InDelta(t, 1.5, transcript[1].Start, 1e-9)
}

// TestReconcileSortsAndOrders verifies that out-of-order input is sorted and
// that afterwards every adjacent pair satisfies prev.End <= curr.Start.
func TestReconcileSortsAndOrders(t *testing.T) {
	transcript := model.Transcript{
		seg("c", 4, 6),
		seg("a", 0, 2.4),
		seg("b", 2, 4.1),
	}

	captions.NewReconciler(0).Reconcile(transcript)

	for i := 1; i < len(transcript); i++ {
		assert.LessOrEqual(t, transcript[i-1].End, transcript[i].Start)
	}
	assert.Equal(t, "a", transcript[0].Text)
	assert.Equal(t, "b", transcript[1].Text)
	assert.Equal(t, "c", transcript[2].Text)
}

// TestRenderWindowsExtendsShortCaption verifies the readability extension: a
// 0.2s caption against a 10s media file grows to the 0.8s soft minimum.
func TestRenderWindowsExtendsShortCaption(t *testing.T) {
	transcript := model.Transcript{seg("quick", 1.0, 1.2)}

	windows := captions.NewReconciler(0).RenderWindows(transcript, 10)

	assert.Equal(t, 1, len(windows))
	assert.InDelta(t, 1.0, windows[0].Start, 1e-9)
	assert.InDelta(t, 1.8, windows[0].End, 1e-9)
	// The stored transcript is untouched.
	assert.InDelta(t, 1.2, transcript[0].End, 1e-9)
}

// TestRenderWindowsClipsAndDrops verifies that end times are clipped to the
// media duration, that segments starting past the end are dropped, and that a
// clipped caption shorter than the hard minimum is dropped too.
func TestRenderWindowsClipsAndDrops(t *testing.T) {
	transcript := model.Transcript{
		seg("kept", 1, 3),
		seg("clipped", 4, 7),
		seg("too short after clipping", 4.9, 8),
		seg("past the end", 5.5, 9),
	}

	windows := captions.NewReconciler(0).RenderWindows(transcript, 5)

	assert.Equal(t, 2, len(windows))
	assert.Equal(t, "kept", windows[0].Text)
	assert.Equal(t, "clipped", windows[1].Text)
	assert.InDelta(t, 5.0, windows[1].End, 1e-9)
}

// TestRenderWindowsTerminalPhraseOnlyLast verifies that a sign-off phrase
// appearing mid-video (a transcription artifact) is dropped and only its final
// occurrence renders.
func TestRenderWindowsTerminalPhraseOnlyLast(t *testing.T) {
	transcript := model.Transcript{
		seg("intro", 0, 2),
		seg("body one", 2, 4),
		seg("thanks for watching", 4, 6),
		seg("body two", 6, 8),
		seg("body three", 8, 10),
		seg("more body", 10, 12),
		seg("final point", 12, 14),
		seg("Thanks for watching!", 14, 16),
	}

	windows := captions.NewReconciler(0).RenderWindows(transcript, 20)

	texts := make([]string, 0, len(windows))
	for _, w := range windows {
		texts = append(texts, w.Text)
	}
	assert.NotContains(t, texts, "thanks for watching")
	assert.Contains(t, texts, "Thanks for watching!")
	assert.Equal(t, 7, len(windows))
}

// TestRenderWindowsDropsEmptyText verifies that segments whose text was
// emptied by earlier stages never reach the renderer.
func TestRenderWindowsDropsEmptyText(t *testing.T) {
	transcript := model.Transcript{
		seg("   ", 0, 2),
		seg("real", 2, 4),
	}

	windows := captions.NewReconciler(0).RenderWindows(transcript, 10)

	assert.Equal(t, 1, len(windows))
	assert.Equal(t, "real", windows[0].Text)
}
