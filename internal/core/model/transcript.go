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

// Package model defines the core data structures for the application.
// This file holds the transcript types produced by the (external) speech
// recognition collaborator and consumed by the caption pipeline. A transcript
// is owned exclusively by the pipeline for the duration of one render job and
// is discarded afterwards; nothing in this file is persisted.
package model

import "sort"

// CaptionSegment is one timestamped unit of spoken text destined to become an
// on-screen pop-up caption. Text is mutated in place by the normalization and
// filler-suppression stages; Start/End are mutated by timing reconciliation.
// The interval is half-open and, once reconciled, Start < End holds for every
// surviving segment.
type CaptionSegment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"` // seconds from the beginning of the media
	End   float64 `json:"end"`   // seconds from the beginning of the media
}

// Duration returns the display length of the segment in seconds.
func (s *CaptionSegment) Duration() float64 {
	return s.End - s.Start
}

// Transcript is an ordered sequence of caption segments. Insertion order is
// chronological order once SortByStart has run.
type Transcript []*CaptionSegment

// SortByStart orders the segments by their start time. The sort is stable so
// that segments sharing a start time keep their transcription order.
func (t Transcript) SortByStart() {
	sort.SliceStable(t, func(i, j int) bool {
		return t[i].Start < t[j].Start
	})
}

// Clone returns a deep copy of the transcript. Processing stages that must not
// alias the caller's segments (render-window computation in particular) work
// on a clone.
func (t Transcript) Clone() Transcript {
	out := make(Transcript, 0, len(t))
	for _, s := range t {
		c := *s
		out = append(out, &c)
	}
	return out
}
