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
// This file holds the media asset types produced by the acquisition cascade.
// Assets are collected into a per-request bundle whose backing temp directory
// is owned (and eventually removed) by the caller.
package model

// AssetKind tags a collected media file as a still image or a video clip.
type AssetKind string

const (
	AssetKindImage AssetKind = "image"
	AssetKindVideo AssetKind = "video"
)

// MediaAsset is a single downloaded or synthesized media file.
type MediaAsset struct {
	Path     string    `json:"path"`     // absolute path inside the request's asset directory
	Kind     AssetKind `json:"kind"`     // image or video
	Provider string    `json:"provider"` // name of the provider that produced it (or "placeholder")
}

// AssetBundle is the result of one acquisition request. Either list may be
// shorter than requested (or empty in the pathological case where even
// placeholder synthesis failed); callers must be able to proceed with a
// partially filled bundle.
type AssetBundle struct {
	Images []*MediaAsset `json:"images"`
	Videos []*MediaAsset `json:"videos"`
}

// NewAssetBundle creates an empty bundle with both lists initialized.
func NewAssetBundle() *AssetBundle {
	return &AssetBundle{
		Images: make([]*MediaAsset, 0),
		Videos: make([]*MediaAsset, 0),
	}
}

// VideoPaths returns the file paths of the bundled videos in collection order.
func (b *AssetBundle) VideoPaths() []string {
	out := make([]string, 0, len(b.Videos))
	for _, v := range b.Videos {
		out = append(out, v.Path)
	}
	return out
}

// PlaceholderCount returns how many bundled assets were synthesized locally
// rather than fetched from a provider.
func (b *AssetBundle) PlaceholderCount() int {
	n := 0
	for _, v := range b.Videos {
		if v.Provider == "placeholder" {
			n++
		}
	}
	return n
}

// ImagePaths returns the file paths of the bundled images in collection order.
func (b *AssetBundle) ImagePaths() []string {
	out := make([]string, 0, len(b.Images))
	for _, i := range b.Images {
		out = append(out, i.Path)
	}
	return out
}
