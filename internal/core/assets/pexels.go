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

// This file implements the Pexels provider, the first rung of both cascades.
// Pexels authenticates with a bare API key in the Authorization header.
package assets

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/google/uuid"
)

const (
	pexelsPhotoURL = "https://api.pexels.com/v1/search"
	pexelsVideoURL = "https://api.pexels.com/videos/search"
)

// PexelsSource serves both images and videos from the Pexels API.
type PexelsSource struct {
	apiKey  string
	fetcher *fetcher
}

// NewPexelsSource creates a Pexels provider. The client may be nil to use the
// default timeout-bounded client.
func NewPexelsSource(apiKey string, client *http.Client) *PexelsSource {
	return &PexelsSource{apiKey: apiKey, fetcher: newFetcher(client)}
}

func (p *PexelsSource) Name() string { return "pexels" }

// Enabled reports whether the provider has credentials. Disabled providers
// are skipped by the cascade without counting as failures.
func (p *PexelsSource) Enabled() bool { return p.apiKey != "" }

type pexelsPhotoResponse struct {
	Photos []struct {
		ID  int64 `json:"id"`
		Src struct {
			Original string `json:"original"`
		} `json:"src"`
	} `json:"photos"`
}

// FetchImages searches Pexels photos and downloads up to max originals.
func (p *PexelsSource) FetchImages(ctx context.Context, term string, max int, dir string) ([]string, error) {
	if !p.Enabled() {
		return nil, nil
	}
	headers := map[string]string{"Authorization": p.apiKey}
	searchURL := fmt.Sprintf("%s?query=%s&per_page=%d", pexelsPhotoURL, url.QueryEscape(term), max)

	body, err := p.fetcher.get(ctx, searchURL, headers)
	if err != nil {
		return nil, fmt.Errorf("pexels photo search: %w", err)
	}
	defer body.Close()

	var result pexelsPhotoResponse
	if err := json.NewDecoder(body).Decode(&result); err != nil {
		return nil, fmt.Errorf("pexels photo response: %w", err)
	}

	paths := make([]string, 0, max)
	for _, photo := range result.Photos {
		if len(paths) >= max {
			break
		}
		filename := fmt.Sprintf("pexels_%d_%s.jpg", photo.ID, uuid.NewString()[:8])
		path, err := p.fetcher.download(ctx, photo.Src.Original, dir, filename, nil)
		if err != nil {
			slog.Warn("failed to download pexels image", "id", photo.ID, "error", err)
			continue
		}
		paths = append(paths, path)
	}
	return paths, nil
}

type pexelsVideoResponse struct {
	Videos []struct {
		ID         int64 `json:"id"`
		VideoFiles []struct {
			Quality  string `json:"quality"`
			FileType string `json:"file_type"`
			Link     string `json:"link"`
		} `json:"video_files"`
	} `json:"videos"`
}

// FetchVideos searches Pexels videos and downloads up to max clips,
// preferring SD mp4 renditions for size.
func (p *PexelsSource) FetchVideos(ctx context.Context, term string, max int, dir string) ([]string, error) {
	if !p.Enabled() {
		return nil, nil
	}
	headers := map[string]string{"Authorization": p.apiKey}
	searchURL := fmt.Sprintf("%s?query=%s&per_page=%d", pexelsVideoURL, url.QueryEscape(term), max)

	body, err := p.fetcher.get(ctx, searchURL, headers)
	if err != nil {
		return nil, fmt.Errorf("pexels video search: %w", err)
	}
	defer body.Close()

	var result pexelsVideoResponse
	if err := json.NewDecoder(body).Decode(&result); err != nil {
		return nil, fmt.Errorf("pexels video response: %w", err)
	}

	paths := make([]string, 0, max)
	for _, video := range result.Videos {
		if len(paths) >= max {
			break
		}

		link := ""
		for _, f := range video.VideoFiles {
			if f.Quality == "sd" && f.FileType == "video/mp4" {
				link = f.Link
				break
			}
		}
		if link == "" {
			for _, f := range video.VideoFiles {
				if f.FileType == "video/mp4" {
					link = f.Link
					break
				}
			}
		}
		if link == "" {
			slog.Warn("no mp4 rendition for pexels video", "id", video.ID)
			continue
		}

		filename := fmt.Sprintf("pexels_video_%d_%s.mp4", video.ID, uuid.NewString()[:8])
		path, err := p.fetcher.download(ctx, link, dir, filename, nil)
		if err != nil {
			slog.Warn("failed to download pexels video", "id", video.ID, "error", err)
			continue
		}
		paths = append(paths, path)
	}
	return paths, nil
}
