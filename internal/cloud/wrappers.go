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

// Package cloud provides components for interacting with Google Cloud services.
// This file implements a wrapper around the Generative AI image model using
// the Decorator pattern: rate limiting and bounded retries are added on top
// of the raw client without altering it.
//
// Why this is important:
//   - Rate Limiting: Vertex AI enforces per-minute quotas on image
//     generation. The wrapper keeps the cascade's generative rung inside
//     those limits instead of surfacing quota errors.
//   - Retry Logic: Generation requests fail for transient reasons. A bounded
//     retry makes the fallback rung resilient without hiding a dead quota.
//
// Structs:
//   - QuotaAwareImageModel: Wraps the genai image model handle with a rate
//     limiter. Satisfies the acquisition cascade's StillGenerator contract.
//
// Functions:
//   - NewQuotaAwareImageModel: Constructor for the wrapped model.
//   - GenerateStill: Generates one image for a prompt and writes it to disk.
package cloud

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// imageGenMaxRetries bounds transient-failure retries per request.
const imageGenMaxRetries = 3

// stillFinanceKeywords steer prompt shaping: finance topics get chart and
// coin imagery instead of a literal rendering of the term.
var stillFinanceKeywords = []string{
	"money", "saving", "budget", "finance", "invest", "financial",
	"wealth", "dollar", "cash", "bank", "economy",
}

// QuotaAwareImageModel is a decorator over the genai models handle that adds
// rate limiting and retries to image generation. It is the production
// implementation of the acquisition cascade's StillGenerator.
type QuotaAwareImageModel struct {
	ModelName   string
	ModelHandle *genai.Models
	RateLimit   *rate.Limiter
}

// NewQuotaAwareImageModel creates a wrapped image model. requestsPerSecond
// caps the sustained request rate; bursts are limited to one request so the
// placeholder batch cannot spike the quota.
func NewQuotaAwareImageModel(name string, handle *genai.Models, requestsPerSecond int) *QuotaAwareImageModel {
	if requestsPerSecond < 1 {
		requestsPerSecond = 1
	}
	return &QuotaAwareImageModel{
		ModelName:   name,
		ModelHandle: handle,
		RateLimit:   rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

// shapePrompt turns a bare search term into a generation prompt. Finance
// terms get concrete financial imagery; everything else gets a generic
// social-video treatment.
func shapePrompt(term string) string {
	lower := strings.ToLower(term)
	for _, kw := range stillFinanceKeywords {
		if strings.Contains(lower, kw) {
			return fmt.Sprintf("Stylized illustration representing %s, with coins, graphs, and subtle imagery", term)
		}
	}
	return fmt.Sprintf("High quality, visually appealing image of %s, suitable as a background for a social media video", term)
}

// GenerateStill generates a single image for the term and writes it into dir,
// returning the file path. The call blocks on the rate limiter and retries
// transient failures up to the bound.
func (q *QuotaAwareImageModel) GenerateStill(ctx context.Context, term string, dir string) (string, error) {
	prompt := shapePrompt(term)
	config := &genai.GenerateImagesConfig{
		NumberOfImages: 1,
	}

	var lastErr error
	for attempt := 0; attempt <= imageGenMaxRetries; attempt++ {
		if err := q.RateLimit.Wait(ctx); err != nil {
			return "", err
		}

		resp, err := q.ModelHandle.GenerateImages(ctx, q.ModelName, prompt, config)
		if err != nil {
			lastErr = err
			continue
		}
		if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil {
			lastErr = fmt.Errorf("image model returned no image for %q", term)
			continue
		}

		filename := fmt.Sprintf("generated_%s_%s.png", strings.ReplaceAll(term, " ", "_"), uuid.NewString()[:8])
		path := filepath.Join(dir, filename)
		if err := os.WriteFile(path, resp.GeneratedImages[0].Image.ImageBytes, 0o644); err != nil {
			return "", fmt.Errorf("write generated image: %w", err)
		}
		return path, nil
	}
	return "", fmt.Errorf("image generation failed after %d attempts: %w", imageGenMaxRetries+1, lastErr)
}
