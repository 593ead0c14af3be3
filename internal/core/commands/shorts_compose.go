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

// This file defines the compositing command: background b-roll, narration
// audio, and the caption overlays are assembled into the final vertical
// video with ffmpeg.
//
// Logic Flow:
//  1. Each b-roll clip is looped, trimmed to an equal share of the narration
//     length, scaled to cover the frame, and center-cropped to the target
//     geometry.
//  2. The normalized clips are concatenated into one background stream.
//  3. Every caption overlay contributes one drawtext filter per wrapped line,
//     gated by a between(t,...) enable expression, faded with an alpha
//     expression built from the overlay's animator, and offset by a slide
//     expression when the variant calls for one.
//  4. The narration audio is muxed in and the result is trimmed to the
//     clamped duration.
package commands

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/Th3Ya0vi/ReelComp/internal/cloud"
	"github.com/Th3Ya0vi/ReelComp/internal/core/captions"
	"github.com/Th3Ya0vi/ReelComp/internal/core/cor"
	"github.com/Th3Ya0vi/ReelComp/internal/core/model"
)

// ShortsCompose renders the final video for a job.
type ShortsCompose struct {
	cor.BaseCommand
	config *cloud.Config
}

// NewShortsCompose is the constructor for the ShortsCompose command.
func NewShortsCompose(name string, config *cloud.Config) *ShortsCompose {
	return &ShortsCompose{BaseCommand: *cor.NewBaseCommand(name), config: config}
}

// IsExecutable requires everything the render needs: the request, the
// workspace, the asset bundle, the overlays, and the narration audio.
func (c *ShortsCompose) IsExecutable(context cor.Context) bool {
	return context != nil && context.GetContext() != nil &&
		context.Get(GetJobRequestParameterName()) != nil &&
		context.Get(GetWorkspaceParameterName()) != nil &&
		context.Get(GetAssetBundleParameterName()) != nil &&
		context.Get(GetOverlaysParameterName()) != nil &&
		context.Get(GetAudioFileParameterName()) != nil
}

// Execute runs the composition and publishes the render path.
func (c *ShortsCompose) Execute(context cor.Context) {
	req := context.Get(GetJobRequestParameterName()).(*model.ShortsJobRequest)
	workspace := context.Get(GetWorkspaceParameterName()).(string)
	bundle := context.Get(GetAssetBundleParameterName()).(*model.AssetBundle)
	overlays := context.Get(GetOverlaysParameterName()).([]*captions.CaptionOverlay)
	audioPath := context.Get(GetAudioFileParameterName()).(string)

	clips := bundle.VideoPaths()
	if len(clips) == 0 {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("job %s has no background clips to compose", req.ID))
		return
	}

	duration := clampDuration(req.DurationSeconds, c.config.Video.MaxDurationSeconds)
	outPath := filepath.Join(workspace, fmt.Sprintf("%s.mp4", req.ID))

	video := c.background(clips, duration)
	for _, ov := range overlays {
		video = c.applyOverlay(video, ov)
	}
	audio := ffmpeg.Input(audioPath).Audio()

	err := ffmpeg.Output(
		[]*ffmpeg.Stream{video, audio},
		outPath,
		ffmpeg.KwArgs{
			"c:v":      "libx264",
			"pix_fmt":  "yuv420p",
			"c:a":      "aac",
			"b:a":      "192k",
			"t":        fmt.Sprintf("%.3f", duration),
			"movflags": "+faststart",
		},
	).OverWriteOutput().Silent(true).Run()
	if err != nil {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("ffmpeg composition failed for job %s: %w", req.ID, err))
		return
	}

	slog.Info("composition complete", "job", req.ID, "render", outPath, "captions", len(overlays))
	c.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(GetRenderFileParameterName(), outPath)
	context.Add(c.GetOutputParam(), outPath)
}

// background normalizes every clip to the target geometry and concatenates
// them. Clips are looped so even a short placeholder fills its share of the
// timeline.
func (c *ShortsCompose) background(clips []string, duration float64) *ffmpeg.Stream {
	w, h, fps := c.config.Video.Width, c.config.Video.Height, c.config.Video.FPS
	share := duration / float64(len(clips))

	streams := make([]*ffmpeg.Stream, 0, len(clips))
	for _, clip := range clips {
		s := ffmpeg.Input(clip, ffmpeg.KwArgs{"stream_loop": -1}).Video().
			Filter("trim", ffmpeg.Args{}, ffmpeg.KwArgs{"duration": fmt.Sprintf("%.3f", share)}).
			Filter("setpts", ffmpeg.Args{"PTS-STARTPTS"}).
			Filter("scale", ffmpeg.Args{fmt.Sprintf("%d:%d", w, h)}, ffmpeg.KwArgs{"force_original_aspect_ratio": "increase"}).
			Filter("crop", ffmpeg.Args{fmt.Sprintf("%d:%d", w, h)}).
			Filter("fps", ffmpeg.Args{fmt.Sprintf("%d", fps)}).
			Filter("setsar", ffmpeg.Args{"1"})
		streams = append(streams, s)
	}
	if len(streams) == 1 {
		return streams[0]
	}
	return ffmpeg.Concat(streams, ffmpeg.KwArgs{"v": 1, "a": 0})
}

// applyOverlay adds one drawtext filter per wrapped caption line.
func (c *ShortsCompose) applyOverlay(video *ffmpeg.Stream, ov *captions.CaptionOverlay) *ffmpeg.Stream {
	lineHeight := float64(ov.Params.FontSize) * 12 / 10
	xExpr, yBaseExpr := c.positionExprs(ov)

	for i, line := range ov.Params.Lines {
		kwargs := ffmpeg.KwArgs{
			"text":        escapeDrawText(line),
			"font":        ov.Style.Font,
			"fontsize":    ov.Params.FontSize,
			"fontcolor":   ov.Style.Color,
			"borderw":     fmt.Sprintf("%.1f", ov.Style.StrokeWidth),
			"bordercolor": ov.Style.StrokeColor,
			"x":           xExpr,
			"y":           fmt.Sprintf("%s+%.1f", yBaseExpr, float64(i)*lineHeight),
			"enable":      fmt.Sprintf("between(t,%.3f,%.3f)", ov.Start, ov.End),
			"alpha":       alphaExpr(ov),
		}
		if ov.Style.Background != "" {
			kwargs["box"] = 1
			kwargs["boxcolor"] = ov.Style.Background
			kwargs["boxborderw"] = 10
		}
		video = video.Filter("drawtext", ffmpeg.Args{}, kwargs)
	}
	return video
}

// positionExprs returns the x and base-y drawtext expressions for the
// overlay. Slide variants decay a fixed offset to zero over the entrance
// phase; everything else sits at the measured position.
func (c *ShortsCompose) positionExprs(ov *captions.CaptionOverlay) (x string, y string) {
	x = "(w-text_w)/2"
	y = fmt.Sprintf("%.1f", ov.Position.Y)

	in := ov.Animator.EntryDuration()
	if in <= 0 {
		return x, y
	}
	// 1 at entrance start, 0 once the caption has settled.
	decay := fmt.Sprintf("(1-min((t-%.3f)/%.3f,1))", ov.Start, in)

	switch ov.Variant {
	case captions.VariantSlideUp:
		y = fmt.Sprintf("%.1f+%.1f*%s", ov.Position.Y, captions.SlideDistance, decay)
	case captions.VariantSlideLeft:
		x = fmt.Sprintf("(w-text_w)/2+%.1f*%s", captions.SlideDistance, decay)
	case captions.VariantSlideRight:
		x = fmt.Sprintf("(w-text_w)/2-%.1f*%s", captions.SlideDistance, decay)
	}
	return x, y
}

// alphaExpr builds the fade-in/fade-out expression from the overlay's
// animator timings.
func alphaExpr(ov *captions.CaptionOverlay) string {
	in := ov.Animator.EntryDuration()
	out := ov.Animator.ExitDuration()
	expr := "1"
	if out > 0 {
		expr = fmt.Sprintf("if(gt(t,%.3f),max((%.3f-t)/%.3f,0),1)", ov.End-out, ov.End, out)
	}
	if in > 0 {
		expr = fmt.Sprintf("if(lt(t,%.3f),max((t-%.3f)/%.3f,0),%s)", ov.Start+in, ov.Start, in, expr)
	}
	return expr
}

// escapeDrawText escapes the characters drawtext treats specially.
func escapeDrawText(text string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`'`, `\'`,
		`:`, `\:`,
		`%`, `\%`,
	)
	return r.Replace(text)
}
