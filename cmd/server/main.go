// Copyright 2025 ReelComp Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package main is the entry point for the shorts assembly backend server.
//
// The application runs a Gin web server exposing a REST API for submitting
// render jobs, checking their status, and obtaining signed streaming URLs for
// finished renders. The server is instrumented with OpenTelemetry for
// logging, tracing, and metrics.
//
// Alongside the HTTP surface, the server manages background Pub/Sub listeners
// that drive the two workflows: shorts assembly (the full render path) and
// asset prefetch (warming provider bundles ahead of a render).
package main

import (
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/pubsub"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Th3Ya0vi/ReelComp/internal/core/model"
	"github.com/Th3Ya0vi/ReelComp/internal/telemetry"
)

// signedURLExpiry is how long a streaming URL stays valid.
const signedURLExpiry = 15 * time.Minute

// main orchestrates logging, telemetry, state initialization, the web
// server, and graceful shutdown.
func main() {
	telemetry.SetupLogging()
	slog.Info("Logging initialized")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	config := GetConfig()

	_, err := telemetry.SetupOpenTelemetry(ctx, config)
	if err != nil {
		slog.Error("Failed to setup OpenTelemetry", "error", err)
		log.Fatal(err)
	}
	slog.Info("Tracing initialized")

	InitState(ctx)
	slog.Info("Initialized State")

	r := gin.Default()
	r.Use(otelgin.Middleware("reelcomp-server"))
	r.Use(cors.Default())

	apiV1 := r.Group("/api/v1")
	{
		ShortsRouter(apiV1)
		Dashboard(apiV1)
	}

	srv := &http.Server{
		Addr:         ":8080",
		Handler:      r,
		ReadTimeout:  20 * time.Second,
		WriteTimeout: 20 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to listen: ", "error", err)
		}
	}()
	slog.Info("Server Ready on port 8080")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutdown Server ...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server Shutdown Failed:", "error", err)
	}

	log.Println("Server exiting")
}

// ShortsRouter sets up the job-facing API routes.
//
// Endpoints:
//   - POST /shorts: accepts a job request and publishes it to the render topic.
//   - GET /shorts/:id: returns the persisted job record.
//   - GET /shorts/:id/stream: returns a time-limited signed URL for the render.
func ShortsRouter(r *gin.RouterGroup) {
	shorts := r.Group("/shorts")
	{
		// Handler for POST /shorts. The server assigns an ID when the caller
		// does not; the response carries the ID to poll for status.
		shorts.POST("", func(c *gin.Context) {
			var req model.ShortsJobRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if req.ID == "" {
				req.ID = uuid.NewString()
			}
			if req.AudioBucket == "" || req.AudioObject == "" ||
				req.TranscriptBucket == "" || req.TranscriptObject == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "audio and transcript references are required"})
				return
			}

			data, err := json.Marshal(&req)
			if err != nil {
				c.Status(http.StatusInternalServerError)
				return
			}

			topicName := state.config.TopicSubscriptions[SubscriptionShortsJobs].Topic
			result := state.cloud.PubsubClient.Topic(topicName).Publish(c, &pubsub.Message{Data: data})
			if _, err := result.Get(c); err != nil {
				log.Printf("failed to publish job request %s: %v\n", req.ID, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not enqueue job"})
				return
			}

			c.JSON(http.StatusAccepted, gin.H{"id": req.ID})
		})

		// Handler for GET /shorts/:id
		shorts.GET("/:id", func(c *gin.Context) {
			id := c.Param("id")
			job, err := state.jobService.Get(c, id)
			if err != nil {
				c.Status(http.StatusNotFound)
				return
			}
			c.JSON(http.StatusOK, job)
		})

		// Handler for GET /shorts/:id/stream. The renders live in a private
		// bucket; clients stream through a short-lived signed URL.
		shorts.GET("/:id/stream", func(c *gin.Context) {
			id := c.Param("id")
			job, err := state.jobService.Get(c, id)
			if err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
				return
			}
			if job.RenderURL == "" {
				c.JSON(http.StatusConflict, gin.H{"error": "Job has no render yet"})
				return
			}

			signedURL, err := state.jobService.GenerateSignedURL(c, job.RenderURL, signedURLExpiry)
			if err != nil {
				log.Printf("Error generating signed URL: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate streaming URL"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"url": signedURL})
		})
	}
}
