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

// This file defines the dashboard endpoint: a recent-jobs listing used by
// operators to eyeball throughput and failures.
package main

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// defaultStatsLimit is how many recent jobs the dashboard returns when the
// caller does not say.
const defaultStatsLimit = 20

// Dashboard configures the statistics routes under "/stats".
func Dashboard(r *gin.RouterGroup) {
	stats := r.Group("/stats")
	{
		// Handler for GET /stats?count=<n>: the newest job records, most
		// recent first.
		stats.GET("", func(c *gin.Context) {
			count, err := strconv.Atoi(c.DefaultQuery("count", strconv.Itoa(defaultStatsLimit)))
			if err != nil || count <= 0 {
				count = defaultStatsLimit
			}
			jobs, err := state.jobService.Recent(c, count)
			if err != nil {
				log.Printf("Error listing recent jobs: %v\n", err)
				c.Status(http.StatusInternalServerError)
				return
			}
			c.JSON(http.StatusOK, jobs)
		})
	}
}
