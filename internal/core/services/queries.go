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

// This file centralizes the BigQuery SQL used by the services. Table names
// cannot be parameterized in BigQuery, so the fully qualified table name is
// interpolated with an fmt.Sprintf verb; every runtime value arrives as a
// named query parameter.
package services

const (
	// QryFindJobById looks up one job record by its unique ID. The `%s`
	// placeholder is the fully qualified name of the jobs table; the ID binds
	// to the @id parameter.
	QryFindJobById = "SELECT * from `%s` WHERE id = @id"

	// QryRecentJobs returns the newest job records for the dashboard. The
	// `%s` placeholder is the fully qualified name of the jobs table; the row
	// cap binds to the @limit parameter.
	QryRecentJobs = "SELECT * from `%s` ORDER BY create_time DESC LIMIT @limit"
)
