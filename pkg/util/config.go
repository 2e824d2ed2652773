// Copyright 2024-2025 colstream
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package util

type StreamOptions struct {
	Name        string `tag:"name"`
	Parallelism int    `tag:"parallelism"`
}

type DebugOptions struct {
	PrintRequest bool `tag:"printRequest"`
	PrintResult  bool `tag:"printResult"`
}

type Config struct {
	Stream StreamOptions `tag:"stream"`
	Debug  DebugOptions  `tag:"debug"`
}
