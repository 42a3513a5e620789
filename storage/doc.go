// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package storage provides the storage abstraction layer for answerit.
//
// This package defines the repository interface that decouples the vector
// index implementation from the retrieval logic. It allows different
// storage backends (BadgerDB, in-memory, etc.) to be used interchangeably.
//
// The central operation is nearest-neighbor lookup: FindNearest returns
// stored passages together with raw distances (smaller is closer), leaving
// score normalization to the retrieval layer.
package storage
