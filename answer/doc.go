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


// Package answer turns retrieved context or web results into final
// answers with citations.
//
// The Assembler drives a language model with source-specific prompts:
// corpus answers are grounded strictly in the provided context with page
// citations, web answers synthesize multiple sources with [n] markers.
// Generation failures produce an apologetic record flagged as failed
// rather than an error, so the workflow always has something to return.
package answer
