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


// Package workflow orchestrates question answering as a small state
// machine.
//
// The graph:
//
//	retrieve
//	  ├─(sufficient)──→ generate KB answer ──┬─(ok)──────→ format output
//	  │                                      └─(hedged)─┐
//	  └─(insufficient)→ notify fallback ←───────────────┘
//	                      ↓
//	                    search web → generate web answer → format output
//
// Retrieval sufficiency is decided by the relevance assessor; a second
// chance to fall back comes from the insufficiency classifier, which
// catches knowledge-base answers that hedge ("the context does not
// contain..."). Component failures degrade the answer rather than abort:
// the only fatal input error is an empty question.
package workflow
