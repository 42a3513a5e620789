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


// Package websearch provides the web fallback source for questions the
// corpus cannot answer.
//
// The DuckDuckGo client scrapes the HTML search endpoint (no API key
// required) and can enrich each result with the linked page's main text
// content. Search failures never panic; they surface as errors so the
// workflow can degrade to a "no answer" response.
package websearch
