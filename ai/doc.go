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


// Package ai provides the language model abstraction used by contract
// analysis and result ranking.
//
// The package is built around two interfaces:
//
//   - Generator: sends a prompt to a chat model and returns its raw reply
//   - AIProvider: owns a configured Generator and its resources
//
// Models rarely return clean JSON. DecodeObject and DecodeArray try a
// chain of strategies in order (the whole reply with markdown fences
// stripped, then the span between the first opening and last closing
// delimiter, then that span after repairJSON) and report ErrNoJSON when
// none decodes.
//
// # Implementation Packages
//
//   - ai/openai: langchaingo client for any OpenAI-compatible endpoint,
//     including Gemini through GeminiHost
//   - ai/mock: scripted Generator for tests
//
// Public constructors return interfaces; mock constructors return
// concrete types so tests can inspect call counts and prompts.
//
//	provider, err := openai.NewProvider(ai.NewConfig(
//	    ai.WithHost(ai.GeminiHost),
//	    ai.WithModel("gemini-2.5-flash"),
//	    ai.WithAPIKey(os.Getenv("GEMINI_API_KEY")),
//	))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	reply, err := provider.Generator().Generate(ctx, prompt)
package ai
