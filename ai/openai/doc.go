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

// Package openai provides the ai.Generator implementation for
// OpenAI-compatible chat APIs.
//
// It uses langchaingo's openai client, so the same code talks to OpenAI,
// a local Ollama or vLLM server, or Gemini through ai.GeminiHost.
//
// # Usage
//
//	config := ai.NewConfig(
//	    ai.WithHost(ai.GeminiHost),
//	    ai.WithModel("gemini-2.5-flash"),
//	    ai.WithAPIKey(key),
//	)
//
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	reply, err := provider.Generator().Generate(ctx, "Summarize this lease ...")
package openai
