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


package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Shape is the top-level JSON value a caller expects from the model.
type Shape int

const (
	// ShapeObject expects a single {...} value.
	ShapeObject Shape = iota
	// ShapeArray expects a single [...] value.
	ShapeArray
)

func (s Shape) delimiters() (opening, closing string) {
	if s == ShapeArray {
		return "[", "]"
	}
	return "{", "}"
}

// parseStrategy extracts a candidate JSON document from a model response.
// ok is false when the strategy does not apply to the text.
type parseStrategy struct {
	name    string
	extract func(text string, shape Shape) (candidate string, ok bool)
}

// parseChain is tried in order; the first candidate that decodes wins.
var parseChain = []parseStrategy{
	{name: "whole", extract: wholeResponse},
	{name: "bracketed", extract: bracketed},
	{name: "repaired", extract: repaired},
}

// Decode decodes the JSON value of the given shape embedded in a model
// response into a fresh T. Returns an error wrapping ErrNoJSON when no
// strategy produced a decodable value.
func Decode[T any](text string, shape Shape) (T, error) {
	var lastErr error
	for _, strategy := range parseChain {
		candidate, ok := strategy.extract(text, shape)
		if !ok {
			continue
		}
		var v T
		if err := json.Unmarshal([]byte(candidate), &v); err != nil {
			lastErr = fmt.Errorf("%s: %w", strategy.name, err)
			continue
		}
		return v, nil
	}

	var zero T
	if lastErr != nil {
		return zero, fmt.Errorf("%w: %w", ErrNoJSON, lastErr)
	}
	return zero, ErrNoJSON
}

// DecodeObject decodes the JSON object embedded in a model response.
func DecodeObject[T any](text string) (T, error) {
	return Decode[T](text, ShapeObject)
}

// DecodeArray decodes the JSON array embedded in a model response.
func DecodeArray[T any](text string) (T, error) {
	return Decode[T](text, ShapeArray)
}

// wholeResponse treats the full response, minus markdown code fences, as JSON.
func wholeResponse(text string, shape Shape) (string, bool) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	opening, _ := shape.delimiters()
	if !strings.HasPrefix(text, opening) {
		return "", false
	}
	return text, true
}

// bracketed takes the substring from the first opening delimiter to the
// last closing delimiter.
func bracketed(text string, shape Shape) (string, bool) {
	opening, closing := shape.delimiters()
	start := strings.Index(text, opening)
	end := strings.LastIndex(text, closing)
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return text[start : end+1], true
}

// repaired is bracketed followed by repairJSON.
func repaired(text string, shape Shape) (string, bool) {
	candidate, ok := bracketed(text, shape)
	if !ok {
		return "", false
	}
	fixed := repairJSON(candidate)
	if fixed == candidate {
		return "", false
	}
	return fixed, true
}
