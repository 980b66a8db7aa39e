/*
Copyright 2025 The JQL Contributors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package group turns a token stream into the Group units the walker
// executes, per spec §3 and §4.2.
package group

import (
	"strings"

	"github.com/antflydb/jql/internal/lexer"
	"github.com/antflydb/jql/internal/token"
)

// Group is the unit the walker executes.
type Group struct {
	Selectors     []token.Token
	Filters       []token.Token
	FilterLenses  []token.Lens
	Spread        bool
	Truncate      bool
	Root          bool
}

// Parse tokenizes and assembles a selector string into Groups in one step.
func Parse(selector string) ([]Group, error) {
	if strings.TrimSpace(selector) == "" {
		return nil, EmptyInputError{}
	}

	tokens, unparsed := lexer.Tokenize(selector)
	return Assemble(tokens, unparsed)
}

// Assemble implements the §4.2 algorithm over an already-tokenized stream.
func Assemble(tokens []token.Token, unparsed string) ([]Group, error) {
	if len(tokens) == 0 && unparsed == "" {
		return nil, EmptyInputError{}
	}

	if unparsed != "" {
		return nil, ParsingError{Tokens: token.Stringify(tokens), Unparsed: unparsed}
	}

	truncateCount := 0
	truncateIsLast := false
	for i, t := range tokens {
		if t.Kind == token.TruncateOperator {
			truncateCount++
			truncateIsLast = i == len(tokens)-1
		}
	}
	if truncateCount > 1 || (truncateCount == 1 && !truncateIsLast) {
		return nil, TruncateError{Tokens: token.Stringify(tokens)}
	}

	chunks := splitOnGroupSeparator(tokens)

	groups := make([]Group, 0, len(chunks))
	for i, chunk := range chunks {
		isLastGroup := i == len(chunks)-1
		g, err := buildGroup(chunk, isLastGroup)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}

func splitOnGroupSeparator(tokens []token.Token) [][]token.Token {
	var chunks [][]token.Token
	var current []token.Token
	for _, t := range tokens {
		if t.Kind == token.GroupSeparator {
			chunks = append(chunks, current)
			current = nil
			continue
		}
		current = append(current, t)
	}
	chunks = append(chunks, current)
	return chunks
}

// stripLenses removes LensSelector tokens from in, appending each one's
// Lenses to out, and returns the remaining tokens in order.
func stripLenses(in []token.Token, out *[]token.Lens) []token.Token {
	var rest []token.Token
	for _, t := range in {
		if t.Kind == token.LensSelector {
			*out = append(*out, t.Lenses...)
			continue
		}
		rest = append(rest, t)
	}
	return rest
}

func buildGroup(chunk []token.Token, isLastGroup bool) (Group, error) {
	var g Group

	if len(chunk) > 0 && chunk[0].Kind == token.FlattenOperator {
		g.Spread = true
		chunk = chunk[1:]
	}

	if isLastGroup && len(chunk) > 0 && chunk[len(chunk)-1].Kind == token.TruncateOperator {
		g.Truncate = true
		chunk = chunk[:len(chunk)-1]
	}

	pipeInAt := -1
	for i, t := range chunk {
		if t.Kind == token.PipeInOperator {
			pipeInAt = i
			break
		}
	}

	var selectorSeg, filterSeg []token.Token
	if pipeInAt == -1 {
		selectorSeg = chunk
	} else {
		selectorSeg = chunk[:pipeInAt]
		filterSeg = chunk[pipeInAt+1:]
	}

	// LensSelector tokens (`|={...}`) are lifted into FilterLenses
	// wherever they occur in the chunk, not only after a PipeInOperator:
	// a lens can stand on its own, filtering the selectors' result
	// without an explicit `|>` filter sequence (spec §8 scenario 8).
	var lenses []token.Lens
	selectors := stripLenses(selectorSeg, &lenses)

	var filters []token.Token
	for _, t := range filterSeg {
		if t.Kind == token.PipeOutOperator {
			continue
		}
		if t.Kind == token.LensSelector {
			lenses = append(lenses, t.Lenses...)
			continue
		}
		filters = append(filters, t)
	}
	g.Selectors = selectors
	g.Filters = filters
	g.FilterLenses = lenses

	if len(g.Selectors) == 0 && !g.Spread {
		g.Root = true
	}

	// A group is only vacuous when it has no explicit root marker (i.e.
	// it was spread-only, ".." with nothing else) and nothing downstream
	// of the path (no filters, no lenses) gives it something to do.
	if len(g.Selectors) == 0 && !g.Root && len(g.Filters) == 0 && len(g.FilterLenses) == 0 {
		return Group{}, EmptyGroupError{}
	}

	return g, nil
}
