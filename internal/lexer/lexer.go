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

package lexer

import (
	"strconv"

	"github.com/antflydb/jql/internal/token"
)

// Tokenize turns a selector string into an ordered token stream and the
// unconsumed tail. Tokenizing never fails on its own; an unparseable tail
// is reported by the caller (the group assembler), per spec §4.1.
func Tokenize(input string) ([]token.Token, string) {
	s := newScanner(input)
	var tokens []token.Token

	for {
		mark := s.mark()
		s.skipSpace()
		if s.eof() {
			return tokens, ""
		}

		tok, ok := parseFragment(s)
		if !ok {
			// Roll back anything the failed fragment parser consumed; the
			// reported unparsed tail starts at the first non-space rune.
			s.reset(mark)
			s.skipSpace()
			return tokens, s.rest()
		}
		s.skipSpace()
		tokens = append(tokens, tok)
	}
}

// parseFragment dispatches on the next significant rune to the matching
// token parser, mirroring the original tokenizer's dispatch! on peek(any).
func parseFragment(s *scanner) (token.Token, bool) {
	r, ok := s.peek()
	if !ok {
		return token.Token{}, false
	}

	switch r {
	case '[':
		return parseArrayIndexOrRange(s)
	case '"':
		return parseKeySelector(s)
	case '{':
		return parseCurlySelector(s)
	case '|':
		return parseLensOrPipeIn(s)
	case '.':
		return parseFlatten(s)
	case '<':
		return parsePipeOut(s)
	case ',':
		return parseGroupSeparator(s)
	case '!':
		return parseTruncate(s)
	case '@':
		return parseKeysOperator(s)
	default:
		return token.Token{}, false
	}
}

func parseKeySelector(s *scanner) (token.Token, bool) {
	key, ok := s.quotedKey()
	if !ok {
		return token.Token{}, false
	}
	return token.Token{Kind: token.KeySelector, Key: key}, true
}

func parseFlatten(s *scanner) (token.Token, bool) {
	if !s.literal("..") {
		return token.Token{}, false
	}
	return token.Token{Kind: token.FlattenOperator}, true
}

func parsePipeOut(s *scanner) (token.Token, bool) {
	if !s.literal("<|") {
		return token.Token{}, false
	}
	return token.Token{Kind: token.PipeOutOperator}, true
}

func parseGroupSeparator(s *scanner) (token.Token, bool) {
	if !s.literal(",") {
		return token.Token{}, false
	}
	return token.Token{Kind: token.GroupSeparator}, true
}

func parseTruncate(s *scanner) (token.Token, bool) {
	if !s.literal("!") {
		return token.Token{}, false
	}
	return token.Token{Kind: token.TruncateOperator}, true
}

func parseKeysOperator(s *scanner) (token.Token, bool) {
	if !s.literal("@") {
		return token.Token{}, false
	}
	return token.Token{Kind: token.KeysOperator}, true
}

func parseLensOrPipeIn(s *scanner) (token.Token, bool) {
	mark := s.mark()
	if lenses, ok := parseLenses(s); ok {
		return token.Token{Kind: token.LensSelector, Lenses: lenses}, true
	}
	s.reset(mark)
	if s.literal("|>") {
		return token.Token{Kind: token.PipeInOperator}, true
	}
	return token.Token{}, false
}

// parseIndexList parses one or more unsigned decimal integers separated
// by commas, with whitespace permitted around each.
func parseIndexList(s *scanner) ([]token.Index, bool) {
	var out []token.Index
	for {
		s.skipSpace()
		digits, ok := s.digits()
		if !ok {
			return nil, false
		}
		n, err := strconv.ParseUint(digits, 10, 64)
		if err != nil {
			return nil, false
		}
		out = append(out, token.Index(n))
		s.skipSpace()
		if s.literal(",") {
			continue
		}
		return out, true
	}
}

// parseRangeBody parses "a?:b?" where a and b are optional unsigned ints.
func parseRangeBody(s *scanner) (token.Range, bool) {
	var rng token.Range
	s.skipSpace()
	if digits, ok := s.digits(); ok {
		n, err := strconv.ParseUint(digits, 10, 64)
		if err != nil {
			return token.Range{}, false
		}
		rng.HasStart = true
		rng.Start = token.Index(n)
	}
	s.skipSpace()
	if !s.literal(":") {
		return token.Range{}, false
	}
	s.skipSpace()
	if digits, ok := s.digits(); ok {
		n, err := strconv.ParseUint(digits, 10, 64)
		if err != nil {
			return token.Range{}, false
		}
		rng.HasEnd = true
		rng.End = token.Index(n)
	}
	return rng, true
}

// parseArrayIndexOrRange parses "[i,j,...]" or "[a?:b?]".
func parseArrayIndexOrRange(s *scanner) (token.Token, bool) {
	mark := s.mark()
	if !s.literal("[") {
		return token.Token{}, false
	}
	s.skipSpace()

	idxMark := s.mark()
	if indexes, ok := parseIndexList(s); ok {
		s.skipSpace()
		if s.literal("]") {
			return token.Token{Kind: token.ArrayIndexSelector, Indexes: indexes}, true
		}
	}
	s.reset(idxMark)

	if rng, ok := parseRangeBody(s); ok {
		s.skipSpace()
		if s.literal("]") {
			return token.Token{Kind: token.ArrayRangeSelector, Rng: rng}, true
		}
	}

	s.reset(mark)
	return token.Token{}, false
}

// parseCurlySelector disambiguates multi-key / object index / object
// range inside "{...}" by trying each in a fixed order, per spec §4.1.
func parseCurlySelector(s *scanner) (token.Token, bool) {
	mark := s.mark()
	if !s.literal("{") {
		return token.Token{}, false
	}
	s.skipSpace()

	keysMark := s.mark()
	if keys, ok := parseMultiKeyBody(s); ok {
		s.skipSpace()
		if s.literal("}") {
			return token.Token{Kind: token.MultiKeySelector, Keys: keys}, true
		}
	}
	s.reset(keysMark)

	idxMark := s.mark()
	if indexes, ok := parseIndexList(s); ok {
		s.skipSpace()
		if s.literal("}") {
			return token.Token{Kind: token.ObjectIndexSelector, Indexes: indexes}, true
		}
	}
	s.reset(idxMark)

	if rng, ok := parseRangeBody(s); ok {
		s.skipSpace()
		if s.literal("}") {
			return token.Token{Kind: token.ObjectRangeSelector, Rng: rng}, true
		}
	}

	s.reset(mark)
	return token.Token{}, false
}

// parseMultiKeyBody parses a comma-separated list of at least one quoted
// key ("a","b",...), used both for MultiKeySelector and in lens key paths.
func parseMultiKeyBody(s *scanner) ([]string, bool) {
	var keys []string
	for {
		s.skipSpace()
		key, ok := s.quotedKey()
		if !ok {
			if len(keys) == 0 {
				return nil, false
			}
			return nil, false
		}
		keys = append(keys, key)
		s.skipSpace()
		if s.literal(",") {
			continue
		}
		return keys, true
	}
}

// parseLensKeyPathToken parses one key-path fragment inside a lens: a
// KeySelector, MultiKeySelector, ArrayIndexSelector, ArrayRangeSelector,
// ObjectIndexSelector, or ObjectRangeSelector.
func parseLensKeyPathToken(s *scanner) (token.Token, bool) {
	r, ok := s.peek()
	if !ok {
		return token.Token{}, false
	}
	switch r {
	case '"':
		return parseKeySelector(s)
	case '[':
		return parseArrayIndexOrRange(s)
	case '{':
		return parseCurlySelector(s)
	default:
		return token.Token{}, false
	}
}

func parseLensKeyPath(s *scanner) ([]token.Token, bool) {
	var path []token.Token
	for {
		s.skipSpace()
		mark := s.mark()
		tok, ok := parseLensKeyPathToken(s)
		if !ok {
			s.reset(mark)
			break
		}
		path = append(path, tok)
	}
	if len(path) == 0 {
		return nil, false
	}
	return path, true
}

func parseLensValue(s *scanner) (token.LensValue, bool) {
	s.skipSpace()
	r, ok := s.peek()
	if !ok {
		return token.LensValue{}, false
	}
	switch {
	case r == 'f':
		if s.literal("false") {
			return token.LensValue{Kind: token.LensBool, Bool: false}, true
		}
	case r == 't':
		if s.literal("true") {
			return token.LensValue{Kind: token.LensBool, Bool: true}, true
		}
	case r == 'n':
		if s.literal("null") {
			return token.LensValue{Kind: token.LensNull}, true
		}
	case r >= '0' && r <= '9':
		digits, ok := s.digits()
		if !ok {
			return token.LensValue{}, false
		}
		n, err := strconv.ParseUint(digits, 10, 64)
		if err != nil {
			return token.LensValue{}, false
		}
		return token.LensValue{Kind: token.LensNumber, Num: n}, true
	case r == '"':
		key, ok := s.quotedKey()
		if !ok {
			return token.LensValue{}, false
		}
		return token.LensValue{Kind: token.LensString, Str: key}, true
	}
	return token.LensValue{}, false
}

func parseLensOne(s *scanner) (token.Lens, bool) {
	path, ok := parseLensKeyPath(s)
	if !ok {
		return token.Lens{}, false
	}
	lens := token.Lens{KeyPath: path}
	s.skipSpace()
	mark := s.mark()
	if s.literal("=") {
		val, ok := parseLensValue(s)
		if !ok {
			s.reset(mark)
			return lens, true
		}
		lens.Value = &val
	}
	return lens, true
}

// parseLenses parses "|={ L (, L)* }".
func parseLenses(s *scanner) ([]token.Lens, bool) {
	mark := s.mark()
	if !s.literal("|={") {
		return nil, false
	}
	var lenses []token.Lens
	for {
		s.skipSpace()
		lens, ok := parseLensOne(s)
		if !ok {
			s.reset(mark)
			return nil, false
		}
		lenses = append(lenses, lens)
		s.skipSpace()
		if s.literal(",") {
			continue
		}
		break
	}
	s.skipSpace()
	if !s.literal("}") {
		s.reset(mark)
		return nil, false
	}
	return lenses, true
}
