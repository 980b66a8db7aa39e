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

// Package jql is the library surface of the JSON query language: a
// selector string addresses into a JSON value, is filtered, and is
// reassembled per §4 of the selector grammar.
//
// Walker and GroupsWalker mirror the split the original implementation
// keeps between its get_selections_from_selector_str and
// walker/groups_walker entry points: SelectorsParser does the parsing
// once so a caller that will reuse the same selector across many
// documents doesn't pay for re-tokenizing it each time.
package jql

import (
	"github.com/antflydb/jql/internal/group"
	"github.com/antflydb/jql/internal/jsonval"
	"github.com/antflydb/jql/internal/walker"
)

// Value is the JSON value type shared by every entry point in this
// package: the decoded input, any selector result, and the payloads
// the jql binary prints are all of this type.
type Value = jsonval.Value

// Groups is a parsed, ready-to-walk selector. Parse it once with
// SelectorsParser and reuse it across many input documents.
type Groups = group.Group

// SelectorsParser parses a selector string into its Groups, without
// running it against any input. Returns the same parse errors Walker
// does (EmptyInput, ParsingError, TruncateError, EmptyGroup).
func SelectorsParser(selector string) ([]Groups, error) {
	return group.Parse(selector)
}

// Walker parses selector and runs it against v in one call.
func Walker(v Value, selector string) (Value, error) {
	groups, err := SelectorsParser(selector)
	if err != nil {
		return Value{}, err
	}
	return GroupsWalker(v, groups)
}

// GroupsWalker runs an already-parsed selector against v. Use this with
// SelectorsParser when the same selector will be applied to many
// documents, to avoid re-tokenizing it each time.
func GroupsWalker(v Value, groups []Groups) (Value, error) {
	return walker.WalkGroups(groups, v)
}

// WalkerJSON decodes raw JSON bytes, runs selector against the result,
// and re-encodes the outcome, using the active jsonval codec (see
// jsonval.SetCodec).
func WalkerJSON(data []byte, selector string) ([]byte, error) {
	v, err := jsonval.Decode(data)
	if err != nil {
		return nil, err
	}
	out, err := Walker(v, selector)
	if err != nil {
		return nil, err
	}
	return jsonval.Encode(out)
}

// GroupsWalkerJSON is WalkerJSON for an already-parsed selector.
func GroupsWalkerJSON(data []byte, groups []Groups) ([]byte, error) {
	v, err := jsonval.Decode(data)
	if err != nil {
		return nil, err
	}
	out, err := GroupsWalker(v, groups)
	if err != nil {
		return nil, err
	}
	return jsonval.Encode(out)
}
