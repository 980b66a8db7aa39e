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

// Package path implements the per-token evaluation rules of the selector
// language: given a value and the token that addresses into it, produce
// the addressed sub-value or a descriptive error.
//
// This mirrors the shape of the original implementation's
// crates/kjql-runner/src/object.rs, adapted from an IndexMap/rayon
// positional-reassembly scheme to plain ordered slices: a single Apply
// call never needs to reassemble concurrent work, so the result is
// simpler while preserving the exact same key- and element-ordering
// guarantees. Multi-element reassembly (where ordering really is at risk
// from concurrent evaluation) lives in internal/filter.
package path

import (
	"sort"

	"github.com/antflydb/jql/internal/jsonval"
	"github.com/antflydb/jql/internal/token"
)

// EvalSequence applies tokens to v left to right, each result feeding the
// next Apply call, per §4.3's "applied left-to-right" contract. Used both
// for a group's selectors and for a filter's selector sequence (§4.4),
// which share identical per-token semantics.
func EvalSequence(tokens []token.Token, v jsonval.Value) (jsonval.Value, error) {
	cur := v
	var parent token.Token
	hasParent := false
	for _, tok := range tokens {
		next, err := Apply(tok, cur, parent, hasParent)
		if err != nil {
			return jsonval.Value{}, err
		}
		parent = tok
		hasParent = true
		cur = next
	}
	return cur, nil
}

// Apply evaluates tok against v. parent is the token that produced v (used
// only to render error messages); hasParent is false when v is the
// original input value with nothing yet applied to it.
func Apply(tok token.Token, v jsonval.Value, parent token.Token, hasParent bool) (jsonval.Value, error) {
	switch tok.Kind {
	case token.KeySelector:
		return applyKey(tok, v, parent, hasParent)
	case token.MultiKeySelector:
		return applyMultiKey(tok, v, parent, hasParent)
	case token.ArrayIndexSelector:
		return applyArrayIndex(tok, v, parent, hasParent)
	case token.ArrayRangeSelector:
		return applyArrayRange(tok, v, parent, hasParent)
	case token.ObjectIndexSelector:
		return applyObjectIndex(tok, v, parent, hasParent)
	case token.ObjectRangeSelector:
		return applyObjectRange(tok, v, parent, hasParent)
	case token.KeysOperator:
		return applyKeysOperator(v, parent, hasParent)
	case token.FlattenOperator:
		return Flatten(v)
	default:
		// The group-level operators (pipes, group separator, truncate)
		// never reach the path evaluator; the group assembler consumes
		// them before a Group's selectors/filters are built.
		return v, nil
	}
}

// Flatten recursively un-nests array elements one level at a time until
// no element is itself an array; non-array leaves keep their
// left-to-right order. A leading FlattenOperator in a group's selectors
// is consumed into the group's spread flag by the group assembler (§4.2)
// and never reaches here; any other occurrence of "..", whether in a
// group's selectors or in a filter's selector sequence, is evaluated
// in place as this same operation (§4.3's FlattenOperator row, §4.5).
//
// Grounded on the original implementation's src/flatten_json_array.rs,
// without its rayon fork: a single pass is already linear, so there is
// no concurrent reassembly to get right here.
func Flatten(v jsonval.Value) (jsonval.Value, error) {
	if !v.IsArray() {
		return jsonval.Value{}, FlattenNotArrayError{}
	}
	return jsonval.NewArray(flattenElements(v.Elements())), nil
}

func flattenElements(elems []jsonval.Value) []jsonval.Value {
	out := make([]jsonval.Value, 0, len(elems))
	for _, e := range elems {
		if e.IsArray() {
			out = append(out, flattenElements(e.Elements())...)
		} else {
			out = append(out, e)
		}
	}
	return out
}

func applyKey(tok token.Token, v jsonval.Value, parent token.Token, hasParent bool) (jsonval.Value, error) {
	if !v.IsObject() {
		return jsonval.Value{}, NotObjectError{Parent: parent, HasParent: hasParent}
	}
	val, ok := v.Get(tok.Key)
	if !ok {
		return jsonval.Value{}, KeyNotFoundError{Key: tok.Key, Parent: parent, HasParent: hasParent}
	}
	return val, nil
}

func applyMultiKey(tok token.Token, v jsonval.Value, parent token.Token, hasParent bool) (jsonval.Value, error) {
	if !v.IsObject() {
		return jsonval.Value{}, NotObjectError{Parent: parent, HasParent: hasParent}
	}
	pairs := make([]jsonval.Pair, 0, len(tok.Keys))
	var missing []string
	for _, k := range tok.Keys {
		val, ok := v.Get(k)
		if !ok {
			missing = append(missing, k)
			continue
		}
		pairs = append(pairs, jsonval.Pair{Key: k, Value: val})
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return jsonval.Value{}, MultiKeyNotFoundError{Missing: missing, Parent: parent, HasParent: hasParent}
	}
	return jsonval.NewObject(pairs), nil
}

func applyArrayIndex(tok token.Token, v jsonval.Value, parent token.Token, hasParent bool) (jsonval.Value, error) {
	if !v.IsArray() {
		return jsonval.Value{}, NotArrayError{Parent: parent, HasParent: hasParent}
	}
	length := v.Len()
	maxIdx := maxIndex(tok.Indexes)
	if int(maxIdx) >= length {
		return jsonval.Value{}, IndexOutOfBoundsError{Index: int(maxIdx), Length: length, Parent: parent, HasParent: hasParent}
	}
	if len(tok.Indexes) == 1 {
		return v.At(int(tok.Indexes[0])), nil
	}
	elems := make([]jsonval.Value, len(tok.Indexes))
	for i, idx := range tok.Indexes {
		elems[i] = v.At(int(idx))
	}
	return jsonval.NewArray(elems), nil
}

func applyArrayRange(tok token.Token, v jsonval.Value, parent token.Token, hasParent bool) (jsonval.Value, error) {
	if !v.IsArray() {
		return jsonval.Value{}, NotArrayError{Parent: parent, HasParent: hasParent}
	}
	length := v.Len()
	if length == 0 {
		return jsonval.EmptyArray(), nil
	}
	start, end := tok.Rng.Bounds(length)
	if start >= length || end >= length {
		return jsonval.Value{}, RangeOutOfBoundsError{Start: start, End: end, Length: length, Parent: parent, HasParent: hasParent}
	}
	lo, hi := start, end
	reversed := start > end
	if reversed {
		lo, hi = end, start
	}
	elems := make([]jsonval.Value, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		elems = append(elems, v.At(i))
	}
	if reversed {
		reverseValues(elems)
	}
	return jsonval.NewArray(elems), nil
}

func applyObjectIndex(tok token.Token, v jsonval.Value, parent token.Token, hasParent bool) (jsonval.Value, error) {
	if !v.IsObject() {
		return jsonval.Value{}, NotObjectError{Parent: parent, HasParent: hasParent}
	}
	if v.Len() == 0 {
		return jsonval.EmptyObject(), nil
	}
	length := v.Len()
	maxIdx := maxIndex(tok.Indexes)
	if int(maxIdx) >= length {
		return jsonval.Value{}, IndexOutOfBoundsError{Index: int(maxIdx), Length: length, Parent: parent, HasParent: hasParent}
	}
	pairs := make([]jsonval.Pair, len(tok.Indexes))
	for i, idx := range tok.Indexes {
		pairs[i] = v.PairAt(int(idx))
	}
	return jsonval.NewObject(pairs), nil
}

func applyObjectRange(tok token.Token, v jsonval.Value, parent token.Token, hasParent bool) (jsonval.Value, error) {
	if !v.IsObject() {
		return jsonval.Value{}, NotObjectError{Parent: parent, HasParent: hasParent}
	}
	if v.Len() == 0 {
		return jsonval.EmptyObject(), nil
	}
	length := v.Len()
	start, end := tok.Rng.Bounds(length)
	if start >= length || end >= length {
		return jsonval.Value{}, RangeOutOfBoundsError{Start: start, End: end, Length: length, Parent: parent, HasParent: hasParent}
	}
	lo, hi := start, end
	reversed := start > end
	if reversed {
		lo, hi = end, start
	}
	pairs := make([]jsonval.Pair, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		pairs = append(pairs, v.PairAt(i))
	}
	if reversed {
		reversePairs(pairs)
	}
	return jsonval.NewObject(pairs), nil
}

// applyKeysOperator implements the supplemented "@" token: an object's
// keys as a JSON array, in their current (insertion) order. The original
// implementation's equivalent (get_object_as_keys) sorts alphabetically,
// an artifact of reassembling an unordered rayon fold rather than a
// deliberate ordering choice; see DESIGN.md.
func applyKeysOperator(v jsonval.Value, parent token.Token, hasParent bool) (jsonval.Value, error) {
	if !v.IsObject() {
		return jsonval.Value{}, NotObjectError{Parent: parent, HasParent: hasParent}
	}
	keys := v.Keys()
	elems := make([]jsonval.Value, len(keys))
	for i, k := range keys {
		elems[i] = jsonval.NewString(k)
	}
	return jsonval.NewArray(elems), nil
}

func maxIndex(indexes []token.Index) token.Index {
	max := indexes[0]
	for _, idx := range indexes[1:] {
		if idx > max {
			max = idx
		}
	}
	return max
}

func reverseValues(vs []jsonval.Value) {
	for i, j := 0, len(vs)-1; i < j; i, j = i+1, j-1 {
		vs[i], vs[j] = vs[j], vs[i]
	}
}

func reversePairs(ps []jsonval.Pair) {
	for i, j := 0, len(ps)-1; i < j; i, j = i+1, j-1 {
		ps[i], ps[j] = ps[j], ps[i]
	}
}
