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

package walker

import (
	"encoding/json"
	"math/rand"
	"testing"
	"testing/quick"

	"github.com/google/go-cmp/cmp"

	"github.com/antflydb/jql/internal/group"
	"github.com/antflydb/jql/internal/jsonval"
	"github.com/antflydb/jql/internal/path"
	"github.com/antflydb/jql/internal/token"
)

// asAny decodes a Value back to a plain Go tree for cmp.Diff, since
// jsonval.Value holds unexported fields cmp can't see into directly;
// comparing the decoded JSON tree is also naturally order-insensitive
// for object keys.
func asAny(t *testing.T, v jsonval.Value) any {
	t.Helper()
	data, err := jsonval.Encode(v)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

func requireJSONEqual(t *testing.T, want, got jsonval.Value) {
	t.Helper()
	if diff := cmp.Diff(asAny(t, want), asAny(t, got)); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

// genArray builds a random array of numbers, one level deep, for the
// range-inversion and flatten properties.
func genArray(size int) jsonval.Value {
	elems := make([]jsonval.Value, size)
	for i := range elems {
		elems[i] = jsonval.NewUint(uint64(i))
	}
	return jsonval.NewArray(elems)
}

// TestPropertyRangeInversionIsAPalindrome encodes §8 property 3: for an
// array A with 0<=a<=b<|A|, reverse(A[a:b]) == A[b:a] — exercised
// through path.Apply's actual ArrayRangeSelector handling in both
// directions, not a hand-reversed expectation.
func TestPropertyRangeInversionIsAPalindrome(t *testing.T) {
	prop := func(seed uint8) bool {
		size := int(seed%8) + 2
		r := rand.New(rand.NewSource(int64(seed)))
		a, b := r.Intn(size), r.Intn(size)
		if a > b {
			a, b = b, a
		}

		src := genArray(size)
		forward, err := path.Apply(
			token.Token{Kind: token.ArrayRangeSelector, Rng: token.Range{HasStart: true, Start: token.Index(a), HasEnd: true, End: token.Index(b)}},
			src, token.Token{}, false,
		)
		if err != nil {
			t.Fatalf("forward range: %v", err)
		}
		backward, err := path.Apply(
			token.Token{Kind: token.ArrayRangeSelector, Rng: token.Range{HasStart: true, Start: token.Index(b), HasEnd: true, End: token.Index(a)}},
			src, token.Token{}, false,
		)
		if err != nil {
			t.Fatalf("backward range: %v", err)
		}

		reversed := make([]jsonval.Value, forward.Len())
		for i, v := range forward.Elements() {
			reversed[forward.Len()-1-i] = v
		}

		return cmp.Diff(asAny(t, jsonval.NewArray(reversed)), asAny(t, backward)) == ""
	}

	if err := quick.Check(prop, &quick.Config{MaxCount: 200}); err != nil {
		t.Error(err)
	}
}

// TestPropertyFlattenIsIdempotent encodes §8 property 4's second half:
// flatten(flatten(A)) == flatten(A).
func TestPropertyFlattenIsIdempotent(t *testing.T) {
	nested := arr(
		arr(num(1), arr(num(2), num(3))),
		num(4),
		arr(arr(arr(num(5)))),
	)

	once, err := path.Flatten(nested)
	requireNoErrorT(t, err)
	twice, err := path.Flatten(once)
	requireNoErrorT(t, err)

	requireJSONEqual(t, once, twice)
}

func requireNoErrorT(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestPropertyGroupingEqualsIndividualWalks encodes §8 property 5:
// walker(j, "S1, S2") equals [walker(j, "S1"), walker(j, "S2")].
func TestPropertyGroupingEqualsIndividualWalks(t *testing.T) {
	input := obj(
		jsonval.Pair{Key: "a", Value: num(1)},
		jsonval.Pair{Key: "b", Value: num(2)},
	)

	ga := groupFor(t, `"a"`)
	gb := groupFor(t, `"b"`)

	combined, err := WalkGroups(append(append([]group.Group{}, ga...), gb...), input)
	requireNoErrorT(t, err)

	wantA, err := WalkGroup(ga[0], input)
	requireNoErrorT(t, err)
	wantB, err := WalkGroup(gb[0], input)
	requireNoErrorT(t, err)

	requireJSONEqual(t, jsonval.NewArray([]jsonval.Value{wantA, wantB}), combined)
}

// TestPropertyDeterminism encodes §8 property 1: walking the same
// selector against the same document twice yields identical output.
func TestPropertyDeterminism(t *testing.T) {
	input := obj(
		jsonval.Pair{Key: "items", Value: arr(num(3), num(1), num(2))},
	)
	groups := groupFor(t, `"items"|>[0]`)

	first, err := WalkGroups(groups, input)
	requireNoErrorT(t, err)
	second, err := WalkGroups(groups, input)
	requireNoErrorT(t, err)

	requireJSONEqual(t, first, second)
}

func groupFor(t *testing.T, selector string) []group.Group {
	t.Helper()
	groups, err := group.Parse(selector)
	requireNoErrorT(t, err)
	return groups
}
