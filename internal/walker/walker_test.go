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
	"testing"

	"github.com/antflydb/jql/internal/group"
	"github.com/antflydb/jql/internal/jsonval"
	"github.com/antflydb/jql/internal/token"
	"github.com/stretchr/testify/require"
)

func obj(pairs ...jsonval.Pair) jsonval.Value { return jsonval.NewObject(pairs) }
func arr(vs ...jsonval.Value) jsonval.Value   { return jsonval.NewArray(vs) }
func num(n uint64) jsonval.Value              { return jsonval.NewUint(n) }
func str(s string) jsonval.Value              { return jsonval.NewString(s) }

func TestWalkGroupRootNoOp(t *testing.T) {
	input := obj(jsonval.Pair{Key: "a", Value: num(1)})
	g := group.Group{Root: true}

	got, err := WalkGroup(g, input)
	require.NoError(t, err)
	require.True(t, jsonval.Equal(input, got))
}

func TestWalkGroupSelectorsThenFilter(t *testing.T) {
	input := obj(jsonval.Pair{Key: "items", Value: arr(
		obj(jsonval.Pair{Key: "name", Value: str("a")}),
		obj(jsonval.Pair{Key: "name", Value: str("b")}),
	)})
	g := group.Group{
		Selectors: []token.Token{{Kind: token.KeySelector, Key: "items"}},
		Filters:   []token.Token{{Kind: token.KeySelector, Key: "name"}},
	}

	got, err := WalkGroup(g, input)
	require.NoError(t, err)
	require.Equal(t, 2, got.Len())
	require.True(t, jsonval.Equal(str("a"), got.At(0)))
}

func TestWalkGroupSpreadFlattens(t *testing.T) {
	input := arr(arr(num(1), num(2)), arr(num(3)))
	g := group.Group{Spread: true, Root: false}

	got, err := WalkGroup(g, input)
	require.NoError(t, err)
	require.Equal(t, 3, got.Len())
}

func TestWalkGroupTruncateAppliesToFinalValue(t *testing.T) {
	input := arr(num(1), obj(jsonval.Pair{Key: "a", Value: num(1)}), arr(num(2)))
	g := group.Group{Root: true, Truncate: true}

	got, err := WalkGroup(g, input)
	require.NoError(t, err)
	require.True(t, jsonval.Equal(num(1), got.At(0)))
	require.Equal(t, 0, got.At(1).Len())
	require.True(t, got.At(1).IsObject())
	require.Equal(t, 0, got.At(2).Len())
	require.True(t, got.At(2).IsArray())
}

func TestWalkGroupsSingleGroupReturnsBareValue(t *testing.T) {
	input := num(1)
	got, err := WalkGroups([]group.Group{{Root: true}}, input)
	require.NoError(t, err)
	require.True(t, jsonval.Equal(num(1), got))
}

func TestWalkGroupsMultipleGroupsJoinIntoArray(t *testing.T) {
	input := obj(jsonval.Pair{Key: "a", Value: num(1)}, jsonval.Pair{Key: "b", Value: num(2)})
	groups := []group.Group{
		{Selectors: []token.Token{{Kind: token.KeySelector, Key: "a"}}},
		{Selectors: []token.Token{{Kind: token.KeySelector, Key: "b"}}},
	}

	got, err := WalkGroups(groups, input)
	require.NoError(t, err)
	require.Equal(t, 2, got.Len())
	require.True(t, jsonval.Equal(num(1), got.At(0)))
	require.True(t, jsonval.Equal(num(2), got.At(1)))
}

func TestWalkGroupsErrorAbortsJoin(t *testing.T) {
	input := obj(jsonval.Pair{Key: "a", Value: num(1)})
	groups := []group.Group{
		{Selectors: []token.Token{{Kind: token.KeySelector, Key: "a"}}},
		{Selectors: []token.Token{{Kind: token.KeySelector, Key: "missing"}}},
	}

	_, err := WalkGroups(groups, input)
	require.Error(t, err)
}

func TestTruncateArray(t *testing.T) {
	v := arr(num(1), arr(num(2)), obj(jsonval.Pair{Key: "a", Value: num(1)}))
	got := Truncate(v)
	require.True(t, jsonval.Equal(num(1), got.At(0)))
	require.True(t, got.At(1).IsArray())
	require.Equal(t, 0, got.At(1).Len())
	require.True(t, got.At(2).IsObject())
	require.Equal(t, 0, got.At(2).Len())
}

func TestTruncateObject(t *testing.T) {
	v := obj(jsonval.Pair{Key: "a", Value: arr(num(1))}, jsonval.Pair{Key: "b", Value: num(2)})
	got := Truncate(v)
	a, _ := got.Get("a")
	b, _ := got.Get("b")
	require.Equal(t, 0, a.Len())
	require.True(t, jsonval.Equal(num(2), b))
}

func TestTruncatePrimitiveUnchanged(t *testing.T) {
	got := Truncate(num(5))
	require.True(t, jsonval.Equal(num(5), got))
}
