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

package filter

import (
	"testing"

	"github.com/antflydb/jql/internal/jsonval"
	"github.com/antflydb/jql/internal/token"
	"github.com/stretchr/testify/require"
)

func obj(pairs ...jsonval.Pair) jsonval.Value { return jsonval.NewObject(pairs) }
func num(n uint64) jsonval.Value              { return jsonval.NewUint(n) }
func str(s string) jsonval.Value              { return jsonval.NewString(s) }

func TestApplyNoFiltersOnNonArrayIsNoOp(t *testing.T) {
	v := num(42)
	got, err := Apply(v, nil, nil)
	require.NoError(t, err)
	require.True(t, jsonval.Equal(v, got))
}

func TestApplyFiltersOnNonArrayErrors(t *testing.T) {
	_, err := Apply(num(42), []token.Token{{Kind: token.KeySelector, Key: "a"}}, nil)
	require.EqualError(t, err, "A filter can only be applied to an array")
}

func TestApplyLensesOnNonArrayErrors(t *testing.T) {
	lens := token.Lens{KeyPath: []token.Token{{Kind: token.KeySelector, Key: "a"}}}
	_, err := Apply(num(42), nil, []token.Lens{lens})
	require.EqualError(t, err, "A filter can only be applied to an array")
}

func TestApplyFiltersAppliesSelectorPerElement(t *testing.T) {
	v := jsonval.NewArray([]jsonval.Value{
		obj(jsonval.Pair{Key: "name", Value: str("laptop")}, jsonval.Pair{Key: "price", Value: num(999)}),
		obj(jsonval.Pair{Key: "name", Value: str("mouse")}, jsonval.Pair{Key: "price", Value: num(20)}),
	})
	got, err := Apply(v, []token.Token{{Kind: token.KeySelector, Key: "name"}}, nil)
	require.NoError(t, err)
	require.Equal(t, 2, got.Len())
	require.True(t, jsonval.Equal(str("laptop"), got.At(0)))
	require.True(t, jsonval.Equal(str("mouse"), got.At(1)))
}

func TestApplyNoFiltersNoLensesReturnsElementsUnchanged(t *testing.T) {
	v := jsonval.NewArray([]jsonval.Value{num(1), num(2), num(3)})
	got, err := Apply(v, nil, nil)
	require.NoError(t, err)
	require.Equal(t, 3, got.Len())
}

func TestApplyLensKeyPresenceOnly(t *testing.T) {
	v := jsonval.NewArray([]jsonval.Value{
		obj(jsonval.Pair{Key: "featured", Value: jsonval.NewBool(true)}),
		obj(jsonval.Pair{Key: "name", Value: str("x")}),
	})
	lens := token.Lens{KeyPath: []token.Token{{Kind: token.KeySelector, Key: "featured"}}}

	got, err := Apply(v, nil, []token.Lens{lens})
	require.NoError(t, err)
	require.Equal(t, 1, got.Len())
}

func TestApplyLensWithValueMatch(t *testing.T) {
	v := jsonval.NewArray([]jsonval.Value{
		obj(jsonval.Pair{Key: "category", Value: str("tech")}),
		obj(jsonval.Pair{Key: "category", Value: str("books")}),
	})
	val := token.LensValue{Kind: token.LensString, Str: "tech"}
	lens := token.Lens{KeyPath: []token.Token{{Kind: token.KeySelector, Key: "category"}}, Value: &val}

	got, err := Apply(v, nil, []token.Lens{lens})
	require.NoError(t, err)
	require.Equal(t, 1, got.Len())
	catVal, ok := got.At(0).Get("category")
	require.True(t, ok)
	require.True(t, jsonval.Equal(str("tech"), catVal))
}

func TestApplyLensWithNumberMatch(t *testing.T) {
	v := jsonval.NewArray([]jsonval.Value{
		obj(jsonval.Pair{Key: "stock", Value: num(0)}),
		obj(jsonval.Pair{Key: "stock", Value: num(5)}),
	})
	val := token.LensValue{Kind: token.LensNumber, Num: 5}
	lens := token.Lens{KeyPath: []token.Token{{Kind: token.KeySelector, Key: "stock"}}, Value: &val}

	got, err := Apply(v, nil, []token.Lens{lens})
	require.NoError(t, err)
	require.Equal(t, 1, got.Len())
}

func TestApplyLensNonObjectElementsPassThrough(t *testing.T) {
	v := jsonval.NewArray([]jsonval.Value{num(1), obj(jsonval.Pair{Key: "a", Value: num(1)})})
	lens := token.Lens{KeyPath: []token.Token{{Kind: token.KeySelector, Key: "missing"}}}

	got, err := Apply(v, nil, []token.Lens{lens})
	require.NoError(t, err)
	// The number element isn't an object, so it passes lens filtering
	// unconditionally; the object element doesn't match and is dropped.
	require.Equal(t, 1, got.Len())
	require.True(t, jsonval.Equal(num(1), got.At(0)))
}

func TestApplyPreservesOriginalOrderUnderConcurrency(t *testing.T) {
	elems := make([]jsonval.Value, 200)
	for i := range elems {
		elems[i] = num(uint64(i))
	}
	v := jsonval.NewArray(elems)

	got, err := Apply(v, nil, nil)
	require.NoError(t, err)
	require.Equal(t, len(elems), got.Len())
	for i := range elems {
		require.True(t, jsonval.Equal(num(uint64(i)), got.At(i)), "index %d", i)
	}
}

func TestApplyFilterErrorAbortsWholeFilter(t *testing.T) {
	v := jsonval.NewArray([]jsonval.Value{
		obj(jsonval.Pair{Key: "a", Value: num(1)}),
		num(2),
	})
	_, err := Apply(v, []token.Token{{Kind: token.KeySelector, Key: "a"}}, nil)
	require.Error(t, err)
}
