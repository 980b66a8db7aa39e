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

package jql

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/antflydb/jql/internal/jsonval"
)

func TestWalkerSelectsNestedKey(t *testing.T) {
	v, err := Walker(decode(t, `{"a":[{"b":1}]}`), `"a"|>"b"`)
	require.NoError(t, err)
	require.Equal(t, 1, v.Len())
	require.Equal(t, "1", v.At(0).NumberText())
}

func TestWalkerAppliesStandaloneLensWithoutPipeIn(t *testing.T) {
	v, err := Walker(decode(t, `{"filter":[{"color":"red"},{"color":"blue"}]}`), `"filter"|={"color"="red"}`)
	require.NoError(t, err)
	require.Equal(t, 1, v.Len())
	got, ok := v.At(0).Get("color")
	require.True(t, ok)
	require.Equal(t, "red", got.Str())
}

func TestWalkerReturnsParserError(t *testing.T) {
	_, err := Walker(decode(t, `{}`), "")
	require.EqualError(t, err, "Empty input")
}

func TestWalkerReturnsEvaluationError(t *testing.T) {
	_, err := Walker(decode(t, `{"a":1}`), `"b"`)
	require.EqualError(t, err, `Node "b" not found on the parent element`)
}

func TestSelectorsParserReusedAcrossGroupsWalker(t *testing.T) {
	groups, err := SelectorsParser(`"a"`)
	require.NoError(t, err)

	got1, err := GroupsWalker(decode(t, `{"a":1}`), groups)
	require.NoError(t, err)
	require.Equal(t, "1", got1.NumberText())

	got2, err := GroupsWalker(decode(t, `{"a":2}`), groups)
	require.NoError(t, err)
	require.Equal(t, "2", got2.NumberText())
}

func TestWalkerJSONRoundTrips(t *testing.T) {
	out, err := WalkerJSON([]byte(`{"a":[1,2,3]}`), `"a"`)
	require.NoError(t, err)
	require.JSONEq(t, "[1,2,3]", string(out))
}

func TestGroupsWalkerJSONRoundTrips(t *testing.T) {
	groups, err := SelectorsParser(`"a"`)
	require.NoError(t, err)

	out, err := GroupsWalkerJSON([]byte(`{"a":"x"}`), groups)
	require.NoError(t, err)
	require.JSONEq(t, `"x"`, string(out))
}

func decode(t *testing.T, raw string) Value {
	t.Helper()
	v, err := jsonval.Decode([]byte(raw))
	require.NoError(t, err)
	return v
}
