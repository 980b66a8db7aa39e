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

// Package walker runs a Group (or a slice of Groups) against a JSON value,
// per §4.5 and §4.6: selectors, then the filter engine, then flatten and
// truncate as the group's flags require.
package walker

import (
	"github.com/antflydb/jql/internal/filter"
	"github.com/antflydb/jql/internal/group"
	"github.com/antflydb/jql/internal/jsonval"
	"github.com/antflydb/jql/internal/path"
)

// WalkGroup evaluates a single Group against the original input value.
func WalkGroup(g group.Group, input jsonval.Value) (jsonval.Value, error) {
	value := input
	if len(g.Selectors) > 0 {
		v, err := path.EvalSequence(g.Selectors, input)
		if err != nil {
			return jsonval.Value{}, err
		}
		value = v
	}

	value, err := filter.Apply(value, g.Filters, g.FilterLenses)
	if err != nil {
		return jsonval.Value{}, err
	}

	if g.Spread {
		value, err = path.Flatten(value)
		if err != nil {
			return jsonval.Value{}, err
		}
	}

	if g.Truncate {
		value = Truncate(value)
	}

	return value, nil
}

// WalkGroups evaluates every group against the same original input and
// joins the results: a single group's value is returned bare, otherwise
// the groups' values are collected into an array in order. Any group's
// error aborts the whole call; there is no partial result.
func WalkGroups(groups []group.Group, input jsonval.Value) (jsonval.Value, error) {
	results := make([]jsonval.Value, len(groups))
	for i, g := range groups {
		v, err := WalkGroup(g, input)
		if err != nil {
			return jsonval.Value{}, err
		}
		results[i] = v
	}
	if len(results) == 1 {
		return results[0], nil
	}
	return jsonval.NewArray(results), nil
}

// Truncate replaces composite values with empty shells: arrays become
// [], objects become {}; primitives, and the top-level container's own
// shape, are kept. The mapping is non-recursive: only the container's
// direct children are replaced.
func Truncate(v jsonval.Value) jsonval.Value {
	switch v.Kind() {
	case jsonval.Array:
		elems := v.Elements()
		out := make([]jsonval.Value, len(elems))
		for i, e := range elems {
			out[i] = shapePrimitive(e)
		}
		return jsonval.NewArray(out)
	case jsonval.Object:
		pairs := v.Pairs()
		out := make([]jsonval.Pair, len(pairs))
		for i, p := range pairs {
			out[i] = jsonval.Pair{Key: p.Key, Value: shapePrimitive(p.Value)}
		}
		return jsonval.NewObject(out)
	default:
		return v
	}
}

func shapePrimitive(v jsonval.Value) jsonval.Value {
	switch v.Kind() {
	case jsonval.Array:
		return jsonval.EmptyArray()
	case jsonval.Object:
		return jsonval.EmptyObject()
	default:
		return v
	}
}
