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

// Package filter implements the per-element filter engine of §4.4: lens
// matching followed by a selector sequence, applied to every element of
// an array.
//
// Element evaluation is independent and side-effect free, so it is forked
// across goroutines the way the original implementation forks with rayon's
// par_bridge in crates/kjql-runner/src/object.rs — keyed by index and
// reassembled afterwards, so the observable result is identical to a
// sequential walk regardless of completion order (§5).
package filter

import (
	"strconv"

	"github.com/antflydb/jql/internal/jsonval"
	"github.com/antflydb/jql/internal/path"
	"github.com/antflydb/jql/internal/token"
	"golang.org/x/sync/errgroup"
)

// Apply runs the filter engine against v. filters is a selector sequence
// (identical semantics to the path evaluator); lenses are the lifted
// LensSelector predicates from the group.
func Apply(v jsonval.Value, filters []token.Token, lenses []token.Lens) (jsonval.Value, error) {
	if !v.IsArray() {
		if len(filters) == 0 && len(lenses) == 0 {
			return v, nil
		}
		return jsonval.Value{}, NotArrayError{}
	}

	elems := v.Elements()
	type outcome struct {
		retained bool
		value    jsonval.Value
	}
	outcomes := make([]outcome, len(elems))

	var g errgroup.Group
	for i, e := range elems {
		i, e := i, e
		g.Go(func() error {
			retained, value, err := evalElement(e, filters, lenses)
			if err != nil {
				return err
			}
			outcomes[i] = outcome{retained: retained, value: value}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return jsonval.Value{}, err
	}

	result := make([]jsonval.Value, 0, len(elems))
	for _, o := range outcomes {
		if o.retained {
			result = append(result, o.value)
		}
	}
	return jsonval.NewArray(result), nil
}

// evalElement runs the per-element procedure of §4.4 step 1-2 on one
// array element.
func evalElement(e jsonval.Value, filters []token.Token, lenses []token.Lens) (retained bool, value jsonval.Value, err error) {
	if len(lenses) > 0 && !matchesAnyLens(e, lenses) {
		return false, jsonval.Value{}, nil
	}
	result, err := path.EvalSequence(filters, e)
	if err != nil {
		return false, jsonval.Value{}, err
	}
	return true, result, nil
}

// matchesAnyLens reports whether e should be retained against lenses. Per
// the original implementation (crates kjql "apply_filter"'s filter
// closure), lenses only constrain elements that are objects; any other
// shape passes through untouched.
func matchesAnyLens(e jsonval.Value, lenses []token.Lens) bool {
	if !e.IsObject() {
		return true
	}
	for _, lens := range lenses {
		if lensMatches(e, lens) {
			return true
		}
	}
	return false
}

func lensMatches(obj jsonval.Value, lens token.Lens) bool {
	if len(lens.KeyPath) == 0 {
		return false
	}
	key := lens.KeyPath[0].Key
	val, ok := obj.Get(key)
	if !ok {
		return false
	}
	if lens.Value == nil {
		return true
	}
	return lensValueEquals(*lens.Value, val)
}

func lensValueEquals(lv token.LensValue, v jsonval.Value) bool {
	switch lv.Kind {
	case token.LensBool:
		return v.Kind() == jsonval.Bool && v.Bool() == lv.Bool
	case token.LensNull:
		return v.Kind() == jsonval.Null
	case token.LensNumber:
		return v.Kind() == jsonval.Number && v.NumberText() == strconv.FormatUint(lv.Num, 10)
	case token.LensString:
		return v.Kind() == jsonval.String && v.Str() == lv.Str
	default:
		return false
	}
}
