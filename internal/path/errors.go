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

package path

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/antflydb/jql/internal/token"
)

// parentDescr renders the "<parent-descr>" fragment for the given parent
// token, or the root-element fragment when there is no parent.
func parentDescr(parent token.Token, hasParent, capitalized bool) string {
	if !hasParent {
		return token.RootDescriptor(capitalized)
	}
	return parent.Descriptor(capitalized)
}

// KeyNotFoundError is returned by KeySelector when the object lacks the key.
type KeyNotFoundError struct {
	Key       string
	Parent    token.Token
	HasParent bool
}

func (e KeyNotFoundError) Error() string {
	return fmt.Sprintf(`Node "%s" not found on %s`, e.Key, onParentPhrase(e.Parent, e.HasParent))
}

// onParentPhrase renders "parent <descr>" or "the parent element".
func onParentPhrase(parent token.Token, hasParent bool) string {
	if !hasParent {
		return "the parent element"
	}
	return "parent " + parent.Descriptor(false)
}

// MultiKeyNotFoundError is returned by MultiKeySelector when one or more
// keys are absent; Missing is already sorted ascending.
type MultiKeyNotFoundError struct {
	Missing   []string
	Parent    token.Token
	HasParent bool
}

func (e MultiKeyNotFoundError) Error() string {
	quoted := make([]string, len(e.Missing))
	for i, k := range e.Missing {
		quoted[i] = strconv.Quote(k)
	}
	return fmt.Sprintf("Keys %s not found on %s", strings.Join(quoted, ","), onParentPhrase(e.Parent, e.HasParent))
}

// IndexOutOfBoundsError is returned by index selectors when an index
// exceeds the collection length.
type IndexOutOfBoundsError struct {
	Index     int
	Length    int
	Parent    token.Token
	HasParent bool
}

func (e IndexOutOfBoundsError) Error() string {
	return fmt.Sprintf("Index [%d] is out of bound, %s has a length of %d", e.Index, parentDescr(e.Parent, e.HasParent, false), e.Length)
}

// RangeOutOfBoundsError is returned by range selectors when either bound
// exceeds the collection length.
type RangeOutOfBoundsError struct {
	Start, End int
	Length     int
	Parent     token.Token
	HasParent  bool
}

func (e RangeOutOfBoundsError) Error() string {
	return fmt.Sprintf("Range [%d:%d] is out of bound, %s has a length of %d", e.Start, e.End, parentDescr(e.Parent, e.HasParent, false), e.Length)
}

// NotArrayError is returned when an array-only operation meets a non-array.
type NotArrayError struct {
	Parent    token.Token
	HasParent bool
}

func (e NotArrayError) Error() string {
	return fmt.Sprintf("%s is not an array", parentDescr(e.Parent, e.HasParent, true))
}

// NotObjectError is returned when an object-only operation meets a non-object.
type NotObjectError struct {
	Parent    token.Token
	HasParent bool
}

func (e NotObjectError) Error() string {
	return fmt.Sprintf("%s is not an object", parentDescr(e.Parent, e.HasParent, true))
}

// FlattenNotArrayError is returned by Flatten when its value isn't an array.
type FlattenNotArrayError struct{}

func (FlattenNotArrayError) Error() string { return "Only arrays can be flattened." }
