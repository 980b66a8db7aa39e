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

// Package token defines the lexical tokens produced by the selector
// tokenizer and consumed by the group assembler and path evaluator.
package token

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind discriminates the variant held by a Token.
type Kind int

const (
	// KeySelector is a double-quoted object key, e.g. "name".
	KeySelector Kind = iota
	// MultiKeySelector selects several object keys in the listed order.
	MultiKeySelector
	// ArrayIndexSelector selects one or more array positions.
	ArrayIndexSelector
	// ArrayRangeSelector selects an inclusive array slice.
	ArrayRangeSelector
	// ObjectIndexSelector selects one or more object positions by entry order.
	ObjectIndexSelector
	// ObjectRangeSelector selects an inclusive slice over object entry order.
	ObjectRangeSelector
	// KeysOperator ("@") returns an object's keys as an array, in order.
	KeysOperator
	// LensSelector filters array elements against one or more Lens predicates.
	LensSelector
	// FlattenOperator ("..") recursively un-nests arrays.
	FlattenOperator
	// PipeInOperator ("|>") starts a per-element filter sub-query.
	PipeInOperator
	// PipeOutOperator ("<|") ends a per-element filter sub-query.
	PipeOutOperator
	// GroupSeparator (",") splits the token stream into Groups.
	GroupSeparator
	// TruncateOperator ("!") replaces composites with empty shells.
	TruncateOperator
)

// Index identifies an array or object position. Always non-negative.
type Index uint

// Range is an inclusive (start, end) pair; either bound may be absent.
type Range struct {
	Start    Index
	End      Index
	HasStart bool
	HasEnd   bool
}

// Bounds resolves the range against a collection of the given length:
// an absent start defaults to 0, an absent end defaults to len-1.
func (r Range) Bounds(length int) (start, end int) {
	start = 0
	if r.HasStart {
		start = int(r.Start)
	}
	end = length - 1
	if r.HasEnd {
		end = int(r.End)
	}
	return start, end
}

// String renders a Range the way it appears in error messages, e.g. "[1:3]".
func (r Range) String() string {
	var start, end string
	if r.HasStart {
		start = strconv.FormatUint(uint64(r.Start), 10)
	}
	if r.HasEnd {
		end = strconv.FormatUint(uint64(r.End), 10)
	}
	return fmt.Sprintf("[%s:%s]", start, end)
}

// LensValueKind discriminates the primitive a Lens compares against.
type LensValueKind int

const (
	// LensNull matches JSON null.
	LensNull LensValueKind = iota
	// LensBool matches a JSON boolean.
	LensBool
	// LensNumber matches a JSON number by canonical unsigned-integer text.
	LensNumber
	// LensString matches a JSON string by content.
	LensString
)

// LensValue is the optional primitive a Lens key path must equal.
type LensValue struct {
	Kind LensValueKind
	Bool bool
	Num  uint64
	Str  string
}

func (v LensValue) String() string {
	switch v.Kind {
	case LensNull:
		return "Null"
	case LensBool:
		return strconv.FormatBool(v.Bool)
	case LensNumber:
		return strconv.FormatUint(v.Num, 10)
	case LensString:
		return v.Str
	default:
		return ""
	}
}

// Lens is a predicate over an object: key path plus an optional value.
type Lens struct {
	KeyPath []Token
	Value   *LensValue
}

func (l Lens) String() string {
	s := Stringify(l.KeyPath)
	if l.Value == nil {
		return s + "None"
	}
	return s + l.Value.String()
}

// Token is a single lexical element of a selector.
type Token struct {
	Kind Kind

	Key      string   // KeySelector
	Keys     []string // MultiKeySelector
	Indexes  []Index  // ArrayIndexSelector, ObjectIndexSelector
	Rng      Range    // ArrayRangeSelector, ObjectRangeSelector
	Lenses   []Lens   // LensSelector
}

func (t Token) name() string {
	switch t.Kind {
	case KeySelector:
		return "KeySelector"
	case MultiKeySelector:
		return "MultiKeySelector"
	case ArrayIndexSelector:
		return "ArrayIndexSelector"
	case ArrayRangeSelector:
		return "ArrayRangeSelector"
	case ObjectIndexSelector:
		return "ObjectIndexSelector"
	case ObjectRangeSelector:
		return "ObjectRangeSelector"
	case KeysOperator:
		return "KeysOperator"
	case LensSelector:
		return "LensSelector"
	case FlattenOperator:
		return "FlattenOperator"
	case PipeInOperator:
		return "PipeInOperator"
	case PipeOutOperator:
		return "PipeOutOperator"
	case GroupSeparator:
		return "GroupSeparator"
	case TruncateOperator:
		return "TruncateOperator"
	default:
		return "Unknown"
	}
}

// String renders a Token the way it appears in tokens-so-far diagnostics.
func (t Token) String() string {
	switch t.Kind {
	case ArrayIndexSelector, ObjectIndexSelector:
		parts := make([]string, len(t.Indexes))
		for i, idx := range t.Indexes {
			parts[i] = strconv.FormatUint(uint64(idx), 10)
		}
		return fmt.Sprintf("%s [%s]", t.name(), strings.Join(parts, ", "))
	case ArrayRangeSelector, ObjectRangeSelector:
		return fmt.Sprintf("%s %s", t.name(), t.Rng)
	case KeySelector:
		return fmt.Sprintf(`%s "%s"`, t.name(), t.Key)
	case MultiKeySelector:
		return fmt.Sprintf("%s %s", t.name(), strings.Join(t.Keys, ","))
	case LensSelector:
		parts := make([]string, len(t.Lenses))
		for i, l := range t.Lenses {
			parts[i] = l.String()
		}
		return fmt.Sprintf("%s [%s]", t.name(), strings.Join(parts, ", "))
	default:
		return t.name()
	}
}

// Descriptor renders a Token as the "<parent-descr>" fragment quoted by
// evaluation error messages, e.g. `Node "name"`, `Index [3]`, `Range [1:3]`.
// capitalized controls whether the leading word starts a sentence
// ("Node "k" is not an array") or sits mid-sentence ("... on parent
// node "k""); see RootDescriptor for the no-parent case.
func (t Token) Descriptor(capitalized bool) string {
	word := func(upper, lower string) string {
		if capitalized {
			return upper
		}
		return lower
	}
	switch t.Kind {
	case KeySelector:
		return fmt.Sprintf(`%s "%s"`, word("Node", "node"), t.Key)
	case MultiKeySelector:
		return fmt.Sprintf("%s {%s}", word("Property", "property"), strings.Join(t.Keys, ","))
	case ArrayIndexSelector, ObjectIndexSelector:
		parts := make([]string, len(t.Indexes))
		for i, idx := range t.Indexes {
			parts[i] = strconv.FormatUint(uint64(idx), 10)
		}
		return fmt.Sprintf("%s [%s]", word("Index", "index"), strings.Join(parts, ", "))
	case ArrayRangeSelector, ObjectRangeSelector:
		return fmt.Sprintf("%s %s", word("Range", "range"), t.Rng)
	case KeysOperator:
		return word("Keys", "keys") + " @"
	case FlattenOperator:
		return word("Flatten", "flatten") + " .."
	default:
		return t.name()
	}
}

// RootDescriptor is the "<parent-descr>" fragment used when a token has no
// preceding parent in the path, i.e. it applies directly to the input value.
func RootDescriptor(capitalized bool) string {
	if capitalized {
		return "Root element"
	}
	return "root element"
}

// Stringify joins a slice of Tokens as a comma-separated diagnostic string.
func Stringify(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}

// SortedMissingKeys returns the keys in want that are absent from have,
// sorted ascending, for the "Keys ... not found" error message.
func SortedMissingKeys(want []string, have map[string]bool) []string {
	var missing []string
	for _, k := range want {
		if !have[k] {
			missing = append(missing, k)
		}
	}
	sort.Strings(missing)
	return missing
}
