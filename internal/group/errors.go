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

package group

import "fmt"

// EmptyInputError is returned when the selector is empty or all whitespace.
type EmptyInputError struct{}

func (EmptyInputError) Error() string { return "Empty input" }

// ParsingError is returned when tokenizing leaves an unconsumed tail.
type ParsingError struct {
	Tokens   string
	Unparsed string
}

func (e ParsingError) Error() string {
	if e.Tokens == "" {
		return fmt.Sprintf("Unable to parse input %s", e.Unparsed)
	}
	return fmt.Sprintf("Unable to parse input %s after %s", e.Unparsed, e.Tokens)
}

// TruncateError is returned when "!" appears more than once, or anywhere
// but as the final token of the entire selector.
type TruncateError struct {
	Tokens string
}

func (e TruncateError) Error() string {
	return fmt.Sprintf("Truncate operator found as non last element or multiple times in %s", e.Tokens)
}

// EmptyGroupError is returned when a group has no selectors, no root
// marker, and no filters.
type EmptyGroupError struct{}

func (EmptyGroupError) Error() string { return "Empty group" }
