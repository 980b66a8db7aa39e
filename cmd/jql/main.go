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

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "jql [selector] [file]",
	Short: "jql - a JSON query language",
	Long: `jql walks a JSON document with a compact selector language:
key selectors, array/object index and range selectors, filters, lenses,
flatten and truncate operators.

Examples:
  echo '{"a":1}' | jql '"a"'
  jql '"items"|>"title"' doc.json
  jql --check doc.json`,
	Version: version,
	Args:    cobra.MaximumNArgs(2),
	RunE:    runWalk,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logStyle, "log-style", "terminal", "log output style: terminal, json, logfmt, noop")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log parse/walk diagnostics to stderr")

	rootCmd.Flags().BoolVar(&inlineOutput, "inline", false, "compact (non-indented) JSON output")
	rootCmd.Flags().BoolVar(&rawOutput, "raw-output", false, "unwrap a string result instead of JSON-quoting it")
	rootCmd.Flags().BoolVar(&stream, "stream", false, "process stdin as one JSON document per line")
	rootCmd.Flags().BoolVar(&checkOnly, "check", false, "validate the input is JSON and exit; no selector required")
	rootCmd.Flags().StringVar(&fromFile, "from-file", "", "read the selector string from this file instead of argv")

	rootCmd.AddCommand(batchCmd)
}
