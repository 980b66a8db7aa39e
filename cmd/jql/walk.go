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
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/antflydb/jql"
	"github.com/antflydb/jql/internal/jsonval"
	"github.com/antflydb/jql/internal/obslog"
)

var (
	logStyle     string
	logLevel     string
	verbose      bool
	inlineOutput bool
	rawOutput    bool
	stream       bool
	checkOnly    bool
	fromFile     string
)

func runWalk(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	input, selector, err := resolveArgs(args)
	if err != nil {
		return err
	}

	if checkOnly {
		return runCheck(input)
	}

	if selector == "" {
		return fmt.Errorf("a selector is required unless --check is set")
	}

	groups, err := jql.SelectorsParser(selector)
	if err != nil {
		return err
	}

	if stream {
		return runStream(logger, input, groups)
	}

	data, err := io.ReadAll(input)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return walkOne(logger, data, groups)
}

// resolveArgs applies the positional-args/--from-file/stdin rules from
// §6: selector is positional unless --from-file or --check is set, in
// which case the first positional is the input file; otherwise a second
// positional is the input file. With no input file, stdin is read.
func resolveArgs(args []string) (io.Reader, string, error) {
	selector := ""
	fileArg := ""

	if fromFile != "" {
		data, err := os.ReadFile(fromFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read --from-file: %w", err)
		}
		selector = string(data)
		if len(args) > 0 {
			fileArg = args[0]
		}
	} else if checkOnly {
		if len(args) > 0 {
			fileArg = args[0]
		}
	} else {
		if len(args) > 0 {
			selector = args[0]
		}
		if len(args) > 1 {
			fileArg = args[1]
		}
	}

	if fileArg == "" || fileArg == "-" {
		return os.Stdin, selector, nil
	}
	f, err := os.Open(fileArg)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open input file: %w", err)
	}
	return f, selector, nil
}

func runCheck(input io.Reader) error {
	data, err := io.ReadAll(input)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	if _, err := jsonval.Decode(data); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

func walkOne(logger *zap.Logger, data []byte, groups []jql.Groups) error {
	v, err := jsonval.Decode(data)
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	result, err := jql.GroupsWalker(v, groups)
	if err != nil {
		if verbose {
			logger.Info("walk failed", zap.Error(err))
		}
		return err
	}

	return printResult(result)
}

func runStream(logger *zap.Logger, input io.Reader, groups []jql.Groups) error {
	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if err := walkOne(logger, line, groups); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func printResult(v jsonval.Value) error {
	if rawOutput && v.Kind() == jsonval.String {
		fmt.Println(v.Str())
		return nil
	}

	out, err := jsonval.Encode(v)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	if inlineOutput {
		fmt.Println(string(out))
		return nil
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, out, "", "  "); err != nil {
		return fmt.Errorf("failed to format result: %w", err)
	}
	if color.NoColor {
		fmt.Println(pretty.String())
		return nil
	}
	fmt.Println(color.New(color.FgGreen).Sprint(pretty.String()))
	return nil
}

func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	return obslog.New(obslog.Config{Style: obslog.Style(logStyle), Level: logLevel})
}
