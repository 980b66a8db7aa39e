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

// Package batchcfg is the configuration file for `jql batch`: a list of
// named selector jobs run in sequence against one or more input
// documents, modeled on github.com/antflydb/antfly-go/evalaf/eval's
// Config/yaml.v3 struct-tag pattern.
package batchcfg

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level `jql batch` configuration file.
type Config struct {
	// Version of the config format.
	Version int `yaml:"version" json:"version"`

	// Jobs are the named selector runs to perform, in order.
	Jobs []Job `yaml:"jobs" json:"jobs"`

	// Output configures where and how results are written.
	Output OutputConfig `yaml:"output" json:"output"`

	// Serve configures the optional long-running HTTP mode.
	Serve ServeConfig `yaml:"serve" json:"serve"`
}

// Job is a single named selector run against an input document.
type Job struct {
	// Name identifies this job in output and logs.
	Name string `yaml:"name" json:"name"`

	// Selector is the selector string to run.
	Selector string `yaml:"selector" json:"selector"`

	// Input is the path to the input JSON document.
	Input string `yaml:"input" json:"input"`
}

// OutputConfig configures batch result output.
type OutputConfig struct {
	// Path is the output file; empty means stdout.
	Path string `yaml:"path" json:"path"`

	// Pretty enables indented JSON output.
	Pretty bool `yaml:"pretty" json:"pretty"`
}

// ServeConfig configures `jql batch --serve`'s HTTP mode.
type ServeConfig struct {
	// Addr is the listen address for the walk endpoint, e.g. ":8080".
	Addr string `yaml:"addr" json:"addr"`

	// MetricsAddr is a separate listen address for the /metrics and
	// /healthz endpoints; when empty or equal to Addr, they are served on
	// Addr alongside /walk.
	MetricsAddr string `yaml:"metrics_addr" json:"metrics_addr"`
}

// Load reads and parses a batch config file, applying defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch config: %w", err)
	}
	return LoadBytes(data)
}

// LoadBytes parses batch config YAML, applying defaults.
func LoadBytes(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse batch config: %w", err)
	}
	if cfg.Version == 0 {
		cfg.Version = 1
	}
	return &cfg, nil
}
