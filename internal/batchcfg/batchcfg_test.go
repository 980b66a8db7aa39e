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

package batchcfg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadBytesAppliesDefaults(t *testing.T) {
	cfg, err := LoadBytes([]byte(`
jobs:
  - name: titles
    selector: '"items"|>"title"'
    input: testdata/doc.json
`))
	require.NoError(t, err)
	require.Equal(t, 1, cfg.Version)
	require.Len(t, cfg.Jobs, 1)
	require.Equal(t, "titles", cfg.Jobs[0].Name)
}

func TestLoadBytesPreservesExplicitVersion(t *testing.T) {
	cfg, err := LoadBytes([]byte("version: 2\njobs: []\n"))
	require.NoError(t, err)
	require.Equal(t, 2, cfg.Version)
}

func TestLoadBytesRejectsInvalidYAML(t *testing.T) {
	_, err := LoadBytes([]byte("not: [valid"))
	require.Error(t, err)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load("testdata/does-not-exist.yaml")
	require.Error(t, err)
}
