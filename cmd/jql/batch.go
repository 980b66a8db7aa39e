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
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/antflydb/jql"
	"github.com/antflydb/jql/internal/batchcfg"
	"github.com/antflydb/jql/internal/batchserver"
	"github.com/antflydb/jql/internal/obslog"
)

var (
	batchConfigPath string
	batchServe      bool
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run a set of named selector jobs from a config file",
	Long: `batch runs every job in a jql batch config file (see
internal/batchcfg.Config) against its input document and writes the
collected results. With --serve, it instead starts an HTTP server that
accepts selector + document pairs for repeated interactive use.`,
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&batchConfigPath, "config", "c", "jql-batch.yaml", "path to the batch config file")
	batchCmd.Flags().BoolVar(&batchServe, "serve", false, "start the batch HTTP server instead of running jobs once")
}

func runBatch(cmd *cobra.Command, args []string) error {
	logger := obslog.New(obslog.Config{Style: obslog.Style(logStyle), Level: logLevel})
	defer func() { _ = logger.Sync() }()

	cfg, err := batchcfg.Load(batchConfigPath)
	if err != nil {
		return err
	}

	if batchServe {
		return serveBatch(logger, cfg)
	}

	runID := uuid.NewString()
	logger = logger.With(zap.String("run_id", runID))

	results := make(map[string]json.RawMessage, len(cfg.Jobs))
	for _, job := range cfg.Jobs {
		data, err := os.ReadFile(job.Input)
		if err != nil {
			return fmt.Errorf("job %s: failed to read input: %w", job.Name, err)
		}

		out, err := jql.WalkerJSON(data, job.Selector)
		if err != nil {
			logger.Error("job failed", zap.String("job", job.Name), zap.Error(err))
			return fmt.Errorf("job %s: %w", job.Name, err)
		}
		results[job.Name] = out
		logger.Info("job completed", zap.String("job", job.Name))
	}

	return writeBatchOutput(cfg.Output, results)
}

func writeBatchOutput(out batchcfg.OutputConfig, results map[string]json.RawMessage) error {
	var data []byte
	var err error
	if out.Pretty {
		data, err = json.MarshalIndent(results, "", "  ")
	} else {
		data, err = json.Marshal(results)
	}
	if err != nil {
		return fmt.Errorf("failed to encode batch results: %w", err)
	}

	if out.Path == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(out.Path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write batch results: %w", err)
	}
	return nil
}

func serveBatch(logger *zap.Logger, cfg *batchcfg.Config) error {
	addr := cfg.Serve.Addr
	if addr == "" {
		addr = ":8080"
	}
	return batchserver.Serve(logger, addr, cfg.Serve.MetricsAddr)
}
