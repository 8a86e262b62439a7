package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/asc-iap/tools/dashgen/dashboards"
	"github.com/donaldgifford/asc-iap/tools/dashgen/rules"
	"github.com/donaldgifford/asc-iap/tools/dashgen/validate"
)

const generatedHeader = "# Code generated by dashgen. DO NOT EDIT.\n"

func main() {
	validateOnly := flag.Bool("validate", false, "validate generated artifacts without writing files")
	outputDir := flag.String("output", "", "override output directory")
	flag.Parse()

	cfg := DefaultConfig()
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, *validateOnly); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// artifact is one generated file, relative to the output directory.
type artifact struct {
	path string
	data []byte
}

func run(cfg Config, validateOnly bool) error {
	artifacts, res, err := generate(cfg)
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	if !res.Ok() {
		return errors.New("validation failed:\n  " + strings.Join(res.Errors, "\n  "))
	}

	if validateOnly {
		fmt.Println("validation passed")
		return nil
	}

	for _, a := range artifacts {
		path := filepath.Join(cfg.OutputDir, a.path)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, a.data, 0o644); err != nil { //nolint:gosec // generated artifacts are world-readable
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Printf("dashgen: wrote %s\n", path)
	}
	return nil
}

// generate builds and validates every enabled artifact.
func generate(cfg Config) ([]artifact, validate.Result, error) {
	var (
		artifacts []artifact
		res       validate.Result
	)

	if cfg.DashboardEnabled {
		dash, err := dashboards.BuildOverview().Build()
		if err != nil {
			return nil, res, fmt.Errorf("building dashboard: %w", err)
		}
		res.Merge(validate.Dashboard(dash, KnownMetrics))

		data, err := json.MarshalIndent(dash, "", "  ")
		if err != nil {
			return nil, res, fmt.Errorf("marshaling dashboard: %w", err)
		}
		artifacts = append(artifacts, artifact{
			path: filepath.Join("grafana", "data", "asciap-overview.json"),
			data: append(data, '\n'),
		})
	}

	if cfg.RulesEnabled {
		for _, f := range []struct {
			name string
			cr   rules.PrometheusRule
		}{
			{"asciap-recording-rules.yaml", rules.RecordingRules()},
			{"asciap-alerts.yaml", rules.AlertRules()},
		} {
			name, cr := f.name, f.cr
			res.Merge(validate.Rules(cr, KnownMetrics))

			data, err := yaml.Marshal(cr)
			if err != nil {
				return nil, res, fmt.Errorf("marshaling %s: %w", name, err)
			}
			artifacts = append(artifacts, artifact{
				path: filepath.Join("prometheus", name),
				data: append([]byte(generatedHeader), data...),
			})
		}
	}

	return artifacts, res, nil
}
