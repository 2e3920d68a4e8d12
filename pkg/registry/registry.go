package registry

import (
	"telescope-hq/callisto/pkg/registry/defs"
	"telescope-hq/callisto/pkg/registry/diag"
	"telescope-hq/callisto/pkg/registry/parser"
	"telescope-hq/callisto/pkg/registry/validator"
)

// Options re-exports the validator options for callers of the convenience
// API.
type Options = validator.Options

// FileResult is the outcome of validating one registry file.
type FileResult struct {
	// Path is the validated file.
	Path string

	// Kind is the detected input class of the file.
	Kind parser.Kind

	// Result holds the diagnostics and validated definitions.
	*validator.Result
}

// ValidateFile parses and validates one registry file, detecting whether it
// is a metrics or pings registry. A returned error means the file could not
// be read or parsed at all; content problems are diagnostics in the result.
func ValidateFile(path string, opts Options) (*FileResult, error) {
	doc, err := parser.ParseFile(path)
	if err != nil {
		return nil, err
	}
	kind := parser.DetectKind(doc)
	result := validator.NewEngine(opts).ValidateDocument(kind, doc)
	return &FileResult{Path: path, Kind: kind, Result: result}, nil
}

// ValidateBytes parses and validates registry YAML from memory. sourcePath
// is used for kind detection and diagnostics only.
func ValidateBytes(data []byte, sourcePath string, opts Options) (*FileResult, error) {
	doc, err := parser.ParseBytes(data, sourcePath)
	if err != nil {
		return nil, err
	}
	kind := parser.DetectKind(doc)
	result := validator.NewEngine(opts).ValidateDocument(kind, doc)
	return &FileResult{Path: sourcePath, Kind: kind, Result: result}, nil
}

// LintResult is the outcome of validating a set of registry files together.
type LintResult struct {
	// Report aggregates diagnostics from every file plus cross-file checks.
	Report *diag.Report

	// Files holds the per-file results in input order.
	Files []*FileResult

	// Metrics is the merged metric tree across all metrics files.
	Metrics map[string]map[string]*defs.Metric

	// Pings is the merged ping set across all pings files.
	Pings map[string]*defs.Ping
}

// LintFiles validates multiple registry files and merges their definitions,
// reporting duplicates across files. Unreadable or unparsable files abort
// the run with an error; definition problems accumulate in the report.
func LintFiles(paths []string, opts Options) (*LintResult, error) {
	out := &LintResult{
		Report: diag.NewReport(),
		Pings:  make(map[string]*defs.Ping),
	}

	var trees []map[string]map[string]*defs.Metric
	for _, p := range paths {
		fr, err := ValidateFile(p, opts)
		if err != nil {
			return nil, err
		}
		out.Files = append(out.Files, fr)
		out.Report.Merge(fr.Result.Report)
		if fr.Kind == parser.KindPings {
			for name, ping := range fr.Result.Pings {
				out.Pings[name] = ping
			}
			continue
		}
		trees = append(trees, fr.Result.Metrics)
	}

	merged, dupes := parser.MergeMetrics(trees)
	out.Metrics = merged
	out.Report.Merge(dupes)
	out.Report.Sort()
	return out, nil
}
