package parser

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"telescope-hq/callisto/pkg/registry/defs"
	"telescope-hq/callisto/pkg/registry/diag"
)

// Kind distinguishes the two registry input classes.
type Kind int

const (
	// KindMetrics is a metrics registry: category -> name -> definition.
	KindMetrics Kind = iota
	// KindPings is a pings registry: name -> definition.
	KindPings
)

// String returns "metrics" or "pings".
func (k Kind) String() string {
	if k == KindPings {
		return "pings"
	}
	return "metrics"
}

// Document is a parsed registry file, ready for validation.
type Document struct {
	// Source is the file path the document was read from ("" for
	// in-memory documents).
	Source string

	// Root is the decoded document-object model. For well-formed
	// documents this is a map[string]any; the validation engine treats
	// any other shape as a fatal structural failure for the document.
	Root any

	// Locations maps entry keys to their source positions. Keys are
	// "category" and "category/name" for metrics, the ping name for
	// pings.
	Locations map[string]defs.Location
}

// Location returns the recorded source position for an entry key, falling
// back to the document source with no line information.
func (d *Document) Location(key string) defs.Location {
	if loc, ok := d.Locations[key]; ok {
		return loc
	}
	return defs.Location{File: d.Source}
}

// ParseFile reads and parses one registry file.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry file: %w", err)
	}
	return ParseBytes(data, path)
}

// ParseBytes parses registry YAML from memory. sourcePath is used for
// locations only.
func ParseBytes(data []byte, sourcePath string) (*Document, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("%s: file can not be empty", sourcePath)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("%s: %w", sourcePath, err)
	}

	root, err := decodeNode(&node, sourcePath)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, fmt.Errorf("%s: file can not be empty", sourcePath)
	}

	loc := make(map[string]defs.Location)
	collectLocations(&node, sourcePath, loc)

	return &Document{Source: sourcePath, Root: root, Locations: loc}, nil
}

// DetectKind guesses the input class of a parsed document. A document whose
// $schema value or file name mentions pings is a pings registry; everything
// else is a metrics registry.
func DetectKind(doc *Document) Kind {
	if root, ok := doc.Root.(map[string]any); ok {
		if schema, ok := root["$schema"].(string); ok && strings.Contains(schema, "pings") {
			return KindPings
		}
	}
	base := doc.Source
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	if strings.HasPrefix(base, "pings") {
		return KindPings
	}
	return KindMetrics
}

// MergeMetrics merges validated metric trees from multiple files into one.
// A metric defined in more than one file is reported as a duplicate; the
// first definition wins.
func MergeMetrics(trees []map[string]map[string]*defs.Metric) (map[string]map[string]*defs.Metric, *diag.Report) {
	merged := make(map[string]map[string]*defs.Metric)
	report := diag.NewReport()

	for _, tree := range trees {
		for category, metrics := range tree {
			if merged[category] == nil {
				merged[category] = make(map[string]*defs.Metric, len(metrics))
			}
			for name, metric := range metrics {
				if existing, ok := merged[category][name]; ok {
					report.Add(diag.Diagnostic{
						EntryPath: metric.Path(),
						Rule:      diag.RuleDuplicateName,
						Severity:  diag.SeverityError,
						Message: fmt.Sprintf("duplicate metric name: already defined at %s",
							existing.Location),
					})
					continue
				}
				merged[category][name] = metric
			}
		}
	}

	return merged, report
}
