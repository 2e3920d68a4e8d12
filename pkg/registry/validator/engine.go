package validator

import (
	"fmt"
	"net/url"
	"runtime"
	"sync"

	"telescope-hq/callisto/pkg/registry/defs"
	"telescope-hq/callisto/pkg/registry/diag"
	"telescope-hq/callisto/pkg/registry/parser"
)

// Result is the outcome of validating one document: the complete
// diagnostic report plus the normalized definitions for entries that
// validated cleanly.
type Result struct {
	Report *diag.Report

	// Metrics holds validated metric definitions, keyed by category then
	// name. Populated for metrics documents.
	Metrics map[string]map[string]*defs.Metric

	// Pings holds validated ping definitions, keyed by name. Populated
	// for ping documents.
	Pings map[string]*defs.Ping
}

// Engine orchestrates document validation: it iterates entries, fans them
// out to the metric or ping validator, performs the document-level checks,
// and aggregates diagnostics into a sorted report.
type Engine struct {
	opts    Options
	metrics *MetricValidator
	pings   *PingValidator
}

// NewEngine creates a validation engine.
func NewEngine(opts Options) *Engine {
	if opts.Concurrency <= 0 {
		opts.Concurrency = runtime.NumCPU()
	}
	return &Engine{
		opts:    opts,
		metrics: NewMetricValidator(opts),
		pings:   NewPingValidator(opts),
	}
}

// ValidateDocument validates a parsed document of the given kind. Content
// problems never abort the run; only a non-object document root stops
// validation of the whole document, and even then a report is returned.
func (e *Engine) ValidateDocument(kind parser.Kind, doc *parser.Document) *Result {
	if kind == parser.KindPings {
		return e.ValidatePings(doc)
	}
	return e.ValidateMetrics(doc)
}

// entryJob is one unit of concurrent validation work.
type entryJob struct {
	category string // "" for pings
	name     string
	entry    any
	loc      defs.Location
}

// ValidateMetrics validates a metrics document: two levels of keys, the
// outer a category, the inner a metric name.
func (e *Engine) ValidateMetrics(doc *parser.Document) *Result {
	result := &Result{
		Report:  diag.NewReport(),
		Metrics: make(map[string]map[string]*defs.Metric),
	}

	root, ok := e.checkRoot(doc, result.Report)
	if !ok {
		return result
	}

	var jobs []entryJob
	for category, rawEntries := range root {
		if category == "$schema" {
			continue
		}
		entries, ok := asObject(rawEntries)
		if !ok {
			// Fatal for this category subtree only.
			result.Report.Add(diag.Diagnostic{
				EntryPath: category,
				Rule:      diag.RuleMalformedEntry,
				Severity:  diag.SeverityError,
				Message:   fmt.Sprintf("category %q is not an object of metrics (got %T)", category, rawEntries),
			})
			continue
		}
		for name, entry := range entries {
			jobs = append(jobs, entryJob{
				category: category,
				name:     name,
				entry:    entry,
				loc:      doc.Location(category + "/" + name),
			})
		}
	}

	var storeMu sync.Mutex
	e.run(jobs, func(job entryJob) []diag.Diagnostic {
		metric, diags := e.metrics.Validate(job.category, job.name, job.entry, job.loc)
		if metric != nil {
			storeMu.Lock()
			if result.Metrics[metric.Category] == nil {
				result.Metrics[metric.Category] = make(map[string]*defs.Metric)
			}
			result.Metrics[metric.Category][metric.Name] = metric
			storeMu.Unlock()
		}
		return diags
	}, result.Report)

	result.Report.Sort()
	return result
}

// ValidatePings validates a pings document: a single level of ping names.
func (e *Engine) ValidatePings(doc *parser.Document) *Result {
	result := &Result{
		Report: diag.NewReport(),
		Pings:  make(map[string]*defs.Ping),
	}

	root, ok := e.checkRoot(doc, result.Report)
	if !ok {
		return result
	}

	var jobs []entryJob
	for name, entry := range root {
		if name == "$schema" {
			continue
		}
		jobs = append(jobs, entryJob{
			name:  name,
			entry: entry,
			loc:   doc.Location(name),
		})
	}

	var storeMu sync.Mutex
	e.run(jobs, func(job entryJob) []diag.Diagnostic {
		ping, diags := e.pings.Validate(job.name, job.entry, job.loc)
		if ping != nil {
			storeMu.Lock()
			result.Pings[ping.Name] = ping
			storeMu.Unlock()
		}
		return diags
	}, result.Report)

	result.Report.Sort()
	return result
}

// checkRoot verifies the document root is an object and format-checks the
// optional $schema key. Returns false when the root is unusable.
func (e *Engine) checkRoot(doc *parser.Document, report *diag.Report) (map[string]any, bool) {
	root, ok := asObject(doc.Root)
	if !ok {
		report.Add(diag.Diagnostic{
			Rule:     diag.RuleMalformedEntry,
			Severity: diag.SeverityError,
			Message:  fmt.Sprintf("document root is not an object (got %T)", doc.Root),
		})
		return nil, false
	}

	if raw, present := root["$schema"]; present {
		s, ok := raw.(string)
		if !ok {
			report.Add(diag.Diagnostic{
				Field:    "$schema",
				Rule:     diag.RuleMalformedReference,
				Severity: diag.SeverityWarning,
				Message:  fmt.Sprintf("$schema should be a URL string, got %T", raw),
			})
		} else if u, err := url.Parse(s); err != nil || u.Scheme == "" {
			report.Add(diag.Diagnostic{
				Field:    "$schema",
				Rule:     diag.RuleMalformedReference,
				Severity: diag.SeverityWarning,
				Message:  fmt.Sprintf("$schema %q is not a URL", s),
			})
		}
	}

	return root, true
}

// run validates jobs concurrently and merges their diagnostics into the
// report. Entries are independent, so the only synchronization is the
// merge; ordering is restored by the caller's sort.
func (e *Engine) run(jobs []entryJob, validate func(entryJob) []diag.Diagnostic, report *diag.Report) {
	if len(jobs) == 0 {
		return
	}

	workers := e.opts.Concurrency
	if workers > len(jobs) {
		workers = len(jobs)
	}

	jobCh := make(chan entryJob)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobCh {
				diags := validate(job)
				if len(diags) == 0 {
					continue
				}
				mu.Lock()
				for _, d := range diags {
					report.Add(d)
				}
				mu.Unlock()
			}
		}()
	}

	for _, job := range jobs {
		jobCh <- job
	}
	close(jobCh)
	wg.Wait()
}

