// Callisto validates telemetry registry files: the YAML documents that
// declare an application's metrics and pings.
//
// Usage:
//
//	# Validate registry files
//	callisto lint --file metrics.yaml
//
//	# Validate a directory tree and fail on warnings
//	callisto lint --dir telemetry/ --strict
//
//	# Revalidate continuously as files change
//	callisto watch --dir telemetry/
//
//	# Inspect past validation runs
//	callisto history list
//
//	# Show version information
//	callisto version
package main

func main() {
	Execute()
}
