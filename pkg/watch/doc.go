// Package watch revalidates registry files continuously: a filesystem
// watcher with debouncing reacts to edits, and an optional cron scheduler
// runs periodic full validations independent of filesystem events. Both
// feed the same revalidation callback, so a run looks the same no matter
// what triggered it.
package watch
