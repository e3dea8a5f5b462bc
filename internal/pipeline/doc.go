// Package pipeline drives a single vectorgen run.
//
// [Runner.Run] loads the configuration, verifies directories (logfile_dir
// first so the run log can open), collects input tiles with [Collect],
// resolves the run basename and output name, converts the first tile and
// reports the outcome to the log, the audit record and the event endpoint.
// Copying the configuration into working_dir and writing the audit record
// are best-effort: their failures are accumulated in [Report.Warnings]
// rather than aborting the run.
package pipeline
