// Package ui implements the terminal interface for watching a generation job.
//
// The [Model] polls a job's status endpoint on a fixed cadence, rendering the
// lifecycle stage with a spinner while the job is live and the captured
// pipeline output once it is terminal. The program exits on its own when the
// job reaches Complete or Error, or when the user quits.
//
// Status fetching is injected as a [StatusFunc] so the same model serves
// HTTP polling in the watch command and direct store reads in tests.
package ui
