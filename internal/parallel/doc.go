// Package parallel runs independent jobs with bounded concurrency.
//
// The CLI uses it to load and validate several script files at once while
// reporting results in the order the files were given.
package parallel
