// Package service wires the extraction pipeline for callers: it persists an
// upload to a transient file, loads page text, runs the task extractor and
// checks the output envelope, reporting failures as domain sentinel errors.
package service
