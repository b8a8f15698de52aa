// Package types defines the core values passed between the stages of the
// asset pipeline.
//
// The pipeline has a single dispatch path. Every file event, whether it was
// synthesized by a full scan or delivered by the filesystem watcher, flows
// through the same stages:
//
//  1. Classification: the file path is turned into a Classification once
//  2. Resolution: Pointer files are resolved to their real target
//  3. Processing: exactly one processor runs for the effective Kind
//  4. Outcome: the dispatch resolves to Written, Deleted, Skipped or Failed
//
// None of these values are persisted. They are recomputed per event, which
// is why the package carries no index of previously built files.
package types
