// Package transform holds the external content transforms the processors
// call: script and markup minification, stylesheet compilation and
// structured-data re-serialization.
//
// Processors only depend on the small interfaces declared here, one call
// per dispatch, so tests can substitute fakes and the concrete libraries
// can change without touching dispatch logic.
package transform
