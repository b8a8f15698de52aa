// Package core assembles a runnable pipeline from a loaded configuration.
//
// It is the only place that knows every component: the filesystem, the
// external transforms, the processors, the pointer resolver, the
// dispatcher, the watcher and the orchestrator. Commands build a Pipeline,
// run it in build or watch mode, and close it.
package core
