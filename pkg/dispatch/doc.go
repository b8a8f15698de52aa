// Package dispatch is the single path every file event goes through.
//
// For each event the dispatcher classifies the path, resolves pointer
// files, computes the destination and then hands the actual work to a
// per-destination queue. Dispatch never blocks on processing: it returns as
// soon as the job is queued. Jobs for the same destination run one at a
// time in arrival order; jobs for different destinations run concurrently.
//
// Two rules can redirect an event:
//
//   - a partial stylesheet is never compiled on its own. Any change to it
//     triggers a scan of all source roots that re-dispatches every
//     stylesheet that compiles on its own.
//   - a pointer file is replaced by the file it names. Its output is written
//     next to where the pointer would map, under the target's name.
//
// Every dispatch ends in exactly one Outcome, which is logged and passed
// to the OnOutcome callback.
package dispatch
