// Package filesystem provides the primitive I/O operations the pipeline
// needs, on top of an afero.Fs.
//
// Production code uses the OS filesystem (NewOS); tests use an in-memory
// afero.MemMapFs through New. Writes and copies are atomic: content goes to a
// temporary file in the destination directory which is then renamed over the
// destination, so a failure never leaves a partial file behind. Deletes are
// idempotent.
package filesystem
