// Package artifacts owns the on-disk layout of per-video work
// products. Every video gets its own directory under the download
// root holding the raw download, a transcript, the finished
// compilation, and a parts subdirectory of individual clips. Paths
// are deterministic so an interrupted run finds its earlier outputs.
package artifacts
