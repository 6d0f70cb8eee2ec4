// Package textutil provides text processing utilities shared by the
// pipeline: label and filename sanitization for clip artifacts, title
// normalization for remote catalog comparisons, and token-based
// fingerprints with cosine similarity for the reconciler's near-match
// detection.
//
// Fingerprints use term frequency vectors normalized for efficient
// comparison. The tokenization process lowercases text, splits on
// non-alphanumeric characters, and filters tokens shorter than 3
// characters.
package textutil
