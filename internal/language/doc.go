// Package language normalizes ISO 639 language codes.
//
// Subtitle track manifests carry whatever code the demuxer emitted ("en",
// "eng", sometimes a full word); correction gating and display both need a
// single canonical form, so every conversion lives here.
package language
