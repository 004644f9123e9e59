// Package manifest reads and writes the subtitle track manifest the demux
// stage produces.
//
// One pipe-delimited entry per line:
//
//	filename|trackIndex|languageCode|codec|forcedFlag|title
//
// The manifest is the contract between the demuxer, the OCR converter, and
// the correction stage: later stages select tracks from it instead of
// globbing the work directory.
package manifest
