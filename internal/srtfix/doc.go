// Package srtfix repairs common OCR artifacts in SRT subtitle text.
//
// A document is classified line by line into index, timing, text, and blank
// lines; an ordered rule pipeline rewrites text lines only, so cue numbers
// and timestamps can never be corrupted no matter how the text rules evolve.
// Every correction is counted per category for logging and idempotence
// testing.
package srtfix
