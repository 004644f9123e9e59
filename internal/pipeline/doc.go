// Package pipeline chains the processing stages that turn a source
// container into a corrected copy: demux, Dolby Vision RPU extraction,
// bitmap subtitle OCR, text correction, and remux.
package pipeline
