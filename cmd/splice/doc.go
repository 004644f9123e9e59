// Command splice corrects OCR artifacts in SRT subtitles, either on
// standalone files or as part of a demux/correct/remux pipeline over
// Matroska containers.
package main
