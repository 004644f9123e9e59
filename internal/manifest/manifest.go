package manifest

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	xlanguage "golang.org/x/text/language"

	"splice/internal/language"
)

// Track describes one subtitle track extracted from a container.
type Track struct {
	FileName   string
	TrackIndex int
	Language   string
	Codec      string
	Forced     bool
	Title      string
}

// textCodecs are subtitle codecs whose payload is plain text and therefore
// eligible for OCR correction. Bitmap codecs go through the OCR converter
// first and re-enter the manifest as subrip tracks.
var textCodecs = map[string]struct{}{
	"subrip": {},
	"srt":    {},
}

// IsText reports whether the track's codec carries plain text.
func (t Track) IsText() bool {
	_, ok := textCodecs[strings.ToLower(strings.TrimSpace(t.Codec))]
	return ok
}

var titleCaser = cases.Title(xlanguage.English)

// DisplayTitle returns the track title, falling back to a generated
// "<Language> (Forced)" form when the container carried none.
func (t Track) DisplayTitle() string {
	if title := strings.TrimSpace(t.Title); title != "" {
		return titleCaser.String(title)
	}
	name := language.DisplayName(t.Language)
	if t.Forced {
		return name + " (Forced)"
	}
	return name
}

// Format renders the track as one manifest line.
func Format(t Track) string {
	forced := "0"
	if t.Forced {
		forced = "1"
	}
	return strings.Join([]string{
		t.FileName,
		strconv.Itoa(t.TrackIndex),
		t.Language,
		t.Codec,
		forced,
		t.Title,
	}, "|")
}

// ParseLine parses one manifest entry. The title field is joined back
// together if it contained pipes.
func ParseLine(line string) (Track, error) {
	fields := strings.Split(line, "|")
	if len(fields) < 6 {
		return Track{}, fmt.Errorf("manifest line has %d fields, want 6: %q", len(fields), line)
	}
	index, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return Track{}, fmt.Errorf("manifest track index %q: %w", fields[1], err)
	}
	forced := false
	switch strings.TrimSpace(fields[4]) {
	case "1", "true":
		forced = true
	case "0", "false", "":
	default:
		return Track{}, fmt.Errorf("manifest forced flag %q: want 0 or 1", fields[4])
	}
	return Track{
		FileName:   strings.TrimSpace(fields[0]),
		TrackIndex: index,
		Language:   strings.ToLower(strings.TrimSpace(fields[2])),
		Codec:      strings.ToLower(strings.TrimSpace(fields[3])),
		Forced:     forced,
		Title:      strings.TrimSpace(strings.Join(fields[5:], "|")),
	}, nil
}

// Parse reads a full manifest. Blank lines are skipped; a malformed line
// fails the whole parse so a truncated manifest is never half-trusted.
func Parse(r io.Reader) ([]Track, error) {
	var tracks []Track
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		track, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		tracks = append(tracks, track)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return tracks, nil
}

// ReadFile parses the manifest at path.
func ReadFile(path string) ([]Track, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer file.Close()
	return Parse(file)
}

// WriteFile renders tracks to path, one entry per line.
func WriteFile(path string, tracks []Track) error {
	var b strings.Builder
	for _, track := range tracks {
		b.WriteString(Format(track))
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// Correctable selects the text tracks whose language is in the allowed
// list. Tracks with unrecognized languages never match.
func Correctable(tracks []Track, allowed []string) []Track {
	normalized := language.NormalizeList(allowed)
	var selected []Track
	for _, track := range tracks {
		if !track.IsText() {
			continue
		}
		for _, lang := range normalized {
			if language.Matches(track.Language, lang) {
				selected = append(selected, track)
				break
			}
		}
	}
	return selected
}
