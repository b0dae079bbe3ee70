// Package subtitle parses and cleans SRT subtitle text.
package subtitle

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Cue is one numbered subtitle block.
type Cue struct {
	Index int
	Start time.Duration
	End   time.Duration
	Text  string
}

const timingSeparator = " --> "

// Parse reads SRT text into cues. Blocks are separated by blank lines; CRLF
// line endings and a leading byte order mark are accepted.
func Parse(srt string) ([]Cue, error) {
	var cues []Cue
	for n, block := range blocks(srt) {
		lines := strings.Split(block, "\n")
		if len(lines) < 2 {
			return nil, fmt.Errorf("block %d: want index and timing lines, got %q", n+1, block)
		}

		index, err := strconv.Atoi(strings.TrimSpace(lines[0]))
		if err != nil {
			return nil, fmt.Errorf("block %d: invalid index %q", n+1, lines[0])
		}

		start, end, err := parseTiming(lines[1])
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", n+1, err)
		}

		cues = append(cues, Cue{
			Index: index,
			Start: start,
			End:   end,
			Text:  strings.Join(lines[2:], "\n"),
		})
	}
	return cues, nil
}

// CountCues counts timing lines in srt without validating the rest of the
// block. It is used to compare a translation against its source.
func CountCues(srt string) int {
	count := 0
	for _, line := range strings.Split(normalize(srt), "\n") {
		if _, _, err := parseTiming(line); err == nil {
			count++
		}
	}
	return count
}

// Format renders cues back to SRT with LF line endings.
func Format(cues []Cue) string {
	var b strings.Builder
	for i, c := range cues {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d\n%s%s%s\n", c.Index, formatTimestamp(c.Start), timingSeparator, formatTimestamp(c.End))
		if c.Text != "" {
			b.WriteString(c.Text)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// StripCodeFences removes a Markdown code fence wrapped around s, such as
// the ```srt ... ``` blocks language models add despite instructions.
func StripCodeFences(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return s
	}

	lines := strings.Split(normalize(trimmed), "\n")
	lines = lines[1:]
	if n := len(lines); n > 0 && strings.TrimSpace(lines[n-1]) == "```" {
		lines = lines[:n-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n")) + "\n"
}

func blocks(srt string) []string {
	var out []string
	for _, b := range strings.Split(normalize(srt), "\n\n") {
		if b = strings.Trim(b, "\n"); strings.TrimSpace(b) != "" {
			out = append(out, b)
		}
	}
	return out
}

func normalize(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	return strings.ReplaceAll(s, "\r\n", "\n")
}

func parseTiming(line string) (time.Duration, time.Duration, error) {
	from, to, ok := strings.Cut(strings.TrimSpace(line), timingSeparator)
	if !ok {
		return 0, 0, fmt.Errorf("invalid timing line %q", line)
	}

	start, err := parseTimestamp(from)
	if err != nil {
		return 0, 0, err
	}
	// Position hints may follow the end timestamp.
	fields := strings.Fields(to)
	if len(fields) == 0 {
		return 0, 0, fmt.Errorf("invalid timing line %q", line)
	}
	end, err := parseTimestamp(fields[0])
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// parseTimestamp parses HH:MM:SS,mmm (a dot is accepted in place of the comma).
func parseTimestamp(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	clock, millis, ok := strings.Cut(strings.Replace(s, ".", ",", 1), ",")
	if !ok {
		return 0, fmt.Errorf("invalid timestamp %q", s)
	}

	parts := strings.Split(clock, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", s)
	}

	var values [4]int
	for i, p := range append(parts, millis) {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("invalid timestamp %q", s)
		}
		values[i] = v
	}
	if values[1] > 59 || values[2] > 59 || values[3] > 999 {
		return 0, fmt.Errorf("invalid timestamp %q", s)
	}

	return time.Duration(values[0])*time.Hour +
		time.Duration(values[1])*time.Minute +
		time.Duration(values[2])*time.Second +
		time.Duration(values[3])*time.Millisecond, nil
}

func formatTimestamp(d time.Duration) string {
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	d -= s * time.Second
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, d/time.Millisecond)
}
