package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Entry is one decoded log line.
type Entry struct {
	Time    time.Time
	Level   string
	Message string
	Fields  []Field // sorted by key
}

// Field is a structured key/value attached to an entry.
type Field struct {
	Key   string
	Value string
}

// Read returns at most maxLines from the end of the file at path. A missing
// file yields no lines and no error.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	next, count := 0, 0
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		ring[next] = scanner.Text()
		next = (next + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, 0, count)
	start := 0
	if count == maxLines {
		start = next
	}
	for i := 0; i < count; i++ {
		lines = append(lines, ring[(start+i)%maxLines])
	}
	return lines, nil
}

// Tail reads and parses the last maxLines entries of path.
func Tail(path string, maxLines int) ([]Entry, error) {
	lines, err := Read(path, maxLines)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		entries = append(entries, Parse(line))
	}
	return entries, nil
}

// Parse decodes a zerolog JSON line. Lines that are not JSON objects become
// an entry whose Message is the raw line.
func Parse(line string) Entry {
	var raw map[string]any
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return Entry{Message: strings.TrimSpace(line)}
	}

	var e Entry
	for k, v := range raw {
		switch k {
		case "level":
			e.Level = fmt.Sprint(v)
		case "message":
			e.Message = fmt.Sprint(v)
		case "time":
			e.Time = parseTime(v)
		case "app":
			// constant for every line
		default:
			e.Fields = append(e.Fields, Field{Key: k, Value: fmt.Sprint(v)})
		}
	}
	sort.Slice(e.Fields, func(i, j int) bool { return e.Fields[i].Key < e.Fields[j].Key })
	return e
}

func parseTime(v any) time.Time {
	switch t := v.(type) {
	case float64:
		return time.Unix(int64(t), 0)
	case string:
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// LevelTag returns the three-letter level shown in the activity view.
func (e Entry) LevelTag() string {
	switch strings.ToLower(e.Level) {
	case "debug", "trace":
		return "DBG"
	case "info":
		return "INF"
	case "warn":
		return "WRN"
	case "error", "fatal", "panic":
		return "ERR"
	default:
		return "---"
	}
}

// Format renders the entry as "15:04:05 INF message key=value".
func (e Entry) Format() string {
	var b strings.Builder
	if !e.Time.IsZero() {
		b.WriteString(e.Time.Local().Format("15:04:05"))
		b.WriteByte(' ')
	}
	b.WriteString(e.LevelTag())
	b.WriteByte(' ')
	b.WriteString(e.Message)
	for _, f := range e.Fields {
		b.WriteByte(' ')
		b.WriteString(f.Key)
		b.WriteByte('=')
		b.WriteString(f.Value)
	}
	return b.String()
}
