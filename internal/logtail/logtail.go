package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Entry is one line of the JSON log written by the logging package. Lines
// that are not JSON keep only Raw and Message.
type Entry struct {
	Time    time.Time
	Level   string
	Message string
	Fields  []Field
	Raw     string
}

// Field is an extra key on a log line, rendered as text.
type Field struct {
	Key   string
	Value string
}

// Tail returns at most maxLines entries from the end of the file at path. A
// missing file yields no entries.
func Tail(path string, maxLines int) ([]Entry, error) {
	lines, err := read(path, maxLines)
	if err != nil {
		return nil, err
	}
	out := make([]Entry, len(lines))
	for i, line := range lines {
		out[i] = Parse(line)
	}
	return out, nil
}

func read(path string, maxLines int) ([]string, error) {
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
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count := 0
	idx := 0
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == "" {
			continue
		}
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Parse decodes one zerolog JSON line.
func Parse(line string) Entry {
	e := Entry{Raw: line, Message: line}
	var doc map[string]any
	if err := json.Unmarshal([]byte(line), &doc); err != nil {
		return e
	}

	e.Message = ""
	for key, v := range doc {
		switch key {
		case zerolog.TimestampFieldName:
			if s, ok := v.(string); ok {
				e.Time, _ = time.Parse(time.RFC3339, s)
			}
		case zerolog.LevelFieldName:
			e.Level, _ = v.(string)
		case zerolog.MessageFieldName:
			e.Message, _ = v.(string)
		case "app":
		default:
			e.Fields = append(e.Fields, Field{Key: key, Value: fieldText(v)})
		}
	}
	sort.Slice(e.Fields, func(i, j int) bool {
		// Errors first, then alphabetical.
		if (e.Fields[i].Key == zerolog.ErrorFieldName) != (e.Fields[j].Key == zerolog.ErrorFieldName) {
			return e.Fields[i].Key == zerolog.ErrorFieldName
		}
		return e.Fields[i].Key < e.Fields[j].Key
	})
	return e
}

func fieldText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return "null"
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

// String renders the entry on one line: time, level, message, then fields.
func (e Entry) String() string {
	if e.Level == "" && e.Time.IsZero() {
		return e.Raw
	}
	var b strings.Builder
	if !e.Time.IsZero() {
		b.WriteString(e.Time.Local().Format("15:04:05"))
		b.WriteByte(' ')
	}
	if e.Level != "" {
		b.WriteString(strings.ToUpper(levelTag(e.Level)))
		b.WriteByte(' ')
	}
	b.WriteString(e.Message)
	for _, f := range e.Fields {
		b.WriteString(" " + f.Key + "=" + f.Value)
	}
	return b.String()
}

// IsProblem reports whether the entry is a warning or worse.
func (e Entry) IsProblem() bool {
	lvl, err := zerolog.ParseLevel(e.Level)
	if err != nil {
		return false
	}
	return lvl >= zerolog.WarnLevel && lvl < zerolog.NoLevel
}

func levelTag(level string) string {
	if len(level) > 3 {
		return level[:3]
	}
	return level
}
