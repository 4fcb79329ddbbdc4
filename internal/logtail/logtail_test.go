package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeLog(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "streamcard.log")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	return path
}

func TestTail_KeepsLastLines(t *testing.T) {
	var lines []string
	for i := 1; i <= 10; i++ {
		lines = append(lines, fmt.Sprintf(`{"level":"info","message":"line %d"}`, i))
	}
	path := writeLog(t, lines...)

	tests := []struct {
		name  string
		max   int
		first string
		count int
	}{
		{"none", 0, "", 0},
		{"partial", 3, "line 8", 3},
		{"exact", 10, "line 1", 10},
		{"more than file", 50, "line 1", 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tail(path, tt.max)
			if err != nil {
				t.Fatalf("Tail: %v", err)
			}
			if len(got) != tt.count {
				t.Fatalf("len = %d, want %d", len(got), tt.count)
			}
			if tt.count > 0 && got[0].Message != tt.first {
				t.Fatalf("first = %q, want %q", got[0].Message, tt.first)
			}
		})
	}
}

func TestTail_MissingFile(t *testing.T) {
	got, err := Tail(filepath.Join(t.TempDir(), "nope.log"), 10)
	if err != nil || got != nil {
		t.Fatalf("Tail = %v, %v; want nil, nil", got, err)
	}
}

func TestTail_SkipsBlankLines(t *testing.T) {
	path := writeLog(t, `{"message":"a"}`, "", "   ", `{"message":"b"}`)
	got, err := Tail(path, 10)
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
}

func TestParse(t *testing.T) {
	line := `{"level":"error","app":"streamcard","key":"schedule-maker-data","error":"kv: storage quota exceeded","time":"2024-01-01T10:00:00Z","message":"schedule save failed"}`
	e := Parse(line)

	if e.Level != "error" || e.Message != "schedule save failed" {
		t.Fatalf("entry = %+v", e)
	}
	if want := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC); !e.Time.Equal(want) {
		t.Fatalf("time = %v, want %v", e.Time, want)
	}
	if len(e.Fields) != 2 || e.Fields[0].Key != "error" || e.Fields[1].Key != "key" {
		t.Fatalf("fields = %+v, want error then key", e.Fields)
	}
	if !e.IsProblem() {
		t.Fatal("error entry not flagged")
	}
	if s := e.String(); !strings.Contains(s, "ERR schedule save failed error=kv: storage quota exceeded") {
		t.Fatalf("String = %q", s)
	}
}

func TestParse_NotJSON(t *testing.T) {
	e := Parse("panic: something broke")
	if e.Message != "panic: something broke" || e.Level != "" {
		t.Fatalf("entry = %+v", e)
	}
	if e.String() != "panic: something broke" {
		t.Fatalf("String = %q", e.String())
	}
	if e.IsProblem() {
		t.Fatal("plain line flagged as a problem")
	}
}

func TestParse_NonStringFields(t *testing.T) {
	e := Parse(`{"level":"info","bytes":1024,"locations":["/a","/b"],"message":"export finished"}`)
	got := map[string]string{}
	for _, f := range e.Fields {
		got[f.Key] = f.Value
	}
	if got["bytes"] != "1024" || got["locations"] != `["/a","/b"]` {
		t.Fatalf("fields = %v", got)
	}
}
