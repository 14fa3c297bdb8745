package format

import (
	"bytes"
	"strings"
	"testing"
)

type sample struct {
	ID        string   `json:"id"`
	CreatedAt string   `json:"createdAt"`
	Count     int      `json:"count"`
	AllDay    bool     `json:"allDay"`
	Time      *string  `json:"time"`
	Tags      []string `json:"tags"`
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, map[string]any{"data": map[string]string{"pattern": "%d/%m/%Y <x>"}}, "", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got, want := buf.String(), `{"data":{"pattern":"%d/%m/%Y <x>"}}`+"\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWrite_EDN(t *testing.T) {
	var buf bytes.Buffer
	v := sample{ID: "evt-1", CreatedAt: "2026-01-01", Count: 12345678901, AllDay: true, Tags: []string{"a", "b"}}
	if err := Write(&buf, v, "edn", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := `{:all-day true :count 12345678901 :created-at "2026-01-01" :id "evt-1" :tags ["a" "b"] :time nil}` + "\n"
	if got := buf.String(); got != want {
		t.Fatalf("got  %q\nwant %q", got, want)
	}
}

func TestWrite_EDNPretty(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, map[string]any{"data": []int{1, 2}, "empty": map[string]any{}}, "edn", true); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := strings.Join([]string{
		"{",
		"  :data [",
		"    1",
		"    2",
		"  ]",
		"  :empty {}",
		"}",
	}, "\n") + "\n"
	if got := buf.String(); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, 1, "yaml", false); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestWrite_TableList(t *testing.T) {
	var buf bytes.Buffer
	rows := []map[string]any{
		{"id": "evt-1", "summary": "Holiday", "start": map[string]any{"date": "2025-12-24"}},
		{"id": "evt-2", "summary": "Standup", "start": map[string]any{"date": "2026-03-02", "time": "09:30"}},
	}
	if err := Write(&buf, map[string]any{"data": rows}, "table", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d:\n%s", len(lines), buf.String())
	}
	for _, want := range []string{"id", "start.date", "start.time", "summary"} {
		if !strings.Contains(lines[0], want) {
			t.Fatalf("expected header column %q, got %q", want, lines[0])
		}
	}
	if !strings.Contains(lines[2], "09:30") || !strings.Contains(lines[1], "Holiday") {
		t.Fatalf("unexpected rows:\n%s", buf.String())
	}
}

func TestWrite_TableObject(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, map[string]any{"data": map[string]any{"pattern": "%d/%m/%Y", "source": "env"}}, "table", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "pattern") || !strings.Contains(out, "%d/%m/%Y") || !strings.Contains(out, "source") {
		t.Fatalf("unexpected table:\n%s", out)
	}
}
