package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPrinter_JSON(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, true, true)

	if err := p.Success(map[string]any{"file": "deck.pptx", "slides": 2}); err != nil {
		t.Fatalf("success: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, buf.String())
	}
	if diff := cmp.Diff(map[string]any{"file": "deck.pptx", "slides": float64(2)}, got); diff != "" {
		t.Fatalf("json mismatch (-want +got):\n%s", diff)
	}

	buf.Reset()
	p.Error(SystemError("export failed", errors.New("disk full")))
	got = nil
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if got["error"] != "export failed: disk full" || got["code"] != float64(ExitSystemError) {
		t.Fatalf("unexpected error payload %v", got)
	}

	buf.Reset()
	p.Println("hidden")
	p.Table([]string{"ID"}, [][]string{{"x"}})
	if buf.Len() != 0 {
		t.Fatalf("human-only output leaked into json mode: %q", buf.String())
	}
}

func TestPrinter_Human(t *testing.T) {
	var out, errOut bytes.Buffer
	p := NewPrinter(&out, false, false).WithStderr(&errOut)

	_ = p.Success(map[string]any{"message": "Exported deck.pptx"})
	p.Table([]string{"ID", "NAME"}, [][]string{{"canvas-template-1", "评价卡片"}, {"x", "Review"}})
	p.Warn("image %s skipped", "bg")
	p.Error(errors.New("unknown template"))

	want := "Exported deck.pptx\n" +
		"ID                 NAME\n" +
		"canvas-template-1  评价卡片\n" +
		"x                  Review\n"
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Fatalf("stdout mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(errOut.String(), "Warning: image bg skipped") || !strings.Contains(errOut.String(), "Error: unknown template") {
		t.Fatalf("unexpected stderr %q", errOut.String())
	}
}

func TestExitCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, ExitSuccess},
		{errors.New("plain"), ExitUserError},
		{UserError("bad flag", nil), ExitUserError},
		{SystemError("io", nil), ExitSystemError},
	}
	for _, tc := range cases {
		if got := ExitCode(tc.err); got != tc.want {
			t.Fatalf("ExitCode(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
	cause := errors.New("root")
	if !errors.Is(SystemError("wrapped", cause), cause) {
		t.Fatalf("expected unwrap to cause")
	}
}
