package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-slidegen/internal/config"
	"github.com/goliatone/go-slidegen/internal/imagesource"
	"github.com/goliatone/go-slidegen/internal/output"
	"github.com/goliatone/go-slidegen/pkg/export/pptx"
)

const testDeck = `title: Reviews
slides:
  - templateId: canvas-template-1
    content:
      title: Great kettle
      review: Boils in a minute.
      rating: "5"
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func writeDeck(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reviews.yaml")
	if err := os.WriteFile(path, []byte(testDeck), 0o644); err != nil {
		t.Fatalf("write deck: %v", err)
	}
	return path
}

func TestRootCommand_Version(t *testing.T) {
	version = "1.2.3"
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "1.2.3") || !strings.Contains(out, "slidegen") {
		t.Errorf("--version output should name the tool and version: %q", out)
	}
}

func TestRootCommand_Help(t *testing.T) {
	out, err := execute(t, "--help")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, expected := range []string{"slidegen", "Usage:", "--json", "templates", "export", "batch", "serve"} {
		if !strings.Contains(out, expected) {
			t.Errorf("--help output should contain %q: %q", expected, out)
		}
	}
}

func TestRootCommand_JSONFlagIsPersistent(t *testing.T) {
	cmd := newRootCmd()
	if cmd.PersistentFlags().Lookup("json") == nil {
		t.Fatal("--json flag should be a persistent flag")
	}
}

func TestBuildVersion(t *testing.T) {
	version, commit = "1.0.0", "abcdef0123"
	t.Cleanup(func() { version, commit = "dev", "none" })
	if got := buildVersion(); got != "1.0.0 (abcdef0)" {
		t.Fatalf("buildVersion() = %q", got)
	}
}

func TestTemplatesList_JSON(t *testing.T) {
	out, err := execute(t, "templates", "list", "--json")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	var result struct {
		Templates []struct {
			ID    string   `json:"id"`
			Slots []string `json:"slots"`
		} `json:"templates"`
	}
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("output should be valid JSON: %v\n%s", err, out)
	}
	if len(result.Templates) != 5 {
		t.Fatalf("expected 5 built-in templates, got %d", len(result.Templates))
	}
	found := false
	for _, tpl := range result.Templates {
		if tpl.ID == "canvas-template-1" {
			found = true
			if len(tpl.Slots) == 0 {
				t.Errorf("canvas-template-1 should list its slots")
			}
		}
	}
	if !found {
		t.Errorf("canvas-template-1 missing from %s", out)
	}
}

func TestTemplatesList_UnknownCategory(t *testing.T) {
	out, err := execute(t, "templates", "list", "--category", "nope", "--json")
	if err == nil {
		t.Fatal("expected error for unknown category")
	}
	if output.ExitCode(err) != output.ExitUserError {
		t.Errorf("ExitCode() = %d, want %d", output.ExitCode(err), output.ExitUserError)
	}
	var result map[string]any
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("error output should be JSON: %v\n%s", err, out)
	}
	if _, ok := result["error"]; !ok {
		t.Errorf("JSON output should contain 'error': %s", out)
	}
}

func TestTemplatesShow_Unknown(t *testing.T) {
	_, err := execute(t, "templates", "show", "missing")
	if err == nil || !strings.Contains(err.Error(), "canvas-template-1") {
		t.Fatalf("expected not-found error listing available templates, got %v", err)
	}
}

func TestTemplatesValidate(t *testing.T) {
	dir := t.TempDir()
	good := `id: quote
name: Quote
size: { width: 800, height: 450 }
elements:
  - id: body
    type: text
    slot: body
    position: { x: 40, y: 40 }
    size: { width: 720, height: 200 }
    style: { fontSize: 32 }
    exampleContent: Hello
`
	bad := `id: broken
name: Broken
size: { width: 0, height: 450 }
elements:
  - id: body
    type: text
    position: { x: 0, y: 0 }
    size: { width: 10, height: 10 }
    style: { fontSize: 12 }
    exampleContent: Hi
`
	goodPath := filepath.Join(dir, "good.yaml")
	badPath := filepath.Join(dir, "bad", "bad.yaml")
	if err := os.MkdirAll(filepath.Dir(badPath), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(goodPath, []byte(good), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(badPath, []byte(bad), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "templates", "validate", goodPath); err != nil {
		t.Fatalf("valid template should pass: %v", err)
	}

	out, err := execute(t, "templates", "validate", dir, "--json")
	if err == nil {
		t.Fatal("expected validation failure")
	}
	var result struct {
		Files    int              `json:"files"`
		Failures int              `json:"failures"`
		Reports  []templateReport `json:"reports"`
	}
	dec := json.NewDecoder(strings.NewReader(out))
	if err := dec.Decode(&result); err != nil {
		t.Fatalf("output should start with the JSON report: %v\n%s", err, out)
	}
	if result.Files != 2 || result.Failures != 1 {
		t.Fatalf("files=%d failures=%d, want 2 and 1", result.Files, result.Failures)
	}
}

func TestRender_ToFile(t *testing.T) {
	deckPath := writeDeck(t)
	outPath := filepath.Join(t.TempDir(), "preview.html")

	if _, err := execute(t, "render", deckPath, "-o", outPath, "--renderer", "static"); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	html, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	for _, want := range []string{"Great kettle", "Boils in a minute."} {
		if !strings.Contains(string(html), want) {
			t.Errorf("rendered HTML should contain %q", want)
		}
	}
}

func TestRender_UnknownRenderer(t *testing.T) {
	_, err := execute(t, "render", writeDeck(t), "--renderer", "flash")
	if err == nil {
		t.Fatal("expected error for unknown renderer")
	}
	if output.ExitCode(err) != output.ExitUserError {
		t.Errorf("ExitCode() = %d, want %d", output.ExitCode(err), output.ExitUserError)
	}
}

func TestExport_WritesPPTX(t *testing.T) {
	deckPath := writeDeck(t)
	outPath := filepath.Join(t.TempDir(), "reviews.pptx")

	out, err := execute(t, "export", deckPath, "-o", outPath, "--json")
	if err != nil {
		t.Fatalf("Execute() error = %v\n%s", err, out)
	}
	var result map[string]any
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("output should be JSON: %v\n%s", err, out)
	}
	if result["output"] != outPath {
		t.Errorf("output = %v, want %s", result["output"], outPath)
	}

	texts, err := pptx.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read pptx: %v", err)
	}
	if len(texts) != 1 {
		t.Fatalf("expected one slide, got %d", len(texts))
	}
	if !strings.Contains(strings.Join(texts[0].Paragraphs, "\n"), "Great kettle") {
		t.Errorf("slide text should contain the title: %v", texts[0].Paragraphs)
	}
}

func TestDefaultExportName(t *testing.T) {
	tests := []struct {
		path, title, want string
	}{
		{"decks/reviews.yaml", "", "reviews.pptx"},
		{"-", "Launch", "Launch.pptx"},
		{"-", "", "presentation.pptx"},
	}
	for _, tt := range tests {
		if got := defaultExportName(tt.path, tt.title); got != tt.want {
			t.Errorf("defaultExportName(%q, %q) = %q, want %q", tt.path, tt.title, got, tt.want)
		}
	}
}

func TestFill_RequiresInput(t *testing.T) {
	if _, err := execute(t, "fill"); err == nil {
		t.Fatal("expected error without template ids or --deck")
	}
	if _, err := execute(t, "fill", "canvas-template-1", "--json"); err == nil {
		t.Fatal("expected error for --json")
	}
}

func TestBatch_RequiresAPIKey(t *testing.T) {
	t.Setenv("SLIDEGEN_LLM_API_KEY", "")
	os.Unsetenv("SLIDEGEN_LLM_API_KEY")
	_, err := execute(t, "batch", "--input", t.TempDir())
	if err == nil {
		t.Fatal("expected error without an API key")
	}
	if output.ExitCode(err) != output.ExitUserError {
		t.Errorf("ExitCode() = %d, want %d", output.ExitCode(err), output.ExitUserError)
	}
}

func TestRender_AppliesPreset(t *testing.T) {
	deckPath := writeDeck(t)
	dir := t.TempDir()
	presetPath := filepath.Join(dir, "preset.json")
	preset := `{"slides": {"0": {"content": {"title": "Preset title"}}}}`
	if err := os.WriteFile(presetPath, []byte(preset), 0o644); err != nil {
		t.Fatal(err)
	}
	outPath := filepath.Join(dir, "preview.html")

	if _, err := execute(t, "render", deckPath, "-o", outPath, "--preset", presetPath); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	html, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(html), "Preset title") {
		t.Errorf("preset should override the slide title")
	}
}

func TestServerImageSource_Restricted(t *testing.T) {
	var hits int
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		_, _ = w.Write([]byte("<svg></svg>"))
	}))
	defer remote.Close()

	assets := t.TempDir()
	if err := os.WriteFile(filepath.Join(assets, "logo.svg"), []byte("<svg></svg>"), 0o600); err != nil {
		t.Fatalf("write asset: %v", err)
	}
	outside := filepath.Join(t.TempDir(), "secret.txt")
	if err := os.WriteFile(outside, []byte("secret"), 0o600); err != nil {
		t.Fatalf("write secret: %v", err)
	}

	ctx := context.Background()
	a := &app{cfg: &config.Config{AssetsDir: assets}}
	src := a.serverImageSource()
	if _, mime, err := src.Load(ctx, "/logo.svg"); err != nil || mime != "image/svg+xml" {
		t.Fatalf("expected asset under assets dir, got %q %v", mime, err)
	}
	if _, _, err := src.Load(ctx, outside); err == nil {
		t.Fatalf("expected path outside assets dir to fail")
	}
	if _, _, err := src.Load(ctx, remote.URL+"/a.svg"); err == nil || hits != 0 {
		t.Fatalf("expected remote fetch to be disabled, err=%v hits=%d", err, hits)
	}

	unrooted := (&app{cfg: &config.Config{}}).serverImageSource()
	if _, _, err := unrooted.Load(ctx, outside); !errors.Is(err, imagesource.ErrUnrooted) {
		t.Fatalf("expected ErrUnrooted without assets dir, got %v", err)
	}

	allowed := (&app{cfg: &config.Config{RemoteImages: true}}).serverImageSource()
	if _, _, err := allowed.Load(ctx, remote.URL+"/a.svg"); err != nil || hits != 1 {
		t.Fatalf("expected opted-in remote fetch, err=%v hits=%d", err, hits)
	}
}
