package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/christopherklint97/contribcal/internal/heatmap"
)

func fakeSource(t *testing.T) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/octocat" {
			http.NotFound(w, r)
			return
		}
		y := r.URL.Query().Get("y")
		fmt.Fprintf(w, `{"total":{%q:1234},"contributions":[{"date":"%s-03-01","count":4,"level":3}]}`, y, y)
	}))
	t.Cleanup(srv.Close)

	t.Setenv("HOME", t.TempDir())
	t.Setenv("CONTRIBCAL_BASE_URL", srv.URL)
	t.Setenv("CONTRIBCAL_USERNAME", "")
	t.Setenv("CONTRIBCAL_LOG_LEVEL", "error")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		for _, name := range []string{"user", "year"} {
			rootCmd.PersistentFlags().Set(name, "")
		}
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestJSONCommand(t *testing.T) {
	fakeSource(t)

	out, err := execute(t, "json", "--user", "octocat", "--year", "2024")
	if err != nil {
		t.Fatalf("json: %v\n%s", err, out)
	}

	var cal heatmap.Calendar
	if err := json.Unmarshal([]byte(out), &cal); err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if cal.Year != 2024 || cal.Total != 1234 || len(cal.Weeks) != 53 || len(cal.Months) != 12 {
		t.Errorf("calendar = year %d total %d weeks %d months %d", cal.Year, cal.Total, len(cal.Weeks), len(cal.Months))
	}
}

func TestJSONCommand_RequestFailure(t *testing.T) {
	fakeSource(t)

	if _, err := execute(t, "json", "--user", "nobody", "--year", "2024"); err == nil {
		t.Fatal("expected error for 404")
	}
}

func TestJSONCommand_RequiresUsername(t *testing.T) {
	fakeSource(t)

	_, err := execute(t, "json", "--year", "2024")
	if err == nil || !strings.Contains(err.Error(), "no username") {
		t.Fatalf("err = %v", err)
	}
}

func TestSummaryCommand_MultipleYears(t *testing.T) {
	fakeSource(t)

	out, err := execute(t, "summary", "--user", "octocat", "2023", "2024")
	if err != nil {
		t.Fatalf("summary: %v\n%s", err, out)
	}
	for _, want := range []string{"@octocat", "2023  1,234 contributions", "2024  1,234 contributions", "Feb  week  5"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "2023  ") > strings.Index(out, "2024  ") {
		t.Error("years printed out of order")
	}
}

func TestRenderCommand(t *testing.T) {
	fakeSource(t)
	path := filepath.Join(t.TempDir(), "out", "chart.html")

	if out, err := execute(t, "render", "--user", "octocat", "--year", "2024", "--out", path); err != nil {
		t.Fatalf("render: %v\n%s", err, out)
	}
	renderCmd.Flags().Set("out", "")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading chart: %v", err)
	}
	if !bytes.Contains(data, []byte("@octocat")) {
		t.Error("chart missing title")
	}
}

func TestSchemaCommand(t *testing.T) {
	out, err := execute(t, "schema")
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	for _, want := range []string{`"weekIndex"`, `"weeks"`, `"level"`} {
		if !strings.Contains(out, want) {
			t.Errorf("schema missing %s", want)
		}
	}
}

func TestEditorCommand(t *testing.T) {
	c, err := editorCommand("sh", "/tmp/config.toml")
	if err != nil {
		t.Fatalf("editorCommand(sh): %v", err)
	}
	if !filepath.IsAbs(c.Path) {
		t.Errorf("path = %q, want resolved", c.Path)
	}
	if got := c.Args[len(c.Args)-1]; got != "/tmp/config.toml" {
		t.Errorf("last arg = %q", got)
	}

	if _, err := editorCommand("contribcal-no-such-editor", "/tmp/config.toml"); err == nil {
		t.Error("expected error for missing editor")
	}
}
