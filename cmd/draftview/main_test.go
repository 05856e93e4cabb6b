// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/draftview/pkg/types"
)

const sampleDraft = "Abstract\nHello world\nMethods\nWe did X\nResults\nIt worked\nReferences\n[1] Foo"

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	out, _, err := executeWithStderr(t, stdin, args...)
	return out, err
}

// executeWithStderr is execute that also returns what the command wrote to
// its error stream.
func executeWithStderr(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	})
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

// resetFlags restores every flag of c and its subcommands to its default so
// values set by one test do not leak into the next.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// backendServer serves canned JSON bodies keyed by request path.
func backendServer(t *testing.T, bodies map[string]string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := bodies[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func writeDraft(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "paper_draft.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSplitJSONFromFile(t *testing.T) {
	out, err := execute(t, "", "split", "--format", "json", writeDraft(t, sampleDraft))
	require.NoError(t, err)

	var s types.Sections
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Equal(t, "Hello world", s.Abstract)
	assert.Equal(t, "[1] Foo", s.References)
}

func TestSplitYAMLFromStdin(t *testing.T) {
	out, err := execute(t, "Findings\nIt worked", "split", "--format", "yaml", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "results: It worked")
}

func TestSplitUnknownFormat(t *testing.T) {
	_, err := execute(t, "", "split", "--format", "xml", "-")
	assert.Error(t, err)
}

func TestSplitFromBackend(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/draft", r.URL.Path)
		json.NewEncoder(w).Encode(sampleDraft)
	}))
	defer ts.Close()

	out, err := execute(t, "", "split", "--format", "json", "--backend-url", ts.URL)
	require.NoError(t, err)
	assert.Contains(t, out, `"methods": "We did X"`)
}

func TestExportTextToFile(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out.txt")
	_, err := execute(t, "", "export", "text", "--output", dest, writeDraft(t, sampleDraft))
	require.NoError(t, err)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Abstract\n\nHello world\n\n"))
}

func TestExportPDFToStdout(t *testing.T) {
	out, err := execute(t, sampleDraft, "export", "pdf", "--output", "-", "-")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "%PDF-"))
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "draftview dev\n", out)
}

func TestRevise(t *testing.T) {
	var got types.ReviseRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/revise", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(types.ReviseResponse{
			Status:  "success",
			Message: "Draft revised successfully",
			Content: "Abstract\nA more technical abstract\nMethods\nWe did X",
		})
	}))
	defer ts.Close()

	out, errOut, err := executeWithStderr(t, "", "revise", "--instructions", "make the abstract more technical", "--backend-url", ts.URL)
	require.NoError(t, err)
	assert.Equal(t, "make the abstract more technical", got.Instructions)
	assert.Contains(t, out, "A more technical abstract")
	assert.Contains(t, out, "We did X")
	assert.Contains(t, errOut, "Draft revised successfully")
}

func TestReviseRequiresInstructions(t *testing.T) {
	_, err := execute(t, "", "revise", "--instructions", "  ", "--backend-url", "http://127.0.0.1:1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--instructions")
}

func TestFlagsDoNotLeakBetweenRuns(t *testing.T) {
	_, err := execute(t, "", "split", "--format", "xml", "-")
	require.Error(t, err)
	resetFlags(rootCmd)

	out, err := execute(t, "Abstract\nfresh", "split", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "fresh")
	assert.NotContains(t, out, `"abstract"`)
}

const papersJSON = `[
	{"paperId": "aaaa1111bbbb", "title": "Graph Networks", "year": 2018, "authors": [{"name": "Lovelace"}]},
	{"paperId": "cccc2222dddd", "title": "Attention Models", "year": 2021}
]`

func TestPapers(t *testing.T) {
	ts := backendServer(t, map[string]string{
		"/api/papers": papersJSON,
		"/api/pdfs":   `["graph networks.pdf"]`,
	})

	out, err := execute(t, "", "papers", "--backend-url", ts.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "Fetched Papers (2)")
	assert.Less(t, strings.Index(out, "Attention Models"), strings.Index(out, "Graph Networks"))
	assert.Contains(t, out, "✓ PDF Downloaded")
}

func TestPapersFilterJSON(t *testing.T) {
	ts := backendServer(t, map[string]string{"/api/papers": papersJSON})

	out, err := execute(t, "", "papers", "--filter", "lovelace", "--format", "json", "--backend-url", ts.URL)
	require.NoError(t, err)

	var papers []types.Paper
	require.NoError(t, json.Unmarshal([]byte(out), &papers))
	require.Len(t, papers, 1)
	assert.Equal(t, "Graph Networks", papers[0].Title)
}

func TestPapersBadSort(t *testing.T) {
	_, err := execute(t, "", "papers", "--sort", "citations", "--backend-url", "http://127.0.0.1:1")
	assert.Error(t, err)
}

func TestSimilaritySortedByPaper(t *testing.T) {
	ts := backendServer(t, map[string]string{
		"/api/similarity": `{"total_papers": 3, "similarities": [
			{"paper1": "Zeta", "paper2": "Beta", "score": 0.9},
			{"paper1": "Alpha", "paper2": "Beta", "score": 0.1}]}`,
	})

	out, err := execute(t, "", "similarity", "--sort", "paper1", "--format", "yaml", "--backend-url", ts.URL)
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "Alpha"), strings.Index(out, "Zeta"))

	out, err = execute(t, "", "similarity", "--backend-url", ts.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "3 Papers Analyzed")
	assert.Less(t, strings.Index(out, "Zeta"), strings.Index(out, "Alpha"))
}

func TestResultsNotReady(t *testing.T) {
	ts := backendServer(t, map[string]string{
		"/api/entities":   `null`,
		"/api/synthesis":  `null`,
		"/api/similarity": `null`,
	})

	tests := []struct {
		command string
		want    string
	}{
		{"entities", "No common entities extracted yet."},
		{"synthesis", "No dataset data available."},
		{"findings", "No key findings extracted yet."},
		{"similarity", "No similarity data available."},
	}
	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			out, err := execute(t, "", tt.command, "--backend-url", ts.URL)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestFindings(t *testing.T) {
	ts := backendServer(t, map[string]string{
		"/api/similarity": `{"key_findings": {"Paper B": ["our method achieves 90%"], "Paper A": []}}`,
	})

	out, err := execute(t, "", "findings", "--format", "json", "--backend-url", ts.URL)
	require.NoError(t, err)

	var findings []types.PaperFindings
	require.NoError(t, json.Unmarshal([]byte(out), &findings))
	require.Len(t, findings, 2)
	assert.Equal(t, "Paper A", findings[0].Paper)
	assert.Equal(t, types.Findings{"our method achieves 90%"}, findings[1].Findings)
}

func TestBackendErrorSurfaces(t *testing.T) {
	ts := backendServer(t, map[string]string{})

	_, err := execute(t, "", "entities", "--backend-url", ts.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}
