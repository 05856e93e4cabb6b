// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/draftview/internal/logger"
	"github.com/pdiddy/draftview/pkg/types"
)

func TestWritePDF(t *testing.T) {
	s := types.Sections{
		Abstract:   "A **short** abstract about naïve café results – with a dash.",
		Methods:    "We surveyed papers.",
		Results:    "It worked.",
		References: "[1] Doe, J. (2020). A paper.",
	}

	var buf bytes.Buffer
	err := WritePDF(&buf, s, Options{Date: testDate})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")), "output should be a PDF")
}

func TestBuildPDFPageCountMatchesLayout(t *testing.T) {
	s := types.Sections{
		Abstract: strings.Repeat("lorem ipsum dolor sit amet ", 2000),
		Methods:  "m",
	}

	pdf, doc, err := BuildPDF(s, Options{Date: testDate})
	require.NoError(t, err)
	require.False(t, pdf.Err(), "fpdf error: %v", pdf.Error())
	assert.Greater(t, len(doc.Pages), 1)
	assert.Equal(t, len(doc.Pages), pdf.PageCount())

	footers := doc.Lines(RoleFooter)
	assert.Equal(t, len(doc.Pages), len(footers))
}

func TestBuildPDFWrapsToContentWidth(t *testing.T) {
	pdf, doc, err := BuildPDF(types.Sections{Results: strings.Repeat("measure ", 300)}, Options{Date: testDate})
	require.NoError(t, err)
	require.False(t, pdf.Err())

	m := &fpdfMeasurer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor(""), face: func(f Font) Font { return f }}
	body := doc.Lines(RoleBody)
	require.Greater(t, len(body), 1)
	for _, line := range body {
		assert.LessOrEqual(t, m.StringWidth(line, bodyFont), contentWidth)
	}
}

func TestWritePDFEmptyDraft(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, types.Sections{}, Options{}))
	assert.NotZero(t, buf.Len())
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	t.Cleanup(func() { logger.SetOutput(os.Stderr) })
	return &buf
}

func TestBuildPDFWarnsOnUnencodableText(t *testing.T) {
	log := captureLog(t)

	_, _, err := BuildPDF(types.Sections{Abstract: "α-β 数据 café – “q”"}, Options{Date: testDate})
	require.NoError(t, err)
	assert.Contains(t, log.String(), "4 characters outside Windows-1252")
}

func TestBuildPDFQuietForWindows1252Text(t *testing.T) {
	log := captureLog(t)

	_, _, err := BuildPDF(types.Sections{Abstract: "naïve café – “quoted” €5"}, Options{Date: testDate})
	require.NoError(t, err)
	assert.Empty(t, log.String())
}

func TestCountUnencodable(t *testing.T) {
	assert.Zero(t, countUnencodable("plain ASCII", "café – €"))
	assert.Equal(t, 2, countUnencodable("α", "数"))
	assert.Equal(t, 3, countUnencodable("Ωmega 中文"))
}

func TestBuildPDFMissingFontFile(t *testing.T) {
	_, _, err := BuildPDF(types.Sections{Abstract: "x"}, Options{FontFile: "/nonexistent/draft-font.ttf"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading font")

	var buf bytes.Buffer
	assert.Error(t, WritePDF(&buf, types.Sections{}, Options{FontFile: "/nonexistent/draft-font.ttf"}))
	assert.Zero(t, buf.Len())
}
