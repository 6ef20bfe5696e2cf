package render

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/lectio/internal/common"
	"github.com/ternarybob/lectio/internal/models"
)

func testRenderer() *Renderer {
	return NewRenderer(&common.ExtractionConfig{
		ContentFloor:    50,
		ExtractionLimit: 3000,
		AnalysisLimit:   2000,
	}, nil)
}

func TestRenderHeadingsAndParagraphs(t *testing.T) {
	r := testRenderer()
	model := &models.DocumentModel{}
	model.Append(models.NewHeadingBlock(1, "Report"))
	model.Append(models.NewHeadingBlock(3, "Details"))
	model.Append(models.NewParagraphBlock("Plain body text."))

	out := r.Render(model, models.IntentExtraction, "DocTags Parsing (test)")

	assert.Contains(t, out, "# Report")
	assert.Contains(t, out, "### Details")
	assert.Contains(t, out, "Plain body text.")
	assert.Contains(t, out, "**Document Analysis Complete (DocTags Parsing (test))**")
}

func TestRenderHeadingLevelClamped(t *testing.T) {
	r := testRenderer()
	model := &models.DocumentModel{}
	model.Append(models.NewHeadingBlock(9, "Deep"))

	out := r.Render(model, models.IntentExtraction, "m")
	assert.Contains(t, out, "###### Deep")
	assert.NotContains(t, out, "####### Deep")
}

func TestRenderTableMarkdown(t *testing.T) {
	r := testRenderer()
	model := &models.DocumentModel{}
	model.Append(models.NewTableBlock([][]string{
		{"Name", "Age"},
		{"Alice", "30"},
		{"Bob", "25", "extra"},
		{"Carol"},
	}))

	out := r.Render(model, models.IntentExtraction, "m")

	assert.Contains(t, out, "| Name | Age |")
	assert.Contains(t, out, "|---|---|")
	assert.Contains(t, out, "| Alice | 30 |")
	// Rendering aligns on header width: long rows truncated, short rows padded
	assert.Contains(t, out, "| Bob | 25 |")
	assert.NotContains(t, out, "extra")
	assert.Contains(t, out, "| Carol |  |")
}

func TestRenderLists(t *testing.T) {
	r := testRenderer()
	model := &models.DocumentModel{}
	model.Append(models.NewListBlock(false, []string{"alpha", "beta"}))
	model.Append(models.NewListBlock(true, []string{"first", "second"}))

	out := r.Render(model, models.IntentExtraction, "m")

	assert.Contains(t, out, "- alpha\n- beta")
	assert.Contains(t, out, "1. first\n2. second")
}

func TestRenderTruncationByIntent(t *testing.T) {
	r := testRenderer()
	long := strings.Repeat("x", 5000)

	tests := []struct {
		name   string
		intent models.Intent
		limit  int
	}{
		{"extraction limit", models.IntentExtraction, 3000},
		{"analysis limit", models.IntentAnalysis, 2000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := &models.DocumentModel{}
			model.Append(models.NewRawTextBlock(long))

			out := r.Render(model, tt.intent, "m")

			assert.Contains(t, out, fmt.Sprintf("showing first %d characters", tt.limit))
			assert.Contains(t, out, fmt.Sprintf("*... and %d more characters*", 5000-tt.limit))
			assert.Contains(t, out, "**Tip:**")
			// Footer counts describe the full content, not the truncated view
			assert.Contains(t, out, "- Characters: 5000")
		})
	}
}

func TestRenderMultiByteCountsCharacters(t *testing.T) {
	r := testRenderer()

	// 2500 characters but 7500 bytes; well under the 3000-character bound,
	// so it must come through verbatim with no truncation notice
	model := &models.DocumentModel{}
	model.Append(models.NewRawTextBlock(strings.Repeat("€", 2500)))

	out := r.Render(model, models.IntentExtraction, "m")

	assert.NotContains(t, out, "showing first")
	assert.NotContains(t, out, "more characters")
	assert.Contains(t, out, "- Characters: 2500")
}

func TestRenderMultiByteTruncationOnRuneBoundary(t *testing.T) {
	r := testRenderer()

	// 3201 characters; byte index 3000 would land mid-"€"
	content := "x" + strings.Repeat("€", 3200)
	model := &models.DocumentModel{}
	model.Append(models.NewRawTextBlock(content))

	out := r.Render(model, models.IntentExtraction, "m")

	assert.True(t, utf8.ValidString(out), "truncation must not split a multi-byte sequence")
	assert.Contains(t, out, "showing first 3000 characters")
	assert.Contains(t, out, "*... and 201 more characters*")
	assert.Contains(t, out, "- Characters: 3201")
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		limit int
		want  string
	}{
		{"ascii", "hello", 3, "hel"},
		{"multi-byte", "a€b€c", 3, "a€b"},
		{"limit beyond length", "ab", 10, "ab"},
		{"limit zero", "ab", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncateRunes(tt.input, tt.limit); got != tt.want {
				t.Errorf("truncateRunes(%q, %d) = %q, want %q", tt.input, tt.limit, got, tt.want)
			}
		})
	}
}

func TestRenderNoTruncationUnderLimit(t *testing.T) {
	r := testRenderer()
	model := &models.DocumentModel{}
	model.Append(models.NewRawTextBlock(strings.Repeat("y", 100)))

	out := r.Render(model, models.IntentAnalysis, "m")

	assert.NotContains(t, out, "showing first")
	assert.NotContains(t, out, "more characters")
	assert.NotContains(t, out, "**Tip:**")
	assert.Contains(t, out, "- Characters: 100")
}

func TestRenderStatisticsFooter(t *testing.T) {
	r := testRenderer()
	model := &models.DocumentModel{}
	model.Append(models.NewParagraphBlock("one two three"))

	out := r.Render(model, models.IntentExtraction, "Direct Processing (m)")

	assert.Contains(t, out, "**Document Statistics:**")
	assert.Contains(t, out, "- Words: 3")
	assert.Contains(t, out, "- Processing Method: Direct Processing (m)")
}

func TestRenderBoilerplateStripped(t *testing.T) {
	r := testRenderer()
	model := &models.DocumentModel{}
	model.Append(models.NewParagraphBlock("Real content. Powered by TCPDF www.tcpdf.org"))

	out := r.Render(model, models.IntentExtraction, "m")

	assert.Contains(t, out, "Real content.")
	assert.NotContains(t, out, "TCPDF")
}

func TestCleanTextSentenceBreaks(t *testing.T) {
	got := cleanText("First sentence. Second sentence! Third?")
	require.Equal(t, "First sentence.\nSecond sentence!\nThird?", got)
}

func TestRenderUnreadable(t *testing.T) {
	r := testRenderer()
	out := r.RenderUnreadable("none")

	assert.Contains(t, out, "**Document Analysis Failed**")
	assert.Contains(t, out, "An image without readable text")
	assert.Contains(t, out, "**Document Statistics:**")
	assert.Contains(t, out, "- Processing Method: none")
}

func TestDetectIntent(t *testing.T) {
	tests := []struct {
		message string
		want    models.Intent
	}{
		{"please analyze this document", models.IntentAnalysis},
		{"Summarize the key findings", models.IntentAnalysis},
		{"give me an overview", models.IntentAnalysis},
		{"what are the key points", models.IntentAnalysis},
		{"extract the text", models.IntentExtraction},
		{"", models.IntentExtraction},
	}

	for _, tt := range tests {
		if got := DetectIntent(tt.message); got != tt.want {
			t.Errorf("DetectIntent(%q) = %v, want %v", tt.message, got, tt.want)
		}
	}
}
