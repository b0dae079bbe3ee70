package markup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdown_EmptyInput(t *testing.T) {
	assert.Equal(t, "", RenderMarkdown(""))
	assert.Equal(t, "", RenderMarkdown("  \n "))
}

func TestRenderMarkdown_NewlinesBecomeBreaks(t *testing.T) {
	result := RenderMarkdown("200 g mąki\n2 jajka\nszczypta soli")

	assert.True(t, strings.HasPrefix(result, "<p>200 g mąki<br"), result)
	assert.Equal(t, 2, strings.Count(result, "<br"))
	assert.True(t, strings.HasSuffix(result, "szczypta soli</p>"), result)
}

func TestRenderMarkdown_Bold(t *testing.T) {
	result := RenderMarkdown("**Składniki**")
	assert.Contains(t, result, "<strong>Składniki</strong>")
}

func TestRenderMarkdown_List(t *testing.T) {
	result := RenderMarkdown("- mąka\n- cukier")
	assert.Contains(t, result, "<li>mąka</li>")
	assert.Contains(t, result, "<li>cukier</li>")
}

func TestRenderMarkdown_LinkOpensInNewTab(t *testing.T) {
	result := RenderMarkdown("[przepis](https://example.com)")
	assert.Contains(t, result, `href="https://example.com"`)
	assert.Contains(t, result, `target="_blank"`)
	assert.Contains(t, result, "przepis</a>")
}

func TestRenderMarkdown_AutolinksBareURLs(t *testing.T) {
	result := RenderMarkdown("Więcej: https://www.instagram.com/kulinarneprzygody_/")
	assert.Contains(t, result, `<a href="https://www.instagram.com/kulinarneprzygody_/"`)
}

func TestRenderMarkdown_SanitizesScript(t *testing.T) {
	result := RenderMarkdown(`<script>alert("xss")</script>`)
	assert.NotContains(t, result, "<script>")
}
