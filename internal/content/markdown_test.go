package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderDescriptionMarkdown(t *testing.T) {
	html, err := RenderDescription("# مشخصات\n\nقدرت **۲۰۰** وات")
	require.NoError(t, err)
	assert.Contains(t, string(html), "<h1>مشخصات</h1>")
	assert.Contains(t, string(html), "<strong>۲۰۰</strong>")
}

func TestRenderDescriptionStripsScripts(t *testing.T) {
	html, err := RenderDescription("hello\n\n<script>alert(1)</script>")
	require.NoError(t, err)
	assert.NotContains(t, string(html), "<script>")
	assert.Contains(t, string(html), "hello")
}

func TestRenderDescriptionNoFollowLinks(t *testing.T) {
	html, err := RenderDescription("[site](https://example.com)")
	require.NoError(t, err)
	assert.Contains(t, string(html), `rel="nofollow"`)
}

func TestSanitizeComment(t *testing.T) {
	assert.Equal(t, "خیلی خوب", SanitizeComment("<b>خیلی</b> خوب"))
	assert.Equal(t, "", SanitizeComment("<script>x()</script>"))
}
