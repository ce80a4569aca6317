package content

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

var (
	md = goldmark.New()

	// descriptionPolicy covers merchant-authored product descriptions.
	descriptionPolicy = newDescriptionPolicy()

	// commentPolicy strips everything; review comments render as plain text.
	commentPolicy = bluemonday.StrictPolicy()
)

func newDescriptionPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("loading").OnElements("img")
	policy.RequireNoFollowOnLinks(true)
	return policy
}

// RenderDescription converts product description markdown to sanitized HTML.
func RenderDescription(markdown string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return template.HTML(descriptionPolicy.SanitizeBytes(buf.Bytes())), nil
}

// SanitizeComment strips all markup from a review comment.
func SanitizeComment(raw string) string {
	return commentPolicy.Sanitize(raw)
}
