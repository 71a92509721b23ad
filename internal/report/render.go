package report

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/net/html"
)

var (
	promoMarkdown = goldmark.New(goldmark.WithExtensions(extension.Linkify))
	promoPolicy   = bluemonday.UGCPolicy()
)

// RenderPromotion renders generator output (light markdown with hashtags and
// emoji) into sanitized HTML for embedding in a page.
func RenderPromotion(text string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := promoMarkdown.Convert([]byte(text), &buf); err != nil {
		return "", err
	}
	return template.HTML(promoPolicy.SanitizeBytes(buf.Bytes())), nil
}

// PlainText strips markup from rendered promotion HTML. The result is the
// caption attached to the simulated SNS post.
func PlainText(h template.HTML) string {
	tok := html.NewTokenizer(strings.NewReader(string(h)))
	var b strings.Builder
	for {
		switch tok.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.TextToken:
			b.Write(tok.Text())
			b.WriteByte(' ')
		}
	}
}
