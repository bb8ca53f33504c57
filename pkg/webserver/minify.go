// minify.go - optional HTML response minification
//
// Grounded in aofei/air's minifier (minifier.go), updated to the
// tdewolff/minify v2 API: register text/html against html.Minify and
// run every html response body through it before framing. Minification
// failures fall back to the unminified body rather than failing the
// request — a malformed fragment from a buggy route script should still
// reach the client.
package webserver

import (
	"bytes"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
)

func newHTMLMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("text/html", html.Minify)
	return m
}

func minifyHTML(m *minify.M, body []byte) []byte {
	var buf bytes.Buffer
	if err := m.Minify("text/html", &buf, bytes.NewReader(body)); err != nil {
		return body
	}
	return buf.Bytes()
}
