// framer.go - HTTP/1.1 response serialization
//
// Builds the exact wire format spec.md §3 specifies:
//
//	HTTP/1.1 <code> <reason>\r\nContent-Type: <ct>\r\nContent-Length: <len>\r\nConnection: close\r\n\r\n<body>
//
// Content-Type values are validated with golang.org/x/net/http/httpguts
// before being written, the way net/http's own server validates header
// field values internally — grounded in the teacher's own golang.org/x/net
// dependency, otherwise unused once the dispatcher moved off net/http.
package webserver

import (
	"bytes"
	"fmt"

	"golang.org/x/net/http/httpguts"
)

var statusText = map[int]string{
	200: "OK",
	404: "Not Found",
	500: "Internal Server Error",
}

func reasonPhrase(code int) string {
	if text, ok := statusText[code]; ok {
		return text
	}
	return "Unknown"
}

// frameResponse serializes code/contentType/body into a full HTTP/1.1
// response. An invalid content-type value (one httpguts rejects) falls
// back to "text/plain" rather than writing a malformed header.
func frameResponse(code int, contentType string, body []byte) []byte {
	if !httpguts.ValidHeaderFieldValue(contentType) {
		contentType = "text/plain"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "HTTP/1.1 %d %s\r\n", code, reasonPhrase(code))
	fmt.Fprintf(&buf, "Content-Type: %s\r\n", contentType)
	fmt.Fprintf(&buf, "Content-Length: %d\r\n", len(body))
	buf.WriteString("Connection: close\r\n")
	buf.WriteString("\r\n")
	buf.Write(body)
	return buf.Bytes()
}

func notFoundBody(path string) []byte {
	return []byte(fmt.Sprintf("404 Not Found - Route '%s' not defined", path))
}

const internalServerErrorBody = "Internal Server Error"
