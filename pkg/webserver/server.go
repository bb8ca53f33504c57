// server.go - sequential dispatcher
//
// Owns the listening socket and, one connection at a time, reads a
// request, matches a route, evaluates it, frames a response, and writes
// it back (spec.md §4.5). Exactly one request is in flight at any
// moment (spec.md §5) — there is no per-connection goroutine. This
// mirrors the original's blocking accept loop rather than the teacher's
// net/http-based HTTPServerValue, which hands every connection to its
// own goroutine; spec.md §9 explicitly calls out the sequential loop as
// a deliberate, documented choice rather than an oversight.
package webserver

import (
	"context"
	"log"
	"net"
	"time"

	"github.com/tdewolff/minify/v2"

	"github.com/ihave17bucks/webbubble/pkg/lang"
	"github.com/ihave17bucks/webbubble/pkg/router"
)

const requestBufferSize = 4096

// Options configures a Server beyond the route table itself.
type Options struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MinifyHTML   bool
	Logger       *log.Logger
}

// Server is the dispatcher. It is built once per process and is not
// safe for concurrent Serve calls, matching the single-threaded
// scheduling model.
type Server struct {
	program  *lang.Program
	matcher  *router.Matcher
	opts     Options
	minifier *minify.M
}

func New(program *lang.Program, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	s := &Server{
		program: program,
		matcher: router.New(program),
		opts:    opts,
	}
	if opts.MinifyHTML {
		s.minifier = newHTMLMinifier()
	}
	return s
}

// RoutePaths returns the declared route patterns in declaration order,
// used for the startup log line.
func (s *Server) RoutePaths() []string {
	paths := make([]string, len(s.program.Routes))
	for i, r := range s.program.Routes {
		paths[i] = r.Path
	}
	return paths
}

// Serve binds port and runs the accept loop until ctx is cancelled. The
// listener is closed when ctx is done, which unblocks the in-progress
// Accept with a "use of closed network connection" error that Serve
// treats as a clean stop rather than an error to propagate — this is
// the cancellation primitive spec.md §9 recommends in place of a
// process-global signal handler.
func (s *Server) Serve(ctx context.Context, port int) error {
	listener, err := listenRaw(port)
	if err != nil {
		return err
	}

	stopped := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			listener.Close()
		case <-stopped:
		}
	}()
	defer close(stopped)

	s.opts.Logger.Printf("listening on http://0.0.0.0:%d", port)
	for _, p := range s.RoutePaths() {
		s.opts.Logger.Printf("route declared: %s", p)
	}

	for {
		conn, err := listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				s.opts.Logger.Printf("accept error: %v", err)
				continue
			}
		}
		s.handleConn(conn)
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	if s.opts.ReadTimeout > 0 {
		conn.SetReadDeadline(time.Now().Add(s.opts.ReadTimeout))
	}

	buf := make([]byte, requestBufferSize)
	n, err := conn.Read(buf)
	if err != nil || n <= 0 {
		return
	}

	req := parseRequestLine(buf[:n])

	code, contentType, body := s.dispatch(req.Path)

	if s.opts.WriteTimeout > 0 {
		conn.SetWriteDeadline(time.Now().Add(s.opts.WriteTimeout))
	}

	response := frameResponse(code, contentType, body)
	writeFull(conn, response)
}

// dispatch runs the matched route (or builds a 404) and returns the
// status code, content type, and body to frame. A panic during
// evaluation is the closest analogue to the original's output-capture
// failure and is mapped to 500 rather than crashing the dispatcher.
func (s *Server) dispatch(path string) (code int, contentType string, body []byte) {
	match := s.matcher.Find(path)
	if match == nil {
		return 404, "text/plain", notFoundBody(path)
	}

	defer func() {
		if r := recover(); r != nil {
			s.opts.Logger.Printf("panic evaluating route %q: %v", match.Route.Path, r)
			code, contentType, body = 500, "text/plain", []byte(internalServerErrorBody)
		}
	}()

	env := lang.NewEnvironment()
	for name, value := range match.Params {
		env.Set(name, lang.NewString(value))
	}

	eval := lang.NewEvaluator(env)
	result := eval.EvalRoute(match.Route)

	for _, diag := range eval.Diagnostics() {
		s.opts.Logger.Printf("%s", diag)
	}

	body = []byte(result.Body)
	if result.ContentType == "text/html" && s.minifier != nil {
		body = minifyHTML(s.minifier, body)
	}

	return 200, result.ContentType, body
}

// writeFull retries partial writes until the whole response is sent or
// a write fails, per spec.md §9's note that output should not be
// silently truncated.
func writeFull(conn net.Conn, data []byte) {
	for len(data) > 0 {
		n, err := conn.Write(data)
		if err != nil {
			return
		}
		data = data[n:]
	}
}
