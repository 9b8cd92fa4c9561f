// Package mockserver runs an in-process API used by the client tests.
//
// Routes live under <prefix>/api/v{version}:
//
//	ANY  /simple              echoes the request
//	ANY  /error?status=N      replies N with {"status":N,"message":"hello world"}
//	ANY  /parameters/:param   echoes every parameter location, including multipart parts
//	POST /complex             echoes the JSON body
//	GET  /header?name=&value= replies 201 with the given response header
//	GET  /slow                blocks until the client goes away or the server closes
package mockserver

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Recorded is a request as the server saw it.
type Recorded struct {
	Method string
	Path   string
	Header http.Header
}

// Server is a mock API backed by httptest.Server.
type Server struct {
	ts     *httptest.Server
	prefix string

	hits atomic.Int64
	mu   sync.Mutex
	last []Recorded

	stop     chan struct{}
	stopOnce sync.Once
}

// Start starts a server whose routes are mounted under prefix (e.g. "/base").
func Start(prefix string) *Server {
	s := &Server{
		prefix: strings.TrimSuffix(prefix, "/"),
		stop:   make(chan struct{}),
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), s.record)

	api := engine.Group(s.prefix + "/api/:version")
	api.Any("/simple", s.echo)
	api.Any("/error", s.fail)
	api.Any("/parameters/:param", s.echo)
	api.POST("/complex", s.complex)
	api.GET("/header", s.header)
	api.GET("/slow", s.slow)

	s.ts = httptest.NewServer(engine)
	return s
}

// URL returns the server root, without the prefix.
func (s *Server) URL() string {
	return s.ts.URL
}

// Base returns the value to use as the client base URL.
func (s *Server) Base() string {
	return s.ts.URL + s.prefix
}

// Hits returns the number of requests received.
func (s *Server) Hits() int {
	return int(s.hits.Load())
}

// Requests returns the requests received so far, oldest first.
func (s *Server) Requests() []Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Recorded(nil), s.last...)
}

// LastRequest returns the most recent request.
func (s *Server) LastRequest() (Recorded, bool) {
	reqs := s.Requests()
	if len(reqs) == 0 {
		return Recorded{}, false
	}
	return reqs[len(reqs)-1], true
}

// Close releases blocked handlers and shuts the server down.
func (s *Server) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
	s.ts.Close()
}

func (s *Server) record(c *gin.Context) {
	s.hits.Add(1)
	s.mu.Lock()
	s.last = append(s.last, Recorded{
		Method: c.Request.Method,
		Path:   c.Request.URL.Path,
		Header: c.Request.Header.Clone(),
	})
	s.mu.Unlock()
	c.Next()
}

// Echo is the body returned by the echo routes.
type Echo struct {
	Method  string              `json:"method"`
	Path    string              `json:"path"`
	Param   string              `json:"param,omitempty"`
	Version string              `json:"version"`
	Query   map[string][]string `json:"query"`
	Headers map[string]string   `json:"headers"`
	Cookies map[string]string   `json:"cookies,omitempty"`
	Body    any                 `json:"body,omitempty"`
	Form    map[string][]string `json:"form,omitempty"`
	Files   map[string]File     `json:"files,omitempty"`
}

// File describes an uploaded multipart file.
type File struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

func (s *Server) echo(c *gin.Context) {
	e := Echo{
		Method:  c.Request.Method,
		Path:    c.Request.URL.Path,
		Param:   c.Param("param"),
		Version: strings.TrimPrefix(c.Param("version"), "v"),
		Query:   c.Request.URL.Query(),
		Headers: make(map[string]string, len(c.Request.Header)),
	}
	for name := range c.Request.Header {
		e.Headers[strings.ToLower(name)] = c.Request.Header.Get(name)
	}
	if cookies := c.Request.Cookies(); len(cookies) > 0 {
		e.Cookies = make(map[string]string, len(cookies))
		for _, ck := range cookies {
			e.Cookies[ck.Name] = ck.Value
		}
	}

	switch ct := c.ContentType(); {
	case ct == "multipart/form-data":
		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		e.Form = form.Value
		if len(form.File) > 0 {
			e.Files = make(map[string]File, len(form.File))
			for field, headers := range form.File {
				fh := headers[0]
				f, err := fh.Open()
				if err != nil {
					c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				data, _ := io.ReadAll(f)
				_ = f.Close()
				e.Files[field] = File{Name: fh.Filename, ContentType: fh.Header.Get("Content-Type"), Content: string(data)}
			}
		}
	case ct == "application/json":
		var body any
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		e.Body = body
	default:
		data, _ := io.ReadAll(c.Request.Body)
		if len(data) > 0 {
			e.Body = string(data)
		}
	}

	c.JSON(http.StatusOK, e)
}

func (s *Server) fail(c *gin.Context) {
	status, err := strconv.Atoi(c.Query("status"))
	if err != nil || status < 100 || status > 599 {
		status = http.StatusInternalServerError
	}
	c.JSON(status, gin.H{"status": status, "message": "hello world"})
}

func (s *Server) complex(c *gin.Context) {
	var body any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, body)
}

func (s *Server) header(c *gin.Context) {
	c.Header(c.DefaultQuery("name", "X-Result"), c.Query("value"))
	c.JSON(http.StatusCreated, gin.H{"created": true})
}

func (s *Server) slow(c *gin.Context) {
	select {
	case <-c.Request.Context().Done():
		c.AbortWithStatus(499)
	case <-s.stop:
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": 503, "message": "server closing"})
	}
}

// WaitForHits blocks until the server has received n requests or ctx ends.
func (s *Server) WaitForHits(ctx context.Context, n int) error {
	for s.Hits() < n {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		time.Sleep(time.Millisecond)
	}
	return nil
}
