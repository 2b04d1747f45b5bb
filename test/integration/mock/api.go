package mock

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

// ParserServer stands in for the remote intent parser. Responses are
// queued per path; the last queued response repeats once the queue drains.
type ParserServer struct {
	mu       sync.Mutex
	server   *httptest.Server
	queued   map[string][]parserReply
	fallback map[string]parserReply
	requests map[string][]map[string]any
}

type parserReply struct {
	status int
	body   any
}

func NewParserServer() *ParserServer {
	p := &ParserServer{}
	p.Reset()
	p.server = httptest.NewServer(http.HandlerFunc(p.serve))
	return p
}

func (p *ParserServer) URL() string {
	return p.server.URL
}

func (p *ParserServer) Close() {
	p.server.Close()
}

// Reset forgets all queued responses and received requests.
func (p *ParserServer) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queued = map[string][]parserReply{}
	p.fallback = map[string]parserReply{}
	p.requests = map[string][]map[string]any{}
}

// Respond queues one response for path.
func (p *ParserServer) Respond(path string, status int, body any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	reply := parserReply{status: status, body: body}
	p.queued[path] = append(p.queued[path], reply)
	p.fallback[path] = reply
}

// Requests returns the decoded bodies received on path, oldest first.
func (p *ParserServer) Requests(path string) []map[string]any {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]map[string]any, len(p.requests[path]))
	copy(out, p.requests[path])
	return out
}

func (p *ParserServer) serve(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	request := map[string]any{}
	_ = json.Unmarshal(raw, &request)

	p.mu.Lock()
	path := r.URL.Path
	p.requests[path] = append(p.requests[path], request)

	reply, ok := p.fallback[path]
	if queue := p.queued[path]; len(queue) > 0 {
		reply, ok = queue[0], true
		p.queued[path] = queue[1:]
	}
	p.mu.Unlock()

	if !ok {
		reply = parserReply{status: http.StatusOK, body: map[string]any{"message": ""}}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(reply.status)
	_ = json.NewEncoder(w).Encode(reply.body)
}
