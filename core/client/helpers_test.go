package client

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/leofalp/aistream/providers/ai"
)

// staticCredentials is an in-memory ai.CredentialProvider.
type staticCredentials struct {
	credentials map[ai.ProviderID]ai.Credentials
	configs     map[ai.ProviderID]ai.ProviderConfig
}

func (s *staticCredentials) Credentials(id ai.ProviderID) (ai.Credentials, error) {
	creds, ok := s.credentials[id]
	if !ok {
		return ai.Credentials{}, errors.New("no credentials")
	}
	return creds, nil
}

func (s *staticCredentials) ProviderConfig(id ai.ProviderID) (ai.ProviderConfig, error) {
	return s.configs[id], nil
}

// credentialsFor points every built-in provider at endpoint with a test key.
func credentialsFor(endpoint string) *staticCredentials {
	creds := &staticCredentials{
		credentials: map[ai.ProviderID]ai.Credentials{},
		configs:     map[ai.ProviderID]ai.ProviderConfig{},
	}
	for _, id := range []ai.ProviderID{ai.ProviderOpenAI, ai.ProviderAnthropic, ai.ProviderGemini, ai.ProviderDeepSeek, ai.ProviderPerplexity} {
		creds.credentials[id] = ai.Credentials{APIKey: "test-key"}
		creds.configs[id] = ai.ProviderConfig{Endpoint: endpoint, DefaultModel: "test-model"}
	}
	return creds
}

// recorder collects sink events.
type recorder struct {
	mu     sync.Mutex
	events []ai.SinkEvent
}

func (r *recorder) sink(event ai.SinkEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recorder) snapshot() []ai.SinkEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ai.SinkEvent(nil), r.events...)
}

// chunks returns the non-terminal chunks in order.
func (r *recorder) chunks() []string {
	var out []string
	for _, event := range r.snapshot() {
		if !event.Done {
			out = append(out, event.Chunk)
		}
	}
	return out
}

// terminal fails the test unless exactly one terminal event was delivered last.
func (r *recorder) terminal(t *testing.T) ai.SinkEvent {
	t.Helper()
	events := r.snapshot()
	if len(events) == 0 {
		t.Fatal("sink received no events")
	}
	terminals := 0
	for _, event := range events {
		if event.Done {
			terminals++
		}
	}
	if terminals != 1 {
		t.Fatalf("expected exactly one terminal event, got %d: %+v", terminals, events)
	}
	last := events[len(events)-1]
	if !last.Done {
		t.Fatalf("terminal event is not last: %+v", events)
	}
	return last
}

// writeChunks sends each chunk in its own flushed write.
func writeChunks(w http.ResponseWriter, chunks ...string) {
	flusher, _ := w.(http.Flusher)
	for _, chunk := range chunks {
		_, _ = io.WriteString(w, chunk)
		if flusher != nil {
			flusher.Flush()
		}
	}
}

// splitEvery cuts body into pieces of n bytes, ignoring rune boundaries.
func splitEvery(body string, n int) []string {
	var pieces []string
	for len(body) > n {
		pieces = append(pieces, body[:n])
		body = body[n:]
	}
	if body != "" {
		pieces = append(pieces, body)
	}
	return pieces
}

// capturedRequest records what the server received.
type capturedRequest struct {
	mu     sync.Mutex
	hits   int
	path   string
	header http.Header
	body   []byte
}

func (c *capturedRequest) record(r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hits++
	c.path = r.URL.Path
	c.header = r.Header.Clone()
	c.body = bytes.Clone(body)
}

func (c *capturedRequest) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits
}

// newStreamServer serves body in the given pieces with the given status.
func newStreamServer(t *testing.T, status int, pieces ...string) (*httptest.Server, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.record(r)
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(status)
		writeChunks(w, pieces...)
	}))
	t.Cleanup(server.Close)
	return server, captured
}

func newTestClient(t *testing.T, endpoint string, opts ...Option) *Client {
	t.Helper()
	c, err := New(credentialsFor(endpoint), opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func openAIDelta(text string) string {
	return `data: {"choices":[{"delta":{"content":` + quoteJSON(text) + `}}]}` + "\n\n"
}

func quoteJSON(s string) string {
	var buf bytes.Buffer
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"', '\\':
			buf.WriteByte('\\')
			buf.WriteRune(r)
		case '\n':
			buf.WriteString(`\n`)
		default:
			buf.WriteRune(r)
		}
	}
	buf.WriteByte('"')
	return buf.String()
}
