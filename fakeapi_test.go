package mcd_test

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/validator"

	mcd "github.com/llehouerou/go-mcd"
	"github.com/llehouerou/go-mcd/schema"
)

// localRoundTripper is an http.RoundTripper that executes HTTP transactions
// by using handler directly, instead of going over an HTTP connection.
type localRoundTripper struct {
	handler http.Handler
}

func (l localRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	w := httptest.NewRecorder()
	l.handler.ServeHTTP(w, req)
	return w.Result(), nil
}

type recordedCall struct {
	Operation string
	Query     string
	Variables map[string]any
	Header    http.Header
}

// fakeAPI answers operations by name with queued bodies. Every document
// and its variables are validated against the embedded schema first, so
// a test fails on any operation the real server would reject.
type fakeAPI struct {
	t *testing.T

	mu       sync.Mutex
	replies  map[string][]string
	lastSent map[string]string
	calls    []recordedCall
}

func newFakeAPI(t *testing.T) *fakeAPI {
	return &fakeAPI{
		t:        t,
		replies:  make(map[string][]string),
		lastSent: make(map[string]string),
	}
}

// reply queues a "data" payload for the operation. Once the queue is
// drained the last reply sent is repeated.
func (f *fakeAPI) reply(operation, data string) {
	f.replyRaw(operation, `{"data":`+data+`}`)
}

func (f *fakeAPI) replyRaw(operation, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies[operation] = append(f.replies[operation], body)
}

func (f *fakeAPI) recorded() []recordedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedCall(nil), f.calls...)
}

func (f *fakeAPI) last() recordedCall {
	calls := f.recorded()
	if len(calls) == 0 {
		f.t.Fatal("no call recorded")
	}
	return calls[len(calls)-1]
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	var in struct {
		Query     string         `json:"query"`
		Variables map[string]any `json:"variables"`
	}
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		f.t.Errorf("decode request: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s := schema.MustLoad()
	doc, errs := gqlparser.LoadQuery(s, in.Query)
	if len(errs) > 0 {
		f.t.Errorf("invalid document %s: %v", in.Query, errs)
		writeJSON(w, `{"errors":[{"message":"invalid document"}]}`)
		return
	}
	op := doc.Operations[0]
	if _, err := validator.VariableValues(s, op, integralNumbers(in.Variables)); err != nil {
		f.t.Errorf("invalid variables %v for %s: %v", in.Variables, in.Query, err)
		writeJSON(w, `{"errors":[{"message":"invalid variables"}]}`)
		return
	}

	f.mu.Lock()
	f.calls = append(f.calls, recordedCall{
		Operation: op.Name,
		Query:     in.Query,
		Variables: in.Variables,
		Header:    req.Header.Clone(),
	})
	body := f.lastSent[op.Name]
	if queue := f.replies[op.Name]; len(queue) > 0 {
		body = queue[0]
		f.replies[op.Name] = queue[1:]
		f.lastSent[op.Name] = body
	}
	f.mu.Unlock()

	if body == "" {
		f.t.Errorf("unexpected operation %q", op.Name)
		writeJSON(w, `{"errors":[{"message":"no reply"}]}`)
		return
	}
	writeJSON(w, body)
}

// integralNumbers returns a copy of vars in which whole float64 values are
// int64, the way an Int variable is held once decoded.
func integralNumbers(vars map[string]any) map[string]any {
	if vars == nil {
		return nil
	}
	out := make(map[string]any, len(vars))
	for k, v := range vars {
		out[k] = integral(v)
	}
	return out
}

func integral(v any) any {
	switch v := v.(type) {
	case float64:
		if v == math.Trunc(v) {
			return int64(v)
		}
		return v
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = integral(e)
		}
		return out
	case map[string]any:
		return integralNumbers(v)
	default:
		return v
	}
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

// client returns a client talking to f with test credentials.
func (f *fakeAPI) client(opts ...mcd.Option) *mcd.Client {
	f.t.Helper()
	base := []mcd.Option{
		mcd.WithCredentials("test-id", "test-token"),
		mcd.WithEndpoint("https://api.test/graphql"),
		mcd.WithConfigPath(f.t.TempDir()),
		mcd.WithHTTPClient(&http.Client{Transport: localRoundTripper{handler: f}}),
	}
	c, err := mcd.NewClient(append(base, opts...)...)
	if err != nil {
		f.t.Fatal(err)
	}
	return c
}
