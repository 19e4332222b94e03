package graphql_test

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/llehouerou/go-mcd/graphql"
)

func TestClient_Query_partialDataWithErrorResponse(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/graphql", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		mustWrite(w, `{
			"data": {
				"table1": {
					"mcon": "MCON++a++table++one"
				},
				"table2": null
			},
			"errors": [
				{
					"message": "Table not found",
					"path": ["table2"],
					"locations": [
						{
							"line": 1,
							"column": 40
						}
					]
				}
			]
		}`)
	})
	client := graphql.NewClient(
		"/graphql",
		&http.Client{Transport: localRoundTripper{handler: mux}},
	)

	var q struct {
		Table1 *struct {
			Mcon string
		} `graphql:"table1: getTable(mcon: \"MCON++a++table++one\")"`
		Table2 *struct {
			Mcon string
		} `graphql:"table2: getTable(mcon: \"missing\")"`
	}

	_, err := client.QueryRaw(context.Background(), &q, nil)
	if err == nil {
		t.Fatal("got error: nil, want: non-nil")
	}

	err = client.Query(context.Background(), &q, nil)
	if err == nil {
		t.Fatal("got error: nil, want: non-nil")
	}
	if got, want := err.Error(), "Message: Table not found, Locations: [{Line:1 Column:40}], Path: [table2]"; got != want {
		t.Errorf("got error: %v, want: %v", got, want)
	}

	if q.Table1 == nil || q.Table1.Mcon != "MCON++a++table++one" {
		t.Errorf("got wrong q.Table1: %v", q.Table1)
	}
	if q.Table2 != nil {
		t.Errorf("got non-nil q.Table2: %v, want: nil", *q.Table2)
	}
}

func TestClient_Query_noDataWithErrorResponse(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/graphql", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		mustWrite(w, `{
			"errors": [
				{
					"message": "Field 'getTable' argument 'mcon' is required",
					"locations": [
						{
							"line": 1,
							"column": 2
						}
					]
				}
			]
		}`)
	})
	client := graphql.NewClient(
		"/graphql",
		&http.Client{Transport: localRoundTripper{handler: mux}},
	)

	var q struct {
		GetUser struct {
			Email string
		}
	}
	err := client.Query(context.Background(), &q, nil)
	if err == nil {
		t.Fatal("got error: nil, want: non-nil")
	}
	if got, want := err.Error(), "Message: Field 'getTable' argument 'mcon' is required, Locations: [{Line:1 Column:2}]"; got != want {
		t.Errorf("got error: %v, want: %v", got, want)
	}
	if q.GetUser.Email != "" {
		t.Errorf("got non-empty q.GetUser.Email: %v", q.GetUser.Email)
	}

	// debug mode keeps the request body
	client = client.WithDebug(true)
	err = client.Query(context.Background(), &q, nil)
	if err == nil {
		t.Fatal("got error: nil, want: non-nil")
	}
	var gqlErr graphql.Errors
	if !errors.As(err, &gqlErr) {
		t.Fatalf("the error type should be graphql.Errors, got %T", err)
	}
	internal := gqlErr[0].GetInternalExtensions()
	if internal == nil || internal.Request == nil {
		t.Fatal("got no internal request info")
	}
	if got, want := internal.Request.Body, "{\"query\":\"{getUser{email}}\"}\n"; got != want {
		t.Errorf("got request body: %v, want: %v", got, want)
	}
}

func TestClient_Query_errorStatusCode(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/graphql", func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "invalid token", http.StatusUnauthorized)
	})
	client := graphql.NewClient(
		"/graphql",
		&http.Client{Transport: localRoundTripper{handler: mux}},
	)

	var q struct {
		GetUser struct {
			Email string
		}
	}
	err := client.Query(context.Background(), &q, nil)
	if err == nil {
		t.Fatal("got error: nil, want: non-nil")
	}
	if got, want := err.Error(), `Message: 401 Unauthorized; body: "invalid token\n", Locations: []`; got != want {
		t.Errorf("got error: %v, want: %v", got, want)
	}

	gqlErr := err.(graphql.Errors)
	if got, want := gqlErr[0].GetCode(), graphql.ErrRequestError; got != want {
		t.Errorf("got code: %v, want: %v", got, want)
	}
	if got, want := gqlErr.StatusCode(), http.StatusUnauthorized; got != want {
		t.Errorf("got status: %v, want: %v", got, want)
	}
	if !gqlErr.HasCode(graphql.ErrRequestError) {
		t.Errorf("HasCode(%q) = false", graphql.ErrRequestError)
	}
	if _, ok := gqlErr[0].Extensions["internal"]; ok {
		t.Errorf("expected no internal extension outside debug mode")
	}

	client = client.WithDebug(true)
	err = client.Query(context.Background(), &q, nil)
	gqlErr = err.(graphql.Errors)
	internal := gqlErr[0].GetInternalExtensions()
	if internal == nil || internal.Response == nil {
		t.Fatal("got no internal response info")
	}
	if got, want := internal.Response.Body, "invalid token\n"; got != want {
		t.Errorf("got response body: %q, want: %q", got, want)
	}
}

// An empty variables map is sent exactly like a nil one.
func TestClient_Query_emptyVariables(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/graphql", func(w http.ResponseWriter, req *http.Request) {
		body := mustRead(req.Body)
		if got, want := body, `{"query":"{getUser{email}}"}`+"\n"; got != want {
			t.Errorf("got body: %v, want %v", got, want)
		}
		w.Header().Set("Content-Type", "application/json")
		mustWrite(w, `{"data": {"getUser": {"email": "gopher@example.com"}}}`)
	})
	client := graphql.NewClient(
		"/graphql",
		&http.Client{Transport: localRoundTripper{handler: mux}},
	)

	var q struct {
		GetUser struct {
			Email string
		}
	}
	err := client.Query(context.Background(), &q, map[string]any{})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := q.GetUser.Email, "gopher@example.com"; got != want {
		t.Errorf("got q.GetUser.Email: %q, want: %q", got, want)
	}
}

func TestClient_Query_ignoreFields(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/graphql", func(w http.ResponseWriter, req *http.Request) {
		body := mustRead(req.Body)
		if got, want := body, `{"query":"{getUser{id,email}}"}`+"\n"; got != want {
			t.Errorf("got body: %v, want %v", got, want)
		}
		w.Header().Set("Content-Type", "application/json")
		mustWrite(w, `{"data": {"getUser": {"email": "gopher@example.com"}}}`)
	})
	client := graphql.NewClient(
		"/graphql",
		&http.Client{Transport: localRoundTripper{handler: mux}},
	)

	var q struct {
		GetUser struct {
			ID      string `graphql:"id"`
			Email   string `graphql:"email"`
			Ignored string `graphql:"-"`
		}
	}
	if err := client.Query(context.Background(), &q, nil); err != nil {
		t.Fatal(err)
	}
	if got, want := q.GetUser.Email, "gopher@example.com"; got != want {
		t.Errorf("got q.GetUser.Email: %q, want: %q", got, want)
	}
	if q.GetUser.Ignored != "" {
		t.Errorf("got q.GetUser.Ignored: %q, want empty", q.GetUser.Ignored)
	}
}

func TestClient_Query_nullData(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/graphql", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		mustWrite(w, `{"data": null}`)
	})
	client := graphql.NewClient(
		"/graphql",
		&http.Client{Transport: localRoundTripper{handler: mux}},
	)

	var q struct {
		GetUser *struct {
			Email string
		}
	}
	if err := client.Query(context.Background(), &q, nil); err != nil {
		t.Fatal(err)
	}
	if q.GetUser != nil {
		t.Errorf("got q.GetUser: %v, want nil", q.GetUser)
	}
}

func TestClient_Query_unknownKey(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/graphql", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		mustWrite(w, `{"data": {"getUser": {"email": "a@b.c", "phone": "123"}}}`)
	})
	client := graphql.NewClient(
		"/graphql",
		&http.Client{Transport: localRoundTripper{handler: mux}},
	)

	var q struct {
		GetUser struct {
			Email string
		}
	}
	err := client.Query(context.Background(), &q, nil)
	var gqlErr graphql.Errors
	if !errors.As(err, &gqlErr) {
		t.Fatalf("got error %v, want graphql.Errors", err)
	}
	if got, want := gqlErr[0].GetCode(), graphql.ErrGraphQLDecode; got != want {
		t.Errorf("got code: %v, want: %v", got, want)
	}
}

func TestClient_Query_RawResponse(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/graphql", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		mustWrite(w, `{"data": {"getUser": {"email": "gopher@example.com"}}}`)
	})
	client := graphql.NewClient(
		"/graphql",
		&http.Client{Transport: localRoundTripper{handler: mux}},
	)

	var q struct {
		GetUser struct {
			Email string `graphql:"email"`
		} `graphql:"getUser"`
	}
	rawBytes, err := client.QueryRaw(context.Background(), &q, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(rawBytes), `{"getUser": {"email": "gopher@example.com"}}`; got != want {
		t.Errorf("got raw data: %s, want: %s", got, want)
	}
}

func TestClient_Mutate_variables(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/graphql", func(w http.ResponseWriter, req *http.Request) {
		body := mustRead(req.Body)
		want := `{"query":"mutation PauseMonitor($pause:Boolean!$uuid:UUID!){pauseMonitor(uuid: $uuid, pause: $pause){monitor{uuid}}}",` +
			`"variables":{"pause":true,"uuid":"3b9f0c2e-62b9-4c34-9f67-0d3c1f0a2a11"}}` + "\n"
		if body != want {
			t.Errorf("got body: %v, want %v", body, want)
		}
		w.Header().Set("Content-Type", "application/json")
		mustWrite(w, `{"data": {"pauseMonitor": {"monitor": {"uuid": "3b9f0c2e-62b9-4c34-9f67-0d3c1f0a2a11"}}}}`)
	})
	client := graphql.NewClient(
		"/graphql",
		&http.Client{Transport: localRoundTripper{handler: mux}},
	)

	type UUID string
	var m struct {
		PauseMonitor struct {
			Monitor struct {
				UUID string
			}
		} `graphql:"pauseMonitor(uuid: $uuid, pause: $pause)"`
	}
	vars := map[string]any{
		"uuid":  UUID("3b9f0c2e-62b9-4c34-9f67-0d3c1f0a2a11"),
		"pause": true,
	}
	err := client.Mutate(context.Background(), &m, vars, graphql.OperationName("PauseMonitor"))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := m.PauseMonitor.Monitor.UUID, "3b9f0c2e-62b9-4c34-9f67-0d3c1f0a2a11"; got != want {
		t.Errorf("got uuid: %q, want: %q", got, want)
	}
}

func TestClient_Exec_Query(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/graphql", func(w http.ResponseWriter, req *http.Request) {
		body := mustRead(req.Body)
		if got, want := body, `{"query":"{getUser{id,email}}"}`+"\n"; got != want {
			t.Errorf("got body: %v, want %v", got, want)
		}
		w.Header().Set("Content-Type", "application/json")
		mustWrite(w, `{"data": {"getUser": {"email": "gopher@example.com"}}}`)
	})
	client := graphql.NewClient(
		"/graphql",
		&http.Client{Transport: localRoundTripper{handler: mux}},
	)

	var q struct {
		GetUser struct {
			ID    string
			Email string
		}
	}
	err := client.Exec(context.Background(), "{getUser{id,email}}", &q, map[string]any{})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := q.GetUser.Email, "gopher@example.com"; got != want {
		t.Errorf("got q.GetUser.Email: %q, want: %q", got, want)
	}
}

func TestClient_ExecRaw(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/graphql", func(w http.ResponseWriter, req *http.Request) {
		body := mustRead(req.Body)
		want := `{"query":"query ($mcon:String!){getTable(mcon: $mcon){fullTableId}}","variables":{"mcon":"m"}}` + "\n"
		if body != want {
			t.Errorf("got body: %v, want %v", body, want)
		}
		w.Header().Set("Content-Type", "application/json")
		mustWrite(w, `{"data": {"getTable": {"fullTableId": "db:schema.t"}}}`)
	})
	client := graphql.NewClient(
		"/graphql",
		&http.Client{Transport: localRoundTripper{handler: mux}},
	)

	raw, err := client.ExecRaw(
		context.Background(),
		"query ($mcon:String!){getTable(mcon: $mcon){fullTableId}}",
		map[string]any{"mcon": "m"},
	)
	if err != nil {
		t.Fatal(err)
	}
	var out struct {
		GetTable struct {
			FullTableID string `json:"fullTableId"`
		} `json:"getTable"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatal(err)
	}
	if got, want := out.GetTable.FullTableID, "db:schema.t"; got != want {
		t.Errorf("got fullTableId: %q, want: %q", got, want)
	}
}

func TestClient_gzipResponse(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/graphql", func(w http.ResponseWriter, req *http.Request) {
		if got := req.Header.Get("Accept-Encoding"); got != "gzip" {
			t.Errorf("got Accept-Encoding: %q, want gzip", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		mustWrite(gz, `{"data": {"getUser": {"email": "gopher@example.com"}}}`)
		if err := gz.Close(); err != nil {
			t.Error(err)
		}
	})
	client := graphql.NewClient(
		"/graphql",
		&http.Client{Transport: localRoundTripper{handler: mux}},
	)

	var q struct {
		GetUser struct {
			Email string
		}
	}
	if err := client.Query(context.Background(), &q, nil); err != nil {
		t.Fatal(err)
	}
	if got, want := q.GetUser.Email, "gopher@example.com"; got != want {
		t.Errorf("got q.GetUser.Email: %q, want: %q", got, want)
	}
}

func TestClient_WithRequestModifier(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/graphql", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if req.Header.Get("x-mcd-id") != "key-id" {
			http.Error(w, "missing id", http.StatusUnauthorized)
			return
		}
		mustWrite(w, `{"data": {"getUser": {"email": "gopher@example.com"}}}`)
	})
	base := graphql.NewClient(
		"/graphql",
		&http.Client{Transport: localRoundTripper{handler: mux}},
	)
	authed := base.WithRequestModifier(func(r *http.Request) {
		r.Header.Set("x-mcd-id", "key-id")
	})

	var q struct {
		GetUser struct {
			Email string
		}
	}
	if err := authed.Query(context.Background(), &q, nil); err != nil {
		t.Fatal(err)
	}
	// the original client is left untouched
	err := base.Query(context.Background(), &q, nil)
	var gqlErr graphql.Errors
	if !errors.As(err, &gqlErr) || gqlErr.StatusCode() != http.StatusUnauthorized {
		t.Errorf("got error %v, want a 401 status error", err)
	}
}

func TestClient_WithLogger(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/graphql", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		mustWrite(w, `{"data": {"getUser": {"email": "gopher@example.com"}}}`)
	})
	core, logs := observer.New(zapcore.DebugLevel)
	client := graphql.NewClient(
		"/graphql",
		&http.Client{Transport: localRoundTripper{handler: mux}},
	).WithLogger(zap.New(core))

	var q struct {
		GetUser struct {
			Email string
		}
	}
	if err := client.Query(context.Background(), &q, nil); err != nil {
		t.Fatal(err)
	}
	entries := logs.FilterMessage("graphql request completed").All()
	if len(entries) != 1 {
		t.Fatalf("got %d log entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if got, want := fields["operation"], "query"; got != want {
		t.Errorf("got operation field: %v, want: %v", got, want)
	}
	if got, want := fields["status"], int64(http.StatusOK); got != want {
		t.Errorf("got status field: %v (%T), want: %v", got, got, want)
	}

	// a nil logger falls back to a no-op one
	if err := client.WithLogger(nil).Query(context.Background(), &q, nil); err != nil {
		t.Fatal(err)
	}
	if got := logs.Len(); got != 1 {
		t.Errorf("got %d log entries after nil logger, want 1", got)
	}
}

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

func mustRead(r io.Reader) string {
	b, err := io.ReadAll(r)
	if err != nil {
		panic(err)
	}
	return string(b)
}

func mustWrite(w io.Writer, s string) {
	_, err := io.WriteString(w, s)
	if err != nil {
		panic(err)
	}
}
