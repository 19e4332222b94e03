// Package graphql is a GraphQL-over-HTTP client whose operations are
// derived from annotated Go structs.
//
// A selection set is the shape of the struct passed to Query or Mutate:
// exported fields become lowerCamelCase field names, `graphql:"..."` tags
// add aliases, arguments and inline fragments, and the same struct receives
// the decoded response.
package graphql

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/llehouerou/go-mcd/pkg/jsonutil"
)

// RequestModifier is called on every outgoing request, after the body and
// content type are set. Authentication headers are added this way.
type RequestModifier func(*http.Request)

// Client is a GraphQL client bound to one endpoint.
//
// The With* methods return a modified copy and leave the receiver
// untouched, so a Client can be shared between goroutines and specialised
// per call site:
//
//	client = client.WithDebug(true).WithLogger(logger)
type Client struct {
	url             string
	httpClient      *http.Client
	requestModifier RequestModifier
	debug           bool
	logger          *zap.Logger
}

// NewClient creates a client for the GraphQL endpoint at url. A nil
// httpClient means http.DefaultClient.
func NewClient(url string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		url:        url,
		httpClient: httpClient,
		logger:     zap.NewNop(),
	}
}

// URL returns the endpoint the client posts to.
func (c *Client) URL() string {
	return c.url
}

// Query executes the query derived from q, a pointer to struct, and
// decodes the response into it.
func (c *Client) Query(
	ctx context.Context,
	q any,
	variables any,
	options ...Option,
) error {
	return c.do(ctx, queryOperation, q, variables, options...)
}

// Mutate executes the mutation derived from m, a pointer to struct, and
// decodes the response into it.
func (c *Client) Mutate(
	ctx context.Context,
	m any,
	variables any,
	options ...Option,
) error {
	return c.do(ctx, mutationOperation, m, variables, options...)
}

// QueryRaw is Query returning the raw "data" member instead of decoding it.
func (c *Client) QueryRaw(
	ctx context.Context,
	q any,
	variables any,
	options ...Option,
) ([]byte, error) {
	return c.doRaw(ctx, queryOperation, q, variables, options...)
}

// MutateRaw is Mutate returning the raw "data" member instead of decoding
// it.
func (c *Client) MutateRaw(
	ctx context.Context,
	m any,
	variables any,
	options ...Option,
) ([]byte, error) {
	return c.doRaw(ctx, mutationOperation, m, variables, options...)
}

// Exec sends a pre-built document and decodes the response into v. The
// selection is taken from query, not from v, which makes Exec the tool for
// documents assembled at runtime.
func (c *Client) Exec(
	ctx context.Context,
	query string,
	v any,
	variables map[string]any,
	options ...Option,
) error {
	data, resp, respBody, errs := c.request(ctx, execOperation, query, variables)
	return c.processResponse(v, data, resp, respBody, errs)
}

// ExecRaw sends a pre-built document and returns the raw "data" member.
// Partial data is returned alongside GraphQL errors.
func (c *Client) ExecRaw(
	ctx context.Context,
	query string,
	variables map[string]any,
	options ...Option,
) ([]byte, error) {
	data, _, _, errs := c.request(ctx, execOperation, query, variables)
	if len(errs) > 0 {
		return data, errs
	}
	return data, nil
}

func (c *Client) buildAndRequest(
	ctx context.Context,
	op operationType,
	v any,
	variables any,
	options ...Option,
) ([]byte, *http.Response, []byte, Errors) {
	var query string
	var err error
	switch op {
	case queryOperation:
		query, err = ConstructQuery(v, variables, options...)
	case mutationOperation:
		query, err = ConstructMutation(v, variables, options...)
	}
	if err != nil {
		return nil, nil, nil, newSimpleErrors(ErrGraphQLEncode, err)
	}
	return c.request(ctx, op, query, variables)
}

func (c *Client) doRaw(
	ctx context.Context,
	op operationType,
	v any,
	variables any,
	options ...Option,
) ([]byte, error) {
	data, _, _, errs := c.buildAndRequest(ctx, op, v, variables, options...)
	if len(errs) > 0 {
		return data, errs
	}
	return data, nil
}

func (c *Client) do(
	ctx context.Context,
	op operationType,
	v any,
	variables any,
	options ...Option,
) error {
	data, resp, respBody, errs := c.buildAndRequest(ctx, op, v, variables, options...)
	return c.processResponse(v, data, resp, respBody, errs)
}

// request posts query and returns the raw data, the HTTP response, the
// response body (only kept in debug mode) and any errors.
func (c *Client) request(
	ctx context.Context,
	op operationType,
	query string,
	variables any,
) ([]byte, *http.Response, []byte, Errors) {
	start := time.Now()
	request, reqBody, err := c.BuildRequest(ctx, query, variables)
	if err != nil {
		e := c.NewRequestError(
			ErrRequestError,
			fmt.Errorf("problem constructing request: %w", err),
			request,
			nil,
			bytes.NewReader(reqBody),
			nil,
		)
		return nil, nil, nil, Errors{e}
	}

	resp, err := c.httpClient.Do(request)
	if err != nil {
		c.logger.Debug("graphql request failed",
			zap.Stringer("operation", op),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		e := c.NewRequestError(ErrRequestError, err, request, nil, bytes.NewReader(reqBody), nil)
		return nil, nil, nil, Errors{e}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Debug("graphql request rejected",
			zap.Stringer("operation", op),
			zap.Int("status", resp.StatusCode),
			zap.Duration("elapsed", time.Since(start)),
		)
		e := c.DecorateError(
			newStatusError(resp.StatusCode, fmt.Errorf("%v; body: %q", resp.Status, body)),
			request,
			resp,
			bytes.NewReader(reqBody),
			bytes.NewReader(body),
		)
		return nil, nil, nil, Errors{e}
	}

	r, err := handleGzipResponse(resp, resp.Body)
	if err != nil {
		return nil, nil, nil, newSimpleErrors(ErrJsonDecode, err)
	}
	defer func() { _ = r.Close() }()

	var respBody []byte
	var reader io.Reader = r
	if c.debug {
		respBody, err = io.ReadAll(r)
		if err != nil {
			return nil, nil, nil, newSimpleErrors(ErrJsonDecode, err)
		}
		reader = bytes.NewReader(respBody)
	}

	rawData, gqlErrors := c.DecodeResponse(reader)
	c.logger.Debug("graphql request completed",
		zap.Stringer("operation", op),
		zap.Int("status", resp.StatusCode),
		zap.Int("errors", len(gqlErrors)),
		zap.Duration("elapsed", time.Since(start)),
	)
	if len(gqlErrors) == 0 {
		return rawData, resp, respBody, nil
	}

	if gqlErrors[0].GetCode() == ErrJsonDecode {
		e := c.NewRequestError(
			ErrJsonDecode,
			fmt.Errorf("%s", gqlErrors[0].Message),
			request,
			resp,
			bytes.NewReader(reqBody),
			bytes.NewReader(respBody),
		)
		return nil, nil, nil, Errors{e}
	}

	if gqlErrors[0].Extensions["internal"] == nil {
		gqlErrors[0] = c.DecorateError(
			gqlErrors[0],
			request,
			resp,
			bytes.NewReader(reqBody),
			bytes.NewReader(respBody),
		)
	}
	return rawData, resp, respBody, gqlErrors
}

// handleGzipResponse wraps bodyReader in a gzip reader when the response
// says it is gzip encoded.
func handleGzipResponse(
	resp *http.Response,
	bodyReader io.Reader,
) (io.ReadCloser, error) {
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gr, err := gzip.NewReader(bodyReader)
		if err != nil {
			return nil, fmt.Errorf("problem trying to create gzip reader: %w", err)
		}
		return gr, nil
	}
	return io.NopCloser(bodyReader), nil
}

// BuildRequest builds the POST request carrying query and variables. The
// encoded body is returned too so that it can be attached to errors.
func (c *Client) BuildRequest(
	ctx context.Context,
	query string,
	variables any,
) (*http.Request, []byte, error) {
	if !hasVariables(variables) {
		variables = nil
	}
	in := struct {
		Query     string `json:"query"`
		Variables any    `json:"variables,omitempty"`
	}{
		Query:     query,
		Variables: variables,
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(in); err != nil {
		return nil, nil, err
	}

	reqBody := buf.Bytes()
	request, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.url,
		bytes.NewReader(reqBody),
	)
	if err != nil {
		return nil, reqBody, err
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept-Encoding", "gzip")

	if c.requestModifier != nil {
		c.requestModifier(request)
	}
	return request, reqBody, nil
}

// DecodeResponse splits a GraphQL response body into its raw data and
// errors.
func (c *Client) DecodeResponse(reader io.Reader) ([]byte, Errors) {
	var out struct {
		Data   *json.RawMessage
		Errors Errors
	}
	if err := json.NewDecoder(reader).Decode(&out); err != nil {
		return nil, newSimpleErrors(ErrJsonDecode, err)
	}

	var rawData []byte
	if out.Data != nil && len(*out.Data) > 0 && string(*out.Data) != "null" {
		rawData = *out.Data
	}
	if len(out.Errors) > 0 {
		return rawData, out.Errors
	}
	return rawData, nil
}

func (c *Client) processResponse(
	v any,
	data []byte,
	resp *http.Response,
	respBody []byte,
	errs Errors,
) error {
	if len(data) > 0 {
		if err := jsonutil.UnmarshalGraphQL(data, v); err != nil {
			we := c.DecorateError(
				newError(ErrGraphQLDecode, err),
				nil,
				resp,
				nil,
				bytes.NewReader(respBody),
			)
			errs = append(errs, we)
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (c *Client) clone() *Client {
	clone := *c
	return &clone
}

// WithRequestModifier returns a copy of c that calls f on every request.
func (c *Client) WithRequestModifier(f RequestModifier) *Client {
	clone := c.clone()
	clone.requestModifier = f
	return clone
}

// WithDebug returns a copy of c that attaches request and response bodies
// to the errors it returns.
func (c *Client) WithDebug(debug bool) *Client {
	clone := c.clone()
	clone.debug = debug
	return clone
}

// WithLogger returns a copy of c logging each request at debug level.
// A nil logger disables logging.
func (c *Client) WithLogger(logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	clone := c.clone()
	clone.logger = logger
	return clone
}

// DecorateError attaches request/response snapshots to err in debug mode
// and returns it unchanged otherwise.
func (c *Client) DecorateError(
	err Error,
	req *http.Request,
	resp *http.Response,
	reqBody,
	respBody io.Reader,
) Error {
	if !c.debug {
		return err
	}
	if req != nil && reqBody != nil {
		err = err.withRequest(req, reqBody)
	}
	if resp != nil && respBody != nil {
		err = err.withResponse(resp, respBody)
	}
	return err
}

// NewRequestError creates an Error with code and decorates it like
// DecorateError.
func (c *Client) NewRequestError(
	code string,
	err error,
	req *http.Request,
	resp *http.Response,
	reqBody,
	respBody io.Reader,
) Error {
	return c.DecorateError(newError(code, err), req, resp, reqBody, respBody)
}

// UnmarshalGraphQL decodes GraphQL response data into the query struct v.
func UnmarshalGraphQL(data []byte, v any) error {
	return jsonutil.UnmarshalGraphQL(data, v)
}

type operationType uint8

const (
	queryOperation operationType = iota
	mutationOperation
	execOperation
)

func (o operationType) String() string {
	switch o {
	case queryOperation:
		return "query"
	case mutationOperation:
		return "mutation"
	default:
		return "exec"
	}
}
