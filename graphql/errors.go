package graphql

import (
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Error codes set in extensions["code"] for failures raised on the client
// side, before or after the server had a chance to answer.
const (
	ErrRequestError  = "request_error"
	ErrJsonEncode    = "json_encode_error"
	ErrJsonDecode    = "json_decode_error"
	ErrGraphQLEncode = "graphql_encode_error"
	ErrGraphQLDecode = "graphql_decode_error"
)

// Errors is the "errors" array of a GraphQL response. When returned as an
// error it holds at least one element.
//
// Specification: https://spec.graphql.org/October2021/#sec-Errors
type Errors []Error

// Error is a single GraphQL error, either reported by the server or
// synthesised by the client with one of the Err* codes.
type Error struct {
	Message    string         `json:"message"`
	Extensions map[string]any `json:"extensions"`
	Locations  []struct {
		Line   int `json:"line"`
		Column int `json:"column"`
	} `json:"locations"`
	Path []any `json:"path,omitempty"`
}

// RequestInfo is the request snapshot attached to errors in debug mode.
type RequestInfo struct {
	Headers http.Header
	Body    string
}

// ResponseInfo is the response snapshot attached to errors in debug mode.
type ResponseInfo struct {
	Headers http.Header
	Body    string
}

// InternalExtensions is the typed view of extensions["internal"].
type InternalExtensions struct {
	Request  *RequestInfo
	Response *ResponseInfo
	Error    error
}

// Error implements error.
func (e Error) Error() string {
	if len(e.Path) > 0 {
		return fmt.Sprintf("Message: %s, Locations: %+v, Path: %v", e.Message, e.Locations, e.Path)
	}
	return fmt.Sprintf("Message: %s, Locations: %+v", e.Message, e.Locations)
}

// Error implements error.
func (e Errors) Error() string {
	b := strings.Builder{}
	for i, err := range e {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(err.Error())
	}
	return b.String()
}

// GetCode returns extensions["code"], or "" when absent.
func (e Error) GetCode() string {
	code, _ := e.Extensions["code"].(string)
	return code
}

// StatusCode returns the HTTP status recorded for a non-200 response, or 0.
func (e Error) StatusCode() int {
	status, _ := e.Extensions["status"].(int)
	return status
}

// HasCode reports whether any error in e carries code.
func (e Errors) HasCode(code string) bool {
	for _, err := range e {
		if err.GetCode() == code {
			return true
		}
	}
	return false
}

// StatusCode returns the first HTTP status recorded in e, or 0.
func (e Errors) StatusCode() int {
	for _, err := range e {
		if status := err.StatusCode(); status != 0 {
			return status
		}
	}
	return 0
}

// GetInternalExtensions returns the debug information attached in debug
// mode, or nil.
func (e Error) GetInternalExtensions() *InternalExtensions {
	internal, ok := e.Extensions["internal"].(map[string]any)
	if !ok {
		return nil
	}

	ext := &InternalExtensions{}
	if req, ok := internal["request"].(map[string]any); ok {
		ext.Request = &RequestInfo{}
		ext.Request.Headers, _ = req["headers"].(http.Header)
		ext.Request.Body, _ = req["body"].(string)
	}
	if resp, ok := internal["response"].(map[string]any); ok {
		ext.Response = &ResponseInfo{}
		ext.Response.Headers, _ = resp["headers"].(http.Header)
		ext.Response.Body, _ = resp["body"].(string)
	}
	if err, ok := internal["error"].(error); ok {
		ext.Error = err
	}
	return ext
}

func (e Error) getInternalExtension() map[string]any {
	if ex, ok := e.Extensions["internal"].(map[string]any); ok {
		return ex
	}
	return make(map[string]any)
}

// newError wraps err as an Error carrying code.
func newError(code string, err error) Error {
	return Error{
		Message: err.Error(),
		Extensions: map[string]any{
			"code": code,
		},
	}
}

// newStatusError is newError for a non-200 HTTP response.
func newStatusError(status int, err error) Error {
	e := newError(ErrRequestError, err)
	e.Extensions["status"] = status
	return e
}

func newSimpleErrors(code string, err error) Errors {
	return Errors{newError(code, err)}
}

// withDebugInfo stores headers and the body read from bodyReader under
// extensions["internal"][infoType].
func (e Error) withDebugInfo(
	infoType string,
	headers http.Header,
	bodyReader io.Reader,
) Error {
	internal := e.getInternalExtension()
	body, err := io.ReadAll(bodyReader)
	if err != nil {
		internal["error"] = err
	} else {
		internal[infoType] = map[string]any{
			"headers": headers,
			"body":    string(body),
		}
	}

	if e.Extensions == nil {
		e.Extensions = make(map[string]any)
	}
	e.Extensions["internal"] = internal
	return e
}

func (e Error) withRequest(req *http.Request, bodyReader io.Reader) Error {
	return e.withDebugInfo("request", req.Header, bodyReader)
}

func (e Error) withResponse(res *http.Response, bodyReader io.Reader) Error {
	return e.withDebugInfo("response", res.Header, bodyReader)
}
