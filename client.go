package mcd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/llehouerou/go-mcd/config"
	"github.com/llehouerou/go-mcd/graphql"
)

// Request headers set on every call.
const (
	HeaderID      = "x-mcd-id"
	HeaderToken   = "x-mcd-token"
	HeaderTraceID = "x-mcd-trace-id"
)

const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "go-mcd"
	// DefaultMaxPages bounds the pages read by the All* helpers.
	DefaultMaxPages = 1000
)

var (
	// ErrMissingCredentials is returned by NewClient when no API key id
	// or token could be resolved.
	ErrMissingCredentials = errors.New("missing Monte Carlo API credentials")
	// ErrNotFound is returned when a lookup by id returns null.
	ErrNotFound = errors.New("not found")
	// ErrUnsuccessful is returned when a mutation reports it did nothing.
	ErrUnsuccessful = errors.New("operation reported no success")
)

// Client calls the Monte Carlo GraphQL API with the credentials of one
// profile.
type Client struct {
	gql       *graphql.Client
	profile   config.Profile
	userAgent string
	maxPages  int
	logger    *zap.Logger
	newTrace  func() string
}

type settings struct {
	resolve    config.Options
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
	debug      bool
	maxPages   int
	logger     *zap.Logger
}

// Option configures NewClient.
type Option func(*settings)

// WithProfile selects a profile of the profiles file.
func WithProfile(name string) Option {
	return func(s *settings) { s.resolve.Profile = name }
}

// WithConfigPath sets the directory holding profiles.ini.
func WithConfigPath(dir string) Option {
	return func(s *settings) { s.resolve.ConfigPath = dir }
}

// WithCredentials sets the API key id and token, overriding the
// environment and the profiles file.
func WithCredentials(id, token string) Option {
	return func(s *settings) {
		s.resolve.ID = id
		s.resolve.Token = token
	}
}

// WithEndpoint sets the GraphQL endpoint URL.
func WithEndpoint(url string) Option {
	return func(s *settings) { s.resolve.Endpoint = url }
}

// WithHTTPClient sets the HTTP client. Its timeout is left alone unless
// WithTimeout is given too.
func WithHTTPClient(c *http.Client) Option {
	return func(s *settings) { s.httpClient = c }
}

// WithLogger sets the logger requests are logged to at debug level. The
// default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// WithTimeout bounds each HTTP request.
func WithTimeout(d time.Duration) Option {
	return func(s *settings) { s.timeout = d }
}

// WithUserAgent sets the User-Agent header, DefaultUserAgent by default.
func WithUserAgent(ua string) Option {
	return func(s *settings) { s.userAgent = ua }
}

// WithDebug attaches request and response bodies to returned errors. It
// defaults to $MCD_VERBOSE_ERRORS.
func WithDebug(debug bool) Option {
	return func(s *settings) { s.debug = debug }
}

// WithMaxPages bounds the pages read by the All* helpers.
func WithMaxPages(n int) Option {
	return func(s *settings) { s.maxPages = n }
}

// NewClient resolves the credentials and returns a client. It fails with
// ErrMissingCredentials when the key id or token is unknown.
func NewClient(opts ...Option) (*Client, error) {
	s := settings{
		userAgent: DefaultUserAgent,
		debug:     config.VerboseErrors(),
		maxPages:  DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}

	profile, err := config.Resolve(s.resolve)
	if err != nil {
		return nil, err
	}
	if !profile.HasCredentials() {
		return nil, fmt.Errorf("%w (profile %q)", ErrMissingCredentials, profile.Name)
	}

	httpClient := s.httpClient
	switch {
	case httpClient == nil:
		timeout := s.timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	case s.timeout != 0:
		copied := *httpClient
		copied.Timeout = s.timeout
		httpClient = &copied
	}

	c := &Client{
		profile:   profile,
		userAgent: s.userAgent,
		maxPages:  s.maxPages,
		logger:    s.logger,
		newTrace:  uuid.NewString,
	}
	c.gql = graphql.NewClient(profile.Endpoint, httpClient).
		WithRequestModifier(c.authorize).
		WithDebug(s.debug).
		WithLogger(s.logger)

	s.logger.Debug("monte carlo client ready",
		zap.String("profile", profile.Name),
		zap.String("endpoint", profile.Endpoint),
		zap.String("id_source", profile.Sources["id"]),
	)
	return c, nil
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set(HeaderID, c.profile.ID)
	req.Header.Set(HeaderToken, c.profile.Token)
	req.Header.Set(HeaderTraceID, c.newTrace())
	req.Header.Set("User-Agent", c.userAgent)
}

// Endpoint returns the GraphQL endpoint the client calls.
func (c *Client) Endpoint() string {
	return c.profile.Endpoint
}

// ProfileName returns the name of the resolved profile.
func (c *Client) ProfileName() string {
	return c.profile.Name
}

// GraphQL returns the underlying authenticated client.
func (c *Client) GraphQL() *graphql.Client {
	return c.gql
}

// Query runs the query described by q, a pointer to a struct of schema
// types. See package graphql.
func (c *Client) Query(ctx context.Context, q any, variables any, options ...graphql.Option) error {
	return c.gql.Query(ctx, q, variables, options...)
}

// Mutate runs the mutation described by m.
func (c *Client) Mutate(ctx context.Context, m any, variables any, options ...graphql.Option) error {
	return c.gql.Mutate(ctx, m, variables, options...)
}

// Exec runs a document written by hand and decodes the data into v.
func (c *Client) Exec(ctx context.Context, document string, v any, variables map[string]any) error {
	return c.gql.Exec(ctx, document, v, variables)
}

// ExecRaw runs a document written by hand and returns the raw data.
func (c *Client) ExecRaw(ctx context.Context, document string, variables map[string]any) ([]byte, error) {
	return c.gql.ExecRaw(ctx, document, variables)
}

func notFound(what string, key any) error {
	return fmt.Errorf("%w: %s %v", ErrNotFound, what, key)
}
