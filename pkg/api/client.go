// Package api provides a client for interacting with the Loopia API
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/kolo/xmlrpc"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	// DefaultEndpoint is the Loopia XML-RPC endpoint
	DefaultEndpoint = "https://api.loopia.se/RPCSERV"
	// CallsPerHour is the Loopia API quota per account
	CallsPerHour = 60
)

var (
	// ErrRateLimited is returned when a call would exceed the hourly quota
	ErrRateLimited = errors.New("API call limit of 60 calls per hour reached")
	// ErrStopped is returned after the API answered 401 or 429
	ErrStopped = errors.New("API calls stopped after 401 Unauthorized or 429 Too Many Requests")
)

// Status replies of checkDomainIsFree
const (
	statusFree     = "OK"
	statusOccupied = "DOMAIN_OCCUPIED"
)

// Client wraps an xmlrpc.Client and automatically inserts
// username + password as the first two parameters of every call.
type Client struct {
	username string
	password string
	rpc      *xmlrpc.Client
	dryRun   bool // if true, no RPC is executed
	limiter  *rate.Limiter

	mu      sync.Mutex
	stopped string // error code that stopped the client, if any
}

// Option configures the Client.
type Option func(*clientOptions)

type clientOptions struct {
	endpoint  string
	transport http.RoundTripper
	limiter   *rate.Limiter
}

// WithEndpoint sets the XML-RPC endpoint.
func WithEndpoint(url string) Option {
	return func(o *clientOptions) { o.endpoint = url }
}

// WithTransport sets the HTTP transport used for RPC calls.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *clientOptions) { o.transport = rt }
}

// WithLimiter replaces the hourly quota limiter.
func WithLimiter(l *rate.Limiter) Option {
	return func(o *clientOptions) { o.limiter = l }
}

// NewClient creates a new Loopia API client
func NewClient(username, password string, dry bool, opts ...Option) (*Client, error) {
	o := clientOptions{
		endpoint: DefaultEndpoint,
		limiter:  rate.NewLimiter(rate.Every(time.Hour/CallsPerHour), CallsPerHour),
	}
	for _, opt := range opts {
		opt(&o)
	}

	c, err := xmlrpc.NewClient(o.endpoint, o.transport)
	if err != nil {
		return nil, fmt.Errorf("failed to create xmlrpc client: %w", err)
	}
	return &Client{
		username: username,
		password: password,
		rpc:      c,
		dryRun:   dry,
		limiter:  o.limiter,
	}, nil
}

// Call invokes an XML‑RPC method with authentication prepended.
func (c *Client) Call(ctx context.Context, method string, params ...interface{}) (interface{}, error) {
	all := append([]interface{}{c.username, c.password}, params...)

	reqLogger := log.With().
		Str("method", method).
		Str("operation", "api_call").
		Logger()

	if c.dryRun {
		reqLogger.Info().
			Interface("params", params).
			Msg("[DRY-RUN] API call simulated")
		return statusFree, nil
	}

	c.mu.Lock()
	stopped := c.stopped
	c.mu.Unlock()
	if stopped != "" {
		reqLogger.Error().Str("error_code", stopped).Msg("Refusing API call after previous error")
		return nil, ErrStopped
	}

	if err := c.limiter.Wait(ctx); err != nil {
		reqLogger.Error().Err(err).Msg("API call limit reached")
		return nil, fmt.Errorf("%w: %v", ErrRateLimited, err)
	}

	reqLogger.Debug().
		Interface("params", params).
		Msg("Sending API request")

	start := time.Now()
	var reply interface{}
	err := c.rpc.Call(method, all, &reply)
	respLogger := reqLogger.With().Dur("duration_ms", time.Since(start)).Logger()

	if err != nil {
		respLogger.Error().
			Err(err).
			Msg("API call failed")

		if code := criticalStatus(err); code != "" {
			c.mu.Lock()
			c.stopped = code
			c.mu.Unlock()
			respLogger.Error().
				Str("error_code", code).
				Msg("Received critical error code, stopping further API calls")
		}
		return nil, err
	}

	respLogger.Debug().
		Interface("response", reply).
		Msg("API call successful")

	return reply, nil
}

// criticalStatus returns the HTTP status after which no further calls should be made
func criticalStatus(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "401"):
		return "401 Unauthorized"
	case strings.Contains(msg, "429"):
		return "429 Too Many Requests"
	}
	return ""
}

// CheckDomainIsFree reports whether domainName can be registered
func (c *Client) CheckDomainIsFree(ctx context.Context, domainName string) (bool, error) {
	resp, err := c.Call(ctx, "checkDomainIsFree", domainName)
	if err != nil {
		return false, err
	}

	status, ok := resp.(string)
	if !ok {
		log.Error().
			Str("domain", domainName).
			Interface("response", resp).
			Msg("Unexpected response format from checkDomainIsFree")
		return false, errors.New("unexpected response format from checkDomainIsFree")
	}

	switch strings.TrimSpace(status) {
	case statusFree:
		return true, nil
	case statusOccupied:
		return false, nil
	default:
		return false, fmt.Errorf("checkDomainIsFree %s: %s", domainName, status)
	}
}
