package petstore

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gogama/httpx"
	"github.com/gogama/httpx/request"
	"github.com/gogama/httpx/retry"
	"github.com/gogama/httpx/timeout"
)

// APIKeyHeader is sent with every call that changes data.
const APIKeyHeader = "api_key"

// DefaultRequestTimeout limits a single HTTP attempt.
const DefaultRequestTimeout = 30 * time.Second

// Logger receives a line for each request attempt and its outcome.
type Logger interface {
	Printf(message string, args ...interface{})
}

// ClientOptions configures NewClient.
type ClientOptions struct {
	BaseURL string
	APIKey  string

	// RequestTimeout limits each attempt; DefaultRequestTimeout if zero.
	RequestTimeout time.Duration

	// Retries is the number of times an attempt that failed at the network level is retried.
	// Responses are never retried, whatever their status code.
	Retries int

	// HTTPDoer defaults to http.DefaultClient.
	HTTPDoer httpx.HTTPDoer

	Logger Logger
}

// Client calls the pet endpoints of the API.
type Client struct {
	options ClientOptions
	http    *httpx.Client
}

func NewClient(o ClientOptions) *Client {
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = DefaultRequestTimeout
	}
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	handlers := &httpx.HandlerGroup{}
	if o.Logger != nil {
		logger := o.Logger
		handlers.PushBack(httpx.BeforeAttempt, httpx.HandlerFunc(func(_ httpx.Event, e *request.Execution) {
			logger.Printf("%s %s (attempt %d)", e.Request.Method, e.Request.URL, e.Attempt+1)
		}))
		handlers.PushBack(httpx.AfterAttempt, httpx.HandlerFunc(func(_ httpx.Event, e *request.Execution) {
			if e.Err != nil {
				logger.Printf("  => error: %s", e.Err)
				return
			}
			logger.Printf("  => %s %s", StatusText(e.StatusCode()), truncate(e.Body))
		}))
	}
	return &Client{
		options: o,
		http: &httpx.Client{
			HTTPDoer:      o.HTTPDoer,
			RetryPolicy:   retry.NewPolicy(retry.Times(o.Retries).And(retry.TransientErr), retry.NewFixedWaiter(time.Second)),
			TimeoutPolicy: timeout.Fixed(o.RequestTimeout),
			Handlers:      handlers,
		},
	}
}

// WithLogger returns a Client with the same settings that logs to l instead.
func (c *Client) WithLogger(l Logger) *Client {
	o := c.options
	o.Logger = l
	return NewClient(o)
}

func (c *Client) BaseURL() string {
	return c.options.BaseURL
}

// CreatePet sends POST /pet.
func (c *Client) CreatePet(p Pet) (*Response, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return c.CreateRaw(string(body))
}

// CreateRaw sends POST /pet with an arbitrary body, for testing how the API handles bad input.
func (c *Client) CreateRaw(body string) (*Response, error) {
	return c.do("POST", "/pet", body, true)
}

// GetPet sends GET /pet/{id}.
func (c *Client) GetPet(id int64) (*Response, error) {
	return c.GetPetByRawID(strconv.FormatInt(id, 10))
}

// GetPetByRawID is GetPet with an ID that does not have to be a number.
func (c *Client) GetPetByRawID(id string) (*Response, error) {
	return c.do("GET", "/pet/"+url.PathEscape(id), "", false)
}

// UpdatePet sends PUT /pet.
func (c *Client) UpdatePet(p Pet) (*Response, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return c.UpdateRaw(string(body))
}

// UpdateRaw sends PUT /pet with an arbitrary body.
func (c *Client) UpdateRaw(body string) (*Response, error) {
	return c.do("PUT", "/pet", body, true)
}

// DeletePet sends DELETE /pet/{id}.
func (c *Client) DeletePet(id int64) (*Response, error) {
	return c.DeletePetByRawID(strconv.FormatInt(id, 10))
}

func (c *Client) DeletePetByRawID(id string) (*Response, error) {
	return c.do("DELETE", "/pet/"+url.PathEscape(id), "", true)
}

// FindByStatus sends GET /pet/findByStatus. The status is not checked, so that invalid values can
// be tested.
func (c *Client) FindByStatus(status Status) (*Response, error) {
	return c.do("GET", "/pet/findByStatus?status="+url.QueryEscape(string(status)), "", false)
}

func (c *Client) do(method, path, body string, mutating bool) (*Response, error) {
	var planBody interface{}
	if body != "" {
		planBody = body
	}
	plan, err := request.NewPlan(method, c.options.BaseURL+path, planBody)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	plan.Header.Set("Accept", "application/json")
	if body != "" {
		plan.Header.Set("Content-Type", "application/json")
	}
	if mutating && c.options.APIKey != "" {
		plan.Header.Set(APIKeyHeader, c.options.APIKey)
	}
	e, err := c.http.Do(plan)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return &Response{
		StatusCode: e.StatusCode(),
		Header:     e.Header(),
		Body:       e.Body,
	}, nil
}
