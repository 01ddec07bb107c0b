package stogieclient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"resty.dev/v3"
)

const (
	feedPath     = "/api/posts"
	likePath     = "/api/posts/{id}/like"
	commentsPath = "/api/posts/{id}/comments"
)

// APIError is returned for any non-2xx answer.
type APIError struct {
	Status  int
	Message string
	Code    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("stogie: %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("stogie: %d: %s", e.Status, e.Message)
}

type envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type errorBody struct {
	Message   string `json:"message"`
	ErrorCode string `json:"error_code"`
}

type ClientConfig struct {
	BaseURL           string
	Token             string
	TransportSettings *resty.TransportSettings
}

var DefaultTransportSettings = &resty.TransportSettings{
	DialerTimeout:         5 * time.Second,
	DialerKeepAlive:       30 * time.Second,
	IdleConnTimeout:       90 * time.Second,
	TLSHandshakeTimeout:   5 * time.Second,
	ExpectContinueTimeout: 1 * time.Second,
	ResponseHeaderTimeout: 10 * time.Second,
}

// Client talks to the Stogie HTTP API. It implements Backend.
type Client struct {
	client *resty.Client
}

func NewClient(cfg ClientConfig) *Client {
	ts := cfg.TransportSettings
	if ts == nil {
		ts = DefaultTransportSettings
	}
	c := resty.NewWithTransportSettings(ts).
		SetBaseURL(cfg.BaseURL).
		SetHeader("Accept", "application/json")
	if cfg.Token != "" {
		c.SetAuthToken(cfg.Token)
	}
	return &Client{client: c}
}

// SetToken swaps the bearer token, e.g. after a refresh.
func (c *Client) SetToken(token string) {
	c.client.SetAuthToken(token)
}

func (c *Client) Close() error {
	return c.client.Close()
}

func (c *Client) r(ctx context.Context) *resty.Request {
	return c.client.R().WithContext(ctx).SetError(&errorBody{})
}

func asAPIError(res *resty.Response) error {
	e := &APIError{Status: res.StatusCode(), Message: res.Status()}
	if body, ok := res.Error().(*errorBody); ok && body != nil {
		if body.Message != "" {
			e.Message = body.Message
		}
		e.Code = body.ErrorCode
	}
	return e
}

// Feed fetches one page (1-based) of the feed.
func (c *Client) Feed(ctx context.Context, filter string, page int) ([]FeedItem, error) {
	type feed struct {
		Posts []FeedItem `json:"posts"`
	}
	q := url.Values{}
	if filter != FilterAll {
		q.Set("filter", filter)
	}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}

	res, err := c.r(ctx).
		SetQueryParamsFromValues(q).
		SetResult(&envelope[feed]{}).
		Get(feedPath)
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, asAPIError(res)
	}
	posts := res.Result().(*envelope[feed]).Data.Posts
	if posts == nil {
		posts = []FeedItem{}
	}
	return posts, nil
}

func (c *Client) ToggleLike(ctx context.Context, postID uuid.UUID) (LikeResult, error) {
	res, err := c.r(ctx).
		SetPathParam("id", postID.String()).
		SetResult(&envelope[LikeResult]{}).
		Post(likePath)
	if err != nil {
		return LikeResult{}, err
	}
	if res.IsError() {
		return LikeResult{}, asAPIError(res)
	}
	return res.Result().(*envelope[LikeResult]).Data, nil
}

func (c *Client) Comments(ctx context.Context, postID uuid.UUID, page int) ([]Comment, error) {
	type comments struct {
		Comments []Comment `json:"comments"`
	}
	req := c.r(ctx).
		SetPathParam("id", postID.String()).
		SetResult(&envelope[comments]{})
	if page > 1 {
		req.SetQueryParam("page", strconv.Itoa(page))
	}
	res, err := req.Get(commentsPath)
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, asAPIError(res)
	}
	return res.Result().(*envelope[comments]).Data.Comments, nil
}

func (c *Client) AddComment(ctx context.Context, postID uuid.UUID, text string) (Comment, error) {
	type created struct {
		Comment Comment `json:"comment"`
	}
	res, err := c.r(ctx).
		SetPathParam("id", postID.String()).
		SetBody(map[string]string{"text": text}).
		SetResult(&envelope[created]{}).
		Post(commentsPath)
	if err != nil {
		return Comment{}, err
	}
	if res.IsError() {
		return Comment{}, asAPIError(res)
	}
	return res.Result().(*envelope[created]).Data.Comment, nil
}
