package opendart

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"
)

// maxBodyBytes は1レスポンスの上限です（corpCode.zip は数MB）。
const maxBodyBytes = 64 << 20

var (
	// ErrNotConfigured はAPIキーが未設定であることを示します。
	ErrNotConfigured = errors.New("opendart: api key is not configured")

	// ErrResponseTooLarge はレスポンスが上限を超えたことを示します。
	ErrResponseTooLarge = errors.New("opendart: response too large")
)

// Client は OpenDART API の呼び出しをまとめます。
// すべてのリクエストはレート制限を通り、一時的な失敗は指数バックオフで再試行します。
type Client struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter
	maxBody int64
	// newBackOff は再試行間隔の生成器です。テストで差し替えます。
	newBackOff func() backoff.BackOff
}

// NewClient は新しい Client を作成します。
func NewClient(cfg Config, httpClient *http.Client) *Client {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		cfg:     cfg,
		http:    httpClient,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		maxBody: maxBodyBytes,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 500 * time.Millisecond
			b.MaxInterval = 5 * time.Second
			return b
		},
	}
}

// Configured はAPIキーが設定されているかどうかを返します。
func (c *Client) Configured() bool {
	return c.cfg.Configured()
}

type response struct {
	body        []byte
	contentType string
}

// get は endpoint を呼び出してボディを返します。
// ネットワークエラーと5xxは再試行し、4xxは即座に失敗します。
// check はボディ内のステータスを検証し、再試行可能な StatusError 以外は即座に失敗します。
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, check func(*response) error) (*response, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("crtfc_key", c.cfg.APIKey)
	u := fmt.Sprintf("%s/api/%s?%s", strings.TrimRight(c.cfg.BaseURL, "/"), endpoint, params.Encode())

	var out *response
	attempt := 0
	op := func() error {
		attempt++
		if err := c.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}
		resp, err := c.do(ctx, u)
		if err == nil && check != nil {
			err = check(resp)
			var se *StatusError
			if errors.As(err, &se) && !se.retryable() {
				return backoff.Permanent(err)
			}
		}
		if err != nil {
			slog.Warn("opendart request failed", "endpoint", endpoint, "attempt", attempt, "error", err)
			return err
		}
		out = resp
		return nil
	}

	b := backoff.WithContext(backoff.WithMaxRetries(c.newBackOff(), c.cfg.MaxRetries), ctx)
	if err := backoff.Retry(op, b); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, u string) (*response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("create request: %w", err))
	}

	res, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(ctx.Err())
		}
		return nil, fmt.Errorf("opendart request: %w", err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 500 {
		return nil, fmt.Errorf("opendart http %d", res.StatusCode)
	}
	if res.StatusCode >= 400 {
		return nil, backoff.Permanent(fmt.Errorf("opendart http %d", res.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, c.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > c.maxBody {
		return nil, backoff.Permanent(fmt.Errorf("%w: over %d bytes", ErrResponseTooLarge, c.maxBody))
	}
	return &response{body: body, contentType: res.Header.Get("Content-Type")}, nil
}
