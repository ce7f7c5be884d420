// Package client は加入者データAPIのHTTPクライアントを提供する。
// 運用ツールや疎通確認からの利用を想定する。
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultTimeout はAPI呼び出しの既定タイムアウト。
const DefaultTimeout = 5 * time.Second

// Client は加入者データAPIクライアントの実装。
type Client struct {
	httpClient *resty.Client
	baseURL    string
}

// New は新しいClientを生成する。
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	httpClient := resty.New().SetTimeout(timeout)

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// DigestResponse はDigest認証ベクターの簡易応答を表す。
type DigestResponse struct {
	DigestHA1 string `json:"digest_HA1"`
}

// ProblemDetail はRFC 7807エラーレスポンスを表す。
type ProblemDetail struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

// APIError はHTTP APIエラーを表す。
type APIError struct {
	StatusCode int
	Message    string
	Details    *ProblemDetail
}

func (e *APIError) Error() string {
	if e.Details != nil {
		return fmt.Sprintf("api error: %d %s - %s", e.StatusCode, e.Details.Title, e.Details.Detail)
	}
	return fmt.Sprintf("api error: %d %s", e.StatusCode, e.Message)
}

// IsNotFound は加入者未登録エラーかどうかを判定する。
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == 404
}

// Ping は疎通を確認する。
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.httpClient.R().SetContext(ctx).Get(c.baseURL + "/ping")
	if err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	if resp.StatusCode() != 200 {
		return c.apiError(resp)
	}
	return nil
}

// Digest は秘密識別子のDigest認証ベクターを取得する。
func (c *Client) Digest(ctx context.Context, impi, impu string) (*DigestResponse, error) {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("public_id", impu).
		Get(fmt.Sprintf("%s/impi/%s/digest", c.baseURL, impi))
	if err != nil {
		return nil, fmt.Errorf("get digest: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, c.apiError(resp)
	}

	var out DigestResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("decode digest response: %w", err)
	}
	return &out, nil
}

// RegData は公開識別子の登録データ文書を取得する。
func (c *Client) RegData(ctx context.Context, impu, impi string) (string, error) {
	req := c.httpClient.R().SetContext(ctx)
	if impi != "" {
		req.SetQueryParam("private_id", impi)
	}
	resp, err := req.Get(fmt.Sprintf("%s/impu/%s/reg-data", c.baseURL, impu))
	if err != nil {
		return "", fmt.Errorf("get reg-data: %w", err)
	}
	if resp.StatusCode() != 200 {
		return "", c.apiError(resp)
	}
	return string(resp.Body()), nil
}

// PutRegData は登録状態の遷移を要求し、登録データ文書を返す。
func (c *Client) PutRegData(ctx context.Context, impu, impi, reqtype string) (string, error) {
	req := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"reqtype": reqtype})
	if impi != "" {
		req.SetQueryParam("private_id", impi)
	}
	resp, err := req.Put(fmt.Sprintf("%s/impu/%s/reg-data", c.baseURL, impu))
	if err != nil {
		return "", fmt.Errorf("put reg-data: %w", err)
	}
	if resp.StatusCode() != 200 {
		return "", c.apiError(resp)
	}
	return string(resp.Body()), nil
}

// apiError はエラーレスポンスをAPIErrorに変換する。
func (c *Client) apiError(resp *resty.Response) *APIError {
	var details ProblemDetail
	if err := json.Unmarshal(resp.Body(), &details); err == nil && details.Title != "" {
		return &APIError{
			StatusCode: resp.StatusCode(),
			Message:    details.Title,
			Details:    &details,
		}
	}
	return &APIError{
		StatusCode: resp.StatusCode(),
		Message:    string(resp.Body()),
	}
}
