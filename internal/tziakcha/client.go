package tziakcha

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "sudooom.gbfan/internal/errors"
)

const (
	contentType = "text/plain;charset=UTF-8"
	userAgent   = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/139.0.0.0 Safari/537.36"
)

// HistoryGame 历史列表中的一场对局
type HistoryGame struct {
	ID    string `json:"id"`
	Title string `json:"title"`

	// 其余字段原样保留, 写回 record_lists.json
	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON 保留原始 JSON
func (g *HistoryGame) UnmarshalJSON(data []byte) error {
	type plain HistoryGame
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*g = HistoryGame(p)
	g.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON 优先输出原始 JSON
func (g HistoryGame) MarshalJSON() ([]byte, error) {
	if len(g.Raw) > 0 {
		return g.Raw, nil
	}
	type plain HistoryGame
	return json.Marshal(plain(g))
}

// Client 牌谱站点客户端
type Client struct {
	baseURL string
	cookie  string
	http    *http.Client
	logger  *slog.Logger
}

// Option 客户端选项
type Option func(*Client)

// WithCookie 历史记录接口需要登录 Cookie
func WithCookie(cookie string) Option {
	return func(c *Client) {
		c.cookie = cookie
	}
}

// WithHTTPClient 替换底层 http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithLogger 设置日志
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient 创建客户端, timeout 为单次请求超时
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RecordURL 小局回放页面
func (c *Client) RecordURL(id string) string {
	return c.baseURL + "/record/?id=" + url.QueryEscape(id)
}

// GameURL 全庄页面
func (c *Client) GameURL(id string) string {
	return c.baseURL + "/game/?id=" + url.QueryEscape(id)
}

// FetchRecord 下载小局牌谱, 返回接口原始响应
func (c *Client) FetchRecord(ctx context.Context, id string) ([]byte, error) {
	return c.post(ctx, "/_qry/record/", "id="+id, false)
}

// History 拉取前 pages 页历史对局; 单页失败记日志后跳过
func (c *Client) History(ctx context.Context, pages int) ([]HistoryGame, error) {
	if c.cookie == "" {
		return nil, apperrors.ErrCookieMissing
	}

	var games []HistoryGame
	for page := 1; page <= pages; page++ {
		if err := ctx.Err(); err != nil {
			return games, err
		}
		body := ""
		if page > 1 {
			body = "p=" + strconv.Itoa(page-1)
		}
		data, err := c.post(ctx, "/_qry/history/", body, true)
		if err != nil {
			c.logger.Warn("Fetch history page failed", "page", page, "error", err)
			continue
		}
		var resp struct {
			Games []HistoryGame `json:"games"`
		}
		if err := json.Unmarshal(data, &resp); err != nil {
			c.logger.Warn("Decode history page failed", "page", page, "error", err)
			continue
		}
		games = append(games, resp.Games...)
	}
	return games, nil
}

// GameRecords 全庄内各小局的编号, 按对局顺序
func (c *Client) GameRecords(ctx context.Context, gameID string) ([]string, error) {
	data, err := c.post(ctx, "/_qry/game/?id="+url.QueryEscape(gameID), "", false)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Records []struct {
			ID string `json:"i"`
		} `json:"records"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, apperrors.ErrRemoteRequest.Wrap(err)
	}
	ids := make([]string, 0, len(resp.Records))
	for _, r := range resp.Records {
		ids = append(ids, r.ID)
	}
	return ids, nil
}

func (c *Client) post(ctx context.Context, path, body string, withCookie bool) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBufferString(body))
	if err != nil {
		return nil, apperrors.ErrRemoteRequest.Wrap(err)
	}
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("User-Agent", userAgent)
	if withCookie {
		req.Header.Set("Cookie", c.cookie)
		req.Header.Set("Referer", c.baseURL+"/history/")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperrors.ErrRemoteRequest.Wrap(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.ErrRemoteRequest.Wrap(err)
	}
	c.logger.Debug("Remote request",
		"path", path,
		"status", resp.StatusCode,
		"bytes", len(data),
		"latency", time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.ErrRemoteStatus.Wrap(fmt.Errorf("%s: %s", path, resp.Status))
	}
	return data, nil
}
