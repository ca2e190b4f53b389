package unfurl

import (
	"Ripple/internal/api/config"
	"Ripple/internal/model"
	"Ripple/internal/pkg/logger"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/go-shiori/go-readability"
)

const maxDescriptionRunes = 200

var (
	ErrUnsupportedURL = errors.New("unsupported url")
	ErrNotHTML        = errors.New("response is not html")
)

// Fetcher 抓取链接预览
type Fetcher interface {
	Fetch(ctx context.Context, link string) (*model.LinkPreview, error)
}

type Client struct {
	http *resty.Client
}

func NewClient(cfg config.UnfurlConfig) *Client {
	timeout := time.Duration(cfg.TimeoutMs) * time.Millisecond
	if timeout <= 0 {
		timeout = 1500 * time.Millisecond
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = "RippleBot/1.0"
	}

	client := resty.New().
		SetTransport(logger.NewHTTPTransport(nil)).
		SetTimeout(timeout).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(5)).
		SetHeader("User-Agent", ua).
		SetHeader("Accept", "text/html,application/xhtml+xml")

	return &Client{http: client}
}

// Fetch 读取页面的 Open Graph 信息，缺失时回退到 <title> 与 description
func (s *Client) Fetch(ctx context.Context, link string) (*model.LinkPreview, error) {
	target, err := url.Parse(strings.TrimSpace(link))
	if err != nil || (target.Scheme != "http" && target.Scheme != "https") || target.Host == "" {
		return nil, ErrUnsupportedURL
	}

	resp, err := s.http.R().SetContext(ctx).Get(target.String())
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("unfurl %s: status %d", target.Host, resp.StatusCode())
	}
	if ct := resp.Header().Get("Content-Type"); ct != "" && !strings.Contains(ct, "html") {
		return nil, ErrNotHTML
	}

	base := target
	if resp.RawResponse != nil && resp.RawResponse.Request != nil {
		base = resp.RawResponse.Request.URL
	}
	return Parse(resp.String(), base)
}

// Parse 从 HTML 中提取链接预览，base 用于解析相对地址
func Parse(html string, base *url.URL) (*model.LinkPreview, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	meta := func(keys ...string) string {
		for _, key := range keys {
			sel := doc.Find(fmt.Sprintf(`meta[property="%s"], meta[name="%s"]`, key, key)).First()
			if v, ok := sel.Attr("content"); ok && strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v)
			}
		}
		return ""
	}

	preview := &model.LinkPreview{
		URL:         base.String(),
		Title:       meta("og:title", "twitter:title"),
		Description: meta("og:description", "twitter:description", "description"),
		Image:       resolve(base, meta("og:image", "og:image:url", "twitter:image")),
	}
	if preview.Title == "" {
		preview.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if preview.Title == "" || preview.Description == "" {
		fillFromArticle(preview, html, base)
	}
	if canonical := resolve(base, meta("og:url")); canonical != "" {
		preview.URL = canonical
	}
	return preview, nil
}

func resolve(base *url.URL, ref string) string {
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	return base.ResolveReference(u).String()
}

// fillFromArticle 没有 meta 信息的页面用正文摘要补全
func fillFromArticle(preview *model.LinkPreview, html string, base *url.URL) {
	article, err := readability.FromReader(strings.NewReader(html), base)
	if err != nil {
		return
	}
	if preview.Title == "" {
		preview.Title = strings.TrimSpace(article.Title)
	}
	if preview.Description == "" {
		preview.Description = excerpt(article.TextContent, maxDescriptionRunes)
	}
}

func excerpt(text string, n int) string {
	runes := []rune(strings.Join(strings.Fields(text), " "))
	if len(runes) <= n {
		return string(runes)
	}
	return string(runes[:n]) + "..."
}
