package unfurl

import (
	"Ripple/internal/api/config"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ogPage = `<html><head>
<title>Fallback title</title>
<meta property="og:title" content="Ripple launch">
<meta property="og:description" content="Posts, likes and reposts">
<meta property="og:image" content="/static/cover.png">
</head><body></body></html>`

func TestParse(t *testing.T) {
	base, _ := url.Parse("https://example.com/blog/post")

	t.Run("open graph", func(t *testing.T) {
		p, err := Parse(ogPage, base)
		require.NoError(t, err)
		assert.Equal(t, "Ripple launch", p.Title)
		assert.Equal(t, "Posts, likes and reposts", p.Description)
		assert.Equal(t, "https://example.com/static/cover.png", p.Image)
		assert.Equal(t, "https://example.com/blog/post", p.URL)
	})

	t.Run("fallbacks", func(t *testing.T) {
		html := `<html><head><title> Plain page </title><meta name="description" content="desc"></head></html>`
		p, err := Parse(html, base)
		require.NoError(t, err)
		assert.Equal(t, "Plain page", p.Title)
		assert.Equal(t, "desc", p.Description)
		assert.Empty(t, p.Image)
	})

	t.Run("article excerpt", func(t *testing.T) {
		html := `<html><head><title>Notes</title></head><body><article><p>` +
			strings.Repeat("Ripple keeps every post in memory and pages through the feed. ", 8) +
			`</p></article></body></html>`
		p, err := Parse(html, base)
		require.NoError(t, err)
		assert.Equal(t, "Notes", p.Title)
		assert.Contains(t, p.Description, "Ripple keeps every post in memory")
		assert.LessOrEqual(t, len([]rune(p.Description)), maxDescriptionRunes+3)
	})

	t.Run("canonical url", func(t *testing.T) {
		html := `<meta property="og:url" content="https://example.com/canonical">`
		p, err := Parse(html, base)
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/canonical", p.URL)
	})
}

func TestClient_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/page":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(ogPage))
		case "/json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{}`))
		case "/slow":
			time.Sleep(300 * time.Millisecond)
			_, _ = w.Write([]byte(ogPage))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := NewClient(config.UnfurlConfig{TimeoutMs: 100})
	ctx := context.Background()

	p, err := client.Fetch(ctx, srv.URL+"/page")
	require.NoError(t, err)
	assert.Equal(t, "Ripple launch", p.Title)
	assert.Equal(t, srv.URL+"/static/cover.png", p.Image)

	_, err = client.Fetch(ctx, srv.URL+"/json")
	assert.ErrorIs(t, err, ErrNotHTML)

	_, err = client.Fetch(ctx, srv.URL+"/missing")
	assert.Error(t, err)

	_, err = client.Fetch(ctx, srv.URL+"/slow")
	assert.Error(t, err)

	_, err = client.Fetch(ctx, "ftp://example.com/file")
	assert.ErrorIs(t, err, ErrUnsupportedURL)
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "a b c", excerpt("  a\n b\t c ", 10))
	assert.Equal(t, "一二...", excerpt("一二三四", 2))
}
