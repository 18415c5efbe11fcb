package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"shortbot.local/internal/app/shortener"
)

const longURL = "https://example.com/some/long/path?q=1"

// newTestClient 所有服务商都指向同一个 httptest 服务
func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	e := Endpoints{
		ClckRu:   srv.URL,
		DaGd:     srv.URL,
		OsdbLink: srv.URL + "/",
		IsGd:     srv.URL,
		VGd:      srv.URL,
		TinyURL:  srv.URL,
	}
	return NewClient(e, 2*time.Second, nil, zaptest.NewLogger(t))
}

func TestClient_PlainProviders(t *testing.T) {
	tests := []struct {
		name     string
		provider shortener.ProviderID
		path     string
		query    map[string]string
		body     string
		want     shortener.Result
	}{
		{
			name:     "clck.ru",
			provider: shortener.ClckRu,
			path:     "/--",
			query:    map[string]string{"url": longURL},
			body:     "https://clck.ru/3Abc\n",
			want:     shortener.Success{URL: "https://clck.ru/3Abc"},
		},
		{
			name:     "da.gd",
			provider: shortener.DaGd,
			path:     "/s",
			query:    map[string]string{"url": longURL},
			body:     "  https://da.gd/xyz  ",
			want:     shortener.Success{URL: "https://da.gd/xyz"},
		},
		{
			name:     "is.gd simple",
			provider: shortener.IsGd,
			path:     "/create.php",
			query:    map[string]string{"format": "simple", "url": longURL},
			body:     "https://is.gd/q1w2e3",
			want:     shortener.Success{URL: "https://is.gd/q1w2e3"},
		},
		{
			name:     "v.gd simple",
			provider: shortener.VGd,
			path:     "/create.php",
			query:    map[string]string{"format": "simple", "url": longURL},
			body:     "https://v.gd/q1w2e3",
			want:     shortener.Success{URL: "https://v.gd/q1w2e3"},
		},
		{
			name:     "tinyurl with scheme",
			provider: shortener.TinyURL,
			path:     "/api-create.php",
			query:    map[string]string{"url": longURL},
			body:     "https://tinyurl.com/2p8abc",
			want:     shortener.Success{URL: "https://tinyurl.com/2p8abc"},
		},
		{
			name:     "tinyurl without scheme",
			provider: shortener.TinyURL,
			path:     "/api-create.php",
			query:    map[string]string{"url": longURL},
			body:     "tinyurl.com/2p8abc",
			want:     shortener.Success{URL: "https://tinyurl.com/2p8abc"},
		},
		{
			name:     "empty body",
			provider: shortener.ClckRu,
			path:     "/--",
			query:    map[string]string{"url": longURL},
			body:     "   ",
			want:     shortener.NoResult{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, tt.path, r.URL.Path)
				for k, v := range tt.query {
					assert.Equal(t, v, r.URL.Query().Get(k), k)
				}
				_, _ = w.Write([]byte(tt.body))
			})

			got := c.Shorten(context.Background(), longURL, tt.provider, "")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_NonOKIsNoResult(t *testing.T) {
	for _, p := range shortener.Providers() {
		t.Run(string(p), func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "https://looks.like/a-link", http.StatusServiceUnavailable)
			})
			assert.Equal(t, shortener.NoResult{}, c.Shorten(context.Background(), longURL, p, ""))
		})
	}
}

func TestClient_Osdb(t *testing.T) {
	tests := []struct {
		name string
		html string
		want shortener.Result
	}{
		{
			name: "label match",
			html: `<html><a href="http://osdb.link/other">x</a><label id=surl>Your link: <b>http://osdb.link/abc123</b></label></html>`,
			want: shortener.Success{URL: "http://osdb.link/abc123"},
		},
		{
			name: "fallback match",
			html: `<div>Done! http://osdb.link/zz9</div>`,
			want: shortener.Success{URL: "http://osdb.link/zz9"},
		},
		{
			name: "no match",
			html: `<div>Something went wrong</div>`,
			want: shortener.NoResult{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/", r.URL.Path)
				assert.Contains(t, r.Header.Get("Content-Type"), "application/x-www-form-urlencoded")
				require.NoError(t, r.ParseForm())
				assert.Equal(t, longURL, r.PostForm.Get("url"))
				_, _ = w.Write([]byte(tt.html))
			})
			assert.Equal(t, tt.want, c.Shorten(context.Background(), longURL, shortener.OsdbLink, ""))
		})
	}
}

func TestClient_AliasJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
		want shortener.Result
	}{
		{
			name: "created",
			body: `{"shorturl":"https://is.gd/mysearch"}`,
			want: shortener.Success{URL: "https://is.gd/mysearch"},
		},
		{
			name: "alias taken",
			body: `{"errorcode":2,"errormessage":"The shortened URL you picked already exists, please choose another."}`,
			want: shortener.ProviderError{Code: 2, Message: "The shortened URL you picked already exists, please choose another."},
		},
		{
			name: "other error",
			body: `{"errorcode":1,"errormessage":"Please enter a valid URL to shorten"}`,
			want: shortener.ProviderError{Code: 1, Message: "Please enter a valid URL to shorten"},
		},
		{
			name: "unknown shape",
			body: `{"status":"ok"}`,
			want: shortener.NoResult{},
		},
		{
			name: "not json",
			body: `Error: something`,
			want: shortener.NoResult{},
		},
	}
	for _, p := range shortener.AliasProviders() {
		for _, tt := range tests {
			t.Run(string(p)+"/"+tt.name, func(t *testing.T) {
				c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
					q := r.URL.Query()
					assert.Equal(t, "/create.php", r.URL.Path)
					assert.Equal(t, "json", q.Get("format"))
					assert.Equal(t, longURL, q.Get("url"))
					assert.Equal(t, "mysearch", q.Get("shorturl"))
					w.Header().Set("Content-Type", "application/json")
					_, _ = w.Write([]byte(tt.body))
				})
				assert.Equal(t, tt.want, c.Shorten(context.Background(), longURL, p, "mysearch"))
			})
		}
	}
}

func TestClient_AliasOnUnsupportedProvider(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	got := c.Shorten(context.Background(), longURL, shortener.TinyURL, "mysearch")

	assert.Equal(t, shortener.NoResult{}, got)
	assert.False(t, called)
}

func TestClient_UnknownProvider(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	assert.Equal(t, shortener.NoResult{}, c.Shorten(context.Background(), longURL, shortener.ProviderID("bitly"), ""))
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	c := NewClient(Endpoints{DaGd: srv.URL}, 100*time.Millisecond, nil, zaptest.NewLogger(t))

	start := time.Now()
	got := c.Shorten(context.Background(), longURL, shortener.DaGd, "")

	assert.Equal(t, shortener.NoResult{}, got)
	assert.Less(t, time.Since(start), time.Second)
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	c := NewClient(Endpoints{ClckRu: addr}, time.Second, nil, zaptest.NewLogger(t))
	assert.Equal(t, shortener.NoResult{}, c.Shorten(context.Background(), longURL, shortener.ClckRu, ""))
}
