package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/issafronov/leadredirect/internal/app/config"
	"github.com/issafronov/leadredirect/internal/app/redirects"
	"github.com/issafronov/leadredirect/internal/app/server"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	conf := &config.Config{
		ServerAddress: "127.0.0.1:0",
		SinkKind:      config.SinkFile,
		ClickLogPath:  filepath.Join(t.TempDir(), "clicks.jsonl"),
		SinkQueueSize: 16,
	}
	app, err := server.New(context.Background(), conf)
	require.NoError(t, err)
	t.Cleanup(func() { app.Close(context.Background()) })

	srv := httptest.NewServer(app.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func newClient() *resty.Client {
	return resty.New().SetRedirectPolicy(resty.RedirectPolicyFunc(func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}))
}

func TestRedirectHandle(t *testing.T) {
	srv := newTestServer(t)

	type want struct {
		code     int
		location string
		body     string
	}

	tests := []struct {
		name string
		path string
		want want
	}{
		{
			name: "Known lead",
			path: "/api/go/valley",
			want: want{
				code:     http.StatusFound,
				location: "https://valley-plastic-surgery-preview.vercel.app",
			},
		},
		{
			name: "Unknown lead",
			path: "/api/go/nonexistent",
			want: want{
				code: http.StatusNotFound,
				body: "Not found",
			},
		},
		{
			name: "Capitalized lead",
			path: "/api/go/Valley",
			want: want{
				code: http.StatusNotFound,
				body: "Not found",
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			res, err := newClient().R().SetHeader("User-Agent", "TestAgent/1.0").Get(srv.URL + test.path)
			require.NoError(t, err, "error making HTTP request")

			assert.Equal(t, test.want.code, res.StatusCode())
			assert.Equal(t, test.want.location, res.Header().Get("Location"))
			if test.want.body != "" {
				assert.Equal(t, test.want.body, string(res.Body()))
			}
		})
	}
}

func TestRedirectHandle_AllDefaultLeads(t *testing.T) {
	srv := newTestServer(t)
	routes := redirects.Default()

	var wg sync.WaitGroup
	for _, route := range routes.Routes() {
		wg.Add(1)
		go func(lead, destination string) {
			defer wg.Done()

			res, err := newClient().R().Get(srv.URL + "/api/go/" + lead)
			if !assert.NoError(t, err) {
				return
			}
			assert.Equal(t, http.StatusFound, res.StatusCode())
			assert.Equal(t, destination, res.Header().Get("Location"))
		}(route.Lead, route.Destination)
	}
	wg.Wait()
}
