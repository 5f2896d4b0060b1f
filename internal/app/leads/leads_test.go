package leads

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractLeadID(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "root segment", path: "/valley", want: "valley"},
		{name: "edge route", path: "/api/go/valley", want: "valley"},
		{name: "trailing slash", path: "/api/go/valley/", want: "valley"},
		{name: "repeated slashes", path: "//law//", want: "law"},
		{name: "case preserved", path: "/Valley", want: "Valley"},
		{name: "no leading slash", path: "tampa", want: "tampa"},
		{name: "spaces kept", path: "/ law ", want: " law "},
		{name: "root", path: "/", want: ""},
		{name: "empty", path: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractLeadID(tt.path))
		})
	}
}

func TestClientIP(t *testing.T) {
	h := http.Header{}
	assert.Equal(t, UnknownIP, ClientIP(h))

	h.Set(ForwardedForHeader, "")
	assert.Equal(t, UnknownIP, ClientIP(h))

	h.Set(ForwardedForHeader, "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7, 10.0.0.1", ClientIP(h))
}

func TestUserAgent(t *testing.T) {
	h := http.Header{}
	assert.Nil(t, UserAgent(h))

	h.Set(UserAgentHeader, "")
	require.NotNil(t, UserAgent(h))
	assert.Equal(t, "", *UserAgent(h))

	h.Set(UserAgentHeader, "TestAgent/1.0")
	require.NotNil(t, UserAgent(h))
	assert.Equal(t, "TestAgent/1.0", *UserAgent(h))
}

func TestNewClickEvent(t *testing.T) {
	now := time.Date(2026, 10, 19, 14, 3, 7, 250_000_000, time.FixedZone("MSK", 3*60*60))

	h := http.Header{}
	h.Set(UserAgentHeader, "TestAgent/1.0")

	event := NewClickEvent("law", now, h)

	data, err := json.Marshal(event)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"event":"click","lead":"law","timestamp":"2026-10-19T11:03:07.250Z","ip":"unknown","ua":"TestAgent/1.0"}`,
		string(data),
	)

	parsed, err := time.Parse(time.RFC3339, event.Timestamp)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(now))
}

func TestNewClickEvent_NoUserAgent(t *testing.T) {
	event := NewClickEvent("valley", time.Unix(0, 0), http.Header{})

	data, err := json.Marshal(event)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"ua":null`)
	assert.Equal(t, "1970-01-01T00:00:00.000Z", event.Timestamp)
}

func BenchmarkExtractLeadID(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = ExtractLeadID("/api/go/perimeter")
	}
}
