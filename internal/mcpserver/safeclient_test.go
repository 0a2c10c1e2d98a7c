package mcpserver

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsBlockedIP(t *testing.T) {
	tests := []struct {
		ip      string
		blocked bool
	}{
		{"127.0.0.1", true},
		{"10.1.2.3", true},
		{"172.20.0.1", true},
		{"192.168.0.10", true},
		{"169.254.169.254", true},
		{"100.64.0.1", true},
		{"224.0.0.1", true},
		{"0.0.0.0", true},
		{"::1", true},
		{"::", true},
		{"fe80::1", true},
		{"fd12:3456::1", true},
		{"ff02::1", true},
		{"8.8.4.4", false},
		{"100.128.0.1", false},
		{"2606:4700:4700::1111", false},
	}
	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			ip := net.ParseIP(tt.ip)
			require.NotNil(t, ip)
			assert.Equal(t, tt.blocked, isBlockedIP(ip))
		})
	}
}

func TestResolvePublic_Loopback(t *testing.T) {
	_, err := resolvePublic(context.Background(), "127.0.0.1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blocked request to private/loopback IP")
}

func TestCheckRedirect(t *testing.T) {
	newReq := func(raw string) *http.Request {
		u, err := url.Parse(raw)
		require.NoError(t, err)
		return (&http.Request{URL: u}).WithContext(context.Background())
	}

	t.Run("too many redirects", func(t *testing.T) {
		via := make([]*http.Request, maxRedirects)
		err := checkRedirect(newReq("https://8.8.8.8/schema.md"), via)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "stopped after 5 redirects")
	})

	t.Run("non-http scheme", func(t *testing.T) {
		err := checkRedirect(newReq("file:///etc/passwd"), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "non-http")
	})

	t.Run("private target", func(t *testing.T) {
		err := checkRedirect(newReq("http://10.0.0.1/schema.md"), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "redirect blocked")
	})
}

func TestNewSafeHTTPClient(t *testing.T) {
	client := newSafeHTTPClient()
	require.NotNil(t, client)
	assert.Equal(t, fetchTimeout, client.Timeout)
	assert.NotNil(t, client.CheckRedirect)
}
