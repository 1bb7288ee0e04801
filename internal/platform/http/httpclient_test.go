package http

import (
	"crypto/tls"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient(t *testing.T) {
	t.Parallel()

	c := NewHTTPClient(3 * time.Second)
	assert.Equal(t, 3*time.Second, c.Timeout)

	tr, ok := c.Transport.(*http.Transport)
	require.True(t, ok)
	assert.Nil(t, tr.TLSClientConfig)
	assert.Equal(t, 100, tr.MaxIdleConns)
}

func TestNewLegacyTLSClient(t *testing.T) {
	t.Parallel()

	c := NewLegacyTLSClient(30 * time.Second)
	tr, ok := c.Transport.(*http.Transport)
	require.True(t, ok)
	require.NotNil(t, tr.TLSClientConfig)

	assert.Equal(t, uint16(tls.VersionTLS12), tr.TLSClientConfig.MaxVersion)
	assert.Contains(t, tr.TLSClientConfig.CipherSuites, tls.TLS_RSA_WITH_AES_128_GCM_SHA256)
	assert.False(t, tr.ForceAttemptHTTP2)
	assert.Equal(t, 5, tr.MaxConnsPerHost)
}
