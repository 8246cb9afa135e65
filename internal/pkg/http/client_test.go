package http

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:8080", 5*time.Second)

	assert.Equal(t, "http://localhost:8080", client.BaseURL)
	assert.Equal(t, 5*time.Second, client.HTTPClient.Timeout)
}

func TestNewClient_DefaultTimeout(t *testing.T) {
	client := NewClient("http://localhost:8080", 0)

	assert.Equal(t, 10*time.Second, client.HTTPClient.Timeout)
}
