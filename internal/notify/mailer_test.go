package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHost(t *testing.T) {
	assert.Equal(t, "localhost", host("localhost:1025"))
	assert.Equal(t, "mail.example.com", host("mail.example.com:587"))
	assert.Equal(t, "mail.example.com", host("mail.example.com"))
	assert.Equal(t, "::1", host("[::1]:1025"))
}
