package threecommas

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignIsDeterministicHex(t *testing.T) {
	c := NewCredentials("key", "secret")
	path := "/public/api/ver1/deals/42/panic_sell?"
	query := "deal_id=42"

	got := c.Sign(path, query)
	assert.Equal(t, got, c.Sign(path, query))
	assert.Len(t, got, 64)
	assert.Regexp(t, "^[0-9a-f]{64}$", got)
	assert.Equal(t, sign("secret", path+query), got)
}

func TestSignChangesWithEveryInput(t *testing.T) {
	base := NewCredentials("key", "secret").Sign("/p?", "a=1")

	assert.NotEqual(t, base, NewCredentials("key", "secret").Sign("/q?", "a=1"))
	assert.NotEqual(t, base, NewCredentials("key", "secret").Sign("/p?", "a=2"))
	assert.NotEqual(t, base, NewCredentials("key", "other").Sign("/p?", "a=1"))
	// the api key is not part of the signature
	assert.Equal(t, base, NewCredentials("other", "secret").Sign("/p?", "a=1"))
}

func TestCredentialsComplete(t *testing.T) {
	assert.True(t, NewCredentials("k", "s").Complete())
	assert.False(t, NewCredentials("", "s").Complete())
	assert.False(t, NewCredentials("k", "").Complete())

	var nilCreds *Credentials
	assert.False(t, nilCreds.Complete())
}
