package threecommas

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Credentials 包含 API 凭证和签名方法
type Credentials struct {
	apiKey    string
	apiSecret string
}

// NewCredentials 创建凭证对象
func NewCredentials(apiKey, apiSecret string) *Credentials {
	return &Credentials{
		apiKey:    apiKey,
		apiSecret: apiSecret,
	}
}

// Sign 生成 HMAC-SHA256 签名: hex(hmac(secret, path + query))
func (c *Credentials) Sign(path, query string) string {
	h := hmac.New(sha256.New, []byte(c.apiSecret))
	h.Write([]byte(path))
	h.Write([]byte(query))
	return hex.EncodeToString(h.Sum(nil))
}

// APIKey 返回 API Key
func (c *Credentials) APIKey() string {
	return c.apiKey
}

// Complete reports whether both key and secret are set.
func (c *Credentials) Complete() bool {
	return c != nil && c.apiKey != "" && c.apiSecret != ""
}
