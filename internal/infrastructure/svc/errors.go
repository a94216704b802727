package svc

import "errors"

// ErrNoCredentials 错误：未配置 API key/secret
var ErrNoCredentials = errors.New("api key or secret not configured")

// ErrStorageInitFailed 错误：存储初始化失败
var ErrStorageInitFailed = errors.New("storage initialization failed")
