package server

import (
	"strings"

	"github.com/google/uuid"
)

// NewSessionKey 生成进程级会话密钥，POST 请求必须回传同一个 sesskey。
func NewSessionKey() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// StaticSessionKey 把固定密钥适配为 viewpattern.Env.SessionKey。
func StaticSessionKey(key string) func() string {
	return func() string { return key }
}
