// Package tokenstore holds the session bearer token. The real secure
// storage (keychain on device, secret manager server-side) sits behind
// the domain.TokenStore port; this in-memory store is the process-local
// implementation.
package tokenstore

import (
	"sync"

	"hotel_gateway/internal/domain"
)

type Memory struct {
	mu    sync.RWMutex
	token string
}

var _ domain.TokenStore = (*Memory)(nil)

func New() *Memory { return &Memory{} }

func (m *Memory) GetToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

func (m *Memory) SetToken(token string) {
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
}

func (m *Memory) ClearToken() {
	m.mu.Lock()
	m.token = ""
	m.mu.Unlock()
}
