package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"hotel_gateway/internal/domain"
)

type AuthService struct {
	up     domain.Upstream
	tokens domain.TokenStore
}

func NewAuthService(up domain.Upstream, tokens domain.TokenStore) *AuthService {
	return &AuthService{up: up, tokens: tokens}
}

// tokenOf digs the bearer token out of a login/register response.
func tokenOf(m map[string]any) string {
	for _, k := range []string{"token", "accessToken", "access_token", "jwt"} {
		if s, ok := m[k].(string); ok && s != "" {
			return s
		}
	}
	if inner, ok := m["data"].(map[string]any); ok {
		return tokenOf(inner)
	}
	return ""
}

// accountOf finds the account object, nested or flat.
func accountOf(m map[string]any) domain.Account {
	for _, k := range []string{"user", "customer", "khachHang", "khachhang", "account", "data"} {
		if inner, ok := m[k].(map[string]any); ok {
			if acc := mapAccount(inner); acc.ID != 0 || acc.Email != "" || acc.FullName != "" {
				return acc
			}
		}
	}
	return mapAccount(m)
}

// Login authenticates and stores the session token. Login is a
// primary flow: failures propagate.
func (s *AuthService) Login(ctx context.Context, creds domain.Credentials) (domain.Session, error) {
	email := strings.TrimSpace(creds.Email)
	if email == "" || creds.Password == "" {
		return domain.Session{}, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}
	payload, err := s.up.Login(ctx, map[string]any{"email": email, "matKhau": creds.Password, "password": creds.Password})
	if err != nil {
		return domain.Session{}, err
	}
	m, ok := payload.Data.(map[string]any)
	if !ok {
		return domain.Session{}, fmt.Errorf("login: unexpected payload shape")
	}
	tok := tokenOf(m)
	if tok == "" {
		return domain.Session{}, fmt.Errorf("login: no token in response")
	}
	s.tokens.SetToken(tok)
	return domain.Session{Token: tok, Account: accountOf(m)}, nil
}

func (s *AuthService) Register(ctx context.Context, reg domain.Registration) (domain.Session, error) {
	if strings.TrimSpace(reg.Email) == "" || reg.Password == "" {
		return domain.Session{}, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}
	body := map[string]any{
		"hoTen":       strings.TrimSpace(reg.FullName),
		"email":       strings.TrimSpace(reg.Email),
		"soDienThoai": strings.TrimSpace(reg.Phone),
		"matKhau":     reg.Password,
		"password":    reg.Password,
	}
	payload, err := s.up.Register(ctx, body)
	if err != nil {
		return domain.Session{}, err
	}
	m, ok := payload.Data.(map[string]any)
	if !ok {
		return domain.Session{}, fmt.Errorf("register: unexpected payload shape")
	}
	sess := domain.Session{Token: tokenOf(m), Account: accountOf(m)}
	if sess.Token != "" {
		s.tokens.SetToken(sess.Token)
	}
	return sess, nil
}

func (s *AuthService) Logout() { s.tokens.ClearToken() }

func (s *AuthService) Profile(ctx context.Context) (domain.Account, error) {
	payload, err := s.up.GetProfile(ctx)
	if err != nil {
		return domain.Account{}, err
	}
	m, ok := payload.Data.(map[string]any)
	if !ok {
		return domain.Account{}, fmt.Errorf("profile: unexpected payload shape")
	}
	return accountOf(m), nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, acc domain.Account) (domain.Account, error) {
	body := map[string]any{
		"hoTen":       acc.FullName,
		"email":       acc.Email,
		"soDienThoai": acc.Phone,
	}
	if acc.Avatar != "" {
		body["anhDaiDien"] = acc.Avatar
	}
	payload, err := s.up.UpdateProfile(ctx, body)
	if err != nil {
		return domain.Account{}, err
	}
	if m, ok := payload.Data.(map[string]any); ok {
		return accountOf(m), nil
	}
	// Some hosts answer writes with an empty body; echo the input.
	return acc, nil
}

// Loyalty degrades to nil on failure; the points badge is decoration.
func (s *AuthService) Loyalty(ctx context.Context) (*domain.Loyalty, error) {
	payload, err := s.up.Loyalty(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("loyalty info unavailable")
		return nil, nil
	}
	m := asMap(payload.Data, "data", "loyalty")
	if m == nil {
		return nil, nil
	}
	l := mapLoyalty(m)
	return &l, nil
}
