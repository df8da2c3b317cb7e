package app_test

import (
	"context"
	"errors"
	"testing"

	"hotel_gateway/internal/adapters/tokenstore"
	"hotel_gateway/internal/app"
	"hotel_gateway/internal/domain"
)

func TestLogin_StoresTokenAndMapsAccount(t *testing.T) {
	up := &fakeUpstream{
		login: func(ctx context.Context, body map[string]any) (domain.Payload, error) {
			if body["email"] != "an@example.com" || body["matKhau"] != "s3cret" {
				t.Fatalf("unexpected login body: %#v", body)
			}
			return jsonPayload(t, `{"data":{"token":"tok-123","khachHang":{"id":7,"hoTen":"Nguyễn Văn An","email":"an@example.com"}}}`, "http://a.example"), nil
		},
	}
	tokens := tokenstore.New()
	s := app.NewAuthService(up, tokens)

	sess, err := s.Login(context.Background(), domain.Credentials{Email: " an@example.com ", Password: "s3cret"})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if sess.Token != "tok-123" {
		t.Fatalf("token = %q", sess.Token)
	}
	if tokens.GetToken() != "tok-123" {
		t.Fatalf("token not stored")
	}
	if sess.Account.ID != 7 || sess.Account.FullName != "Nguyễn Văn An" {
		t.Fatalf("account = %+v", sess.Account)
	}
}

func TestLogin_MissingTokenFails(t *testing.T) {
	up := &fakeUpstream{
		login: func(ctx context.Context, body map[string]any) (domain.Payload, error) {
			return jsonPayload(t, `{"user":{"id":1}}`, "http://a.example"), nil
		},
	}
	tokens := tokenstore.New()
	s := app.NewAuthService(up, tokens)

	if _, err := s.Login(context.Background(), domain.Credentials{Email: "a@b.c", Password: "p"}); err == nil {
		t.Fatalf("expected error when response carries no token")
	}
	if tokens.GetToken() != "" {
		t.Fatalf("token store should stay empty on failed login")
	}
}

func TestLogin_EmptyCredentialsRejected(t *testing.T) {
	s := app.NewAuthService(&fakeUpstream{}, tokenstore.New())
	if _, err := s.Login(context.Background(), domain.Credentials{}); err == nil {
		t.Fatalf("empty credentials should be rejected before any upstream call")
	}
}

func TestRegister_TokenOptional(t *testing.T) {
	up := &fakeUpstream{
		register: func(ctx context.Context, body map[string]any) (domain.Payload, error) {
			return jsonPayload(t, `{"message":"tạo tài khoản thành công","user":{"id":9,"hoTen":"Bình"}}`, "http://a.example"), nil
		},
	}
	tokens := tokenstore.New()
	s := app.NewAuthService(up, tokens)

	sess, err := s.Register(context.Background(), domain.Registration{FullName: "Bình", Email: "b@example.com", Password: "p"})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if sess.Token != "" || tokens.GetToken() != "" {
		t.Fatalf("no token expected, got %q", sess.Token)
	}
	if sess.Account.ID != 9 {
		t.Fatalf("account = %+v", sess.Account)
	}
}

func TestLogout_ClearsToken(t *testing.T) {
	tokens := tokenstore.New()
	tokens.SetToken("tok")
	app.NewAuthService(&fakeUpstream{}, tokens).Logout()
	if tokens.GetToken() != "" {
		t.Fatalf("token survived logout")
	}
}

func TestUpdateProfile_EchoesInputOnEmptyBody(t *testing.T) {
	up := &fakeUpstream{
		updProfile: func(ctx context.Context, body map[string]any) (domain.Payload, error) {
			return domain.Payload{Data: nil, Host: "http://a.example"}, nil
		},
	}
	s := app.NewAuthService(up, tokenstore.New())

	in := domain.Account{ID: 1, FullName: "Chi", Email: "c@example.com"}
	out, err := s.UpdateProfile(context.Background(), in)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if out != in {
		t.Fatalf("expected input echoed back, got %+v", out)
	}
}

func TestLoyalty_DegradesToNil(t *testing.T) {
	up := &fakeUpstream{
		loyalty: func(ctx context.Context) (domain.Payload, error) {
			return domain.Payload{}, errors.New("loyalty down")
		},
	}
	l, err := app.NewAuthService(up, tokenstore.New()).Loyalty(context.Background())
	if err != nil || l != nil {
		t.Fatalf("expected quiet nil, got %+v err=%v", l, err)
	}
}
