//go:build integration || !unit

package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"hotel_gateway/internal/adapters/backend"
	httpserver "hotel_gateway/internal/adapters/http_server"
	"hotel_gateway/internal/adapters/memcache"
	"hotel_gateway/internal/adapters/tokenstore"
	"hotel_gateway/internal/app"
)

// newGateway wires the full stack against the given upstream hosts,
// the same way cmd/gateway does, and returns the router plus the
// token store for assertions.
func newGateway(t *testing.T, hosts ...string) (http.Handler, *tokenstore.Memory) {
	t.Helper()
	tokens := tokenstore.New()
	exec := backend.NewExecutor(tokens, 0)
	up, err := backend.New(hosts, exec)
	if err != nil {
		t.Fatalf("backend: %v", err)
	}
	cache := memcache.New()
	ttl := 30 * time.Second

	srv := httpserver.New()
	srv.MountHandlers(&httpserver.Handlers{
		Rooms:    app.NewRoomService(up, cache, ttl),
		Auth:     app.NewAuthService(up, tokens),
		Blog:     app.NewBlogService(up, cache, ttl),
		Promos:   app.NewPromotionService(up, cache, ttl),
		Reviews:  app.NewReviewService(up),
		Bookings: app.NewBookingService(up),
	})
	return srv.Mux(), tokens
}

func get(t *testing.T, h http.Handler, path string, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRooms_EmptyHostSkipped(t *testing.T) {
	// First host answers 200 with an empty catalog; the sweep must
	// move on and serve the second host's rooms, with images resolved
	// against the host that actually answered.
	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[]`)
	}))
	defer empty.Close()

	full := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/rooms" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[{"idPhong":5,"tenPhong":"Phòng Deluxe","giaPhong":"1200000","soSao":"4.5","hinhAnh":"deluxe.jpg","trangThai":"hoatDong"}]`)
	}))
	defer full.Close()

	h, _ := newGateway(t, empty.URL, full.URL)

	w := get(t, h, "/v1/rooms", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}
	var rooms []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &rooms); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rooms) != 1 {
		t.Fatalf("rooms = %v", rooms)
	}
	r := rooms[0]
	if r["name"] != "Phòng Deluxe" || r["basePricePerNight"] != float64(1200000) {
		t.Fatalf("room = %v", r)
	}
	if want := full.URL + "/img/room/deluxe.jpg"; r["imageUrl"] != want {
		t.Fatalf("imageUrl = %v, want %s", r["imageUrl"], want)
	}
}

func TestRooms_SecondRequestServedFromCache(t *testing.T) {
	var hits int
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		fmt.Fprint(w, `[{"idPhong":1,"tenPhong":"A"}]`)
	}))
	defer up.Close()

	h, _ := newGateway(t, up.URL)
	for i := 0; i < 2; i++ {
		if w := get(t, h, "/v1/rooms", nil); w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
	}
	if hits != 1 {
		t.Fatalf("upstream hit %d times, want 1", hits)
	}
}

func TestRooms_ETagRevalidation(t *testing.T) {
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"idPhong":1,"tenPhong":"A"}]`)
	}))
	defer up.Close()

	h, _ := newGateway(t, up.URL)

	first := get(t, h, "/v1/rooms", nil)
	etag := first.Header().Get("ETag")
	if etag == "" {
		t.Fatalf("no ETag on first response")
	}
	second := get(t, h, "/v1/rooms", map[string]string{"If-None-Match": etag})
	if second.Code != http.StatusNotModified {
		t.Fatalf("status = %d, want 304", second.Code)
	}
}

func TestAvailability_MessageShapeIsEmptyList(t *testing.T) {
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"message":"không còn phòng trống"}`)
	}))
	defer up.Close()

	h, _ := newGateway(t, up.URL)

	w := get(t, h, "/v1/rooms/availability?typeId=2&checkIn=2026-09-01&checkOut=2026-09-03", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}
	if body := strings.TrimSpace(w.Body.String()); body != "[]" {
		t.Fatalf("body = %q, want []", body)
	}
}

func TestRooms_AllHostsDownIs502(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"bảo trì"}`, http.StatusServiceUnavailable)
	}))
	defer down.Close()

	h, _ := newGateway(t, down.URL)

	w := get(t, h, "/v1/rooms", nil)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("content type = %q", ct)
	}
	if !strings.Contains(w.Body.String(), "bảo trì") {
		t.Fatalf("host failure reason missing from body: %s", w.Body.String())
	}
}

func TestLogin_ThenAuthenticatedProfile(t *testing.T) {
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			fmt.Fprint(w, `{"token":"tok-xyz","user":{"id":4,"hoTen":"Dung","email":"d@example.com"}}`)
		case "/api/customers/profile":
			if r.Header.Get("Authorization") != "Bearer tok-xyz" {
				http.Error(w, `{"message":"chưa đăng nhập"}`, http.StatusUnauthorized)
				return
			}
			fmt.Fprint(w, `{"data":{"idKhachHang":4,"hoTen":"Dung","email":"d@example.com"}}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer up.Close()

	h, tokens := newGateway(t, up.URL)

	body := strings.NewReader(`{"email":"d@example.com","password":"pw"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", body)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body: %s", w.Code, w.Body.String())
	}
	if tokens.GetToken() != "tok-xyz" {
		t.Fatalf("token not stored after login")
	}

	prof := get(t, h, "/v1/auth/profile", map[string]string{"Authorization": "Bearer tok-xyz"})
	if prof.Code != http.StatusOK {
		t.Fatalf("profile status = %d, body: %s", prof.Code, prof.Body.String())
	}
	var acc map[string]any
	if err := json.Unmarshal(prof.Body.Bytes(), &acc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if acc["fullName"] != "Dung" || acc["id"] != float64(4) {
		t.Fatalf("account = %v", acc)
	}
}

func TestConcurrentCallers_KeepTheirOwnTokens(t *testing.T) {
	// First host fails slowly so concurrent sweeps interleave; the
	// second host echoes the Authorization header it received back as
	// the profile name. Each caller must get their own token echoed,
	// never another caller's.
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(20 * time.Millisecond)
		http.Error(w, `{"message":"bảo trì"}`, http.StatusInternalServerError)
	}))
	defer slow.Close()
	echo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"data":{"idKhachHang":1,"hoTen":%q}}`, tok)
	}))
	defer echo.Close()

	h, _ := newGateway(t, slow.URL, echo.URL)

	const iterations = 4
	var wg sync.WaitGroup
	for _, user := range []string{"user-A", "user-B"} {
		for i := 0; i < iterations; i++ {
			wg.Add(1)
			go func(user string) {
				defer wg.Done()
				w := get(t, h, "/v1/auth/profile", map[string]string{"Authorization": "Bearer " + user})
				if w.Code != http.StatusOK {
					t.Errorf("%s: status = %d, body: %s", user, w.Code, w.Body.String())
					return
				}
				var acc map[string]any
				if err := json.Unmarshal(w.Body.Bytes(), &acc); err != nil {
					t.Errorf("%s: decode: %v", user, err)
					return
				}
				if acc["fullName"] != user {
					t.Errorf("%s: upstream call went out as %q", user, acc["fullName"])
				}
			}(user)
		}
	}
	wg.Wait()
}

func TestLogin_UnanimousRejectionForwarded(t *testing.T) {
	reject := func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"sai mật khẩu"}`, http.StatusUnauthorized)
	}
	a := httptest.NewServer(http.HandlerFunc(reject))
	defer a.Close()
	b := httptest.NewServer(http.HandlerFunc(reject))
	defer b.Close()

	h, _ := newGateway(t, a.URL, b.URL)

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(`{"email":"d@example.com","password":"bad"}`))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401; body: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "sai mật khẩu") {
		t.Fatalf("upstream message not forwarded: %s", w.Body.String())
	}
}
