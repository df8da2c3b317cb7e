package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotel_gateway/internal/adapters/memcache"
	"hotel_gateway/internal/app"
	"hotel_gateway/internal/domain"
)

func TestListPromotions_DegradesToEmpty(t *testing.T) {
	up := &fakeUpstream{
		promotions: func(ctx context.Context) (domain.Payload, error) {
			return domain.Payload{}, errors.New("promotions down")
		},
	}
	s := app.NewPromotionService(up, memcache.New(), time.Minute)

	if got := s.ListPromotions(context.Background()); len(got) != 0 {
		t.Fatalf("expected empty list, got %v", got)
	}
}

func TestActivePromotions_FiltersByWindow(t *testing.T) {
	up := &fakeUpstream{
		promotions: func(ctx context.Context) (domain.Payload, error) {
			return jsonPayload(t, `[
				{"idKhuyenMai":1,"tenKhuyenMai":"Hè rực rỡ","loaiGiamGia":"phanTram","giaTriGiam":20,"ngayBatDau":"2026-06-01","ngayKetThuc":"2026-08-31"},
				{"idKhuyenMai":2,"tenKhuyenMai":"Tết","loaiGiamGia":"phanTram","giaTriGiam":15,"ngayBatDau":"2026-01-01","ngayKetThuc":"2026-02-15"}
			]`, "http://a.example"), nil
		},
	}
	s := app.NewPromotionService(up, memcache.New(), time.Minute)

	now := time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC)
	active := s.ActivePromotions(context.Background(), now)
	if len(active) != 1 || active[0].ID != 1 {
		t.Fatalf("active = %+v", active)
	}
	if active[0].DiscountKind != domain.DiscountPercent || active[0].DiscountValue != 20 {
		t.Fatalf("discount = %s %v", active[0].DiscountKind, active[0].DiscountValue)
	}
}

func TestListPromotions_CachedAcrossCalls(t *testing.T) {
	var calls int
	up := &fakeUpstream{
		promotions: func(ctx context.Context) (domain.Payload, error) {
			calls++
			return jsonPayload(t, `[{"idKhuyenMai":1,"tenKhuyenMai":"KM"}]`, "http://a.example"), nil
		},
	}
	s := app.NewPromotionService(up, memcache.New(), time.Minute)

	for i := 0; i < 2; i++ {
		if got := s.ListPromotions(context.Background()); len(got) != 1 {
			t.Fatalf("got %v", got)
		}
	}
	if calls != 1 {
		t.Fatalf("upstream called %d times, want 1", calls)
	}
}
