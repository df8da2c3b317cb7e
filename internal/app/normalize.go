package app

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"hotel_gateway/internal/domain"
)

/********** alias registries (single source of truth) **********/
//
// The backend answers with a mix of PascalCase, camelCase and
// Vietnamese field names depending on host and deployment age. Each
// canonical field declares its accepted source names in precedence
// order; the first defined, non-null value wins and a miss degrades to
// the field's zero default, never to an error.

var roomAliases = map[string][]string{
	"id":          {"idphong", "idPhong", "Idphong", "IdPhong", "id", "Id", "ID"},
	"type_id":     {"idloaiphong", "idLoaiPhong", "IdLoaiPhong", "loaiPhong", "typeId", "TypeId", "roomTypeId", "type"},
	"name":        {"tenphong", "tenPhong", "TenPhong", "roomName", "RoomName", "name", "Name"},
	"room_number": {"sophong", "soPhong", "SoPhong", "roomNumber", "RoomNumber"},
	"description": {"mota", "moTa", "MoTa", "description", "Description"},
	"occupancy":   {"songuoi", "soNguoi", "SoNguoi", "soLuongNguoi", "maxPeople", "maxOccupancy", "capacity", "people"},
	"price":       {"giaphong", "giaPhong", "GiaPhong", "gia", "price", "Price", "basePrice", "pricePerNight"},
	"stars":       {"sosao", "soSao", "SoSao", "star", "Star", "starRating", "rating"},
	"status":      {"trangthai", "trangThai", "TrangThai", "status", "Status"},
	"image":       {"hinhanh", "hinhAnh", "HinhAnh", "anh", "image", "Image", "imageUrl", "ImageUrl", "avatar"},
	"amenities":   {"tienich", "tienIch", "TienIch", "amenities", "Amenities", "tags"},
	"promotions":  {"khuyenmai", "khuyenMai", "KhuyenMai", "promotions", "Promotions"},
}

var promotionAliases = map[string][]string{
	"id":          {"idkhuyenmai", "idKhuyenMai", "IdKhuyenMai", "id", "Id"},
	"name":        {"tenkhuyenmai", "tenKhuyenMai", "TenKhuyenMai", "name", "Name", "title"},
	"description": {"mota", "moTa", "MoTa", "description", "Description"},
	"kind":        {"loaigiamgia", "loaiGiamGia", "LoaiGiamGia", "discountType", "discountKind", "kind"},
	"value":       {"giatrigiam", "giaTriGiam", "GiaTriGiam", "discountValue", "value", "giamGia"},
	"starts":      {"ngaybatdau", "ngayBatDau", "NgayBatDau", "startDate", "validFrom", "startsAt"},
	"ends":        {"ngayketthuc", "ngayKetThuc", "NgayKetThuc", "endDate", "validTo", "endsAt"},
}

var blogAliases = map[string][]string{
	"id":        {"idbaiviet", "idBaiViet", "IdBaiViet", "id", "Id"},
	"title":     {"tieude", "tieuDe", "TieuDe", "title", "Title"},
	"category":  {"danhmuc", "danhMuc", "DanhMuc", "category", "Category"},
	"kind":      {"loai", "Loai", "kind", "type"},
	"slug":      {"slug", "Slug", "duongDan"},
	"image":     {"anh", "hinhAnh", "HinhAnh", "image", "thumbnail", "images"},
	"published": {"ngaydang", "ngayDang", "NgayDang", "publishedAt", "publishDate", "createdAt"},
	"excerpt":   {"tomtat", "tomTat", "TomTat", "excerpt", "summary"},
	"content":   {"noidung", "noiDung", "NoiDung", "content", "Content", "body"},
	"status":    {"trangthai", "trangThai", "TrangThai", "status", "Status"},
	"order":     {"thutu", "thuTu", "ThuTu", "displayOrder", "sortOrder", "order"},
	"views":     {"luotxem", "luotXem", "LuotXem", "viewCount", "views"},
}

var reviewAliases = map[string][]string{
	"id":        {"iddanhgia", "idDanhGia", "id", "Id"},
	"room_id":   {"idphong", "idPhong", "roomId"},
	"rating":    {"sosao", "soSao", "SoSao", "rating", "Rating", "star", "diem"},
	"title":     {"tieude", "tieuDe", "TieuDe", "title", "Title"},
	"content":   {"noidung", "noiDung", "NoiDung", "content", "comment", "text"},
	"anonymous": {"andanh", "anDanh", "AnDanh", "anonymous", "isAnonymous", "hidden"},
	"created":   {"ngaytao", "ngayTao", "createdAt", "created_at"},
}

// review author lookup chains; precedence is load-bearing (tested).
var reviewAuthorNested = []string{
	"khachhang.hoten", "khachhang.hoTen", "khachHang.hoTen", "KhachHang.HoTen",
	"customer.fullName", "customer.name", "user.fullName", "user.name",
}
var reviewAuthorFlat = []string{
	"hoten", "hoTen", "HoTen", "tenkhachhang", "tenKhachHang",
	"fullName", "customerName", "name",
}
var reviewAuthorID = []string{
	"idkhachhang", "idKhachHang", "IdKhachHang", "customerId", "userId",
}

var bookingAliases = map[string][]string{
	"id":        {"iddatphong", "idDatPhong", "IdDatPhong", "id", "Id", "bookingId"},
	"status":    {"trangthai", "trangThai", "TrangThai", "status", "Status"},
	"payment":   {"trangthaithanhtoan", "trangThaiThanhToan", "TrangThaiThanhToan", "paymentStatus", "payment"},
	"check_in":  {"ngaynhan", "ngayNhan", "NgayNhan", "checkIn", "checkInDate"},
	"check_out": {"ngaytra", "ngayTra", "NgayTra", "checkOut", "checkOutDate"},
	"total":     {"tongtien", "tongTien", "TongTien", "total", "totalAmount"},
	"rooms":     {"danhsachphong", "danhSachPhong", "rooms", "roomItems", "chitietphong", "chiTietPhong"},
	"services":  {"danhsachdichvu", "danhSachDichVu", "services", "serviceItems", "chitietdichvu", "chiTietDichVu"},
}

var lineItemAliases = map[string][]string{
	"name":     {"tenphong", "tenPhong", "tendichvu", "tenDichVu", "name", "Name"},
	"quantity": {"soluong", "soLuong", "SoLuong", "quantity", "qty"},
	"price":    {"dongia", "donGia", "DonGia", "unitPrice", "price", "gia"},
}

var accountAliases = map[string][]string{
	"id":     {"idkhachhang", "idKhachHang", "IdKhachHang", "id", "Id", "userId"},
	"name":   {"hoten", "hoTen", "HoTen", "fullName", "name", "Name"},
	"email":  {"email", "Email"},
	"phone":  {"sodienthoai", "soDienThoai", "SoDienThoai", "phone", "phoneNumber"},
	"avatar": {"anhdaidien", "anhDaiDien", "avatar", "Avatar", "image"},
}

var loyaltyAliases = map[string][]string{
	"points": {"diemtichluy", "diemTichLuy", "DiemTichLuy", "points", "loyaltyPoints"},
	"tier":   {"hangthanhvien", "hangThanhVien", "HangThanhVien", "tier", "level", "rank"},
}

/********** lookup helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok || v == nil {
			return nil
		}
		cur = v
	}
	return cur
}

// strFrom returns the first non-empty string for a named alias set.
// Non-string scalars are stringified rather than dropped.
func strFrom(m map[string]any, aliases map[string][]string, key string) string {
	for _, p := range aliases[key] {
		switch v := lookupAny(m, p).(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			return strconv.FormatBool(v)
		}
	}
	return ""
}

// floatFrom: number from the alias set (float64/string like "8,0").
func floatFrom(m map[string]any, aliases map[string][]string, key string) (float64, bool) {
	for _, p := range aliases[key] {
		switch v := lookupAny(m, p).(type) {
		case float64:
			return v, true
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

func int64From(m map[string]any, aliases map[string][]string, key string) int64 {
	if f, ok := floatFrom(m, aliases, key); ok {
		return int64(f)
	}
	return 0
}

func intFrom(m map[string]any, aliases map[string][]string, key string) int {
	return int(int64From(m, aliases, key))
}

// truthy recognizes the encodings the backend uses for boolean flags:
// true, 1, "1", "true".
func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t == 1
	case string:
		s := strings.TrimSpace(t)
		return s == "1" || strings.EqualFold(s, "true")
	}
	return false
}

func boolFrom(m map[string]any, aliases map[string][]string, key string) bool {
	for _, p := range aliases[key] {
		if v := lookupAny(m, p); v != nil {
			return truthy(v)
		}
	}
	return false
}

// stringsFrom accepts either a native array (of strings or objects
// with url/src/name) or a comma-separated string, and returns a
// trimmed, deduplicated, non-empty ordered slice.
func stringsFrom(m map[string]any, aliases map[string][]string, key string) []string {
	for _, p := range aliases[key] {
		switch v := lookupAny(m, p).(type) {
		case []any:
			var raw []string
			for _, it := range v {
				switch t := it.(type) {
				case string:
					raw = append(raw, t)
				case map[string]any:
					for _, k := range []string{"url", "src", "name", "ten"} {
						if s, ok := t[k].(string); ok && s != "" {
							raw = append(raw, s)
							break
						}
					}
				}
			}
			if out := dedupeTrim(raw); len(out) > 0 {
				return out
			}
		case string:
			if out := dedupeTrim(strings.Split(v, ",")); len(out) > 0 {
				return out
			}
		}
	}
	return nil
}

func dedupeTrim(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		t := strings.TrimSpace(s)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
}

func timeFrom(m map[string]any, aliases map[string][]string, key string) *time.Time {
	s := strFrom(m, aliases, key)
	if s == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// asMap tolerates payloads that wrap the object one level deep.
func asMap(v any, wrappers ...string) map[string]any {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	for _, w := range wrappers {
		if inner, ok := m[w].(map[string]any); ok {
			return inner
		}
	}
	return m
}

// asMaps extracts a list of objects from a bare array or a
// {data:[...]} wrapper.
func asMaps(v any) []map[string]any {
	arr, ok := v.([]any)
	if !ok {
		if m, isMap := v.(map[string]any); isMap {
			if inner, isArr := m["data"].([]any); isArr {
				arr = inner
			}
		}
	}
	out := make([]map[string]any, 0, len(arr))
	for _, it := range arr {
		if m, ok := it.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

/********** image URL resolution **********/

// NormalizeImageURL resolves an image candidate against the base host
// that served the payload. Absolute URLs pass through unchanged (the
// function is idempotent); a leading slash joins to the base; a bare
// filename maps into the conventional images directory.
func NormalizeImageURL(s, base string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return s
	}
	base = strings.TrimRight(base, "/")
	if strings.HasPrefix(s, "/") {
		return base + s
	}
	return base + "/img/room/" + s
}

/********** room mappers **********/

func mapRoom(m map[string]any, host string) domain.Room {
	price, _ := floatFrom(m, roomAliases, "price")
	if price < 0 {
		price = 0
	}
	stars, _ := floatFrom(m, roomAliases, "stars")
	if stars < 0 {
		stars = 0
	}
	if stars > 5 {
		stars = 5
	}

	r := domain.Room{
		ID:                int64From(m, roomAliases, "id"),
		TypeID:            int64From(m, roomAliases, "type_id"),
		Name:              strFrom(m, roomAliases, "name"),
		RoomNumber:        strFrom(m, roomAliases, "room_number"),
		Description:       strFrom(m, roomAliases, "description"),
		MaxOccupancy:      intFrom(m, roomAliases, "occupancy"),
		BasePricePerNight: price,
		StarRating:        stars,
		Status:            strFrom(m, roomAliases, "status"),
		ImageURL:          NormalizeImageURL(strFrom(m, roomAliases, "image"), host),
		Amenities:         stringsFrom(m, roomAliases, "amenities"),
	}
	for _, pm := range promotionMaps(m) {
		r.Promotions = append(r.Promotions, mapPromotion(pm))
	}
	return r
}

func promotionMaps(m map[string]any) []map[string]any {
	for _, p := range roomAliases["promotions"] {
		if arr, ok := lookupAny(m, p).([]any); ok {
			out := make([]map[string]any, 0, len(arr))
			for _, it := range arr {
				if pm, ok := it.(map[string]any); ok {
					out = append(out, pm)
				}
			}
			return out
		}
	}
	return nil
}

func mapRooms(payload domain.Payload) []domain.Room {
	ms := asMaps(payload.Data)
	out := make([]domain.Room, 0, len(ms))
	for _, m := range ms {
		out = append(out, mapRoom(m, payload.Host))
	}
	return out
}

func mapAvailableRoom(m map[string]any, host string) domain.AvailableRoom {
	price, _ := floatFrom(m, roomAliases, "price")
	if price < 0 {
		price = 0
	}
	return domain.AvailableRoom{
		ID:                int64From(m, roomAliases, "id"),
		TypeID:            int64From(m, roomAliases, "type_id"),
		Name:              strFrom(m, roomAliases, "name"),
		RoomNumber:        strFrom(m, roomAliases, "room_number"),
		MaxOccupancy:      intFrom(m, roomAliases, "occupancy"),
		BasePricePerNight: price,
		ImageURL:          NormalizeImageURL(strFrom(m, roomAliases, "image"), host),
	}
}

/********** promotion mapper **********/

func mapPromotion(m map[string]any) domain.Promotion {
	kind := normalizeDiscountKind(strFrom(m, promotionAliases, "kind"))
	value, _ := floatFrom(m, promotionAliases, "value")
	if value < 0 {
		value = 0
	}
	if kind == domain.DiscountPercent && value > 100 {
		value = 100
	}
	return domain.Promotion{
		ID:            int64From(m, promotionAliases, "id"),
		Name:          strFrom(m, promotionAliases, "name"),
		Description:   strFrom(m, promotionAliases, "description"),
		DiscountKind:  kind,
		DiscountValue: value,
		StartsAt:      timeFrom(m, promotionAliases, "starts"),
		EndsAt:        timeFrom(m, promotionAliases, "ends"),
	}
}

func normalizeDiscountKind(s string) string {
	l := strings.ToLower(strings.TrimSpace(s))
	if l == "percent" || l == "percentage" || l == "phantram" || l == "phần trăm" || strings.Contains(l, "%") {
		return domain.DiscountPercent
	}
	return domain.DiscountAmount
}

/********** blog mapper **********/

func mapBlogPost(m map[string]any, host string) domain.BlogPost {
	images := stringsFrom(m, blogAliases, "image")
	for i, img := range images {
		images[i] = NormalizeImageURL(img, host)
	}
	var first string
	if len(images) > 0 {
		first = images[0]
	}

	var order *int
	if f, ok := floatFrom(m, blogAliases, "order"); ok {
		n := int(f)
		order = &n
	}

	return domain.BlogPost{
		ID:           int64From(m, blogAliases, "id"),
		Title:        strFrom(m, blogAliases, "title"),
		Category:     strFrom(m, blogAliases, "category"),
		Kind:         normalizeBlogKind(strFrom(m, blogAliases, "kind")),
		Slug:         strFrom(m, blogAliases, "slug"),
		ImageURL:     first,
		Images:       images,
		PublishedAt:  timeFrom(m, blogAliases, "published"),
		Excerpt:      strFrom(m, blogAliases, "excerpt"),
		Content:      strFrom(m, blogAliases, "content"),
		Status:       strings.ToUpper(strFrom(m, blogAliases, "status")),
		DisplayOrder: order,
		ViewCount:    int64From(m, blogAliases, "views"),
	}
}

func normalizeBlogKind(s string) string {
	l := strings.ToLower(strings.TrimSpace(s))
	if l == "external" || l == "ngoai" || l == "ngoài" {
		return domain.BlogKindExternal
	}
	return domain.BlogKindInternal
}

/********** review mappers **********/

// ResolveAuthorName derives the display name for a review. The
// precedence is fixed: any truthy anonymity encoding wins over every
// name field; then a nested customer object; then flat name fields;
// then "Khách hàng <id>"; then the generic placeholder.
func ResolveAuthorName(m map[string]any) string {
	for _, p := range reviewAliases["anonymous"] {
		if v := lookupAny(m, p); v != nil && truthy(v) {
			return "Ẩn danh"
		}
	}
	for _, p := range reviewAuthorNested {
		if s, ok := lookupAny(m, p).(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	for _, p := range reviewAuthorFlat {
		if s, ok := lookupAny(m, p).(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	for _, p := range reviewAuthorID {
		switch v := lookupAny(m, p).(type) {
		case float64:
			return fmt.Sprintf("Khách hàng %d", int64(v))
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return "Khách hàng " + s
			}
		}
	}
	return "Khách hàng"
}

func mapReview(m map[string]any) domain.Review {
	rating := intFrom(m, reviewAliases, "rating")
	if rating < 1 {
		rating = 1
	}
	if rating > 5 {
		rating = 5
	}
	content := strFrom(m, reviewAliases, "content")
	if utf8.RuneCountInString(content) > domain.MaxReviewContentLen {
		// Truncate on rune boundaries; review text is Vietnamese and a
		// byte slice would cut multi-byte characters in half.
		content = string([]rune(content)[:domain.MaxReviewContentLen])
	}
	return domain.Review{
		ID:         int64From(m, reviewAliases, "id"),
		RoomID:     int64From(m, reviewAliases, "room_id"),
		Rating:     rating,
		Title:      strFrom(m, reviewAliases, "title"),
		Content:    content,
		Anonymous:  boolFrom(m, reviewAliases, "anonymous"),
		AuthorName: ResolveAuthorName(m),
		CreatedAt:  timeFrom(m, reviewAliases, "created"),
	}
}

// normalizeReviewPage folds the backend's paging variants into
// {items, total}: a bare array, {items,total}, {data:[...]},
// {data:{items,total}}, {result:[...]}, or a {reviews|rows|list|records}
// wrapper.
func normalizeReviewPage(v any) domain.ReviewPage {
	items, total := reviewList(v)
	page := domain.ReviewPage{Items: make([]domain.Review, 0, len(items)), Total: total}
	for _, m := range items {
		page.Items = append(page.Items, mapReview(m))
	}
	if page.Total < len(page.Items) {
		page.Total = len(page.Items)
	}
	return page
}

func reviewList(v any) ([]map[string]any, int) {
	if arr, ok := v.([]any); ok {
		return onlyMaps(arr), len(arr)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, 0
	}

	total := -1
	for _, k := range []string{"total", "Total", "count", "totalCount", "tongSo"} {
		if f, ok := m[k].(float64); ok {
			total = int(f)
			break
		}
	}

	for _, k := range []string{"items", "data", "result", "reviews", "rows", "list", "records"} {
		switch inner := m[k].(type) {
		case []any:
			if total < 0 {
				total = len(inner)
			}
			return onlyMaps(inner), total
		case map[string]any:
			// {data:{items,total}}
			items, innerTotal := reviewList(inner)
			if total < 0 {
				total = innerTotal
			}
			return items, total
		}
	}
	return nil, 0
}

func onlyMaps(arr []any) []map[string]any {
	out := make([]map[string]any, 0, len(arr))
	for _, it := range arr {
		if m, ok := it.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

/********** booking mapper **********/

func mapBooking(m map[string]any) domain.Booking {
	b := domain.Booking{
		ID:       int64From(m, bookingAliases, "id"),
		Status:   domain.BookingStatus(intFrom(m, bookingAliases, "status")),
		Payment:  domain.PaymentStatus(intFrom(m, bookingAliases, "payment")),
		CheckIn:  strFrom(m, bookingAliases, "check_in"),
		CheckOut: strFrom(m, bookingAliases, "check_out"),
		Raw:      m,
	}
	b.Total, _ = floatFrom(m, bookingAliases, "total")
	b.StatusLabel = b.Status.Label()
	b.PaymentLabel = b.Payment.Label()
	b.RoomItems = lineItems(m, "rooms")
	b.ServiceItems = lineItems(m, "services")
	return b
}

func lineItems(m map[string]any, key string) []domain.BookingLineItem {
	for _, p := range bookingAliases[key] {
		arr, ok := lookupAny(m, p).([]any)
		if !ok {
			continue
		}
		out := make([]domain.BookingLineItem, 0, len(arr))
		for _, it := range arr {
			im, ok := it.(map[string]any)
			if !ok {
				continue
			}
			qty := intFrom(im, lineItemAliases, "quantity")
			if qty == 0 {
				qty = 1
			}
			price, _ := floatFrom(im, lineItemAliases, "price")
			out = append(out, domain.BookingLineItem{
				Name:      strFrom(im, lineItemAliases, "name"),
				Quantity:  qty,
				UnitPrice: price,
			})
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

/********** account & loyalty mappers **********/

func mapAccount(m map[string]any) domain.Account {
	return domain.Account{
		ID:       int64From(m, accountAliases, "id"),
		FullName: strFrom(m, accountAliases, "name"),
		Email:    strFrom(m, accountAliases, "email"),
		Phone:    strFrom(m, accountAliases, "phone"),
		Avatar:   strFrom(m, accountAliases, "avatar"),
	}
}

func mapLoyalty(m map[string]any) domain.Loyalty {
	return domain.Loyalty{
		Points: intFrom(m, loyaltyAliases, "points"),
		Tier:   strFrom(m, loyaltyAliases, "tier"),
	}
}
