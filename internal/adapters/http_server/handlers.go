package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotel_gateway/internal/adapters/backend"
	"hotel_gateway/internal/app"
	"hotel_gateway/internal/domain"
)

type Handlers struct {
	Rooms    *app.RoomService
	Auth     *app.AuthService
	Blog     *app.BlogService
	Promos   *app.PromotionService
	Reviews  *app.ReviewService
	Bookings *app.BookingService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Get("/v1/rooms", h.listRooms)
	s.mux.Get("/v1/rooms/availability", h.checkAvailability)
	s.mux.Get("/v1/rooms/top", h.topRooms)
	s.mux.Get("/v1/rooms/{id}", h.getRoom)

	s.mux.Get("/v1/promotions", h.listPromotions)

	s.mux.Get("/v1/blog", h.listBlog)
	s.mux.Get("/v1/blog/{slug}", h.getBlogPost)
	s.mux.Post("/v1/blog/{id}/view", h.incrementBlogView)

	s.mux.Get("/v1/reviews", h.listReviews)
	s.mux.Get("/v1/reviews/stats", h.reviewStats)
	s.mux.Get("/v1/reviews/status", h.reviewStatus)
	s.mux.Post("/v1/reviews", h.submitReview)

	s.mux.Post("/v1/auth/login", h.login)
	s.mux.Post("/v1/auth/register", h.register)
	s.mux.Get("/v1/auth/profile", h.profile)
	s.mux.Put("/v1/auth/profile", h.updateProfile)
	s.mux.Get("/v1/auth/loyalty", h.loyalty)

	s.mux.Get("/v1/bookings", h.listBookings)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeUpstreamError maps client-layer failures onto the gateway's
// status codes: an exhausted sweep is a 502 carrying every host's
// failure reason, anything else is a 500.
func writeUpstreamError(w http.ResponseWriter, err error) {
	var sweep *backend.SweepError
	if errors.As(err, &sweep) {
		// When every host rejected the request the same way (e.g. 401
		// on every host), forward that verdict instead of blaming the
		// upstream.
		if status, msg, ok := unanimousStatus(sweep); ok && status >= 400 && status < 500 {
			writeProblem(w, status, http.StatusText(status), msg)
			return
		}
		writeProblem(w, http.StatusBadGateway, "Upstream Unavailable", sweep.Error())
		return
	}
	var httpErr *backend.HTTPError
	if errors.As(err, &httpErr) && httpErr.Status == http.StatusUnauthorized {
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", httpErr.Message)
		return
	}
	writeProblem(w, http.StatusInternalServerError, "Internal Error", err.Error())
}

// unanimousStatus reports the shared status and message when every
// attempt in a sweep failed with the same HTTP status.
func unanimousStatus(sweep *backend.SweepError) (int, string, bool) {
	if len(sweep.Attempts) == 0 {
		return 0, "", false
	}
	status, msg := 0, ""
	for _, a := range sweep.Attempts {
		var he *backend.HTTPError
		if !errors.As(a.Err, &he) {
			return 0, "", false
		}
		if status != 0 && he.Status != status {
			return 0, "", false
		}
		status, msg = he.Status, he.Message
	}
	return status, msg, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON body failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeCachable(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

/********** rooms **********/

func (h *Handlers) listRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.Rooms.ListRooms(r.Context())
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeCachable(w, r, rooms)
}

func (h *Handlers) getRoom(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	room, err := h.Rooms.GetRoom(r.Context(), id)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeCachable(w, r, room)
}

func (h *Handlers) checkAvailability(w http.ResponseWriter, r *http.Request) {
	typeID, err := strconv.ParseInt(r.URL.Query().Get("typeId"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid typeId", "typeId must be a number")
		return
	}
	q := domain.AvailabilityQuery{
		TypeID:   typeID,
		CheckIn:  r.URL.Query().Get("checkIn"),
		CheckOut: r.URL.Query().Get("checkOut"),
	}
	rooms, err := h.Rooms.CheckAvailability(r.Context(), q)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rooms)
}

func (h *Handlers) topRooms(w http.ResponseWriter, r *http.Request) {
	n := 4
	if ls := r.URL.Query().Get("limit"); ls != "" {
		if l, err := strconv.Atoi(ls); err == nil && l > 0 && l <= 20 {
			n = l
		}
	}
	rooms, err := h.Rooms.TopRooms(r.Context(), n)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rooms)
}

/********** promotions **********/

func (h *Handlers) listPromotions(w http.ResponseWriter, r *http.Request) {
	promos := h.Promos.ListPromotions(r.Context())
	if promos == nil {
		promos = []domain.Promotion{}
	}
	writeJSON(w, http.StatusOK, promos)
}

/********** blog **********/

func (h *Handlers) listBlog(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Blog.ListPosts(r.Context())
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeCachable(w, r, posts)
}

func (h *Handlers) getBlogPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.Blog.GetPost(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeCachable(w, r, post)
}

func (h *Handlers) incrementBlogView(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	h.Blog.IncrementView(r.Context(), id)
	w.WriteHeader(http.StatusAccepted)
}

/********** reviews **********/

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	roomID, err := strconv.ParseInt(r.URL.Query().Get("roomId"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid roomId", "roomId must be a number")
		return
	}
	pg := domain.PageQuery{}
	pg.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	pg.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	page, err := h.Reviews.List(r.Context(), roomID, pg)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *Handlers) reviewStats(w http.ResponseWriter, r *http.Request) {
	roomID, err := strconv.ParseInt(r.URL.Query().Get("roomId"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid roomId", "roomId must be a number")
		return
	}
	stats, _ := h.Reviews.Stats(r.Context(), roomID)
	if stats == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handlers) reviewStatus(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(r.URL.Query().Get("bookingId"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid bookingId", "bookingId must be a number")
		return
	}
	reviewed, err := h.Reviews.Status(r.Context(), bookingID)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"reviewed": reviewed})
}

func (h *Handlers) submitReview(w http.ResponseWriter, r *http.Request) {
	var in domain.ReviewInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "body must be JSON")
		return
	}
	if err := h.Reviews.Submit(r.Context(), in); err != nil {
		if errors.Is(err, app.ErrInvalidInput) {
			writeProblem(w, http.StatusBadRequest, "Invalid Review", err.Error())
			return
		}
		writeUpstreamError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

/********** auth **********/

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var creds domain.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "body must be JSON")
		return
	}
	sess, err := h.Auth.Login(r.Context(), creds)
	if err != nil {
		if errors.Is(err, app.ErrInvalidInput) {
			writeProblem(w, http.StatusBadRequest, "Invalid Credentials", err.Error())
			return
		}
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var reg domain.Registration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "body must be JSON")
		return
	}
	sess, err := h.Auth.Register(r.Context(), reg)
	if err != nil {
		if errors.Is(err, app.ErrInvalidInput) {
			writeProblem(w, http.StatusBadRequest, "Invalid Registration", err.Error())
			return
		}
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

func (h *Handlers) profile(w http.ResponseWriter, r *http.Request) {
	acc, err := h.Auth.Profile(r.Context())
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, acc)
}

func (h *Handlers) updateProfile(w http.ResponseWriter, r *http.Request) {
	var acc domain.Account
	if err := json.NewDecoder(r.Body).Decode(&acc); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "body must be JSON")
		return
	}
	out, err := h.Auth.UpdateProfile(r.Context(), acc)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) loyalty(w http.ResponseWriter, r *http.Request) {
	l, _ := h.Auth.Loyalty(r.Context())
	if l == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

/********** bookings **********/

func (h *Handlers) listBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Bookings.History(r.Context())
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}
