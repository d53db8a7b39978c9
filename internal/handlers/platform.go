package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/semla/internal/app"
	"github.com/shrimpsizemoose/semla/internal/auth"
	"github.com/shrimpsizemoose/semla/internal/catalog"
	"github.com/shrimpsizemoose/semla/internal/metrics"
	"github.com/shrimpsizemoose/semla/internal/models"
	"github.com/shrimpsizemoose/semla/internal/protection"
	"github.com/shrimpsizemoose/semla/internal/stats"
)

type PlatformHandler struct {
	service *app.Service
}

func NewPlatformHandler(service *app.Service) *PlatformHandler {
	return &PlatformHandler{
		service: service,
	}
}

func (h *PlatformHandler) observe(path, method, status string, start time.Time) {
	metrics.APIRequestDuration.WithLabelValues(path, method, status).Observe(time.Since(start).Seconds())
}

// requireView refuses the request unless the gate currently routes the
// session to the wanted panel. The refusal is deliberately generic.
func (h *PlatformHandler) requireView(w http.ResponseWriter, want auth.View) bool {
	view, ok := h.service.CurrentView()
	if !ok || view != want {
		http.Error(w, "these are not the droids you are looking for", http.StatusForbidden)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error.Printf("Failed to encode response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func (h *PlatformHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer h.observe(r.URL.Path, r.Method, "200", start)

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	account, view, err := h.service.Login(req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		// one generic message regardless of which field was wrong
		http.Error(w, "invalid username or password", http.StatusUnauthorized)
		return
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	writeJSON(w, map[string]any{
		"account": account,
		"view":    view,
	})
}

func (h *PlatformHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.service.Logout()
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *PlatformHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	view, ok := h.service.CurrentView()
	if !ok {
		http.Error(w, "no active session", http.StatusUnauthorized)
		return
	}
	writeJSON(w, map[string]any{
		"view":     view,
		"obscured": h.service.Protection.Obscured(),
	})
}

func (h *PlatformHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer h.observe(r.URL.Path, r.Method, "200", start)

	var req struct {
		Name     string `json:"name"`
		Username string `json:"username"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	role, err := models.ParseRole(req.Role)
	if err != nil {
		http.Error(w, "Invalid role", http.StatusBadRequest)
		return
	}

	account, err := h.service.Register(req.Name, req.Username, req.Password, role)
	if err != nil {
		logger.Error.Printf("Registration failed: %v", err)
		http.Error(w, "Invalid registration data", http.StatusBadRequest)
		return
	}
	metrics.RegistrationsTotal.WithLabelValues(string(role)).Inc()

	writeJSON(w, account)
}

func (h *PlatformHandler) HandleListAccounts(w http.ResponseWriter, r *http.Request) {
	if !h.requireView(w, auth.ViewAdmin) {
		return
	}
	writeJSON(w, map[string]any{"rows": h.service.Snapshot().Accounts})
}

func (h *PlatformHandler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	if !h.requireView(w, auth.ViewAdmin) {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		http.Error(w, "Invalid account id", http.StatusBadRequest)
		return
	}

	if err := h.service.Approve(id); err != nil {
		logger.Error.Printf("Approve failed: %v", err)
		http.Error(w, "Failed to approve account", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *PlatformHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	if !h.requireView(w, auth.ViewAdmin) {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		http.Error(w, "Invalid account id", http.StatusBadRequest)
		return
	}

	if err := h.service.Remove(id); err != nil {
		logger.Error.Printf("Remove failed: %v", err)
		http.Error(w, "Failed to remove account", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *PlatformHandler) HandlePublish(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer h.observe(r.URL.Path, r.Method, "200", start)

	if !h.requireView(w, auth.ViewTeacher) {
		return
	}

	var req struct {
		Title    string `json:"title"`
		VideoURL string `json:"videoUrl"`
		PDFURL   string `json:"pdfUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	teacher := h.service.Session.Account()
	course, err := h.service.Publish(teacher.ID, req.Title, req.VideoURL, req.PDFURL)
	if err != nil {
		metrics.CourseEventsTotal.WithLabelValues("publish", "failure").Inc()
		logger.Error.Printf("Publish failed: %v", err)
		http.Error(w, "Failed to publish course", http.StatusBadRequest)
		return
	}
	metrics.CourseEventsTotal.WithLabelValues("publish", "success").Inc()

	writeJSON(w, course)
}

func (h *PlatformHandler) HandleUnpublish(w http.ResponseWriter, r *http.Request) {
	if !h.requireView(w, auth.ViewTeacher) {
		return
	}

	// owner id comes from the session, never from the request
	teacher := h.service.Session.Account()
	if err := h.service.Unpublish(r.PathValue("id"), teacher.ID); err != nil {
		metrics.CourseEventsTotal.WithLabelValues("unpublish", "failure").Inc()
		logger.Error.Printf("Unpublish failed: %v", err)
		http.Error(w, "Failed to remove course", http.StatusForbidden)
		return
	}
	metrics.CourseEventsTotal.WithLabelValues("unpublish", "success").Inc()
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *PlatformHandler) HandleListCourses(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"rows": h.service.Snapshot().Courses})
}

func (h *PlatformHandler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer h.observe(r.URL.Path, r.Method, "200", start)

	if !h.requireView(w, auth.ViewStudent) {
		return
	}

	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	course, err := h.service.Enroll(req.Code)
	if err != nil {
		metrics.CourseEventsTotal.WithLabelValues("enroll", "failure").Inc()
		if errors.Is(err, catalog.ErrCourseNotFound) {
			http.Error(w, "no course with that code", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to join course", http.StatusInternalServerError)
		return
	}
	metrics.CourseEventsTotal.WithLabelValues("enroll", "success").Inc()

	writeJSON(w, course)
}

func (h *PlatformHandler) HandleListResults(w http.ResponseWriter, r *http.Request) {
	if !h.requireView(w, auth.ViewAdmin) {
		return
	}
	writeJSON(w, map[string]any{"rows": h.service.Snapshot().Results})
}

func (h *PlatformHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if !h.requireView(w, auth.ViewAdmin) {
		return
	}
	snap := h.service.Snapshot()
	writeJSON(w, map[string]any{
		"roster":  stats.ForRoster(snap),
		"courses": stats.CourseAverages(snap),
	})
}

// HandleProtectionKey answers whether the reported key press must be
// swallowed by the rendering surface.
func (h *PlatformHandler) HandleProtectionKey(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key  string `json:"key"`
		Ctrl bool   `json:"ctrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]any{
		"suppress": h.service.Protection.SuppressKey(protection.KeyEvent{Key: req.Key, Ctrl: req.Ctrl}),
	})
}

// HandleProtectionVisibility records a visibility transition and
// reports whether content must be obscured.
func (h *PlatformHandler) HandleProtectionVisibility(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Hidden bool `json:"hidden"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	h.service.Protection.SetHidden(req.Hidden)
	writeJSON(w, map[string]any{
		"obscured": h.service.Protection.Obscured(),
	})
}
