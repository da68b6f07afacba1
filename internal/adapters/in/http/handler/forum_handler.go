package handler

import (
	"net/http"
	"strings"

	"straightenup/internal/adapters/in/http/middleware"
	usecase "straightenup/internal/application/usecase"
)

// ForumHandler serves the community forum for signed-in users.
//
//	GET  /mall/forum/categories
//	GET  /mall/forum/topics              ?category=
//	POST /mall/forum/topics              {categoryId,title,content}
//	GET  /mall/forum/topics/{id}         topic + visible replies
//	POST /mall/forum/topics/{id}/replies {content}
type ForumHandler struct {
	uc *usecase.ForumUsecase
}

func NewForumHandler(uc *usecase.ForumUsecase) http.Handler {
	return &ForumHandler{uc: uc}
}

func (h *ForumHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "forum handler is not configured")
		return
	}
	p, ok := middleware.CurrentProfile(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	path := strings.TrimRight(r.URL.Path, "/")

	switch {
	case strings.HasSuffix(path, "/forum/categories") && r.Method == http.MethodGet:
		cats, err := h.uc.ListCategories(r.Context())
		if err != nil {
			writeUsecaseErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"categories": cats})

	case strings.HasSuffix(path, "/forum/topics") && r.Method == http.MethodGet:
		topics, err := h.uc.ListTopics(r.Context(), r.URL.Query().Get("category"), false)
		if err != nil {
			writeUsecaseErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"topics": topics})

	case strings.HasSuffix(path, "/forum/topics") && r.Method == http.MethodPost:
		var req struct {
			CategoryID string `json:"categoryId"`
			Title      string `json:"title"`
			Content    string `json:"content"`
		}
		if err := readJSON(r, &req); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid json body")
			return
		}
		topic, err := h.uc.CreateTopic(r.Context(), req.CategoryID, p.ID, p.FullName, req.Title, req.Content)
		if err != nil {
			writeUsecaseErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, topic)

	case strings.HasSuffix(path, "/replies") && r.Method == http.MethodPost:
		topicID := lastSegment(strings.TrimSuffix(path, "/replies"), "/forum/topics")
		var req struct {
			Content string `json:"content"`
		}
		if err := readJSON(r, &req); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid json body")
			return
		}
		reply, err := h.uc.CreateReply(r.Context(), topicID, p.ID, p.FullName, req.Content)
		if err != nil {
			writeUsecaseErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, reply)

	case strings.Contains(path, "/forum/topics/") && r.Method == http.MethodGet:
		id := lastSegment(path, "/forum/topics")
		topic, replies, err := h.uc.GetTopic(r.Context(), id)
		if err != nil {
			writeUsecaseErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"topic": topic, "replies": replies})

	default:
		notFound(w)
	}
}

// AdminForumHandler serves moderation endpoints.
//
//	GET  /admin/forum/topics                  ?category= (hidden included)
//	POST /admin/forum/categories              {id?,name,description}
//	POST /admin/forum/topics/{id}/pin         {"pinned":bool}
//	POST /admin/forum/topics/{id}/lock        {"locked":bool}
//	POST /admin/forum/topics/{id}/moderate    {"reason":...}
//	POST /admin/forum/replies/{id}/moderate   {"reason":...}
//	POST /admin/forum/replies/{id}/solution
type AdminForumHandler struct {
	uc *usecase.ForumUsecase
}

func NewAdminForumHandler(uc *usecase.ForumUsecase) http.Handler {
	return &AdminForumHandler{uc: uc}
}

func (h *AdminForumHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "forum handler is not configured")
		return
	}

	path := strings.TrimRight(r.URL.Path, "/")

	if r.Method == http.MethodGet && strings.HasSuffix(path, "/forum/topics") {
		topics, err := h.uc.ListTopics(r.Context(), r.URL.Query().Get("category"), true)
		if err != nil {
			writeUsecaseErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"topics": topics})
		return
	}
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	switch {
	case strings.HasSuffix(path, "/forum/categories"):
		var req struct {
			ID          string `json:"id"`
			Name        string `json:"name"`
			Description string `json:"description"`
		}
		if err := readJSON(r, &req); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid json body")
			return
		}
		c, err := h.uc.UpsertCategory(r.Context(), req.ID, req.Name, req.Description)
		if err != nil {
			writeUsecaseErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, c)

	case strings.HasSuffix(path, "/pin"):
		id := lastSegment(strings.TrimSuffix(path, "/pin"), "/forum/topics")
		var req struct {
			Pinned bool `json:"pinned"`
		}
		if err := readJSON(r, &req); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid json body")
			return
		}
		h.done(w, h.uc.SetPinned(r.Context(), id, req.Pinned))

	case strings.HasSuffix(path, "/lock"):
		id := lastSegment(strings.TrimSuffix(path, "/lock"), "/forum/topics")
		var req struct {
			Locked bool `json:"locked"`
		}
		if err := readJSON(r, &req); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid json body")
			return
		}
		h.done(w, h.uc.SetLocked(r.Context(), id, req.Locked))

	case strings.Contains(path, "/forum/topics/") && strings.HasSuffix(path, "/moderate"):
		id := lastSegment(strings.TrimSuffix(path, "/moderate"), "/forum/topics")
		h.done(w, h.uc.ModerateTopic(r.Context(), id, readReason(r)))

	case strings.Contains(path, "/forum/replies/") && strings.HasSuffix(path, "/moderate"):
		id := lastSegment(strings.TrimSuffix(path, "/moderate"), "/forum/replies")
		h.done(w, h.uc.ModerateReply(r.Context(), id, readReason(r)))

	case strings.HasSuffix(path, "/solution"):
		id := lastSegment(strings.TrimSuffix(path, "/solution"), "/forum/replies")
		h.done(w, h.uc.MarkSolution(r.Context(), id))

	default:
		notFound(w)
	}
}

func (h *AdminForumHandler) done(w http.ResponseWriter, err error) {
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func readReason(r *http.Request) string {
	var req struct {
		Reason string `json:"reason"`
	}
	if err := readJSON(r, &req); err != nil {
		return ""
	}
	return req.Reason
}
