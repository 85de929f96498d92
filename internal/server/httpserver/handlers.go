// Package httpserver is the HTTP surface of simpledb: a chi router over thin
// JSON handlers. Handlers decode, validate presence of required fields, call
// a service, and translate the outcome; no business rules live here.
package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/avolkov3/simpledb/internal/common"
	"github.com/avolkov3/simpledb/internal/logging"
	"github.com/avolkov3/simpledb/internal/server/models"
	"github.com/avolkov3/simpledb/internal/server/repositories/entries"
)

// UserService is the account and authentication surface the handlers need.
type UserService interface {
	CreateAccount(ctx context.Context, username string, email string) error
	Activate(ctx context.Context, username string, tempPassword string, newPassword string) error
	ForgotUsername(ctx context.Context, email string) error
	ForgotPassword(ctx context.Context, email string) error
	Login(ctx context.Context, username string, password string) (string, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
	DeleteAccount(ctx context.Context, username string) error
}

// EntryService is the per-user storage surface the handlers need.
type EntryService interface {
	Insert(ctx context.Context, owner string, searchKey string, payload string) error
	Select(ctx context.Context, owner string, searchKey string, f entries.Filter) ([]*models.Entry, error)
	Update(ctx context.Context, owner string, searchKey string, payload string) (bool, error)
	Delete(ctx context.Context, owner string, searchKey string) (bool, error)
}

type Handlers struct {
	users   UserService
	entries EntryService
	logger  logging.Logger
}

func NewHandlers(users UserService, entries EntryService, logger logging.Logger) *Handlers {
	return &Handlers{
		users:   users,
		entries: entries,
		logger:  logger.With("module", "http"),
	}
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func (h *Handlers) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := decode(r, &req); err != nil || req.Username == "" || req.Email == "" {
		writeError(w, http.StatusBadRequest, "username and email are required")
		return
	}

	if err := h.users.CreateAccount(r.Context(), req.Username, req.Email); err != nil {
		h.serviceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{
		Message: "successfully created account " + req.Username + ", check your email for temporary password",
	})
}

func (h *Handlers) ValidateAndCreatePassword(w http.ResponseWriter, r *http.Request) {
	var req validateAccountRequest
	if err := decode(r, &req); err != nil || req.Username == "" || req.TempPassword == "" || req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "username, temp_password and new_password are required")
		return
	}

	if err := h.users.Activate(r.Context(), req.Username, req.TempPassword, req.NewPassword); err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeError(w, http.StatusUnauthorized, "Incorrect password")
			return
		}
		h.serviceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{
		Message: "your account has been activated and your password reset",
	})
}

func (h *Handlers) ForgotUsername(w http.ResponseWriter, r *http.Request) {
	var req forgotUsernameRequest
	if err := decode(r, &req); err != nil || req.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	if err := h.users.ForgotUsername(r.Context(), req.Email); err != nil {
		h.serviceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{
		Message: "email with your username was sent to " + req.Email,
	})
}

func (h *Handlers) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := decode(r, &req); err != nil || req.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	if err := h.users.ForgotPassword(r.Context(), req.Email); err != nil {
		h.serviceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{
		Message: "email with your new temporary password was sent to " + req.Email,
	})
}

// issueToken is the shared core of the two login endpoints.
func (h *Handlers) issueToken(w http.ResponseWriter, r *http.Request, username string, password string) {
	if username == "" || password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	token, err := h.users.Login(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeError(w, http.StatusUnauthorized, "Incorrect username or password")
			return
		}
		h.serviceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Token implements the form-encoded OAuth2 password flow shape.
func (h *Handlers) Token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "malformed form body")
		return
	}
	h.issueToken(w, r, r.PostFormValue("username"), r.PostFormValue("password"))
}

// GetSessionToken is the query-parameter variant of Token.
func (h *Handlers) GetSessionToken(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.issueToken(w, r, q.Get("username"), q.Get("password"))
}

func (h *Handlers) UsersMe(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	writeJSON(w, http.StatusOK, userResponse{
		Username:    user.Username,
		Email:       user.Email,
		IsValidated: user.IsValidated,
	})
}

func (h *Handlers) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	if err := h.users.DeleteAccount(r.Context(), user.Username); err != nil {
		h.serviceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{
		Message: "successfully deleted account " + user.Username,
	})
}

func (h *Handlers) InsertData(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req insertRequest
	if err := decode(r, &req); err != nil || req.SearchKey == "" {
		writeError(w, http.StatusBadRequest, "search_key is required")
		return
	}

	if err := h.entries.Insert(r.Context(), user.Username, req.SearchKey, req.Data); err != nil {
		h.serviceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "successful insert"})
}

func (h *Handlers) SelectData(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req selectRequest
	if err := decode(r, &req); err != nil || req.SearchKey == "" {
		writeError(w, http.StatusBadRequest, "search_key is required")
		return
	}

	filter := entries.Filter{
		CreatedOn:     req.CreatedDate,
		CreatedBefore: req.CreatedDateIsBefore,
		CreatedAfter:  req.CreatedDateIsAfter,
	}

	found, err := h.entries.Select(r.Context(), user.Username, req.SearchKey, filter)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	results := make([]selectResult, 0, len(found))
	for _, entry := range found {
		results = append(results, selectResult{
			CreatedAt: entry.CreatedAt.Format(common.DateLayout),
			Data:      payloadJSON(entry.Payload),
		})
	}
	writeJSON(w, http.StatusOK, selectResponse{Results: results})
}

func (h *Handlers) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req updateRequest
	if err := decode(r, &req); err != nil || req.SearchKey == "" {
		writeError(w, http.StatusBadRequest, "search_key is required")
		return
	}

	updated, err := h.entries.Update(r.Context(), user.Username, req.SearchKey, req.NewEntry)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	msg := fmt.Sprintf("no entries found under search_key %s", req.SearchKey)
	if updated {
		msg = fmt.Sprintf("successfully updated entries under search_key %s", req.SearchKey)
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: msg})
}

func (h *Handlers) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req deleteRequest
	if err := decode(r, &req); err != nil || req.SearchKey == "" {
		writeError(w, http.StatusBadRequest, "search_key is required")
		return
	}

	deleted, err := h.entries.Delete(r.Context(), user.Username, req.SearchKey)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	msg := fmt.Sprintf("no entries found under search_key %s", req.SearchKey)
	if deleted {
		msg = fmt.Sprintf("successfully deleted entries under search_key %s", req.SearchKey)
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: msg})
}
