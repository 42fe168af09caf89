package rest

import (
	"net/http"

	"github.com/dmitrijs2005/alumni/internal/server/auth"
	"github.com/dmitrijs2005/alumni/internal/server/services"
)

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if err := decodeJSON(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}

	u, err := h.users.Register(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.logger.Info(r.Context(), "user registered", "user_id", u.ID, "graduation_class", u.GraduationClass)
	writeOK(w, services.MsgRegistered, envelope{"user": toRegisteredUser(u)})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	res, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.setSessionCookie(w, res.Token, res.ExpiresAt)
	writeOK(w, services.MsgLoggedIn, envelope{"user": toSessionUser(res.User)})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if id, ok := auth.IdentityFromContext(r.Context()); ok {
		if err := h.users.Logout(r.Context(), id.SessionID); err != nil {
			h.writeError(w, r, err)
			return
		}
	}

	h.clearSessionCookie(w)
	writeOK(w, services.MsgLoggedOut, nil)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.CurrentUser(r.Context(), callerID(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeOK(w, "", envelope{"user": currentUser{sessionUser: toSessionUser(u), Status: u.Status}})
}
