package rest

import (
	"net/http"

	"github.com/dmitrijs2005/alumni/internal/server/services"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) PendingUsers(w http.ResponseWriter, r *http.Request) {
	list, err := h.users.ListPending(r.Context(), callerID(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeOK(w, "", envelope{"users": toPendingUsers(list)})
}

func (h *Handler) ApproveUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.Approve(r.Context(), callerID(r), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.logger.Info(r.Context(), "user approved", "user_id", u.ID, "admin_id", callerID(r))
	writeOK(w, services.MsgUserApproved, envelope{"user": toRegisteredUser(u)})
}

func (h *Handler) RejectUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.Reject(r.Context(), callerID(r), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.logger.Info(r.Context(), "user rejected", "user_id", u.ID, "admin_id", callerID(r))
	writeOK(w, services.MsgUserRejected, envelope{"user": toRegisteredUser(u)})
}
