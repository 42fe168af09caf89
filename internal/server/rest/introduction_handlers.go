package rest

import (
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/alumni/internal/server/models"
	"github.com/dmitrijs2005/alumni/internal/server/services"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) ListIntroductions(w http.ResponseWriter, r *http.Request) {
	q := services.ListQuery{Query: r.URL.Query().Get("q")}
	if raw := r.URL.Query().Get("graduationClass"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeFailure(w, http.StatusBadRequest, services.MsgInvalidGraduationClass)
			return
		}
		q.GraduationClass = &n
	}

	list, err := h.intros.List(r.Context(), q)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeOK(w, "", envelope{"introductions": nonNil(list)})
}

func (h *Handler) IntroductionOptions(w http.ResponseWriter, r *http.Request) {
	writeOK(w, "", envelope{
		"statusOptions":            models.StatusOptions,
		"lookingForOptions":        models.LookingForOptions,
		"contactPreferenceOptions": models.ContactPreferenceOptions,
	})
}

func (h *Handler) GetIntroduction(w http.ResponseWriter, r *http.Request) {
	in, err := h.intros.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeOK(w, "", envelope{"introduction": in})
}

func (h *Handler) CreateIntroduction(w http.ResponseWriter, r *http.Request) {
	userID := callerID(r)
	if userID == "" {
		writeFailure(w, http.StatusUnauthorized, services.MsgLoginRequired)
		return
	}

	var form models.IntroductionPatch
	if err := decodeJSON(r, &form); err != nil {
		// Access errors outrank a malformed body.
		if cerr := h.intros.CheckCreate(r.Context(), userID); cerr != nil {
			err = cerr
		}
		h.writeError(w, r, err)
		return
	}

	in, err := h.intros.Create(r.Context(), userID, &form)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeOK(w, services.MsgIntroCreated, envelope{"introduction": in})
}

func (h *Handler) UpdateIntroduction(w http.ResponseWriter, r *http.Request) {
	userID := callerID(r)
	if userID == "" {
		writeFailure(w, http.StatusUnauthorized, services.MsgLoginRequired)
		return
	}

	id := chi.URLParam(r, "id")
	var form models.IntroductionPatch
	if err := decodeJSON(r, &form); err != nil {
		if cerr := h.intros.CheckUpdate(r.Context(), userID, id); cerr != nil {
			err = cerr
		}
		h.writeError(w, r, err)
		return
	}

	in, err := h.intros.Update(r.Context(), userID, id, &form)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeOK(w, services.MsgIntroUpdated, envelope{"introduction": in})
}

func (h *Handler) DeleteIntroduction(w http.ResponseWriter, r *http.Request) {
	userID := callerID(r)
	if userID == "" {
		writeFailure(w, http.StatusUnauthorized, services.MsgLoginRequired)
		return
	}

	if err := h.intros.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeOK(w, services.MsgIntroDeleted, nil)
}
