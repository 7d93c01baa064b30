package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/quote.works/internal/ledger"
	"github.com/Simplici0/quote.works/internal/quote"
)

type valueRequest struct {
	Value string `json:"value"`
}

type itemEditRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type itemResponse struct {
	Item     *ledger.LineItem `json:"item,omitempty"`
	Found    bool             `json:"found"`
	Snapshot quote.Snapshot   `json:"snapshot"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "sessions": s.store.Len()})
}

func (s *server) handleQuoteStart(w http.ResponseWriter, r *http.Request) {
	if id, ok := s.cookies.sessionID(r); ok {
		s.store.Delete(id)
	}

	session := s.store.Create()
	s.cookies.set(w, session.ID)
	writeJSON(w, http.StatusCreated, session.Snapshot())
}

func (s *server) handleQuoteGet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionFrom(r).Snapshot())
}

func (s *server) handleQuoteDiscard(w http.ResponseWriter, r *http.Request) {
	s.store.Delete(sessionFrom(r).ID)
	s.cookies.clear(w)
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleItemAdd(w http.ResponseWriter, r *http.Request) {
	category, err := ledger.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, snap, err := sessionFrom(r).AddItem(category)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, itemResponse{Item: &item, Found: true, Snapshot: snap})
}

func (s *server) handleItemEdit(w http.ResponseWriter, r *http.Request) {
	category, err := ledger.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req itemEditRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	field, err := ledger.ParseItemField(req.Field)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	snap, found, err := sessionFrom(r).EditItem(category, chi.URLParam(r, "id"), field, req.Value)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, itemResponse{Found: found, Snapshot: snap})
}

func (s *server) handleItemRemove(w http.ResponseWriter, r *http.Request) {
	category, err := ledger.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	snap, found, err := sessionFrom(r).RemoveItem(category, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, itemResponse{Found: found, Snapshot: snap})
}

func (s *server) handleServiceSet(w http.ResponseWriter, r *http.Request) {
	field, err := quote.ParseServiceField(chi.URLParam(r, "field"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req valueRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	snap, err := sessionFrom(r).SetServiceInput(field, req.Value)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *server) handlePricingSet(w http.ResponseWriter, r *http.Request) {
	field, err := quote.ParsePricingField(chi.URLParam(r, "field"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req valueRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	snap, err := sessionFrom(r).SetPricingParameter(field, req.Value)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

const maxBodyBytes = 1 << 16

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid JSON body: values must be strings")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
