package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Simplici0/baogia/internal/catalog"
)

var errDraftNotFound = errors.New("draft not found")

// draftRegistry holds the open catalog edit sessions by id. The registry lock
// only guards the map; each draft has its own lock so a slow commit of one
// draft never blocks edits to another.
type draftRegistry struct {
	mu     sync.Mutex
	drafts map[string]*draft
}

type draft struct {
	mu   sync.Mutex
	sess *catalog.Session
}

func newDraftRegistry() *draftRegistry {
	return &draftRegistry{drafts: make(map[string]*draft)}
}

func (d *draftRegistry) create(base catalog.Catalog) (string, catalog.Catalog) {
	id := uuid.NewString()
	sess := catalog.NewSession(base)

	d.mu.Lock()
	d.drafts[id] = &draft{sess: sess}
	d.mu.Unlock()
	return id, sess.Draft()
}

func (d *draftRegistry) get(id string) (*draft, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	dr, ok := d.drafts[id]
	return dr, ok
}

// with runs fn on the session under that draft's lock and returns the
// resulting draft.
func (d *draftRegistry) with(id string, fn func(*catalog.Session) error) (catalog.Catalog, error) {
	dr, ok := d.get(id)
	if !ok {
		return catalog.Catalog{}, errDraftNotFound
	}

	dr.mu.Lock()
	defer dr.mu.Unlock()
	if err := fn(dr.sess); err != nil {
		return dr.sess.Draft(), err
	}
	return dr.sess.Draft(), nil
}

func (d *draftRegistry) remove(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.drafts[id]; !ok {
		return false
	}
	delete(d.drafts, id)
	return true
}

type draftResponse struct {
	ID    string          `json:"id"`
	Index *int            `json:"index,omitempty"`
	Draft catalog.Catalog `json:"draft"`
}

type draftUpdateRequest struct {
	Field catalog.Field   `json:"field"`
	Value json.RawMessage `json:"value"`
}

// text returns the value as entered: strings unquoted, numbers verbatim.
func (u draftUpdateRequest) text() string {
	var s string
	if err := json.Unmarshal(u.Value, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(u.Value))
}

func (s *server) handleDraftCreate(w http.ResponseWriter, r *http.Request) {
	id, draft := s.drafts.create(s.catalog.Holder().Snapshot())
	writeJSON(w, http.StatusCreated, draftResponse{ID: id, Draft: draft})
}

func (s *server) handleDraftGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	draft, err := s.drafts.with(id, func(*catalog.Session) error { return nil })
	if err != nil {
		writeDraftError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draftResponse{ID: id, Draft: draft})
}

func (s *server) handleDraftAdd(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	d, c := draftSection(r)

	var index int
	draft, err := s.drafts.with(id, func(sess *catalog.Session) error {
		var err error
		index, err = sess.Add(d, c)
		return err
	})
	if err != nil {
		writeDraftError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, draftResponse{ID: id, Index: &index, Draft: draft})
}

func (s *server) handleDraftUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	d, c := draftSection(r)
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item index")
		return
	}

	var req draftUpdateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid update json")
		return
	}

	draft, err := s.drafts.with(id, func(sess *catalog.Session) error {
		return sess.SetField(d, c, index, req.Field, req.text())
	})
	if err != nil {
		writeDraftError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draftResponse{ID: id, Draft: draft})
}

func (s *server) handleDraftRemove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	d, c := draftSection(r)
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item index")
		return
	}

	draft, err := s.drafts.with(id, func(sess *catalog.Session) error {
		return sess.Remove(d, c, index)
	})
	if err != nil {
		writeDraftError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draftResponse{ID: id, Draft: draft})
}

// handleDraftCommit saves the draft as the new catalog. A failed save keeps the
// draft open for another attempt.
func (s *server) handleDraftCommit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var saveErr error
	_, err := s.drafts.with(id, func(sess *catalog.Session) error {
		saveErr = sess.Commit(r.Context(), s.catalog)
		return nil
	})
	if err != nil {
		writeDraftError(w, err)
		return
	}
	if !s.recordSave(w, saveErr) {
		return
	}

	s.drafts.remove(id)
	writeJSON(w, http.StatusOK, s.catalog.Holder().Snapshot())
}

func (s *server) handleDraftAbort(w http.ResponseWriter, r *http.Request) {
	if !s.drafts.remove(chi.URLParam(r, "id")) {
		writeDraftError(w, errDraftNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func draftSection(r *http.Request) (catalog.Domain, catalog.Category) {
	return catalog.Domain(chi.URLParam(r, "domain")), catalog.Category(chi.URLParam(r, "category"))
}

func writeDraftError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errDraftNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, catalog.ErrUnknownCategory):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, catalog.ErrIndexOutOfRange):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusBadRequest, err.Error())
	}
}
