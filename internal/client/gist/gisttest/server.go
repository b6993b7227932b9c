// Package gisttest provides an in-memory gist API for tests.
package gisttest

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/iudanet/novelsync/pkg/api"
)

// Call is a request recorded by the server.
type Call struct {
	Method string
	Path   string
	Files  map[string]api.FileChange
}

// FailFunc lets a test fail a request. A non-zero status is returned
// instead of handling the request.
type FailFunc func(call Call, n int) int

type revision struct {
	at      time.Time
	files   map[string]string
	version string
}

type gist struct {
	files     map[string]string
	revisions []revision
}

// Server is a fake of the gist endpoints used by the client.
type Server struct {
	*httptest.Server

	mu    sync.Mutex
	gists map[string]*gist
	calls []Call
	seq   int

	// TruncateAbove returns files larger than this many bytes without
	// inline content. Zero disables truncation.
	TruncateAbove int
	// BrokenRaw makes raw content downloads fail.
	BrokenRaw bool
	// Fail is consulted before each request.
	Fail FailFunc
}

// NewServer starts a fake gist API. It is closed with t.Cleanup by the caller.
func NewServer() *Server {
	s := &Server{gists: make(map[string]*gist)}

	r := mux.NewRouter()
	r.HandleFunc("/gists", s.create).Methods(http.MethodPost)
	r.HandleFunc("/gists/{id}", s.get).Methods(http.MethodGet)
	r.HandleFunc("/gists/{id}", s.update).Methods(http.MethodPatch)
	r.HandleFunc("/gists/{id}", s.remove).Methods(http.MethodDelete)
	r.HandleFunc("/gists/{id}/commits", s.commits).Methods(http.MethodGet)
	r.HandleFunc("/gists/{id}/{version}", s.getRevision).Methods(http.MethodGet)
	r.HandleFunc("/raw/{id}/{version}/{name}", s.raw).Methods(http.MethodGet)
	r.Use(s.record)

	s.Server = httptest.NewServer(r)
	return s
}

// Seed stores files under id as a new revision.
func (s *Server) Seed(id string, files map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.gists[id]
	if !ok {
		g = &gist{files: map[string]string{}}
		s.gists[id] = g
	}
	for name, content := range files {
		g.files[name] = content
	}
	s.commit(g)
}

// Files returns a copy of the current files of a gist.
func (s *Server) Files(id string) map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.gists[id]
	if !ok {
		return nil
	}
	out := make(map[string]string, len(g.files))
	for k, v := range g.files {
		out[k] = v
	}
	return out
}

// Drop removes a gist, simulating a deletion by another device.
func (s *Server) Drop(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.gists, id)
}

// IDs returns the ids of all stored gists.
func (s *Server) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.gists))
	for id := range s.gists {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Calls returns the recorded requests.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// CallsOf returns the recorded requests with the given method.
func (s *Server) CallsOf(method string) []Call {
	var out []Call
	for _, c := range s.Calls() {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// ResetCalls clears the request log.
func (s *Server) ResetCalls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call := Call{Method: r.Method, Path: r.URL.Path}
		if r.Method == http.MethodPost || r.Method == http.MethodPatch {
			var req api.GistRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, "Problems parsing JSON")
				return
			}
			call.Files = req.Files
			r = r.WithContext(withRequest(r.Context(), &req))
		}

		s.mu.Lock()
		s.calls = append(s.calls, call)
		n := len(s.calls)
		fail := s.Fail
		s.mu.Unlock()

		if fail != nil {
			if status := fail(call, n); status != 0 {
				writeError(w, status, http.StatusText(status))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	req := requestFrom(r.Context())
	if len(req.Files) == 0 {
		writeError(w, http.StatusUnprocessableEntity, "Validation Failed")
		return
	}

	s.mu.Lock()
	s.seq++
	id := fmt.Sprintf("%020x", s.seq)
	g := &gist{files: map[string]string{}}
	for name, fc := range req.Files {
		if !fc.IsDelete() {
			g.files[name] = fc.Content()
		}
	}
	s.commit(g)
	s.gists[id] = g
	resp := s.render(id, g, g.files, "")
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.gists[id]
	if !ok {
		writeError(w, http.StatusNotFound, "Not Found")
		return
	}
	writeJSON(w, http.StatusOK, s.render(id, g, g.files, ""))
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	req := requestFrom(r.Context())

	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.gists[id]
	if !ok {
		writeError(w, http.StatusNotFound, "Not Found")
		return
	}
	for name, fc := range req.Files {
		if fc.IsDelete() {
			delete(g.files, name)
			continue
		}
		g.files[name] = fc.Content()
	}
	s.commit(g)
	writeJSON(w, http.StatusOK, s.render(id, g, g.files, ""))
}

func (s *Server) remove(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.gists[id]; !ok {
		writeError(w, http.StatusNotFound, "Not Found")
		return
	}
	delete(s.gists, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) commits(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.gists[id]
	if !ok {
		writeError(w, http.StatusNotFound, "Not Found")
		return
	}
	revs := make([]api.Revision, 0, len(g.revisions))
	for i := len(g.revisions) - 1; i >= 0; i-- {
		rev := g.revisions[i]
		revs = append(revs, api.Revision{
			Version:      rev.version,
			CommittedAt:  rev.at,
			ChangeStatus: api.ChangeStatus{Total: len(rev.files)},
		})
	}
	writeJSON(w, http.StatusOK, revs)
}

func (s *Server) getRevision(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.gists[vars["id"]]
	if !ok {
		writeError(w, http.StatusNotFound, "Not Found")
		return
	}
	for _, rev := range g.revisions {
		if rev.version == vars["version"] {
			writeJSON(w, http.StatusOK, s.render(vars["id"], g, rev.files, rev.version))
			return
		}
	}
	writeError(w, http.StatusNotFound, "Not Found")
}

func (s *Server) raw(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.BrokenRaw {
		writeError(w, http.StatusInternalServerError, "raw unavailable")
		return
	}
	g, ok := s.gists[vars["id"]]
	if !ok {
		writeError(w, http.StatusNotFound, "Not Found")
		return
	}
	files := g.files
	for _, rev := range g.revisions {
		if rev.version == vars["version"] {
			files = rev.files
		}
	}
	content, ok := files[vars["name"]]
	if !ok {
		writeError(w, http.StatusNotFound, "Not Found")
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte(content))
}

// commit records the current files as a revision. Caller holds mu.
func (s *Server) commit(g *gist) {
	snapshot := make(map[string]string, len(g.files))
	h := sha1.New()
	names := make([]string, 0, len(g.files))
	for name, content := range g.files {
		snapshot[name] = content
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		h.Write([]byte(name))
		h.Write([]byte(g.files[name]))
	}
	fmt.Fprintf(h, "%d", len(g.revisions))
	g.revisions = append(g.revisions, revision{
		version: hex.EncodeToString(h.Sum(nil)),
		files:   snapshot,
		at:      time.Now().UTC().Add(time.Duration(len(g.revisions)) * time.Second),
	})
}

// render builds the API representation. Caller holds mu.
func (s *Server) render(id string, g *gist, files map[string]string, version string) api.Gist {
	if version == "" && len(g.revisions) > 0 {
		version = g.revisions[len(g.revisions)-1].version
	}
	out := api.Gist{
		ID:          id,
		Description: "novelsync library backup",
		Files:       make(map[string]*api.GistFile, len(files)),
	}
	for name, content := range files {
		f := &api.GistFile{
			Filename: name,
			Type:     "application/json",
			Size:     len(content),
			RawURL:   fmt.Sprintf("%s/raw/%s/%s/%s", s.URL, id, version, name),
		}
		if s.TruncateAbove > 0 && len(content) > s.TruncateAbove {
			f.Truncated = true
		} else {
			c := content
			f.Content = &c
		}
		out.Files[name] = f
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, api.ErrorResponse{Message: msg})
}
