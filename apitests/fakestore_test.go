package apitests

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/qa-harness/e2e-harness/petstore"
)

// fakeStore is an in-memory pet store that behaves like the public API, including its eventual
// consistency: after each write, the next `lag` reads of that pet still see the previous state.
type fakeStore struct {
	lag  int
	lock sync.Mutex
	pets map[int64]*fakeEntry
}

type fakeEntry struct {
	current       *petstore.Pet // nil once deleted
	previous      *petstore.Pet // what stale reads see
	pendingStales int
}

func newFakeStore(lag int) *fakeStore {
	return &fakeStore{lag: lag, pets: make(map[int64]*fakeEntry)}
}

func (s *fakeStore) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.lock.Lock()
	defer s.lock.Unlock()

	switch {
	case r.URL.Path == "/pet/findByStatus" && r.Method == "GET":
		s.findByStatus(w, petstore.Status(r.URL.Query().Get("status")))
	case r.URL.Path == "/pet" && r.Method == "POST":
		s.write(w, r, false)
	case r.URL.Path == "/pet" && r.Method == "PUT":
		s.write(w, r, true)
	case strings.HasPrefix(r.URL.Path, "/pet/") && (r.Method == "GET" || r.Method == "DELETE"):
		id, err := strconv.ParseInt(strings.TrimPrefix(r.URL.Path, "/pet/"), 10, 64)
		if err != nil {
			status := 404
			if r.Method == "DELETE" {
				status = 400
			}
			writeAPIResponse(w, status, "java.lang.NumberFormatException")
			return
		}
		if r.Method == "GET" {
			s.get(w, id)
		} else {
			s.delete(w, r, id)
		}
	default:
		writeAPIResponse(w, 405, "method not allowed")
	}
}

func (s *fakeStore) read(id int64) *petstore.Pet {
	e, ok := s.pets[id]
	if !ok {
		return nil
	}
	if e.pendingStales > 0 {
		e.pendingStales--
		return e.previous
	}
	return e.current
}

func (s *fakeStore) get(w http.ResponseWriter, id int64) {
	if p := s.read(id); p != nil {
		writeJSON(w, 200, p)
		return
	}
	writeAPIResponse(w, 404, "Pet not found")
}

func (s *fakeStore) change(id int64, p *petstore.Pet) {
	e, ok := s.pets[id]
	if !ok {
		e = &fakeEntry{}
		s.pets[id] = e
	}
	e.previous = e.current
	e.current = p
	e.pendingStales = s.lag
}

func (s *fakeStore) write(w http.ResponseWriter, r *http.Request, update bool) {
	if r.Header.Get(petstore.APIKeyHeader) == "" {
		writeAPIResponse(w, 401, "missing api_key")
		return
	}
	var raw map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeAPIResponse(w, 400, "bad input")
		return
	}
	if len(raw) == 0 {
		writeAPIResponse(w, 400, "no data")
		return
	}
	if _, ok := raw["id"].(float64); !ok {
		if _, present := raw["id"]; present {
			writeAPIResponse(w, 500, "something bad happened")
			return
		}
		if update {
			writeAPIResponse(w, 400, "Invalid ID supplied")
			return
		}
	}
	data, _ := json.Marshal(raw)
	var p petstore.Pet
	if err := json.Unmarshal(data, &p); err != nil {
		writeAPIResponse(w, 500, "something bad happened")
		return
	}
	s.change(p.ID, &p)
	writeJSON(w, 200, p)
}

func (s *fakeStore) delete(w http.ResponseWriter, r *http.Request, id int64) {
	if r.Header.Get(petstore.APIKeyHeader) == "" {
		writeAPIResponse(w, 401, "missing api_key")
		return
	}
	if e, ok := s.pets[id]; !ok || e.current == nil {
		w.WriteHeader(404)
		return
	}
	s.change(id, nil)
	writeAPIResponse(w, 200, strconv.FormatInt(id, 10))
}

func (s *fakeStore) findByStatus(w http.ResponseWriter, status petstore.Status) {
	if !status.Valid() {
		writeAPIResponse(w, 400, "Invalid status value")
		return
	}
	found := []petstore.Pet{}
	for id := range s.pets {
		if p := s.read(id); p != nil && p.Status == status {
			found = append(found, *p)
		}
	}
	writeJSON(w, 200, found)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeAPIResponse(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, petstore.APIResponse{Code: status, Type: "unknown", Message: message})
}
