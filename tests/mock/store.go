package mock

import (
	"io"
	"sync"

	"github.com/ridgeline-tours/asset-repo/common/rcontext"
	"github.com/ridgeline-tours/asset-repo/datastores"
)

type Write struct {
	Key  string
	Data []byte
	Opts datastores.UploadOptions
}

// Store is an in-memory datastores.Store that records every write. Keys listed in
// FailKeys return the mapped error; keys in PanicKeys panic.
type Store struct {
	BaseUrl   string
	FailKeys  map[string]error
	PanicKeys map[string]bool

	mu      sync.Mutex
	objects map[string][]byte
	writes  []Write
}

func NewStore() *Store {
	return &Store{
		BaseUrl:   "https://storage.example.org/site-assets",
		FailKeys:  make(map[string]error),
		PanicKeys: make(map[string]bool),
		objects:   make(map[string][]byte),
		writes:    make([]Write, 0),
	}
}

func (s *Store) Upload(ctx rcontext.RequestContext, key string, data io.Reader, size int64, opts datastores.UploadOptions) (string, error) {
	if s.PanicKeys[key] {
		panic("storage exploded for " + key)
	}
	if err, ok := s.FailKeys[key]; ok {
		return "", err
	}

	b, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = b
	s.writes = append(s.writes, Write{Key: key, Data: b, Opts: opts})
	return key, nil
}

func (s *Store) PublicUrl(location string) string {
	if s.BaseUrl == "" {
		return "/" + location
	}
	return s.BaseUrl + "/" + location
}

func (s *Store) Object(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.objects[key]
	return b, ok
}

func (s *Store) Objects() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

func (s *Store) Writes() []Write {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Write(nil), s.writes...)
}
