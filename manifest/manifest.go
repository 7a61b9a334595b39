package manifest

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/hupe1980/hashkit"
	"github.com/hupe1980/hashkit/blobstore"
	"github.com/hupe1980/hashkit/codec"
)

const (
	ManifestFileName = "MANIFEST"
	CurrentFileName  = "CURRENT"
	CurrentVersion   = 1
)

var (
	// ErrUnsupportedVersion is returned when decoding a manifest written by a newer format.
	ErrUnsupportedVersion = errors.New("unsupported manifest version")

	// ErrUnknownCodec is returned when a manifest names a codec that is not built in.
	ErrUnknownCodec = errors.New("unknown manifest codec")

	// ErrDuplicateEntry is returned when a manifest lists the same blob twice.
	ErrDuplicateEntry = errors.New("duplicate manifest entry")
)

// Manifest lists blobs together with their expected digests.
type Manifest struct {
	Version   int               `json:"version"`
	ID        uint64            `json:"id,omitempty"`
	Codec     string            `json:"codec,omitempty"`
	Algorithm hashkit.Algorithm `json:"algorithm"`
	Seed      uint64            `json:"seed,omitempty"`
	Entries   []Entry           `json:"entries"`
}

// Entry describes a single blob.
type Entry struct {
	Name        string         `json:"name"`
	Size        int64          `json:"size"`
	Digest      hashkit.Digest `json:"digest"`
	Compression string         `json:"compression,omitempty"`
}

// New returns an empty manifest for alg and seed.
func New(alg hashkit.Algorithm, seed uint64) *Manifest {
	return &Manifest{Version: CurrentVersion, Algorithm: alg, Seed: seed}
}

// Add appends an entry, replacing an existing entry with the same name.
func (m *Manifest) Add(e Entry) {
	for i := range m.Entries {
		if m.Entries[i].Name == e.Name {
			m.Entries[i] = e
			return
		}
	}
	m.Entries = append(m.Entries, e)
}

// Lookup returns the entry for name.
func (m *Manifest) Lookup(name string) (Entry, bool) {
	for _, e := range m.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Names returns the entry names in manifest order.
func (m *Manifest) Names() []string {
	names := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		names[i] = e.Name
	}
	return names
}

// Validate checks the algorithm, the seed width and every digest length.
func (m *Manifest) Validate() error {
	if m.Version != CurrentVersion {
		return fmt.Errorf("%w: %d (expected %d)", ErrUnsupportedVersion, m.Version, CurrentVersion)
	}
	// A throwaway engine checks the algorithm and seed together.
	if _, err := hashkit.New(m.Algorithm, hashkit.WithSeed(m.Seed)); err != nil {
		return fmt.Errorf("manifest: %w", err)
	}

	seen := make(map[string]struct{}, len(m.Entries))
	for _, e := range m.Entries {
		if _, dup := seen[e.Name]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateEntry, e.Name)
		}
		seen[e.Name] = struct{}{}

		if len(e.Digest) != m.Algorithm.Size() {
			return fmt.Errorf("manifest: %s: %w: %d bytes for %s", e.Name, hashkit.ErrInvalidDigest, len(e.Digest), m.Algorithm)
		}
	}
	return nil
}

// Encode serializes m with c, or codec.Default when c is nil.
func Encode(m *Manifest, c codec.Codec) ([]byte, error) {
	if c == nil {
		c = codec.Default
	}
	out := *m
	out.Version = CurrentVersion
	out.Codec = c.Name()
	return c.Marshal(&out)
}

// Decode parses and validates a manifest.
func Decode(data []byte) (*Manifest, error) {
	var m Manifest
	if err := codec.Default.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("manifest: decode: %w", err)
	}

	if m.Codec != "" {
		c, ok := codec.ByName(m.Codec)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, m.Codec)
		}
		if c.Name() != codec.Default.Name() {
			m = Manifest{}
			if err := c.Unmarshal(data, &m); err != nil {
				return nil, fmt.Errorf("manifest: decode: %w", err)
			}
		}
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Save writes m to name in store.
func Save(ctx context.Context, store blobstore.BlobStore, name string, m *Manifest) error {
	data, err := Encode(m, nil)
	if err != nil {
		return err
	}
	return store.Put(ctx, name, data)
}

// Load reads and decodes the manifest at name.
func Load(ctx context.Context, store blobstore.BlobStore, name string) (*Manifest, error) {
	data, err := blobstore.ReadAll(ctx, store, name)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Store keeps numbered manifest generations under dir and a CURRENT
// pointer naming the latest one.
type Store struct {
	blobs blobstore.BlobStore
	dir   string
	mu    sync.Mutex
}

// NewStore creates a new manifest store.
func NewStore(blobs blobstore.BlobStore, dir string) *Store {
	return &Store{
		blobs: blobs,
		dir:   dir,
	}
}

func (s *Store) path(name string) string {
	return path.Join(s.dir, name)
}

// Load loads the current manifest. It returns blobstore.ErrNotFound when
// no manifest was saved yet.
func (s *Store) Load(ctx context.Context) (*Manifest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := blobstore.ReadAll(ctx, s.blobs, s.path(CurrentFileName))
	if err != nil {
		return nil, err
	}

	return Load(ctx, s.blobs, s.path(strings.TrimSpace(string(current))))
}

// Save writes m as the next generation and then moves CURRENT to it.
// m.ID is advanced on success.
func (s *Store) Save(ctx context.Context, m *Manifest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := m.ID + 1
	if latest, err := s.latestID(ctx); err != nil {
		return err
	} else if latest >= next {
		next = latest + 1
	}

	filename := fmt.Sprintf("%s-%06d.json", ManifestFileName, next)

	out := *m
	out.ID = next
	if err := Save(ctx, s.blobs, s.path(filename), &out); err != nil {
		return err
	}
	if err := s.blobs.Put(ctx, s.path(CurrentFileName), []byte(filename)); err != nil {
		return err
	}

	m.ID = next
	m.Version = CurrentVersion
	return nil
}

// Generations lists the manifest IDs present in the store in ascending order.
func (s *Store) Generations(ctx context.Context) ([]uint64, error) {
	names, err := s.blobs.List(ctx, s.path(ManifestFileName+"-"))
	if err != nil {
		return nil, err
	}

	var ids []uint64
	for _, name := range names {
		base := strings.TrimSuffix(path.Base(name), ".json")
		id, err := strconv.ParseUint(strings.TrimPrefix(base, ManifestFileName+"-"), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (s *Store) latestID(ctx context.Context) (uint64, error) {
	ids, err := s.Generations(ctx)
	if err != nil || len(ids) == 0 {
		return 0, err
	}
	return ids[len(ids)-1], nil
}
