package repository

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/BlackWidow29/Entrevista-Docket/internal/model"
)

// MemoryStore keeps registries and certificates in process memory. It backs
// `docket serve --in-memory` and the HTTP tests; identifiers come from one
// counter shared by both entity types.
type MemoryStore struct {
	mu           sync.RWMutex
	nextID       int64
	registries   map[int64]model.Registry
	certificates map[int64]model.Certificate
}

// NewMemoryStore creates an empty store whose first identifier is 1000
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID:       1000,
		registries:   make(map[int64]model.Registry),
		certificates: make(map[int64]model.Certificate),
	}
}

func (s *MemoryStore) allocateID() int64 {
	id := s.nextID
	s.nextID++
	return id
}

// Registries returns the registry view of the store
func (s *MemoryStore) Registries() *MemoryRegistryStore {
	return &MemoryRegistryStore{s: s}
}

// Certificates returns the certificate view of the store
func (s *MemoryStore) Certificates() *MemoryCertificateStore {
	return &MemoryCertificateStore{s: s}
}

// MemoryRegistryStore is the RegistryStore view of a MemoryStore
type MemoryRegistryStore struct {
	s *MemoryStore
}

var _ RegistryStore = (*MemoryRegistryStore)(nil)

func (m *MemoryRegistryStore) Create(_ context.Context, registry *model.Registry) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	registry.ID = m.s.allocateID()
	stored := *registry
	stored.Certificates = nil
	m.s.registries[registry.ID] = stored
	return nil
}

func (m *MemoryRegistryStore) Update(_ context.Context, registry *model.Registry) error {
	if registry.ID == 0 {
		return ErrMissingID
	}

	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if _, ok := m.s.registries[registry.ID]; !ok {
		return ErrNotFound
	}
	stored := *registry
	stored.Certificates = nil
	m.s.registries[registry.ID] = stored
	return nil
}

func (m *MemoryRegistryStore) FindAll(_ context.Context, sorts ...Sort) ([]model.Registry, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	registries := make([]model.Registry, 0, len(m.s.registries))
	for _, r := range m.s.registries {
		registries = append(registries, r)
	}
	sortBy(registries, sorts, registryField)
	return registries, nil
}

func (m *MemoryRegistryStore) FindByID(_ context.Context, id int64) (*model.Registry, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	r, ok := m.s.registries[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

// DeleteByID removes the registry and detaches its certificates
func (m *MemoryRegistryStore) DeleteByID(_ context.Context, id int64) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	for certID, c := range m.s.certificates {
		if c.RegistryID != nil && *c.RegistryID == id {
			c.RegistryID = nil
			m.s.certificates[certID] = c
		}
	}
	delete(m.s.registries, id)
	return nil
}

func (m *MemoryRegistryStore) Count(_ context.Context) (int64, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	return int64(len(m.s.registries)), nil
}

// MemoryCertificateStore is the CertificateStore view of a MemoryStore
type MemoryCertificateStore struct {
	s *MemoryStore
}

var _ CertificateStore = (*MemoryCertificateStore)(nil)

func (m *MemoryCertificateStore) Create(_ context.Context, certificate *model.Certificate) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if certificate.RegistryID != nil {
		if _, ok := m.s.registries[*certificate.RegistryID]; !ok {
			return ErrNotFound
		}
	}
	certificate.ID = m.s.allocateID()
	m.s.certificates[certificate.ID] = detach(*certificate)
	return nil
}

func (m *MemoryCertificateStore) Update(_ context.Context, certificate *model.Certificate) error {
	if certificate.ID == 0 {
		return ErrMissingID
	}

	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if _, ok := m.s.certificates[certificate.ID]; !ok {
		return ErrNotFound
	}
	if certificate.RegistryID != nil {
		if _, ok := m.s.registries[*certificate.RegistryID]; !ok {
			return ErrNotFound
		}
	}
	m.s.certificates[certificate.ID] = detach(*certificate)
	return nil
}

// FindAll returns every certificate with its owning registry loaded
func (m *MemoryCertificateStore) FindAll(_ context.Context, sorts ...Sort) ([]model.Certificate, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	certificates := make([]model.Certificate, 0, len(m.s.certificates))
	for _, c := range m.s.certificates {
		certificates = append(certificates, m.withRegistry(c))
	}
	sortBy(certificates, sorts, certificateField)
	return certificates, nil
}

func (m *MemoryCertificateStore) FindByID(_ context.Context, id int64) (*model.Certificate, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	c, ok := m.s.certificates[id]
	if !ok {
		return nil, ErrNotFound
	}
	c = m.withRegistry(c)
	return &c, nil
}

func (m *MemoryCertificateStore) DeleteByID(_ context.Context, id int64) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	delete(m.s.certificates, id)
	return nil
}

func (m *MemoryCertificateStore) Count(_ context.Context) (int64, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	return int64(len(m.s.certificates)), nil
}

func (m *MemoryCertificateStore) withRegistry(c model.Certificate) model.Certificate {
	if c.RegistryID != nil {
		if r, ok := m.s.registries[*c.RegistryID]; ok {
			c.Registry = &r
		}
	}
	return c
}

func detach(c model.Certificate) model.Certificate {
	c.Registry = nil
	if c.RegistryID != nil {
		id := *c.RegistryID
		c.RegistryID = &id
	}
	return c
}

func registryField(r model.Registry, column string) (int64, string) {
	switch column {
	case "name":
		return 0, r.Name
	case "postal_code":
		return 0, r.PostalCode
	case "street_address":
		return 0, r.StreetAddress
	case "neighborhood":
		return 0, r.Neighborhood
	case "city":
		return 0, r.City
	case "state":
		return 0, r.State
	}
	return r.ID, ""
}

func certificateField(c model.Certificate, column string) (int64, string) {
	switch column {
	case "name":
		return 0, c.Name
	case "registry_id":
		if c.RegistryID != nil {
			return *c.RegistryID, ""
		}
		return 0, ""
	}
	return c.ID, ""
}

// sortBy orders items by sorts, falling back to ascending id so results are stable
func sortBy[T any](items []T, sorts []Sort, field func(T, string) (int64, string)) {
	sorts = append(slices.Clone(sorts), Sort{Column: "id"})
	slices.SortFunc(items, func(a, b T) int {
		for _, s := range sorts {
			an, as := field(a, s.Column)
			bn, bs := field(b, s.Column)
			c := cmp.Or(cmp.Compare(an, bn), cmp.Compare(as, bs))
			if s.Desc {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})
}
