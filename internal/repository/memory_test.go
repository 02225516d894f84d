package repository

import (
	"context"
	"testing"

	"github.com/BlackWidow29/Entrevista-Docket/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_IdentifiersAreUniqueAcrossEntities(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	seen := map[int64]bool{}
	for i := 0; i < 5; i++ {
		r := &model.Registry{Name: "r"}
		require.NoError(t, store.Registries().Create(ctx, r))
		c := &model.Certificate{Name: "c"}
		require.NoError(t, store.Certificates().Create(ctx, c))

		assert.False(t, seen[r.ID])
		assert.False(t, seen[c.ID])
		seen[r.ID], seen[c.ID] = true, true
	}
}

func TestMemoryRegistryStore_UpdateSemantics(t *testing.T) {
	ctx := context.Background()
	registries := NewMemoryStore().Registries()

	assert.ErrorIs(t, registries.Update(ctx, &model.Registry{Name: "x"}), ErrMissingID)
	assert.ErrorIs(t, registries.Update(ctx, &model.Registry{ID: 99, Name: "x"}), ErrNotFound)

	r := &model.Registry{Name: "A"}
	require.NoError(t, registries.Create(ctx, r))
	require.NoError(t, registries.Update(ctx, &model.Registry{ID: r.ID, Name: "B"}))

	got, err := registries.FindByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "B", got.Name)
}

func TestMemoryRegistryStore_DeleteDetachesCertificates(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	r := &model.Registry{Name: "A"}
	require.NoError(t, store.Registries().Create(ctx, r))
	c := &model.Certificate{Name: "AVCB"}
	r.AddCertificate(c)
	require.NoError(t, store.Certificates().Create(ctx, c))

	loaded, err := store.Certificates().FindByID(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.Registry)
	assert.Equal(t, "A", loaded.Registry.Name)

	require.NoError(t, store.Registries().DeleteByID(ctx, r.ID))
	require.NoError(t, store.Registries().DeleteByID(ctx, r.ID), "deleting twice is not an error")

	loaded, err = store.Certificates().FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded.RegistryID)
	assert.Nil(t, loaded.Registry)
}

func TestMemoryCertificateStore_RejectsUnknownRegistry(t *testing.T) {
	missing := int64(12345)
	err := NewMemoryStore().Certificates().Create(context.Background(), &model.Certificate{Name: "c", RegistryID: &missing})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRegistryStore_FindAllSorted(t *testing.T) {
	ctx := context.Background()
	registries := NewMemoryStore().Registries()
	for _, name := range []string{"b", "c", "a"} {
		require.NoError(t, registries.Create(ctx, &model.Registry{Name: name}))
	}

	byIDDesc, err := registries.FindAll(ctx, Sort{Column: "id", Desc: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "b"}, names(byIDDesc))

	byName, err := registries.FindAll(ctx, Sort{Column: "name"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, names(byName))

	count, err := registries.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func names(registries []model.Registry) []string {
	out := make([]string, len(registries))
	for i, r := range registries {
		out[i] = r.Name
	}
	return out
}
