// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

package drugs

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hfahrudin/apotek/internal/platform/apperr"
	"github.com/hfahrudin/apotek/pkg/pagination"
)

// fakeStore keeps drugs in memory; referenced IDs simulate sale lines that
// hold a foreign key onto the drug.
type fakeStore struct {
	drugs      map[int]*Drug
	referenced map[int]bool
	nextID     int
}

func newFakeStore(seed ...*Drug) *fakeStore {
	store := &fakeStore{drugs: map[int]*Drug{}, referenced: map[int]bool{}, nextID: 1}
	for _, drug := range seed {
		store.drugs[drug.ID] = drug
		if drug.ID >= store.nextID {
			store.nextID = drug.ID + 1
		}
	}
	return store
}

func (store *fakeStore) List(_ context.Context, params pagination.Params) ([]Drug, int, error) {
	catalogue := []Drug{}
	for _, drug := range store.drugs {
		catalogue = append(catalogue, *drug)
	}
	return catalogue, len(store.drugs), nil
}

func (store *fakeStore) ListAll(_ context.Context) ([]Drug, error) {
	catalogue := []Drug{}
	for _, drug := range store.drugs {
		catalogue = append(catalogue, *drug)
	}
	return catalogue, nil
}

func (store *fakeStore) FindByID(_ context.Context, id int) (*Drug, error) {
	drug, found := store.drugs[id]
	if !found {
		return nil, apperr.NotFound("drug")
	}
	clone := *drug
	return &clone, nil
}

func (store *fakeStore) Create(_ context.Context, drug *Drug) error {
	drug.ID = store.nextID
	store.nextID++
	clone := *drug
	store.drugs[drug.ID] = &clone
	return nil
}

func (store *fakeStore) Update(_ context.Context, drug *Drug) (int64, error) {
	if _, found := store.drugs[drug.ID]; !found {
		return 0, nil
	}
	clone := *drug
	store.drugs[drug.ID] = &clone
	return 1, nil
}

func (store *fakeStore) Delete(_ context.Context, id int) (int64, error) {
	if store.referenced[id] {
		return 0, apperr.ConstraintViolation("drug is still referenced", nil)
	}
	if _, found := store.drugs[id]; !found {
		return 0, nil
	}
	delete(store.drugs, id)
	return 1, nil
}

func paracetamol() *Drug {
	return &Drug{ID: 1, Name: "Paracetamol 500mg", Category: "Analgesic", Unit: "strip", Price: 12000, Stock: 40}
}

func TestDelete_ReferencedDrugIsKeptAndNamedInTheMessage(t *testing.T) {
	store := newFakeStore(paracetamol())
	store.referenced[1] = true
	service := NewService(store, slog.Default())

	found, err := service.Delete(context.Background(), 1)

	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeConstraintViolation))
	assert.Contains(t, apperr.As(err).Message, "Paracetamol 500mg")
	assert.False(t, found)
	assert.Contains(t, store.drugs, 1)
}

func TestDelete_UnreferencedDrugSucceeds(t *testing.T) {
	store := newFakeStore(paracetamol())
	service := NewService(store, slog.Default())

	found, err := service.Delete(context.Background(), 1)

	require.NoError(t, err)
	assert.True(t, found)
	assert.NotContains(t, store.drugs, 1)
}

func TestDelete_VanishedDrugIsReportedNotFailed(t *testing.T) {
	store := newFakeStore()
	service := NewService(store, slog.Default())

	found, err := service.Delete(context.Background(), 7)

	require.NoError(t, err)
	assert.False(t, found)
}

func TestUpdate_VanishedDrugIsReportedNotFailed(t *testing.T) {
	store := newFakeStore()
	service := NewService(store, slog.Default())

	found, err := service.Update(context.Background(), 7, Input{Name: "X", Category: "Y", Unit: "box"})

	require.NoError(t, err)
	assert.False(t, found)
}

func TestList_MetaReflectsTotalCount(t *testing.T) {
	store := newFakeStore(paracetamol())
	service := NewService(store, slog.Default())

	_, meta, err := service.List(context.Background(), pagination.Params{Page: 1, Limit: 20})

	require.NoError(t, err)
	assert.Equal(t, 1, meta.Total)
	assert.Equal(t, 1, meta.TotalPages)
}
