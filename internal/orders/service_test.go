// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

package orders

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hfahrudin/apotek/internal/platform/apperr"
	"github.com/hfahrudin/apotek/internal/platform/sec"
	"github.com/hfahrudin/apotek/internal/session"
)

// stockedDrug is the catalogue state the fake store prices from.
type stockedDrug struct {
	name  string
	price int
	stock int
}

// fakeStore mimics the transactional Place contract: on any failing line,
// no stock moves and no sale is recorded.
type fakeStore struct {
	catalogue map[int]*stockedDrug
	orders    map[int]*Order
	lines     map[int][]Line
	nextID    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		catalogue: map[int]*stockedDrug{},
		orders:    map[int]*Order{},
		lines:     map[int][]Line{},
		nextID:    1,
	}
}

func (store *fakeStore) List(_ context.Context) ([]Order, error) {
	sales := []Order{}
	for _, order := range store.orders {
		sales = append(sales, *order)
	}
	return sales, nil
}

func (store *fakeStore) ListByUser(_ context.Context, userID int) ([]Order, error) {
	sales := []Order{}
	for _, order := range store.orders {
		if order.UserID == userID {
			sales = append(sales, *order)
		}
	}
	return sales, nil
}

func (store *fakeStore) FindByID(_ context.Context, id int) (*Order, error) {
	order, found := store.orders[id]
	if !found {
		return nil, apperr.NotFound("order")
	}
	clone := *order
	return &clone, nil
}

func (store *fakeStore) Lines(_ context.Context, orderID int) ([]Line, error) {
	return store.lines[orderID], nil
}

func (store *fakeStore) Place(_ context.Context, order *Order, requests []LineRequest) error {
	// All-or-nothing: verify every line before touching stock.
	for _, request := range requests {
		drug, found := store.catalogue[request.DrugID]
		if !found {
			return apperr.NotFound("drug")
		}
		if drug.stock < request.Quantity {
			return apperr.ConstraintViolation(
				fmt.Sprintf("Not enough stock of %q: %d requested, %d available",
					drug.name, request.Quantity, drug.stock),
				nil,
			)
		}
	}

	order.ID = store.nextID
	store.nextID++
	order.CreatedAt = time.Now()

	total := 0
	for _, request := range requests {
		drug := store.catalogue[request.DrugID]
		drug.stock -= request.Quantity
		total += drug.price * request.Quantity
		store.lines[order.ID] = append(store.lines[order.ID], Line{
			OrderID:   order.ID,
			DrugID:    request.DrugID,
			DrugName:  drug.name,
			Quantity:  request.Quantity,
			UnitPrice: drug.price,
			Subtotal:  drug.price * request.Quantity,
		})
	}
	order.Total = total

	clone := *order
	store.orders[order.ID] = &clone
	return nil
}

func cashier() *session.Principal {
	return &session.Principal{ID: 2, Username: "andi", FullName: "Andi Kasir", Role: sec.RoleCashier}
}

func customer() *session.Principal {
	return &session.Principal{ID: 9, Username: "rina", FullName: "Rina Customer", Role: sec.RoleCustomer}
}

func TestPlace_PricesFromCatalogueAndComputesTotal(t *testing.T) {
	store := newFakeStore()
	store.catalogue[1] = &stockedDrug{name: "Paracetamol 500mg", price: 12000, stock: 10}
	store.catalogue[2] = &stockedDrug{name: "Amoxicillin 500mg", price: 25000, stock: 5}
	service := NewService(store, slog.Default())

	order, err := service.Place(context.Background(), cashier(), "Walk-in",
		[]LineRequest{{DrugID: 1, Quantity: 2}, {DrugID: 2, Quantity: 1}})

	require.NoError(t, err)
	assert.Equal(t, 2*12000+25000, order.Total)
	assert.Equal(t, 8, store.catalogue[1].stock)
	assert.Equal(t, 4, store.catalogue[2].stock)
}

func TestPlace_InsufficientStockRollsBackTheWholeOrder(t *testing.T) {
	store := newFakeStore()
	store.catalogue[1] = &stockedDrug{name: "Paracetamol 500mg", price: 12000, stock: 10}
	store.catalogue[2] = &stockedDrug{name: "Amoxicillin 500mg", price: 25000, stock: 1}
	service := NewService(store, slog.Default())

	_, err := service.Place(context.Background(), cashier(), "Walk-in",
		[]LineRequest{{DrugID: 1, Quantity: 2}, {DrugID: 2, Quantity: 3}})

	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeConstraintViolation))
	assert.Contains(t, apperr.As(err).Message, "Amoxicillin 500mg")
	assert.Equal(t, 10, store.catalogue[1].stock)
	assert.Empty(t, store.orders)
}

func TestList_CustomerOnlySeesOwnOrders(t *testing.T) {
	store := newFakeStore()
	store.catalogue[1] = &stockedDrug{name: "Paracetamol 500mg", price: 12000, stock: 10}
	service := NewService(store, slog.Default())

	_, err := service.Place(context.Background(), cashier(), "Walk-in",
		[]LineRequest{{DrugID: 1, Quantity: 1}})
	require.NoError(t, err)
	_, err = service.Place(context.Background(), customer(), "Rina Customer",
		[]LineRequest{{DrugID: 1, Quantity: 1}})
	require.NoError(t, err)

	own, err := service.List(context.Background(), customer())
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, 9, own[0].UserID)

	all, err := service.List(context.Background(), cashier())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGet_ForeignOrderLooksMissingToACustomer(t *testing.T) {
	store := newFakeStore()
	store.catalogue[1] = &stockedDrug{name: "Paracetamol 500mg", price: 12000, stock: 10}
	service := NewService(store, slog.Default())

	order, err := service.Place(context.Background(), cashier(), "Walk-in",
		[]LineRequest{{DrugID: 1, Quantity: 1}})
	require.NoError(t, err)

	_, _, err = service.Get(context.Background(), customer(), order.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))

	header, lines, err := service.Get(context.Background(), cashier(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, header.ID)
	require.Len(t, lines, 1)
	assert.Equal(t, 12000, lines[0].UnitPrice)
}
