// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package merch_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-press/internal/platform/dberr"
	"github.com/taibuivan/yomira-press/internal/site/merch"
	"github.com/taibuivan/yomira-press/pkg/pointer"
)

type memoryRepository struct {
	products map[string]*merch.Product
}

func (repo *memoryRepository) List(_ context.Context, activeOnly bool) ([]*merch.Product, error) {
	out := []*merch.Product{}
	for _, p := range repo.products {
		if activeOnly && !p.IsActive {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (repo *memoryRepository) FindByID(_ context.Context, id string) (*merch.Product, error) {
	p, ok := repo.products[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (repo *memoryRepository) Create(_ context.Context, p *merch.Product) error {
	clone := *p
	repo.products[p.ID] = &clone
	return nil
}

func (repo *memoryRepository) Update(_ context.Context, p *merch.Product) error {
	clone := *p
	repo.products[p.ID] = &clone
	return nil
}

func (repo *memoryRepository) Delete(_ context.Context, id string) error {
	if _, ok := repo.products[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(repo.products, id)
	return nil
}

func newService() (*merch.Service, *memoryRepository) {
	repo := &memoryRepository{products: make(map[string]*merch.Product)}
	return merch.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

/*
TestCreateProduct_Defaults uppercases the currency and falls back to USD.
*/
func TestCreateProduct_Defaults(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	tote := &merch.Product{Name: " Tote Bag ", PurchaseURL: "https://shop.example.com/tote", IsActive: true}
	require.NoError(t, service.CreateProduct(ctx, tote))
	assert.Equal(t, "Tote Bag", tote.Name)
	assert.Equal(t, merch.DefaultCurrency, tote.Currency)
	assert.NotEmpty(t, tote.ID)

	artPrint := &merch.Product{Name: "Print", Currency: "eur", PurchaseURL: "https://shop.example.com/print"}
	require.NoError(t, service.CreateProduct(ctx, artPrint))
	assert.Equal(t, "EUR", artPrint.Currency)
}

/*
TestCreateProduct_Validation rejects negative prices, odd currencies and
missing store links.
*/
func TestCreateProduct_Validation(t *testing.T) {
	service, repo := newService()

	err := service.CreateProduct(context.Background(), &merch.Product{
		Name:       "Broken",
		PriceCents: -1,
		Currency:   "EURO",
	})
	require.Error(t, err)
	assert.Empty(t, repo.products)
}

/*
TestListActive_HidesDrafts orders by sort order and skips inactive products.
*/
func TestListActive_HidesDrafts(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	for _, p := range []*merch.Product{
		{Name: "Second", SortOrder: 2, IsActive: true},
		{Name: "Draft", SortOrder: 0, IsActive: false},
		{Name: "First", SortOrder: 1, IsActive: true},
	} {
		p.PurchaseURL = "https://shop.example.com/" + p.Name
		require.NoError(t, service.CreateProduct(ctx, p))
	}

	active, err := service.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "First", active[0].Name)
	assert.Equal(t, "Second", active[1].Name)

	all, err := service.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

/*
TestUpdateProduct_Deactivate hides a product from the storefront.
*/
func TestUpdateProduct_Deactivate(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	p := &merch.Product{Name: "Poster", PurchaseURL: "https://shop.example.com/poster", IsActive: true}
	require.NoError(t, service.CreateProduct(ctx, p))

	updated, err := service.UpdateProduct(ctx, p.ID, merch.UpdateInput{IsActive: pointer.To(false)})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	active, err := service.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
}
