package testutil

import (
	"context"

	"github.com/commercebridge/ondc-adapter/internal/domain/errors"
	"github.com/commercebridge/ondc-adapter/internal/platform"
)

// PlatformStub implements platform.Client with function fields so each test
// overrides only the calls it cares about. Unset calls fail loudly.
type PlatformStub struct {
	GetOrderFunc         func(ctx context.Context, id int64) (*platform.Order, error)
	CreateOrderFunc      func(ctx context.Context, in *platform.OrderInput) (*platform.Order, error)
	UpdateOrderFunc      func(ctx context.Context, id int64, patch *platform.OrderPatch) (*platform.Order, error)
	FindOrdersByMetaFunc func(ctx context.Context, key, value string) ([]platform.Order, error)
	GetProductFunc       func(ctx context.Context, id int64) (*platform.Product, error)
	FindProductBySKUFunc func(ctx context.Context, sku string) (*platform.Product, error)
	CreateProductFunc    func(ctx context.Context, in *platform.ProductInput) (*platform.Product, error)
	ListProductsFunc     func(ctx context.Context, filter platform.ProductFilter) ([]platform.Product, error)
	PingFunc             func(ctx context.Context) error

	GetOrderCalls     []int64
	UpdateOrderCalls  []UpdateOrderCall
	CreateOrderCalls  []*platform.OrderInput
	CreatedProducts   []*platform.ProductInput
	MetaLookups       []MetaLookup
	ListProductsCalls []platform.ProductFilter
}

type UpdateOrderCall struct {
	ID    int64
	Patch *platform.OrderPatch
}

type MetaLookup struct {
	Key   string
	Value string
}

func (s *PlatformStub) GetOrder(ctx context.Context, id int64) (*platform.Order, error) {
	s.GetOrderCalls = append(s.GetOrderCalls, id)
	if s.GetOrderFunc == nil {
		return nil, errors.ErrOrderNotFound
	}
	return s.GetOrderFunc(ctx, id)
}

func (s *PlatformStub) CreateOrder(ctx context.Context, in *platform.OrderInput) (*platform.Order, error) {
	s.CreateOrderCalls = append(s.CreateOrderCalls, in)
	if s.CreateOrderFunc == nil {
		return nil, errors.ErrPlatformUnavailable
	}
	return s.CreateOrderFunc(ctx, in)
}

func (s *PlatformStub) UpdateOrder(ctx context.Context, id int64, patch *platform.OrderPatch) (*platform.Order, error) {
	s.UpdateOrderCalls = append(s.UpdateOrderCalls, UpdateOrderCall{ID: id, Patch: patch})
	if s.UpdateOrderFunc == nil {
		return nil, errors.ErrOrderNotFound
	}
	return s.UpdateOrderFunc(ctx, id, patch)
}

func (s *PlatformStub) FindOrdersByMeta(ctx context.Context, key, value string) ([]platform.Order, error) {
	s.MetaLookups = append(s.MetaLookups, MetaLookup{Key: key, Value: value})
	if s.FindOrdersByMetaFunc == nil {
		return nil, nil
	}
	return s.FindOrdersByMetaFunc(ctx, key, value)
}

func (s *PlatformStub) GetProduct(ctx context.Context, id int64) (*platform.Product, error) {
	if s.GetProductFunc == nil {
		return nil, errors.ErrProductNotFound
	}
	return s.GetProductFunc(ctx, id)
}

func (s *PlatformStub) FindProductBySKU(ctx context.Context, sku string) (*platform.Product, error) {
	if s.FindProductBySKUFunc == nil {
		return nil, errors.ErrProductNotFound
	}
	return s.FindProductBySKUFunc(ctx, sku)
}

func (s *PlatformStub) CreateProduct(ctx context.Context, in *platform.ProductInput) (*platform.Product, error) {
	s.CreatedProducts = append(s.CreatedProducts, in)
	if s.CreateProductFunc == nil {
		return nil, errors.ErrPlatformUnavailable
	}
	return s.CreateProductFunc(ctx, in)
}

func (s *PlatformStub) ListProducts(ctx context.Context, filter platform.ProductFilter) ([]platform.Product, error) {
	s.ListProductsCalls = append(s.ListProductsCalls, filter)
	if s.ListProductsFunc == nil {
		return nil, nil
	}
	return s.ListProductsFunc(ctx, filter)
}

func (s *PlatformStub) Ping(ctx context.Context) error {
	if s.PingFunc == nil {
		return nil
	}
	return s.PingFunc(ctx)
}
