package pipeline

import (
	"context"
	"encoding/json"
	"strings"

	domainErrors "github.com/commercebridge/ondc-adapter/internal/domain/errors"
	"github.com/commercebridge/ondc-adapter/internal/domain/order"
	"github.com/commercebridge/ondc-adapter/internal/domain/protocol"
	"github.com/commercebridge/ondc-adapter/internal/platform"
)

const catalogPageSize = 100

// Search builds the on_search catalog for the intent. Requests scoped to a
// city this store does not serve get an empty provider; an unrecognized
// city code falls back to the unfiltered catalog.
func (r *Runner) Search(ctx context.Context, env protocol.Envelope) string {
	return r.run(ctx, env, func(ctx context.Context) (any, error) {
		var msg protocol.SearchMessage
		if err := json.Unmarshal(env.Message, &msg); err != nil {
			return nil, domainErrors.NewValidationError("malformed search intent", codeCannotProcess, true, err)
		}

		city := order.MapCityCode(env.Context.City)
		if city != order.DefaultCity && r.store.City != "" && !strings.EqualFold(city, r.store.City) {
			return protocol.OnSearchMessage{Catalog: r.catalog(nil)}, nil
		}

		products, err := r.listCatalogProducts(ctx)
		if err != nil {
			return nil, err
		}
		if city != order.DefaultCity {
			products = filterByCity(products, city)
		}
		products = filterByIntent(products, msg.Intent)
		return protocol.OnSearchMessage{Catalog: r.catalog(products)}, nil
	})
}

func (r *Runner) listCatalogProducts(ctx context.Context) ([]platform.Product, error) {
	var all []platform.Product
	for page := 1; ; page++ {
		filter := platform.ProductFilter{
			Status:      "publish",
			StockStatus: "instock",
			Page:        page,
			PerPage:     catalogPageSize,
		}
		batch, err := call(ctx, r, "list_products", func(ctx context.Context) ([]platform.Product, error) {
			return r.platform.ListProducts(ctx, filter)
		})
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < catalogPageSize {
			return all, nil
		}
	}
}

// filterByCity drops products tagged for a different city. Products with no
// city meta or attribute serve every city.
func filterByCity(products []platform.Product, city string) []platform.Product {
	out := products[:0:0]
	for _, p := range products {
		if tag := productCity(p); tag != "" && !strings.EqualFold(tag, city) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func productCity(p platform.Product) string {
	if v := p.Meta(order.MetaServiceCity); v != "" {
		return v
	}
	for _, a := range p.Attributes {
		if strings.EqualFold(a.Name, "city") && len(a.Options) > 0 {
			return a.Options[0]
		}
	}
	return ""
}

// filterByIntent narrows the product set by the intent's item name and
// category. An empty intent passes everything through.
func filterByIntent(products []platform.Product, intent protocol.Intent) []platform.Product {
	name := ""
	if intent.Item != nil && intent.Item.Descriptor != nil {
		name = strings.ToLower(intent.Item.Descriptor.Name)
	}
	category := ""
	if intent.Category != nil {
		category = strings.ToLower(intent.Category.ID)
	}
	if name == "" && category == "" {
		return products
	}

	out := products[:0:0]
	for _, p := range products {
		if name != "" && !strings.Contains(strings.ToLower(p.Name), name) {
			continue
		}
		if category != "" && !hasCategory(p, category) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func hasCategory(p platform.Product, category string) bool {
	for _, c := range p.Categories {
		if strings.ToLower(c.Name) == category || strings.ToLower(c.Slug) == category {
			return true
		}
	}
	return false
}

func (r *Runner) catalog(products []platform.Product) protocol.Catalog {
	items := make([]protocol.CatalogItem, 0, len(products))
	for _, p := range products {
		items = append(items, catalogItem(p))
	}

	fulfillments := []protocol.CatalogFulfillment{{
		ID:           "F1",
		Type:         "Delivery",
		Tracking:     true,
		ProviderName: r.store.Name,
		Contact:      &protocol.Contact{Phone: r.store.Phone, Email: r.store.Email},
	}}
	locations := []protocol.CatalogLocation{{
		ID:  "L1",
		GPS: r.store.GPS,
		Address: &protocol.Address{
			Locality: r.store.Locality,
			City:     r.store.City,
			State:    r.store.State,
			AreaCode: r.store.AreaCode,
		},
	}}

	return protocol.Catalog{
		Descriptor: protocol.CatalogDescriptor{Name: r.store.Name},
		Providers: []protocol.CatalogProvider{{
			ID:           r.identity.BppID,
			Descriptor:   protocol.Descriptor{Name: r.store.Name},
			Items:        items,
			Fulfillments: fulfillments,
			Locations:    locations,
		}},
		Fulfillments: fulfillments,
		Expiry:       "PT24H",
	}
}

func catalogItem(p platform.Product) protocol.CatalogItem {
	price := p.Price
	if price == "" {
		price = p.RegularPrice
	}
	categoryID := ""
	if len(p.Categories) > 0 {
		categoryID = p.Categories[0].Name
	}
	images := make([]protocol.ItemImage, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, protocol.ItemImage{URL: img.Src})
	}
	return protocol.CatalogItem{
		ID: catalogItemID(p.ID),
		Descriptor: protocol.ItemDescriptor{
			Name:      p.Name,
			ShortDesc: p.ShortDescription,
			LongDesc:  p.Description,
			Images:    images,
		},
		Price:         protocol.Price{Currency: currencyINR, Value: price, MaximumValue: p.RegularPrice},
		CategoryID:    categoryID,
		FulfillmentID: "F1",
		LocationID:    "L1",
		Cancellable:   true,
		TimeToShip:    "P1D",
	}
}
