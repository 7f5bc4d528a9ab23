package pipeline

import (
	"context"
	"strconv"

	"github.com/commercebridge/ondc-adapter/internal/domain/order"
	"github.com/commercebridge/ondc-adapter/internal/platform"
)

// catalogItemID renders a platform product id as a protocol item id.
func catalogItemID(productID int64) string {
	return "I" + strconv.FormatInt(productID, 10)
}

// resolveProduct finds the platform product behind a protocol item id.
// Ids minted by our own catalog resolve by product id; ids originating on
// the buyer side resolve by the prefixed SKU.
func (r *Runner) resolveProduct(ctx context.Context, itemID string) (*platform.Product, error) {
	if id, err := strconv.ParseInt(order.ItemProductID(itemID), 10, 64); err == nil {
		p, err := call(ctx, r, "get_product", func(ctx context.Context) (*platform.Product, error) {
			return r.platform.GetProduct(ctx, id)
		})
		if err == nil {
			return p, nil
		}
		if !platform.IsNotFound(err) {
			return nil, err
		}
	}
	return call(ctx, r, "find_product", func(ctx context.Context) (*platform.Product, error) {
		return r.platform.FindProductBySKU(ctx, order.ProductSKU(itemID))
	})
}

// pricedItemFrom projects a resolved product into quote input.
func pricedItemFrom(itemID string, quantity int, p *platform.Product) pricedItem {
	if quantity <= 0 {
		quantity = 1
	}
	price := p.Price
	if price == "" {
		price = p.RegularPrice
	}
	return pricedItem{
		ItemID:    itemID,
		Name:      p.Name,
		Quantity:  quantity,
		UnitPrice: parsePrice(price),
		Weight:    parsePrice(p.Weight),
		Special:   p.Meta(order.MetaSpecialPacking) == "yes",
		Available: p.StockStatus == "" || p.StockStatus == "instock",
	}
}
