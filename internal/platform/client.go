package platform

import "context"

// Client is the only boundary to the backing commerce platform. Every call
// is treated as potentially slow or failing; callers classify errors and
// wrap invocations in the retry executor.
type Client interface {
	GetOrder(ctx context.Context, id int64) (*Order, error)
	CreateOrder(ctx context.Context, in *OrderInput) (*Order, error)
	UpdateOrder(ctx context.Context, id int64, patch *OrderPatch) (*Order, error)
	FindOrdersByMeta(ctx context.Context, key, value string) ([]Order, error)
	GetProduct(ctx context.Context, id int64) (*Product, error)
	FindProductBySKU(ctx context.Context, sku string) (*Product, error)
	CreateProduct(ctx context.Context, in *ProductInput) (*Product, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]Product, error)
	Ping(ctx context.Context) error
}

// Order is a platform order record.
type Order struct {
	ID            int64      `json:"id"`
	Number        string     `json:"number,omitempty"`
	Status        string     `json:"status"`
	Currency      string     `json:"currency"`
	Total         string     `json:"total"`
	TotalTax      string     `json:"total_tax,omitempty"`
	ShippingTotal string     `json:"shipping_total,omitempty"`
	DiscountTotal string     `json:"discount_total,omitempty"`
	CustomerNote  string     `json:"customer_note,omitempty"`
	Billing       Address    `json:"billing"`
	Shipping      Address    `json:"shipping"`
	LineItems     []LineItem `json:"line_items"`
	MetaData      []Meta     `json:"meta_data,omitempty"`
	TransactionID string     `json:"transaction_id,omitempty"`
	DateCreated   string     `json:"date_created,omitempty"`
	DateModified  string     `json:"date_modified,omitempty"`
	DatePaid      string     `json:"date_paid,omitempty"`
}

// Meta reads the first value for key, or "".
func (o *Order) Meta(key string) string {
	for _, m := range o.MetaData {
		if m.Key == key {
			return m.Value
		}
	}
	return ""
}

type Address struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Address1  string `json:"address_1,omitempty"`
	Address2  string `json:"address_2,omitempty"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
	Postcode  string `json:"postcode,omitempty"`
	Country   string `json:"country,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

type LineItem struct {
	ID        int64  `json:"id,omitempty"`
	ProductID int64  `json:"product_id"`
	Name      string `json:"name,omitempty"`
	Quantity  int    `json:"quantity"`
	Total     string `json:"total,omitempty"`
	TotalTax  string `json:"total_tax,omitempty"`
}

type Meta struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// OrderInput is the payload for creating an order.
type OrderInput struct {
	Status             string     `json:"status,omitempty"`
	PaymentMethod      string     `json:"payment_method,omitempty"`
	PaymentMethodTitle string     `json:"payment_method_title,omitempty"`
	Billing            Address    `json:"billing"`
	Shipping           Address    `json:"shipping"`
	LineItems          []LineItem `json:"line_items"`
	MetaData           []Meta     `json:"meta_data,omitempty"`
	CustomerNote       string     `json:"customer_note,omitempty"`
}

// OrderPatch is a partial order update; nil fields are left untouched.
type OrderPatch struct {
	Status       string   `json:"status,omitempty"`
	Billing      *Address `json:"billing,omitempty"`
	Shipping     *Address `json:"shipping,omitempty"`
	MetaData     []Meta   `json:"meta_data,omitempty"`
	CustomerNote string   `json:"customer_note,omitempty"`
}

type Product struct {
	ID               int64       `json:"id"`
	Name             string      `json:"name"`
	SKU              string      `json:"sku,omitempty"`
	Type             string      `json:"type,omitempty"`
	Status           string      `json:"status,omitempty"`
	Price            string      `json:"price,omitempty"`
	RegularPrice     string      `json:"regular_price,omitempty"`
	Weight           string      `json:"weight,omitempty"`
	StockStatus      string      `json:"stock_status,omitempty"`
	ShortDescription string      `json:"short_description,omitempty"`
	Description      string      `json:"description,omitempty"`
	Categories       []Category  `json:"categories,omitempty"`
	Images           []Image     `json:"images,omitempty"`
	Attributes       []Attribute `json:"attributes,omitempty"`
	MetaData         []Meta      `json:"meta_data,omitempty"`
}

// Meta reads the first value for key, or "".
func (p *Product) Meta(key string) string {
	for _, m := range p.MetaData {
		if m.Key == key {
			return m.Value
		}
	}
	return ""
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
	Slug string `json:"slug,omitempty"`
}

type Image struct {
	Src string `json:"src"`
}

type Attribute struct {
	Name    string   `json:"name"`
	Options []string `json:"options,omitempty"`
}

type ProductInput struct {
	Name          string `json:"name"`
	Type          string `json:"type,omitempty"`
	SKU           string `json:"sku,omitempty"`
	Status        string `json:"status,omitempty"`
	RegularPrice  string `json:"regular_price,omitempty"`
	ManageStock   bool   `json:"manage_stock,omitempty"`
	StockQuantity int    `json:"stock_quantity,omitempty"`
	MetaData      []Meta `json:"meta_data,omitempty"`
}

// ProductFilter narrows ListProducts. Page is 1-based; PerPage caps at the
// platform's page limit.
type ProductFilter struct {
	Status      string
	StockStatus string
	CategoryID  string
	Page        int
	PerPage     int
}
