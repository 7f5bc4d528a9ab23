package protocol

// Outbound on_X payload shapes.

type Price struct {
	Currency     string `json:"currency"`
	Value        string `json:"value"`
	MaximumValue string `json:"maximum_value,omitempty"`
}

type BreakupItem struct {
	ItemID    string    `json:"@ondc/org/item_id,omitempty"`
	ItemQty   *Quantity `json:"@ondc/org/item_quantity,omitempty"`
	Title     string    `json:"title"`
	TitleType string    `json:"@ondc/org/title_type"`
	Price     Price     `json:"price"`
}

type Quote struct {
	Price   Price         `json:"price"`
	Breakup []BreakupItem `json:"breakup"`
	TTL     string        `json:"ttl,omitempty"`
}

type Payment struct {
	URI         string         `json:"uri,omitempty"`
	Params      *PaymentParams `json:"params,omitempty"`
	Status      string         `json:"status,omitempty"`
	Type        string         `json:"type,omitempty"`
	CollectedBy string         `json:"collected_by,omitempty"`
}

type PaymentParams struct {
	Currency      string `json:"currency,omitempty"`
	TransactionID string `json:"transaction_id,omitempty"`
	Amount        string `json:"amount,omitempty"`
}

type Provider struct {
	ID         string             `json:"id"`
	Descriptor *Descriptor        `json:"descriptor,omitempty"`
	Locations  []ProviderLocation `json:"locations,omitempty"`
}

type ProviderLocation struct {
	ID string `json:"id"`
}

// Order is the protocol projection of a platform order, used by on_init,
// on_confirm, on_status, on_update and on_cancel messages.
type Order struct {
	ID                   string        `json:"id"`
	State                string        `json:"state"`
	Provider             *Provider     `json:"provider,omitempty"`
	Items                []QuotedItem  `json:"items,omitempty"`
	Billing              *Billing      `json:"billing,omitempty"`
	Fulfillments         []Fulfillment `json:"fulfillments,omitempty"`
	Quote                *Quote        `json:"quote,omitempty"`
	Payment              *Payment      `json:"payment,omitempty"`
	Cancellation         *Cancellation `json:"cancellation,omitempty"`
	CancellationReasonID string        `json:"cancellation_reason_id,omitempty"`
	CreatedAt            string        `json:"created_at,omitempty"`
	UpdatedAt            string        `json:"updated_at,omitempty"`
}

type QuotedItem struct {
	ID            string   `json:"id"`
	FulfillmentID string   `json:"fulfillment_id,omitempty"`
	Quantity      Quantity `json:"quantity"`
	Price         *Price   `json:"price,omitempty"`
}

type OrderMessage struct {
	Order Order `json:"order"`
}

// on_select carries the quoted order plus per-item serviceability.
type OnSelectOrder struct {
	Provider    *Provider        `json:"provider,omitempty"`
	Items       []SelectableItem `json:"items"`
	Quote       Quote            `json:"quote"`
	Fulfillment *Fulfillment     `json:"fulfillment,omitempty"`
}

type SelectableItem struct {
	ID            string   `json:"id"`
	Quantity      Quantity `json:"quantity"`
	FulfillmentID string   `json:"fulfillment_id,omitempty"`
	Available     bool     `json:"available"`
	Serviceable   bool     `json:"serviceable"`
}

type OnSelectMessage struct {
	Order OnSelectOrder `json:"order"`
}

// Catalog is the on_search payload.
type Catalog struct {
	Descriptor   CatalogDescriptor    `json:"bpp/descriptor"`
	Providers    []CatalogProvider    `json:"bpp/providers"`
	Fulfillments []CatalogFulfillment `json:"bpp/fulfillments"`
	Expiry       string               `json:"exp,omitempty"`
}

type CatalogDescriptor struct {
	Name      string   `json:"name"`
	ShortDesc string   `json:"short_desc,omitempty"`
	Symbol    string   `json:"symbol,omitempty"`
	Images    []string `json:"images,omitempty"`
}

type CatalogProvider struct {
	ID           string               `json:"id"`
	Descriptor   Descriptor           `json:"descriptor"`
	Items        []CatalogItem        `json:"items"`
	Fulfillments []CatalogFulfillment `json:"fulfillments,omitempty"`
	Locations    []CatalogLocation    `json:"locations,omitempty"`
}

type CatalogItem struct {
	ID            string          `json:"id"`
	Descriptor    ItemDescriptor  `json:"descriptor"`
	Price         Price           `json:"price"`
	CategoryID    string          `json:"category_id,omitempty"`
	FulfillmentID string          `json:"fulfillment_id,omitempty"`
	LocationID    string          `json:"location_id,omitempty"`
	Returnable    bool            `json:"@ondc/org/returnable"`
	Cancellable   bool            `json:"@ondc/org/cancellable"`
	AvailableCOD  bool            `json:"@ondc/org/available_on_cod"`
	TimeToShip    string          `json:"@ondc/org/time_to_ship,omitempty"`
	ReturnWindow  string          `json:"@ondc/org/return_window,omitempty"`
	Tags          []CatalogTagSet `json:"tags,omitempty"`
}

type ItemDescriptor struct {
	Name      string      `json:"name"`
	ShortDesc string      `json:"short_desc,omitempty"`
	LongDesc  string      `json:"long_desc,omitempty"`
	Images    []ItemImage `json:"images,omitempty"`
}

type ItemImage struct {
	URL string `json:"url"`
}

type CatalogTagSet struct {
	Code string       `json:"code"`
	List []CatalogTag `json:"list"`
}

type CatalogTag struct {
	Code  string `json:"code"`
	Value string `json:"value"`
}

type CatalogFulfillment struct {
	ID           string   `json:"id"`
	Type         string   `json:"type"`
	Tracking     bool     `json:"tracking,omitempty"`
	ProviderName string   `json:"provider_name,omitempty"`
	Contact      *Contact `json:"contact,omitempty"`
}

type CatalogLocation struct {
	ID      string   `json:"id"`
	GPS     string   `json:"gps,omitempty"`
	Address *Address `json:"address,omitempty"`
}

type OnSearchMessage struct {
	Catalog Catalog `json:"catalog"`
}
