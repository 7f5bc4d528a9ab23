package protocol

// Inbound message payloads, one per action. Only the fields the pipelines
// act on are modelled; unknown fields pass through the decoder untouched.

type SearchMessage struct {
	Intent Intent `json:"intent"`
}

type Intent struct {
	Category    *Category    `json:"category,omitempty"`
	Item        *IntentItem  `json:"item,omitempty"`
	Fulfillment *Fulfillment `json:"fulfillment,omitempty"`
}

type Category struct {
	ID string `json:"id"`
}

type IntentItem struct {
	Descriptor *Descriptor `json:"descriptor,omitempty"`
}

type Descriptor struct {
	Name      string `json:"name,omitempty"`
	Code      string `json:"code,omitempty"`
	ShortDesc string `json:"short_desc,omitempty"`
	LongDesc  string `json:"long_desc,omitempty"`
}

type SelectMessage struct {
	Order SelectOrder `json:"order"`
}

type SelectOrder struct {
	Items       []OrderItem  `json:"items" validate:"required,min=1"`
	Fulfillment *Fulfillment `json:"fulfillment,omitempty"`
}

type OrderItem struct {
	ID       string   `json:"id" validate:"required"`
	Quantity Quantity `json:"quantity"`
}

type Quantity struct {
	Count int `json:"count"`
}

type InitMessage struct {
	Order InitOrder `json:"order"`
}

type InitOrder struct {
	Items       []OrderItem  `json:"items" validate:"required,min=1"`
	Billing     Billing      `json:"billing"`
	Fulfillment *Fulfillment `json:"fulfillment,omitempty"`
}

type ConfirmMessage struct {
	Order ConfirmOrder `json:"order"`
}

type ConfirmOrder struct {
	ID      string      `json:"id"`
	Items   []OrderItem `json:"items,omitempty"`
	Billing *Billing    `json:"billing,omitempty"`
}

type StatusMessage struct {
	OrderID string `json:"order_id" validate:"required"`
}

type UpdateMessage struct {
	UpdateTarget string      `json:"update_target,omitempty"`
	OrderID      string      `json:"order_id,omitempty"`
	Order        UpdateOrder `json:"order"`
}

type UpdateOrder struct {
	ID           string        `json:"id,omitempty"`
	Billing      *Billing      `json:"billing,omitempty"`
	Fulfillments []Fulfillment `json:"fulfillments,omitempty"`
	Cancellation *Cancellation `json:"cancellation,omitempty"`
}

type CancelMessage struct {
	OrderID              string      `json:"order_id" validate:"required"`
	CancellationReasonID string      `json:"cancellation_reason_id" validate:"required"`
	Descriptor           *Descriptor `json:"descriptor,omitempty"`
}

type Billing struct {
	Name    string  `json:"name"`
	Address Address `json:"address"`
	Email   string  `json:"email,omitempty"`
	Phone   string  `json:"phone,omitempty"`
}

type Address struct {
	Name     string `json:"name,omitempty"`
	Building string `json:"building,omitempty"`
	Street   string `json:"street,omitempty"`
	Locality string `json:"locality,omitempty"`
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
	Country  string `json:"country,omitempty"`
	AreaCode string `json:"area_code,omitempty"`
}

type Fulfillment struct {
	ID       string            `json:"id,omitempty"`
	Type     string            `json:"type,omitempty"`
	Tracking bool              `json:"tracking"`
	State    *FulfillmentState `json:"state,omitempty"`
	Start    *FulfillmentStop  `json:"start,omitempty"`
	End      *FulfillmentStop  `json:"end,omitempty"`
}

type FulfillmentState struct {
	Descriptor Descriptor `json:"descriptor"`
}

type FulfillmentStop struct {
	Location *Location `json:"location,omitempty"`
	Contact  *Contact  `json:"contact,omitempty"`
}

type Location struct {
	GPS        string      `json:"gps,omitempty"`
	Descriptor *Descriptor `json:"descriptor,omitempty"`
	Address    *Address    `json:"address,omitempty"`
}

type Contact struct {
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

type Cancellation struct {
	CancelledBy string              `json:"cancelled_by,omitempty"`
	Reason      *CancellationReason `json:"reason,omitempty"`
}

type CancellationReason struct {
	ID          string `json:"id"`
	Description string `json:"description,omitempty"`
}
