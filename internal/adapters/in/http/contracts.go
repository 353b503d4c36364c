package http

// ErrorResponse is the uniform error body of the API.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ItemRequest is one product line in a request body. Qty is the requested
// amount; PreparedQty and PurchasedQty only appear in warehouse drafts.
type ItemRequest struct {
	ProductID    string   `json:"productId"`
	Unit         string   `json:"unit"`
	Name         string   `json:"name"`
	Qty          float64  `json:"qty"`
	PreparedQty  *float64 `json:"preparedQty,omitempty"`
	PurchasedQty *float64 `json:"purchasedQty,omitempty"`
	Obs          string   `json:"obs,omitempty"`
}

// CreateOrderRequest is the body of POST /orders. Date is RFC 3339.
type CreateOrderRequest struct {
	ClientID   string        `json:"clientId"`
	ContractID string        `json:"contractId"`
	LocationID string        `json:"locationId"`
	Date       string        `json:"date"`
	Carrier    string        `json:"carrier,omitempty"`
	Items      []ItemRequest `json:"items"`
}

// SubOrderRequest is one customer order inside a bulk creation request.
type SubOrderRequest struct {
	ClientID   string        `json:"clientId"`
	ContractID string        `json:"contractId"`
	LocationID string        `json:"locationId"`
	Carrier    string        `json:"carrier,omitempty"`
	Items      []ItemRequest `json:"items"`
}

// CreateBulkOrderRequest is the body of POST /orders/bulk.
type CreateBulkOrderRequest struct {
	Date      string            `json:"date"`
	SubOrders []SubOrderRequest `json:"subOrders"`
}

// UpdateOrderStatusRequest is the body of PATCH /orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status     string        `json:"status"`
	Carrier    *string       `json:"carrier,omitempty"`
	ItemsDraft []ItemRequest `json:"itemsDraft,omitempty"`
}

// CloseWarehouseRequest is the body of POST /orders/:id/warehouse-close.
type CloseWarehouseRequest struct {
	ItemsDraft []ItemRequest `json:"itemsDraft"`
}

// CloseBulkBatchRequest is the body of POST /bulk-batches/:id/close.
// The draft is optional; without it the batch closes on its stored
// quantities.
type CloseBulkBatchRequest struct {
	ItemsDraft []ItemRequest `json:"itemsDraft,omitempty"`
}

// RecordDeliveryRequest is the body of POST /orders/:id/delivery.
type RecordDeliveryRequest struct {
	Outcome string `json:"outcome"`
	Note    string `json:"note,omitempty"`
}

// CreatedResponse returns the identifier assigned to a created resource.
type CreatedResponse struct {
	ID string `json:"id"`
}

// BulkCreatedResponse returns the identifiers assigned during bulk creation.
type BulkCreatedResponse struct {
	BatchID     string   `json:"batchId"`
	SubOrderIDs []string `json:"subOrderIds"`
}

// ActiveOrderResponse is one row of GET /orders/active.
type ActiveOrderResponse struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	Status   string `json:"status"`
	ClientID string `json:"clientId"`
	Date     string `json:"date"`
	Carrier  string `json:"carrier,omitempty"`
}

// OrderEventResponse is one row of GET /orders/:id/events.
type OrderEventResponse struct {
	ID        string            `json:"id"`
	OrderID   string            `json:"orderId"`
	Kind      string            `json:"kind"`
	ActorID   string            `json:"actorId"`
	ActorName string            `json:"actorName"`
	At        string            `json:"at"`
	Meta      map[string]string `json:"meta,omitempty"`
}

// PendingGuideResponse is one row of GET /shipping-guides/pending.
type PendingGuideResponse struct {
	ID         string `json:"id"`
	OrderID    string `json:"orderId"`
	BatchID    string `json:"batchId"`
	ClientID   string `json:"clientId"`
	ContractID string `json:"contractId"`
	CreatedAt  string `json:"createdAt"`
}
