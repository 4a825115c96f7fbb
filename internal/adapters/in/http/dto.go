package http

import "time"

// ErrorResponse is the JSON error envelope returned by every endpoint.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderLineRequest is one position of a new order.
type CreateOrderLineRequest struct {
	SKU       string `json:"sku"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
}

// CreateOrderRequest captures a new sales order.
type CreateOrderRequest struct {
	Customer     string                   `json:"customer"`
	Reference    string                   `json:"reference"`
	OrderDate    time.Time                `json:"orderDate"`
	DeliveryDate time.Time                `json:"deliveryDate"`
	Priority     string                   `json:"priority"`
	CreatedBy    string                   `json:"createdBy"`
	Lines        []CreateOrderLineRequest `json:"lines"`
}

// CreateOrderLineResponse echoes the server-assigned line identifier so the
// caller can address the line in later allocate/dispatch/deliver requests.
type CreateOrderLineResponse struct {
	ID  string `json:"id"`
	SKU string `json:"sku"`
}

// CreateOrderResponse returns the identifiers of the captured order.
type CreateOrderResponse struct {
	ID    string                    `json:"id"`
	Lines []CreateOrderLineResponse `json:"lines"`
}

// ActorRequest carries the operator identity for approval and cancellation.
type ActorRequest struct {
	Actor string `json:"actor"`
}

// RejectOrderRequest carries the operator identity and rejection reason.
type RejectOrderRequest struct {
	Actor string `json:"actor"`
	Note  string `json:"note"`
}

// AllocateLineRequest reserves stock for one line.
type AllocateLineRequest struct {
	Quantity int    `json:"quantity"`
	Actor    string `json:"actor"`
}

// DispatchLineRequest ships allocated stock for one line.
type DispatchLineRequest struct {
	Quantity   int    `json:"quantity"`
	Actor      string `json:"actor"`
	TrackingID string `json:"trackingId"`
	Carrier    string `json:"carrier"`
}

// DeliverLineRequest confirms delivery of dispatched stock for one line.
type DeliverLineRequest struct {
	Quantity int    `json:"quantity"`
	Actor    string `json:"actor"`
}

// RestockRequest records a goods receipt for a SKU.
type RestockRequest struct {
	Quantity int `json:"quantity"`
}

// OpenOrderResponse is one open order in the overview list.
type OpenOrderResponse struct {
	ID           string    `json:"id"`
	Customer     string    `json:"customer"`
	Reference    string    `json:"reference"`
	Status       string    `json:"status"`
	Priority     string    `json:"priority"`
	DeliveryDate time.Time `json:"deliveryDate"`
	LineCount    int       `json:"lineCount"`
}

// AuditEntryResponse is one row of an order's audit trail.
type AuditEntryResponse struct {
	Timestamp  time.Time `json:"timestamp"`
	Actor      string    `json:"actor"`
	FromStatus string    `json:"fromStatus"`
	ToStatus   string    `json:"toStatus"`
	Note       string    `json:"note,omitempty"`
	LineID     *string   `json:"lineId,omitempty"`
	Quantity   int       `json:"quantity,omitempty"`
}

// StockLevelResponse is one SKU's ledger counters.
type StockLevelResponse struct {
	SKU          string `json:"sku"`
	Available    int    `json:"available"`
	Reserved     int    `json:"reserved"`
	InProduction int    `json:"inProduction"`
}
