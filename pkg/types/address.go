package types

// ShippingAddress is the delivery address attached to an order.
// Validation tags are enforced before an address edit leaves the client.
type ShippingAddress struct {
	FullName   string  `json:"fullName" validate:"required"`
	Line1      string  `json:"line1" validate:"required"`
	Line2      *string `json:"line2,omitempty"`
	City       string  `json:"city" validate:"required"`
	State      string  `json:"state" validate:"required"`
	PostalCode string  `json:"postalCode" validate:"required"`
	Country    string  `json:"country" validate:"required"`
	Phone      string  `json:"phone,omitempty"`
}
