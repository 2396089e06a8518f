package models

// Asset is a transient display snapshot of a backend asset record. This
// layer never persists assets; every view fetches a fresh copy.
type Asset struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Cost           float64 `json:"cost"`
	Category       string  `json:"category"`
	Status         string  `json:"status"`
	PurchaseDate   string  `json:"purchaseDate"`
	WarrantyExpiry *string `json:"warrantyExpiryDate,omitempty"`
	ImageURL       *string `json:"imageUrl,omitempty"`
	AssignedTo     *string `json:"assignedTo,omitempty"`
}

// AssetRequest is the payload for creating or updating an asset. AssignedTo
// is only populated when the submitting session holds the admin role; the
// backend re-checks this on every request.
type AssetRequest struct {
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Cost           float64 `json:"cost"`
	Category       string  `json:"category"`
	Status         string  `json:"status"`
	PurchaseDate   string  `json:"purchaseDate"`
	WarrantyExpiry *string `json:"warrantyExpiryDate,omitempty"`
	ImageURL       *string `json:"imageUrl,omitempty"`
	AssignedTo     *string `json:"assignedTo,omitempty"`
}

// Category is a lookup entity populating the category form field. Name
// uniqueness is enforced by the backend, not locally.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Status is a lookup entity populating the status form field.
type Status struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// LookupRequest is the payload for creating or renaming a lookup entity.
type LookupRequest struct {
	Name string `json:"name"`
}
