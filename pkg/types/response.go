package types

import "github.com/dev-arham/ecommerce-server/pkg/pagination"

// Envelope is the uniform response wrapper used by every endpoint.
type Envelope struct {
	Success    bool                 `json:"success"`
	Message    string               `json:"message"`
	Data       any                  `json:"data"`
	Pagination *pagination.Envelope `json:"pagination,omitempty"`
}
