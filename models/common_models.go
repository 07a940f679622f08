// models/common_models.go
package models

// APIErrorResponse is returned for requests the router rejects outright.
type APIErrorResponse struct {
	Error string `json:"error"`
}
