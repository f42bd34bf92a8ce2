package toggle_service

// ToggleServiceRequest HTTP request model
type ToggleServiceRequest struct {
	Active *bool `json:"active"`
}
