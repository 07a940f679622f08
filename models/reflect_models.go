package models

// ReflectResponse describes the caller as the service sees it.
type ReflectResponse struct {
	OriginalIP string `json:"original_ip"`
	ReversedIP string `json:"reversed_ip"`
	Method     string `json:"method"`
	Path       string `json:"path"`
	UserAgent  string `json:"user_agent"`
}

// HealthResponse is the fixed liveness payload.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
