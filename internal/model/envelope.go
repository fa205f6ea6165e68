package model

// Envelope is the uniform response shape of every JSON endpoint.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Code    string      `json:"code,omitempty"`
	Field   string      `json:"field,omitempty"`
}

// PageProps is what a page loader hands to the view that renders it.
type PageProps struct {
	Page  string      `json:"page"`
	Props interface{} `json:"props"`
}
