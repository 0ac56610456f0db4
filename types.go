package flowpay

// ListMeta carries pagination details returned alongside list results.
type ListMeta struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
