package dtos

// APIResponse is the envelope every API call returns. When IsSuccessful is
// false the Result must not be trusted.
type APIResponse struct {
	StatusCode    int      `json:"statusCode"`
	IsSuccessful  bool     `json:"isSuccessful"`
	ErrorMessages []string `json:"errorMessages"`
	Result        any      `json:"result"`
}

// Pagination travels in the X-Pagination header, never in the body.
type Pagination struct {
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
}

const PaginationHeader = "X-Pagination"
