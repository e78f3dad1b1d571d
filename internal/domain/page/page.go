package page

// Response is the server-paged envelope returned by the backend. When present it
// is authoritative over any client-side recomputation.
type Response[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalPages    int   `json:"totalPages"`
	TotalElements int64 `json:"totalElements"`
}
