package dto

type CategoryRequest struct {
	Category string `json:"category"`
}

// CategoryResponse is the projection returned by every category operation.
type CategoryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}
