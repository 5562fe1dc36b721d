package entities

// Category is a named node in an application's category forest
type Category struct {
	ID          string            `json:"id"`
	Application string            `json:"application"`
	ParentID    string            `json:"parent_id,omitempty"`
	Title       map[string]string `json:"title"`
	HasChild    bool              `json:"has_child"`
}

// CreateCategoryInput creates a category under an application, optionally
// below a parent. Sibling titles must be unique case-insensitively per
// language.
type CreateCategoryInput struct {
	Application string
	ParentID    string
	Title       map[string]string
	AltTitles   []map[string]string
}
