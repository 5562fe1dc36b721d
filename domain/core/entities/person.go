package entities

// Person is a contributor directory node
type Person struct {
	ID        string              `json:"id"`
	BdrcID    string              `json:"bdrc_id,omitempty"`
	Name      map[string]string   `json:"name"`
	AltNames  []map[string]string `json:"alt_names,omitempty"`
}

// CreatePersonInput creates a person with their name Nomens
type CreatePersonInput struct {
	BdrcID   string
	Name     map[string]string
	AltNames []map[string]string
}
