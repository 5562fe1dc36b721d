package entities

// ManifestationType classifies an edition
type ManifestationType string

const (
	ManifestationTypeDiplomatic ManifestationType = "diplomatic"
	ManifestationTypeCritical   ManifestationType = "critical"
	ManifestationTypeCollated   ManifestationType = "collated"
)

// IsValid reports whether the type is one of the closed set
func (t ManifestationType) IsValid() bool {
	switch t {
	case ManifestationTypeDiplomatic, ManifestationTypeCritical, ManifestationTypeCollated:
		return true
	}
	return false
}

// Manifestation is a concrete published form of an Expression. Its base text
// bytes live in the blob store keyed by (expression id, manifestation id).
type Manifestation struct {
	ID              string              `json:"id"`
	ExpressionID    string              `json:"expression_id"`
	BdrcID          string              `json:"bdrc_id,omitempty"`
	WikidataID      string              `json:"wikidata_id,omitempty"`
	Type            ManifestationType   `json:"type"`
	Source          string              `json:"source,omitempty"`
	Colophon        string              `json:"colophon,omitempty"`
	IncipitTitle    map[string]string   `json:"incipit_title,omitempty"`
	IncipitAltTitles []map[string]string `json:"incipit_alt_titles,omitempty"`
}

// ManifestationMetadata carries the scalar and Nomen parts of an edition,
// shared by create and update.
type ManifestationMetadata struct {
	Type             ManifestationType
	BdrcID           string
	WikidataID       string
	Source           string
	Colophon         string
	IncipitTitle     map[string]string
	IncipitAltTitles []map[string]string
}

// CreateManifestationInput creates an edition together with its base text
// and initial annotation layers, atomically.
type CreateManifestationInput struct {
	ExpressionID string
	Content      string
	Metadata     ManifestationMetadata
	Annotations  []AnnotationInput
}

// UpdateManifestationInput replaces an edition's metadata and annotation
// subgraph wholesale.
type UpdateManifestationInput struct {
	Metadata    ManifestationMetadata
	Annotations []AnnotationInput
}
