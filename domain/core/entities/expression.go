package entities

// ExpressionType classifies how an expression realises its work
type ExpressionType string

const (
	ExpressionTypeRoot              ExpressionType = "root"
	ExpressionTypeTranslation       ExpressionType = "translation"
	ExpressionTypeCommentary        ExpressionType = "commentary"
	ExpressionTypeTranslationSource ExpressionType = "translation_source"
)

// IsValid reports whether the type is one of the closed set
func (t ExpressionType) IsValid() bool {
	switch t {
	case ExpressionTypeRoot, ExpressionTypeTranslation, ExpressionTypeCommentary, ExpressionTypeTranslationSource:
		return true
	}
	return false
}

// IsDerived reports whether the type carries a TRANSLATION_OF/COMMENTARY_OF edge
func (t ExpressionType) IsDerived() bool {
	return t == ExpressionTypeTranslation || t == ExpressionTypeCommentary
}

// License is a Creative-Commons-style license identifier from a closed set
type License string

const (
	LicenseCC0         License = "CC0"
	LicenseCCBY        License = "CC-BY"
	LicenseCCBYSA      License = "CC-BY-SA"
	LicenseCCBYNC      License = "CC-BY-NC"
	LicenseCCBYNCSA    License = "CC-BY-NC-SA"
	LicenseCCBYND      License = "CC-BY-ND"
	LicenseCCBYNCND    License = "CC-BY-NC-ND"
	LicensePublicOther License = "Public-Domain"
	LicenseUnknown     License = "Unknown"
)

// Contribution links an expression to a person (or AI agent) with a role
type Contribution struct {
	PersonID     string `json:"person_id,omitempty"`
	PersonBdrcID string `json:"person_bdrc_id,omitempty"`
	AIID         string `json:"ai_id,omitempty"`
	Role         string `json:"role"`
}

// Expression is a particular language/authorship realisation of a Work
type Expression struct {
	ID            string            `json:"id"`
	WorkID        string            `json:"work_id"`
	BdrcID        string            `json:"bdrc_id,omitempty"`
	WikidataID    string            `json:"wikidata_id,omitempty"`
	Type          ExpressionType    `json:"type"`
	Language      string            `json:"language"`
	LanguageTag   string            `json:"language_tag,omitempty"`
	Date          string            `json:"date,omitempty"`
	Title         map[string]string `json:"title"`
	AltTitles     []map[string]string `json:"alt_titles,omitempty"`
	License       License           `json:"license,omitempty"`
	Copyright     string            `json:"copyright,omitempty"`
	CategoryID    string            `json:"category_id,omitempty"`
	Contributions []Contribution    `json:"contributions,omitempty"`
	TranslationOf string            `json:"translation_of,omitempty"`
	CommentaryOf  string            `json:"commentary_of,omitempty"`
}

// CreateExpressionInput carries everything needed to create an expression
// together with its Work, title Nomens and contributor edges.
type CreateExpressionInput struct {
	BdrcID        string
	WikidataID    string
	Type          ExpressionType
	Language      string
	LanguageTag   string
	Date          string
	Title         map[string]string
	AltTitles     []map[string]string
	License       License
	Copyright     string
	CategoryID    string
	Contributions []Contribution
	// Parent expression id for translations/commentaries; "N/A" means the
	// source is unknown and no edge is created.
	ParentID string
}

// ExpressionFilter narrows expression listings
type ExpressionFilter struct {
	Type     ExpressionType
	Language string
	Title    string
}
