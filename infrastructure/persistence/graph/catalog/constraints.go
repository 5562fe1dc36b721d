package catalog

// ConstraintStatements create the uniqueness constraints the data model
// relies on: one per <Label>.id plus the directory name/code constraints.
var ConstraintStatements = []string{
	"CREATE CONSTRAINT work_id IF NOT EXISTS FOR (n:Work) REQUIRE n.id IS UNIQUE",
	"CREATE CONSTRAINT expression_id IF NOT EXISTS FOR (n:Expression) REQUIRE n.id IS UNIQUE",
	"CREATE CONSTRAINT manifestation_id IF NOT EXISTS FOR (n:Manifestation) REQUIRE n.id IS UNIQUE",
	"CREATE CONSTRAINT segmentation_id IF NOT EXISTS FOR (n:Segmentation) REQUIRE n.id IS UNIQUE",
	"CREATE CONSTRAINT segment_id IF NOT EXISTS FOR (n:Segment) REQUIRE n.id IS UNIQUE",
	"CREATE CONSTRAINT nomen_id IF NOT EXISTS FOR (n:Nomen) REQUIRE n.id IS UNIQUE",
	"CREATE CONSTRAINT localized_text_id IF NOT EXISTS FOR (n:LocalizedText) REQUIRE n.id IS UNIQUE",
	"CREATE CONSTRAINT note_id IF NOT EXISTS FOR (n:Note) REQUIRE n.id IS UNIQUE",
	"CREATE CONSTRAINT bibliography_id IF NOT EXISTS FOR (n:BibliographicMetadata) REQUIRE n.id IS UNIQUE",
	"CREATE CONSTRAINT category_id IF NOT EXISTS FOR (n:Category) REQUIRE n.id IS UNIQUE",
	"CREATE CONSTRAINT person_id IF NOT EXISTS FOR (n:Person) REQUIRE n.id IS UNIQUE",
	"CREATE CONSTRAINT ai_id IF NOT EXISTS FOR (n:AI) REQUIRE n.id IS UNIQUE",
	"CREATE CONSTRAINT apikey_id IF NOT EXISTS FOR (n:ApiKey) REQUIRE n.id IS UNIQUE",
	"CREATE CONSTRAINT application_name IF NOT EXISTS FOR (n:Application) REQUIRE n.name IS UNIQUE",
	"CREATE CONSTRAINT language_code IF NOT EXISTS FOR (n:Language) REQUIRE n.code IS UNIQUE",
	"CREATE CONSTRAINT note_type_name IF NOT EXISTS FOR (n:NoteType) REQUIRE n.name IS UNIQUE",
	"CREATE CONSTRAINT bibliography_type_name IF NOT EXISTS FOR (n:BibliographyType) REQUIRE n.name IS UNIQUE",
	"CREATE CONSTRAINT license_type_name IF NOT EXISTS FOR (n:LicenseType) REQUIRE n.name IS UNIQUE",
	"CREATE CONSTRAINT role_type_name IF NOT EXISTS FOR (n:RoleType) REQUIRE n.name IS UNIQUE",
}

// SeedStatement is one idempotent directory seed
type SeedStatement struct {
	Query  string
	Params map[string]interface{}
}

// SeedStatements merge the enumerated directory nodes at startup
var SeedStatements = []SeedStatement{
	{
		Query: "UNWIND $codes AS code MERGE (:Language {code: code})",
		Params: map[string]interface{}{"codes": []interface{}{
			"bo", "en", "sa", "zh", "pi", "fr", "de", "ja", "mn", "hi",
		}},
	},
	{
		Query: "UNWIND $names AS name MERGE (:LicenseType {name: name})",
		Params: map[string]interface{}{"names": []interface{}{
			"CC0", "CC-BY", "CC-BY-SA", "CC-BY-NC", "CC-BY-NC-SA",
			"CC-BY-ND", "CC-BY-NC-ND", "Public-Domain", "Unknown",
		}},
	},
	{
		Query: "UNWIND $names AS name MERGE (:NoteType {name: name})",
		Params: map[string]interface{}{"names": []interface{}{
			"durchen", "marginal",
		}},
	},
	{
		Query: "UNWIND $names AS name MERGE (:BibliographyType {name: name})",
		Params: map[string]interface{}{"names": []interface{}{
			"colophon", "incipit",
		}},
	},
	{
		Query: "UNWIND $names AS name MERGE (:RoleType {name: name})",
		Params: map[string]interface{}{"names": []interface{}{
			"author", "translator", "editor", "reviser", "scribe",
		}},
	},
}
