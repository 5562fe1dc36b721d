package graph

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"textgraph/domain/core/entities"
	"textgraph/infrastructure/persistence/graph/catalog"
	apperrors "textgraph/pkg/errors"
	"textgraph/pkg/ids"
)

// NoParent marks a derived expression whose source text is not on record.
// No derivation edge is created.
const NoParent = "N/A"

// ExpressionRepository manages Works, Expressions and their title Nomens
type ExpressionRepository struct {
	client *Client
	logger *zap.Logger
}

// NewExpressionRepository creates an ExpressionRepository
func NewExpressionRepository(client *Client, logger *zap.Logger) *ExpressionRepository {
	return &ExpressionRepository{client: client, logger: logger}
}

// Create creates an expression with its Work, title Nomens, category,
// contributor edges and derivation edge in one transaction. When an external
// registry id on the input is already registered, the existing expression's
// id is returned instead and nothing is written.
func (r *ExpressionRepository) Create(ctx context.Context, input *entities.CreateExpressionInput) (string, bool, error) {
	if !input.Type.IsValid() {
		return "", false, apperrors.NewUnprocessableError("unknown expression type " + string(input.Type))
	}
	if input.Type == entities.ExpressionTypeCommentary && (input.ParentID == "" || input.ParentID == NoParent) {
		return "", false, apperrors.NewNotImplementedError("standalone commentaries are not supported")
	}
	if input.Type == entities.ExpressionTypeTranslation && input.ParentID == "" {
		return "", false, apperrors.NewValidationError("a translation requires a parent expression")
	}

	type createResult struct {
		id       string
		existing bool
	}
	result, err := r.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		for _, externalID := range []string{input.BdrcID, input.WikidataID} {
			if externalID == "" {
				continue
			}
			recs, err := runCollect(ctx, tx, catalog.LookupExpressionByExternalID, map[string]interface{}{"external_id": externalID})
			if err != nil {
				return nil, err
			}
			if len(recs) > 0 {
				return createResult{id: stringVal(recs[0], "id"), existing: true}, nil
			}
		}

		if err := validateLanguages(ctx, tx, []string{input.Language}); err != nil {
			return nil, err
		}
		if err := validateTitleUnique(ctx, tx, input.Title); err != nil {
			return nil, err
		}
		if input.CategoryID != "" {
			if err := validateCategoryExists(ctx, tx, input.CategoryID); err != nil {
				return nil, err
			}
		}
		if err := validatePersons(ctx, tx, input.Contributions); err != nil {
			return nil, err
		}
		if input.Type.IsDerived() && input.ParentID != NoParent {
			if err := validateExpressionExists(ctx, tx, input.ParentID); err != nil {
				return nil, err
			}
			if input.Type == entities.ExpressionTypeTranslation {
				rec, err := runSingle(ctx, tx, catalog.GetExpressionLanguage, map[string]interface{}{"id": input.ParentID})
				if err != nil {
					return nil, err
				}
				if stringVal(rec, "language") == input.Language {
					return nil, apperrors.NewValidationError("a translation must differ in language from its source")
				}
			}
		}

		expressionID := ids.New()
		if _, err := runSingle(ctx, tx, catalog.CreateExpressionWithWork, map[string]interface{}{
			"work_id":      ids.New(),
			"id":           expressionID,
			"bdrc_id":      input.BdrcID,
			"wikidata_id":  input.WikidataID,
			"type":         string(input.Type),
			"language":     input.Language,
			"language_tag": input.LanguageTag,
			"date":         input.Date,
			"license":      string(input.License),
			"copyright":    input.Copyright,
			"original":     input.Type == entities.ExpressionTypeRoot,
		}); err != nil {
			return nil, err
		}

		nomenID, err := createNomenWithTx(ctx, tx, input.Title, input.AltTitles)
		if err != nil {
			return nil, err
		}
		if err := runWrite(ctx, tx, catalog.LinkNomen("Expression", "HAS_TITLE"), map[string]interface{}{
			"owner_id": expressionID,
			"nomen_id": nomenID,
		}); err != nil {
			return nil, err
		}

		if input.CategoryID != "" {
			if err := runWrite(ctx, tx, catalog.LinkExpressionCategory, map[string]interface{}{
				"expression_id": expressionID,
				"category_id":   input.CategoryID,
			}); err != nil {
				return nil, err
			}
		}

		for _, c := range input.Contributions {
			var query string
			params := map[string]interface{}{"expression_id": expressionID, "role": c.Role}
			switch {
			case c.AIID != "":
				query = catalog.UpsertAIContributor
				params["ai_id"] = c.AIID
			case c.PersonID != "":
				query = catalog.LinkContributor
				params["person_id"] = c.PersonID
			default:
				query = catalog.LinkContributorByBdrcID
				params["person_bdrc_id"] = c.PersonBdrcID
			}
			if err := runWrite(ctx, tx, query, params); err != nil {
				return nil, err
			}
		}

		if input.Type.IsDerived() && input.ParentID != NoParent {
			rel := "TRANSLATION_OF"
			if input.Type == entities.ExpressionTypeCommentary {
				rel = "COMMENTARY_OF"
			}
			if err := runWrite(ctx, tx, catalog.DeriveEdge(rel), map[string]interface{}{
				"expression_id": expressionID,
				"parent_id":     input.ParentID,
			}); err != nil {
				return nil, err
			}
		}

		return createResult{id: expressionID}, nil
	})
	if err != nil {
		return "", false, err
	}
	res := result.(createResult)
	return res.id, res.existing, nil
}

// Get resolves an expression by id or external registry id, with titles and
// contributions.
func (r *ExpressionRepository) Get(ctx context.Context, id string) (*entities.Expression, error) {
	result, err := r.client.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		return readExpression(ctx, tx, id)
	})
	if err != nil {
		return nil, err
	}
	return result.(*entities.Expression), nil
}

// List pages through expressions matching the filter
func (r *ExpressionRepository) List(ctx context.Context, filter entities.ExpressionFilter, limit, offset int) ([]entities.Expression, error) {
	result, err := r.client.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		recs, err := runCollect(ctx, tx, catalog.ListExpressions, map[string]interface{}{
			"type":     string(filter.Type),
			"language": filter.Language,
			"title":    filter.Title,
			"limit":    limit,
			"offset":   offset,
		})
		if err != nil {
			return nil, err
		}
		expressions := make([]entities.Expression, 0, len(recs))
		for _, rec := range recs {
			expr, err := readExpression(ctx, tx, stringVal(rec, "id"))
			if err != nil {
				return nil, err
			}
			expressions = append(expressions, *expr)
		}
		return expressions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]entities.Expression), nil
}

// MergeTitle merges tag/text entries into the expression's primary title.
// Existing localizations for a tag are rewritten; new tags are appended;
// untouched languages are preserved.
func (r *ExpressionRepository) MergeTitle(ctx context.Context, id string, title map[string]string) error {
	_, err := r.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		recs, err := runCollect(ctx, tx, catalog.CollectNomenTexts("Expression", "HAS_TITLE"), map[string]interface{}{"owner_id": id})
		if err != nil {
			return nil, err
		}
		if len(recs) == 0 {
			return nil, apperrors.NewNotFoundError("expression " + id)
		}
		return nil, mergeNomenTexts(ctx, tx, stringVal(recs[0], "nomen_id"), title)
	})
	return err
}

// Related walks the derivation graph out of an edition's expression and
// returns the related expressions, optionally filtered by type.
func (r *ExpressionRepository) Related(ctx context.Context, manifestationID string, exprType entities.ExpressionType) ([]entities.Expression, error) {
	result, err := r.client.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		n, err := runCount(ctx, tx, catalog.CountManifestationsByID, map[string]interface{}{"id": manifestationID})
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, apperrors.NewNotFoundError("manifestation " + manifestationID)
		}
		recs, err := runCollect(ctx, tx, catalog.RelatedExpressions, map[string]interface{}{
			"manifestation_id": manifestationID,
			"type":             string(exprType),
		})
		if err != nil {
			return nil, err
		}
		expressions := make([]entities.Expression, 0, len(recs))
		for _, rec := range recs {
			expr, err := readExpression(ctx, tx, stringVal(rec, "id"))
			if err != nil {
				return nil, err
			}
			expressions = append(expressions, *expr)
		}
		return expressions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]entities.Expression), nil
}

// readExpression assembles the full expression read model inside a transaction
func readExpression(ctx context.Context, tx neo4j.ManagedTransaction, id string) (*entities.Expression, error) {
	recs, err := runCollect(ctx, tx, catalog.GetExpression, map[string]interface{}{"id": id})
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, apperrors.NewNotFoundError("expression " + id)
	}
	rec := recs[0]
	expr := &entities.Expression{
		ID:            stringVal(rec, "id"),
		WorkID:        stringVal(rec, "work_id"),
		BdrcID:        stringVal(rec, "bdrc_id"),
		WikidataID:    stringVal(rec, "wikidata_id"),
		Type:          entities.ExpressionType(stringVal(rec, "type")),
		Language:      stringVal(rec, "language"),
		LanguageTag:   stringVal(rec, "language_tag"),
		Date:          stringVal(rec, "date"),
		License:       entities.License(stringVal(rec, "license")),
		Copyright:     stringVal(rec, "copyright"),
		CategoryID:    stringVal(rec, "category_id"),
		TranslationOf: stringVal(rec, "translation_of"),
		CommentaryOf:  stringVal(rec, "commentary_of"),
	}

	titleRecs, err := runCollect(ctx, tx, catalog.CollectNomenTexts("Expression", "HAS_TITLE"), map[string]interface{}{"owner_id": expr.ID})
	if err != nil {
		return nil, err
	}
	if len(titleRecs) > 0 {
		expr.Title = textsVal(titleRecs[0], "texts")
	}
	altRecs, err := runCollect(ctx, tx, catalog.CollectAlternativeNomenTexts("Expression", "HAS_TITLE"), map[string]interface{}{"owner_id": expr.ID})
	if err != nil {
		return nil, err
	}
	for _, altRec := range altRecs {
		expr.AltTitles = append(expr.AltTitles, textsVal(altRec, "texts"))
	}

	contribRecs, err := runCollect(ctx, tx, catalog.GetExpressionContributions, map[string]interface{}{"id": expr.ID})
	if err != nil {
		return nil, err
	}
	for _, cr := range contribRecs {
		contribution := entities.Contribution{Role: stringVal(cr, "role")}
		if boolVal(cr, "is_ai") {
			contribution.AIID = stringVal(cr, "person_id")
		} else {
			contribution.PersonID = stringVal(cr, "person_id")
		}
		expr.Contributions = append(expr.Contributions, contribution)
	}

	return expr, nil
}
