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

// BaseTextStore is the blob backend holding manifestation base texts
type BaseTextStore interface {
	Put(ctx context.Context, expressionID, manifestationID, content string) error
	Get(ctx context.Context, expressionID, manifestationID string) (string, error)
	GetRange(ctx context.Context, expressionID, manifestationID string, start, end int) (string, error)
	Delete(ctx context.Context, expressionID, manifestationID string) error
}

// ManifestationRepository manages editions: their graph subtree and their
// base text in the blob store.
type ManifestationRepository struct {
	client *Client
	texts  BaseTextStore
	logger *zap.Logger
}

// NewManifestationRepository creates a ManifestationRepository
func NewManifestationRepository(client *Client, texts BaseTextStore, logger *zap.Logger) *ManifestationRepository {
	return &ManifestationRepository{client: client, texts: texts, logger: logger}
}

func validateManifestationMetadata(md *entities.ManifestationMetadata) error {
	if !md.Type.IsValid() {
		return apperrors.NewUnprocessableError("unknown manifestation type " + string(md.Type))
	}
	if md.Type == entities.ManifestationTypeDiplomatic && md.BdrcID == "" {
		return apperrors.NewValidationError("a diplomatic edition requires a bdrc_id")
	}
	if md.Type == entities.ManifestationTypeCritical && md.BdrcID != "" {
		return apperrors.NewValidationError("a critical edition cannot carry a bdrc_id")
	}
	return nil
}

// Create creates an edition with its base text and initial annotation layers.
// The text is written to the blob store first and removed again when the
// graph transaction fails, so a failed create leaves nothing behind.
func (r *ManifestationRepository) Create(ctx context.Context, input *entities.CreateManifestationInput) (string, error) {
	if err := validateManifestationMetadata(&input.Metadata); err != nil {
		return "", err
	}

	manifestationID := ids.New()
	if err := r.texts.Put(ctx, input.ExpressionID, manifestationID, input.Content); err != nil {
		return "", err
	}

	_, err := r.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		if err := validateExpressionExists(ctx, tx, input.ExpressionID); err != nil {
			return nil, err
		}
		if input.Metadata.Type == entities.ManifestationTypeCritical {
			if err := validateSingleCritical(ctx, tx, input.ExpressionID); err != nil {
				return nil, err
			}
		}

		if _, err := runSingle(ctx, tx, catalog.CreateManifestation, map[string]interface{}{
			"expression_id": input.ExpressionID,
			"id":            manifestationID,
			"type":          string(input.Metadata.Type),
			"bdrc_id":       input.Metadata.BdrcID,
			"wikidata_id":   input.Metadata.WikidataID,
			"source":        input.Metadata.Source,
			"colophon":      input.Metadata.Colophon,
		}); err != nil {
			return nil, err
		}

		if err := linkIncipitTitle(ctx, tx, manifestationID, &input.Metadata); err != nil {
			return nil, err
		}
		for _, annotation := range input.Annotations {
			if _, err := addAnnotationWithTx(ctx, tx, manifestationID, annotation); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		if cleanupErr := r.texts.Delete(ctx, input.ExpressionID, manifestationID); cleanupErr != nil {
			r.logger.Error("orphaned base text after failed create",
				zap.String("manifestation_id", manifestationID), zap.Error(cleanupErr))
		}
		return "", err
	}
	return manifestationID, nil
}

func linkIncipitTitle(ctx context.Context, tx neo4j.ManagedTransaction, manifestationID string, md *entities.ManifestationMetadata) error {
	if len(md.IncipitTitle) == 0 {
		return nil
	}
	nomenID, err := createNomenWithTx(ctx, tx, md.IncipitTitle, md.IncipitAltTitles)
	if err != nil {
		return err
	}
	return runWrite(ctx, tx, catalog.LinkNomen("Manifestation", "HAS_TITLE"), map[string]interface{}{
		"owner_id": manifestationID,
		"nomen_id": nomenID,
	})
}

// Get resolves an edition by id or external registry id
func (r *ManifestationRepository) Get(ctx context.Context, id string) (*entities.Manifestation, error) {
	result, err := r.client.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		return readManifestation(ctx, tx, id)
	})
	if err != nil {
		return nil, err
	}
	return result.(*entities.Manifestation), nil
}

// List returns the editions of an expression, optionally filtered by type
func (r *ManifestationRepository) List(ctx context.Context, expressionID string, mType entities.ManifestationType) ([]entities.Manifestation, error) {
	result, err := r.client.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		if err := validateExpressionExists(ctx, tx, expressionID); err != nil {
			return nil, err
		}
		recs, err := runCollect(ctx, tx, catalog.ListManifestationsOfExpression, map[string]interface{}{
			"expression_id": expressionID,
			"type":          string(mType),
		})
		if err != nil {
			return nil, err
		}
		manifestations := make([]entities.Manifestation, 0, len(recs))
		for _, rec := range recs {
			m, err := readManifestation(ctx, tx, stringVal(rec, "id"))
			if err != nil {
				return nil, err
			}
			manifestations = append(manifestations, *m)
		}
		return manifestations, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]entities.Manifestation), nil
}

// GetContent reads the edition's base text, either whole or sliced to a
// byte range.
func (r *ManifestationRepository) GetContent(ctx context.Context, id string, start, end int, sliced bool) (string, error) {
	m, err := r.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if !sliced {
		return r.texts.Get(ctx, m.ExpressionID, m.ID)
	}
	if start < 0 || end < start {
		return "", apperrors.NewInvalidRequestError("span must satisfy 0 <= start <= end")
	}
	return r.texts.GetRange(ctx, m.ExpressionID, m.ID, start, end)
}

// Update replaces an edition's metadata and annotation subgraph wholesale in
// one transaction. The base text is untouched; alignment layers are removed
// on both sides before the new annotations are created.
func (r *ManifestationRepository) Update(ctx context.Context, id string, input *entities.UpdateManifestationInput) error {
	if err := validateManifestationMetadata(&input.Metadata); err != nil {
		return err
	}
	_, err := r.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		m, err := readManifestation(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		if input.Metadata.Type == entities.ManifestationTypeCritical && m.Type != entities.ManifestationTypeCritical {
			if err := validateSingleCritical(ctx, tx, m.ExpressionID); err != nil {
				return nil, err
			}
		}

		if err := runWrite(ctx, tx, catalog.UpdateManifestationScalars, map[string]interface{}{
			"id":          m.ID,
			"type":        string(input.Metadata.Type),
			"bdrc_id":     input.Metadata.BdrcID,
			"wikidata_id": input.Metadata.WikidataID,
			"source":      input.Metadata.Source,
			"colophon":    input.Metadata.Colophon,
		}); err != nil {
			return nil, err
		}

		if err := runWrite(ctx, tx, catalog.DeleteNomens("Manifestation", "HAS_TITLE"), map[string]interface{}{"owner_id": m.ID}); err != nil {
			return nil, err
		}
		if err := linkIncipitTitle(ctx, tx, m.ID, &input.Metadata); err != nil {
			return nil, err
		}

		if err := deleteAnnotationLayersWithTx(ctx, tx, m.ID); err != nil {
			return nil, err
		}
		for _, annotation := range input.Annotations {
			if _, err := addAnnotationWithTx(ctx, tx, m.ID, annotation); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	return err
}

// UpdateContent replaces the byte range [start, end) of the edition's base
// text with content. Every span anchored to the edition is relocated in the
// same graph transaction; the text itself is written first and restored when
// the transaction fails.
func (r *ManifestationRepository) UpdateContent(ctx context.Context, id string, start, end int, replaceAll bool, content string) error {
	m, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	oldText, err := r.texts.Get(ctx, m.ExpressionID, m.ID)
	if err != nil {
		return err
	}
	if replaceAll {
		start, end = 0, len(oldText)
	}
	if start < 0 || end < start || end > len(oldText) {
		return apperrors.NewInvalidRequestError("span exceeds the base text")
	}

	newText := oldText[:start] + content + oldText[end:]
	if err := r.texts.Put(ctx, m.ExpressionID, m.ID, newText); err != nil {
		return err
	}

	_, err = r.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		return nil, relocateSpansWithTx(ctx, tx, m.ID, "", start, end, len(content))
	})
	if err != nil {
		if restoreErr := r.texts.Put(ctx, m.ExpressionID, m.ID, oldText); restoreErr != nil {
			r.logger.Error("base text left inconsistent after failed relocation",
				zap.String("manifestation_id", m.ID), zap.Error(restoreErr))
		}
		return err
	}
	return nil
}

// Delete removes the edition's whole subtree and its base text. A no-op in
// the graph when the id is absent.
func (r *ManifestationRepository) Delete(ctx context.Context, id string) error {
	m, err := r.Get(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil
		}
		return err
	}
	_, err = r.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		if err := deleteAnnotationLayersWithTx(ctx, tx, m.ID); err != nil {
			return nil, err
		}
		if err := runWrite(ctx, tx, catalog.DeleteNomens("Manifestation", "HAS_TITLE"), map[string]interface{}{"owner_id": m.ID}); err != nil {
			return nil, err
		}
		return nil, runWrite(ctx, tx, catalog.DeleteManifestationSubgraph, map[string]interface{}{"id": m.ID})
	})
	if err != nil {
		return err
	}
	return r.texts.Delete(ctx, m.ExpressionID, m.ID)
}

// deleteAnnotationLayersWithTx removes every annotation layer of an edition:
// segmentations and paginations directly, alignments on both sides, notes
// and bibliographic metadata.
func deleteAnnotationLayersWithTx(ctx context.Context, tx neo4j.ManagedTransaction, manifestationID string) error {
	recs, err := runCollect(ctx, tx, catalog.ListSegmentationsOfManifestation, map[string]interface{}{"manifestation_id": manifestationID})
	if err != nil {
		return err
	}
	for _, rec := range recs {
		segmentationID := stringVal(rec, "id")
		switch stringVal(rec, "type") {
		case layerAlignmentSource, layerAlignmentTarget:
			if err := deleteAlignmentWithTx(ctx, tx, segmentationID); err != nil {
				if apperrors.IsNotFound(err) {
					continue
				}
				return err
			}
		default:
			if err := runWrite(ctx, tx, catalog.DeleteSegmentationSubgraph, map[string]interface{}{"id": segmentationID}); err != nil {
				return err
			}
		}
	}
	if err := runWrite(ctx, tx, catalog.DeleteManifestationNotes, map[string]interface{}{"manifestation_id": manifestationID}); err != nil {
		return err
	}
	return runWrite(ctx, tx, catalog.DeleteManifestationBibliography, map[string]interface{}{"manifestation_id": manifestationID})
}

// readManifestation assembles the edition read model inside a transaction
func readManifestation(ctx context.Context, tx neo4j.ManagedTransaction, id string) (*entities.Manifestation, error) {
	recs, err := runCollect(ctx, tx, catalog.GetManifestation, map[string]interface{}{"id": id})
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, apperrors.NewNotFoundError("manifestation " + id)
	}
	rec := recs[0]
	m := &entities.Manifestation{
		ID:           stringVal(rec, "id"),
		ExpressionID: stringVal(rec, "expression_id"),
		BdrcID:       stringVal(rec, "bdrc_id"),
		WikidataID:   stringVal(rec, "wikidata_id"),
		Type:         entities.ManifestationType(stringVal(rec, "type")),
		Source:       stringVal(rec, "source"),
		Colophon:     stringVal(rec, "colophon"),
	}

	titleRecs, err := runCollect(ctx, tx, catalog.CollectNomenTexts("Manifestation", "HAS_TITLE"), map[string]interface{}{"owner_id": m.ID})
	if err != nil {
		return nil, err
	}
	if len(titleRecs) > 0 {
		m.IncipitTitle = textsVal(titleRecs[0], "texts")
	}
	altRecs, err := runCollect(ctx, tx, catalog.CollectAlternativeNomenTexts("Manifestation", "HAS_TITLE"), map[string]interface{}{"owner_id": m.ID})
	if err != nil {
		return nil, err
	}
	for _, altRec := range altRecs {
		m.IncipitAltTitles = append(m.IncipitAltTitles, textsVal(altRec, "texts"))
	}

	return m, nil
}

// Exists reports whether an edition with the id is present
func (r *ManifestationRepository) Exists(ctx context.Context, id string) (bool, error) {
	result, err := r.client.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		n, err := runCount(ctx, tx, catalog.CountManifestationsByID, map[string]interface{}{"id": id})
		return n > 0, err
	})
	if err != nil {
		return false, err
	}
	return result.(bool), nil
}
