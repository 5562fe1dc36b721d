package graph

import (
	"context"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"textgraph/domain/core/entities"
	"textgraph/infrastructure/persistence/graph/catalog"
	apperrors "textgraph/pkg/errors"
)

// Pre-commit invariant checks. Each runs inside the caller's transaction so
// a violation rolls back any partial writes.

// validateLanguages checks that every base code exists as a Language node
func validateLanguages(ctx context.Context, tx neo4j.ManagedTransaction, codes []string) error {
	if len(codes) == 0 {
		return nil
	}
	list := make([]interface{}, len(codes))
	for i, c := range codes {
		list[i] = c
	}
	rec, err := runSingle(ctx, tx, catalog.MissingLanguages, map[string]interface{}{"codes": list})
	if err != nil {
		return err
	}
	if missing := stringsVal(rec, "missing"); len(missing) > 0 {
		return apperrors.NewValidationError("unknown language code: " + strings.Join(missing, ", "))
	}
	return nil
}

// validateCategoryExists checks the category reference
func validateCategoryExists(ctx context.Context, tx neo4j.ManagedTransaction, categoryID string) error {
	n, err := runCount(ctx, tx, catalog.CountCategoriesByID, map[string]interface{}{"id": categoryID})
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NewValidationError("category " + categoryID + " does not exist")
	}
	return nil
}

// validateExpressionExists checks the expression reference
func validateExpressionExists(ctx context.Context, tx neo4j.ManagedTransaction, expressionID string) error {
	n, err := runCount(ctx, tx, catalog.CountExpressionsByID, map[string]interface{}{"id": expressionID})
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NewValidationError("expression " + expressionID + " does not exist")
	}
	return nil
}

// validatePersons checks contributor references in two batches: by id and
// by external registry id.
func validatePersons(ctx context.Context, tx neo4j.ManagedTransaction, contributions []entities.Contribution) error {
	var byID, byBdrcID []interface{}
	for _, c := range contributions {
		switch {
		case c.AIID != "":
			// AI contributors are upserted, not validated
		case c.PersonID != "":
			byID = append(byID, c.PersonID)
		case c.PersonBdrcID != "":
			byBdrcID = append(byBdrcID, c.PersonBdrcID)
		default:
			return apperrors.NewValidationError("contribution has no person reference")
		}
	}

	if len(byID) > 0 {
		rec, err := runSingle(ctx, tx, catalog.MissingPersonsByID, map[string]interface{}{"ids": byID})
		if err != nil {
			return err
		}
		if missing := stringsVal(rec, "missing"); len(missing) > 0 {
			return apperrors.NewValidationError("unknown person: " + strings.Join(missing, ", "))
		}
	}
	if len(byBdrcID) > 0 {
		rec, err := runSingle(ctx, tx, catalog.MissingPersonsByBdrcID, map[string]interface{}{"ids": byBdrcID})
		if err != nil {
			return err
		}
		if missing := stringsVal(rec, "missing"); len(missing) > 0 {
			return apperrors.NewValidationError("unknown person: " + strings.Join(missing, ", "))
		}
	}
	return nil
}

// validateSingleRoot enforces at most one root expression per work
func validateSingleRoot(ctx context.Context, tx neo4j.ManagedTransaction, workID string) error {
	n, err := runCount(ctx, tx, catalog.CountRootExpressionsOfWork, map[string]interface{}{"work_id": workID})
	if err != nil {
		return err
	}
	if n > 0 {
		return apperrors.NewValidationError("work " + workID + " already has a root expression")
	}
	return nil
}

// validateSingleCritical enforces at most one critical edition per expression
func validateSingleCritical(ctx context.Context, tx neo4j.ManagedTransaction, expressionID string) error {
	n, err := runCount(ctx, tx, catalog.CountCriticalManifestations, map[string]interface{}{"expression_id": expressionID})
	if err != nil {
		return err
	}
	if n > 0 {
		return apperrors.NewValidationError("expression " + expressionID + " already has a critical edition")
	}
	return nil
}

// validateNoAnnotation enforces at most one layer of the given kind on a
// manifestation.
func validateNoAnnotation(ctx context.Context, tx neo4j.ManagedTransaction, manifestationID, kind string) error {
	n, err := runCount(ctx, tx, catalog.CountSegmentationsOfKind, map[string]interface{}{
		"manifestation_id": manifestationID,
		"type":             kind,
	})
	if err != nil {
		return err
	}
	if n > 0 {
		return apperrors.NewValidationError("manifestation " + manifestationID + " already has a " + kind + " annotation")
	}
	return nil
}

// validateNoAlignmentBetween enforces at most one alignment per peer pair
func validateNoAlignmentBetween(ctx context.Context, tx neo4j.ManagedTransaction, manifestationID, targetManifestationID string) error {
	n, err := runCount(ctx, tx, catalog.CountAlignmentsBetween, map[string]interface{}{
		"manifestation_id":        manifestationID,
		"target_manifestation_id": targetManifestationID,
	})
	if err != nil {
		return err
	}
	if n > 0 {
		return apperrors.NewValidationError("an alignment already connects these manifestations")
	}
	return nil
}

// validateTitleUnique checks title uniqueness across expressions, per
// language tag, case-insensitively.
func validateTitleUnique(ctx context.Context, tx neo4j.ManagedTransaction, title map[string]string) error {
	if len(title) == 0 {
		return nil
	}
	entries := make([]interface{}, 0, len(title))
	for tag, text := range title {
		entries = append(entries, map[string]interface{}{"tag": tag, "text": text})
	}
	n, err := runCount(ctx, tx, catalog.CountExpressionTitles, map[string]interface{}{"entries": entries})
	if err != nil {
		return err
	}
	if n > 0 {
		return apperrors.NewValidationError("an expression with this title already exists")
	}
	return nil
}
