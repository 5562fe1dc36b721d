package graph

import (
	"context"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"textgraph/domain/core/valueobjects"
	"textgraph/infrastructure/persistence/graph/catalog"
	apperrors "textgraph/pkg/errors"
	"textgraph/pkg/ids"
)

// baseCode is the graph layer's shorthand for the shared tag helper
func baseCode(tag string) string {
	return valueobjects.BaseLanguageCode(tag)
}

// createNomenWithTx creates a primary Nomen with its localized texts plus
// one alternative Nomen per entry in alternatives, inside the caller's
// transaction. All base language codes are validated in one batched check
// before anything is written. Returns the primary Nomen's id.
func createNomenWithTx(ctx context.Context, tx neo4j.ManagedTransaction, primary map[string]string, alternatives []map[string]string) (string, error) {
	if len(primary) == 0 {
		return "", apperrors.NewValidationError("a primary localized text is required")
	}

	codes := make(map[string]struct{})
	for tag := range primary {
		codes[baseCode(tag)] = struct{}{}
	}
	for _, alt := range alternatives {
		for tag := range alt {
			codes[baseCode(tag)] = struct{}{}
		}
	}
	codeList := make([]interface{}, 0, len(codes))
	for code := range codes {
		codeList = append(codeList, code)
	}

	rec, err := runSingle(ctx, tx, catalog.MissingLanguages, map[string]interface{}{"codes": codeList})
	if err != nil {
		return "", err
	}
	if missing := stringsVal(rec, "missing"); len(missing) > 0 {
		return "", apperrors.NewValidationError("unknown language code: " + strings.Join(missing, ", "))
	}

	primaryID, err := createSingleNomen(ctx, tx, primary)
	if err != nil {
		return "", err
	}

	for _, alt := range alternatives {
		if len(alt) == 0 {
			continue
		}
		altID, err := createSingleNomen(ctx, tx, alt)
		if err != nil {
			return "", err
		}
		if err := runWrite(ctx, tx, catalog.LinkAlternativeNomen, map[string]interface{}{
			"alt_id":     altID,
			"primary_id": primaryID,
		}); err != nil {
			return "", err
		}
	}

	return primaryID, nil
}

// createSingleNomen creates one Nomen node with its tag→text localizations
func createSingleNomen(ctx context.Context, tx neo4j.ManagedTransaction, texts map[string]string) (string, error) {
	nomenID := ids.New()
	if _, err := runSingle(ctx, tx, catalog.CreateNomen, map[string]interface{}{"id": nomenID}); err != nil {
		return "", err
	}
	for tag, text := range texts {
		if err := runWrite(ctx, tx, catalog.AddLocalizedText, map[string]interface{}{
			"nomen_id": nomenID,
			"id":       ids.New(),
			"text":     text,
			"tag":      tag,
			"code":     baseCode(tag),
		}); err != nil {
			return "", err
		}
	}
	return nomenID, nil
}

// mergeNomenTexts merges tag→text entries into an existing Nomen: entries
// whose tag already has a localization are rewritten in place, the rest are
// appended. Untouched languages are preserved.
func mergeNomenTexts(ctx context.Context, tx neo4j.ManagedTransaction, nomenID string, texts map[string]string) error {
	codes := make([]interface{}, 0, len(texts))
	for tag := range texts {
		codes = append(codes, baseCode(tag))
	}
	rec, err := runSingle(ctx, tx, catalog.MissingLanguages, map[string]interface{}{"codes": codes})
	if err != nil {
		return err
	}
	if missing := stringsVal(rec, "missing"); len(missing) > 0 {
		return apperrors.NewValidationError("unknown language code: " + strings.Join(missing, ", "))
	}

	for tag, text := range texts {
		rec, err := runSingle(ctx, tx, catalog.UpdateLocalizedTextByTag, map[string]interface{}{
			"nomen_id": nomenID,
			"tag":      tag,
			"text":     text,
		})
		if err != nil {
			return err
		}
		if intVal(rec, "n") > 0 {
			continue
		}
		if err := runWrite(ctx, tx, catalog.AddLocalizedText, map[string]interface{}{
			"nomen_id": nomenID,
			"id":       ids.New(),
			"text":     text,
			"tag":      tag,
			"code":     baseCode(tag),
		}); err != nil {
			return err
		}
	}
	return nil
}
