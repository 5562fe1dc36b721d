package graph

import (
	"context"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"textgraph/domain/core/entities"
	"textgraph/infrastructure/persistence/graph/catalog"
	apperrors "textgraph/pkg/errors"
	"textgraph/pkg/ids"
)

// CategoryRepository manages per-application category forests
type CategoryRepository struct {
	client *Client
	logger *zap.Logger
}

// NewCategoryRepository creates a CategoryRepository
func NewCategoryRepository(client *Client, logger *zap.Logger) *CategoryRepository {
	return &CategoryRepository{client: client, logger: logger}
}

// Create creates a category under an application, optionally below a parent.
// Sibling titles must be unique case-insensitively.
func (r *CategoryRepository) Create(ctx context.Context, input *entities.CreateCategoryInput) (string, error) {
	if input.Application == "" {
		return "", apperrors.NewInvalidRequestError("an application is required")
	}
	result, err := r.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		if input.ParentID != "" {
			if err := validateCategoryExists(ctx, tx, input.ParentID); err != nil {
				return nil, err
			}
		}

		titles := make([]interface{}, 0, len(input.Title))
		for _, text := range input.Title {
			titles = append(titles, strings.ToLower(text))
		}
		n, err := runCount(ctx, tx, catalog.CountSiblingTitles, map[string]interface{}{
			"application": input.Application,
			"parent_id":   input.ParentID,
			"titles":      titles,
		})
		if err != nil {
			return nil, err
		}
		if n > 0 {
			return nil, apperrors.NewValidationError("a sibling category with this title already exists")
		}

		categoryID := ids.New()
		if _, err := runSingle(ctx, tx, catalog.CreateCategory, map[string]interface{}{
			"id":          categoryID,
			"application": input.Application,
		}); err != nil {
			return nil, err
		}
		if input.ParentID != "" {
			if err := runWrite(ctx, tx, catalog.LinkCategoryParent, map[string]interface{}{
				"id":        categoryID,
				"parent_id": input.ParentID,
			}); err != nil {
				return nil, err
			}
		}

		nomenID, err := createNomenWithTx(ctx, tx, input.Title, input.AltTitles)
		if err != nil {
			return nil, err
		}
		if err := runWrite(ctx, tx, catalog.LinkNomen("Category", "HAS_TITLE"), map[string]interface{}{
			"owner_id": categoryID,
			"nomen_id": nomenID,
		}); err != nil {
			return nil, err
		}
		return categoryID, nil
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

// List returns one sibling level of an application's category forest: the
// roots when parentID is empty, otherwise the children of parentID.
func (r *CategoryRepository) List(ctx context.Context, application, parentID string) ([]entities.Category, error) {
	if application == "" {
		return nil, apperrors.NewInvalidRequestError("an application is required")
	}
	result, err := r.client.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		if parentID != "" {
			if err := validateCategoryExists(ctx, tx, parentID); err != nil {
				return nil, err
			}
		}
		recs, err := runCollect(ctx, tx, catalog.ListCategories, map[string]interface{}{
			"application": application,
			"parent_id":   parentID,
		})
		if err != nil {
			return nil, err
		}
		categories := make([]entities.Category, 0, len(recs))
		for _, rec := range recs {
			categories = append(categories, entities.Category{
				ID:          stringVal(rec, "id"),
				Application: application,
				ParentID:    parentID,
				Title:       textsVal(rec, "titles"),
				HasChild:    boolVal(rec, "has_child"),
			})
		}
		return categories, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]entities.Category), nil
}
