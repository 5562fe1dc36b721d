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

// PersonRepository manages the contributor directory
type PersonRepository struct {
	client *Client
	logger *zap.Logger
}

// NewPersonRepository creates a PersonRepository
func NewPersonRepository(client *Client, logger *zap.Logger) *PersonRepository {
	return &PersonRepository{client: client, logger: logger}
}

// Create creates a person with their name Nomens
func (r *PersonRepository) Create(ctx context.Context, input *entities.CreatePersonInput) (string, error) {
	result, err := r.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		personID := ids.New()
		if _, err := runSingle(ctx, tx, catalog.CreatePerson, map[string]interface{}{
			"id":      personID,
			"bdrc_id": input.BdrcID,
		}); err != nil {
			return nil, err
		}
		nomenID, err := createNomenWithTx(ctx, tx, input.Name, input.AltNames)
		if err != nil {
			return nil, err
		}
		if err := runWrite(ctx, tx, catalog.LinkNomen("Person", "HAS_TITLE"), map[string]interface{}{
			"owner_id": personID,
			"nomen_id": nomenID,
		}); err != nil {
			return nil, err
		}
		return personID, nil
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

// Get resolves a person by id or external registry id, with names
func (r *PersonRepository) Get(ctx context.Context, id string) (*entities.Person, error) {
	result, err := r.client.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		return readPerson(ctx, tx, id)
	})
	if err != nil {
		return nil, err
	}
	return result.(*entities.Person), nil
}

// List pages through the person directory
func (r *PersonRepository) List(ctx context.Context, limit, offset int) ([]entities.Person, error) {
	result, err := r.client.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		recs, err := runCollect(ctx, tx, catalog.ListPersons, map[string]interface{}{
			"limit":  limit,
			"offset": offset,
		})
		if err != nil {
			return nil, err
		}
		persons := make([]entities.Person, 0, len(recs))
		for _, rec := range recs {
			p, err := readPerson(ctx, tx, stringVal(rec, "id"))
			if err != nil {
				return nil, err
			}
			persons = append(persons, *p)
		}
		return persons, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]entities.Person), nil
}

// Delete removes a person. Refused while contribution edges still reference
// them; a no-op when the id is absent.
func (r *PersonRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		n, err := runCount(ctx, tx, catalog.CountPersonContributions, map[string]interface{}{"id": id})
		if err != nil {
			return nil, err
		}
		if n > 0 {
			return nil, apperrors.NewValidationError("person " + id + " still has contributions")
		}
		if err := runWrite(ctx, tx, catalog.DeleteNomens("Person", "HAS_TITLE"), map[string]interface{}{"owner_id": id}); err != nil {
			return nil, err
		}
		return nil, runWrite(ctx, tx, catalog.DeletePerson, map[string]interface{}{"id": id})
	})
	return err
}

func readPerson(ctx context.Context, tx neo4j.ManagedTransaction, id string) (*entities.Person, error) {
	recs, err := runCollect(ctx, tx, catalog.GetPerson, map[string]interface{}{"id": id})
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, apperrors.NewNotFoundError("person " + id)
	}
	p := &entities.Person{
		ID:     stringVal(recs[0], "id"),
		BdrcID: stringVal(recs[0], "bdrc_id"),
	}

	nameRecs, err := runCollect(ctx, tx, catalog.CollectNomenTexts("Person", "HAS_TITLE"), map[string]interface{}{"owner_id": p.ID})
	if err != nil {
		return nil, err
	}
	if len(nameRecs) > 0 {
		p.Name = textsVal(nameRecs[0], "texts")
	}
	altRecs, err := runCollect(ctx, tx, catalog.CollectAlternativeNomenTexts("Person", "HAS_TITLE"), map[string]interface{}{"owner_id": p.ID})
	if err != nil {
		return nil, err
	}
	for _, altRec := range altRecs {
		p.AltNames = append(p.AltNames, textsVal(altRec, "texts"))
	}
	return p, nil
}
