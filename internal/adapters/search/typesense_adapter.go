package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/aarogyaai/backend/internal/domain/entities"
	"github.com/aarogyaai/backend/internal/domain/repositories"
	tsclient "github.com/aarogyaai/backend/internal/infrastructure/clients/typesense"
	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"
)

const collectionName = tsclient.DoctorsCollection

// TypesenseAdapter implements doctor search using Typesense
type TypesenseAdapter struct {
	client *tsclient.Client
}

// Ensure TypesenseAdapter implements DoctorSearchRepository
var _ repositories.DoctorSearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// InitSchema ensures the collection exists
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	// Check if collection exists
	_, err := a.client.Client().Collection(collectionName).Retrieve(ctx)
	if err == nil {
		return nil // Collection exists
	}

	// Create collection
	schema := &api.CollectionSchema{
		Name: collectionName,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "name", Type: "string"},
			{Name: "specialization", Type: "string", Facet: pointer.True()},
			{Name: "region", Type: "string", Facet: pointer.True()},
			{Name: "location", Type: "string"},
			{Name: "clinic", Type: "string", Optional: pointer.True()},
			{Name: "experience_years", Type: "int32"},
			{Name: "created_at", Type: "int64"},
		},
		DefaultSortingField: pointer.String("experience_years"),
	}

	_, err = a.client.Client().Collections().Create(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create typesense collection: %w", err)
	}

	return nil
}

// Index upserts a doctor into the index
func (a *TypesenseAdapter) Index(ctx context.Context, doctor *entities.Doctor) error {
	document := map[string]interface{}{
		"id":               doctor.ID,
		"name":             doctor.Name,
		"specialization":   doctor.Specialization,
		"region":           doctor.Region,
		"location":         doctor.Location,
		"clinic":           doctor.Clinic,
		"experience_years": int32(doctor.ExperienceYears()),
		"created_at":       doctor.CreatedAt.Unix(),
	}

	_, err := a.client.Client().Collection(collectionName).Documents().Upsert(ctx, document)
	if err != nil {
		return fmt.Errorf("failed to index doctor: %w", err)
	}

	return nil
}

// Delete removes a doctor from the index
func (a *TypesenseAdapter) Delete(ctx context.Context, id string) error {
	_, err := a.client.Client().Collection(collectionName).Document(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete doctor from index: %w", err)
	}
	return nil
}

// Search performs full-text search over the index. A free-text Query takes
// the place of the specialization term; region is always part of the query
// string so in-region hits rank first. Empty parameters fall back to a
// match-all query sorted by experience.
func (a *TypesenseAdapter) Search(ctx context.Context, params repositories.DoctorSearchParams) ([]*entities.Doctor, error) {
	terms := []string{}
	if q := strings.TrimSpace(params.Query); q != "" {
		terms = append(terms, q)
	} else if params.Specialization != "" {
		terms = append(terms, params.Specialization)
	}
	if params.Region != "" {
		terms = append(terms, params.Region)
	}

	query := strings.Join(terms, " ")
	if query == "" {
		query = "*"
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}

	searchParams := &api.SearchCollectionParams{
		Q:       pointer.String(query),
		QueryBy: pointer.String("specialization,region,location,name"),
		SortBy:  pointer.String("_text_match:desc,experience_years:desc"),
		PerPage: pointer.Int(limit),
	}

	result, err := a.client.Client().Collection(collectionName).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search doctors: %w", err)
	}

	doctors := []*entities.Doctor{}
	if result.Hits == nil {
		return doctors, nil
	}

	for _, hit := range *result.Hits {
		doc := *hit.Document

		// Typesense returns map[string]interface{}; the index carries only
		// the searchable projection, callers hydrate full records from the
		// primary store when they need more fields
		doctor := &entities.Doctor{
			ID:             asString(doc["id"]),
			Name:           asString(doc["name"]),
			Specialization: asString(doc["specialization"]),
			Region:         asString(doc["region"]),
			Location:       asString(doc["location"]),
			Clinic:         asString(doc["clinic"]),
		}
		if years, ok := doc["experience_years"].(float64); ok {
			doctor.Experience = fmt.Sprintf("%d Years", int(years))
		}

		doctors = append(doctors, doctor)
	}

	return doctors, nil
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}
