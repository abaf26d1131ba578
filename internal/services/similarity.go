package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"talenthub/recruitment-api/internal/models"
)

// SimilarityIndex holds one CV embedding per application and answers
// nearest-neighbour lookups for recruiters. Indexing is best-effort; the
// pipeline never fails because the index is unavailable.
type SimilarityIndex interface {
	InitCollection() error
	IndexApplication(ctx context.Context, app *models.Application) error
	FindSimilar(ctx context.Context, app *models.Application, limit int) ([]SimilarCandidate, error)
	DeleteApplication(ctx context.Context, applicationID uuid.UUID) error
}

type SimilarCandidate struct {
	ApplicationID string
	JobRoleID     string
	CandidateName string
	Score         float32
}

type qdrantSimilarityIndex struct {
	client         *qdrant.Client
	embedder       EmbeddingGenerator
	collectionName string
	vectorSize     uint64
}

func NewQdrantSimilarityIndex(urlStr, apiKey, collectionName string, embedder EmbeddingGenerator) (SimilarityIndex, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port, 6334 unless the URL says otherwise
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &qdrantSimilarityIndex{
		client:         client,
		embedder:       embedder,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004 dimension
	}, nil
}

func (q *qdrantSimilarityIndex) InitCollection() error {
	ctx := context.Background()

	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", q.collectionName)
	return nil
}

func (q *qdrantSimilarityIndex) IndexApplication(ctx context.Context, app *models.Application) error {
	embedding, err := q.embedder.GenerateEmbedding(ctx, app.CVText)
	if err != nil {
		return fmt.Errorf("failed to embed CV text: %w", err)
	}

	point := &qdrant.PointStruct{
		Id:      qdrant.NewID(app.ID.String()),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"application_id": app.ID.String(),
			"job_role_id":    app.JobRoleID.String(),
			"candidate_name": app.CandidateName,
		}),
	}

	_, err = q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

func (q *qdrantSimilarityIndex) FindSimilar(ctx context.Context, app *models.Application, limit int) ([]SimilarCandidate, error) {
	embedding, err := q.embedder.GenerateEmbedding(ctx, app.CVText)
	if err != nil {
		return nil, fmt.Errorf("failed to embed CV text: %w", err)
	}

	// Ask for one extra so the application itself can be dropped
	searchResult, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(embedding...),
		Limit:          qdrant.PtrOf(uint64(limit + 1)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	var results []SimilarCandidate
	for _, point := range searchResult {
		candidate := SimilarCandidate{Score: point.Score}

		if v, ok := point.Payload["application_id"]; ok {
			if s, ok := v.GetKind().(*qdrant.Value_StringValue); ok {
				candidate.ApplicationID = s.StringValue
			}
		}
		if v, ok := point.Payload["job_role_id"]; ok {
			if s, ok := v.GetKind().(*qdrant.Value_StringValue); ok {
				candidate.JobRoleID = s.StringValue
			}
		}
		if v, ok := point.Payload["candidate_name"]; ok {
			if s, ok := v.GetKind().(*qdrant.Value_StringValue); ok {
				candidate.CandidateName = s.StringValue
			}
		}

		if candidate.ApplicationID == app.ID.String() {
			continue
		}

		results = append(results, candidate)
		if len(results) == limit {
			break
		}
	}

	return results, nil
}

func (q *qdrantSimilarityIndex) DeleteApplication(ctx context.Context, applicationID uuid.UUID) error {
	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Points{
				Points: &qdrant.PointsIdsList{
					Ids: []*qdrant.PointId{qdrant.NewID(applicationID.String())},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete point: %w", err)
	}
	return nil
}
