package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/fadilmartias/job-matcher/internal/corpus"
	"github.com/fadilmartias/job-matcher/internal/dto"
	"github.com/fadilmartias/job-matcher/internal/model"
	"github.com/fadilmartias/job-matcher/internal/repository"
	"github.com/fadilmartias/job-matcher/internal/service"
	"github.com/fadilmartias/job-matcher/internal/util"
	"go.uber.org/zap"
)

const (
	// CollectionName is the durable index owned by the vector store.
	CollectionName = "job_collection"

	topK = 3
)

type VectorStoreInterface interface {
	EnsureCollection(ctx context.Context, name string) (*model.Collection, error)
	Upsert(ctx context.Context, collection *model.Collection, ids []string, documents []string, embeddings [][]float32) error
	Query(ctx context.Context, collection *model.Collection, embedding []float32, topK int) ([]repository.Neighbor, error)
}

// SearchUsecase composes the embedding provider, the classifier and the
// vector store to turn a query or a résumé into a ranked list of postings.
type SearchUsecase struct {
	store      VectorStoreInterface
	embedder   service.EmbeddingServiceInterface
	classifier service.ClassifierServiceInterface
	logger     *zap.Logger

	extractPDF func(path string) (string, error)

	mu         sync.Mutex
	indexed    bool
	collection *model.Collection
}

func NewSearchUsecase(store VectorStoreInterface, embedder service.EmbeddingServiceInterface, classifier service.ClassifierServiceInterface, logger *zap.Logger) *SearchUsecase {
	return &SearchUsecase{
		store:      store,
		embedder:   embedder,
		classifier: classifier,
		logger:     logger,
		extractPDF: util.ExtractPDFText,
	}
}

// IndexCorpus embeds the job corpus and upserts it into the collection.
// Idempotent; runs once at startup and is re-attempted by search paths if the
// startup run failed.
func (uc *SearchUsecase) IndexCorpus(ctx context.Context) error {
	_, err := uc.ensureIndexed(ctx)
	return err
}

func (uc *SearchUsecase) ensureIndexed(ctx context.Context) (*model.Collection, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.indexed {
		return uc.collection, nil
	}

	collection, err := uc.store.EnsureCollection(ctx, CollectionName)
	if err != nil {
		return nil, err
	}

	postings := corpus.Postings()
	ids := make([]string, len(postings))
	documents := make([]string, len(postings))
	for i, job := range postings {
		ids[i] = job.JobID
		documents[i] = job.Document()
	}

	embeddings, err := uc.embedder.EmbedTexts(ctx, documents)
	if err != nil {
		return nil, fmt.Errorf("embed job corpus: %w", err)
	}

	if err := uc.store.Upsert(ctx, collection, ids, documents, embeddings); err != nil {
		return nil, fmt.Errorf("index job corpus: %w", err)
	}

	uc.logger.Info("job corpus indexed",
		zap.String("collection", CollectionName),
		zap.Int("postings", len(postings)))

	uc.indexed = true
	uc.collection = collection
	return collection, nil
}

// SearchByQuery runs the text-query retrieval path.
func (uc *SearchUsecase) SearchByQuery(ctx context.Context, query string) ([]dto.SearchResult, *dto.FilterCriteria, error) {
	criteria := &dto.FilterCriteria{}

	if strings.TrimSpace(query) == "" {
		return nil, criteria, nil
	}

	collection, err := uc.ensureIndexed(ctx)
	if err != nil {
		return nil, criteria, err
	}

	criteria = uc.ExtractCriteria(ctx, query)

	embeddings, err := uc.embedder.EmbedTexts(ctx, []string{query})
	if err != nil {
		return nil, criteria, fmt.Errorf("embed query: %w", err)
	}

	neighbors, err := uc.store.Query(ctx, collection, embeddings[0], topK)
	if err != nil {
		return nil, criteria, fmt.Errorf("query collection: %w", err)
	}

	results := uc.mapNeighbors(neighbors)
	results = uc.applyCriteria(results, criteria)

	return results, criteria, nil
}

// SearchByResume runs the résumé-upload retrieval path against the PDF at
// the given path.
func (uc *SearchUsecase) SearchByResume(ctx context.Context, pdfPath string) ([]dto.SearchResult, error) {
	text, err := uc.extractPDF(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("extract resume text: %w", err)
	}

	collection, err := uc.ensureIndexed(ctx)
	if err != nil {
		return nil, err
	}

	embeddings, err := uc.embedder.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("embed resume: %w", err)
	}

	neighbors, err := uc.store.Query(ctx, collection, embeddings[0], topK)
	if err != nil {
		return nil, fmt.Errorf("query collection: %w", err)
	}

	return uc.mapNeighbors(neighbors), nil
}

// mapNeighbors resolves store ids back to corpus records, skipping stale ids
// with no corpus match, and returns results ascending by distance. The store
// already orders ascending but not every backend guarantees it, so the sort
// is defensive.
func (uc *SearchUsecase) mapNeighbors(neighbors []repository.Neighbor) []dto.SearchResult {
	results := make([]dto.SearchResult, 0, len(neighbors))
	for _, n := range neighbors {
		job, ok := corpus.Find(n.DocID)
		if !ok {
			uc.logger.Warn("stale id in collection", zap.String("doc_id", n.DocID))
			continue
		}
		results = append(results, dto.SearchResult{
			ID:                      job.JobID,
			Score:                   n.Distance,
			JobTitle:                job.JobTitle,
			JobDescription:          job.JobDescription,
			JobType:                 job.JobType,
			Company:                 job.Company,
			Location:                job.Location,
			Salary:                  job.Salary,
			JobResponsibilities:     job.JobResponsibilities,
			PreferredQualifications: job.PreferredQualifications,
			ApplicationDeadline:     job.ApplicationDeadline,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score < results[j].Score
	})

	return results
}

// applyCriteria post-filters results on the guessed location, company and
// job type. Single-token classification is unreliable, so the filter is
// advisory: if it would empty a non-empty result set it is skipped.
func (uc *SearchUsecase) applyCriteria(results []dto.SearchResult, criteria *dto.FilterCriteria) []dto.SearchResult {
	if criteria.Location == "" && criteria.Company == "" && criteria.JobType == "" {
		return results
	}

	filtered := make([]dto.SearchResult, 0, len(results))
	for _, r := range results {
		if criteria.Location != "" && !containsFold(r.Location, criteria.Location) {
			continue
		}
		if criteria.Company != "" && !containsFold(r.Company, criteria.Company) {
			continue
		}
		if criteria.JobType != "" && !containsFold(r.JobType, criteria.JobType) {
			continue
		}
		filtered = append(filtered, r)
	}

	if len(filtered) == 0 && len(results) > 0 {
		uc.logger.Info("criteria filter dropped every result, keeping unfiltered ranking",
			zap.String("location", criteria.Location),
			zap.String("company", criteria.Company),
			zap.String("job_type", criteria.JobType))
		return results
	}

	return filtered
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
