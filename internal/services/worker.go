package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"talenthub/recruitment-api/internal/models"
	"talenthub/recruitment-api/internal/repositories"
)

// ScoringJob carries everything a detached scoring run needs; it holds no
// handle back to the request that enqueued it.
type ScoringJob struct {
	ApplicationID  uuid.UUID
	JobRoleID      uuid.UUID
	CandidateName  string
	CVText         string
	JobDescription string
}

// ScoringQueue dispatches background scoring jobs. Completion or failure of
// a job is invisible to the caller that enqueued it; results land in the
// evaluations table or in the log.
type ScoringQueue interface {
	Start(ctx context.Context)
	Stop()
	Enqueue(job ScoringJob)
}

type scoringQueue struct {
	scorer      Scorer
	evalRepo    repositories.EvaluationRepository
	index       SimilarityIndex
	jobQueue    chan ScoringJob
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
}

// NewScoringQueue builds the queue. index may be nil; similarity indexing is
// then skipped.
func NewScoringQueue(
	scorer Scorer,
	evalRepo repositories.EvaluationRepository,
	index SimilarityIndex,
	concurrency int,
	queueSize int,
) ScoringQueue {
	return &scoringQueue{
		scorer:      scorer,
		evalRepo:    evalRepo,
		index:       index,
		jobQueue:    make(chan ScoringJob, queueSize),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
	}
}

func (q *scoringQueue) Start(ctx context.Context) {
	log.Printf("🚀 Starting scoring queue with %d workers\n", q.concurrency)

	for i := 0; i < q.concurrency; i++ {
		q.wg.Add(1)
		go q.processJobs(ctx, i+1)
	}
}

func (q *scoringQueue) Stop() {
	log.Println("🛑 Stopping scoring queue...")
	close(q.stopChan)
	q.wg.Wait()
	log.Println("✅ Scoring queue stopped")
}

// Enqueue never blocks: dispatch happens inside the submitter's request
// path, and a backed-up queue must not delay the response. Scoring is
// best-effort, so a dropped job just leaves the application without an
// evaluation until a manual re-evaluation.
func (q *scoringQueue) Enqueue(job ScoringJob) {
	select {
	case <-q.stopChan:
		log.Printf("⚠️  Queue stopped, dropping scoring job for application %s\n", job.ApplicationID)
		return
	default:
	}

	select {
	case q.jobQueue <- job:
		log.Printf("📥 Scoring job for application %s enqueued\n", job.ApplicationID)
	default:
		log.Printf("⚠️  Scoring queue full, dropping job for application %s\n", job.ApplicationID)
	}
}

func (q *scoringQueue) processJobs(ctx context.Context, workerID int) {
	defer q.wg.Done()

	for {
		select {
		case <-q.stopChan:
			q.drain(ctx, workerID)
			log.Printf("👷 Scoring worker #%d stopped\n", workerID)
			return
		case job := <-q.jobQueue:
			q.process(ctx, workerID, job)
		}
	}
}

// drain finishes jobs already accepted into the queue before the worker
// exits, so Stop loses nothing that Enqueue acknowledged.
func (q *scoringQueue) drain(ctx context.Context, workerID int) {
	for {
		select {
		case job := <-q.jobQueue:
			q.process(ctx, workerID, job)
		default:
			return
		}
	}
}

func (q *scoringQueue) process(ctx context.Context, workerID int, job ScoringJob) {
	log.Printf("👷 Worker #%d scoring application %s\n", workerID, job.ApplicationID)

	result := q.scorer.Evaluate(ctx, job.CVText, job.JobDescription)
	if result.Fallback {
		log.Printf("⚠️  Application %s scored with fallback payload\n", job.ApplicationID)
	}

	eval := &models.Evaluation{
		ID:            uuid.New(),
		ApplicationID: job.ApplicationID,
		Score:         result.Score,
		Strengths:     result.Strengths,
		Weaknesses:    result.Weaknesses,
		Summary:       result.Summary,
		Model:         result.Model,
		EvaluatedAt:   time.Now(),
	}

	// The application may have been deleted while this job waited; the
	// insert then fails on the foreign key and is only logged.
	if err := q.evalRepo.Upsert(eval); err != nil {
		log.Printf("⚠️  Failed to persist evaluation for application %s: %v\n", job.ApplicationID, err)
		return
	}

	if q.index != nil {
		app := &models.Application{
			ID:            job.ApplicationID,
			JobRoleID:     job.JobRoleID,
			CandidateName: job.CandidateName,
			CVText:        job.CVText,
		}
		if err := q.index.IndexApplication(ctx, app); err != nil {
			log.Printf("⚠️  Failed to index CV for application %s: %v\n", job.ApplicationID, err)
		}
	}

	log.Printf("✅ Worker #%d completed application %s (score %d)\n", workerID, job.ApplicationID, eval.Score)
}
