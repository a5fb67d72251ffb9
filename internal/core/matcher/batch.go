package matcher

import (
	"context"
	"sync"

	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/core/model"
)

const defaultBatchWorkers = 4

// BatchResult isolates one candidate's outcome inside a batch match.
type BatchResult struct {
	CandidateID string
	Result      *model.MatchResult
	Err         error
}

// MatchBatch runs MatchToTeam for each candidate across a bounded worker
// pool. Per-item failures are isolated: one bad id produces one failed item
// and the rest of the batch completes. Results keep input order.
func (m *Matcher) MatchBatch(ctx context.Context, candidateIDs []string, workers int) []BatchResult {
	if workers <= 0 {
		workers = defaultBatchWorkers
	}
	if workers > len(candidateIDs) {
		workers = len(candidateIDs)
	}

	results := make([]BatchResult, len(candidateIDs))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = m.matchOne(ctx, candidateIDs[i])
			}
		}()
	}

	for i := range candidateIDs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

func (m *Matcher) matchOne(ctx context.Context, candidateID string) BatchResult {
	result, err := m.MatchToTeam(ctx, candidateID)
	if err != nil {
		return BatchResult{CandidateID: candidateID, Err: err}
	}
	return BatchResult{CandidateID: candidateID, Result: result}
}
