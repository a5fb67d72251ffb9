// Package pool groups candidates into talent pools by propagating labels
// over the shared-skill graph: candidates are connected when their skill or
// domain sets overlap, and label propagation clusters the connected regions.
package pool

import (
	"sort"
	"strings"

	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/core/model"
)

type Detector struct {
	MaxIterations int
	// MinSharedTerms is the overlap needed before two candidates count as
	// connected.
	MinSharedTerms int
}

func NewDetector() *Detector {
	return &Detector{
		MaxIterations:  20,
		MinSharedTerms: 1,
	}
}

// Detect returns pools of size >= 2; isolated candidates are filtered out.
func (d *Detector) Detect(candidates []model.CandidateProfile) [][]model.CandidateProfile {
	if len(candidates) == 0 {
		return nil
	}

	// 1. Adjacency weighted by the number of shared skill/domain terms.
	terms := make([]map[string]bool, len(candidates))
	for i, c := range candidates {
		terms[i] = termSet(c)
	}

	adj := make([]map[int]int, len(candidates))
	for i := range adj {
		adj[i] = make(map[int]int)
	}
	for i := 0; i < len(candidates); i++ {
		for j := i + 1; j < len(candidates); j++ {
			if w := overlap(terms[i], terms[j]); w >= d.MinSharedTerms {
				adj[i][j] = w
				adj[j][i] = w
			}
		}
	}

	// 2. Each candidate starts in its own pool, labeled by its id.
	labels := make([]string, len(candidates))
	for i, c := range candidates {
		labels[i] = c.ID
	}

	// 3. Propagation loop: adopt the weight-dominant label among neighbors,
	// until no label changes.
	for iter := 0; iter < d.MaxIterations; iter++ {
		changeCount := 0

		for u := range candidates {
			neighbors := adj[u]
			if len(neighbors) == 0 {
				continue
			}

			labelWeights := make(map[string]int)
			maxWeight := 0
			for v, w := range neighbors {
				labelWeights[labels[v]] += w
				if labelWeights[labels[v]] > maxWeight {
					maxWeight = labelWeights[labels[v]]
				}
			}

			var best []string
			for label, w := range labelWeights {
				if w == maxWeight {
					best = append(best, label)
				}
			}

			// Lexicographically largest label wins ties, for stability.
			sort.Strings(best)
			bestLabel := best[len(best)-1]

			if labels[u] != bestLabel {
				labels[u] = bestLabel
				changeCount++
			}
		}

		if changeCount == 0 {
			break
		}
	}

	// 4. Group by final label.
	clusters := make(map[string][]model.CandidateProfile)
	for i, label := range labels {
		clusters[label] = append(clusters[label], candidates[i])
	}

	var pools [][]model.CandidateProfile
	for _, cluster := range clusters {
		if len(cluster) >= 2 {
			pools = append(pools, cluster)
		}
	}

	return pools
}

func termSet(c model.CandidateProfile) map[string]bool {
	set := make(map[string]bool, len(c.Skills)+len(c.Domains))
	for _, s := range c.Skills {
		set[strings.ToLower(s)] = true
	}
	for _, s := range c.Domains {
		set[strings.ToLower(s)] = true
	}
	return set
}

func overlap(a, b map[string]bool) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for term := range a {
		if b[term] {
			n++
		}
	}
	return n
}
