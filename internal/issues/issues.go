// Package issues groups negative reviews into keyword-driven issue
// clusters. Clusters are derived on demand from the current ledger
// snapshot and have no identity across calls.
package issues

import (
	"sort"
	"strings"

	"github.com/hasinimarella/miniproject/internal/sentiment"
	"github.com/hasinimarella/miniproject/internal/trends"
)

// minReviews is the ledger size below which clustering reports no data.
const minReviews = 3

const clusteringMethod = "keyword_frequency"

// Severity classifies a cluster by how many reviews share its issue.
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// Cluster is one keyword-driven complaint theme.
type Cluster struct {
	ClusterID        int      `json:"cluster_id"`
	PrimaryIssue     string   `json:"primary_issue"`
	Frequency        int      `json:"frequency"`
	RelatedReviewIDs []string `json:"related_reviews"`
	Severity         Severity `json:"severity"`
	Recommendation   string   `json:"recommendation"`
}

// ClusterReport is the result of one clustering run.
type ClusterReport struct {
	TotalReviews         int       `json:"total_reviews"`
	TotalNegativeReviews int       `json:"total_negative_reviews"`
	Clusters             []Cluster `json:"clusters"`
	Method               string    `json:"clustering_method"`
}

// Clusterer clusters negative reviews from a ledger.
type Clusterer struct {
	ledger *trends.Ledger
}

// NewClusterer creates a clusterer over the given ledger.
func NewClusterer(ledger *trends.Ledger) *Clusterer {
	return &Clusterer{ledger: ledger}
}

// Cluster groups negative reviews by shared keyword and returns the
// top maxClusters themes by descending frequency. Ties rank by first
// appearance in the scan. Degenerate inputs (fewer than three reviews
// total, or no negative reviews) yield an empty report.
func (c *Clusterer) Cluster(maxClusters int) ClusterReport {
	reviews := c.ledger.Snapshot()
	report := ClusterReport{TotalReviews: len(reviews), Method: clusteringMethod}

	if len(reviews) < minReviews {
		return report
	}

	var negatives []trends.ScoredReview
	for _, r := range reviews {
		if r.Label == sentiment.LabelNegative {
			negatives = append(negatives, r)
		}
	}
	report.TotalNegativeReviews = len(negatives)
	if len(negatives) == 0 {
		return report
	}

	counts := make(map[string]int)
	related := make(map[string][]string)
	var firstSeen []string

	for _, r := range negatives {
		seenInReview := make(map[string]bool)
		for _, kw := range r.Keywords {
			if counts[kw] == 0 {
				firstSeen = append(firstSeen, kw)
			}
			counts[kw]++
			if !seenInReview[kw] {
				related[kw] = append(related[kw], r.ReviewID)
				seenInReview[kw] = true
			}
		}
	}

	// Stable sort over first-seen order pins the frequency tie-break.
	ranked := make([]string, len(firstSeen))
	copy(ranked, firstSeen)
	sort.SliceStable(ranked, func(i, j int) bool {
		return counts[ranked[i]] > counts[ranked[j]]
	})

	if maxClusters > 0 && len(ranked) > maxClusters {
		ranked = ranked[:maxClusters]
	}

	for i, kw := range ranked {
		ids := related[kw]
		report.Clusters = append(report.Clusters, Cluster{
			ClusterID:        i + 1,
			PrimaryIssue:     kw,
			Frequency:        counts[kw],
			RelatedReviewIDs: ids,
			Severity:         clusterSeverity(len(ids)),
			Recommendation:   recommendation(kw),
		})
	}
	return report
}

func clusterSeverity(relatedCount int) Severity {
	switch {
	case relatedCount >= 10:
		return SeverityCritical
	case relatedCount >= 5:
		return SeverityHigh
	case relatedCount >= 3:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// themeBuckets are checked in priority order.
var themeBuckets = []struct {
	words          []string
	recommendation string
}{
	{[]string{"staff", "doctor", "nurse"}, "Review staff training and conduct 1-on-1 meetings"},
	{[]string{"clean", "dirty", "hygiene"}, "Increase housekeeping frequency and conduct audits"},
	{[]string{"food", "meal", "diet"}, "Review food preparation procedures with catering team"},
	{[]string{"wait", "delay", "slow"}, "Review process efficiency and resource allocation"},
	{[]string{"pain", "discomfort", "ache"}, "Review pain management protocols with medical team"},
}

func recommendation(issue string) string {
	lower := strings.ToLower(issue)
	for _, bucket := range themeBuckets {
		for _, word := range bucket.words {
			if strings.Contains(lower, word) {
				return bucket.recommendation
			}
		}
	}
	return "Investigate and implement corrective measures"
}
