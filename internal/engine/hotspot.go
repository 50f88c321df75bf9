package engine

import (
	"fmt"
	"sort"

	"github.com/reviewlens/reviewlens/internal/config"
)

type fileStat struct {
	path     string
	churn    int
	findings int
}

// computeHotspots scores each file with non-zero churn or at least one
// issue as risk = severity_weight*findings + churn_weight*churn, keeps
// files with risk > 0, sorts descending, and formats the top 5 as
// "{path} (risk {risk})".
func computeHotspots(stats map[string]fileStat, weights config.HotspotWeights) []string {
	severityWeight := 3
	if weights.Severity != nil {
		severityWeight = *weights.Severity
	}
	churnWeight := 1
	if weights.Churn != nil {
		churnWeight = *weights.Churn
	}

	type scored struct {
		path string
		risk int
	}
	var scoredFiles []scored
	for path, s := range stats {
		if s.churn == 0 && s.findings == 0 {
			continue
		}
		risk := severityWeight*s.findings + churnWeight*s.churn
		if risk <= 0 {
			continue
		}
		scoredFiles = append(scoredFiles, scored{path: path, risk: risk})
	}

	sort.Slice(scoredFiles, func(i, j int) bool {
		if scoredFiles[i].risk != scoredFiles[j].risk {
			return scoredFiles[i].risk > scoredFiles[j].risk
		}
		return scoredFiles[i].path < scoredFiles[j].path
	})

	if len(scoredFiles) > 5 {
		scoredFiles = scoredFiles[:5]
	}

	hotspots := make([]string, 0, len(scoredFiles))
	for _, s := range scoredFiles {
		hotspots = append(hotspots, fmt.Sprintf("%s (risk %d)", s.path, s.risk))
	}
	return hotspots
}
