package organizer

import (
	"github.com/hbollon/go-edlib"

	"github.com/vmunix/cleanfolder/internal/category"
)

// maxSuggestDistance is the largest edit distance (adjacent swaps count as
// one edit) at which an unknown extension is still considered a typo.
const maxSuggestDistance = 1

// Suggest maps each unknown extension to the closest recognised one, e.g.
// "JPGE" -> "JPEG". Extensions with no close match, and very short ones, are
// left out.
func Suggest(unknown []string) map[string]string {
	known := category.AllExtensions()
	out := make(map[string]string)
	for _, ext := range unknown {
		if len(ext) < 3 {
			continue
		}
		best, bestDist := "", maxSuggestDistance+1
		for _, k := range known {
			if d := edlib.OSADamerauLevenshteinDistance(ext, k); d < bestDist {
				best, bestDist = k, d
			}
		}
		if best != "" {
			out[ext] = best
		}
	}
	return out
}
