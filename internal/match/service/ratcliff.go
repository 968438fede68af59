package service

// Ratcliff-Obershelp similarity: find the longest common contiguous run,
// recurse on the unmatched left and right remainders, and relate the total
// matched length to the combined string length (2*M/T). Long shared runs
// dominate, which fits short product names better than plain edit distance.

func matchRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}
	m := matchedLen(ra, rb, 0, len(ra), 0, len(rb))
	return 2 * float64(m) / float64(total)
}

func matchedLen(a, b []rune, alo, ahi, blo, bhi int) int {
	i, j, k := longestMatch(a, b, alo, ahi, blo, bhi)
	if k == 0 {
		return 0
	}
	return k + matchedLen(a, b, alo, i, blo, j) + matchedLen(a, b, i+k, ahi, j+k, bhi)
}

// longestMatch finds the longest run a[i:i+k] == b[j:j+k] within the given
// windows. j2len[j] holds the run length ending at b[j] for the previous
// row, so each row is O(window).
func longestMatch(a, b []rune, alo, ahi, blo, bhi int) (besti, bestj, bestk int) {
	besti, bestj = alo, blo
	j2len := make(map[int]int)
	for i := alo; i < ahi; i++ {
		next := make(map[int]int)
		for j := blo; j < bhi; j++ {
			if a[i] != b[j] {
				continue
			}
			k := j2len[j-1] + 1
			next[j] = k
			if k > bestk {
				besti, bestj, bestk = i-k+1, j-k+1, k
			}
		}
		j2len = next
	}
	return besti, bestj, bestk
}
