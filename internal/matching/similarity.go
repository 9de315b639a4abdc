package matching

import "strings"

// Ratio computes the Ratcliff/Obershelp similarity of two strings,
// case-insensitive, scaled to 0..100. This is the same measure the
// registry's existing data was deduplicated with, so the scale and the
// 85-point threshold carry over unchanged.
func Ratio(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))
	matches := matchingTotal(ra, rb)
	return float64(2*matches) / float64(len(ra)+len(rb)) * 100
}

// matchingTotal sums the lengths of the longest matching blocks,
// recursing into the unmatched pieces on either side of each block.
func matchingTotal(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	ai, bi, size := longestMatch(a, b)
	if size == 0 {
		return 0
	}
	total := size
	total += matchingTotal(a[:ai], b[:bi])
	total += matchingTotal(a[ai+size:], b[bi+size:])
	return total
}

// longestMatch finds the longest common substring, preferring the
// earliest occurrence in a, then in b.
func longestMatch(a, b []rune) (int, int, int) {
	bestA, bestB, bestSize := 0, 0, 0
	// prev[j] = length of the common suffix ending at a[i-1], b[j-1].
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
				if cur[j] > bestSize {
					bestSize = cur[j]
					bestA = i - cur[j]
					bestB = j - cur[j]
				}
			} else {
				cur[j] = 0
			}
		}
		prev, cur = cur, prev
	}
	return bestA, bestB, bestSize
}

// Surname returns the last whitespace-delimited token of a full name,
// or "" when there is none.
func Surname(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// HasSurname reports whether fullName ends with the given surname as
// its own trailing token, case-insensitive.
func HasSurname(fullName, surname string) bool {
	if surname == "" {
		return false
	}
	return strings.HasSuffix(strings.ToLower(fullName), " "+strings.ToLower(surname))
}
