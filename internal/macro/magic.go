package macro

import (
	"strconv"
	"strings"
)

// Magic schools in path index order.
const schoolLetters = "fawesdngbh"

// schoolIndex returns the path index of a school letter, or -1.
func schoolIndex(r byte) int {
	return strings.IndexByte(schoolLetters, lower(r))
}

// schoolBit returns the custom-magic mask bit of a school letter, or 0.
func schoolBit(r byte) int {
	idx := schoolIndex(r)
	if idx < 0 {
		return 0
	}
	return 128 << idx
}

func lower(r byte) byte {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

func isDigit(r byte) bool { return r >= '0' && r <= '9' }

// SchoolCount is one school and its accumulated level.
type SchoolCount struct {
	School int
	Count  int
}

// MagicPaths decodes a compact path token such as "f2a" into per-school
// counts, in the order the schools first appear. A bare letter counts one,
// a letter followed by digits N counts N. ok is false when token is not a
// compact path token.
func MagicPaths(token string) (counts []SchoolCount, ok bool) {
	if token == "" || schoolIndex(token[0]) < 0 {
		return nil, false
	}
	var (
		order  []int
		totals [len(schoolLetters)]int
		seen   [len(schoolLetters)]bool
	)
	current := -1
	for i := 0; i < len(token); {
		c := token[i]
		if idx := schoolIndex(c); idx >= 0 {
			current = idx
			totals[idx]++
			if !seen[idx] {
				seen[idx] = true
				order = append(order, idx)
			}
			i++
			continue
		}
		if !isDigit(c) || current < 0 {
			return nil, false
		}
		j := i
		for j < len(token) && isDigit(token[j]) {
			j++
		}
		n, err := strconv.Atoi(token[i:j])
		if err != nil {
			return nil, false
		}
		totals[current] += n - 1
		i = j
	}

	for _, idx := range order {
		if totals[idx] != 0 {
			counts = append(counts, SchoolCount{School: idx, Count: totals[idx]})
		}
	}
	return counts, true
}

// CustomMagicMask ORs the bit of every school letter in token. ok is false
// when token holds anything but school letters.
func CustomMagicMask(token string) (mask int, ok bool) {
	if token == "" {
		return 0, false
	}
	for i := 0; i < len(token); i++ {
		bit := schoolBit(token[i])
		if bit == 0 {
			return 0, false
		}
		mask |= bit
	}
	return mask, true
}
