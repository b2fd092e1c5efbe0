package spellingbee

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/domino14/wordpuzzles/grammar"
)

// HintTable summarizes remaining words by first letter and length, by
// first two letters, and by how many are pangrams.
type HintTable struct {
	byLetter     map[byte]map[int]int
	twoLetters   map[string]int
	lengths      []int
	pangramCount int
}

// Hints builds a table over the answers not yet gotten.
func (p *Puzzle) Hints() *HintTable {
	h := &HintTable{
		byLetter:   make(map[byte]map[int]int),
		twoLetters: make(map[string]int),
	}
	for w := range p.answers {
		if _, ok := p.gotten[w]; ok || w == "" {
			continue
		}
		if h.byLetter[w[0]] == nil {
			h.byLetter[w[0]] = make(map[int]int)
		}
		h.byLetter[w[0]][len(w)]++
		h.twoLetters[w[:min(2, len(w))]]++
		h.lengths = append(h.lengths, len(w))
		if _, ok := p.pangrams[w]; ok {
			h.pangramCount++
		}
	}
	h.lengths = lo.Uniq(h.lengths)
	slices.Sort(h.lengths)
	return h
}

func (h *HintTable) Empty() bool {
	return len(h.byLetter) == 0
}

// Table lays out counts with a row per first letter and a column per word
// length, plus totals.
func (h *HintTable) Table() string {
	if h.Empty() {
		return "There are no remaining words."
	}
	var sb strings.Builder
	sb.WriteString("   ")
	for _, l := range h.lengths {
		fmt.Fprintf(&sb, "%-2d ", l)
	}
	sb.WriteString("Σ\n")
	sums := make(map[int]int, len(h.lengths))
	total := 0
	firsts := lo.Keys(h.byLetter)
	slices.Sort(firsts)
	for _, first := range firsts {
		counts := h.byLetter[first]
		fmt.Fprintf(&sb, "%c  ", first-'a'+'A')
		rowTotal := 0
		for _, l := range h.lengths {
			if counts[l] == 0 {
				sb.WriteString("-  ")
			} else {
				fmt.Fprintf(&sb, "%-2d ", counts[l])
			}
			rowTotal += counts[l]
			sums[l] += counts[l]
		}
		fmt.Fprintf(&sb, "%d\n", rowTotal)
		total += rowTotal
	}
	sb.WriteString("Σ  ")
	for _, l := range h.lengths {
		fmt.Fprintf(&sb, "%-2d ", sums[l])
	}
	fmt.Fprintf(&sb, "%d", total)
	return sb.String()
}

// TwoLetters lists how many remaining words start with each two letter
// prefix, like "Ab: 3, Ac: 1".
func (h *HintTable) TwoLetters() string {
	prefixes := lo.Keys(h.twoLetters)
	slices.Sort(prefixes)
	return strings.Join(lo.Map(prefixes, func(p string, _ int) string {
		return fmt.Sprintf("%s: %d", strings.ToUpper(p[:1])+p[1:], h.twoLetters[p])
	}), ", ")
}

func (h *HintTable) PangramCount() string {
	c := h.pangramCount
	return fmt.Sprintf("There %s %s remaining %s.", grammar.Copula(c), grammar.Num(c), grammar.AddS("pangram", c))
}

func (h *HintTable) String() string {
	return h.Table() + "\n" + h.TwoLetters() + "\n" + h.PangramCount()
}
