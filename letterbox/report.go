package letterbox

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/samber/lo"

	"github.com/domino14/wordpuzzles/grammar"
	"github.com/domino14/wordpuzzles/trie"
	"github.com/domino14/wordpuzzles/wordrank"
)

// Reaction is an emoji tag attached to a chat message about the puzzle.
type Reaction string

const (
	ReactionCommonTwoWord   Reaction = "🐫"
	ReactionRareTwoWord     Reaction = "👀"
	ReactionCommonThreeWord Reaction = "🌳"
	ReactionRareThreeWord   Reaction = "🥶"
	ReactionFourWordChain   Reaction = "🥳"
	ReactionThreeWordChain  Reaction = "🥲"
	ReactionTwoWordChain    Reaction = "📦"
	ReactionTwoWordCrown    Reaction = "👑"
	ReactionOneWordChain    Reaction = "🤯"
)

// MinExtraWordLength is the shortest unofficial word ExtraWords reports.
const MinExtraWordLength = 3

// QuantityStatement describes how many one, two and three word solutions
// there are, in total and counting only common words. One-word solutions
// are mentioned only when there are any.
func (p *Puzzle) QuantityStatement() string {
	sol := func(n int) string { return grammar.AddS("solution", n) }
	one := p.SolutionsByLength(1).Len()
	twoSet, threeSet := p.SolutionsByLength(2), p.SolutionsByLength(3)
	two, three := twoSet.Len(), threeSet.Len()
	twoCommon, threeCommon := len(twoSet.CommonWordSolutions()), len(threeSet.CommonWordSolutions())

	var sb strings.Builder
	if one > 0 {
		fmt.Fprintf(&sb, "There %s %s one-word %s today. ", grammar.Copula(one), grammar.Num(one), sol(one))
	}
	fmt.Fprintf(&sb, "There %s %s two-word %s and %s three-word %s. ",
		grammar.Copula(two), grammar.Num(two), sol(two), grammar.Num(three), sol(three))
	fmt.Fprintf(&sb, "Limiting ourselves to the most common %s words, there %s %s two-word %s and %s three-word %s.",
		grammar.Num(wordrank.CommonThreshold), grammar.Copula(twoCommon), grammar.Num(twoCommon), sol(twoCommon),
		grammar.Num(threeCommon), sol(threeCommon))
	return sb.String()
}

// Tokenize splits a chat message into candidate words on anything that is
// not a letter or digit.
func Tokenize(message string) []string {
	return strings.FieldsFunc(message, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
}

// ReactToWords tags a tokenized message. Each token that appears in a two-
// or three-word solution gets a common or rare tag; then any run of one to
// four consecutive tokens that forms a valid solution gets a chain tag.
// Tokens that are official words are remembered as found by users.
func (p *Puzzle) ReactToWords(tokens []string) []Reaction {
	twoSet, threeSet := p.SolutionsByLength(2), p.SolutionsByLength(3)
	words := make([]Word, len(tokens))
	var reactions []Reaction
	for i, tok := range tokens {
		w := NewWord(tok)
		words[i] = w
		if p.IsValid(w) {
			p.userFound[w] = struct{}{}
		}
		if twoSet.HasWord(w) {
			if twoSet.IsCommonWord(w) {
				reactions = append(reactions, ReactionCommonTwoWord)
			} else {
				reactions = append(reactions, ReactionRareTwoWord)
			}
		}
		if threeSet.HasWord(w) {
			if threeSet.IsCommonWord(w) {
				reactions = append(reactions, ReactionCommonThreeWord)
			} else {
				reactions = append(reactions, ReactionRareThreeWord)
			}
		}
	}

	if p.containsChain(words, 4) {
		reactions = append(reactions, ReactionFourWordChain)
	}
	if p.containsChain(words, 3) {
		reactions = append(reactions, ReactionThreeWordChain)
	}
	if p.containsChain(words, 2) {
		reactions = append(reactions, ReactionTwoWordChain, ReactionTwoWordCrown)
	}
	if p.containsChain(words, 1) {
		reactions = append(reactions, ReactionOneWordChain)
	}
	return lo.Uniq(reactions)
}

// containsChain reports whether some run of length consecutive words is a
// valid solution. Message tokens are untrusted, so links and membership are
// checked too.
func (p *Puzzle) containsChain(words []Word, length int) bool {
	for i := 0; i+length <= len(words); i++ {
		if Solution(words[i : i+length]).Valid(p.valid) {
			return true
		}
	}
	return false
}

// UserFoundWords returns the official words users have mentioned, sorted.
func (p *Puzzle) UserFoundWords() []Word {
	return sortedWords(p.userFound)
}

// HintsGiven returns the words already handed out as hints, sorted.
func (p *Puzzle) HintsGiven() []Word {
	return sortedWords(p.hintsGiven)
}

// HintWord picks the longest word from a two-word solution that nobody has
// found or been given yet, and marks it as given. Ties go alphabetically.
func (p *Puzzle) HintWord() (Word, bool) {
	candidates := lo.Filter(p.SolutionsByLength(2).Words(), func(w Word, _ int) bool {
		_, found := p.userFound[w]
		_, hinted := p.hintsGiven[w]
		return !found && !hinted
	})
	if len(candidates) == 0 {
		return Word{}, false
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return len(candidates[i].text) > len(candidates[j].text)
	})
	p.hintsGiven[candidates[0]] = struct{}{}
	return candidates[0], true
}

// UnfoundWords returns the official words no user has mentioned, longest
// first.
func (p *Puzzle) UnfoundWords() []Word {
	unfound := lo.Reject(p.validWords, func(w Word, _ int) bool {
		_, ok := p.userFound[w]
		return ok
	})
	sort.SliceStable(unfound, func(i, j int) bool {
		return len(unfound[i].text) > len(unfound[j].text)
	})
	return unfound
}

// ExtraWords searches a dictionary for playable words that the official
// list leaves out, most common first.
func (p *Puzzle) ExtraWords(s trie.Searcher) ([]string, error) {
	found, err := s.SearchByLetters(p.alphabet)
	if err != nil {
		return nil, err
	}
	extra := lo.FilterMap(found, func(w string, _ int) (string, bool) {
		up := strings.ToUpper(w)
		return up, len(up) >= MinExtraWordLength && p.Playable(up) && !p.IsValid(NewWord(up))
	})
	sort.SliceStable(extra, func(i, j int) bool {
		if p.ranker == nil {
			return false
		}
		return p.ranker.Rank(extra[i]) < p.ranker.Rank(extra[j])
	})
	return extra, nil
}
