// Package keywords reduces collections of free text to salient terms and
// term-adjacency relations.
package keywords

import (
	"sort"
	"strings"
	"unicode"
)

// MaxKeywords caps the number of terms Extract returns.
const MaxKeywords = 12

// cooccurWindow is the symmetric neighbor window used by Cooccurrence.
const cooccurWindow = 2

var stopwords = map[string]bool{
	"a": true, "about": true, "after": true, "all": true, "also": true,
	"an": true, "and": true, "any": true, "are": true, "as": true, "at": true,
	"be": true, "because": true, "been": true, "but": true, "by": true,
	"can": true, "could": true, "did": true, "do": true, "does": true,
	"for": true, "from": true, "get": true, "got": true, "had": true,
	"has": true, "have": true, "he": true, "her": true, "his": true,
	"how": true, "i": true, "if": true, "in": true, "into": true, "is": true,
	"it": true, "its": true, "just": true, "like": true, "make": true,
	"me": true, "more": true, "most": true, "my": true, "new": true,
	"no": true, "not": true, "now": true, "of": true, "on": true, "one": true,
	"or": true, "other": true, "our": true, "out": true, "over": true,
	"should": true, "so": true, "some": true, "than": true, "that": true,
	"the": true, "their": true, "them": true, "then": true, "there": true,
	"these": true, "they": true, "this": true, "to": true, "up": true,
	"us": true, "use": true, "using": true, "was": true, "we": true,
	"were": true, "what": true, "when": true, "where": true, "which": true,
	"who": true, "why": true, "will": true, "with": true, "would": true,
	"you": true, "your": true,
}

// Extract returns up to MaxKeywords salient terms across texts: lowercased,
// stopword-stripped, stemmed, alphabetic-only tokens ranked by frequency
// descending with ties broken by first appearance. Deterministic for
// identical input.
func Extract(texts []string) []string {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	pos := 0

	for _, text := range texts {
		for _, tok := range tokenize(text) {
			term := stem(tok)
			if term == "" || stopwords[term] || stopwords[tok] {
				continue
			}
			if _, ok := firstSeen[term]; !ok {
				firstSeen[term] = pos
			}
			counts[term]++
			pos++
		}
	}

	terms := make([]string, 0, len(counts))
	for t := range counts {
		terms = append(terms, t)
	}
	sort.SliceStable(terms, func(i, j int) bool {
		if counts[terms[i]] != counts[terms[j]] {
			return counts[terms[i]] > counts[terms[j]]
		}
		return firstSeen[terms[i]] < firstSeen[terms[j]]
	})

	if len(terms) > MaxKeywords {
		terms = terms[:MaxKeywords]
	}
	return terms
}

// Cooccurrence builds a term-adjacency index: for each non-stopword token,
// the non-stopword tokens within two positions either side of it. The index
// is keyed one direction only; callers must not assume the reverse edge is
// present.
func Cooccurrence(texts []string) map[string][]string {
	adjacency := make(map[string]map[string]bool)

	for _, text := range texts {
		toks := tokenize(text)
		kept := toks[:0:0]
		for _, t := range toks {
			if !stopwords[t] {
				kept = append(kept, t)
			}
		}

		for i, tok := range kept {
			lo := i - cooccurWindow
			if lo < 0 {
				lo = 0
			}
			hi := i + cooccurWindow
			if hi > len(kept)-1 {
				hi = len(kept) - 1
			}
			for j := lo; j <= hi; j++ {
				if j == i || kept[j] == tok {
					continue
				}
				if adjacency[tok] == nil {
					adjacency[tok] = make(map[string]bool)
				}
				adjacency[tok][kept[j]] = true
			}
		}
	}

	out := make(map[string][]string, len(adjacency))
	for term, neighbors := range adjacency {
		ns := make([]string, 0, len(neighbors))
		for n := range neighbors {
			ns = append(ns, n)
		}
		sort.Strings(ns)
		out[term] = ns
	}
	return out
}

// tokenize splits text into lowercased alphabetic tokens.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})

	var toks []string
	for _, f := range fields {
		f = strings.TrimSuffix(f, "'s")
		f = strings.ReplaceAll(f, "'", "")
		if f == "" {
			continue
		}
		alpha := true
		for _, r := range f {
			if !unicode.IsLetter(r) {
				alpha = false
				break
			}
		}
		if alpha {
			toks = append(toks, f)
		}
	}
	return toks
}

// stem reduces a token to a rough root form: plural and gerund suffixes only,
// enough to collapse trivially inflected duplicates.
func stem(tok string) string {
	switch {
	case len(tok) > 4 && strings.HasSuffix(tok, "ies"):
		return tok[:len(tok)-3] + "y"
	case len(tok) > 4 && strings.HasSuffix(tok, "sses"):
		return tok[:len(tok)-2]
	case len(tok) > 3 && strings.HasSuffix(tok, "s") && !strings.HasSuffix(tok, "ss"):
		return tok[:len(tok)-1]
	default:
		return tok
	}
}
