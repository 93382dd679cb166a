// Package fingerprint derives stable identities for feed items and detects
// exact and near duplicates among them.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"NewsPulse/internal/domain"
)

// maxTokens bounds how many leading title tokens feed the digest. Long titles
// frequently differ only in trailing qualifiers added by individual outlets.
const maxTokens = 12

var markStripper = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize case-folds the title, strips diacritics and punctuation, and
// collapses whitespace.
func Normalize(title string) string {
	folded, _, err := transform.String(markStripper, title)
	if err != nil {
		folded = title
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokens returns the normalized title tokens with trivial plural forms
// folded, so "mechanisms" and "mechanism" produce the same token.
func Tokens(title string) []string {
	fields := strings.Fields(Normalize(title))
	for i, tok := range fields {
		fields[i] = foldPlural(tok)
	}
	return fields
}

func foldPlural(token string) string {
	if len(token) > 3 && strings.HasSuffix(token, "s") && !strings.HasSuffix(token, "ss") {
		return token[:len(token)-1]
	}
	return token
}

// Fingerprint digests the normalized title into a short stable key. Titles
// that are empty after normalization produce an empty fingerprint and must
// not be deduplicated against each other.
func Fingerprint(title string) string {
	tokens := Tokens(title)
	if len(tokens) == 0 {
		return ""
	}
	if len(tokens) > maxTokens {
		tokens = tokens[:maxTokens]
	}

	sum := sha256.Sum256([]byte(strings.Join(tokens, " ")))
	return hex.EncodeToString(sum[:12])
}

// Key returns the stable item ID: the title fingerprint, or a URL digest for
// titles that normalize to nothing.
func Key(title, url string) string {
	if fp := Fingerprint(title); fp != "" {
		return fp
	}
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:12])
}

// Dedupe removes exact duplicates in a single pass, first-seen-wins. Input
// order (newest-first) determines which instance is kept as canonical.
func Dedupe(items []domain.RawItem) []domain.RawItem {
	seen := make(map[string]struct{}, len(items))
	out := make([]domain.RawItem, 0, len(items))

	for _, item := range items {
		fp := Fingerprint(item.Title)
		if fp == "" {
			out = append(out, item)
			continue
		}
		if _, ok := seen[fp]; ok {
			continue
		}
		seen[fp] = struct{}{}
		out = append(out, item)
	}

	return out
}

// Similarity computes the Jaccard index of the two titles' token sets.
func Similarity(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

func tokenSet(title string) map[string]struct{} {
	set := map[string]struct{}{}
	for _, tok := range Tokens(title) {
		set[tok] = struct{}{}
	}
	return set
}

// GroupNearDuplicates annotates items whose titles exceed the similarity
// threshold with the ID of the first (highest-ranked) member of the group.
// Comparison is pairwise O(n²); batches are hundreds of items, not millions,
// so this is a documented scaling limit rather than a problem in practice.
func GroupNearDuplicates(items []domain.EnrichedItem, threshold float64) {
	for i := range items {
		if items[i].DuplicateOf != "" || len(Tokens(items[i].Title)) == 0 {
			continue
		}
		for j := i + 1; j < len(items); j++ {
			if items[j].DuplicateOf != "" || items[j].ID == items[i].ID {
				continue
			}
			if Similarity(items[i].Title, items[j].Title) >= threshold {
				items[j].DuplicateOf = items[i].ID
			}
		}
	}
}
