package analytics

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ad-tracker/youtube-trend-analyzer-go/internal/models"
)

// NoHashtagsMessage replaces the word cloud when the corpus is empty.
const NoHashtagsMessage = "No hashtags available."

// WordCloudLimit caps the number of words returned for the cloud.
const WordCloudLimit = 100

var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {}, "by": {},
	"for": {}, "from": {}, "in": {}, "is": {}, "it": {}, "of": {}, "on": {}, "or": {},
	"that": {}, "the": {}, "this": {}, "to": {}, "was": {}, "with": {}, "you": {},
}

// HashtagCorpus joins every non-null hashtag with single spaces.
func HashtagCorpus(records []models.VideoRecord) string {
	parts := make([]string, 0, len(records))
	for _, r := range records {
		if r.Hashtag != nil {
			parts = append(parts, *r.Hashtag)
		}
	}
	return strings.Join(parts, " ")
}

// BuildHashtagCloud returns the corpus of records and its word frequencies.
func BuildHashtagCloud(records []models.VideoRecord, limit int) models.HashtagCloud {
	corpus := HashtagCorpus(records)
	if strings.TrimSpace(corpus) == "" {
		return models.HashtagCloud{
			Corpus:  corpus,
			Message: NoHashtagsMessage,
			Words:   []models.WordCount{},
		}
	}

	words := WordFrequencies(corpus, limit)
	cloud := models.HashtagCloud{
		Corpus:       corpus,
		HasWordCloud: len(words) > 0,
		Words:        words,
	}
	if !cloud.HasWordCloud {
		cloud.Message = NoHashtagsMessage
	}
	return cloud
}

// WordFrequencies splits corpus into words, folds case, drops stop words and
// one-letter tokens, and returns up to limit words by descending count. A
// non-positive limit returns every word.
func WordFrequencies(corpus string, limit int) []models.WordCount {
	tokens := strings.FieldsFunc(corpus, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '\''
	})

	counts := make(map[string]int)
	for _, tok := range tokens {
		word := strings.Trim(strings.ToLower(tok), "'")
		word = strings.TrimSuffix(word, "'s")
		if utf8.RuneCountInString(word) < 2 {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		counts[word]++
	}

	out := make([]models.WordCount, 0, len(counts))
	for w, n := range counts {
		out = append(out, models.WordCount{Word: w, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
