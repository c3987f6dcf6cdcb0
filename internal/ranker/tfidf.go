package ranker

import (
	_ "embed"
	"math"
	"strings"
)

//go:embed stopwords.txt
var stopwordsText string

var stopwords = func() map[string]bool {
	m := map[string]bool{}
	for _, w := range strings.Fields(stopwordsText) {
		m[w] = true
	}
	return m
}()

// tokenize splits cleaned text into terms of two or more letters, dropping
// English stop words.
func tokenize(cleaned string) []string {
	fields := strings.Fields(cleaned)
	out := fields[:0:0]
	for _, f := range fields {
		if len(f) < 2 || stopwords[f] {
			continue
		}
		out = append(out, f)
	}
	return out
}

// tfidf vectorizes docs with raw term counts, smoothed idf
// (ln((1+n)/(1+df)) + 1), and l2 normalization.
func tfidf(docs []string) []map[string]float64 {
	counts := make([]map[string]float64, len(docs))
	df := map[string]int{}

	for i, doc := range docs {
		tf := map[string]float64{}
		for _, term := range tokenize(doc) {
			tf[term]++
		}
		for term := range tf {
			df[term]++
		}
		counts[i] = tf
	}

	n := float64(len(docs))
	for _, tf := range counts {
		var norm float64
		for term, c := range tf {
			w := c * (math.Log((1+n)/(1+float64(df[term]))) + 1)
			tf[term] = w
			norm += w * w
		}
		if norm == 0 {
			continue
		}
		norm = math.Sqrt(norm)
		for term := range tf {
			tf[term] /= norm
		}
	}

	return counts
}

// Similarities returns the cosine similarity of each document to query.
func Similarities(query string, docs []string) []float64 {
	vectors := tfidf(append([]string{query}, docs...))
	out := make([]float64, len(docs))
	for i := range docs {
		out[i] = cosine(vectors[0], vectors[i+1])
	}
	return out
}
