package models

import "spamlab/internal/ngram"

// NgramsResponse is the result of splitting text into n-grams.
type NgramsResponse struct {
	Text   string   `json:"text"`
	N      int      `json:"n"`
	Label  string   `json:"label"`
	Count  int      `json:"count"`
	Ngrams []string `json:"ngrams"`
}

// VectorResponse is a bag-of-words for one message.
type VectorResponse struct {
	Message    string       `json:"message"`
	Vocabulary int          `json:"vocabulary"`
	Terms      []ngram.Term `json:"terms"`
}

// CounterResponse reports the contact form submission count.
type CounterResponse struct {
	Count int64 `json:"count"`
}

// SpamCountResponse reports the simulated spam ticker value.
type SpamCountResponse struct {
	Count int64 `json:"count"`
}

// ChapterSummary is a chapter without its prose, for listings.
type ChapterSummary struct {
	Number      int    `json:"number"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}
