package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spamlab/internal/ngram"
)

func TestNgramsResponse_JSONFieldNames(t *testing.T) {
	b, err := json.Marshal(NgramsResponse{Text: "win cash", N: 2, Label: "Bigrams", Count: 1, Ngrams: []string{"win cash"}})
	require.NoError(t, err)

	assert.JSONEq(t, `{"text":"win cash","n":2,"label":"Bigrams","count":1,"ngrams":["win cash"]}`, string(b))
}

func TestVectorResponse_EmptyTermsIsArray(t *testing.T) {
	b, err := json.Marshal(VectorResponse{Terms: ngram.Vectorize("")})
	require.NoError(t, err)

	assert.JSONEq(t, `{"message":"","vocabulary":0,"terms":[]}`, string(b))
}
