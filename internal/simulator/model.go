package simulator

import "fmt"

// Feature slider bounds.
const (
	MinFeatures  = 1000
	MaxFeatures  = 9000
	FeaturesStep = 500
)

// Model identifiers accepted by Simulate.
const (
	NaiveBayes         = "naive_bayes"
	LogisticRegression = "logistic_regression"
	SVM                = "svm"
	RandomForest       = "random_forest"
)

// Metrics are percentages rounded to one decimal.
type Metrics struct {
	Accuracy  float64 `json:"accuracy"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
}

type ModelResult struct {
	Model    string  `json:"model"`
	Name     string  `json:"name"`
	Features int     `json:"features"`
	Metrics  Metrics `json:"metrics"`
}

type modelInfo struct {
	name string
	base Metrics
}

var models = map[string]modelInfo{
	NaiveBayes:         {"Naive Bayes", Metrics{92, 91, 87}},
	LogisticRegression: {"Logistic Regression", Metrics{93.5, 92, 88}},
	SVM:                {"Support Vector Machine", Metrics{94.5, 94, 91}},
	RandomForest:       {"Random Forest", Metrics{95, 93.5, 90.5}},
}

// Models lists the model identifiers in display order.
func Models() []string {
	return []string{NaiveBayes, LogisticRegression, SVM, RandomForest}
}

// ModelName returns the display name for id, or "" when unknown.
func ModelName(id string) string {
	return models[id].name
}

// ModelSimulator computes the model comparison numbers.
type ModelSimulator struct {
	Jitter JitterFunc
}

// NewModelSimulator returns a simulator using RandomJitter.
func NewModelSimulator() *ModelSimulator {
	return &ModelSimulator{Jitter: RandomJitter}
}

// Simulate returns metrics for model at the given feature count. More features
// push every metric up by as much as four points; recall benefits the most.
func (s *ModelSimulator) Simulate(model string, features int) (ModelResult, error) {
	info, ok := models[model]
	if !ok {
		return ModelResult{}, fmt.Errorf("%w: %q", ErrUnknownModel, model)
	}
	if features < MinFeatures || features > MaxFeatures {
		return ModelResult{}, fmt.Errorf("%w: %d not in [%d, %d]", ErrFeaturesRange, features, MinFeatures, MaxFeatures)
	}

	jitter := s.Jitter
	if jitter == nil {
		jitter = RandomJitter
	}

	impact := float64(features-MinFeatures) / float64(MaxFeatures-MinFeatures) * 4
	// one draw shared by all three metrics
	j := jitter()

	return ModelResult{
		Model:    model,
		Name:     info.name,
		Features: features,
		Metrics: Metrics{
			Accuracy:  round1(clamp(info.base.Accuracy+impact+j, 85, 99)),
			Precision: round1(clamp(info.base.Precision+impact*0.8+j, 85, 99)),
			Recall:    round1(clamp(info.base.Recall+impact*1.2+j, 80, 99)),
		},
	}, nil
}
