// Package content holds the static teaching material: chapters, resources,
// sample messages and quiz questions. The catalog ships embedded and can be
// replaced by a YAML file at startup.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// MinChapter and MaxChapter bound the valid chapter numbers.
const (
	MinChapter = 1
	MaxChapter = 8
)

// Sample label filters.
const (
	FilterAll  = "all"
	FilterHam  = "ham"
	FilterSpam = "spam"
)

var (
	ErrChapterNotFound = errors.New("chapter not found")
	ErrInvalidFilter   = errors.New("invalid sample filter")
	ErrInvalidCatalog  = errors.New("invalid content catalog")
)

//go:embed content.yaml
var embedded []byte

// Section is one heading and paragraph of chapter prose.
type Section struct {
	Heading string `yaml:"heading" json:"heading"`
	Body    string `yaml:"body" json:"body"`
}

// Chapter is a single tutorial page. Widgets names the interactive demos the
// page embeds.
type Chapter struct {
	Number      int       `yaml:"number" json:"number"`
	Slug        string    `yaml:"slug" json:"slug"`
	Title       string    `yaml:"title" json:"title"`
	Description string    `yaml:"description" json:"description"`
	Widgets     []string  `yaml:"widgets" json:"widgets"`
	Sections    []Section `yaml:"sections" json:"sections,omitempty"`
}

// HasWidget reports whether the chapter embeds the named demo.
func (c Chapter) HasWidget(name string) bool {
	for _, w := range c.Widgets {
		if w == name {
			return true
		}
	}
	return false
}

type Resource struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	URL         string `yaml:"url" json:"url"`
}

type ResourceGroup struct {
	Group string     `yaml:"group" json:"group"`
	Items []Resource `yaml:"items" json:"items"`
}

// Sample is a labelled message from the dataset explorer.
type Sample struct {
	ID      int    `yaml:"id" json:"id"`
	Label   string `yaml:"label" json:"label"`
	Message string `yaml:"message" json:"message"`
}

// IsSpam reports whether the sample is labelled spam.
func (s Sample) IsSpam() bool { return s.Label == FilterSpam }

type Question struct {
	ID          int    `yaml:"id" json:"id"`
	Text        string `yaml:"text" json:"text"`
	IsSpam      bool   `yaml:"spam" json:"isSpam"`
	Explanation string `yaml:"explanation" json:"explanation"`
}

// ChecklistItem is one step of the deployment checklist.
type ChecklistItem struct {
	ID   string `yaml:"id" json:"id"`
	Text string `yaml:"text" json:"text"`
}

// Catalog is the full set of teaching material.
type Catalog struct {
	DemoSentence  string          `yaml:"demo_sentence"`
	ChapterList   []Chapter       `yaml:"chapters"`
	ResourceList  []ResourceGroup `yaml:"resources"`
	SampleList    []Sample        `yaml:"samples"`
	QuizList      []Question      `yaml:"quiz"`
	ChecklistList []ChecklistItem `yaml:"checklist"`
}

// Default returns the embedded catalog. It panics if the embedded YAML is
// broken, which only a bad build can cause.
func Default() *Catalog {
	c, err := Parse(embedded)
	if err != nil {
		panic(fmt.Sprintf("content: embedded catalog: %v", err))
	}
	return c
}

// Load reads a catalog from path, or returns the embedded catalog when path
// is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Parse(embedded)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse content: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	if len(c.ChapterList) != MaxChapter-MinChapter+1 {
		return fmt.Errorf("%w: want %d chapters, got %d", ErrInvalidCatalog, MaxChapter-MinChapter+1, len(c.ChapterList))
	}
	for i, ch := range c.ChapterList {
		if ch.Number != MinChapter+i {
			return fmt.Errorf("%w: chapter at position %d has number %d", ErrInvalidCatalog, i+1, ch.Number)
		}
		if ch.Title == "" {
			return fmt.Errorf("%w: chapter %d has no title", ErrInvalidCatalog, ch.Number)
		}
	}
	for _, s := range c.SampleList {
		if s.Label != FilterHam && s.Label != FilterSpam {
			return fmt.Errorf("%w: sample %d has label %q", ErrInvalidCatalog, s.ID, s.Label)
		}
	}
	return nil
}

// Chapters returns every chapter in order.
func (c *Catalog) Chapters() []Chapter {
	return c.ChapterList
}

// Chapter returns chapter n, or ErrChapterNotFound outside 1..8.
func (c *Catalog) Chapter(n int) (Chapter, error) {
	if n < MinChapter || n > MaxChapter {
		return Chapter{}, ErrChapterNotFound
	}
	return c.ChapterList[n-MinChapter], nil
}

// Neighbours returns the previous and next chapter numbers, 0 when there is none.
func (c *Catalog) Neighbours(n int) (prev, next int) {
	if n > MinChapter {
		prev = n - 1
	}
	if n < MaxChapter {
		next = n + 1
	}
	return prev, next
}

// ParseChapterID converts a route segment into a chapter number. Anything that
// is not a decimal integer in range yields ErrChapterNotFound.
func ParseChapterID(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < MinChapter || n > MaxChapter {
		return 0, ErrChapterNotFound
	}
	return n, nil
}

func (c *Catalog) Resources() []ResourceGroup {
	return c.ResourceList
}

// Samples returns the samples matching filter ("all", "ham" or "spam"). An empty
// filter means all.
func (c *Catalog) Samples(filter string) ([]Sample, error) {
	filter = strings.ToLower(strings.TrimSpace(filter))
	switch filter {
	case "", FilterAll:
		return c.SampleList, nil
	case FilterHam, FilterSpam:
		out := make([]Sample, 0, len(c.SampleList))
		for _, s := range c.SampleList {
			if s.Label == filter {
				out = append(out, s)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidFilter, filter)
	}
}

func (c *Catalog) QuizQuestions() []Question {
	return c.QuizList
}

// QuizKey returns the correct verdict for each quiz question, in order.
func (c *Catalog) QuizKey() []bool {
	key := make([]bool, len(c.QuizList))
	for i, q := range c.QuizList {
		key[i] = q.IsSpam
	}
	return key
}

func (c *Catalog) Checklist() []ChecklistItem {
	return c.ChecklistList
}

// HasChecklistItem reports whether id names a checklist step.
func (c *Catalog) HasChecklistItem(id string) bool {
	for _, item := range c.ChecklistList {
		if item.ID == id {
			return true
		}
	}
	return false
}
