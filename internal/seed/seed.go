// Package seed loads category and question fixtures from YAML.
package seed

import (
	"bytes"
	_ "embed"
	"io"
	"os"
	"strings"

	"github.com/juju/errors"
	"gopkg.in/yaml.v3"

	"github.com/zizouhuweidi/trivia/internal/domain"
)

//go:embed default.yaml
var defaultData []byte

// Difficulty bounds accepted for seeded questions
const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

// Data is a set of categories and the questions filed under them.
// Question ids are assigned by the store.
type Data struct {
	Categories []domain.Category `yaml:"categories"`
	Questions  []domain.Question `yaml:"questions"`
}

// Default returns the bundled trivia data set.
func Default() (*Data, error) {
	data, err := Load(bytes.NewReader(defaultData))
	if err != nil {
		return nil, errors.Annotate(err, "bundled seed data")
	}
	return data, nil
}

// LoadFile reads a data set from a YAML file.
func LoadFile(path string) (*Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Annotatef(err, "opening seed file %q", path)
	}
	defer f.Close()

	data, err := Load(f)
	if err != nil {
		return nil, errors.Annotatef(err, "seed file %q", path)
	}
	return data, nil
}

// Load decodes and validates a data set. Unknown fields are rejected.
func Load(r io.Reader) (*Data, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var data Data
	if err := dec.Decode(&data); err != nil && err != io.EOF {
		return nil, errors.NotValidf("seed data: %v", err)
	}
	if err := data.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return &data, nil
}

// Validate checks that category ids are positive and unique and that every
// question is complete and filed under a listed category.
func (d *Data) Validate() error {
	known := make(map[int]struct{}, len(d.Categories))
	for _, c := range d.Categories {
		if c.ID <= 0 {
			return errors.NotValidf("category id %d", c.ID)
		}
		if _, dup := known[c.ID]; dup {
			return errors.NotValidf("duplicate category id %d", c.ID)
		}
		if strings.TrimSpace(c.Type) == "" {
			return errors.NotValidf("empty type for category %d", c.ID)
		}
		known[c.ID] = struct{}{}
	}

	for i, q := range d.Questions {
		if strings.TrimSpace(q.Question) == "" || strings.TrimSpace(q.Answer) == "" {
			return errors.NotValidf("question %d without text or answer", i+1)
		}
		if q.Difficulty < MinDifficulty || q.Difficulty > MaxDifficulty {
			return errors.NotValidf("question %d difficulty %d", i+1, q.Difficulty)
		}
		if _, ok := known[q.Category]; !ok {
			return errors.NotValidf("question %d category %d", i+1, q.Category)
		}
	}
	return nil
}
