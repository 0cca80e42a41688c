// Package dataset provides the records fed through the demonstration
// pipelines, either built in or loaded from a YAML or JSON file.
package dataset

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Item is a single record.
type Item struct {
	ID     int  `yaml:"id" mapstructure:"id" validate:"gt=0"`
	Value  int  `yaml:"value" mapstructure:"value" validate:"gte=0"`
	Active bool `yaml:"active" mapstructure:"active"`
}

// ErrInvalid is wrapped by every validation failure reported by Load.
var ErrInvalid = errors.New("dataset: invalid records")

type file struct {
	Items []Item `mapstructure:"items" validate:"min=1,unique=ID,dive"`
}

var (
	validate *validator.Validate
	once     sync.Once
)

func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Default returns the built-in records.
func Default() []Item {
	return []Item{
		{ID: 1, Value: 50, Active: true},
		{ID: 2, Value: 20, Active: false},
		{ID: 3, Value: 50, Active: true},
		{ID: 4, Value: 10, Active: true},
		{ID: 5, Value: 90, Active: false},
		{ID: 6, Value: 90, Active: true},
		{ID: 7, Value: 20, Active: true},
		{ID: 8, Value: 60, Active: true},
		{ID: 9, Value: 90, Active: true},
		{ID: 10, Value: 30, Active: true},
		{ID: 11, Value: 40, Active: true},
		{ID: 12, Value: 40, Active: true},
	}
}

// Load reads records from the "items" list of a YAML or JSON file. The
// format is taken from the file extension.
func Load(path string) ([]Item, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}

	var f file
	if err := v.Unmarshal(&f); err != nil {
		return nil, fmt.Errorf("failed to decode dataset %s: %w", path, err)
	}
	if err := Validate(f.Items); err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}
	return f.Items, nil
}

// Validate checks that items is non-empty, that every ID is positive and
// unique, and that no value is negative.
func Validate(items []Item) error {
	err := getValidator().Struct(file{Items: items})
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	messages := make([]string, 0, len(verrs))
	for _, e := range verrs {
		messages = append(messages, fieldName(e)+": "+formatValidationError(e))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(messages, "; "))
}

// fieldName renders the failing field relative to the record list, e.g.
// "items[3].id".
func fieldName(e validator.FieldError) string {
	ns := e.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		ns = rest
	}
	return strings.ToLower(ns)
}

func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "gt":
		return "must be greater than " + e.Param()
	case "gte":
		return "must be at least " + e.Param()
	case "min":
		return "must hold at least " + e.Param() + " record(s)"
	case "unique":
		return "must not repeat " + strings.ToLower(e.Param())
	default:
		return "is invalid"
	}
}
