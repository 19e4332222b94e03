package schema

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

//go:embed schema.graphql
var sdl string

// SourceName is the source name of the embedded SDL in parse errors.
const SourceName = "schema.graphql"

// maxReportedErrors bounds the problems listed by ValidateOperation.
const maxReportedErrors = 5

var (
	loadOnce   sync.Once
	loaded     *ast.Schema
	loadErr    error
	errInvalid = errors.New("invalid operation")
)

// SDL returns the schema in GraphQL SDL.
func SDL() string {
	return sdl
}

// Load parses the embedded SDL. The result is shared and must not be
// modified.
func Load() (*ast.Schema, error) {
	loadOnce.Do(func() {
		s, err := gqlparser.LoadSchema(&ast.Source{Name: SourceName, Input: sdl})
		if err != nil {
			loadErr = fmt.Errorf("load %s: %w", SourceName, err)
			return
		}
		loaded = s
	})
	return loaded, loadErr
}

// MustLoad is like Load but panics on error.
func MustLoad() *ast.Schema {
	s, err := Load()
	if err != nil {
		panic(err)
	}
	return s
}

// ValidateOperation parses doc and validates it against the schema.
func ValidateOperation(doc string) error {
	s, err := Load()
	if err != nil {
		return err
	}
	_, errs := gqlparser.LoadQuery(s, doc)
	if len(errs) == 0 {
		return nil
	}
	return validationError(errs)
}

func validationError(errs gqlerror.List) error {
	msgs := make([]string, 0, maxReportedErrors)
	for i, e := range errs {
		if i == maxReportedErrors {
			msgs = append(msgs, fmt.Sprintf("and %d more", len(errs)-i))
			break
		}
		msgs = append(msgs, e.Message)
	}
	return fmt.Errorf("%w: %s", errInvalid, strings.Join(msgs, "; "))
}

// IsValidationError reports whether err was returned by ValidateOperation
// for an invalid document.
func IsValidationError(err error) bool {
	return errors.Is(err, errInvalid)
}
