package domain_test

import (
	"go/parser"
	"go/token"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const modulePath = "github.com/jsil-dev/host-sdk/go/"

// The domain layer may import the standard library and, listed here, other
// domain packages. Nothing else.
var allowedDomainImports = map[string][]string{
	"entities": nil,
	"errors":   {"domain/entities"},
	"ports":    {"domain/entities", "domain/errors"},
}

func TestDomainImports(t *testing.T) {
	fset := token.NewFileSet()

	for pkg, allowed := range allowedDomainImports {
		t.Run(pkg, func(t *testing.T) {
			files, err := filepath.Glob(filepath.Join(pkg, "*.go"))
			require.NoError(t, err)
			require.NotEmpty(t, files, "domain/%s should contain Go files", pkg)

			for _, file := range files {
				if strings.HasSuffix(file, "_test.go") {
					continue
				}
				f, err := parser.ParseFile(fset, file, nil, parser.ImportsOnly)
				require.NoError(t, err, "failed to parse %s", file)

				for _, imp := range f.Imports {
					path, err := strconv.Unquote(imp.Path.Value)
					require.NoError(t, err)
					assert.True(t, importAllowed(path, allowed),
						"domain/%s (%s) must not import %s", pkg, filepath.Base(file), path)
				}
			}
		})
	}
}

func importAllowed(path string, allowed []string) bool {
	if rel, ok := strings.CutPrefix(path, modulePath); ok {
		for _, a := range allowed {
			if rel == a {
				return true
			}
		}
		return false
	}
	// Standard library paths have no dot in their first element.
	first, _, _ := strings.Cut(path, "/")
	return !strings.Contains(first, ".")
}
