package docs

import (
	"encoding/json"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

type operation struct {
	Summary     string                    `json:"summary"`
	Description string                    `json:"description"`
	Parameters  []struct{ Name string }   `json:"parameters"`
	Responses   map[string]map[string]any `json:"responses"`
}

type document struct {
	BasePath string                          `json:"basePath"`
	Paths    map[string]map[string]operation `json:"paths"`
}

func readDocument(t *testing.T) document {
	t.Helper()
	raw, err := swag.ReadDoc()
	require.NoError(t, err)

	var doc document
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	return doc
}

func TestSwaggerRegistered(t *testing.T) {
	doc := readDocument(t)

	assert.Equal(t, "/api/v1", doc.BasePath)
	assert.Contains(t, doc.Paths, "/licenses/{id}")
	assert.Contains(t, doc.Paths["/licenses/{id}"], "delete")
	assert.Contains(t, doc.Paths, "/analytics/compliance-score")
}

// annotated описывает операцию по godoc-аннотациям обработчика.
type annotated struct {
	path, method string
	summary      string
	description  string
	params       []string
	codes        []string
}

var (
	routeRe  = regexp.MustCompile(`^@Router\s+(\S+)\s+\[(\w+)\]`)
	paramRe  = regexp.MustCompile(`^@Param\s+(\S+)`)
	statusRe = regexp.MustCompile(`^@(?:Success|Failure)\s+(\d+)`)
)

func handlerAnnotations(t *testing.T) []annotated {
	t.Helper()
	var result []annotated
	err := filepath.WalkDir("../handlers", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return err
		}
		file, err := parser.ParseFile(token.NewFileSet(), path, nil, parser.ParseComments)
		if err != nil {
			return err
		}
		for _, decl := range file.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok || fn.Doc == nil {
				continue
			}
			var op annotated
			for _, line := range strings.Split(fn.Doc.Text(), "\n") {
				line = strings.TrimSpace(line)
				switch {
				case strings.HasPrefix(line, "@Summary "):
					op.summary = strings.TrimSpace(strings.TrimPrefix(line, "@Summary"))
				case strings.HasPrefix(line, "@Description "):
					op.description = strings.TrimSpace(strings.TrimPrefix(line, "@Description"))
				case paramRe.MatchString(line):
					op.params = append(op.params, paramRe.FindStringSubmatch(line)[1])
				case statusRe.MatchString(line):
					op.codes = append(op.codes, statusRe.FindStringSubmatch(line)[1])
				case routeRe.MatchString(line):
					m := routeRe.FindStringSubmatch(line)
					op.path, op.method = m[1], m[2]
				}
			}
			if op.path != "" {
				result = append(result, op)
			}
		}
		return nil
	})
	require.NoError(t, err)
	return result
}

func TestDocumentMatchesHandlerAnnotations(t *testing.T) {
	doc := readDocument(t)
	ops := handlerAnnotations(t)
	require.NotEmpty(t, ops)

	documented := 0
	for _, methods := range doc.Paths {
		documented += len(methods)
	}
	assert.Equal(t, len(ops), documented, "every documented operation has an annotated handler")

	for _, op := range ops {
		t.Run(op.method+" "+op.path, func(t *testing.T) {
			got, ok := doc.Paths[op.path][op.method]
			require.True(t, ok, "operation is missing from the document")

			assert.Equal(t, op.summary, got.Summary)
			assert.Equal(t, op.description, got.Description)

			params := make([]string, 0, len(got.Parameters))
			for _, p := range got.Parameters {
				params = append(params, p.Name)
			}
			assert.ElementsMatch(t, op.params, params)

			codes := make([]string, 0, len(got.Responses))
			for code := range got.Responses {
				codes = append(codes, code)
			}
			sort.Strings(codes)
			want := append([]string(nil), op.codes...)
			sort.Strings(want)
			assert.Equal(t, want, codes)
		})
	}
}
