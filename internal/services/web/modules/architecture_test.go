package modules

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFeatureModulesDoNotImportSiblingModules(t *testing.T) {
	t.Parallel()

	entries, err := filepath.Glob(filepath.Join("*", "*.go"))
	if err != nil {
		t.Fatalf("glob module files: %v", err)
	}
	fset := token.NewFileSet()
	for _, file := range entries {
		parsed, err := parser.ParseFile(fset, file, nil, parser.ImportsOnly)
		if err != nil {
			t.Fatalf("parse imports for %s: %v", file, err)
		}
		for _, imp := range parsed.Imports {
			path := strings.Trim(imp.Path.Value, "\"")
			if strings.Contains(path, "/internal/services/web/modules/") {
				t.Fatalf("file %s imports sibling module path %q", file, path)
			}
			if strings.Contains(path, "/internal/onboarding/organization/storage/") {
				t.Fatalf("file %s imports store implementation %q; modules read through organization.Store", file, path)
			}
		}
	}
}

func TestFeatureModulesFollowTemplate(t *testing.T) {
	t.Parallel()

	areas := moduleAreas(t)
	if len(areas) == 0 {
		t.Fatal("no module areas found")
	}
	requiredFiles := []string{"module.go", "routes.go", "routes_test.go", "handlers.go", "service.go"}
	for _, area := range areas {
		for _, file := range requiredFiles {
			path := filepath.Join(area, file)
			if _, err := os.Stat(path); err != nil {
				t.Fatalf("module %q missing required file %q: %v", area, file, err)
			}
		}
	}
}

func moduleAreas(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(".")
	if err != nil {
		t.Fatalf("read modules dir: %v", err)
	}
	var areas []string
	for _, entry := range entries {
		if entry.IsDir() {
			areas = append(areas, entry.Name())
		}
	}
	return areas
}

func TestDefaultRegistryCoversEveryArea(t *testing.T) {
	t.Parallel()

	ids := map[string]bool{}
	for _, m := range Default() {
		ids[m.ID()] = true
	}
	for _, area := range moduleAreas(t) {
		if !ids[area] {
			t.Fatalf("module area %q is not registered in Default()", area)
		}
	}
}
