package constraints

import (
	"bytes"
	"encoding/json"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

type goListPackage struct {
	ImportPath string
	Imports    []string
}

const modulePrefix = "github.com/jacoelho/jsonlist/internal/"

// enginePackages make up the value engine. They are called from a sandboxed
// script binding and must stay free of the scenario harness.
var enginePackages = map[string]struct{}{
	modulePrefix + "value":    {},
	modulePrefix + "sentinel": {},
	modulePrefix + "stack":    {},
	modulePrefix + "sniff":    {},
	modulePrefix + "render":   {},
	modulePrefix + "path":     {},
	modulePrefix + "list":     {},
	modulePrefix + "binding":  {},
}

func TestEnginePackagesOnlyImportEnginePackages(t *testing.T) {
	t.Parallel()

	packages := goList(t, "./internal/...")

	var violations []string
	for _, pkg := range packages {
		if _, ok := enginePackages[pkg.ImportPath]; !ok {
			continue
		}
		for _, imp := range pkg.Imports {
			if !strings.HasPrefix(imp, modulePrefix) {
				continue
			}
			if _, ok := enginePackages[imp]; !ok {
				violations = append(violations, pkg.ImportPath+" imports harness package "+imp)
			}
		}
	}

	if len(violations) > 0 {
		t.Fatalf("found forbidden engine->harness imports:\n%s", strings.Join(violations, "\n"))
	}
}

func TestEnginePackagesAvoidSideEffectImports(t *testing.T) {
	t.Parallel()

	forbidden := map[string]struct{}{
		"os":           {},
		"net/http":     {},
		"time":         {},
		"math/rand":    {},
		"math/rand/v2": {},
		"sync":         {},
	}

	packages := goList(t, "./internal/...")

	var violations []string
	for _, pkg := range packages {
		if _, ok := enginePackages[pkg.ImportPath]; !ok {
			continue
		}
		for _, imp := range pkg.Imports {
			if _, banned := forbidden[imp]; banned {
				violations = append(violations, pkg.ImportPath+" imports forbidden package "+imp)
			}
		}
	}

	if len(violations) > 0 {
		t.Fatalf("found forbidden imports in engine packages:\n%s", strings.Join(violations, "\n"))
	}
}

func goList(t *testing.T, patterns ...string) []goListPackage {
	t.Helper()

	args := append([]string{"list", "-json"}, patterns...)
	cmd := exec.Command("go", args...)
	cmd.Dir = repoRoot(t)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		t.Fatalf("go list failed: %v\nstderr:\n%s", err, stderr.String())
	}

	decoder := json.NewDecoder(bytes.NewReader(stdout.Bytes()))
	var packages []goListPackage
	for decoder.More() {
		var pkg goListPackage
		if err := decoder.Decode(&pkg); err != nil {
			t.Fatalf("decode go list json: %v", err)
		}
		packages = append(packages, pkg)
	}

	return packages
}

func repoRoot(t *testing.T) string {
	t.Helper()

	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("runtime.Caller failed")
	}

	return filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
}
