package pkg

import (
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	if Name != "tuxedo" {
		t.Errorf("Expected Name to be %q, got %q", "tuxedo", Name)
	}
}

func TestDescription(t *testing.T) {
	if Description == "" {
		t.Error("Expected a non-empty Description")
	}
}

func TestVersion(t *testing.T) {
	// Tests run with the package directory as working directory.
	buf, err := os.ReadFile("VERSION")
	if err != nil {
		t.Fatalf("Failed to read VERSION file: %v", err)
	}

	if content := strings.TrimSpace(string(buf)); Version != content {
		t.Errorf("Expected Version to be %q, got %q", content, Version)
	}

	semver := regexp.MustCompile(`^\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?$`)
	if !semver.MatchString(Version) {
		t.Errorf("Version %q is not a semantic version", Version)
	}
}

func TestAuthor(t *testing.T) {
	if !slices.ContainsFunc(Author, func(a AuthorInfo) bool {
		return a.Name == "ardnew" && a.Email == "andrew@ardnew.com"
	}) {
		t.Errorf("Expected Author to contain %q", "ardnew")
	}

	for i, author := range Author {
		if author.Name == "" && author.Email == "" {
			t.Errorf("Author[%d] must define at least Name or Email", i)
		}
	}
}

func TestSearchPath(t *testing.T) {
	t.Setenv(PathEnv, "")

	first, second := t.TempDir(), t.TempDir()
	missing := filepath.Join(first, "missing")

	got := SearchPath(first, missing, second)

	if i, j := slices.Index(got, first), slices.Index(got, second); i < 0 || j < i {
		t.Errorf("SearchPath = %q, want %q before %q", got, first, second)
	}

	if slices.Contains(got, missing) {
		t.Errorf("SearchPath = %q, must not contain %q", got, missing)
	}
}
