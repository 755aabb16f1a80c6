package scanner

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterFiles(t *testing.T) {
	tests := []struct {
		name     string
		paths    []string
		opts     FilterOptions
		expected []string
	}{
		{
			name:  "exclude node_modules",
			paths: []string{"README.docspec.md", "node_modules/x.docspec.md", "docs/GUIDE.docspec.md"},
			opts: FilterOptions{
				ExcludeDirs: []string{"node_modules"},
			},
			expected: []string{"README.docspec.md", "docs/GUIDE.docspec.md"},
		},
		{
			name:  "exclude nested vendor",
			paths: []string{"vendor/a", "pkg/vendor/b", "internal/c"},
			opts: FilterOptions{
				ExcludeDirs: []string{"vendor"},
			},
			expected: []string{"internal/c"},
		},
		{
			name:  "segment matching only",
			paths: []string{"vendor_stuff/a", "myvendor/b"},
			opts: FilterOptions{
				ExcludeDirs: []string{"vendor"},
			},
			expected: []string{"myvendor/b", "vendor_stuff/a"},
		},
		{
			name:  "docspec pattern",
			paths: []string{"README.docspec.md", "README.md", "docs/API.docspec.md", "notes.txt"},
			opts: FilterOptions{
				IncludePatterns: []string{DefaultDocspecPattern},
			},
			expected: []string{"README.docspec.md", "docs/API.docspec.md"},
		},
		{
			name:  "excludes and patterns",
			paths: []string{"vendor/a.docspec.md", "b.docspec.md", "c.md"},
			opts: FilterOptions{
				ExcludeDirs:     []string{"vendor"},
				IncludePatterns: []string{DefaultDocspecPattern},
			},
			expected: []string{"b.docspec.md"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterFiles(tt.paths, tt.opts)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestScanner(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	runGit(t, dir, "init")
	runGit(t, dir, "config", "user.email", "test@example.com")
	runGit(t, dir, "config", "user.name", "Test User")

	createFile(t, dir, "README.md")
	createFile(t, dir, "README.docspec.md")
	createFile(t, dir, "docs/GUIDE.docspec.md")
	createFile(t, dir, "node_modules/x.docspec.md")
	createFile(t, dir, ".gitignore", "ignored.txt")
	createFile(t, dir, "ignored.txt")

	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", "Initial commit")

	s := New(dir)

	tracked, err := s.TrackedFiles(ctx)
	require.NoError(t, err)
	assert.Contains(t, tracked, "README.md")
	assert.Contains(t, tracked, "README.docspec.md")
	assert.NotContains(t, tracked, "ignored.txt") // respected .gitignore

	docspecs, err := s.TrackedDocspecs(ctx, FilterOptions{ExcludeDirs: DefaultExcludeDirs()})
	require.NoError(t, err)
	assert.Equal(t, []string{"README.docspec.md", "docs/GUIDE.docspec.md"}, docspecs)
}

func TestScanner_ChangedFiles(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	runGit(t, dir, "init", "-b", "main")
	runGit(t, dir, "config", "user.email", "test@example.com")
	runGit(t, dir, "config", "user.name", "Test User")

	createFile(t, dir, "README.md")
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", "base")

	runGit(t, dir, "checkout", "-b", "feature")
	createFile(t, dir, "docs/GUIDE.md", "new content")
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", "feature work")

	changed, err := New(dir).ChangedFiles(ctx, "main", "feature")
	require.NoError(t, err)
	assert.Equal(t, []string{"docs/GUIDE.md"}, changed)
}

func runGit(t *testing.T, dir string, args ...string) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v failed: %v\nOutput: %s", args, err, out)
	}
}

func createFile(t *testing.T, dir, path string, content ...string) {
	fullPath := filepath.Join(dir, path)
	err := os.MkdirAll(filepath.Dir(fullPath), 0755)
	require.NoError(t, err)

	data := ""
	if len(content) > 0 {
		data = content[0]
	}
	err = os.WriteFile(fullPath, []byte(data), 0644)
	require.NoError(t, err)
}
