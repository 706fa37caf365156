/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package mdformat

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-git/go-git/v5"
)

// MarkdownFiles returns the sorted *.md files under root. Inside a git
// repository the set comes from the index, so generated and ignored
// files are skipped; elsewhere the tree is walked, skipping hidden
// directories.
func MarkdownFiles(root string) ([]string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", root, err)
	}

	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if !errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("open git repository: %w", err)
		}
		return walkMarkdown(abs)
	}
	return indexMarkdown(repo, abs)
}

// indexMarkdown lists the tracked *.md files beneath root. Entries
// staged for deletion no longer exist on disk and are skipped.
func indexMarkdown(repo *git.Repository, root string) ([]string, error) {
	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("getting worktree: %w", err)
	}
	idx, err := repo.Storer.Index()
	if err != nil {
		return nil, fmt.Errorf("reading index: %w", err)
	}

	var files []string
	for _, entry := range idx.Entries {
		if !strings.HasSuffix(entry.Name, ".md") {
			continue
		}
		path := filepath.Join(worktree.Filesystem.Root(), filepath.FromSlash(entry.Name))
		if !underneath(root, path) {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		files = append(files, path)
	}
	slices.Sort(files)
	return files, nil
}

// underneath reports whether path sits at or below root.
func underneath(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func walkMarkdown(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), ".md") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	slices.Sort(files)
	return files, nil
}
