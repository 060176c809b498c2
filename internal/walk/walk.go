// Package walk implements an errgroup-driven concurrent tree walk that
// builds one internal/sibling.Snapshot per directory and hands each
// regular file to a caller-supplied Visit function, so internal/detect's
// disambiguators always see accurate directory context even when files are
// visited out of order across goroutines.
package walk

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/polyloc/polyloc/internal/sibling"
)

// Visit is called once per regular file found during the walk, with the
// Snapshot of its containing directory. Returning an error aborts the
// whole walk; the first error wins.
type Visit func(ctx context.Context, path string, info os.FileInfo, sib *sibling.Snapshot) error

// Options configures a Walk: Excludes is an optional path-matching regexp
// applied to both files and directories; Workers bounds concurrent
// directory visits (16 if unset).
type Options struct {
	Excludes *regexp.Regexp
	Workers  int
}

// Walk traverses the tree rooted at root, calling visit for every regular
// file not matched by opts.Excludes. Symlinks are not followed. Directories
// are visited concurrently up to opts.Workers; within one directory, files
// are handed to visit in sorted name order so output is reproducible even
// though directories race.
func Walk(ctx context.Context, root string, opts Options, visit Visit) error {
	workers := opts.Workers
	if workers <= 0 {
		workers = 16
	}

	info, err := os.Lstat(root)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, workers)

	var walkDir func(path string, info os.FileInfo) error
	walkDir = func(path string, info os.FileInfo) error {
		if opts.Excludes != nil && opts.Excludes.MatchString(path) {
			return nil
		}
		if !info.IsDir() {
			return visit(ctx, path, info, nil)
		}

		names, err := readDirNames(path)
		if err != nil {
			return err
		}
		sib := sibling.New(path, names)

		var subdirs []string
		for _, name := range names {
			child := filepath.Join(path, name)
			if opts.Excludes != nil && opts.Excludes.MatchString(child) {
				continue
			}
			childInfo, err := os.Lstat(child)
			if err != nil {
				continue
			}
			if childInfo.IsDir() {
				subdirs = append(subdirs, child)
				continue
			}
			if err := visit(ctx, child, childInfo, sib); err != nil {
				return err
			}
		}

		for _, sub := range subdirs {
			sub := sub
			subInfo, err := os.Lstat(sub)
			if err != nil {
				continue
			}
			select {
			case sem <- struct{}{}:
				g.Go(func() error {
					defer func() { <-sem }()
					return walkDir(sub, subInfo)
				})
			default:
				// Worker pool saturated: recurse inline rather than block.
				if err := walkDir(sub, subInfo); err != nil {
					return err
				}
			}
		}
		return nil
	}

	g.Go(func() error {
		return walkDir(root, info)
	})

	return g.Wait()
}

// readDirNames reads dirname's entries and returns them sorted; order
// affects tie-breaking in sibling-dependent disambiguators, so it stays
// deterministic.
func readDirNames(dirname string) ([]string, error) {
	f, err := os.Open(dirname)
	if err != nil {
		return nil, err
	}
	names, err := f.Readdirnames(-1)
	f.Close()
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}
