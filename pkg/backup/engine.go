package backup

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/shareback/shareback/pkg/errors"
)

// ErrBulkCopierUnavailable is returned by a BulkCopier whose underlying tool
// can't be spawned. The engine reacts by walking the tree itself.
var ErrBulkCopierUnavailable = errors.New("bulk copy tool unavailable")

// A BulkCopier mirrors a directory tree using an external high-performance
// copy tool. Implementations must only copy files that are new or newer at
// the source, and must honor the exclusion lists.
type BulkCopier interface {
	Mirror(src, dst string, excludeExtensions, excludeDirs []string) error
}

// Failure records one file operation that didn't complete.
type Failure struct {
	Path string
	Err  error
}

// Summary aggregates the per-file outcomes of one folder copy. Failures are
// collected rather than escalated so that one bad file never aborts a run.
type Summary struct {
	Copied   int
	Skipped  int
	Failed   int
	Failures []Failure

	// Delegated reports whether the folder was handed to the BulkCopier,
	// in which case the per-file counts are unknown and stay zero.
	Delegated bool
}

func (s *Summary) fail(path string, err error) {
	s.Failed++
	s.Failures = append(s.Failures, Failure{Path: path, Err: err})
}

// Engine copies source folders into a destination root, skipping whatever
// the Policy excludes and overwriting only files the source has newer
// versions of.
type Engine struct {
	Policy Policy

	// Bulk delegates whole folders to an external copy tool when set.
	// Nil forces the walk-based fallback.
	Bulk BulkCopier
}

// CopyFolder mirrors src into a subdirectory of destRoot named after src's
// base name. A missing source is a no-op. The returned Summary is always
// usable; errors are aggregated inside it.
func (e Engine) CopyFolder(ctx context.Context, src, destRoot string) Summary {
	exists, err := afero.DirExists(fs, src)
	if err != nil || !exists {
		return Summary{}
	}

	target := filepath.Join(destRoot, filepath.Base(filepath.Clean(src)))
	if err := fs.MkdirAll(target, 0755); err != nil {
		var summary Summary
		summary.fail(target, errors.WithContext(err, "create target directory"))
		return summary
	}

	if e.Bulk != nil {
		err := e.Bulk.Mirror(src, target,
			e.Policy.ExcludedExtensions(), e.Policy.ExcludedDirectories())
		switch err {
		case nil:
			return Summary{Delegated: true}
		case ErrBulkCopierUnavailable:
			log.Debug("Bulk copy tool unavailable. Falling back to the built-in walk.")
		default:
			// Delegated runs are best effort. Record the failure but
			// don't escalate it.
			var summary Summary
			summary.Delegated = true
			summary.fail(src, errors.WithContext(err, "bulk mirror"))
			return summary
		}
	}

	return e.walk(ctx, src, target)
}

func (e Engine) walk(ctx context.Context, src, target string) Summary {
	var summary Summary
	walkErr := afero.Walk(fs, src, func(path string, fi os.FileInfo, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			summary.fail(path, err)
			if fi != nil && fi.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if fi.IsDir() {
			if path != src && e.Policy.ShouldSkip(path) {
				summary.Skipped++
				return filepath.SkipDir
			}
			return nil
		}

		if !fi.Mode().IsRegular() || e.Policy.ShouldSkip(path) {
			summary.Skipped++
			return nil
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			summary.fail(path, errors.WithContext(err, "relative path"))
			return nil
		}

		copied, err := e.copyIfNewer(path, filepath.Join(target, rel), fi)
		switch {
		case err != nil:
			summary.fail(path, err)
		case copied:
			summary.Copied++
		default:
			summary.Skipped++
		}
		return nil
	})
	if walkErr != nil && walkErr != context.Canceled && walkErr != context.DeadlineExceeded {
		summary.fail(src, walkErr)
	}
	return summary
}

// copyIfNewer copies src over dst unless dst already has the same or a newer
// modification time. The copy preserves the source's mode and mtime so that
// the next run's comparison sees the file as unchanged.
func (e Engine) copyIfNewer(src, dst string, srcInfo os.FileInfo) (bool, error) {
	dstInfo, err := fs.Stat(dst)
	if err == nil {
		if !srcInfo.ModTime().After(dstInfo.ModTime()) {
			return false, nil
		}
	} else if !os.IsNotExist(err) {
		return false, errors.WithContext(err, "stat destination")
	}

	if err := copyFile(src, dst, srcInfo); err != nil {
		return false, err
	}
	return true, nil
}

func copyFile(src, dst string, srcInfo os.FileInfo) error {
	in, err := fs.Open(src)
	if err != nil {
		return errors.WithContext(err, "open source")
	}
	defer in.Close()

	if err := fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return errors.WithContext(err, "create parent directory")
	}

	out, err := fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, srcInfo.Mode())
	if err != nil {
		return errors.WithContext(err, "open destination")
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.WithContext(err, "copy contents")
	}
	if err := out.Close(); err != nil {
		return errors.WithContext(err, "close destination")
	}

	if err := fs.Chtimes(dst, time.Now(), srcInfo.ModTime()); err != nil {
		return errors.WithContext(err, "preserve modification time")
	}
	return nil
}
