package backup

import (
	"strings"

	"github.com/c2h5oh/datasize"
)

// skipSubstrings are path fragments that mark system and application noise.
// Any path containing one of them (case-insensitively) is excluded.
var skipSubstrings = []string{
	"appdata",
	"program files",
	"windows",
	"microsoft",
	"temp",
}

// shortcutExtension marks desktop shortcuts, which are meaningless on the
// destination machine.
const shortcutExtension = ".lnk"

// Policy decides which source paths are excluded from a backup run.
type Policy struct {
	// MaxFileSize is the copy cutoff, compared against raw byte sizes.
	// Zero means no cutoff.
	MaxFileSize datasize.ByteSize

	// ArchiveExtension marks Outlook archives, which are copied even when
	// they exceed MaxFileSize.
	ArchiveExtension string
}

// ShouldSkip reports whether path is excluded from the backup. The rules are
// applied in order, first match wins:
//  1. The path contains a denylisted substring.
//  2. The path is a desktop shortcut.
//  3. The path's metadata can't be read. Skipping is the safe resolution
//     for files that vanished or aren't readable.
//  4. The path is a regular file over the size cutoff without the archive
//     extension.
// Everything else is kept, notably oversized Outlook archives.
func (p Policy) ShouldSkip(path string) bool {
	lower := strings.ToLower(path)
	for _, substr := range skipSubstrings {
		if strings.Contains(lower, substr) {
			return true
		}
	}

	if strings.HasSuffix(lower, shortcutExtension) {
		return true
	}

	fi, err := fs.Stat(path)
	if err != nil {
		return true
	}

	if fi.Mode().IsRegular() && p.MaxFileSize > 0 {
		archiveExt := strings.ToLower(p.ArchiveExtension)
		tooLarge := uint64(fi.Size()) > p.MaxFileSize.Bytes()
		if tooLarge && (archiveExt == "" || !strings.HasSuffix(lower, archiveExt)) {
			return true
		}
	}

	return false
}

// ExcludedExtensions returns the file patterns a delegated bulk copy must
// exclude to approximate ShouldSkip. Executables and installers are excluded
// wholesale since the bulk tool can't apply per-file size rules.
func (p Policy) ExcludedExtensions() []string {
	return []string{"*.exe", "*.msi", "*.bat", "*.cmd", "*.dll", "*" + shortcutExtension}
}

// ExcludedDirectories returns the directory names a delegated bulk copy must
// exclude, mirroring the substring denylist.
func (p Policy) ExcludedDirectories() []string {
	return []string{"AppData", "Program Files", "Windows", "Microsoft", "Temp"}
}
