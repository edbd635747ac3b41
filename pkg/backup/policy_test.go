package backup

import (
	"testing"

	"github.com/c2h5oh/datasize"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldSkip(t *testing.T) {
	fs = afero.NewMemMapFs()

	policy := Policy{
		MaxFileSize:      datasize.KB,
		ArchiveExtension: ".pst",
	}

	writeSized(t, "/home/alice/Documents/notes.txt", 100)
	writeSized(t, "/home/alice/Documents/movie.iso", 2048)
	writeSized(t, "/home/alice/Documents/Outlook/archive.pst", 2048)
	writeSized(t, "/home/alice/AppData/Roaming/cache.dat", 100)
	require.NoError(t, fs.MkdirAll("/home/alice/Documents/Projects", 0755))

	tests := []struct {
		name    string
		path    string
		expSkip bool
	}{
		{
			name:    "SmallFile",
			path:    "/home/alice/Documents/notes.txt",
			expSkip: false,
		},
		{
			name:    "Directory",
			path:    "/home/alice/Documents/Projects",
			expSkip: false,
		},
		{
			name:    "DenylistedFolder",
			path:    "/home/alice/AppData/Roaming/cache.dat",
			expSkip: true,
		},
		{
			name:    "DenylistCaseInsensitive",
			path:    "/home/alice/Documents/PROGRAM FILES/setup.dat",
			expSkip: true,
		},
		{
			name:    "Shortcut",
			path:    "/home/alice/Desktop/app.lnk",
			expSkip: true,
		},
		{
			name:    "VanishedFile",
			path:    "/home/alice/Documents/ghost.txt",
			expSkip: true,
		},
		{
			name:    "OversizedFile",
			path:    "/home/alice/Documents/movie.iso",
			expSkip: true,
		},
		{
			name:    "OversizedArchive",
			path:    "/home/alice/Documents/Outlook/archive.pst",
			expSkip: false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expSkip, policy.ShouldSkip(test.path))
		})
	}
}

func TestShouldSkipNoCutoff(t *testing.T) {
	fs = afero.NewMemMapFs()
	writeSized(t, "/home/alice/Documents/movie.iso", 2048)

	policy := Policy{ArchiveExtension: ".pst"}
	assert.False(t, policy.ShouldSkip("/home/alice/Documents/movie.iso"))
}

func writeSized(t *testing.T, path string, size int) {
	require.NoError(t, afero.WriteFile(fs, path, make([]byte, size), 0644))
}
