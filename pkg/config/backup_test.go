package config

import (
	"testing"
	"time"

	"github.com/c2h5oh/datasize"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigPath = "/home/alice/.shareback.yaml"

func mockConfigPath(t *testing.T) {
	homedirExpand = func(string) (string, error) { return testConfigPath, nil }
	t.Cleanup(func() { homedirExpand = homedir.Expand })
}

func TestParseBackupDefaults(t *testing.T) {
	mockConfigPath(t)
	fs = afero.NewMemMapFs()

	cfg, err := ParseBackup()
	require.NoError(t, err)
	assert.Equal(t, `Z:\`, cfg.MappedRoot)
	assert.Equal(t, "BACKUP", cfg.BackupFolderName)
	assert.Equal(t, []string{"Desktop", "Documents"}, cfg.UserFolders)
	assert.Equal(t, time.Minute, cfg.RetryInterval)
	assert.Equal(t, 15*time.Minute, cfg.DriveTimeout)
	assert.Equal(t, datasize.GB, cfg.MaxFileSize)
	assert.Equal(t, ".pst", cfg.ArchiveExtension)
}

func TestParseBackupFile(t *testing.T) {
	mockConfigPath(t)
	fs = afero.NewMemMapFs()

	input := []byte(`
version: v1alpha1
networkRoot: //server/backups
mappedRoot: /mnt/backup
retryInterval: 30s
driveTimeout: 5m
maxFileSize: 500MB
userFolders: [Desktop]
`)
	require.NoError(t, afero.WriteFile(fs, testConfigPath, input, 0644))

	cfg, err := ParseBackup()
	require.NoError(t, err)
	assert.Equal(t, "//server/backups", cfg.NetworkRoot)
	assert.Equal(t, "/mnt/backup", cfg.MappedRoot)
	assert.Equal(t, 30*time.Second, cfg.RetryInterval)
	assert.Equal(t, 5*time.Minute, cfg.DriveTimeout)
	assert.Equal(t, 500*datasize.MB, cfg.MaxFileSize)
	assert.Equal(t, []string{"Desktop"}, cfg.UserFolders)

	// Fields the file doesn't mention keep their defaults.
	assert.Equal(t, "BACKUP", cfg.BackupFolderName)
	assert.Equal(t, ".pst", cfg.ArchiveExtension)
}

func TestParseBackupNoVersion(t *testing.T) {
	mockConfigPath(t)
	fs = afero.NewMemMapFs()

	input := []byte("mappedRoot: /mnt/backup\n")
	require.NoError(t, afero.WriteFile(fs, testConfigPath, input, 0644))

	cfg, err := ParseBackup()
	require.NoError(t, err)
	assert.Equal(t, "/mnt/backup", cfg.MappedRoot)
}

func TestParseBackupErrors(t *testing.T) {
	mockConfigPath(t)

	tests := []struct {
		name     string
		input    string
		expError string
	}{
		{
			name:     "IncorrectVersion",
			input:    "version: v2\n",
			expError: "incompatible",
		},
		{
			name:     "ExtraFields",
			input:    "version: v1alpha1\nextra: fields\n",
			expError: "could not be parsed",
		},
		{
			name:     "BadDuration",
			input:    "retryInterval: soon\n",
			expError: "parse retryInterval",
		},
		{
			name:     "BadSize",
			input:    "maxFileSize: huge\n",
			expError: "parse maxFileSize",
		},
		{
			name:     "NoRoots",
			input:    "mappedRoot: \"\"\n",
			expError: "networkRoot",
		},
		{
			name:     "NoUserFolders",
			input:    "userFolders: []\n",
			expError: "userFolders",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			fs = afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(
				fs, testConfigPath, []byte(test.input), 0644))

			_, err := ParseBackup()
			require.Error(t, err)
			assert.Contains(t, err.Error(), test.expError)
		})
	}
}

func TestWriteDefault(t *testing.T) {
	mockConfigPath(t)
	fs = afero.NewMemMapFs()

	path, err := WriteDefault()
	require.NoError(t, err)
	assert.Equal(t, testConfigPath, path)

	// The generated file must round-trip through ParseBackup.
	cfg, err := ParseBackup()
	require.NoError(t, err)
	assert.Equal(t, "BACKUP", cfg.BackupFolderName)

	// A second write must refuse to clobber the file.
	_, err = WriteDefault()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}
