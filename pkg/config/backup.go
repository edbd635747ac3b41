package config

import (
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/ghodss/yaml"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"

	"github.com/shareback/shareback/pkg/errors"
)

const (
	// BackupConfigPath is the default path to the Shareback config.
	BackupConfigPath = "~/.shareback.yaml"

	// InitialBackupConfigVersion is the first version of the Shareback
	// config. Config files that do not specify a version will default to
	// this version.
	InitialBackupConfigVersion = "v1alpha1"

	// SupportedBackupConfigVersion is the supported version of the
	// Shareback config of the current Shareback binary.
	SupportedBackupConfigVersion = "v1alpha1"
)

// Backup contains the settings for a backup run, with the durations and
// sizes from the config file already parsed into their native types.
type Backup struct {
	// NetworkRoot is the highest priority destination root, typically a UNC
	// share. It may be empty, in which case only the mapped root is probed.
	NetworkRoot string

	// MappedRoot is the mapped-drive destination root.
	MappedRoot string

	// BackupFolderName is the name of the directory created under the
	// resolved destination root.
	BackupFolderName string

	// UserFolders are the profile folders to back up, relative to the home
	// directory.
	UserFolders []string

	// RetryInterval is how long to sleep between destination probes.
	RetryInterval time.Duration

	// DriveTimeout bounds how long a run waits for a destination to become
	// reachable.
	DriveTimeout time.Duration

	// MaxFileSize is the copy cutoff. Files larger than this are skipped
	// unless they carry the archive extension. Compared in raw bytes.
	MaxFileSize datasize.ByteSize

	// OutlookFolders are the folders (relative to the home directory) that
	// hold Outlook archives.
	OutlookFolders []string

	// ArchiveExtension is the Outlook archive extension exempt from the
	// size cutoff.
	ArchiveExtension string

	// LogFile is an optional path to append run logs to. Empty means
	// stderr only.
	LogFile string
}

// backupFile is the on-disk representation of the Backup config.
type backupFile struct {
	Version          string   `json:"version,omitempty"`
	NetworkRoot      string   `json:"networkRoot,omitempty"`
	MappedRoot       string   `json:"mappedRoot,omitempty"`
	BackupFolderName string   `json:"backupFolderName,omitempty"`
	UserFolders      []string `json:"userFolders,omitempty"`
	RetryInterval    string   `json:"retryInterval,omitempty"`
	DriveTimeout     string   `json:"driveTimeout,omitempty"`
	MaxFileSize      string   `json:"maxFileSize,omitempty"`
	OutlookFolders   []string `json:"outlookFolders,omitempty"`
	ArchiveExtension string   `json:"archiveExtension,omitempty"`
	LogFile          string   `json:"logFile,omitempty"`
}

func (f backupFile) getVersion() string {
	return f.Version
}

func defaultBackupFile() backupFile {
	return backupFile{
		Version:          SupportedBackupConfigVersion,
		MappedRoot:       `Z:\`,
		BackupFolderName: "BACKUP",
		UserFolders:      []string{"Desktop", "Documents"},
		RetryInterval:    "60s",
		DriveTimeout:     "15m",
		MaxFileSize:      "1GB",
		OutlookFolders:   []string{"Documents/Outlook", "Documents/OutlookFiles"},
		ArchiveExtension: ".pst",
	}
}

// homedirExpand will be overridden in mock tests.
var homedirExpand = homedir.Expand

// GetBackupConfigPath returns the expanded path to the Shareback config.
func GetBackupConfigPath() (string, error) {
	return homedirExpand(BackupConfigPath)
}

// ParseBackup parses the Backup config stored in the default path. A missing
// config file isn't an error -- the run proceeds with the built-in defaults
// so that the tool still works when deployed as a bare login task.
func ParseBackup() (Backup, error) {
	path, err := GetBackupConfigPath()
	if err != nil {
		return Backup{}, errors.WithContext(err, "expand config path")
	}

	file := defaultBackupFile()
	file.Version = InitialBackupConfigVersion
	if err := parseConfig(path, &file, SupportedBackupConfigVersion); err != nil {
		if _, ok := err.(errors.FileNotFound); !ok {
			return Backup{}, errors.WithContext(err, "parse")
		}
		file = defaultBackupFile()
	}
	return file.toBackup()
}

func (f backupFile) toBackup() (Backup, error) {
	if f.BackupFolderName == "" {
		return Backup{}, errors.MissingFieldError{Field: "backupFolderName"}
	}
	if len(f.UserFolders) == 0 {
		return Backup{}, errors.MissingFieldError{Field: "userFolders"}
	}
	if f.NetworkRoot == "" && f.MappedRoot == "" {
		return Backup{}, errors.NewFriendlyError(
			"The config file must set at least one of networkRoot and " +
				"mappedRoot, otherwise there is nowhere to back up to.")
	}

	retryInterval, err := time.ParseDuration(f.RetryInterval)
	if err != nil {
		return Backup{}, errors.WithContext(err, "parse retryInterval")
	}

	driveTimeout, err := time.ParseDuration(f.DriveTimeout)
	if err != nil {
		return Backup{}, errors.WithContext(err, "parse driveTimeout")
	}

	maxFileSize, err := datasize.ParseString(f.MaxFileSize)
	if err != nil {
		return Backup{}, errors.WithContext(err, "parse maxFileSize")
	}

	return Backup{
		NetworkRoot:      f.NetworkRoot,
		MappedRoot:       f.MappedRoot,
		BackupFolderName: f.BackupFolderName,
		UserFolders:      f.UserFolders,
		RetryInterval:    retryInterval,
		DriveTimeout:     driveTimeout,
		MaxFileSize:      maxFileSize,
		OutlookFolders:   f.OutlookFolders,
		ArchiveExtension: f.ArchiveExtension,
		LogFile:          f.LogFile,
	}, nil
}

// WriteDefault writes the default Backup config to disk so that admins have
// a file to edit. It refuses to clobber an existing config.
func WriteDefault() (string, error) {
	path, err := GetBackupConfigPath()
	if err != nil {
		return "", errors.WithContext(err, "expand config path")
	}

	if exists, err := afero.Exists(fs, path); err == nil && exists {
		return "", errors.NewFriendlyError(
			"A config file already exists at %q. Remove it first if you "+
				"want to regenerate the defaults.", path)
	}

	yamlBytes, err := yaml.Marshal(defaultBackupFile())
	if err != nil {
		return "", errors.WithContext(err, "marshal")
	}

	if err := afero.WriteFile(fs, path, yamlBytes, 0644); err != nil {
		return "", errors.WithContext(err, "write")
	}
	return path, nil
}
