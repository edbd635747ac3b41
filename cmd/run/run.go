package run

import (
	"context"
	"io"
	"os"
	"os/user"
	"path/filepath"

	"github.com/jonboulle/clockwork"
	homedir "github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/shareback/shareback/cmd/util"
	"github.com/shareback/shareback/pkg/backup"
	"github.com/shareback/shareback/pkg/config"
	"github.com/shareback/shareback/pkg/errors"
	"github.com/shareback/shareback/pkg/robocopy"
)

// Mocked out for unit testing.
var (
	fs          = afero.NewOsFs()
	currentUser = user.Current
	homeDir     = homedir.Dir
)

// New creates a new `run` command.
func New() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Back up the profile folders to the first reachable destination.",
		Long: "Back up the configured profile folders (e.g. Desktop and\n" +
			"Documents) to the first reachable destination root, waiting for\n" +
			"the share to come up after login. Only new or modified files are\n" +
			"copied; nothing is ever deleted.",
		Run: func(_ *cobra.Command, _ []string) {
			cfg, err := config.ParseBackup()
			if err != nil {
				util.HandleFatalError(errors.WithContext(err, "load config"))
			}

			closeLog, err := setupLogFile(cfg.LogFile)
			if err != nil {
				util.HandleFatalError(errors.WithContext(err, "open log file"))
			}
			defer closeLog()

			if err := run(context.Background(), cfg); err != nil {
				util.HandleFatalError(err)
			}
		},
	}
}

func run(ctx context.Context, cfg config.Backup) error {
	username, err := resolveUsername()
	if err != nil {
		return errors.WithContext(err, "resolve username")
	}

	home, err := homeDir()
	if err != nil {
		return errors.WithContext(err, "resolve home directory")
	}

	sources := existingSourceFolders(home, cfg.UserFolders)
	if len(sources) == 0 {
		log.Info("None of the configured profile folders exist. Nothing to do.")
		return nil
	}

	waiter := backup.Waiter{
		Locations: backup.Locations{
			NetworkRoot:      cfg.NetworkRoot,
			MappedRoot:       cfg.MappedRoot,
			BackupFolderName: cfg.BackupFolderName,
		},
		Clock:         clockwork.NewRealClock(),
		RetryInterval: cfg.RetryInterval,
		Timeout:       cfg.DriveTimeout,
	}

	log.WithField("timeout", cfg.DriveTimeout).Info("Waiting for a backup destination")
	destRoot, ok := waiter.Wait(ctx, username)
	if !ok {
		return errors.ErrDestinationUnavailable
	}
	log.WithField("destination", destRoot).Info("Resolved backup destination")

	if err := fs.MkdirAll(destRoot, 0755); err != nil {
		return errors.WithContext(err, "create destination root")
	}

	engine := backup.Engine{
		Policy: backup.Policy{
			MaxFileSize:      cfg.MaxFileSize,
			ArchiveExtension: cfg.ArchiveExtension,
		},
		Bulk: robocopy.Copier{},
	}

	for _, src := range sources {
		summary := engine.CopyFolder(ctx, src, destRoot)
		logSummary(src, summary)
	}
	return nil
}

func resolveUsername() (string, error) {
	u, err := currentUser()
	if err == nil && u.Username != "" {
		// On Windows the username comes back domain-qualified.
		return filepath.Base(u.Username), nil
	}

	for _, key := range []string{"USERNAME", "USER"} {
		if name := os.Getenv(key); name != "" {
			return name, nil
		}
	}

	if err == nil {
		err = errors.New("empty username")
	}
	return "", errors.WithContext(err, "look up current user")
}

// existingSourceFolders keeps the configured folders that exist under the
// home directory. The set is computed once and never re-evaluated mid-run.
func existingSourceFolders(home string, names []string) []string {
	var sources []string
	for _, name := range names {
		path := filepath.Join(home, name)
		if exists, err := afero.DirExists(fs, path); err == nil && exists {
			sources = append(sources, path)
		}
	}
	return sources
}

func logSummary(src string, summary backup.Summary) {
	entry := log.WithField("source", src)
	if summary.Delegated {
		entry.WithField("failed", summary.Failed).Info("Delegated folder to bulk copy tool")
	} else {
		entry.WithFields(log.Fields{
			"copied":  summary.Copied,
			"skipped": summary.Skipped,
			"failed":  summary.Failed,
		}).Info("Finished folder")
	}

	for _, failure := range summary.Failures {
		log.WithError(failure.Err).WithField("path", failure.Path).Debug(
			"Skipped file after copy error")
	}
}

// setupLogFile mirrors log output into the configured file so that
// unattended runs leave a trace even with the console suppressed.
func setupLogFile(path string) (func(), error) {
	if path == "" {
		return func() {}, nil
	}

	file, err := fs.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	log.SetOutput(io.MultiWriter(os.Stderr, file))
	return func() {
		log.SetOutput(os.Stderr)
		file.Close()
	}, nil
}
