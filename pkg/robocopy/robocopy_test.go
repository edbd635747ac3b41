package robocopy

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shareback/shareback/pkg/backup"
)

func TestMirrorArgs(t *testing.T) {
	args := mirrorArgs(`C:\Users\alice\Documents`, `Z:\alice\BACKUP\Documents`,
		[]string{"*.exe", "*.lnk"}, []string{"AppData", "Temp"})

	exp := []string{
		`C:\Users\alice\Documents`, `Z:\alice\BACKUP\Documents`,
		"/E", "/XO", "/XN", "/XC",
		"/NFL", "/NDL", "/NJH", "/NJS", "/NP",
		"/XF", "*.exe", "*.lnk",
		"/XD", "AppData", "Temp",
	}
	assert.Equal(t, exp, args)
}

func TestMirrorArgsNoExclusions(t *testing.T) {
	args := mirrorArgs("src", "dst", nil, nil)
	assert.NotContains(t, args, "/XF")
	assert.NotContains(t, args, "/XD")
}

func TestMirrorToolMissing(t *testing.T) {
	lookPath = func(string) (string, error) { return "", exec.ErrNotFound }
	defer func() { lookPath = exec.LookPath }()

	err := Copier{}.Mirror("src", "dst", nil, nil)
	assert.Equal(t, backup.ErrBulkCopierUnavailable, err)
}
