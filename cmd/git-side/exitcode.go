package main

import (
	"errors"

	"github.com/Solexma/git-side/internal/identity"
	"github.com/Solexma/git-side/internal/registry"
	"github.com/Solexma/git-side/internal/remote"
	"github.com/Solexma/git-side/internal/syncer"
	"github.com/Solexma/git-side/internal/tracked"
)

// Process exit codes. These are part of the CLI contract.
const (
	exitOK             = 0
	exitError          = 1
	exitNotAProject    = 2
	exitOutsideProject = 3
	exitNoRemote       = 4
	exitUnreachable    = 5
	exitConfigCorrupt  = 6
	exitSyncAborted    = 7
)

var exitCodes = []struct {
	err  error
	code int
}{
	{identity.ErrNotAProject, exitNotAProject},
	{identity.ErrNoInitialCommit, exitNotAProject},
	{tracked.ErrPathOutsideProject, exitOutsideProject},
	{remote.ErrNoRemote, exitNoRemote},
	{remote.ErrRemoteUnreachable, exitUnreachable},
	{registry.ErrConfigCorrupt, exitConfigCorrupt},
	{syncer.ErrSyncAborted, exitSyncAborted},
}

// exitCode maps err to the process exit code.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	for _, e := range exitCodes {
		if errors.Is(err, e.err) {
			return e.code
		}
	}
	return exitError
}
