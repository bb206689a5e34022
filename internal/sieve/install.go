package sieve

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// ErrUnknownUser is returned when doveadm does not know the target mailbox.
var ErrUnknownUser = errors.New("mailbox not found on target")

// Installer uploads scripts to a Dovecot server with doveadm.
type Installer struct {
	Command    []string // e.g. {"doveadm"} or {"docker","exec","-i","ctr","doveadm"}
	ScriptName string   // name on the server; defaults to the script's own name
}

// Install checks that user exists, then uploads s and makes it the active
// script.
func (in *Installer) Install(ctx context.Context, user string, s SieveScript) error {
	if len(in.Command) == 0 {
		return errors.New("install: doveadm command is empty")
	}
	name := in.ScriptName
	if name == "" {
		name = s.Name
	}

	exists, err := in.userExists(ctx, user)
	if err != nil {
		return fmt.Errorf("doveadm user check for %s: %w", user, err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrUnknownUser, user)
	}

	if err := in.run(ctx, strings.NewReader(s.Content()), "sieve", "put", "-u", user, name); err != nil {
		return fmt.Errorf("doveadm sieve put failed: %w", err)
	}
	if err := in.run(ctx, nil, "sieve", "activate", "-u", user, name); err != nil {
		return fmt.Errorf("doveadm sieve activate failed: %w", err)
	}
	return nil
}

func (in *Installer) userExists(ctx context.Context, user string) (bool, error) {
	if err := in.command(ctx, "user", "-u", user).Run(); err != nil {
		// ExitError means "user not found" or similar
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (in *Installer) run(ctx context.Context, stdin io.Reader, args ...string) error {
	cmd := in.command(ctx, args...)
	if stdin != nil {
		cmd.Stdin = stdin
	}
	var out bytes.Buffer
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w, stderr=%s", err, strings.TrimSpace(out.String()))
	}
	return nil
}

func (in *Installer) command(ctx context.Context, args ...string) *exec.Cmd {
	full := append(append([]string{}, in.Command[1:]...), args...)
	return exec.CommandContext(ctx, in.Command[0], full...)
}
