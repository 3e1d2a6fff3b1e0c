package shell

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/creack/pty"
	"golang.org/x/sys/unix"
)

// ErrNoCommand is returned when a request carries no argv
var ErrNoCommand = errors.New("shell: empty command")

// ErrCanceled is reported by StartAsync when the start was canceled before
// its result was delivered
var ErrCanceled = errors.New("shell: start canceled")

// Request describes a child process to start on a new pseudo terminal
type Request struct {
	Argv []string
	// Dir is the working directory; empty inherits ours
	Dir string
	// Env holds KEY=VALUE pairs applied over the inherited environment
	Env  []string
	Cols uint16
	Rows uint16
}

// PtySession manages a child process attached to a pseudo-terminal
type PtySession struct {
	cmd      *exec.Cmd
	pty      *os.File
	mu       sync.Mutex
	detached bool
}

// Start launches req.Argv on a new PTY in its own session
func Start(req Request) (*PtySession, error) {
	if len(req.Argv) == 0 || req.Argv[0] == "" {
		return nil, ErrNoCommand
	}

	cmd := exec.Command(req.Argv[0], req.Argv[1:]...)

	// Create new session - the child must not share our controlling terminal
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid: true,
	}
	cmd.Env = Environ(req.Argv[0], req.Env)
	cmd.Dir = req.Dir

	size := &pty.Winsize{Cols: req.Cols, Rows: req.Rows}
	if size.Cols == 0 || size.Rows == 0 {
		size = &pty.Winsize{Cols: 80, Rows: 24}
	}
	ptmx, err := pty.StartWithSize(cmd, size)
	if err != nil {
		return nil, fmt.Errorf("start %s in %q: %w", req.Argv[0], req.Dir, err)
	}

	return &PtySession{cmd: cmd, pty: ptmx}, nil
}

// Pending is a start in flight
type Pending struct {
	canceled atomic.Bool
}

// Cancel makes an undelivered start close its child and report ErrCanceled
func (p *Pending) Cancel() {
	p.canceled.Store(true)
}

// StartAsync starts req off the calling goroutine. The result is handed to
// dispatch, which must run the callback on the thread that owns the UI.
func StartAsync(req Request, dispatch func(func()), done func(*PtySession, error)) *Pending {
	pending := &Pending{}
	go func() {
		session, err := Start(req)
		dispatch(func() {
			if pending.canceled.Load() {
				if session != nil {
					session.Close()
				}
				done(nil, ErrCanceled)
				return
			}
			done(session, err)
		})
	}()
	return pending
}

// Environ returns the inherited environment with terminal variables and
// extra applied. Later entries win.
func Environ(shell string, extra []string) []string {
	env := append([]string{}, os.Environ()...)
	env = append(env,
		"TERM=xterm-256color",
		"COLORTERM=truecolor",
		"ZOHA=1",
	)
	if shell != "" && os.Getenv("SHELL") == "" {
		env = append(env, "SHELL="+shell)
	}
	env = append(env, extra...)
	return dedupEnv(env)
}

func dedupEnv(env []string) []string {
	index := make(map[string]int, len(env))
	out := make([]string, 0, len(env))
	for _, kv := range env {
		key := kv
		for i := 0; i < len(kv); i++ {
			if kv[i] == '=' {
				key = kv[:i]
				break
			}
		}
		if i, ok := index[key]; ok {
			out[i] = kv
			continue
		}
		index[key] = len(out)
		out = append(out, kv)
	}
	return out
}

// Pid returns the child process id
func (p *PtySession) Pid() int {
	return p.cmd.Process.Pid
}

// DupFd returns a duplicate of the PTY master descriptor. The caller owns it.
func (p *PtySession) DupFd() (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.detached {
		return -1, os.ErrClosed
	}
	fd, err := unix.Dup(int(p.pty.Fd()))
	if err != nil {
		return -1, fmt.Errorf("dup pty: %w", err)
	}
	return fd, nil
}

// Detach closes our copy of the PTY master and releases the process so that
// whoever took a DupFd can watch and reap the child.
func (p *PtySession) Detach() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.detached {
		return nil
	}
	p.detached = true
	closeErr := p.pty.Close()
	if err := p.cmd.Process.Release(); err != nil {
		return err
	}
	return closeErr
}

// Close kills the child, reaps it in the background and closes the PTY.
// It is a no-op after Detach.
func (p *PtySession) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.detached {
		return nil
	}
	p.detached = true
	p.cmd.Process.Kill()
	go p.cmd.Wait()
	return p.pty.Close()
}
