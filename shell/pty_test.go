package shell

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func requirePty(t *testing.T) {
	t.Helper()
	if _, err := os.Stat("/dev/ptmx"); err != nil {
		t.Skip("no pty support")
	}
	if _, err := os.Stat("/proc/self/cwd"); err != nil {
		t.Skip("no /proc")
	}
}

func readLineContaining(t *testing.T, s *PtySession, want string) {
	t.Helper()
	fd, err := s.DupFd()
	require.NoError(t, err)
	out := os.NewFile(uintptr(fd), "pty-read")
	t.Cleanup(func() { out.Close() })

	found := make(chan bool, 1)
	go func() {
		scanner := bufio.NewScanner(out)
		for scanner.Scan() {
			if strings.Contains(scanner.Text(), want) {
				found <- true
				return
			}
		}
		found <- false
	}()
	select {
	case ok := <-found:
		require.True(t, ok, "output never contained %q", want)
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for %q", want)
	}
}

func TestStartRunsCommandInDir(t *testing.T) {
	requirePty(t)
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	s, err := Start(Request{
		Argv: []string{"/bin/sh", "-c", `echo "marker:$ZOHA:$GREETING"; pwd; sleep 5`},
		Dir:  dir,
		Env:  []string{"GREETING=hi"},
	})
	require.NoError(t, err)
	defer s.Close()

	readLineContaining(t, s, "marker:1:hi")
	require.Greater(t, s.Pid(), 0)

	cwd, err := Cwd(s.Pid())
	require.NoError(t, err)
	assert.Equal(t, dir, cwd)
}

func TestStartMissingDirFails(t *testing.T) {
	requirePty(t)
	_, err := Start(Request{
		Argv: []string{"/bin/sh"},
		Dir:  filepath.Join(t.TempDir(), "gone"),
	})
	assert.Error(t, err)
}

func TestStartEmptyCommand(t *testing.T) {
	_, err := Start(Request{})
	assert.ErrorIs(t, err, ErrNoCommand)
}

func TestStartAsyncDispatchesResult(t *testing.T) {
	requirePty(t)
	queue := make(chan func(), 1)
	type result struct {
		session *PtySession
		err     error
	}
	results := make(chan result, 1)

	StartAsync(Request{Argv: []string{"/bin/sh", "-c", "sleep 5"}},
		func(fn func()) { queue <- fn },
		func(s *PtySession, err error) { results <- result{s, err} },
	)

	select {
	case fn := <-queue:
		fn()
	case <-time.After(5 * time.Second):
		t.Fatal("spawn never dispatched")
	}
	r := <-results
	require.NoError(t, r.err)
	defer r.session.Close()
	assert.Greater(t, r.session.Pid(), 0)
}

func TestStartAsyncCanceledClosesChild(t *testing.T) {
	requirePty(t)
	queue := make(chan func(), 1)
	var (
		got    *PtySession
		gotErr error
	)
	pending := StartAsync(Request{Argv: []string{"/bin/sh", "-c", "sleep 30"}},
		func(fn func()) { queue <- fn },
		func(s *PtySession, err error) { got, gotErr = s, err },
	)
	pending.Cancel()

	select {
	case fn := <-queue:
		fn()
	case <-time.After(5 * time.Second):
		t.Fatal("spawn never dispatched")
	}
	assert.Nil(t, got)
	require.ErrorIs(t, gotErr, ErrCanceled)
}

func TestDupFdAndDetach(t *testing.T) {
	requirePty(t)
	s, err := Start(Request{Argv: []string{"/bin/sh", "-c", "sleep 5"}})
	require.NoError(t, err)

	fd, err := s.DupFd()
	require.NoError(t, err)
	dup := os.NewFile(uintptr(fd), "pty-dup")
	defer dup.Close()

	require.NoError(t, s.Detach())
	require.NoError(t, s.Detach())
	_, err = s.DupFd()
	assert.ErrorIs(t, err, os.ErrClosed)

	// the duplicate keeps the pty usable after detach
	_, err = dup.Write([]byte("exit\n"))
	assert.NoError(t, err)

	p, err := os.FindProcess(s.Pid())
	require.NoError(t, err)
	_ = p.Kill()
	_, _ = p.Wait()
}

func TestCloseKillsAndReapsChild(t *testing.T) {
	requirePty(t)
	s, err := Start(Request{Argv: []string{"/bin/sh", "-c", "sleep 30"}})
	require.NoError(t, err)
	pid := s.Pid()

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	_, err = s.DupFd()
	assert.ErrorIs(t, err, os.ErrClosed)

	assert.Eventually(t, func() bool {
		return unix.Kill(pid, 0) == unix.ESRCH
	}, 5*time.Second, 20*time.Millisecond)
}

func TestCwdOfSelf(t *testing.T) {
	requirePty(t)
	wd, err := os.Getwd()
	require.NoError(t, err)
	wd, err = filepath.EvalSymlinks(wd)
	require.NoError(t, err)

	cwd, err := Cwd(os.Getpid())
	require.NoError(t, err)
	assert.Equal(t, wd, cwd)
}

func TestCwdUnknownPid(t *testing.T) {
	_, err := Cwd(-1)
	assert.Error(t, err)
}

func TestEnvironLaterEntriesWin(t *testing.T) {
	env := Environ("/bin/sh", []string{"TERM=dumb", "FOO=1", "FOO=2"})
	assert.Contains(t, env, "TERM=dumb")
	assert.NotContains(t, env, "TERM=xterm-256color")
	assert.Contains(t, env, "FOO=2")
	assert.NotContains(t, env, "FOO=1")
	assert.Contains(t, env, "ZOHA=1")
}

func TestGetUserShell(t *testing.T) {
	passwd := filepath.Join(t.TempDir(), "passwd")
	require.NoError(t, os.WriteFile(passwd, []byte(
		"root:x:0:0:root:/root:/bin/bash\nalice:x:1000:1000::/home/alice:/usr/bin/fish\n"), 0o644))

	assert.Equal(t, "/usr/bin/fish", getUserShell(passwd, "alice"))
	assert.Equal(t, "", getUserShell(passwd, "bob"))
	assert.Equal(t, "", getUserShell(filepath.Join(t.TempDir(), "none"), "alice"))
}

func TestFindShellPrefersEnv(t *testing.T) {
	t.Setenv("SHELL", "/bin/sh")
	if !isExecutable("/bin/sh") {
		t.Skip("no /bin/sh")
	}
	assert.Equal(t, "/bin/sh", FindShell())
}
