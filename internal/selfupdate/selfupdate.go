// Package selfupdate replaces the running installer with a newer release.
package selfupdate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"github.com/tianmenglucky/lbe-installer/internal/logging"
	"github.com/tianmenglucky/lbe-installer/internal/manifest"
	"github.com/tianmenglucky/lbe-installer/internal/release"
	"github.com/tianmenglucky/lbe-installer/internal/version"
)

// NewInstallerName is the file the newer installer is saved as, next to the
// running executable.
const NewInstallerName = "LiarsBarEnhanceInstaller_New.exe"

// ErrExited is returned once the new installer has been launched. Nothing
// else may run after it.
var ErrExited = errors.New("handed off to the new installer")

// State tracks a single self-update attempt.
type State int

const (
	Idle State = iota
	Checking
	UpToDate
	Updating
	Exited
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Checking:
		return "checking"
	case UpToDate:
		return "up-to-date"
	case Updating:
		return "updating"
	case Exited:
		return "exited"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Downloader saves a URL to a file.
type Downloader interface {
	DownloadFile(ctx context.Context, url, dest string) error
}

// Options configures an Updater.
type Options struct {
	Current    version.Version
	Downloader Downloader
	// Dir receives the new installer. Defaults to the executable's directory.
	Dir string
	// Launch starts the new installer. Defaults to a detached process.
	Launch func(path string) error
	// Exit terminates the process. Defaults to os.Exit.
	Exit func(code int)
}

// Updater performs at most one self-update check.
type Updater struct {
	current version.Version
	dl      Downloader
	dir     string
	launch  func(string) error
	exit    func(int)

	mu    sync.Mutex
	state State
}

// New builds an Updater.
func New(opts Options) *Updater {
	u := &Updater{
		current: opts.Current,
		dl:      opts.Downloader,
		dir:     opts.Dir,
		launch:  opts.Launch,
		exit:    opts.Exit,
	}
	if u.launch == nil {
		u.launch = launchDetached
	}
	if u.exit == nil {
		u.exit = os.Exit
	}
	return u
}

// State returns the current state.
func (u *Updater) State() State {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.state
}

func (u *Updater) set(s State) {
	u.mu.Lock()
	u.state = s
	u.mu.Unlock()
}

// Available reports whether m advertises an installer newer than the running one.
func (u *Updater) Available(m *manifest.Manifest) bool {
	if m == nil || m.LatestInstallerVersion == nil {
		return false
	}
	return version.Compare(*m.LatestInstallerVersion, u.current) == version.Greater
}

// MaybeSelfUpdate downloads, launches and exits into a newer installer when
// m advertises one. It returns nil when already current, ErrExited after the
// handoff, and the failure otherwise; on failure the caller keeps running.
func (u *Updater) MaybeSelfUpdate(ctx context.Context, m *manifest.Manifest) error {
	u.mu.Lock()
	if u.state != Idle {
		st := u.state
		u.mu.Unlock()
		if st == Exited {
			return ErrExited
		}
		return fmt.Errorf("self-update already ran (state %s)", st)
	}
	u.state = Checking
	u.mu.Unlock()

	if !u.Available(m) {
		u.set(UpToDate)
		logging.Debugf("Verbose: installer %s is current\n", u.current)
		return nil
	}

	latest := *m.LatestInstallerVersion
	u.set(Updating)
	logging.Infof("New installer version %s found, downloading\n", latest)

	if err := u.handoff(ctx, latest); err != nil {
		u.set(Failed)
		return fmt.Errorf("self-update to %s: %w", latest, err)
	}

	u.set(Exited)
	u.exit(0)
	return ErrExited
}

func (u *Updater) handoff(ctx context.Context, latest version.Version) error {
	url, err := release.InstallerDownloadURL(latest)
	if err != nil {
		return err
	}

	dir := u.dir
	if dir == "" {
		exe, err := os.Executable()
		if err != nil {
			return fmt.Errorf("locating executable: %w", err)
		}
		dir = filepath.Dir(exe)
	}
	dest := filepath.Join(dir, NewInstallerName)

	if err := u.dl.DownloadFile(ctx, url, dest); err != nil {
		return err
	}
	if err := os.Chmod(dest, 0o755); err != nil {
		return fmt.Errorf("marking %s executable: %w", dest, err)
	}
	if err := u.launch(dest); err != nil {
		return fmt.Errorf("launching %s: %w", dest, err)
	}
	logging.Infof("Started %s\n", dest)
	return nil
}

func launchDetached(path string) error {
	cmd := exec.Command(path)
	cmd.Dir = filepath.Dir(path)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}
