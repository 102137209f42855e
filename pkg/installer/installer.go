// Package installer orchestrates the install/update workflow for a single
// mod: snapshot existing configuration files, clean the target, extract the
// new archive, then reconcile the snapshots back in by merge or restore.
// Only extraction failure aborts; every other phase degrades and records
// its outcome in the step log.
package installer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/modkeep/pkg/archive"
	"github.com/arthur-debert/modkeep/pkg/errors"
	"github.com/arthur-debert/modkeep/pkg/inifile"
	"github.com/arthur-debert/modkeep/pkg/logging"
	"github.com/arthur-debert/modkeep/pkg/version"
)

// State names the coordinator's workflow phases. Done and Failed are
// terminal; there is no cancellation once an install starts.
type State string

const (
	StateIdle        State = "idle"
	StateBackingUp   State = "backing_up"
	StateCleaning    State = "cleaning"
	StateExtracting  State = "extracting"
	StateReconciling State = "reconciling"
	StateDone        State = "done"
	StateFailed      State = "failed"
)

// BackupDirName is the subdirectory holding timestamped physical copies of
// configuration files. It survives the clean phase.
const BackupDirName = "mod_backups"

const backupStampFormat = "20060102_150405"

// Target names the two roots an install operates on. For most games they
// are the same directory; legacy games that install into the game folder
// scan an on-disk marker directory while extracting into the game root.
type Target struct {
	// ScanRoot is walked for existing configuration files before the
	// install and anchors their relative paths during reconciliation.
	ScanRoot string

	// ExtractRoot is the directory the archive is extracted into.
	ExtractRoot string
}

// SameRootTarget is the common case of one directory for both roles.
func SameRootTarget(dir string) Target {
	return Target{ScanRoot: dir, ExtractRoot: dir}
}

// StepResult records the outcome of one workflow phase.
type StepResult struct {
	Phase   State  `json:"phase"`
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Result is the full outcome of one install call: the ordered step log,
// plus the version token resolved from the archive filename on success.
type Result struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Steps   []StepResult `json:"steps"`
	Version string       `json:"version,omitempty"`
}

// Progress receives state transitions as they happen. Callbacks run on the
// installing goroutine; callers needing async delivery wrap it themselves.
type Progress func(state State, detail string)

// Coordinator runs installs against one target. It holds no cross-install
// state; callers serialize operations touching the same target directory.
type Coordinator struct {
	target   Target
	progress Progress
	logger   zerolog.Logger
}

func New(target Target) *Coordinator {
	return &Coordinator{
		target:   target,
		progress: func(State, string) {},
		logger:   logging.GetLogger("installer"),
	}
}

// OnProgress installs the state-transition callback.
func (c *Coordinator) OnProgress(fn Progress) {
	if fn != nil {
		c.progress = fn
	}
}

// Install runs the full workflow for the archive at archivePath. The
// returned result always carries the step log for every phase attempted,
// including on failure.
func (c *Coordinator) Install(archivePath string) *Result {
	result := &Result{}
	done := logging.LogOperationStart(c.logger, "install")
	defer done()
	c.logger.Info().
		Str("archive", archivePath).
		Str("target", c.target.ExtractRoot).
		Msg("Starting install")

	c.progress(StateBackingUp, "Backing up configuration files")
	snapshots := c.backupConfigs(result)

	c.progress(StateCleaning, "Removing previous mod files")
	c.cleanTarget(result)

	c.progress(StateExtracting, "Extracting archive")
	if !c.extract(archivePath, result) {
		c.progress(StateFailed, result.Message)
		return result
	}

	c.progress(StateReconciling, "Restoring configuration files")
	c.reconcile(snapshots, result)

	result.Success = true
	result.Message = "Install complete"
	result.Version = version.FromFilename(archivePath)
	c.progress(StateDone, result.Message)
	return result
}

// backupConfigs walks ScanRoot for configuration files, snapshotting their
// bytes in memory. Physical copies into mod_backups/ are best-effort: only
// the in-memory snapshot feeds reconciliation.
func (c *Coordinator) backupConfigs(result *Result) map[string][]byte {
	snapshots := make(map[string][]byte)
	backupDir := filepath.Join(c.target.ScanRoot, BackupDirName)
	stamp := time.Now().Format(backupStampFormat)

	walkErr := filepath.WalkDir(c.target.ScanRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if d.Name() == BackupDirName {
				return filepath.SkipDir
			}
			return nil
		}
		if !isConfigFile(d.Name()) {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			c.logger.Warn().Err(err).Str("file", path).Msg("Failed to snapshot configuration file")
			return nil
		}
		snapshots[path] = data

		copyPath := filepath.Join(backupDir, fmt.Sprintf("%s.%s", d.Name(), stamp))
		if err := os.MkdirAll(backupDir, 0o755); err == nil {
			err = os.WriteFile(copyPath, data, 0o644)
		}
		if err != nil {
			c.logger.Warn().Err(err).Str("file", path).Msg("Failed to write physical backup copy")
		}
		return nil
	})
	if walkErr != nil && !os.IsNotExist(walkErr) {
		c.logger.Warn().Err(walkErr).Msg("Backup walk failed")
	}

	result.Steps = append(result.Steps, StepResult{
		Phase:   StateBackingUp,
		Success: true,
		Message: fmt.Sprintf("Backed up %d configuration file(s)", len(snapshots)),
	})
	return snapshots
}

// cleanTarget deletes everything directly under ScanRoot except
// configuration files and the backup directory. ScanRoot is the directory
// the mod owns; for in-game installs ExtractRoot is the game folder itself
// and must never be cleaned. Per-entry failures are logged and skipped.
func (c *Coordinator) cleanTarget(result *Result) {
	entries, err := os.ReadDir(c.target.ScanRoot)
	if err != nil {
		if !os.IsNotExist(err) {
			c.logger.Warn().Err(err).Msg("Failed to read target directory for cleaning")
		}
		result.Steps = append(result.Steps, StepResult{
			Phase:   StateCleaning,
			Success: true,
			Message: "Nothing to clean",
		})
		return
	}

	removed := 0
	failed := 0
	for _, entry := range entries {
		if entry.Name() == BackupDirName {
			continue
		}
		if !entry.IsDir() && isConfigFile(entry.Name()) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(c.target.ScanRoot, entry.Name())); err != nil {
			c.logger.Warn().Err(err).Str("entry", entry.Name()).Msg("Failed to remove stale entry")
			failed++
			continue
		}
		removed++
	}

	msg := fmt.Sprintf("Removed %d stale entr(ies)", removed)
	if failed > 0 {
		msg = fmt.Sprintf("%s, %d could not be removed", msg, failed)
	}
	result.Steps = append(result.Steps, StepResult{
		Phase:   StateCleaning,
		Success: failed == 0,
		Message: msg,
	})
}

// extract dispatches to the archive backend and extracts into ExtractRoot.
// This is the only phase whose failure aborts the install.
func (c *Coordinator) extract(archivePath string, result *Result) bool {
	fail := func(err error) bool {
		result.Success = false
		result.Message = err.Error()
		result.Steps = append(result.Steps, StepResult{
			Phase:   StateExtracting,
			Success: false,
			Message: err.Error(),
		})
		c.logger.Error().Err(err).Str("archive", archivePath).Msg("Extraction failed")
		return false
	}

	r, err := archive.Open(archivePath)
	if err != nil {
		return fail(err)
	}
	defer r.Close()

	if err := os.MkdirAll(c.target.ExtractRoot, 0o755); err != nil {
		return fail(errors.Wrap(err, errors.ErrExtractionFailed, "failed to create target directory"))
	}
	n, err := r.ExtractTo(c.target.ExtractRoot)
	if err != nil {
		return fail(err)
	}

	result.Steps = append(result.Steps, StepResult{
		Phase:   StateExtracting,
		Success: true,
		Message: fmt.Sprintf("Extracted %d file(s)", n),
	})
	return true
}

// reconcile walks the snapshots: files the archive re-provided get the old
// values merged back in (old wins for keys present in both); files the
// archive did not provide are restored verbatim. Per-file failures are
// logged and do not abort.
func (c *Coordinator) reconcile(snapshots map[string][]byte, result *Result) {
	merged := 0
	restored := 0
	preserved := 0
	failed := 0

	for path, snapshot := range snapshots {
		// Files inside the extraction tree keep their original location.
		// Anything scanned outside it is translated through ScanRoot so
		// it lands under ExtractRoot.
		rel, err := filepath.Rel(c.target.ExtractRoot, path)
		if err != nil || strings.HasPrefix(rel, "..") {
			rel, err = filepath.Rel(c.target.ScanRoot, path)
			if err != nil || strings.HasPrefix(rel, "..") {
				c.logger.Warn().Str("file", path).Msg("Skipping configuration file outside both roots")
				continue
			}
		}
		dest := filepath.Join(c.target.ExtractRoot, rel)

		if _, err := os.Stat(dest); err == nil {
			n, err := c.mergeInto(dest, snapshot)
			if err != nil {
				c.logger.Warn().Err(err).Str("file", dest).Msg("Failed to merge configuration file")
				failed++
				continue
			}
			merged++
			preserved += n
			continue
		}

		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err == nil {
			err = os.WriteFile(dest, snapshot, 0o644)
		}
		if err != nil {
			c.logger.Warn().Err(err).Str("file", dest).Msg("Failed to restore configuration file")
			failed++
			continue
		}
		restored++
	}

	msg := fmt.Sprintf("Merged %d file(s) preserving %d value(s), restored %d file(s)", merged, preserved, restored)
	if failed > 0 {
		msg = fmt.Sprintf("%s, %d failed", msg, failed)
	}
	result.Steps = append(result.Steps, StepResult{
		Phase:   StateReconciling,
		Success: failed == 0,
		Message: msg,
	})
}

// mergeInto overwrites values in the freshly extracted file at dest with
// the old snapshot's values, for every key present in both whose value
// differs. Returns the count of values preserved.
func (c *Coordinator) mergeInto(dest string, snapshot []byte) (int, error) {
	newData, err := os.ReadFile(dest)
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrMergeFailed, "failed to read extracted file")
	}

	oldValues := inifile.ExtractValues(snapshot)
	newValues := inifile.ExtractValues(newData)

	updates := make(map[string]string)
	for key, oldVal := range oldValues {
		if newVal, ok := newValues[key]; ok && newVal != oldVal {
			updates[key] = oldVal
		}
	}
	if len(updates) == 0 {
		return 0, nil
	}
	return inifile.WriteValues(dest, updates)
}

func isConfigFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".ini")
}
