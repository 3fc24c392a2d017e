package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"github.com/switchbox-dev/switchbox/internal/utils"
	"github.com/switchbox-dev/switchbox/internal/webdav"
)

const (
	accountsCollection = "accounts"
	promptsCollection  = "prompts"
	skillsCollection   = "skills"

	agentsFileName = "AGENTS.MD"
	configFileName = "config.toml"

	lockFileName = ".switchbox.lock"
)

// ErrSyncInProgress means another sync run holds the lock for the same local
// target. At most one run per target may be active at a time.
var ErrSyncInProgress = errors.New("sync: another sync run is active for this target")

// Options select which asset subtrees participate in an assets sync run.
type Options struct {
	Prompts    bool `json:"sync_prompts"`
	Skills     bool `json:"sync_skills"`
	AgentsFile bool `json:"sync_agents_md"`
	ConfigTOML bool `json:"sync_config_toml"`
}

func DefaultOptions() Options {
	return Options{Prompts: true, Skills: true, AgentsFile: true, ConfigTOML: false}
}

// AssetPaths are the local roots of the synced asset subtrees.
type AssetPaths struct {
	Root       string // tool home, holds the standalone files
	PromptsDir string
	SkillsDir  string
	AgentsFile string
	ConfigFile string
}

// Syncer composes reconciler runs for the concrete subtrees switchbox backs
// up: the flat accounts collection, the nested prompts collection, per-skill
// subtrees, and two standalone root files. It pre-creates the remote root and
// first-level subcollections so an empty share bootstraps on first use.
type Syncer struct {
	dav *webdav.Client
}

func New(dav *webdav.Client) *Syncer {
	return &Syncer{dav: dav}
}

// UploadAccounts mirrors the local accounts directory into <root>/accounts/.
// Only .json profiles participate; the collection is flat.
func (s *Syncer) UploadAccounts(ctx context.Context, ep webdav.Endpoint, accountsDir string) (*Outcome, error) {
	unlock, err := lockTarget(accountsDir)
	if err != nil {
		return nil, err
	}
	defer unlock()

	s.ensureRoot(ctx, ep)

	rec := NewReconciler(s.dav, ReconcileOptions{Match: isJSONName, Flat: true})
	return rec.Run(ctx, Up, accountsDir, ep.Child(accountsCollection))
}

// DownloadAccounts mirrors <root>/accounts/ into the local accounts
// directory. Content must parse as JSON before it replaces a local profile.
func (s *Syncer) DownloadAccounts(ctx context.Context, ep webdav.Endpoint, accountsDir string) (*Outcome, error) {
	unlock, err := lockTarget(accountsDir)
	if err != nil {
		return nil, err
	}
	defer unlock()

	rec := NewReconciler(s.dav, ReconcileOptions{Validate: ValidateJSON, Match: isJSONName, Flat: true})
	return rec.Run(ctx, Down, accountsDir, ep.Child(accountsCollection))
}

// UploadAssets mirrors the selected asset subtrees to the remote root.
func (s *Syncer) UploadAssets(ctx context.Context, ep webdav.Endpoint, paths AssetPaths, opts Options) (*Outcome, error) {
	unlock, err := lockTarget(paths.Root)
	if err != nil {
		return nil, err
	}
	defer unlock()

	o := &Outcome{}
	s.ensureRoot(ctx, ep)

	if opts.AgentsFile && utils.FileExists(paths.AgentsFile) {
		s.uploadFile(ctx, ep, paths.AgentsFile, agentsFileName, o)
	}
	if opts.ConfigTOML && utils.FileExists(paths.ConfigFile) {
		s.uploadFile(ctx, ep, paths.ConfigFile, configFileName, o)
	}

	if opts.Prompts && utils.DirExists(paths.PromptsDir) {
		rec := NewReconciler(s.dav, ReconcileOptions{})
		sub, err := rec.Run(ctx, Up, paths.PromptsDir, ep.Child(promptsCollection))
		if err != nil {
			o.fail(promptsCollection, err)
		} else {
			o.merge(sub)
		}
	}

	if opts.Skills && utils.DirExists(paths.SkillsDir) {
		s.uploadSkills(ctx, ep.Child(skillsCollection), paths.SkillsDir, o)
	}

	return o, nil
}

// uploadSkills uploads each immediate child directory of skillsDir as its own
// recursive subtree. Hidden dirs and the dist build output are skipped.
func (s *Syncer) uploadSkills(ctx context.Context, ep webdav.Endpoint, skillsDir string, o *Outcome) {
	if err := s.dav.MkCol(ctx, ep); err != nil {
		slog.Warn("ensure remote collection", "path", ep.RemotePath, "error", err)
	}

	dirents, err := os.ReadDir(skillsDir)
	if err != nil {
		o.fail(skillsCollection, err)
		return
	}

	rec := NewReconciler(s.dav, ReconcileOptions{})
	for _, de := range dirents {
		name := de.Name()
		if !de.IsDir() || strings.HasPrefix(name, ".") || name == "dist" {
			continue
		}
		sub, err := rec.Run(ctx, Up, filepath.Join(skillsDir, name), ep.Child(name))
		if err != nil {
			o.fail(name, err)
			continue
		}
		o.merge(sub)
	}
}

// DownloadAssets mirrors the selected remote asset subtrees into the local
// paths.
func (s *Syncer) DownloadAssets(ctx context.Context, ep webdav.Endpoint, paths AssetPaths, opts Options) (*Outcome, error) {
	unlock, err := lockTarget(paths.Root)
	if err != nil {
		return nil, err
	}
	defer unlock()

	o := &Outcome{}

	if opts.AgentsFile {
		s.downloadFile(ctx, ep, agentsFileName, paths.AgentsFile, o)
	}
	if opts.ConfigTOML {
		s.downloadFile(ctx, ep, configFileName, paths.ConfigFile, o)
	}

	if opts.Prompts {
		rec := NewReconciler(s.dav, ReconcileOptions{Validate: ValidateText})
		sub, err := rec.Run(ctx, Down, paths.PromptsDir, ep.Child(promptsCollection))
		if err != nil {
			o.fail(promptsCollection, err)
		} else {
			o.merge(sub)
		}
	}

	if opts.Skills {
		rec := NewReconciler(s.dav, ReconcileOptions{Validate: ValidateText})
		sub, err := rec.Run(ctx, Down, paths.SkillsDir, ep.Child(skillsCollection))
		if err != nil {
			o.fail(skillsCollection, err)
		} else {
			o.merge(sub)
		}
	}

	return o, nil
}

// TestConnection probes the remote root with a zero-depth PROPFIND. A 404
// means the share works but the root collection does not exist yet, so it is
// created proactively - a brand-new share must not read as broken.
func (s *Syncer) TestConnection(ctx context.Context, ep webdav.Endpoint) (string, error) {
	status, err := s.dav.Probe(ctx, ep)
	if err != nil {
		return "", err
	}

	switch {
	case status == http.StatusMultiStatus, status >= 200 && status <= 299:
		return "connection successful", nil
	case status == http.StatusNotFound:
		if err := s.dav.MkCol(ctx, ep); err != nil {
			return "", err
		}
		return "connection successful, remote directory created", nil
	case status == http.StatusUnauthorized:
		return "", fmt.Errorf("%w: check username and application password", webdav.ErrUnauthorized)
	default:
		return "", &webdav.StatusError{Op: "PROPFIND", URL: ep.CollectionURL(), Status: status}
	}
}

func (s *Syncer) ensureRoot(ctx context.Context, ep webdav.Endpoint) {
	if err := s.dav.MkCol(ctx, ep); err != nil {
		slog.Warn("ensure remote root", "path", ep.RemotePath, "error", err)
	}
}

func (s *Syncer) uploadFile(ctx context.Context, ep webdav.Endpoint, localPath, name string, o *Outcome) {
	item := webdav.NormalizePath(ep.RemotePath) + name

	data, err := os.ReadFile(localPath)
	if err != nil {
		o.fail(item, err)
		return
	}
	if err := s.dav.Put(ctx, ep, name, data, utils.ContentTypeFor(name)); err != nil {
		o.fail(item, err)
		return
	}
	o.Uploaded = append(o.Uploaded, item)
}

func (s *Syncer) downloadFile(ctx context.Context, ep webdav.Endpoint, name, localPath string, o *Outcome) {
	item := webdav.NormalizePath(ep.RemotePath) + name

	data, err := s.dav.Get(ctx, ep, name)
	if err != nil {
		// Never uploaded is not a failure.
		if webdav.IsNotFound(err) {
			return
		}
		o.fail(item, err)
		return
	}
	if err := ValidateText(name, data); err != nil {
		o.fail(item, err)
		return
	}
	if err := utils.EnsureParent(localPath); err != nil {
		o.fail(item, err)
		return
	}
	if err := os.WriteFile(localPath, data, 0o644); err != nil {
		o.fail(item, err)
		return
	}
	o.Downloaded = append(o.Downloaded, item)
}

// lockTarget takes the per-target file lock guarding concurrent sync runs.
func lockTarget(dir string) (func(), error) {
	if err := utils.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("create local dir %q: %w", dir, err)
	}

	fl := flock.New(filepath.Join(dir, lockFileName))
	locked, err := fl.TryLock()
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, ErrSyncInProgress
	}
	return func() { _ = fl.Unlock() }, nil
}

func isJSONName(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".json")
}
