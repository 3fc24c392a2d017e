package sync

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/switchbox-dev/switchbox/internal/utils"
	"github.com/switchbox-dev/switchbox/internal/webdav"
)

type Direction uint8

const (
	Up Direction = iota
	Down
)

var directionNames = []string{"up", "down"}

func (d Direction) String() string {
	return directionNames[d]
}

// ReconcileOptions tune one reconciler for a specific subtree.
type ReconcileOptions struct {
	// Validate checks downloaded content before it is written. Nil accepts
	// everything.
	Validate Validator
	// Match filters file names on both directions. Nil matches all files.
	Match func(name string) bool
	// Flat skips subtrees entirely (the accounts collection is flat).
	Flat bool
}

// Reconciler mirrors one local directory against one remote collection,
// recursively, in a single direction per run. It never deletes: absence on
// one side is filled from the other, extra items are left alone. Existing
// destination items are unconditionally overwritten - last sync wins.
//
// Traversal and transfers are sequential. WebDAV servers are frequently
// single-connection-constrained, and sequential execution keeps the outcome
// ordering deterministic. Callers must not run two reconciliations over the
// same local directory concurrently.
type Reconciler struct {
	dav    *webdav.Client
	ignore *IgnoreList
	opts   ReconcileOptions
}

func NewReconciler(dav *webdav.Client, opts ReconcileOptions) *Reconciler {
	return &Reconciler{
		dav:    dav,
		ignore: NewIgnoreList(),
		opts:   opts,
	}
}

// Run mirrors localDir against ep in the given direction and reports the
// per-item outcome. The returned error is non-nil only when the destination
// root itself cannot be set up; every other failure degrades to an entry in
// Outcome.Errors while the traversal continues.
func (r *Reconciler) Run(ctx context.Context, d Direction, localDir string, ep webdav.Endpoint) (*Outcome, error) {
	o := &Outcome{}

	switch d {
	case Up:
		if !utils.DirExists(localDir) {
			return o, nil
		}
		if err := r.dav.MkCol(ctx, ep); err != nil {
			// Tolerated: if the collection is genuinely unreachable the
			// per-item PUTs will record it.
			slog.Warn("ensure remote collection", "path", ep.RemotePath, "error", err)
		}
	case Down:
		if err := utils.EnsureDir(localDir); err != nil {
			return nil, fmt.Errorf("create local dir %q: %w", localDir, err)
		}
	}

	r.syncDir(ctx, d, localDir, ep, o)
	return o, nil
}

type treeEntry struct {
	name  string
	isDir bool
}

func (r *Reconciler) syncDir(ctx context.Context, d Direction, localDir string, ep webdav.Endpoint, o *Outcome) {
	entries, err := r.sourceEntries(ctx, d, localDir, ep)
	if err != nil {
		// A collection that was never uploaded is an empty listing, not a
		// failure.
		if d == Down && webdav.IsNotFound(err) {
			return
		}
		o.fail(webdav.NormalizePath(ep.RemotePath), err)
		return
	}

	for _, e := range entries {
		if e.isDir {
			if r.opts.Flat {
				continue
			}
			childLocal := filepath.Join(localDir, e.name)
			childRemote := ep.Child(e.name)
			if err := r.ensureDest(ctx, d, childLocal, childRemote); err != nil {
				o.fail(childRemote.RemotePath, err)
				continue
			}
			r.syncDir(ctx, d, childLocal, childRemote, o)
			continue
		}
		r.transferFile(ctx, d, localDir, ep, e.name, o)
	}
}

// sourceEntries snapshots the side the direction reads from: the local
// directory going up, the remote listing going down.
func (r *Reconciler) sourceEntries(ctx context.Context, d Direction, localDir string, ep webdav.Endpoint) ([]treeEntry, error) {
	if d == Up {
		dirents, err := os.ReadDir(localDir)
		if err != nil {
			return nil, err
		}
		entries := make([]treeEntry, 0, len(dirents))
		for _, de := range dirents {
			name := de.Name()
			if r.ignore.ShouldIgnore(name) {
				continue
			}
			if !de.IsDir() && !r.matches(name) {
				continue
			}
			entries = append(entries, treeEntry{name: name, isDir: de.IsDir()})
		}
		return entries, nil
	}

	remote, err := r.dav.List(ctx, ep)
	if err != nil {
		return nil, err
	}
	entries := make([]treeEntry, 0, len(remote))
	for _, re := range remote {
		if !re.IsCollection && !r.matches(re.Name) {
			continue
		}
		entries = append(entries, treeEntry{name: re.Name, isDir: re.IsCollection})
	}
	return entries, nil
}

func (r *Reconciler) matches(name string) bool {
	return r.opts.Match == nil || r.opts.Match(name)
}

func (r *Reconciler) ensureDest(ctx context.Context, d Direction, localDir string, ep webdav.Endpoint) error {
	if d == Up {
		if err := r.dav.MkCol(ctx, ep); err != nil {
			slog.Warn("ensure remote collection", "path", ep.RemotePath, "error", err)
		}
		return nil
	}
	return utils.EnsureDir(localDir)
}

func (r *Reconciler) transferFile(ctx context.Context, d Direction, localDir string, ep webdav.Endpoint, name string, o *Outcome) {
	item := webdav.NormalizePath(ep.RemotePath) + name
	localPath := filepath.Join(localDir, name)

	switch d {
	case Up:
		data, err := os.ReadFile(localPath)
		if err != nil {
			o.fail(item, err)
			return
		}
		if err := r.dav.Put(ctx, ep, name, data, utils.ContentTypeFor(name)); err != nil {
			o.fail(item, err)
			return
		}
		o.Uploaded = append(o.Uploaded, item)

	case Down:
		data, err := r.dav.Get(ctx, ep, name)
		if err != nil {
			o.fail(item, err)
			return
		}
		if r.opts.Validate != nil {
			if err := r.opts.Validate(name, data); err != nil {
				o.fail(item, err)
				return
			}
		}
		if err := os.WriteFile(localPath, data, 0o644); err != nil {
			o.fail(item, err)
			return
		}
		o.Downloaded = append(o.Downloaded, item)
	}
}
