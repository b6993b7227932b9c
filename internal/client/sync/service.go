package sync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/novelsync/internal/client/gist"
	"github.com/iudanet/novelsync/internal/models"
)

//go:generate moq -out service_mock.go . Service

// Service определяет интерфейс синхронизации библиотеки с удаленным хранилищем
type Service interface {
	// Sync выполняет полный цикл: download, поиск конфликтов, merge, upload
	Sync(ctx context.Context) (*SyncResult, error)
	// Pull скачивает удаленное состояние и применяет его локально без upload
	Pull(ctx context.Context) (*SyncResult, error)
	// Upload записывает локальное состояние в удаленное хранилище
	Upload(ctx context.Context) (*SyncResult, error)
	// Download скачивает и декодирует удаленное состояние
	Download(ctx context.Context) (*RemoteSnapshot, error)
	// DetectConflicts сравнивает локальный снимок с удаленным
	DetectConflicts(ctx context.Context, remote *RemoteSnapshot) ([]models.Conflict, error)
	// ApplyDownloadedData применяет удаленный снимок с учетом резолюций
	ApplyDownloadedData(ctx context.Context, remote *RemoteSnapshot, resolutions []models.Resolution) (*SyncResult, error)
	State() State
	IsSyncing() bool
}

// State is the step the orchestrator is at.
type State int32

const (
	StateIdle State = iota
	StateDownloading
	StateConflictCheck
	StateAwaitingResolution
	StateApplying
	StateUploading
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDownloading:
		return "downloading"
	case StateConflictCheck:
		return "conflict-check"
	case StateAwaitingResolution:
		return "awaiting-resolution"
	case StateApplying:
		return "applying"
	case StateUploading:
		return "uploading"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Options configure the orchestrator.
type Options struct {
	// Progress receives (done, total) after each written batch.
	Progress gist.Progress
	// Now is the clock used for lastSyncTime; time.Now if nil.
	Now  func() time.Time
	Plan PlanOptions
}

// SyncResult contains sync operation results
type SyncResult struct {
	FinishedAt time.Time
	SessionID  string
	RemoteID   string
	Message    string
	Conflicts  []models.Conflict
	Failures   []*EntityError // сущности, пропущенные из-за ошибок чтения
	Merge      MergeStats
	Uploaded   int // записанные файлы
	Deleted    int // удаленные файлы-сироты
	Unchanged  int // файлы, совпавшие с удаленными
	Batches    int
	Recreated  bool // удаленное хранилище создано заново, RemoteID изменился
	Success    bool
}

// Partial reports whether some entities were skipped.
func (r *SyncResult) Partial() bool {
	return len(r.Failures) > 0
}

type service struct {
	remote   RemoteClient
	local    LocalStore
	loader   ContentLoader
	configs  ConfigStore
	resolver Resolver
	logger   *slog.Logger
	now      func() time.Time
	progress gist.Progress
	plan     PlanOptions
	state    atomic.Int32
	syncing  atomic.Bool
}

// NewService creates a new sync service.
// resolver may be nil: conflicts then fail the sync with ErrUnresolvedConflicts.
func NewService(remote RemoteClient, local LocalStore, loader ContentLoader, configs ConfigStore, resolver Resolver, logger *slog.Logger, opts Options) Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		remote:   remote,
		local:    local,
		loader:   loader,
		configs:  configs,
		resolver: resolver,
		logger:   logger,
		now:      now,
		progress: opts.Progress,
		plan:     opts.Plan,
	}
}

func (s *service) State() State {
	return State(s.state.Load())
}

func (s *service) IsSyncing() bool {
	return s.syncing.Load()
}

func (s *service) setState(st State) {
	prev := State(s.state.Swap(int32(st)))
	if prev != st {
		s.logger.Debug("sync state changed", "from", prev, "to", st)
	}
}

// session is one guarded run of a public operation.
type session struct {
	res    *SyncResult
	logger *slog.Logger
}

// begin acquires the single in-flight guard. The returned release must be
// deferred; it clears the guard and resets the state on every path.
func (s *service) begin(op string) (*session, func(), error) {
	id := uuid.NewString()
	sess := &session{
		res:    &SyncResult{SessionID: id},
		logger: s.logger.With("op", op, "session", id),
	}
	if !s.syncing.CompareAndSwap(false, true) {
		return sess, func() {}, ErrSyncInProgress
	}
	return sess, func() {
		s.setState(StateIdle)
		s.syncing.Store(false)
	}, nil
}

// finish fills the outcome fields of the result.
func (s *service) finish(sess *session, err error) (*SyncResult, error) {
	res := sess.res
	res.FinishedAt = s.now()
	if err != nil {
		res.Success = false
		res.Message = fmt.Sprintf("sync failed: %v", err)
		if !errors.Is(err, ErrSyncInProgress) {
			sess.logger.Error("sync failed", "error", err)
		}
		return res, err
	}
	res.Success = true
	res.Message = summary(res)
	sess.logger.Info("sync finished",
		"remote_id", res.RemoteID,
		"uploaded", res.Uploaded,
		"deleted", res.Deleted,
		"unchanged", res.Unchanged,
		"conflicts", len(res.Conflicts),
		"failures", len(res.Failures))
	return res, nil
}

func summary(res *SyncResult) string {
	parts := []string{"sync completed"}
	if n := res.Merge.Added + res.Merge.Updated; n > 0 {
		parts = append(parts, fmt.Sprintf("%d entities updated from remote", n))
	}
	if res.Uploaded+res.Deleted > 0 {
		parts = append(parts, fmt.Sprintf("%d files written, %d removed", res.Uploaded, res.Deleted))
	}
	if len(res.Conflicts) > 0 {
		parts = append(parts, fmt.Sprintf("%d conflicts resolved", len(res.Conflicts)))
	}
	if res.Recreated {
		parts = append(parts, "remote was recreated with id "+res.RemoteID)
	}
	if len(res.Failures) > 0 {
		parts = append(parts, fmt.Sprintf("%d entities skipped", len(res.Failures)))
	}
	return strings.Join(parts, "; ")
}

// Sync performs full synchronization with the remote.
// Without a remote id the local library is uploaded into a new remote.
func (s *service) Sync(ctx context.Context) (*SyncResult, error) {
	sess, release, err := s.begin("sync")
	defer release()
	if err != nil {
		return s.finish(sess, err)
	}
	return s.finish(sess, s.run(ctx, sess, true))
}

// Pull applies the remote state locally. lastSyncTime is not touched,
// since local changes were not uploaded.
func (s *service) Pull(ctx context.Context) (*SyncResult, error) {
	sess, release, err := s.begin("pull")
	defer release()
	if err != nil {
		return s.finish(sess, err)
	}
	return s.finish(sess, s.run(ctx, sess, false))
}

// Upload writes the local state over the remote one without merging.
func (s *service) Upload(ctx context.Context) (*SyncResult, error) {
	sess, release, err := s.begin("upload")
	defer release()
	if err != nil {
		return s.finish(sess, err)
	}
	err = func() error {
		cfg, err := s.configs.GetSyncConfig(ctx)
		if err != nil {
			return fmt.Errorf("failed to load sync config: %w", err)
		}
		var remote *RemoteSnapshot
		if cfg.RemoteID != "" {
			g, err := s.remote.Get(ctx, cfg.RemoteID)
			switch {
			case errors.Is(err, gist.ErrNotFoundOrForbidden):
				sess.logger.Warn("remote not reachable, it will be recreated", "error", err)
			case err != nil:
				return fmt.Errorf("failed to list remote files: %w", err)
			default:
				remote = newRemoteSnapshot(g.Files)
			}
		}
		return s.upload(ctx, sess, cfg, remote)
	}()
	return s.finish(sess, err)
}

// Download fetches and decodes the remote state.
// It fails fast with ErrNoRemoteID when no remote was ever created.
func (s *service) Download(ctx context.Context) (*RemoteSnapshot, error) {
	cfg, err := s.configs.GetSyncConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load sync config: %w", err)
	}
	if cfg.RemoteID == "" {
		return nil, ErrNoRemoteID
	}
	return s.download(ctx, cfg.RemoteID)
}

func (s *service) download(ctx context.Context, id string) (*RemoteSnapshot, error) {
	g, err := s.remote.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to download remote: %w", err)
	}
	contents, failures := s.remote.ResolveAll(ctx, g)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	remote := DecodeRemote(g.Files, contents, failures, s.logger)
	s.logger.Info("remote downloaded",
		"files", len(g.Files),
		"novels", len(remote.Novels),
		"failures", len(remote.Failures))
	return remote, nil
}

// DetectConflicts compares the current local snapshot with remote.
func (s *service) DetectConflicts(ctx context.Context, remote *RemoteSnapshot) ([]models.Conflict, error) {
	if remote == nil {
		return nil, nil
	}
	cfg, err := s.configs.GetSyncConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load sync config: %w", err)
	}
	local, err := s.local.Snapshot(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to read local snapshot: %w", err)
	}
	return DetectConflicts(local, &remote.Snapshot, cfg.LastSyncTime), nil
}

// ApplyDownloadedData merges remote into the local store.
// With no resolutions every conflict takes the remote copy; otherwise every
// conflict needs a valid resolution.
func (s *service) ApplyDownloadedData(ctx context.Context, remote *RemoteSnapshot, resolutions []models.Resolution) (*SyncResult, error) {
	sess, release, err := s.begin("apply")
	defer release()
	if err != nil {
		return s.finish(sess, err)
	}
	err = func() error {
		if remote == nil {
			return errors.New("remote snapshot is required")
		}
		cfg, err := s.configs.GetSyncConfig(ctx)
		if err != nil {
			return fmt.Errorf("failed to load sync config: %w", err)
		}
		s.setState(StateConflictCheck)
		local, err := s.local.Snapshot(ctx, true)
		if err != nil {
			return fmt.Errorf("failed to read local snapshot: %w", err)
		}
		sess.res.Failures = remote.Failures
		sess.res.Conflicts = DetectConflicts(local, &remote.Snapshot, cfg.LastSyncTime)
		if len(resolutions) > 0 {
			if err := ValidateResolutions(sess.res.Conflicts, resolutions); err != nil {
				return err
			}
		}
		return s.apply(ctx, sess, local, remote, resolutions, cfg.LastSyncTime)
	}()
	return s.finish(sess, err)
}

// run is the body of Sync (upload=true) and Pull.
func (s *service) run(ctx context.Context, sess *session, upload bool) error {
	cfg, err := s.configs.GetSyncConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to load sync config: %w", err)
	}
	if cfg.RemoteID == "" {
		if !upload {
			return ErrNoRemoteID
		}
		sess.logger.Info("no remote yet, uploading local library")
		return s.upload(ctx, sess, cfg, nil)
	}

	s.setState(StateDownloading)
	remote, err := s.download(ctx, cfg.RemoteID)
	if err != nil {
		if upload && errors.Is(err, gist.ErrNotFoundOrForbidden) {
			// Удаленное хранилище пропало: merge не с чем, upload создаст новое со всеми файлами
			sess.logger.Warn("remote not reachable, local library will be uploaded", "error", err)
			return s.upload(ctx, sess, cfg, nil)
		}
		return err
	}
	sess.res.Failures = remote.Failures

	s.setState(StateConflictCheck)
	local, err := s.local.Snapshot(ctx, true)
	if err != nil {
		return fmt.Errorf("failed to read local snapshot: %w", err)
	}
	conflicts := DetectConflicts(local, &remote.Snapshot, cfg.LastSyncTime)
	sess.res.Conflicts = conflicts

	resolutions, err := s.resolve(ctx, sess, conflicts)
	if err != nil {
		return err
	}
	if err := s.apply(ctx, sess, local, remote, resolutions, cfg.LastSyncTime); err != nil {
		return err
	}
	if !upload {
		return nil
	}
	return s.upload(ctx, sess, cfg, remote)
}

func (s *service) resolve(ctx context.Context, sess *session, conflicts []models.Conflict) ([]models.Resolution, error) {
	if len(conflicts) == 0 {
		return nil, nil
	}
	if s.resolver == nil {
		return nil, fmt.Errorf("%w: %d conflicts and no resolver", ErrUnresolvedConflicts, len(conflicts))
	}
	s.setState(StateAwaitingResolution)
	sess.logger.Info("conflicts detected", "count", len(conflicts))
	resolutions, err := s.resolver.Resolve(ctx, conflicts)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve conflicts: %w", err)
	}
	if err := ValidateResolutions(conflicts, resolutions); err != nil {
		return nil, err
	}
	return resolutions, nil
}

func (s *service) apply(ctx context.Context, sess *session, local *models.Snapshot, remote *RemoteSnapshot, resolutions []models.Resolution, lastSync time.Time) error {
	s.setState(StateApplying)
	merged, stats, err := Merge(ctx, local, remote, resolutions, lastSync, s.loader)
	if err != nil {
		return fmt.Errorf("failed to merge: %w", err)
	}
	if err := s.local.ReplaceAll(ctx, merged); err != nil {
		return fmt.Errorf("failed to replace local data: %w", err)
	}
	sess.res.Merge = stats
	sess.logger.Info("remote applied",
		"added", stats.Added,
		"updated", stats.Updated,
		"kept_local", stats.KeptLocal,
		"dropped", stats.Dropped,
		"preserved", stats.Preserved,
		"content_recovered", stats.ContentRecovered)
	return nil
}

// upload writes the local snapshot, verifies it and updates the bookkeeping.
// remote is nil when there is nothing to diff against.
func (s *service) upload(ctx context.Context, sess *session, cfg *models.SyncConfig, remote *RemoteSnapshot) error {
	s.setState(StateUploading)
	snap, err := s.local.Snapshot(ctx, true)
	if err != nil {
		return fmt.Errorf("failed to read local snapshot: %w", err)
	}

	opts := s.plan
	files := remote.files()
	if remote != nil && len(remote.Unreadable) > 0 {
		// нечитаемые удаленные сущности не перезаписываем и не удаляем
		opts.Preserve = make(map[string]bool, len(remote.Unreadable)+1)
		for id := range remote.Unreadable {
			opts.Preserve[id] = true
		}
	}
	if remote != nil && remote.SettingsUnreadable {
		if opts.Preserve == nil {
			opts.Preserve = make(map[string]bool, 1)
		}
		opts.Preserve[models.ConflictID(models.EntitySettings, models.SettingsID)] = true
	}

	plan, err := BuildUploadPlan(snap, files, opts)
	if err != nil {
		return fmt.Errorf("failed to build upload plan: %w", err)
	}
	sess.res.Unchanged = plan.Unchanged

	id := cfg.RemoteID
	if !plan.Empty() {
		wr, err := s.remote.Write(ctx, id, plan.Changes, s.progress)
		if errors.Is(err, gist.ErrRecreateRequired) {
			sess.logger.Warn("remote is gone, writing the full library into a new one", "old_id", id, "error", err)
			// план был diff против старого хранилища, новое получает все файлы
			plan, err = BuildUploadPlan(snap, nil, s.plan)
			if err != nil {
				return fmt.Errorf("failed to build upload plan: %w", err)
			}
			sess.res.Unchanged = 0
			wr, err = s.remote.Write(ctx, "", plan.Changes, s.progress)
		}
		if wr != nil && wr.ID != "" && wr.ID != id {
			// новый id сохраняем сразу, иначе при ошибке записи или проверки он потеряется
			if err := s.rebind(ctx, sess, cfg, wr.ID); err != nil {
				return err
			}
			id = wr.ID
		}
		sess.res.RemoteID = id
		if err != nil {
			return fmt.Errorf("failed to write remote: %w", err)
		}
		sess.res.Uploaded = plan.Upserts
		sess.res.Deleted = plan.Deletes
		sess.res.Batches = wr.Batches
	} else {
		sess.logger.Info("remote is up to date", "unchanged", plan.Unchanged)
	}
	sess.res.RemoteID = id

	if err := s.remote.Verify(ctx, id, plan.Expectation); err != nil {
		return err
	}

	if sess.res.Partial() {
		sess.logger.Warn("some remote entities were skipped, last sync time is kept",
			"failures", len(sess.res.Failures))
		return nil
	}
	cfg.LastSyncTime = s.now()
	cfg.LastSyncedEntityIDs = snap.EntityIDs()
	if err := s.configs.SaveSyncConfig(ctx, cfg); err != nil {
		return fmt.Errorf("failed to save sync config: %w", err)
	}
	return nil
}

// rebind saves a newly created remote id. The new remote shares no history
// with the local library, so the last sync time is reset: until a sync
// completes against it, nothing local is treated as deleted remotely.
func (s *service) rebind(ctx context.Context, sess *session, cfg *models.SyncConfig, id string) error {
	if cfg.RemoteID != "" {
		sess.logger.Warn("remote was recreated", "old_id", cfg.RemoteID, "new_id", id)
		sess.res.Recreated = true
	}
	cfg.RemoteID = id
	cfg.LastSyncTime = time.Time{}
	cfg.LastSyncedEntityIDs = nil
	if err := s.configs.SaveSyncConfig(ctx, cfg); err != nil {
		return fmt.Errorf("failed to save remote id: %w", err)
	}
	return nil
}
