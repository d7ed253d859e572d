package download

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ytget/yget/internal/model"
	"github.com/ytget/yget/internal/platform"
)

// TaskIDPrefix prefixes every task id
const TaskIDPrefix = "task-"

// Dependencies are the collaborators of a Service. Playlists, Auth and
// Tagger are optional.
type Dependencies struct {
	Runner    Runner
	Playlists PlaylistResolver
	Auth      Authenticator
	Tagger    Tagger
	Out       Printer
	Log       logrus.FieldLogger
}

// Service handles download operations
type Service struct {
	opts Options
	deps Dependencies

	tasks      map[string]*model.DownloadTask
	order      []string
	tasksMutex sync.RWMutex
	onUpdate   func(*model.DownloadTask)

	// progressStarted is set once the "Downloading" header of the current
	// file was printed
	progressStarted bool

	// credentials entered by the user, reused for later URLs
	credentials Credentials
}

// NewService creates a new download service
func NewService(opts Options, deps Dependencies) *Service {
	return &Service{
		opts:  opts.withDefaults(),
		deps:  deps,
		tasks: make(map[string]*model.DownloadTask),
	}
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(*model.DownloadTask)) {
	s.onUpdate = callback
}

// GetTask returns a task by ID
func (s *Service) GetTask(id string) (*model.DownloadTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[id]
	return task, exists
}

// GetAllTasks returns all tasks in creation order
func (s *Service) GetAllTasks() []*model.DownloadTask {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()

	tasks := make([]*model.DownloadTask, 0, len(s.order))
	for _, id := range s.order {
		tasks = append(tasks, s.tasks[id])
	}
	return tasks
}

// authAttempt tracks the single credential prompt allowed per URL
type authAttempt struct {
	allowed   bool
	requested bool
}

// DownloadVideos downloads every URL in order and prints a summary. A
// cancelled context stops the run; videos not attempted are not counted.
func (s *Service) DownloadVideos(ctx context.Context, urls []string) Summary {
	var summary Summary

	for _, url := range urls {
		if ctx.Err() != nil {
			break
		}
		s.downloadURL(ctx, url, &summary)
	}

	if summary.Downloaded > 0 {
		s.deps.Out.Printf("\n")
	}
	s.deps.Out.WriteEmptyLine()
	s.deps.Out.WriteLine(summary.String())

	s.deps.Log.WithFields(logrus.Fields{
		"downloaded": summary.Downloaded,
		"skipped":    summary.Skipped,
		"failed":     summary.Failed,
	}).Info("Download run finished")

	return summary
}

// downloadURL downloads the video or every video of the playlist url names
func (s *Service) downloadURL(ctx context.Context, url string, summary *Summary) {
	entries, album, err := s.resolve(ctx, url)
	if err != nil {
		s.reportError(url, "", err)
		summary.Failed++
		return
	}

	attempt := &authAttempt{allowed: !s.opts.UseNetrc && s.deps.Auth != nil}
	for _, entry := range entries {
		if ctx.Err() != nil {
			return
		}

		switch s.downloadEntry(ctx, url, entry, album, attempt) {
		case model.TaskStatusCompleted:
			summary.Downloaded++
		case model.TaskStatusSkipped:
			summary.Skipped++
		default:
			summary.Failed++
		}
	}
}

// resolve returns the videos behind url and the album they belong to.
// Playlists are named after their title; single videos get the default
// album.
func (s *Service) resolve(ctx context.Context, url string) ([]*model.PlaylistEntry, string, error) {
	if s.deps.Playlists == nil || !s.deps.Playlists.IsPlaylist(url) {
		return []*model.PlaylistEntry{{URL: url}}, s.opts.DefaultAlbum, nil
	}

	playlist, err := s.deps.Playlists.ParsePlaylist(ctx, url)
	if err != nil {
		return nil, "", err
	}
	if playlist.IsEmpty() {
		return nil, "", fmt.Errorf("playlist %s has no videos", playlist.ID)
	}
	return playlist.Entries, playlist.Title, nil
}

// downloadEntry downloads one video, prompting for credentials at most once
// per URL, and returns the final task status
func (s *Service) downloadEntry(ctx context.Context, url string, entry *model.PlaylistEntry, album string, attempt *authAttempt) model.TaskStatus {
	task := s.addTask(url, entry, album)

	for {
		status, err := s.attemptDownload(ctx, task)
		if err == nil {
			s.finishTask(task, status, nil)
			return status
		}

		s.reportError(url, entry.ID, err)

		if isAuthenticationError(err) && attempt.allowed && !attempt.requested {
			attempt.requested = true

			creds, ok, authErr := s.deps.Auth.RequestCredentials()
			if authErr == nil && ok {
				s.credentials = creds
				continue
			}
			if authErr != nil {
				err = authErr
			}
		}

		s.finishTask(task, model.TaskStatusError, err)
		return model.TaskStatusError
	}
}

// attemptDownload skips videos already on disk, otherwise downloads and tags
func (s *Service) attemptDownload(ctx context.Context, task *model.DownloadTask) (model.TaskStatus, error) {
	req := newRequest(s.opts, s.credentials)

	filename, err := s.deps.Runner.Filename(ctx, task.VideoURL, req)
	if err != nil {
		return "", err
	}
	s.updateTask(task, func() { task.OutputPath = filename })

	if platform.HasCompletedDownload(filename) {
		return model.TaskStatusSkipped, nil
	}

	s.updateTask(task, func() { task.Status = model.TaskStatusDownloading })

	reported, err := s.deps.Runner.Download(ctx, task.VideoURL, req, func(p Progress) {
		s.updateTaskProgress(task, p)
	})
	if err != nil {
		return "", err
	}
	// the last report may not have been a finished one
	s.tasksMutex.Lock()
	s.progressStarted = false
	s.tasksMutex.Unlock()

	if reported == "" {
		reported = filename
	}
	s.tag(ctx, task, reported)

	return model.TaskStatusCompleted, nil
}

// tag writes the album into the downloaded file. Failures are logged only;
// the video itself is on disk.
func (s *Service) tag(ctx context.Context, task *model.DownloadTask, reported string) {
	entry := s.deps.Log.WithFields(logrus.Fields{"task_id": task.ID, "album": task.Album})

	path, err := platform.FindDownloadedFile(reported)
	if err != nil {
		entry.WithError(err).Warn("Downloaded file not found, album not set")
		return
	}
	s.updateTask(task, func() { task.OutputPath = path })

	if s.deps.Tagger == nil {
		return
	}
	if err := s.deps.Tagger.SetAlbum(ctx, path, task.Album); err != nil {
		entry.WithError(err).Warn("Failed to set album")
	}
}

// updateTaskProgress records progress and prints the progress line
func (s *Service) updateTaskProgress(task *model.DownloadTask, p Progress) {
	s.tasksMutex.Lock()
	if !task.Status.IsActive() {
		s.tasksMutex.Unlock()
		return
	}

	percent := p.Percent()
	if percent >= 0 {
		task.Progress = percent / 100.0
		task.Percent = int(percent)
	}
	if eta := p.ETA; eta > 0 {
		task.ETASec = int(eta.Seconds())
	}
	if p.Title != "" && task.Title == "" {
		task.Title = p.Title
	}

	if !s.progressStarted {
		name := p.Filename
		if name == "" {
			name = task.GetDisplayTitle()
		}
		s.deps.Out.WriteLine("Downloading " + name)
		s.progressStarted = true
	}
	if percent >= 0 {
		s.deps.Out.Printf("[%.2f%%]\r", percent)
	} else {
		s.deps.Out.Printf("[?%%]\r")
	}
	if p.Finished {
		s.progressStarted = false
	}

	s.deps.Log.WithFields(logrus.Fields{
		"task_id": task.ID,
		"percent": task.Percent,
		"eta":     task.GetETAString(),
	}).Trace("Progress")

	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
}

// addTask registers a pending task for one video
func (s *Service) addTask(url string, entry *model.PlaylistEntry, album string) *model.DownloadTask {
	task := model.NewDownloadTask(generateTaskID(), url, entry.URL, album)
	task.Title = entry.Title

	s.tasksMutex.Lock()
	s.tasks[task.ID] = task
	s.order = append(s.order, task.ID)
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
	return task
}

func (s *Service) updateTask(task *model.DownloadTask, update func()) {
	s.tasksMutex.Lock()
	update()
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
}

func (s *Service) finishTask(task *model.DownloadTask, status model.TaskStatus, err error) {
	s.updateTask(task, func() { task.Finish(status, err) })

	if !status.IsFinished() {
		return
	}

	entry := s.deps.Log.WithFields(logrus.Fields{
		"task_id":  task.ID,
		"url":      task.VideoURL,
		"status":   status,
		"duration": task.FinishedAt.Sub(task.StartedAt).Round(time.Millisecond),
	})
	if err != nil {
		entry.WithError(err).Debug("Task failed")
		return
	}
	entry.Debug("Task finished")
}

// reportError prints a per-video failure the way the user sees it
func (s *Service) reportError(url, videoID string, err error) {
	if videoID == "" {
		s.deps.Out.WriteLine(fmt.Sprintf("(%s) %v", url, err))
		return
	}
	s.deps.Out.WriteLine(fmt.Sprintf("(%s, %s) %v", url, videoID, err))
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(task *model.DownloadTask) {
	if s.onUpdate != nil {
		s.onUpdate(task)
	}
}

// summaryLine renders the counts shown at the end of a run
func summaryLine(s Summary) string {
	return fmt.Sprintf("Downloaded %d video(s), skipped %d video(s), failed %d video(s)", s.Downloaded, s.Skipped, s.Failed)
}

// generateTaskID generates a unique task ID
func generateTaskID() string {
	return TaskIDPrefix + uuid.NewString()
}
