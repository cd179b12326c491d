// Package app implements the application layer for reel.
package app

import (
	"context"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/reel/internal/core/domain"
	"go.trai.ch/reel/internal/core/ports"
	"go.trai.ch/reel/internal/engine/registry"
	"go.trai.ch/zerr"
)

// App is the use-case surface the CLI drives.
type App struct {
	session    *Session
	reg        *registry.Registry
	logger     ports.Logger
	teaOptions []tea.ProgramOption
}

// New creates a new App instance.
func New(session *Session, reg *registry.Registry, log ports.Logger) *App {
	return &App{
		session: session,
		reg:     reg,
		logger:  log,
	}
}

// WithTeaOptions adds bubbletea program options used by the watch views.
// This is primarily used for testing to disable input/output.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	return a
}

// Session returns the session controller.
func (a *App) Session() *Session {
	return a.session
}

// SessionExpired reports whether a 401 ended the session and the user has
// already been sent to sign in.
func (a *App) SessionExpired() bool {
	return a.session != nil && a.session.Expired()
}

// Registry returns the query and mutation registry.
func (a *App) Registry() *registry.Registry {
	return a.reg
}

// Login signs in and returns the signed-in user.
func (a *App) Login(ctx context.Context, email, password string) (domain.User, error) {
	return a.session.Login(ctx, domain.Credentials{Email: email, Password: password})
}

// Logout signs out.
func (a *App) Logout(ctx context.Context) error {
	return a.session.Logout(ctx)
}

// Whoami returns the signed-in user.
func (a *App) Whoami(ctx context.Context) (domain.User, error) {
	return a.reg.Users.Me(ctx)
}

// Courses lists courses matching f.
func (a *App) Courses(ctx context.Context, f domain.Filters) ([]domain.Course, error) {
	return a.reg.Courses.List(ctx, f)
}

// Course returns one course.
func (a *App) Course(ctx context.Context, id string) (domain.Course, error) {
	return a.reg.Courses.Get(ctx, id)
}

// Enroll enrolls the signed-in user in a course.
func (a *App) Enroll(ctx context.Context, id string) (domain.Enrollment, error) {
	return a.reg.Courses.Enroll(ctx, id)
}

// Progress returns the signed-in user's progress in a course.
func (a *App) Progress(ctx context.Context, id string) (domain.CourseProgress, error) {
	return a.reg.Courses.Progress(ctx, id)
}

// UploadOptions describes a clip upload from disk.
type UploadOptions struct {
	Path        string
	Title       string
	Description string
	// Progress is called as the upload advances. It may be nil.
	Progress func(domain.UploadProgress)
}

// UploadClip uploads a video file. The title defaults to the file name.
func (a *App) UploadClip(ctx context.Context, opts UploadOptions) (domain.Clip, error) {
	f, err := os.Open(opts.Path)
	if err != nil {
		return domain.Clip{}, zerr.With(domain.Wrap(err, domain.ErrFileOpenFailed), "path", opts.Path)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return domain.Clip{}, zerr.With(domain.Wrap(err, domain.ErrFileOpenFailed), "path", opts.Path)
	}

	name := filepath.Base(opts.Path)
	title := opts.Title
	if title == "" {
		title = name
	}

	return a.reg.Clips.Upload(ctx, registry.ClipUploadInput{
		Title:       title,
		Description: opts.Description,
		FileName:    name,
		File:        f,
		Size:        info.Size(),
		Progress:    opts.Progress,
	})
}

// GraphEntry lists the cache effects of one mutation.
type GraphEntry struct {
	Mutation string
	Effects  []string
}

// Graph describes the cache effects of every mutation.
func (a *App) Graph() []GraphEntry {
	g := a.reg.Graph()
	entries := make([]GraphEntry, 0, len(registry.AllMutations()))
	for _, kind := range registry.AllMutations() {
		entry := GraphEntry{Mutation: kind.String()}
		for e := range g.Edges(kind) {
			entry.Effects = append(entry.Effects, e.Mode.String()+" "+e.Key.String())
		}
		entries = append(entries, entry)
	}
	return entries
}
