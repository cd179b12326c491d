package registry

import (
	"context"
	"io"
	"net/http"

	"go.trai.ch/reel/internal/core/domain"
	"go.trai.ch/reel/internal/core/ports"
	"go.trai.ch/reel/internal/engine/querycache"
)

func clipDependencies() []Dependency {
	return []Dependency{
		Seeds(ByID(domain.Clips.Detail), ClipUpload, ClipUpdate),
		Removes(ByID(domain.Clips.Detail), ClipDelete),
		Removes(ByID(domain.Analytics.Clip), ClipDelete),
		Invalidates(Fixed(domain.Clips.Lists()), ClipUpload, ClipUpdate, ClipDelete),
		Invalidates(Fixed(domain.Clips.Bookmarks()), ClipUpdate, ClipDelete, BookmarkToggle),
		Invalidates(ByParent(domain.Clips.Notes), NoteCreate, NoteDelete),
		Seeds(ByID(domain.Clips.Bookmark), BookmarkToggle),
		Passive(ClipReport),
	}
}

// ClipUploadInput describes a video to upload.
type ClipUploadInput struct {
	Title       string
	Description string
	FileName    string
	File        io.Reader
	// Size is the length of File, used for progress. Zero means unknown.
	Size int64
	// Progress is called as the upload advances. It may be nil.
	Progress func(domain.UploadProgress)
}

// Clips reads and writes clips.
type Clips struct{ r *Registry }

// List returns the clips matching f.
func (c Clips) List(ctx context.Context, f domain.Filters, opts ...querycache.QueryOption) ([]domain.Clip, error) {
	return query[[]domain.Clip](ctx, c.r, domain.Clips.List(f), "/clips"+f.Query(), opts)
}

// Bookmarks returns the clips bookmarked by the current user.
func (c Clips) Bookmarks(ctx context.Context, opts ...querycache.QueryOption) ([]domain.Clip, error) {
	return query[[]domain.Clip](ctx, c.r, domain.Clips.Bookmarks(), "/clips/bookmarks", opts)
}

// Get returns one clip.
func (c Clips) Get(ctx context.Context, id string, opts ...querycache.QueryOption) (domain.Clip, error) {
	return query[domain.Clip](ctx, c.r, domain.Clips.Detail(id), pathf("/clips/%s", id), requireID(opts, id))
}

// Notes returns the notes of a clip.
func (c Clips) Notes(ctx context.Context, id string, opts ...querycache.QueryOption) ([]domain.Note, error) {
	return query[[]domain.Note](ctx, c.r, domain.Clips.Notes(id), pathf("/clips/%s/notes", id), requireID(opts, id))
}

// Transcript returns the transcript of a clip.
func (c Clips) Transcript(
	ctx context.Context, id string, opts ...querycache.QueryOption,
) (domain.Transcript, error) {
	return query[domain.Transcript](ctx, c.r, domain.Clips.Transcript(id),
		pathf("/clips/%s/transcript", id), requireID(opts, id))
}

// Bookmark returns the bookmark state of a clip.
func (c Clips) Bookmark(ctx context.Context, id string, opts ...querycache.QueryOption) (domain.Bookmark, error) {
	return query[domain.Bookmark](ctx, c.r, domain.Clips.Bookmark(id),
		pathf("/clips/%s/bookmark", id), requireID(opts, id))
}

// Upload uploads a new clip. Canceling ctx aborts the transfer.
func (c Clips) Upload(ctx context.Context, in ClipUploadInput) (domain.Clip, error) {
	return mutate(ctx, c.r, ClipUpload,
		func(ctx context.Context) (domain.Clip, error) {
			fields := map[string]string{"title": in.Title}
			if in.Description != "" {
				fields["description"] = in.Description
			}
			var out domain.Clip
			err := c.r.gw.Upload(ctx, ports.UploadRequest{
				Path:     "/clips/upload",
				FileName: in.FileName,
				File:     in.File,
				Size:     in.Size,
				Fields:   fields,
				Progress: in.Progress,
			}, &out)
			return out, err
		},
		func(res domain.Clip) Ref { return Ref{ID: res.ID, Result: res} },
	)
}

// Update changes clip metadata.
func (c Clips) Update(ctx context.Context, id string, in domain.ClipInput) (domain.Clip, error) {
	return mutate(ctx, c.r, ClipUpdate,
		func(ctx context.Context) (domain.Clip, error) {
			return send[domain.Clip](ctx, c.r, http.MethodPatch, pathf("/clips/%s", id), in)
		},
		func(res domain.Clip) Ref { return Ref{ID: id, Result: res} },
	)
}

// Delete deletes a clip.
func (c Clips) Delete(ctx context.Context, id string) error {
	_, err := mutate(ctx, c.r, ClipDelete,
		func(ctx context.Context) (struct{}, error) {
			return send[struct{}](ctx, c.r, http.MethodDelete, pathf("/clips/%s", id), nil)
		},
		func(struct{}) Ref { return Ref{ID: id} },
	)
	return err
}

// AddNote attaches a note to a clip.
func (c Clips) AddNote(ctx context.Context, clipID string, in domain.NoteInput) (domain.Note, error) {
	return mutate(ctx, c.r, NoteCreate,
		func(ctx context.Context) (domain.Note, error) {
			return send[domain.Note](ctx, c.r, http.MethodPost, pathf("/clips/%s/notes", clipID), in)
		},
		func(res domain.Note) Ref { return Ref{ID: res.ID, ParentID: clipID, Result: res} },
	)
}

// DeleteNote deletes a note of a clip.
func (c Clips) DeleteNote(ctx context.Context, clipID, noteID string) error {
	_, err := mutate(ctx, c.r, NoteDelete,
		func(ctx context.Context) (struct{}, error) {
			return send[struct{}](ctx, c.r, http.MethodDelete, pathf("/clips/%s/notes/%s", clipID, noteID), nil)
		},
		func(struct{}) Ref { return Ref{ID: noteID, ParentID: clipID} },
	)
	return err
}

// Report flags a clip for review.
func (c Clips) Report(ctx context.Context, id string, report domain.Report) error {
	if err := domain.Validate(report); err != nil {
		return err
	}
	_, err := mutate(ctx, c.r, ClipReport,
		func(ctx context.Context) (struct{}, error) {
			return send[struct{}](ctx, c.r, http.MethodPost, pathf("/clips/%s/report", id), report)
		},
		noRef[struct{}],
	)
	return err
}

// ToggleBookmark flips the bookmark state of a clip.
func (c Clips) ToggleBookmark(ctx context.Context, id string) (domain.Bookmark, error) {
	return mutate(ctx, c.r, BookmarkToggle,
		func(ctx context.Context) (domain.Bookmark, error) {
			return send[domain.Bookmark](ctx, c.r, http.MethodPost, pathf("/clips/%s/bookmark", id), nil)
		},
		func(res domain.Bookmark) Ref { return Ref{ID: id, Result: res} },
	)
}
