package registry

import (
	"context"
	"net/http"

	"go.trai.ch/reel/internal/core/domain"
	"go.trai.ch/reel/internal/engine/querycache"
)

func courseDependencies() []Dependency {
	return []Dependency{
		Seeds(ByID(domain.Courses.Detail), CourseCreate, CourseUpdate),
		Removes(ByID(domain.Courses.Detail), CourseDelete),
		Invalidates(Fixed(domain.Courses.Lists()), CourseCreate, CourseUpdate, CourseDelete),
		Invalidates(Fixed(domain.Courses.Enrolled()), CourseUpdate, CourseDelete, CourseEnroll, CourseProgressUpdate),
		Invalidates(ByID(domain.Courses.Detail), CourseEnroll),
		Invalidates(ByID(domain.Courses.Progress), CourseEnroll),
		Seeds(ByID(domain.Courses.Progress), CourseProgressUpdate),
		Invalidates(ByID(domain.Courses.Certificate), CourseProgressUpdate),
	}
}

// Courses reads and writes courses.
type Courses struct{ r *Registry }

// List returns the courses matching f.
func (c Courses) List(ctx context.Context, f domain.Filters, opts ...querycache.QueryOption) ([]domain.Course, error) {
	return query[[]domain.Course](ctx, c.r, domain.Courses.List(f), "/courses"+f.Query(), opts)
}

// Enrolled returns the courses the current user is enrolled in.
func (c Courses) Enrolled(ctx context.Context, opts ...querycache.QueryOption) ([]domain.Course, error) {
	return query[[]domain.Course](ctx, c.r, domain.Courses.Enrolled(), "/courses/enrolled", opts)
}

// Get returns one course.
func (c Courses) Get(ctx context.Context, id string, opts ...querycache.QueryOption) (domain.Course, error) {
	return query[domain.Course](ctx, c.r, domain.Courses.Detail(id), pathf("/courses/%s", id), requireID(opts, id))
}

// Watch observes one course.
func (c Courses) Watch(
	ctx context.Context, id string, opts ...querycache.QueryOption,
) *querycache.Observer[domain.Course] {
	return watch[domain.Course](ctx, c.r, domain.Courses.Detail(id), pathf("/courses/%s", id), requireID(opts, id))
}

// Progress returns the current user's progress in a course.
func (c Courses) Progress(
	ctx context.Context, id string, opts ...querycache.QueryOption,
) (domain.CourseProgress, error) {
	return query[domain.CourseProgress](ctx, c.r, domain.Courses.Progress(id),
		pathf("/courses/%s/progress", id), requireID(opts, id))
}

// Certificate returns the completion certificate of a course.
func (c Courses) Certificate(
	ctx context.Context, id string, opts ...querycache.QueryOption,
) (domain.Certificate, error) {
	return query[domain.Certificate](ctx, c.r, domain.Courses.Certificate(id),
		pathf("/courses/%s/certificate", id), requireID(opts, id))
}

// Create creates a course.
func (c Courses) Create(ctx context.Context, in domain.CourseInput) (domain.Course, error) {
	return mutate(ctx, c.r, CourseCreate,
		func(ctx context.Context) (domain.Course, error) {
			return send[domain.Course](ctx, c.r, http.MethodPost, "/courses", in)
		},
		func(res domain.Course) Ref { return Ref{ID: res.ID, Result: res} },
	)
}

// Update replaces the editable fields of a course.
func (c Courses) Update(ctx context.Context, id string, in domain.CourseInput) (domain.Course, error) {
	return mutate(ctx, c.r, CourseUpdate,
		func(ctx context.Context) (domain.Course, error) {
			return send[domain.Course](ctx, c.r, http.MethodPut, pathf("/courses/%s", id), in)
		},
		func(res domain.Course) Ref { return Ref{ID: id, Result: res} },
	)
}

// Delete deletes a course.
func (c Courses) Delete(ctx context.Context, id string) error {
	_, err := mutate(ctx, c.r, CourseDelete,
		func(ctx context.Context) (struct{}, error) {
			return send[struct{}](ctx, c.r, http.MethodDelete, pathf("/courses/%s", id), nil)
		},
		func(struct{}) Ref { return Ref{ID: id} },
	)
	return err
}

// Enroll enrolls the current user in a course.
func (c Courses) Enroll(ctx context.Context, id string) (domain.Enrollment, error) {
	return mutate(ctx, c.r, CourseEnroll,
		func(ctx context.Context) (domain.Enrollment, error) {
			return send[domain.Enrollment](ctx, c.r, http.MethodPost, pathf("/courses/%s/enroll", id), nil)
		},
		func(res domain.Enrollment) Ref { return Ref{ID: id, Result: res} },
	)
}

// UpdateProgress records progress in a course.
func (c Courses) UpdateProgress(
	ctx context.Context, id string, upd domain.ProgressUpdate,
) (domain.CourseProgress, error) {
	return mutate(ctx, c.r, CourseProgressUpdate,
		func(ctx context.Context) (domain.CourseProgress, error) {
			return send[domain.CourseProgress](ctx, c.r, http.MethodPost, pathf("/courses/%s/progress", id), upd)
		},
		func(res domain.CourseProgress) Ref { return Ref{ID: id, Result: res} },
	)
}
