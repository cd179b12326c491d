package registry

import (
	"context"
	"net/http"

	"go.trai.ch/reel/internal/core/domain"
	"go.trai.ch/reel/internal/engine/querycache"
)

func quizDependencies() []Dependency {
	return []Dependency{
		Invalidates(ByID(domain.Quizzes.Detail), QuizSubmit),
		Invalidates(ByParent(domain.Courses.Progress), QuizSubmit),
	}
}

// Quizzes reads and submits quizzes.
type Quizzes struct{ r *Registry }

// Get returns one quiz.
func (q Quizzes) Get(ctx context.Context, id string, opts ...querycache.QueryOption) (domain.Quiz, error) {
	return query[domain.Quiz](ctx, q.r, domain.Quizzes.Detail(id), pathf("/quizzes/%s", id), requireID(opts, id))
}

// Submit grades answers to a quiz. The progress of the owning course is
// refreshed once the result is known.
func (q Quizzes) Submit(ctx context.Context, id string, sub domain.QuizSubmission) (domain.QuizResult, error) {
	return mutate(ctx, q.r, QuizSubmit,
		func(ctx context.Context) (domain.QuizResult, error) {
			return send[domain.QuizResult](ctx, q.r, http.MethodPost, pathf("/quizzes/%s/submit", id), sub)
		},
		func(res domain.QuizResult) Ref { return Ref{ID: id, ParentID: res.CourseID, Result: res} },
	)
}
