package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/reel/internal/core/domain"
	"go.trai.ch/reel/internal/engine/querycache"
	"go.trai.ch/reel/internal/engine/registry"
)

func TestDefaultGraph_DeclaresEveryMutation(t *testing.T) {
	g, err := registry.DefaultGraph()
	require.NoError(t, err)

	for _, kind := range registry.AllMutations() {
		_, err := g.Effects(kind, registry.Ref{ID: "1", ParentID: "2"})
		require.NoError(t, err, kind.String())
		assert.NotEqual(t, "unknown", kind.String())
		assert.NotEmpty(t, kind.SuccessMessage(), kind.String())
		assert.NotEmpty(t, kind.FailureTitle(), kind.String())
	}
}

func TestNewGraph_Errors(t *testing.T) {
	tests := []struct {
		name    string
		deps    []registry.Dependency
		wantErr error
		detail  string
	}{
		{
			name:    "undeclared mutation",
			deps:    []registry.Dependency{registry.Passive(registry.CourseCreate)},
			wantErr: domain.ErrUndeclaredMutation,
			detail:  "course.update",
		},
		{
			name:    "unknown mutation",
			deps:    []registry.Dependency{registry.Passive(registry.MutationKind(999))},
			wantErr: domain.ErrUnknownMutation,
		},
		{
			name: "missing key function",
			deps: []registry.Dependency{
				{Mode: registry.ModeInvalidate, On: []registry.MutationKind{registry.CourseCreate}},
			},
			wantErr: domain.ErrDependencyKeyMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := registry.NewGraph(tt.deps...)
			require.Error(t, err)
			require.ErrorIs(t, err, tt.wantErr)
			if tt.detail != "" {
				assert.ErrorContains(t, err, tt.detail)
			}
		})
	}
}

func TestGraph_Effects(t *testing.T) {
	g, err := registry.DefaultGraph()
	require.NoError(t, err)

	course := domain.Course{ID: "42", Title: "Go"}

	tests := []struct {
		name string
		kind registry.MutationKind
		ref  registry.Ref
		want querycache.Effects
	}{
		{
			name: "create seeds detail and invalidates lists",
			kind: registry.CourseCreate,
			ref:  registry.Ref{ID: "42", Result: course},
			want: querycache.Effects{
				Seed:       []querycache.Seed{{Key: domain.Courses.Detail("42"), Value: course}},
				Invalidate: []domain.Key{domain.Courses.Lists()},
			},
		},
		{
			name: "update seeds detail and invalidates lists",
			kind: registry.CourseUpdate,
			ref:  registry.Ref{ID: "42", Result: course},
			want: querycache.Effects{
				Seed:       []querycache.Seed{{Key: domain.Courses.Detail("42"), Value: course}},
				Invalidate: []domain.Key{domain.Courses.Lists(), domain.Courses.Enrolled()},
			},
		},
		{
			name: "delete removes detail",
			kind: registry.CourseDelete,
			ref:  registry.Ref{ID: "42"},
			want: querycache.Effects{
				Remove:     []domain.Key{domain.Courses.Detail("42")},
				Invalidate: []domain.Key{domain.Courses.Lists(), domain.Courses.Enrolled()},
			},
		},
		{
			name: "enroll invalidates progress and detail",
			kind: registry.CourseEnroll,
			ref:  registry.Ref{ID: "7"},
			want: querycache.Effects{
				Invalidate: []domain.Key{
					domain.Courses.Enrolled(),
					domain.Courses.Detail("7"),
					domain.Courses.Progress("7"),
				},
			},
		},
		{
			name: "quiz submit without course skips progress",
			kind: registry.QuizSubmit,
			ref:  registry.Ref{ID: "q1"},
			want: querycache.Effects{
				Invalidate: []domain.Key{domain.Quizzes.Detail("q1")},
			},
		},
		{
			name: "note create targets the clip",
			kind: registry.NoteCreate,
			ref:  registry.Ref{ID: "n1", ParentID: "c1"},
			want: querycache.Effects{
				Invalidate: []domain.Key{domain.Clips.Notes("c1")},
			},
		},
		{
			name: "passive mutation",
			kind: registry.ExportRequest,
			ref:  registry.Ref{ID: "job"},
			want: querycache.Effects{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := g.Effects(tt.kind, tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGraph_EffectsUnknownMutation(t *testing.T) {
	g, err := registry.DefaultGraph()
	require.NoError(t, err)

	_, err = g.Effects(registry.MutationKind(0), registry.Ref{})
	assert.ErrorContains(t, err, domain.ErrUnknownMutation.Error())
}

func TestGraph_Edges(t *testing.T) {
	g, err := registry.DefaultGraph()
	require.NoError(t, err)

	var got []string
	for e := range g.Edges(registry.BookmarkToggle) {
		got = append(got, e.Mode.String()+" "+e.Key.String())
	}
	assert.Equal(t, []string{
		`invalidate ["clips","bookmarks"]`,
		`seed ["clips","detail","{id}","bookmark"]`,
	}, got)
}

func TestAllMutations(t *testing.T) {
	all := registry.AllMutations()
	assert.Len(t, all, 26)
	assert.Equal(t, registry.CourseCreate, all[0])
	assert.Equal(t, registry.ExportRequest, all[len(all)-1])
	assert.False(t, registry.MutationKind(0).Valid())
}
