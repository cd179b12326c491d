package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/reel/internal/core/domain"
)

func TestKey_AppendDoesNotAlias(t *testing.T) {
	base := domain.NewKey("courses")
	a := base.Append("detail", "1")
	b := base.Append("lists")

	assert.Equal(t, `["courses"]`, base.String())
	assert.Equal(t, `["courses","detail","1"]`, a.String())
	assert.Equal(t, `["courses","lists"]`, b.String())
}

func TestKey_HasPrefix(t *testing.T) {
	detail := domain.Courses.Detail("42")

	tests := []struct {
		name   string
		prefix domain.Key
		want   bool
	}{
		{"zero key", domain.Key{}, true},
		{"family root", domain.Courses.All(), true},
		{"itself", detail, true},
		{"details prefix", domain.Courses.Details(), true},
		{"sub-resource is longer", domain.Courses.Progress("42"), false},
		{"other id", domain.Courses.Detail("4"), false},
		{"other family", domain.Clips.All(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detail.HasPrefix(tt.prefix))
		})
	}
}

func TestKey_SubResourcesShareDetailPrefix(t *testing.T) {
	detail := domain.Clips.Detail("c1")

	assert.True(t, domain.Clips.Notes("c1").HasPrefix(detail))
	assert.True(t, domain.Clips.Transcript("c1").HasPrefix(detail))
	assert.True(t, domain.Clips.Bookmark("c1").HasPrefix(detail))
	assert.False(t, domain.Clips.Bookmarks().HasPrefix(domain.Clips.Details()))
}

func TestKey_CustomerDetailOutsideListPrefix(t *testing.T) {
	assert.False(t, domain.Admin.Customer("7").HasPrefix(domain.Admin.Customers()))
	assert.True(t, domain.Admin.CustomerList(nil).HasPrefix(domain.Admin.Customers()))
}

func TestKey_Equal(t *testing.T) {
	assert.True(t, domain.NewKey("a", "b").Equal(domain.NewKey("a").Append("b")))
	assert.False(t, domain.NewKey("a", "b").Equal(domain.NewKey("a,b")))
	assert.NotEqual(t, domain.NewKey("a", "b").String(), domain.NewKey("a,b").String())
}

func TestKey_PartsReturnsCopy(t *testing.T) {
	k := domain.NewKey("users", "me")
	parts := k.Parts()
	parts[0] = "x"

	assert.Equal(t, []string{"users", "me"}, k.Parts())
	assert.Equal(t, 2, k.Len())
	assert.False(t, k.IsZero())
	assert.True(t, domain.Key{}.IsZero())
}

func TestFilters_Encode(t *testing.T) {
	a := domain.Filters{"status": "published", "tag": "go"}
	b := domain.Filters{"tag": "go", "status": "published"}

	assert.Equal(t, "status=published&tag=go", a.Encode())
	assert.Equal(t, a.Encode(), b.Encode())
	assert.True(t, domain.Courses.List(a).Equal(domain.Courses.List(b)))

	assert.Empty(t, domain.Filters(nil).Encode())
	assert.Equal(t, "tag=go", domain.Filters{"tag": "go", "status": ""}.Encode())
	assert.Equal(t, "q=a+b%26c", domain.Filters{"q": "a b&c"}.Encode())
}

func TestFilters_Query(t *testing.T) {
	assert.Empty(t, domain.Filters{}.Query())
	assert.Equal(t, "?page=2", domain.Filters{"page": "2"}.Query())
}
