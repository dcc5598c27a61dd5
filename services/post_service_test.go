package services

import (
	"strconv"
	"testing"
	"time"

	"yatube/models"
	"yatube/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostService_GroupFeedPagination(t *testing.T) {
	db := setupTestDB(t)
	author := createUser(t, db, "leo")
	group := createGroup(t, db, "cats")
	seedPosts(t, db, author, group, 15)

	svc := NewPostService(db, 10)

	first, err := svc.ListByGroup(group.ID, "")
	require.NoError(t, err)
	assert.Len(t, first.Items, 10)
	assert.Equal(t, 1, first.Number)
	assert.Equal(t, 2, first.TotalPages)
	assert.Equal(t, 15, first.TotalItems)
	assert.True(t, first.HasNext())

	second, err := svc.ListByGroup(group.ID, "2")
	require.NoError(t, err)
	assert.Len(t, second.Items, 5)
	assert.False(t, second.HasNext())
	assert.True(t, second.HasPrevious())

	third, err := svc.ListByGroup(group.ID, "3")
	require.NoError(t, err)
	assert.Equal(t, 2, third.Number)
	assert.Equal(t, ids(second.Items), ids(third.Items))
}

func TestPostService_NewestFirstWithStableTies(t *testing.T) {
	db := setupTestDB(t)
	author := createUser(t, db, "leo")
	seedPosts(t, db, author, nil, 3)

	same := time.Date(2030, 5, 5, 0, 0, 0, 0, time.UTC)
	a := models.Post{Text: "tie a", AuthorID: author.ID, CreatedAt: same}
	b := models.Post{Text: "tie b", AuthorID: author.ID, CreatedAt: same}
	require.NoError(t, db.Create(&a).Error)
	require.NoError(t, db.Create(&b).Error)

	page, err := NewPostService(db, 10).ListAll("")
	require.NoError(t, err)
	require.Len(t, page.Items, 5)
	assert.Equal(t, b.ID, page.Items[0].ID)
	assert.Equal(t, a.ID, page.Items[1].ID)

	for i := 1; i < len(page.Items); i++ {
		assert.False(t, page.Items[i].CreatedAt.After(page.Items[i-1].CreatedAt))
	}
}

func TestPostService_PagesMatchPurePaginate(t *testing.T) {
	db := setupTestDB(t)
	author := createUser(t, db, "leo")
	seedPosts(t, db, author, nil, 23)

	var ordered []models.Post
	require.NoError(t, db.Order(models.PostOrder).Find(&ordered).Error)

	svc := NewPostService(db, 4)
	for p := -1; p <= 8; p++ {
		raw := strconv.Itoa(p)
		fromStore, err := svc.ListAll(raw)
		require.NoError(t, err)
		pure := utils.Paginate(ordered, raw, 4)

		assert.Equal(t, pure.Number, fromStore.Number, "page %s", raw)
		assert.Equal(t, pure.TotalPages, fromStore.TotalPages)
		assert.Equal(t, pure.TotalItems, fromStore.TotalItems)
		assert.Equal(t, ids(pure.Items), ids(fromStore.Items), "page %s", raw)
	}
}

func TestPostService_EmptyListing(t *testing.T) {
	db := setupTestDB(t)

	page, err := NewPostService(db, 10).ListAll("5")
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 1, page.TotalPages)
	assert.False(t, page.HasNext())
	assert.False(t, page.HasPrevious())
}

func TestPostService_ScopedListings(t *testing.T) {
	db := setupTestDB(t)
	leo := createUser(t, db, "leo")
	mia := createUser(t, db, "mia")
	cats := createGroup(t, db, "cats")

	seedPosts(t, db, leo, cats, 2)
	seedPosts(t, db, mia, nil, 3)

	svc := NewPostService(db, 10)

	all, err := svc.ListAll("")
	require.NoError(t, err)
	assert.Equal(t, 5, all.TotalItems)

	byGroup, err := svc.ListByGroup(cats.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 2, byGroup.TotalItems)
	for _, p := range byGroup.Items {
		require.NotNil(t, p.Group)
		assert.Equal(t, "cats", p.Group.Slug)
	}

	byAuthor, err := svc.ListByAuthor(mia.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 3, byAuthor.TotalItems)
	for _, p := range byAuthor.Items {
		assert.Equal(t, "mia", p.Author.Username)
		assert.Nil(t, p.Group)
	}
}

func TestPostService_Create(t *testing.T) {
	db := setupTestDB(t)
	author := createUser(t, db, "leo")
	group := createGroup(t, db, "cats")
	svc := NewPostService(db, 10)

	before, err := svc.Count()
	require.NoError(t, err)

	post, err := svc.Create(author, &models.PostForm{Text: "  hello  ", Group: strconv.Itoa(int(group.ID))})
	require.NoError(t, err)
	assert.Equal(t, "hello", post.Text)
	assert.Equal(t, author.ID, post.Author.ID)
	require.NotNil(t, post.GroupID)
	assert.Equal(t, group.ID, *post.GroupID)
	assert.False(t, post.CreatedAt.IsZero())

	after, err := svc.Count()
	require.NoError(t, err)
	assert.Equal(t, before+1, after)
}

func TestPostService_CreateValidation(t *testing.T) {
	db := setupTestDB(t)
	author := createUser(t, db, "leo")
	svc := NewPostService(db, 10)

	tests := []struct {
		name  string
		form  models.PostForm
		field string
	}{
		{"empty text", models.PostForm{Text: ""}, "text"},
		{"blank text", models.PostForm{Text: " \n\t "}, "text"},
		{"unknown group", models.PostForm{Text: "hi", Group: "999"}, "group"},
		{"non numeric group", models.PostForm{Text: "hi", Group: "cats"}, "group"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(author, &tt.form)
			ve, ok := AsValidationError(err)
			require.True(t, ok, "expected validation error, got %v", err)
			assert.Equal(t, tt.field, ve.Field)
		})
	}

	count, err := svc.Count()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestPostService_UpdateByAuthor(t *testing.T) {
	db := setupTestDB(t)
	author := createUser(t, db, "leo")
	group := createGroup(t, db, "cats")
	svc := NewPostService(db, 10)

	post, err := svc.Create(author, &models.PostForm{Text: "draft", Group: strconv.Itoa(int(group.ID))})
	require.NoError(t, err)
	created := post.CreatedAt

	stale := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Model(&models.Post{}).Where("id = ?", post.ID).UpdateColumn("updated_at", stale).Error)

	updated, err := svc.Update(post, author, &models.PostForm{Text: "final"})
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Text)
	assert.Nil(t, updated.GroupID)
	assert.True(t, created.Equal(updated.CreatedAt))
	assert.True(t, updated.UpdatedAt.After(stale))
}

func TestPostService_UpdateByOtherUserIsRefused(t *testing.T) {
	db := setupTestDB(t)
	author := createUser(t, db, "leo")
	other := createUser(t, db, "mia")
	svc := NewPostService(db, 10)

	post, err := svc.Create(author, &models.PostForm{Text: "mine"})
	require.NoError(t, err)

	_, err = svc.Update(post, other, &models.PostForm{Text: "hijacked"})
	assert.ErrorIs(t, err, ErrNotAuthor)

	reloaded, err := svc.GetByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "mine", reloaded.Text)

	assert.ErrorIs(t, svc.Delete(post, other), ErrNotAuthor)
}

func TestPostService_Delete(t *testing.T) {
	db := setupTestDB(t)
	author := createUser(t, db, "leo")
	svc := NewPostService(db, 10)

	post, err := svc.Create(author, &models.PostForm{Text: "bye"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(post, author))

	_, err = svc.GetByID(post.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestPostService_GetByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	_, err := NewPostService(db, 10).GetByID(12345)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestNewPostService_DefaultPageSize(t *testing.T) {
	assert.Equal(t, utils.DefaultPageSize, NewPostService(nil, 0).PageSize())
}

func ids(posts []models.Post) []uint {
	out := make([]uint, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}
