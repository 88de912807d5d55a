package mutation

import (
	"strings"
	"time"

	"tastelocal/internal/domain/entity"
	domainerrors "tastelocal/internal/domain/errors"
)

// AddBlogPost puts a post at the top of the blog. A new post has UpdatedAt
// equal to CreatedAt.
type AddBlogPost struct {
	Post entity.BlogPost
}

func (AddBlogPost) Name() string     { return "addBlogPost" }
func (AddBlogPost) Fields() []string { return []string{entity.FieldBlog} }

func (c AddBlogPost) Apply(current *entity.Business, now time.Time) (*entity.Business, error) {
	post := c.Post
	post.ID = newID(PrefixBlogPost, post.ID)
	if strings.TrimSpace(post.Title) == "" {
		return nil, domainerrors.Validation("blog post title is required")
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = now
	}
	post.UpdatedAt = post.CreatedAt
	if indexOf(current.Blog, func(p entity.BlogPost) bool { return p.ID == post.ID }) >= 0 || current.IsDeleted(entity.FieldBlog, post.ID) {
		return nil, duplicate("blog post", post.ID)
	}

	next := current.Copy()
	next.Blog = prepend(post, current.Blog)

	return next, nil
}

// BlogPostPatch lists the post fields an edit may change. CreatedAt and Author
// are not editable.
type BlogPostPatch struct {
	Title     *string
	Content   *string
	Excerpt   *string
	Image     *string
	Published *bool
}

// UpdateBlogPost edits one post and bumps its UpdatedAt.
type UpdateBlogPost struct {
	ID    string
	Patch BlogPostPatch
}

func (UpdateBlogPost) Name() string     { return "updateBlogPost" }
func (UpdateBlogPost) Fields() []string { return []string{entity.FieldBlog} }

func (c UpdateBlogPost) Apply(current *entity.Business, now time.Time) (*entity.Business, error) {
	i := indexOf(current.Blog, func(p entity.BlogPost) bool { return p.ID == c.ID })
	if i < 0 {
		return nil, notFound("blog post", c.ID)
	}

	post := current.Blog[i]
	p := c.Patch
	if p.Title != nil {
		if strings.TrimSpace(*p.Title) == "" {
			return nil, domainerrors.Validation("blog post title is required")
		}
		post.Title = *p.Title
	}
	if p.Content != nil {
		post.Content = *p.Content
	}
	if p.Excerpt != nil {
		post.Excerpt = *p.Excerpt
	}
	if p.Image != nil {
		image := *p.Image
		post.Image = &image
	}
	if p.Published != nil {
		post.Published = *p.Published
	}

	post.UpdatedAt = now
	if post.UpdatedAt.Before(post.CreatedAt) {
		post.UpdatedAt = post.CreatedAt
	}

	next := current.Copy()
	next.Blog = replaceAt(current.Blog, i, post)

	return next, nil
}

// DeleteBlogPost removes one post.
type DeleteBlogPost struct {
	ID string
}

func (DeleteBlogPost) Name() string     { return "deleteBlogPost" }
func (DeleteBlogPost) Fields() []string { return []string{entity.FieldBlog, entity.FieldDeletedIDs} }

func (c DeleteBlogPost) Apply(current *entity.Business, _ time.Time) (*entity.Business, error) {
	i := indexOf(current.Blog, func(p entity.BlogPost) bool { return p.ID == c.ID })
	if i < 0 {
		return nil, notFound("blog post", c.ID)
	}

	next := current.Copy()
	next.Blog = removeAt(current.Blog, i)
	next.DeletedIDs = current.WithDeleted(entity.FieldBlog, c.ID)

	return next, nil
}
