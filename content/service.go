// Package content talks to the headless content store: typed GROQ queries,
// bounded retry for client-visible reads, and log-and-degrade wrappers for
// server-side rendering. Every result is coerced to a safe shape — list
// queries never return nil-from-malformed, single-item queries return nil
// for absent documents — so page rendering never hard-fails because the
// store is unreachable or a document is misshapen.
package content

import (
	"context"
	"log/slog"
	"time"
)

// Service is the fetch façade used by handlers and page components.
type Service struct {
	client *Client
	log    *slog.Logger
	retry  RetryPolicy
	now    func() time.Time
}

// ServiceOption configures optional Service behavior.
type ServiceOption func(*Service)

// WithLogger sets the logger used by the degrade paths.
func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) { s.log = log }
}

// WithRetryPolicy overrides the retry budget for client-visible reads.
func WithRetryPolicy(p RetryPolicy) ServiceOption {
	return func(s *Service) { s.retry = p }
}

// WithClock overrides the time source, for almanac tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

// NewService creates a Service over the given client.
func NewService(client *Client, opts ...ServiceOption) *Service {
	s := &Service{
		client: client,
		log:    slog.Default(),
		retry:  DefaultRetryPolicy(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Posts returns all posts, newest first, retrying transient failures.
func (s *Service) Posts(ctx context.Context) ([]Post, error) {
	var posts []Post
	err := Retry(ctx, s.retry, func(ctx context.Context) error {
		posts = nil
		return s.client.Query(ctx, postsQuery, nil, &posts)
	})
	if err != nil {
		return nil, err
	}
	return nonNil(posts), nil
}

// PostsByCategory returns posts in one category, newest first.
func (s *Service) PostsByCategory(ctx context.Context, category string) ([]Post, error) {
	var posts []Post
	err := Retry(ctx, s.retry, func(ctx context.Context) error {
		posts = nil
		return s.client.Query(ctx, postsByCategoryQuery, map[string]any{"category": category}, &posts)
	})
	if err != nil {
		return nil, err
	}
	return nonNil(posts), nil
}

// PostBySlug returns one post, or nil when no document matches the slug.
func (s *Service) PostBySlug(ctx context.Context, slug string) (*Post, error) {
	var post *Post
	err := Retry(ctx, s.retry, func(ctx context.Context) error {
		post = nil
		return s.client.Query(ctx, postBySlugQuery, map[string]any{"slug": slug}, &post)
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// RecentPosts returns the five most recent posts in trimmed projection.
func (s *Service) RecentPosts(ctx context.Context) ([]RecentPost, error) {
	var posts []RecentPost
	err := Retry(ctx, s.retry, func(ctx context.Context) error {
		posts = nil
		return s.client.Query(ctx, recentPostsQuery, nil, &posts)
	})
	if err != nil {
		return nil, err
	}
	return nonNil(posts), nil
}

// PostSlugs returns every post slug, for the sitemap.
func (s *Service) PostSlugs(ctx context.Context) ([]string, error) {
	var slugs []string
	err := Retry(ctx, s.retry, func(ctx context.Context) error {
		slugs = nil
		return s.client.Query(ctx, postSlugsQuery, nil, &slugs)
	})
	if err != nil {
		return nil, err
	}
	return nonNil(slugs), nil
}

// PanchangForDate returns the almanac entry for an exact date (YYYY-MM-DD),
// or nil when none exists.
func (s *Service) PanchangForDate(ctx context.Context, date string) (*Panchang, error) {
	var entry *Panchang
	err := Retry(ctx, s.retry, func(ctx context.Context) error {
		entry = nil
		return s.client.Query(ctx, panchangByDateQuery, map[string]any{"date": date}, &entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// LatestPanchang returns the most recent almanac entry of any date, or nil.
func (s *Service) LatestPanchang(ctx context.Context) (*Panchang, error) {
	var entry *Panchang
	err := Retry(ctx, s.retry, func(ctx context.Context) error {
		entry = nil
		return s.client.Query(ctx, panchangLatestQuery, nil, &entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// TodayPanchang resolves the almanac for today with the full fallback chain:
// today's entry, else the latest entry of any date, else the fixed sample
// record. The bool reports whether the sample was substituted. It never
// returns an error — an unreachable store degrades to the sample exactly
// like an empty one. (Operators cannot distinguish the two causes from the
// page; the log line carries the difference.)
func (s *Service) TodayPanchang(ctx context.Context) (Panchang, bool) {
	today := s.now().Format("2006-01-02")

	entry, err := s.PanchangForDate(ctx, today)
	if err == nil && entry == nil {
		entry, err = s.LatestPanchang(ctx)
	}
	if err != nil {
		s.log.Warn("panchang fetch failed, using sample", "error", err)
		return SamplePanchang(s.now()), true
	}
	if entry == nil {
		return SamplePanchang(s.now()), true
	}
	return *entry, false
}

// Server-side wrappers for initial page render and metadata generation:
// one attempt, log the cause, degrade to empty defaults.

func (s *Service) singleAttempt() *Service {
	clone := *s
	clone.retry = RetryPolicy{MaxAttempts: 1}
	return &clone
}

// PostsOrEmpty is Posts with server-side degrade semantics.
func (s *Service) PostsOrEmpty(ctx context.Context) []Post {
	posts, err := s.singleAttempt().Posts(ctx)
	if err != nil {
		s.log.Error("list posts failed", "error", err)
		return []Post{}
	}
	return posts
}

// PostsByCategoryOrEmpty is PostsByCategory with server-side degrade semantics.
func (s *Service) PostsByCategoryOrEmpty(ctx context.Context, category string) []Post {
	posts, err := s.singleAttempt().PostsByCategory(ctx, category)
	if err != nil {
		s.log.Error("list posts by category failed", "category", category, "error", err)
		return []Post{}
	}
	return posts
}

// PostBySlugOrNil is PostBySlug with server-side degrade semantics.
func (s *Service) PostBySlugOrNil(ctx context.Context, slug string) *Post {
	post, err := s.singleAttempt().PostBySlug(ctx, slug)
	if err != nil {
		s.log.Error("get post failed", "slug", slug, "error", err)
		return nil
	}
	return post
}

// RecentPostsOrEmpty is RecentPosts with server-side degrade semantics.
func (s *Service) RecentPostsOrEmpty(ctx context.Context) []RecentPost {
	posts, err := s.singleAttempt().RecentPosts(ctx)
	if err != nil {
		s.log.Error("list recent posts failed", "error", err)
		return []RecentPost{}
	}
	return posts
}

// PostSlugsOrEmpty is PostSlugs with server-side degrade semantics.
func (s *Service) PostSlugsOrEmpty(ctx context.Context) []string {
	slugs, err := s.singleAttempt().PostSlugs(ctx)
	if err != nil {
		s.log.Error("list post slugs failed", "error", err)
		return []string{}
	}
	return slugs
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
