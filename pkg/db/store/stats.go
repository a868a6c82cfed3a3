package store

import (
	"context"
	"fmt"

	"github.com/papershare/papershare/pkg/db/models"
)

// GetMostActiveUsers returns the users who posted the most papers, count
// descending, ties broken by username ascending. Users without papers
// never appear.
func (s *SQLiteStore) GetMostActiveUsers(ctx context.Context, count int) ([]string, error) {
	if count < 0 {
		count = 0
	}

	query := `
		SELECT username
		FROM papers
		GROUP BY username
		ORDER BY COUNT(*) DESC, username ASC
		LIMIT ?
	`

	users := []string{}
	if err := s.db.WithContext(ctx).Raw(query, count).Scan(&users).Error; err != nil {
		return nil, fmt.Errorf("most active users: %w", err)
	}

	return users, nil
}

// GetMostPopularTags returns tagnames with the number of papers carrying
// them, count descending, ties broken by tagname ascending.
func (s *SQLiteStore) GetMostPopularTags(ctx context.Context, count int) ([]TagCount, error) {
	if count < 0 {
		count = 0
	}

	// (pid, tagname) is the primary key, so COUNT(*) is already the
	// distinct paper count.
	query := `
		SELECT tagname, COUNT(*) AS paper_count
		FROM tags
		GROUP BY tagname
		ORDER BY paper_count DESC, tagname ASC
		LIMIT ?
	`

	tags := []TagCount{}
	if err := s.db.WithContext(ctx).Raw(query, count).Scan(&tags).Error; err != nil {
		return nil, fmt.Errorf("most popular tags: %w", err)
	}

	return tags, nil
}

// GetMostPopularTagPairs counts papers carrying two tags together. Pairs
// are canonicalized by the self-join condition, so (A,B) and (B,A) are
// counted once with the lexically smaller tagname first. Ordered by count
// descending, then first and second tagname ascending.
func (s *SQLiteStore) GetMostPopularTagPairs(ctx context.Context, count int) ([]TagPairCount, error) {
	if count < 0 {
		count = 0
	}

	query := `
		SELECT a.tagname AS first, b.tagname AS second, COUNT(*) AS paper_count
		FROM tags a
		JOIN tags b ON b.pid = a.pid AND a.tagname < b.tagname
		GROUP BY a.tagname, b.tagname
		ORDER BY paper_count DESC, a.tagname ASC, b.tagname ASC
		LIMIT ?
	`

	pairs := []TagPairCount{}
	if err := s.db.WithContext(ctx).Raw(query, count).Scan(&pairs).Error; err != nil {
		return nil, fmt.Errorf("most popular tag pairs: %w", err)
	}

	return pairs, nil
}

// GetNumberPapersUser returns how many papers a user posted.
func (s *SQLiteStore) GetNumberPapersUser(ctx context.Context, username string) (int, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Paper{}).
		Where("username = ?", username).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("number papers: %w", err)
	}

	return int(count), nil
}

// GetNumberLikedUser returns how many likes a user issued.
func (s *SQLiteStore) GetNumberLikedUser(ctx context.Context, username string) (int, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("username = ?", username).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("number liked: %w", err)
	}

	return int(count), nil
}

// GetNumberTagsUser returns the number of distinct tagnames used across a
// user's papers, duplicates over multiple papers collapsed.
func (s *SQLiteStore) GetNumberTagsUser(ctx context.Context, username string) (int, error) {
	query := `
		SELECT COUNT(DISTINCT tags.tagname)
		FROM tags
		JOIN papers ON papers.pid = tags.pid
		WHERE papers.username = ?
	`

	var count int
	if err := s.db.WithContext(ctx).Raw(query, username).Scan(&count).Error; err != nil {
		return 0, fmt.Errorf("number tags: %w", err)
	}

	return count, nil
}
