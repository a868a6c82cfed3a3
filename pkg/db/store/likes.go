package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/papershare/papershare/pkg/db/models"
	"gorm.io/gorm"
)

// LikePaper records a like for a paper. The paper must exist, a user
// cannot like their own paper, and the (pid, username) primary key
// arbitrates concurrent double-likes: the loser fails, nothing crashes.
func (s *SQLiteStore) LikePaper(ctx context.Context, username string, pid int) error {
	like := models.Like{
		Pid:      pid,
		Username: username,
		LikeTime: s.now(),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var paper models.Paper
		err := tx.Select("pid, username").Where("pid = ?", pid).First(&paper).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPaperNotFound
		}
		if err != nil {
			return err
		}

		if paper.Username == username {
			return ErrOwnPaper
		}

		return tx.Create(&like).Error
	})
	if err != nil {
		if errors.Is(err, ErrPaperNotFound) || errors.Is(err, ErrOwnPaper) {
			return err
		}
		if isDuplicate(err) {
			return ErrAlreadyLiked
		}
		return fmt.Errorf("like paper: %w", err)
	}

	return nil
}

// UnlikePaper removes exactly the (pid, username) like row. Fails when
// the user never liked the paper.
func (s *SQLiteStore) UnlikePaper(ctx context.Context, username string, pid int) error {
	res := s.db.WithContext(ctx).
		Where("pid = ? AND username = ?", pid, username).
		Delete(&models.Like{})
	if res.Error != nil {
		return fmt.Errorf("unlike paper: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotLiked
	}

	return nil
}

// GetLikes returns the like count of a paper. An unknown pid simply has
// zero likes.
func (s *SQLiteStore) GetLikes(ctx context.Context, pid int) (int, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("pid = ?", pid).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("get likes: %w", err)
	}

	return int(count), nil
}

// GetPapersByLiked returns the papers a user liked, most recent like
// first, ties broken by pid ascending.
func (s *SQLiteStore) GetPapersByLiked(ctx context.Context, username string, count int) ([]PaperSummary, error) {
	return s.queryPapers(s.db.WithContext(ctx).
		Model(&models.Paper{}).
		Joins("JOIN likes ON likes.pid = papers.pid").
		Where("likes.username = ?", username).
		Order("likes.like_time DESC, papers.pid ASC"), count)
}

// GetMostPopularPapers ranks papers posted after since by like count
// descending, ties broken by pid ascending. Papers without likes are
// excluded by the inner join.
func (s *SQLiteStore) GetMostPopularPapers(ctx context.Context, since time.Time, count int) ([]PaperSummary, error) {
	if count < 0 {
		count = 0
	}

	query := `
		SELECT papers.pid, papers.username, papers.title, papers.begin_time, papers.description
		FROM papers
		JOIN likes ON likes.pid = papers.pid
		WHERE papers.begin_time > ?
		GROUP BY papers.pid, papers.username, papers.title, papers.begin_time, papers.description
		ORDER BY COUNT(likes.username) DESC, papers.pid ASC
		LIMIT ?
	`

	papers := []PaperSummary{}
	err := s.db.WithContext(ctx).Raw(query, since, count).Scan(&papers).Error
	if err != nil {
		return nil, fmt.Errorf("most popular papers: %w", err)
	}

	return papers, nil
}

// GetRecommendedPapers is a one-hop collaborative filter. A co-liker of
// the user is anyone else sharing at least one liked paper; candidates
// are papers liked by co-likers that the user has not liked, ranked by
// the number of distinct co-likers who liked them, ties by pid.
func (s *SQLiteStore) GetRecommendedPapers(ctx context.Context, username string, count int) ([]PaperSummary, error) {
	if count < 0 {
		count = 0
	}

	query := `
		WITH colikers AS (
			SELECT DISTINCT peer.username
			FROM likes mine
			JOIN likes peer ON peer.pid = mine.pid
			WHERE mine.username = ? AND peer.username <> ?
		)
		SELECT papers.pid, papers.username, papers.title, papers.begin_time, papers.description
		FROM papers
		JOIN likes ON likes.pid = papers.pid
		JOIN colikers ON colikers.username = likes.username
		WHERE papers.pid NOT IN (SELECT pid FROM likes WHERE username = ?)
		GROUP BY papers.pid, papers.username, papers.title, papers.begin_time, papers.description
		ORDER BY COUNT(DISTINCT likes.username) DESC, papers.pid ASC
		LIMIT ?
	`

	papers := []PaperSummary{}
	err := s.db.WithContext(ctx).Raw(query, username, username, username, count).Scan(&papers).Error
	if err != nil {
		return nil, fmt.Errorf("recommend papers: %w", err)
	}

	return papers, nil
}
