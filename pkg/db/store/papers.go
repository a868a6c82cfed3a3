package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/papershare/papershare/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const summaryColumns = "papers.pid, papers.username, papers.title, papers.begin_time, papers.description"

// AddPaper creates a paper together with its tag associations in a single
// transaction. Missing tagnames are created on the fly; a failure on any
// row leaves the store unchanged. Returns the generated pid.
func (s *SQLiteStore) AddPaper(ctx context.Context, username, title, description, text string, tags []string) (int, error) {
	if username == "" || len(username) > models.MaxUsernameLen {
		return 0, fmt.Errorf("%w: username", ErrInvalidInput)
	}
	if len(title) > models.MaxTitleLen {
		return 0, fmt.Errorf("%w: title", ErrInvalidInput)
	}
	if len(description) > models.MaxDescriptionLen {
		return 0, fmt.Errorf("%w: description", ErrInvalidInput)
	}
	for _, tag := range tags {
		if tag == "" || len(tag) > models.MaxTagnameLen {
			return 0, fmt.Errorf("%w: tag %q", ErrInvalidInput, tag)
		}
	}

	paper := models.Paper{
		Username:    username,
		Title:       title,
		BeginTime:   s.now(),
		Description: description,
		Data:        text,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owners int64
		if err := tx.Model(&models.User{}).Where("username = ?", username).Count(&owners).Error; err != nil {
			return err
		}
		if owners == 0 {
			return fmt.Errorf("%w: owner %q does not exist", ErrInvalidInput, username)
		}

		if err := tx.Create(&paper).Error; err != nil {
			return err
		}

		for _, tag := range tags {
			// Idempotent on the tagname, so reuse across papers is free.
			err := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&models.Tagname{Tagname: tag}).Error
			if err != nil {
				return err
			}

			if err := tx.Create(&models.Tag{Pid: paper.Pid, Tagname: tag}).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			return 0, err
		}
		if isDuplicate(err) {
			// A tag given twice violates the (pid, tagname) key.
			return 0, fmt.Errorf("%w: duplicate tag", ErrInvalidInput)
		}
		return 0, fmt.Errorf("add paper: %w", err)
	}

	return paper.Pid, nil
}

// DeletePaper removes a paper and cascades to its tag and like rows. The
// children are deleted explicitly inside the transaction rather than left
// to the declarative foreign keys.
func (s *SQLiteStore) DeletePaper(ctx context.Context, pid int) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pid = ?", pid).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("pid = ?", pid).Delete(&models.Tag{}).Error; err != nil {
			return err
		}

		res := tx.Where("pid = ?", pid).Delete(&models.Paper{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrPaperNotFound
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrPaperNotFound) {
			return err
		}
		return fmt.Errorf("delete paper: %w", err)
	}

	return nil
}

// GetTimeline returns the most recent papers of a user, newest first,
// ties broken by pid ascending.
func (s *SQLiteStore) GetTimeline(ctx context.Context, username string, count int) ([]PaperSummary, error) {
	return s.queryPapers(s.db.WithContext(ctx).
		Model(&models.Paper{}).
		Where("username = ?", username).
		Order("begin_time DESC, pid ASC"), count)
}

// GetTimelineAll returns the most recent papers across all users.
func (s *SQLiteStore) GetTimelineAll(ctx context.Context, count int) ([]PaperSummary, error) {
	return s.queryPapers(s.db.WithContext(ctx).
		Model(&models.Paper{}).
		Order("begin_time DESC, pid ASC"), count)
}

// GetPapersByTag returns the most recent papers carrying the given tag.
func (s *SQLiteStore) GetPapersByTag(ctx context.Context, tag string, count int) ([]PaperSummary, error) {
	return s.queryPapers(s.db.WithContext(ctx).
		Model(&models.Paper{}).
		Joins("JOIN tags ON tags.pid = papers.pid").
		Where("tags.tagname = ?", tag).
		Order("papers.begin_time DESC, papers.pid ASC"), count)
}

// GetPapersByKeyword returns the most recent papers whose title,
// description or text body contains the keyword as a contiguous
// case-sensitive substring.
func (s *SQLiteStore) GetPapersByKeyword(ctx context.Context, keyword string, count int) ([]PaperSummary, error) {
	return s.queryPapers(s.db.WithContext(ctx).
		Model(&models.Paper{}).
		Where("instr(title, ?) > 0 OR instr(description, ?) > 0 OR instr(data, ?) > 0",
			keyword, keyword, keyword).
		Order("begin_time DESC, pid ASC"), count)
}

// GetPaperTags returns a paper's tagnames in lexically ascending order.
// An existing paper with no tags yields an empty list; an unknown pid is
// an error.
func (s *SQLiteStore) GetPaperTags(ctx context.Context, pid int) ([]string, error) {
	tags := []string{}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var papers int64
		if err := tx.Model(&models.Paper{}).Where("pid = ?", pid).Count(&papers).Error; err != nil {
			return err
		}
		if papers == 0 {
			return ErrPaperNotFound
		}

		return tx.Model(&models.Tag{}).
			Where("pid = ?", pid).
			Order("tagname ASC").
			Pluck("tagname", &tags).Error
	})
	if err != nil {
		if errors.Is(err, ErrPaperNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get paper tags: %w", err)
	}

	return tags, nil
}

// queryPapers runs a prepared paper query with the shared summary
// projection and count cap.
func (s *SQLiteStore) queryPapers(query *gorm.DB, count int) ([]PaperSummary, error) {
	if count < 0 {
		count = 0
	}

	papers := []PaperSummary{}
	err := query.Select(summaryColumns).Limit(count).Scan(&papers).Error
	if err != nil {
		return nil, fmt.Errorf("query papers: %w", err)
	}

	return papers, nil
}
