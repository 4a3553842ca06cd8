package srvc

import (
	"context"
	"net/http"

	"github.com/programme-lv/writing/logger"
	"github.com/programme-lv/writing/srvcerror"
	"github.com/programme-lv/writing/writing/domain"
)

// SubmRepo is the read side of submission persistence. Implementations
// must filter by owner and order by creation time, newest first.
type SubmRepo interface {
	ListByUser(ctx context.Context, userID string) ([]domain.WritingSubm, error)
}

type WritingSrvcClient interface {
	ListUserSubms(ctx context.Context, userID string) ([]domain.WritingSubm, error)
}

const ErrCodeFetchSubmsFailed = "fetch_submissions_failed"

func ErrFetchSubmsFailed() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeFetchSubmsFailed,
		"Failed to fetch submissions",
	).SetHttpStatusCode(http.StatusInternalServerError)
}

type WritingSrvc struct {
	repo SubmRepo
}

func NewWritingSrvc(repo SubmRepo) *WritingSrvc {
	return &WritingSrvc{repo: repo}
}

// ListUserSubms returns every submission owned by userID, newest first.
// A user with no submissions gets an empty, non-nil slice.
func (s *WritingSrvc) ListUserSubms(ctx context.Context, userID string) ([]domain.WritingSubm, error) {
	log := logger.FromContext(ctx)

	subms, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, ErrFetchSubmsFailed().SetDebug(err)
	}
	if subms == nil {
		subms = []domain.WritingSubm{}
	}

	log.Debug("listed writing submissions", "count", len(subms))
	return subms, nil
}
