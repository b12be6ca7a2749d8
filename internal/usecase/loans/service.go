package loans

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/the-chronicles/Creditflow/internal/adapter/api"
	"github.com/the-chronicles/Creditflow/internal/domain/loan"
)

// RemoteAPI is the slice of the remote client this service consumes.
type RemoteAPI interface {
	MyLoans(ctx context.Context) ([]loan.Record, error)
	Loan(ctx context.Context, id string) (*loan.Record, error)
	MyRepayments(ctx context.Context) ([]loan.Repayment, error)
}

type Service struct {
	remote RemoteAPI
	log    *zap.Logger
}

func NewService(remote RemoteAPI, log *zap.Logger) *Service {
	return &Service{remote: remote, log: log}
}

// Buckets fetches the borrower's loans and partitions them for display.
// Transport failure degrades to three empty buckets instead of an error:
// the page always has a renderable state.
func (s *Service) Buckets(ctx context.Context) Buckets {
	records, err := s.remote.MyLoans(ctx)
	if err != nil {
		s.log.Warn("loan listing unavailable, rendering empty buckets", zap.Error(err))
		return Partition(nil)
	}
	return Partition(records)
}

// Detail fetches a single loan, mapping the remote 404 onto the domain error.
func (s *Service) Detail(ctx context.Context, id string) (*loan.Record, error) {
	rec, err := s.remote.Loan(ctx, id)
	if err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, loan.ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

// UpcomingRepayments lists scheduled repayments, oldest due first as the
// server returns them. Failure degrades to an empty schedule.
func (s *Service) UpcomingRepayments(ctx context.Context) []loan.Repayment {
	reps, err := s.remote.MyRepayments(ctx)
	if err != nil {
		s.log.Warn("repayment listing unavailable, rendering empty schedule", zap.Error(err))
		return []loan.Repayment{}
	}
	if reps == nil {
		reps = []loan.Repayment{}
	}
	return reps
}
