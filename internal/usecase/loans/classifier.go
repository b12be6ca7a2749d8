package loans

import "github.com/the-chronicles/Creditflow/internal/domain/loan"

// Bucket is the status-derived display partition of a borrower's loans.
type Bucket string

const (
	BucketPending Bucket = "pending"
	BucketActive  Bucket = "active"
	BucketPast    Bucket = "past"
)

// Classify maps a record's status to its display bucket. The second return
// is false for a missing or unrecognized status: such records are dropped
// from every bucket. The drop is a deliberate lenient policy toward
// malformed server data, made explicit here so it stays testable.
func Classify(r loan.Record) (Bucket, bool) {
	switch r.Status {
	case loan.StatusPending:
		return BucketPending, true
	case loan.StatusApproved, loan.StatusPaid:
		return BucketActive, true
	case loan.StatusCompleted, loan.StatusRejected:
		return BucketPast, true
	}
	return "", false
}

// Buckets is the partition result. Slices are always non-nil so an empty
// state still renders as an empty list.
type Buckets struct {
	Pending []loan.Record `json:"pendingLoans"`
	Active  []loan.Record `json:"activeLoans"`
	Past    []loan.Record `json:"pastLoans"`
}

// Partition splits records into three disjoint buckets. Total over any
// input: every record lands in exactly one bucket or is dropped, never
// duplicated.
func Partition(records []loan.Record) Buckets {
	b := Buckets{
		Pending: []loan.Record{},
		Active:  []loan.Record{},
		Past:    []loan.Record{},
	}
	for _, r := range records {
		bucket, ok := Classify(r)
		if !ok {
			continue
		}
		switch bucket {
		case BucketPending:
			b.Pending = append(b.Pending, r)
		case BucketActive:
			b.Active = append(b.Active, r)
		case BucketPast:
			b.Past = append(b.Past, r)
		}
	}
	return b
}
