package service

import (
	"context"
	"fmt"

	"github.com/plushmarket/storefront/internal/cache"
	"github.com/plushmarket/storefront/internal/model"
	"github.com/plushmarket/storefront/internal/store"
)

// ApprovalService runs the product-moderation pipeline: any authenticated
// caller may submit a candidate product, only admins decide, and a decision
// is terminal. Making an approved product listable is the store's job; this
// service ends at recording the decision.
type ApprovalService struct {
	submissions store.SubmissionClient
	cache       *cache.Cache
}

func NewApprovalService(submissions store.SubmissionClient, c *cache.Cache) *ApprovalService {
	return &ApprovalService{submissions: submissions, cache: c}
}

func (s *ApprovalService) Submit(ctx context.Context, sess Session, product model.Product) (int64, error) {
	if !sess.Authenticated() {
		return 0, ErrNotAuthenticated
	}
	if err := validateProduct(product); err != nil {
		return 0, err
	}

	id, err := s.submissions.SubmitProduct(ctx, sess.Caller, product)
	if err != nil {
		return 0, fmt.Errorf("submit product: %w", err)
	}
	s.invalidate(ctx, sess.Caller)
	return id, nil
}

// Decide applies pending→approved or pending→rejected. A submission that
// already carries a terminal decision is never overwritten; the second call
// gets a state-conflict error and the status stands.
func (s *ApprovalService) Decide(ctx context.Context, sess Session, submissionID int64, status model.ApprovalStatus) error {
	if !sess.IsAdmin() {
		return ErrNotAuthorized
	}
	if !status.Terminal() {
		return fmt.Errorf("%w: cannot decide %q", ErrIllegalTransition, status)
	}

	submission, err := s.find(ctx, sess, submissionID)
	if err != nil {
		return err
	}
	if submission.ApprovalStatus.Terminal() {
		return ErrAlreadyDecided
	}

	if err := s.submissions.DecideSubmission(ctx, sess.Caller, submissionID, status); err != nil {
		return fmt.Errorf("decide submission: %w", err)
	}
	s.invalidate(ctx, submission.Seller)
	return nil
}

func (s *ApprovalService) ListMine(ctx context.Context, sess Session) ([]model.SellerProductSubmission, error) {
	if !sess.Authenticated() {
		return nil, ErrNotAuthenticated
	}

	if s.cache != nil {
		var subs []model.SellerProductSubmission
		if err := s.cache.Get(ctx, cache.MySubmissionsKey(sess.Caller), &subs); err == nil {
			return subs, nil
		}
	}

	subs, err := s.submissions.ListMySubmissions(ctx, sess.Caller)
	if err != nil {
		return nil, fmt.Errorf("list my submissions: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, cache.MySubmissionsKey(sess.Caller), subs)
	}
	return subs, nil
}

func (s *ApprovalService) ListBySeller(ctx context.Context, sess Session, seller string) ([]model.SellerProductSubmission, error) {
	if !sess.IsAdmin() {
		return nil, ErrNotAuthorized
	}
	subs, err := s.submissions.ListSellerSubmissions(ctx, sess.Caller, seller)
	if err != nil {
		return nil, fmt.Errorf("list seller submissions: %w", err)
	}
	return subs, nil
}

func (s *ApprovalService) ListAll(ctx context.Context, sess Session) ([]model.SellerProductSubmission, error) {
	if !sess.IsAdmin() {
		return nil, ErrNotAuthorized
	}

	if s.cache != nil {
		var subs []model.SellerProductSubmission
		if err := s.cache.Get(ctx, cache.AllSubmissionsKey(), &subs); err == nil {
			return subs, nil
		}
	}

	subs, err := s.submissions.ListAllSubmissions(ctx, sess.Caller)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, cache.AllSubmissionsKey(), subs)
	}
	return subs, nil
}

func (s *ApprovalService) find(ctx context.Context, sess Session, submissionID int64) (*model.SellerProductSubmission, error) {
	subs, err := s.submissions.ListAllSubmissions(ctx, sess.Caller)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	for i := range subs {
		if subs[i].ID == submissionID {
			return &subs[i], nil
		}
	}
	return nil, ErrSubmissionNotFound
}

func (s *ApprovalService) invalidate(ctx context.Context, seller string) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, cache.MySubmissionsKey(seller), cache.AllSubmissionsKey())
	}
}
