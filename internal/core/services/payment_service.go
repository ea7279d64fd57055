package services

import (
	"context"
	"log"
	"strings"

	"fixithub/internal/adapters/persistence/models"
	"fixithub/internal/adapters/persistence/repositories"
	"fixithub/internal/core/domain"
	"fixithub/internal/core/policy"
	"fixithub/internal/pkg/pagination"

	"github.com/google/uuid"
)

// PaymentService records payments. Nothing is charged; a gateway would
// report back through UpdateStatus.
type PaymentService struct {
	paymentRepo repositories.PaymentRepository
}

// NewPaymentService creates a new payment service
func NewPaymentService(paymentRepo repositories.PaymentRepository) *PaymentService {
	return &PaymentService{paymentRepo: paymentRepo}
}

// CreatePaymentInput represents a payment record
type CreatePaymentInput struct {
	Amount        string `json:"amount" validate:"required"`
	Purpose       string `json:"purpose" validate:"required,oneof=job_commission subscription ad_payment"`
	ReferenceCode string `json:"reference_code" validate:"omitempty,max=100"`
	PaymentMethod string `json:"payment_method" validate:"required,max=50"`
}

// UpdatePaymentStatusInput represents an admin status change
type UpdatePaymentStatusInput struct {
	Status string `json:"status" validate:"required,oneof=successful failed"`
}

// Create records a payment for the caller
func (s *PaymentService) Create(ctx context.Context, p domain.Principal, input *CreatePaymentInput) (*models.PaymentResponse, error) {
	if err := authorize(p, policy.CreatePayment, &policy.Resource{OwnerID: p.ID}); err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	amount, err := domain.ParseAmount(input.Amount)
	if err != nil || amount <= 0 {
		return nil, domain.NewValidationError("Validation failed", map[string]string{
			"amount": "Enter a positive amount with at most 2 decimal places",
		})
	}

	reference := strings.TrimSpace(input.ReferenceCode)
	if reference == "" {
		reference = uuid.New().String()
	}

	payment := &models.Payment{
		UserID:        p.ID,
		AmountMinor:   amount,
		Purpose:       input.Purpose,
		ReferenceCode: reference,
		PaymentMethod: input.PaymentMethod,
		Status:        domain.PaymentPending,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	log.Printf("💳 Payment #%d of %s recorded for user %d", payment.ID, domain.FormatAmount(amount), p.ID)
	return payment.ToResponse(), nil
}

// Get returns one payment to its owner or an admin
func (s *PaymentService) Get(ctx context.Context, p domain.Principal, id uint) (*models.PaymentResponse, error) {
	if err := authorize(p, policy.ViewPayment, nil); err != nil {
		return nil, err
	}

	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(p, policy.ViewPayment, &policy.Resource{OwnerID: payment.UserID}); err != nil {
		return nil, err
	}
	return payment.ToResponse(), nil
}

// List lists the caller's payments; admins see all
func (s *PaymentService) List(ctx context.Context, p domain.Principal, page, limit int) (*pagination.Response, error) {
	if err := authorize(p, policy.ViewPayment, nil); err != nil {
		return nil, err
	}

	var owner *uint
	if !p.IsAdmin() {
		owner = uintPtr(p.ID)
	}

	params := pagination.New(page, limit)
	payments, total, err := s.paymentRepo.List(ctx, owner, params.Offset, params.Limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.PaymentResponse, len(payments))
	for i, payment := range payments {
		responses[i] = payment.ToResponse()
	}

	return pagination.NewResponse(responses, params, total), nil
}

// UpdateStatus marks a payment successful or failed (admin only)
func (s *PaymentService) UpdateStatus(ctx context.Context, p domain.Principal, id uint, input *UpdatePaymentStatusInput) (*models.PaymentResponse, error) {
	if err := authorize(p, policy.SetPaymentState, nil); err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment.Status == input.Status {
		return payment.ToResponse(), nil
	}

	if err := s.paymentRepo.UpdateStatus(ctx, id, input.Status); err != nil {
		return nil, err
	}
	payment.Status = input.Status

	log.Printf("💳 Payment #%d marked %s by admin %d", payment.ID, payment.Status, p.ID)
	return payment.ToResponse(), nil
}
