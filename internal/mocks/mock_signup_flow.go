package mocks

import (
	"context"

	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/domain"
)

// MockSignupFlow implements domain.SignupFlowService for handler tests
type MockSignupFlow struct {
	AdvanceFunc  func(ctx context.Context, sessionID string) (domain.SignupStep, error)
	SubmitFunc   func(ctx context.Context, sessionID string, step domain.SignupStep, in domain.StepInput) (*domain.StepResult, error)
	ValidateFunc func(step domain.SignupStep, in domain.StepInput) bool
	ProgressFunc func(step domain.SignupStep, adult bool) float64
}

// NewMockSignupFlow creates a new MockSignupFlow with default behaviors
func NewMockSignupFlow() *MockSignupFlow {
	return &MockSignupFlow{}
}

func (m *MockSignupFlow) Advance(ctx context.Context, sessionID string) (domain.SignupStep, error) {
	if m.AdvanceFunc != nil {
		return m.AdvanceFunc(ctx, sessionID)
	}
	return domain.StepEmailPassword, nil
}

func (m *MockSignupFlow) Submit(ctx context.Context, sessionID string, step domain.SignupStep, in domain.StepInput) (*domain.StepResult, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, sessionID, step, in)
	}
	return &domain.StepResult{Next: domain.StepUserType}, nil
}

func (m *MockSignupFlow) Validate(step domain.SignupStep, in domain.StepInput) bool {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(step, in)
	}
	return true
}

func (m *MockSignupFlow) Progress(step domain.SignupStep, adult bool) float64 {
	if m.ProgressFunc != nil {
		return m.ProgressFunc(step, adult)
	}
	return 0.5
}

// Compile-time interface compliance verification
var _ domain.SignupFlowService = (*MockSignupFlow)(nil)
