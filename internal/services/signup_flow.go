package services

import (
	"context"
	"log"
	"regexp"
	"time"

	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/domain"
)

// User-facing copy per failure kind. The wizard renders these inline next
// to the step that failed.
const (
	copyGeneric        = "Something went wrong. Please try again."
	copySessionExpired = "Your session expired. Please sign in again."

	copyEmailInvalid    = "Enter a valid email and a password of at least 8 characters."
	copyEmailTaken      = "An account with this email already exists."
	copyPasswordWeak    = "Password must be at least 8 characters."
	copyRoleMissing     = "Please pick a role to continue."
	copyRoleAlreadySet  = "Your role has already been set."
	copyRoleInvalid     = "That role isn't available."
	copyBirthdateNeeded = "Please enter your date of birth."
	copyBirthdateSet    = "Your birthdate has already been set."
	copyBirthdateBad    = "That doesn't look like a valid date."
	copyPhoneMissing    = "Please enter your phone number."
	copyPhoneInvalid    = "That phone number doesn't look right."
	copyTooManyAttempts = "Too many attempts. Please wait a bit and try again."
	copySMSFailed       = "We couldn't send the text message. Please try again."
	copyCodeLength      = "Enter the 6-character code we sent you."
	copyCodeExpired     = "That code is invalid or has expired."
	copyPhoneInUse      = "That phone number is already linked to another account."
	copyCodeFormat      = "That code doesn't look right."
	copyGuardianFields  = "Please fill in all guardian fields."
	copyGuardianInvalid = "Some guardian details look invalid."
)

var emailRx = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// SignupFlowImpl implements domain.SignupFlowService. Every transition is
// driven by the server-owned onboarding state, re-fetched after each
// mutating call; the only local branch is the under-13 age gate, which is
// a UX concern layered on top of the server's own guardian gating.
type SignupFlowImpl struct {
	api      domain.BackendClient
	sessions domain.SessionStore
	now      func() time.Time
}

// NewSignupFlow creates the wizard orchestrator.
func NewSignupFlow(api domain.BackendClient, sessions domain.SessionStore) *SignupFlowImpl {
	return &SignupFlowImpl{api: api, sessions: sessions, now: time.Now}
}

// Advance implements domain.SignupFlowService: asks the server which screen
// comes next. This is the single authority for forward navigation.
func (s *SignupFlowImpl) Advance(ctx context.Context, sessionID string) (domain.SignupStep, error) {
	pair, err := s.sessions.Tokens(ctx, sessionID)
	if err != nil {
		return domain.StepEmailPassword, nil
	}

	state, err := s.api.GetOnboardingStatus(ctx, pair.AccessToken)
	if err != nil {
		if domain.IsUnauthenticated(err) {
			return domain.StepEmailPassword, nil
		}
		return "", &domain.StepError{Step: domain.StepUserType, Copy: copyGeneric, Cause: err}
	}
	return domain.StepForState(state), nil
}

// Submit implements domain.SignupFlowService: validates, performs the
// step's server call and decides the next view.
func (s *SignupFlowImpl) Submit(ctx context.Context, sessionID string, step domain.SignupStep, in domain.StepInput) (*domain.StepResult, error) {
	switch step {
	case domain.StepEmailPassword:
		return s.submitCredentials(ctx, sessionID, in)
	case domain.StepUserType:
		return s.submitRole(ctx, sessionID, in)
	case domain.StepBirthdate:
		return s.submitBirthdate(ctx, sessionID, in)
	case domain.StepAgeVerification:
		// Informational screen, no server call.
		return &domain.StepResult{Next: domain.StepGuardianInfo}, nil
	case domain.StepPhoneNumber:
		return s.submitPhone(ctx, sessionID, in)
	case domain.StepPhoneVerification:
		return s.submitCode(ctx, sessionID, in)
	case domain.StepGuardianInfo:
		return s.submitGuardian(ctx, sessionID, in)
	case domain.StepGuardianPending:
		next, err := s.Advance(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		return &domain.StepResult{Next: next}, nil
	case domain.StepComplete:
		return &domain.StepResult{Next: domain.StepComplete, CloseWizard: true}, nil
	default:
		return nil, &domain.StepError{Step: domain.StepUserType, Copy: copyGeneric}
	}
}

func (s *SignupFlowImpl) submitCredentials(ctx context.Context, sessionID string, in domain.StepInput) (*domain.StepResult, error) {
	if !s.Validate(domain.StepEmailPassword, in) {
		return nil, &domain.StepError{Step: domain.StepEmailPassword, Copy: copyEmailInvalid}
	}

	result, err := s.api.Signup(ctx, in.Email, in.Password)
	if err != nil {
		return nil, s.stepError(domain.StepEmailPassword, err, map[int]string{
			409: copyEmailTaken,
			422: copyPasswordWeak,
		})
	}

	if err := s.sessions.SaveTokens(ctx, sessionID, domain.TokenPair{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	}); err != nil {
		return nil, &domain.StepError{Step: domain.StepEmailPassword, Copy: copyGeneric, Cause: err}
	}

	// The wizard closes here: the auth service's post-auth flow decides
	// where the freshly created account lands.
	return &domain.StepResult{CloseWizard: true}, nil
}

func (s *SignupFlowImpl) submitRole(ctx context.Context, sessionID string, in domain.StepInput) (*domain.StepResult, error) {
	if !s.Validate(domain.StepUserType, in) {
		return nil, &domain.StepError{Step: domain.StepUserType, Copy: copyRoleMissing}
	}

	if err := s.withToken(ctx, sessionID, func(token string) error {
		return s.api.SetRole(ctx, token, in.Role)
	}); err != nil {
		return nil, s.stepError(domain.StepUserType, err, map[int]string{
			409: copyRoleAlreadySet,
			422: copyRoleInvalid,
		})
	}
	return s.advanceResult(ctx, sessionID)
}

func (s *SignupFlowImpl) submitBirthdate(ctx context.Context, sessionID string, in domain.StepInput) (*domain.StepResult, error) {
	if !s.Validate(domain.StepBirthdate, in) {
		return nil, &domain.StepError{Step: domain.StepBirthdate, Copy: copyBirthdateNeeded}
	}
	birthdate, _ := time.Parse("2006-01-02", in.Birthdate)

	if err := s.withToken(ctx, sessionID, func(token string) error {
		return s.api.SetBirthdate(ctx, token, birthdate)
	}); err != nil {
		return nil, s.stepError(domain.StepBirthdate, err, map[int]string{
			409: copyBirthdateSet,
			422: copyBirthdateBad,
		})
	}

	// COPPA branch computed locally: under-13 users see the age notice and
	// the guardian flow without a server round-trip. The server enforces
	// its own guardian gating independently.
	if AgeAt(birthdate, s.now()) < 13 {
		return &domain.StepResult{Next: domain.StepAgeVerification}, nil
	}
	return s.advanceResult(ctx, sessionID)
}

func (s *SignupFlowImpl) submitPhone(ctx context.Context, sessionID string, in domain.StepInput) (*domain.StepResult, error) {
	if !s.Validate(domain.StepPhoneNumber, in) {
		return nil, &domain.StepError{Step: domain.StepPhoneNumber, Copy: copyPhoneMissing}
	}

	if err := s.withToken(ctx, sessionID, func(token string) error {
		return s.api.SendPhoneOTP(ctx, token, in.Phone)
	}); err != nil {
		return nil, s.stepError(domain.StepPhoneNumber, err, map[int]string{
			422: copyPhoneInvalid,
			429: copyTooManyAttempts,
			502: copySMSFailed,
		})
	}
	return &domain.StepResult{Next: domain.StepPhoneVerification}, nil
}

func (s *SignupFlowImpl) submitCode(ctx context.Context, sessionID string, in domain.StepInput) (*domain.StepResult, error) {
	if !s.Validate(domain.StepPhoneVerification, in) {
		return nil, &domain.StepError{Step: domain.StepPhoneVerification, Copy: copyCodeLength}
	}

	if err := s.withToken(ctx, sessionID, func(token string) error {
		return s.api.VerifyPhoneOTP(ctx, token, in.Phone, in.Code)
	}); err != nil {
		return nil, s.stepError(domain.StepPhoneVerification, err, map[int]string{
			400: copyCodeExpired,
			410: copyCodeExpired,
			409: copyPhoneInUse,
			422: copyCodeFormat,
		})
	}
	return s.advanceResult(ctx, sessionID)
}

func (s *SignupFlowImpl) submitGuardian(ctx context.Context, sessionID string, in domain.StepInput) (*domain.StepResult, error) {
	if !s.Validate(domain.StepGuardianInfo, in) {
		return nil, &domain.StepError{Step: domain.StepGuardianInfo, Copy: copyGuardianFields}
	}

	if err := s.withToken(ctx, sessionID, func(token string) error {
		return s.api.CreateGuardianRequest(ctx, token, in.Guardian)
	}); err != nil {
		return nil, s.stepError(domain.StepGuardianInfo, err, map[int]string{
			422: copyGuardianInvalid,
			429: copyTooManyAttempts,
			502: copySMSFailed,
		})
	}

	log.Printf("%s: session_id=%s timestamp=%s",
		domain.GuardianRequestEvent, sessionID, time.Now().UTC().Format(time.RFC3339))

	return &domain.StepResult{Next: domain.StepComplete}, nil
}

// Validate implements domain.SignupFlowService: the "Continue" gate. A UX
// guard only, the server re-validates everything independently.
func (s *SignupFlowImpl) Validate(step domain.SignupStep, in domain.StepInput) bool {
	switch step {
	case domain.StepEmailPassword:
		return emailRx.MatchString(in.Email) && len(in.Password) >= 8
	case domain.StepUserType:
		return in.Role != ""
	case domain.StepBirthdate:
		birthdate, err := time.Parse("2006-01-02", in.Birthdate)
		return err == nil && !birthdate.After(s.now())
	case domain.StepPhoneNumber:
		return in.Phone != ""
	case domain.StepPhoneVerification:
		// Length only: characters, not digits.
		return len(in.Code) == 6
	case domain.StepGuardianInfo:
		return in.Guardian.Complete()
	default:
		return true
	}
}

// Step paths by age branch: adults never see the guardian screens.
var (
	minorPath = []domain.SignupStep{
		domain.StepEmailPassword, domain.StepUserType, domain.StepBirthdate,
		domain.StepAgeVerification, domain.StepPhoneNumber, domain.StepPhoneVerification,
		domain.StepGuardianInfo, domain.StepGuardianPending,
	}
	adultPath = []domain.SignupStep{
		domain.StepEmailPassword, domain.StepUserType, domain.StepBirthdate,
		domain.StepPhoneNumber, domain.StepPhoneVerification,
	}
)

// Progress implements domain.SignupFlowService: position over the steps
// this user will actually visit, not a fixed constant.
func (s *SignupFlowImpl) Progress(step domain.SignupStep, adult bool) float64 {
	if step == domain.StepComplete {
		return 1
	}
	path := minorPath
	if adult {
		path = adultPath
	}
	for i, candidate := range path {
		if candidate == step {
			return float64(i+1) / float64(len(path)+1)
		}
	}
	return 0
}

func (s *SignupFlowImpl) advanceResult(ctx context.Context, sessionID string) (*domain.StepResult, error) {
	next, err := s.Advance(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &domain.StepResult{Next: next, CloseWizard: next == domain.StepComplete}, nil
}

func (s *SignupFlowImpl) withToken(ctx context.Context, sessionID string, call func(token string) error) error {
	pair, err := s.sessions.Tokens(ctx, sessionID)
	if err != nil {
		return err
	}
	return call(pair.AccessToken)
}

// stepError translates a server rejection into inline copy for the step.
// A dead session anywhere resets the wizard to credential capture.
func (s *SignupFlowImpl) stepError(step domain.SignupStep, err error, copyByStatus map[int]string) error {
	if domain.IsUnauthenticated(err) {
		return &domain.StepError{Step: domain.StepEmailPassword, Copy: copySessionExpired, Cause: err}
	}
	if copy, ok := copyByStatus[domain.StatusOf(err)]; ok {
		return &domain.StepError{Step: step, Copy: copy, Cause: err}
	}
	return &domain.StepError{Step: step, Copy: copyGeneric, Cause: err}
}

// AgeAt computes whole years between birthdate and now, adjusting when the
// birthday has not yet been reached this year.
func AgeAt(birthdate, now time.Time) int {
	years := now.Year() - birthdate.Year()
	anniversary := time.Date(now.Year(), birthdate.Month(), birthdate.Day(), 0, 0, 0, 0, now.Location())
	if now.Before(anniversary) {
		years--
	}
	return years
}
