package domain

// OnboardingState is the server-owned onboarding enum. The gateway never
// caches it as ground truth: it is re-fetched after every mutating
// onboarding call and on cold start, because only the remote API knows the
// canonical next step.
type OnboardingState string

const (
	OnboardingReady            OnboardingState = "READY"
	OnboardingPendingRole      OnboardingState = "PENDING_ROLE"
	OnboardingPendingBirthdate OnboardingState = "PENDING_BIRTHDATE"
	OnboardingPendingPhone     OnboardingState = "PENDING_PHONE_VERIFICATION"
	OnboardingPendingGuardian  OnboardingState = "PENDING_GUARDIAN_INFO"
)

// SignupStep is the client-local view of the wizard. It is derived from
// OnboardingState via StepForState and never persisted.
type SignupStep string

const (
	StepEmailPassword     SignupStep = "email-password"
	StepUserType          SignupStep = "user-type"
	StepBirthdate         SignupStep = "birthdate"
	StepAgeVerification   SignupStep = "age-verification"
	StepPhoneNumber       SignupStep = "phone-number"
	StepPhoneVerification SignupStep = "phone-verification"
	StepGuardianInfo      SignupStep = "guardian-info"
	StepGuardianPending   SignupStep = "guardian-pending"
	StepComplete          SignupStep = "complete"
)

// StepForState maps the server enum to the wizard step shown next.
// Unrecognised states fall back to role selection rather than failing.
func StepForState(state OnboardingState) SignupStep {
	switch state {
	case OnboardingReady:
		return StepComplete
	case OnboardingPendingRole:
		return StepUserType
	case OnboardingPendingBirthdate:
		return StepBirthdate
	case OnboardingPendingPhone:
		return StepPhoneNumber
	case OnboardingPendingGuardian:
		return StepGuardianPending
	default:
		return StepUserType
	}
}

// PreviousStep is the fixed back-navigation map. Going back never calls the
// server and never undoes already-submitted state, it only changes the view.
func PreviousStep(step SignupStep) (SignupStep, bool) {
	switch step {
	case StepUserType:
		return StepEmailPassword, true
	case StepBirthdate:
		return StepUserType, true
	case StepAgeVerification:
		return StepBirthdate, true
	case StepPhoneNumber:
		return StepBirthdate, true
	case StepPhoneVerification:
		return StepPhoneNumber, true
	case StepGuardianInfo:
		return StepAgeVerification, true
	case StepGuardianPending:
		return StepGuardianInfo, true
	default:
		return step, false
	}
}

// Gateway routes the post-auth decision procedure can land on.
const (
	RouteDashboard           = "/dashboard"
	RouteDashboardDrops      = "/dashboard/drops"
	RouteDashboardProfile    = "/dashboard/profile"
	RouteLogin               = "/login"
	RouteOnboardingRole      = "/onboarding/role"
	RouteOnboardingBirthdate = "/onboarding/birthdate"
	RouteOnboardingPhone     = "/onboarding/phone"
	RouteOnboardingGuardian  = "/onboarding/guardian"
)

// RouteForState maps a pending onboarding state to its onboarding screen.
func RouteForState(state OnboardingState) string {
	switch state {
	case OnboardingPendingRole:
		return RouteOnboardingRole
	case OnboardingPendingBirthdate:
		return RouteOnboardingBirthdate
	case OnboardingPendingPhone:
		return RouteOnboardingPhone
	case OnboardingPendingGuardian:
		return RouteOnboardingGuardian
	default:
		return RouteDashboard
	}
}

// HomeRouteForRole maps a fully-onboarded user to their role home.
func HomeRouteForRole(role Role) string {
	switch role {
	case RoleStudent, RoleEducator:
		return RouteDashboardDrops
	case RoleBrand, RoleCreator:
		return RouteDashboardProfile
	default:
		return RouteDashboard
	}
}
