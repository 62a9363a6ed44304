package domain

import (
	"testing"
)

func TestRole_Valid(t *testing.T) {
	tests := []struct {
		name  string
		role  Role
		valid bool
	}{
		{name: "student", role: RoleStudent, valid: true},
		{name: "educator", role: RoleEducator, valid: true},
		{name: "brand", role: RoleBrand, valid: true},
		{name: "creator", role: RoleCreator, valid: true},
		{name: "empty", role: Role(""), valid: false},
		{name: "unknown", role: Role("admin"), valid: false},
		{name: "wrong case", role: Role("Student"), valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.role.Valid(); got != tt.valid {
				t.Errorf("Valid(%q) = %t, want %t", tt.role, got, tt.valid)
			}
		})
	}
}

func TestStepForState(t *testing.T) {
	tests := []struct {
		name  string
		state OnboardingState
		step  SignupStep
	}{
		{name: "pending role", state: OnboardingPendingRole, step: StepUserType},
		{name: "pending birthdate", state: OnboardingPendingBirthdate, step: StepBirthdate},
		{name: "pending phone", state: OnboardingPendingPhone, step: StepPhoneNumber},
		{name: "pending guardian", state: OnboardingPendingGuardian, step: StepGuardianPending},
		{name: "ready", state: OnboardingReady, step: StepComplete},
		// Unrecognized server states fall back to the earliest onboarding
		// question rather than failing the wizard.
		{name: "unknown state", state: OnboardingState("PENDING_SOMETHING_NEW"), step: StepUserType},
		{name: "empty state", state: OnboardingState(""), step: StepUserType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StepForState(tt.state); got != tt.step {
				t.Errorf("StepForState(%q) = %q, want %q", tt.state, got, tt.step)
			}
		})
	}
}

func TestPreviousStep(t *testing.T) {
	tests := []struct {
		name string
		step SignupStep
		prev SignupStep
		ok   bool
	}{
		{name: "user-type back to credentials", step: StepUserType, prev: StepEmailPassword, ok: true},
		{name: "birthdate back to user-type", step: StepBirthdate, prev: StepUserType, ok: true},
		{name: "age-verification back to birthdate", step: StepAgeVerification, prev: StepBirthdate, ok: true},
		{name: "phone-verification back to phone-number", step: StepPhoneVerification, prev: StepPhoneNumber, ok: true},
		{name: "first step has no back", step: StepEmailPassword, ok: false},
		{name: "complete has no back", step: StepComplete, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev, ok := PreviousStep(tt.step)
			if ok != tt.ok {
				t.Fatalf("PreviousStep(%q) ok = %t, want %t", tt.step, ok, tt.ok)
			}
			if ok && prev != tt.prev {
				t.Errorf("PreviousStep(%q) = %q, want %q", tt.step, prev, tt.prev)
			}
		})
	}
}

func TestRouteForState(t *testing.T) {
	tests := []struct {
		name  string
		state OnboardingState
		route string
	}{
		{name: "pending role", state: OnboardingPendingRole, route: RouteOnboardingRole},
		{name: "pending birthdate", state: OnboardingPendingBirthdate, route: RouteOnboardingBirthdate},
		{name: "pending phone", state: OnboardingPendingPhone, route: RouteOnboardingPhone},
		{name: "pending guardian", state: OnboardingPendingGuardian, route: RouteOnboardingGuardian},
		{name: "ready falls through to dashboard", state: OnboardingReady, route: RouteDashboard},
		{name: "unknown falls through to dashboard", state: OnboardingState("whatever"), route: RouteDashboard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RouteForState(tt.state); got != tt.route {
				t.Errorf("RouteForState(%q) = %q, want %q", tt.state, got, tt.route)
			}
		})
	}
}

func TestHomeRouteForRole(t *testing.T) {
	tests := []struct {
		name  string
		role  Role
		route string
	}{
		{name: "student goes to drops", role: RoleStudent, route: RouteDashboardDrops},
		{name: "educator goes to drops", role: RoleEducator, route: RouteDashboardDrops},
		{name: "brand goes to profile", role: RoleBrand, route: RouteDashboardProfile},
		{name: "creator goes to profile", role: RoleCreator, route: RouteDashboardProfile},
		{name: "unknown role gets plain dashboard", role: Role("admin"), route: RouteDashboard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HomeRouteForRole(tt.role); got != tt.route {
				t.Errorf("HomeRouteForRole(%q) = %q, want %q", tt.role, got, tt.route)
			}
		})
	}
}

func TestDropFormData_Empty(t *testing.T) {
	tests := []struct {
		name  string
		data  *DropFormData
		empty bool
	}{
		{name: "nil", data: nil, empty: true},
		{name: "zero value", data: &DropFormData{}, empty: true},
		{name: "only drop type", data: &DropFormData{DropType: "quiz"}, empty: false},
		{name: "only extra", data: &DropFormData{Extra: map[string]string{"source": "landing"}}, empty: false},
		{name: "empty extra map still empty", data: &DropFormData{Extra: map[string]string{}}, empty: true},
		{
			name:  "full form",
			data:  &DropFormData{DropType: "quiz", Grade: "9", Subject: "math", RTITier: "2", LearningGoal: "fractions"},
			empty: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.data.Empty(); got != tt.empty {
				t.Errorf("Empty() = %t, want %t", got, tt.empty)
			}
		})
	}
}

func TestGuardianRequest_Complete(t *testing.T) {
	full := GuardianRequest{
		StudentFirstName: "Ada",
		StudentLastName:  "Lovelace",
		ParentFirstName:  "Anne",
		ParentLastName:   "Byron",
		ParentPhone:      "+15551234567",
	}

	tests := []struct {
		name     string
		mutate   func(g *GuardianRequest)
		complete bool
	}{
		{name: "all fields", mutate: func(g *GuardianRequest) {}, complete: true},
		{name: "missing student first name", mutate: func(g *GuardianRequest) { g.StudentFirstName = "" }},
		{name: "missing student last name", mutate: func(g *GuardianRequest) { g.StudentLastName = "" }},
		{name: "missing parent first name", mutate: func(g *GuardianRequest) { g.ParentFirstName = "" }},
		{name: "missing parent last name", mutate: func(g *GuardianRequest) { g.ParentLastName = "" }},
		{name: "missing parent phone", mutate: func(g *GuardianRequest) { g.ParentPhone = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := full
			tt.mutate(&g)
			if got := g.Complete(); got != tt.complete {
				t.Errorf("Complete() = %t, want %t", got, tt.complete)
			}
		})
	}

	t.Run("nil request", func(t *testing.T) {
		var g *GuardianRequest
		if g.Complete() {
			t.Error("nil request should not be complete")
		}
	})
}
