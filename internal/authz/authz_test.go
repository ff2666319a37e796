package authz

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckDecisionTable(t *testing.T) {
	clubA := "484c2b24-9f6a-4c1e-8b2d-1a7e3c5d9f01"
	clubB := "ff82f1ca-3d48-4b7e-a1c2-6e9b0d4f8a22"

	universityAdmin := Principal{Kind: UniversityAdmin, ID: "adm_1", Username: "admin"}
	clubAdminA := Principal{Kind: ClubAdmin, ID: "adm_2", Username: "aryavrat_admin", ClubID: clubA}
	student := Principal{Kind: Student, ID: "stu_1", Enrollment: "EN-1001"}

	tests := []struct {
		name        string
		principal   Principal
		route       RouteClass
		target      Target
		wantAllowed bool
		wantReason  Reason
		wantStatus  int
	}{
		{
			name:        "anonymous on public read",
			principal:   Nobody,
			route:       PublicRead,
			wantAllowed: true,
			wantStatus:  http.StatusOK,
		},
		{
			name:       "anonymous on club admin route",
			principal:  Nobody,
			route:      ClubAdminOnly,
			target:     Target{ClubID: clubA},
			wantReason: ReasonUnauthenticated,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "anonymous on university route",
			principal:  Nobody,
			route:      UniversityAdminOnly,
			wantReason: ReasonUnauthenticated,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "anonymous on student write",
			principal:  Nobody,
			route:      StudentWrite,
			target:     Target{Enrollment: "EN-1001"},
			wantReason: ReasonUnauthenticated,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:        "university admin on university route",
			principal:   universityAdmin,
			route:       UniversityAdminOnly,
			wantAllowed: true,
			wantStatus:  http.StatusOK,
		},
		{
			name:       "club admin on university route",
			principal:  clubAdminA,
			route:      UniversityAdminOnly,
			wantReason: ReasonClubAdminMustUseClubLogin,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "university admin on club admin route",
			principal:  universityAdmin,
			route:      ClubAdminOnly,
			target:     Target{ClubID: clubA},
			wantReason: ReasonUniversityAdminForbidden,
			wantStatus: http.StatusForbidden,
		},
		{
			name:        "club admin on own tenant",
			principal:   clubAdminA,
			route:       ClubAdminOnly,
			target:      Target{ClubID: clubA},
			wantAllowed: true,
			wantStatus:  http.StatusOK,
		},
		{
			name:       "club admin on another tenant",
			principal:  clubAdminA,
			route:      ClubAdminOnly,
			target:     Target{ClubID: clubB},
			wantReason: ReasonCrossTenantForbidden,
			wantStatus: http.StatusForbidden,
		},
		{
			name:        "student on public read",
			principal:   student,
			route:       PublicRead,
			wantAllowed: true,
			wantStatus:  http.StatusOK,
		},
		{
			name:       "student on club admin route",
			principal:  student,
			route:      ClubAdminOnly,
			target:     Target{ClubID: clubA},
			wantReason: ReasonForbidden,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "student on university route",
			principal:  student,
			route:      UniversityAdminOnly,
			wantReason: ReasonForbidden,
			wantStatus: http.StatusForbidden,
		},
		{
			name:        "student write on own enrollment",
			principal:   student,
			route:       StudentWrite,
			target:      Target{Enrollment: "EN-1001"},
			wantAllowed: true,
			wantStatus:  http.StatusOK,
		},
		{
			name:       "student write on another enrollment",
			principal:  student,
			route:      StudentWrite,
			target:     Target{Enrollment: "EN-2002"},
			wantReason: ReasonIdentityMismatch,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "university admin on student write",
			principal:  universityAdmin,
			route:      StudentWrite,
			target:     Target{Enrollment: "EN-1001"},
			wantReason: ReasonForbidden,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "club admin on student write",
			principal:  clubAdminA,
			route:      StudentWrite,
			target:     Target{Enrollment: "EN-1001"},
			wantReason: ReasonForbidden,
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := Check(tt.principal, tt.route, tt.target)

			assert.Equal(t, tt.wantAllowed, decision.Allowed)
			assert.Equal(t, tt.wantStatus, decision.Status())
			if !tt.wantAllowed {
				assert.Equal(t, tt.wantReason, decision.Reason)
				assert.NotEmpty(t, decision.Message)
			}
		})
	}
}

func TestCrossTenantMessageNamesPermission(t *testing.T) {
	p := Principal{Kind: ClubAdmin, ID: "adm_2", ClubID: "484c2b24-9f6a-4c1e-8b2d-1a7e3c5d9f01"}
	decision := Check(p, ClubAdminOnly, Target{ClubID: "ff82f1ca-3d48-4b7e-a1c2-6e9b0d4f8a22"})

	assert.False(t, decision.Allowed)
	assert.Contains(t, decision.Message, "permission")
}

func TestCreateGateRejectsBeforeResourceExists(t *testing.T) {
	// A create is gated on the body clubId even though no row exists yet.
	ieeeAdmin := Principal{Kind: ClubAdmin, ID: "adm_3", Username: "ieee_admin", ClubID: "f54a2526-7b1c-4e8d-9a3f-2c6d0e1b5a77"}
	decision := Check(ieeeAdmin, ClubAdminOnly, Target{ClubID: "cc71501e-4f2a-48b9-b3e6-8d1a9c0f7e44"})

	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonCrossTenantForbidden, decision.Reason)
	assert.Equal(t, http.StatusForbidden, decision.Status())
}

func TestDecisionMetricReason(t *testing.T) {
	allowDecision := Check(Nobody, PublicRead, Target{})
	assert.Equal(t, "allow", allowDecision.MetricReason())

	denyDecision := Check(Nobody, ClubAdminOnly, Target{ClubID: "c1"})
	assert.Equal(t, "unauthenticated", denyDecision.MetricReason())
}

func TestKindAndRouteClassNames(t *testing.T) {
	assert.Equal(t, "university_admin", UniversityAdmin.String())
	assert.Equal(t, "club_admin", ClubAdmin.String())
	assert.Equal(t, "student", Student.String())
	assert.Equal(t, "anonymous", Anonymous.String())

	assert.Equal(t, "public_read", PublicRead.String())
	assert.Equal(t, "university_admin_only", UniversityAdminOnly.String())
	assert.Equal(t, "club_admin_only", ClubAdminOnly.String())
	assert.Equal(t, "student_write", StudentWrite.String())
}
