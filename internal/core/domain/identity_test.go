package domain

import "testing"

func TestParseRole_Variants(t *testing.T) {
	cases := map[string]Role{
		"job-seeker": RoleJobSeeker,
		"jobseeker":  RoleJobSeeker,
		"job_seeker": RoleJobSeeker,
		"JobSeeker":  RoleJobSeeker,
		"employer":   RoleEmployer,
		"Employers":  RoleEmployer,
		" employer ": RoleEmployer,
	}
	for in, want := range cases {
		got, err := ParseRole(in)
		if err != nil {
			t.Fatalf("ParseRole(%q) returned error: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseRole(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseRole_Unknown(t *testing.T) {
	for _, in := range []string{"", "admin", "recruiter"} {
		if _, err := ParseRole(in); err != ErrUnknownRole {
			t.Fatalf("ParseRole(%q): expected ErrUnknownRole, got %v", in, err)
		}
	}
}

func TestRole_DashboardPath(t *testing.T) {
	if got := RoleEmployer.DashboardPath(); got != "/employer/dashboard" {
		t.Fatalf("employer dashboard path = %q", got)
	}
	if got := RoleJobSeeker.DashboardPath(); got != "/job-seeker/dashboard" {
		t.Fatalf("job-seeker dashboard path = %q", got)
	}
	if got := Role("unknown").DashboardPath(); got != "/job-seeker/dashboard" {
		t.Fatalf("unknown role dashboard path = %q", got)
	}
}
