package domain

import (
	"errors"
	"testing"
)

func TestParseStatus(t *testing.T) {
	for _, s := range Statuses {
		got, err := ParseStatus(string(s))
		if err != nil || got != s {
			t.Errorf("ParseStatus(%q) = %q, %v", s, got, err)
		}
	}
	for _, bad := range []string{"", "cotado", "EM_TRANSITO", "perdido"} {
		if _, err := ParseStatus(bad); !errors.Is(err, ErrValidation) {
			t.Errorf("ParseStatus(%q): expected validation error, got %v", bad, err)
		}
	}
}

func TestAllowedTarget(t *testing.T) {
	cases := []struct {
		role   Role
		target FreteStatus
		want   error
	}{
		{RoleCliente, StatusCancelado, nil},
		{RoleCliente, StatusEmTransito, ErrForbidden},
		{RoleCliente, StatusEntregue, ErrForbidden},
		{RoleMotorista, StatusEmTransito, nil},
		{RoleMotorista, StatusEntregue, nil},
		{RoleMotorista, StatusCancelado, ErrForbidden},
		{RoleMotorista, StatusAceito, ErrForbidden},
		{RoleAdmin, StatusSolicitado, nil},
		{RoleAdmin, StatusCancelado, nil},
		{RoleAdmin, StatusCotado, ErrValidation},
		{Role("gerente"), StatusAceito, ErrForbidden},
	}
	for _, tc := range cases {
		err := AllowedTarget(tc.role, tc.target)
		if tc.want == nil && err != nil {
			t.Errorf("%s -> %s: unexpected error %v", tc.role, tc.target, err)
		}
		if tc.want != nil && !errors.Is(err, tc.want) {
			t.Errorf("%s -> %s: expected %v, got %v", tc.role, tc.target, tc.want, err)
		}
	}
}

func TestCheckAdvance_DriverFromTerminal(t *testing.T) {
	for _, current := range []FreteStatus{StatusEntregue, StatusCancelado} {
		for _, target := range []FreteStatus{StatusEmTransito, StatusEntregue} {
			if err := CheckAdvance(RoleMotorista, current, target); !errors.Is(err, ErrInvalidState) {
				t.Errorf("%s -> %s: expected invalid state, got %v", current, target, err)
			}
		}
	}
	if err := CheckAdvance(RoleMotorista, StatusAceito, StatusEntregue); err != nil {
		t.Errorf("aceito -> entregue must be allowed, got %v", err)
	}
}

func TestCheckAdvance_AdminIgnoresTerminal(t *testing.T) {
	for _, current := range Statuses {
		for _, target := range Statuses {
			if err := CheckAdvance(RoleAdmin, current, target); err != nil {
				t.Errorf("admin %s -> %s: unexpected error %v", current, target, err)
			}
		}
	}
}

func TestCheckCancel(t *testing.T) {
	for _, ok := range []FreteStatus{StatusSolicitado, StatusAceito} {
		if err := CheckCancel(ok); err != nil {
			t.Errorf("cancel from %s: unexpected error %v", ok, err)
		}
	}

	seen := map[string]bool{}
	for _, blocked := range []FreteStatus{StatusEmTransito, StatusEntregue, StatusCancelado} {
		err := CheckCancel(blocked)
		if !errors.Is(err, ErrInvalidState) {
			t.Fatalf("cancel from %s: expected invalid state, got %v", blocked, err)
		}
		seen[err.Error()] = true
	}
	if len(seen) != 3 {
		t.Errorf("expected a distinct message per blocked status, got %v", seen)
	}
}

func TestTerminal(t *testing.T) {
	want := map[FreteStatus]bool{
		StatusSolicitado: false,
		StatusAceito:     false,
		StatusEmTransito: false,
		StatusEntregue:   true,
		StatusCancelado:  true,
	}
	for s, terminal := range want {
		if s.Terminal() != terminal {
			t.Errorf("%s.Terminal() = %v", s, s.Terminal())
		}
	}
}
