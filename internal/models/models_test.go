package models

import (
	"errors"
	"testing"
	"time"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		name    string
		current Status
		action  Action
		want    Status
		wantErr bool
	}{
		{
			name:    "suspend registered operator",
			current: StatusRegistered,
			action:  ActionSuspend,
			want:    StatusSuspended,
		},
		{
			name:    "reactivate suspended operator",
			current: StatusSuspended,
			action:  ActionReactivate,
			want:    StatusRegistered,
		},
		{
			name:    "suspend already suspended",
			current: StatusSuspended,
			action:  ActionSuspend,
			wantErr: true,
		},
		{
			name:    "reactivate registered",
			current: StatusRegistered,
			action:  ActionReactivate,
			wantErr: true,
		},
		{
			name:    "suspend invited operator",
			current: StatusInvited,
			action:  ActionSuspend,
			wantErr: true,
		},
		{
			name:    "reactivate invited operator",
			current: StatusInvited,
			action:  ActionReactivate,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Transition(tt.current, tt.action)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Transition(%s, %s) error = %v, wantErr %v", tt.current, tt.action, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("Transition(%s, %s) error = %v, want ErrInvalidTransition", tt.current, tt.action, err)
			}
			if got != tt.want {
				t.Errorf("Transition(%s, %s) = %v, want %v", tt.current, tt.action, got, tt.want)
			}
		})
	}
}

func TestParseSource(t *testing.T) {
	if _, err := ParseSource("KUPI"); err != nil {
		t.Errorf("ParseSource(KUPI) error = %v", err)
	}
	if _, err := ParseSource("CARMA"); err != nil {
		t.Errorf("ParseSource(CARMA) error = %v", err)
	}
	if _, err := ParseSource("kupi"); err == nil {
		t.Error("ParseSource(kupi) should reject lowercase input")
	}
	if _, err := ParseSource(""); err == nil {
		t.Error("ParseSource(\"\") should fail")
	}
}

func TestParseAction(t *testing.T) {
	if _, err := ParseAction("SUSPEND"); err != nil {
		t.Errorf("ParseAction(SUSPEND) error = %v", err)
	}
	if _, err := ParseAction("REACTIVATE"); err != nil {
		t.Errorf("ParseAction(REACTIVATE) error = %v", err)
	}
	if _, err := ParseAction("DELETE"); err == nil {
		t.Error("ParseAction(DELETE) should fail")
	}
}

func TestOperatorSessionIsExpired(t *testing.T) {
	session := &OperatorSession{ExpiresAt: time.Now().Add(48 * time.Hour)}
	if session.IsExpired() {
		t.Error("session expiring in 48h should not be expired")
	}

	session.ExpiresAt = time.Now().Add(-time.Minute)
	if !session.IsExpired() {
		t.Error("session that expired a minute ago should be expired")
	}
}

func TestUserIsAdmin(t *testing.T) {
	admin := &User{Role: RoleAdmin}
	if !admin.IsAdmin() {
		t.Error("ADMIN role should report IsAdmin")
	}
	operator := &User{Role: RoleOperator}
	if operator.IsAdmin() {
		t.Error("OPERATOR role should not report IsAdmin")
	}
}
