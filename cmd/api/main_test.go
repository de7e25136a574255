package main

import (
	"strings"
	"testing"
)

func TestRootCommands(t *testing.T) {
	want := map[string]bool{"serve": false, "report": false, "notify": false, "create-admin": false}
	for _, cmd := range rootCmd.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %s not registered", name)
		}
	}
}

func TestReportRejectsMalformedCompany(t *testing.T) {
	rootCmd.SetArgs([]string{"report", "--format", "csv", "--company", "not-a-uuid"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "invalid --company") {
		t.Fatalf("expected company validation error, got %v", err)
	}
}

func TestCreateAdminRequiresCredentials(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "")
	rootCmd.SetArgs([]string{"create-admin", "--email", "admin@example.com"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "required") {
		t.Fatalf("expected missing password error, got %v", err)
	}
}
