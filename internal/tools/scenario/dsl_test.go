package scenario

import (
	"os"
	"path/filepath"
	"testing"
)

func writeScenarioFile(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.lua")
	if err := os.WriteFile(path, []byte(script), 0o600); err != nil {
		t.Fatalf("write scenario file: %v", err)
	}
	return path
}

func TestLoadScenarioFromFile(t *testing.T) {
	path := writeScenarioFile(t, `
local s = Scenario.new("lunch rush")
s:load_menu()
s:add_to_cart("margherita", 3)
s:expect_quantity("margherita", 3)
s:price()
s:expect_total("22.95")
s:confirm()
s:expect_order_count(1)
return s
`)

	scenario, err := LoadScenarioFromFile(path)
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}
	if scenario.Name != "lunch rush" {
		t.Fatalf("expected name %q, got %q", "lunch rush", scenario.Name)
	}
	if len(scenario.Steps) != 7 {
		t.Fatalf("expected 7 steps, got %d", len(scenario.Steps))
	}

	add := scenario.Steps[1]
	if add.Kind != "add_to_cart" {
		t.Fatalf("expected add_to_cart, got %s", add.Kind)
	}
	if add.Args["item_id"] != "margherita" || add.Args["quantity"] != 3 {
		t.Fatalf("unexpected args: %v", add.Args)
	}

	total := scenario.Steps[4]
	if total.Kind != "expect_total" || total.Args["total"] != "22.95" {
		t.Fatalf("unexpected step: %+v", total)
	}
}

func TestLoadScenarioDefaultsNameFromFile(t *testing.T) {
	path := writeScenarioFile(t, `
local s = Scenario.new()
s:load_menu()
return s
`)

	scenario, err := LoadScenarioFromFile(path)
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}
	if scenario.Name != "scenario" {
		t.Fatalf("expected file-derived name, got %q", scenario.Name)
	}
}

func TestLoadScenarioDefaultQuantity(t *testing.T) {
	path := writeScenarioFile(t, `
local s = Scenario.new("defaults")
s:add_to_cart("margherita")
return s
`)

	scenario, err := LoadScenarioFromFile(path)
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}
	if scenario.Steps[0].Args["quantity"] != 1 {
		t.Fatalf("expected default quantity 1, got %v", scenario.Steps[0].Args["quantity"])
	}
}

func TestLoadScenarioRejectsBadScripts(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"syntax error", `this is not lua`},
		{"runtime error", `error("boom")`},
		{"wrong return", `return 42`},
		{"no return", `local s = Scenario.new("x")`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScenarioFile(t, tt.script)
			if _, err := LoadScenarioFromFile(path); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadScenarioMissingFile(t *testing.T) {
	if _, err := LoadScenarioFromFile(filepath.Join(t.TempDir(), "missing.lua")); err == nil {
		t.Fatal("expected error")
	}
}
