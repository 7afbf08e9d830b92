// Package scenario executes Lua storefront scenarios against an
// in-process service.
package scenario

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Shopify/go-lua"
)

const scenarioTypeName = "scenario"

// Scenario is a named sequence of storefront steps.
type Scenario struct {
	Name  string
	Steps []Step
}

// Step is a single storefront action or expectation.
type Step struct {
	Kind string
	Args map[string]any
}

// LoadScenarioFromFile evaluates a Lua script that returns a Scenario.
func LoadScenarioFromFile(path string) (*Scenario, error) {
	state := lua.NewState()
	lua.OpenLibraries(state)

	registerScenarioType(state)
	registerScenarioConstructor(state)

	if err := lua.LoadFile(state, path, ""); err != nil {
		return nil, fmt.Errorf("load lua: %w", err)
	}
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return nil, fmt.Errorf("run lua: %w", err)
	}

	if state.TypeOf(-1) != lua.TypeUserData {
		state.Pop(1)
		return nil, fmt.Errorf("scenario script must return Scenario")
	}
	ud := state.ToUserData(-1)
	state.Pop(1)
	scenario, ok := ud.(*Scenario)
	if !ok || scenario == nil {
		return nil, fmt.Errorf("scenario script returned invalid Scenario")
	}
	if strings.TrimSpace(scenario.Name) == "" {
		scenario.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return scenario, nil
}

func registerScenarioType(state *lua.State) {
	lua.NewMetaTable(state, scenarioTypeName)
	state.NewTable()
	lua.SetFunctions(state, scenarioMethods, 0)
	state.SetField(-2, "__index")
	state.Pop(1)
}

func registerScenarioConstructor(state *lua.State) {
	state.NewTable()
	lua.SetFunctions(state, scenarioConstructor, 0)
	state.SetGlobal("Scenario")
}

var scenarioConstructor = []lua.RegistryFunction{
	{Name: "new", Function: scenarioNew},
}

func scenarioNew(state *lua.State) int {
	name := lua.OptString(state, 1, "")
	scenario := &Scenario{Name: name}
	state.PushUserData(scenario)
	lua.SetMetaTableNamed(state, scenarioTypeName)
	return 1
}

var scenarioMethods = []lua.RegistryFunction{
	{Name: "load_menu", Function: scenarioLoadMenu},
	{Name: "add_to_cart", Function: scenarioAddToCart},
	{Name: "set_quantity", Function: scenarioSetQuantity},
	{Name: "increment", Function: scenarioIncrement},
	{Name: "decrement", Function: scenarioDecrement},
	{Name: "remove", Function: scenarioRemove},
	{Name: "clear_cart", Function: scenarioClearCart},
	{Name: "price", Function: scenarioPrice},
	{Name: "confirm", Function: scenarioConfirm},
	{Name: "toggle_favorite", Function: scenarioToggleFavorite},
	{Name: "set_status", Function: scenarioSetStatus},
	{Name: "expect_quantity", Function: scenarioExpectQuantity},
	{Name: "expect_total", Function: scenarioExpectTotal},
	{Name: "expect_limit", Function: scenarioExpectLimit},
	{Name: "expect_order_count", Function: scenarioExpectOrderCount},
	{Name: "expect_rejected", Function: scenarioExpectRejected},
}

func checkScenario(state *lua.State) *Scenario {
	ud := lua.CheckUserData(state, 1, scenarioTypeName)
	scenario, ok := ud.(*Scenario)
	if !ok || scenario == nil {
		lua.Errorf(state, "expected scenario userdata")
		return nil
	}
	return scenario
}

func appendStep(scenario *Scenario, kind string, args map[string]any) {
	scenario.Steps = append(scenario.Steps, Step{Kind: kind, Args: args})
}

func scenarioLoadMenu(state *lua.State) int {
	scenario := checkScenario(state)
	appendStep(scenario, "load_menu", nil)
	return 0
}

func scenarioAddToCart(state *lua.State) int {
	scenario := checkScenario(state)
	itemID := lua.CheckString(state, 2)
	quantity := lua.OptInteger(state, 3, 1)
	appendStep(scenario, "add_to_cart", map[string]any{"item_id": itemID, "quantity": quantity})
	return 0
}

func scenarioSetQuantity(state *lua.State) int {
	scenario := checkScenario(state)
	itemID := lua.CheckString(state, 2)
	quantity := lua.CheckInteger(state, 3)
	appendStep(scenario, "set_quantity", map[string]any{"item_id": itemID, "quantity": quantity})
	return 0
}

func scenarioIncrement(state *lua.State) int {
	scenario := checkScenario(state)
	itemID := lua.CheckString(state, 2)
	appendStep(scenario, "increment", map[string]any{"item_id": itemID})
	return 0
}

func scenarioDecrement(state *lua.State) int {
	scenario := checkScenario(state)
	itemID := lua.CheckString(state, 2)
	appendStep(scenario, "decrement", map[string]any{"item_id": itemID})
	return 0
}

func scenarioRemove(state *lua.State) int {
	scenario := checkScenario(state)
	itemID := lua.CheckString(state, 2)
	appendStep(scenario, "remove", map[string]any{"item_id": itemID})
	return 0
}

func scenarioClearCart(state *lua.State) int {
	scenario := checkScenario(state)
	appendStep(scenario, "clear_cart", nil)
	return 0
}

func scenarioPrice(state *lua.State) int {
	scenario := checkScenario(state)
	appendStep(scenario, "price", nil)
	return 0
}

func scenarioConfirm(state *lua.State) int {
	scenario := checkScenario(state)
	appendStep(scenario, "confirm", nil)
	return 0
}

func scenarioToggleFavorite(state *lua.State) int {
	scenario := checkScenario(state)
	itemID := lua.CheckString(state, 2)
	appendStep(scenario, "toggle_favorite", map[string]any{"item_id": itemID})
	return 0
}

func scenarioSetStatus(state *lua.State) int {
	scenario := checkScenario(state)
	status := lua.CheckString(state, 2)
	appendStep(scenario, "set_status", map[string]any{"status": status})
	return 0
}

func scenarioExpectQuantity(state *lua.State) int {
	scenario := checkScenario(state)
	itemID := lua.CheckString(state, 2)
	quantity := lua.CheckInteger(state, 3)
	appendStep(scenario, "expect_quantity", map[string]any{"item_id": itemID, "quantity": quantity})
	return 0
}

func scenarioExpectTotal(state *lua.State) int {
	scenario := checkScenario(state)
	total := lua.CheckString(state, 2)
	appendStep(scenario, "expect_total", map[string]any{"total": total})
	return 0
}

func scenarioExpectLimit(state *lua.State) int {
	scenario := checkScenario(state)
	limit := lua.CheckString(state, 2)
	appendStep(scenario, "expect_limit", map[string]any{"limit": limit})
	return 0
}

func scenarioExpectOrderCount(state *lua.State) int {
	scenario := checkScenario(state)
	count := lua.CheckInteger(state, 2)
	appendStep(scenario, "expect_order_count", map[string]any{"count": count})
	return 0
}

func scenarioExpectRejected(state *lua.State) int {
	scenario := checkScenario(state)
	appendStep(scenario, "expect_rejected", nil)
	return 0
}
