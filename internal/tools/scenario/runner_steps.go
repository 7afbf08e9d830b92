package scenario

import (
	"context"
	"errors"
	"fmt"

	"github.com/lucafour/pizzeria"
	"github.com/lucafour/pizzeria/cart"
	"github.com/lucafour/pizzeria/catalog/menu"
	"github.com/lucafour/pizzeria/order"
	"github.com/lucafour/pizzeria/pricing"
)

// scenarioState carries results between steps.
type scenarioState struct {
	lastAdd      cart.AddResult
	lastPrice    pricing.Result
	priced       bool
	lastOrderID  string
	lastRejected bool
}

func (r *Runner) runStep(ctx context.Context, state *scenarioState, step Step) error {
	switch step.Kind {
	case "load_menu":
		return r.runLoadMenuStep(ctx)
	case "add_to_cart":
		return r.runAddToCartStep(ctx, state, step)
	case "set_quantity":
		return r.runSetQuantityStep(ctx, step)
	case "increment":
		return r.runIncrementStep(ctx, step)
	case "decrement":
		return r.runDecrementStep(ctx, step)
	case "remove":
		return r.runRemoveStep(ctx, step)
	case "clear_cart":
		return r.svc.ClearCart(ctx)
	case "price":
		return r.runPriceStep(state)
	case "confirm":
		return r.runConfirmStep(ctx, state)
	case "toggle_favorite":
		return r.runToggleFavoriteStep(ctx, step)
	case "set_status":
		return r.runSetStatusStep(ctx, state, step)
	case "expect_quantity":
		return r.runExpectQuantityStep(state, step)
	case "expect_total":
		return r.runExpectTotalStep(state, step)
	case "expect_limit":
		return r.runExpectLimitStep(state, step)
	case "expect_order_count":
		return r.runExpectOrderCountStep(step)
	case "expect_rejected":
		return r.runExpectRejectedStep(state)
	default:
		return r.failf("unknown step kind %q", step.Kind)
	}
}

func (r *Runner) runLoadMenuStep(ctx context.Context) error {
	items, err := menu.DefaultMenu()
	if err != nil {
		return fmt.Errorf("default menu: %w", err)
	}
	if err := r.svc.LoadCatalog(ctx, items); err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	r.logf("menu loaded: %d item(s)", len(items))
	return nil
}

func (r *Runner) runAddToCartStep(ctx context.Context, state *scenarioState, step Step) error {
	itemID := requiredString(step.Args, "item_id")
	if itemID == "" {
		return r.failf("add_to_cart requires item_id")
	}
	quantity := optionalInt(step.Args, "quantity", 1)

	result, err := r.svc.AddToCart(ctx, itemID, quantity)
	if err != nil {
		return fmt.Errorf("add to cart: %w", err)
	}
	state.lastAdd = result
	r.logf("add_to_cart %s: added=%d quantity=%d limit=%s", itemID, result.Added, result.Quantity, result.Limit)
	return nil
}

func (r *Runner) runSetQuantityStep(ctx context.Context, step Step) error {
	itemID := requiredString(step.Args, "item_id")
	if itemID == "" {
		return r.failf("set_quantity requires item_id")
	}
	return r.svc.SetQuantity(ctx, itemID, optionalInt(step.Args, "quantity", 0))
}

func (r *Runner) runIncrementStep(ctx context.Context, step Step) error {
	itemID := requiredString(step.Args, "item_id")
	if itemID == "" {
		return r.failf("increment requires item_id")
	}
	_, err := r.svc.IncrementItem(ctx, itemID)
	return err
}

func (r *Runner) runDecrementStep(ctx context.Context, step Step) error {
	itemID := requiredString(step.Args, "item_id")
	if itemID == "" {
		return r.failf("decrement requires item_id")
	}
	return r.svc.DecrementItem(ctx, itemID)
}

func (r *Runner) runRemoveStep(ctx context.Context, step Step) error {
	itemID := requiredString(step.Args, "item_id")
	if itemID == "" {
		return r.failf("remove requires item_id")
	}
	return r.svc.RemoveFromCart(ctx, itemID)
}

func (r *Runner) runPriceStep(state *scenarioState) error {
	state.lastPrice = r.svc.PriceCart()
	state.priced = true
	r.logf("price: subtotal=%s discount=%s total=%s lines=%d",
		state.lastPrice.Subtotal, state.lastPrice.Discount, state.lastPrice.Total, len(state.lastPrice.Lines))
	return nil
}

func (r *Runner) runConfirmStep(ctx context.Context, state *scenarioState) error {
	confirmed, err := r.svc.ConfirmOrder(ctx)
	if err != nil {
		if errors.Is(err, pizzeria.ErrCartEmpty) {
			state.lastRejected = true
			r.logf("confirm rejected: %v", err)
			return nil
		}
		return fmt.Errorf("confirm order: %w", err)
	}
	state.lastRejected = false
	state.lastOrderID = confirmed.ID
	r.logf("order confirmed: id=%s total=%s", confirmed.ID, confirmed.Total)
	return nil
}

func (r *Runner) runToggleFavoriteStep(ctx context.Context, step Step) error {
	itemID := requiredString(step.Args, "item_id")
	if itemID == "" {
		return r.failf("toggle_favorite requires item_id")
	}
	marked, err := r.svc.ToggleFavorite(ctx, itemID)
	if err != nil {
		return fmt.Errorf("toggle favorite: %w", err)
	}
	r.logf("toggle_favorite %s: marked=%t", itemID, marked)
	return nil
}

func (r *Runner) runSetStatusStep(ctx context.Context, state *scenarioState, step Step) error {
	if state.lastOrderID == "" {
		return r.failf("set_status requires a confirmed order")
	}
	label := requiredString(step.Args, "status")
	status, err := order.StatusFromLabel(label)
	if err != nil {
		return r.failf("unknown status %q", label)
	}
	return r.svc.SetOrderStatus(ctx, state.lastOrderID, status)
}

func (r *Runner) runExpectQuantityStep(_ *scenarioState, step Step) error {
	itemID := requiredString(step.Args, "item_id")
	want := optionalInt(step.Args, "quantity", 0)
	got := r.svc.CartQuantity(itemID)
	if got != want {
		return r.assertf("expected quantity %d for %s, got %d", want, itemID, got)
	}
	return nil
}

func (r *Runner) runExpectTotalStep(state *scenarioState, step Step) error {
	if !state.priced {
		state.lastPrice = r.svc.PriceCart()
		state.priced = true
	}
	want := requiredString(step.Args, "total")
	got := state.lastPrice.Total.StringFixed(2)
	if got != want {
		return r.assertf("expected total %s, got %s", want, got)
	}
	return nil
}

func (r *Runner) runExpectLimitStep(state *scenarioState, step Step) error {
	want := requiredString(step.Args, "limit")
	got := state.lastAdd.Limit.String()
	if got != want {
		return r.assertf("expected limit %s, got %s", want, got)
	}
	return nil
}

func (r *Runner) runExpectOrderCountStep(step Step) error {
	want := optionalInt(step.Args, "count", 0)
	got := len(r.svc.Orders())
	if got != want {
		return r.assertf("expected %d order(s), got %d", want, got)
	}
	return nil
}

func (r *Runner) runExpectRejectedStep(state *scenarioState) error {
	if !state.lastRejected {
		return r.assertf("expected the last confirmation to be rejected")
	}
	return nil
}

func requiredString(args map[string]any, key string) string {
	if args == nil {
		return ""
	}
	value, _ := args[key].(string)
	return value
}

func optionalInt(args map[string]any, key string, fallback int) int {
	if args == nil {
		return fallback
	}
	switch v := args[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return fallback
	}
}
