package agent

import (
	"context"
	"strings"
	"testing"

	"github.com/ovenline/pizza-chat/backend/internal/model/order"
)

func completePizza() order.Pizza {
	return order.Pizza{
		Crust:    order.CrustStuffed,
		Size:     order.SizeExtraLarge,
		Toppings: []order.Topping{"cheese", "pepperoni"},
	}
}

func TestElicitationReplyAsksForMissingFields(t *testing.T) {
	state := order.NewState([]order.Pizza{{Toppings: []order.Topping{"ham"}}}, nil, nil, nil)

	reply := elicitationReply(state)
	if !strings.Contains(reply, "What crust for pizza #1?") {
		t.Fatalf("expected crust question, got %q", reply)
	}
	if !strings.Contains(reply, "What size for pizza #1?") {
		t.Fatalf("expected size question, got %q", reply)
	}
}

func TestElicitationReplyWithoutPizzas(t *testing.T) {
	state := order.NewState(nil, []string{"a hamburger"}, nil, nil)

	reply := elicitationReply(state)
	if !strings.Contains(reply, "didn't catch a pizza order") {
		t.Fatalf("expected re-prompt, got %q", reply)
	}
	if !strings.Contains(reply, "a hamburger") {
		t.Fatalf("expected rejected item mentioned, got %q", reply)
	}
}

func TestConfirmationReplySummarizesOrder(t *testing.T) {
	state := order.NewState([]order.Pizza{completePizza()}, nil, nil, nil)

	reply := confirmationReply(state)
	if !strings.Contains(reply, "extra large stuffed-crust pizza") {
		t.Fatalf("expected readable summary, got %q", reply)
	}
	if !strings.Contains(reply, "cheese, pepperoni") {
		t.Fatalf("expected toppings listed, got %q", reply)
	}
}

func TestRouteAfterExtract(t *testing.T) {
	ctx := context.Background()

	ex := &exchange{State: order.NewState(nil, nil, nil, nil)}
	node, err := routeAfterExtract(ctx, ex)
	if err != nil {
		t.Fatalf("route err: %v", err)
	}
	if node != nodeElicit {
		t.Fatalf("empty order should elicit, got %s", node)
	}

	ex = &exchange{State: order.NewState([]order.Pizza{{Toppings: []order.Topping{"ham"}}}, nil, nil, nil)}
	if node, _ = routeAfterExtract(ctx, ex); node != nodeElicit {
		t.Fatalf("incomplete pizza should elicit, got %s", node)
	}

	ex = &exchange{State: order.NewState([]order.Pizza{completePizza()}, nil, nil, nil)}
	if node, _ = routeAfterExtract(ctx, ex); node != nodeConfirm {
		t.Fatalf("complete order should confirm, got %s", node)
	}
}
