package agent

import (
	"fmt"
	"strings"

	"github.com/ovenline/pizza-chat/backend/internal/model/order"
)

// elicitationReply asks for whatever is still missing from the order. With no
// pizzas on the table it asks for an order instead.
func elicitationReply(state *order.State) string {
	if len(state.Pizzas) == 0 {
		reply := "I didn't catch a pizza order in that. What would you like? We have thin, classic and stuffed crusts."
		if len(state.Rejected) > 0 {
			reply += " I couldn't add: " + strings.Join(state.Rejected, ", ") + "."
		}
		return reply
	}

	questions := state.BuildQuestions()
	var b strings.Builder
	b.WriteString(orderLine(state))
	for _, q := range questions {
		b.WriteString(" ")
		b.WriteString(q)
	}
	if len(state.Rejected) > 0 {
		b.WriteString(" I couldn't add: ")
		b.WriteString(strings.Join(state.Rejected, ", "))
		b.WriteString(".")
	}
	return b.String()
}

// confirmationReply summarizes a complete order back to the caller.
func confirmationReply(state *order.State) string {
	lines := make([]string, 0, len(state.Pizzas))
	for _, p := range state.Pizzas {
		lines = append(lines, describePizza(p))
	}

	var b strings.Builder
	b.WriteString("Here's your order: ")
	b.WriteString(strings.Join(lines, "; "))
	b.WriteString(".")
	if len(state.Rejected) > 0 {
		b.WriteString(" I couldn't add: ")
		b.WriteString(strings.Join(state.Rejected, ", "))
		b.WriteString(".")
	}
	b.WriteString(" Shall I send it to the oven?")
	return b.String()
}

func orderLine(state *order.State) string {
	if len(state.Pizzas) == 1 {
		return "So far I have 1 pizza."
	}
	return fmt.Sprintf("So far I have %d pizzas.", len(state.Pizzas))
}

func describePizza(p order.Pizza) string {
	toppings := make([]string, len(p.Toppings))
	for i, t := range p.Toppings {
		toppings[i] = string(t)
	}
	size := strings.ReplaceAll(string(p.Size), "_", " ")
	return fmt.Sprintf("a %s %s-crust pizza with %s", size, p.Crust, strings.Join(toppings, ", "))
}
