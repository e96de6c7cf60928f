package order

import "testing"

func TestNewStateDefaultsCheese(t *testing.T) {
	state := NewState([]Pizza{{Crust: CrustThin, Size: SizeLarge}}, nil, nil, nil)

	if len(state.Pizzas) != 1 {
		t.Fatalf("expected 1 pizza, got %d", len(state.Pizzas))
	}
	toppings := state.Pizzas[0].Toppings
	if len(toppings) != 1 || toppings[0] != ToppingCheese {
		t.Fatalf("expected cheese default, got %v", toppings)
	}
}

func TestNewStateKeepsExistingCheese(t *testing.T) {
	state := NewState([]Pizza{{Toppings: []Topping{"mushrooms", "cheese"}}}, nil, nil, nil)

	toppings := state.Pizzas[0].Toppings
	if len(toppings) != 2 {
		t.Fatalf("expected toppings untouched, got %v", toppings)
	}
}

func TestNewStateCapsToppings(t *testing.T) {
	state := NewState([]Pizza{{Toppings: []Topping{
		"pepperoni", "mushrooms", "onions", "sausage", "bacon", "cheese", "ham",
	}}}, nil, nil, nil)

	if got := len(state.Pizzas[0].Toppings); got != MaxToppings {
		t.Fatalf("expected %d toppings, got %d", MaxToppings, got)
	}
}

func TestNewStateCapKeepsCheeseDefault(t *testing.T) {
	state := NewState([]Pizza{{Toppings: []Topping{
		"pepperoni", "mushrooms", "onions", "sausage", "bacon",
	}}}, nil, nil, nil)

	toppings := state.Pizzas[0].Toppings
	if len(toppings) != MaxToppings {
		t.Fatalf("expected %d toppings, got %v", MaxToppings, toppings)
	}
	hasCheese := false
	for _, topping := range toppings {
		if topping == ToppingCheese {
			hasCheese = true
		}
	}
	if !hasCheese {
		t.Fatalf("cheese default lost after cap: %v", toppings)
	}
}

func TestNewStateLeavesCrustAndSizeUnset(t *testing.T) {
	state := NewState([]Pizza{{Toppings: []Topping{"pepperoni"}}}, nil, nil, nil)

	p := state.Pizzas[0]
	if p.Crust != "" || p.Size != "" {
		t.Fatalf("expected crust and size unset, got %q/%q", p.Crust, p.Size)
	}
}

func TestNewStateCapsPizzaCount(t *testing.T) {
	pizzas := make([]Pizza, MaxPizzas+7)
	state := NewState(pizzas, nil, nil, nil)

	if len(state.Pizzas) != MaxPizzas {
		t.Fatalf("expected %d pizzas, got %d", MaxPizzas, len(state.Pizzas))
	}
}

func TestBuildQuestionsNumbersPizzas(t *testing.T) {
	state := NewState([]Pizza{
		{Crust: CrustClassic, Size: SizeMedium, Toppings: []Topping{"cheese"}},
		{Toppings: []Topping{"pepperoni"}},
	}, nil, nil, nil)

	questions := state.BuildQuestions()
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %v", questions)
	}
	if questions[0] != "What crust for pizza #2?" {
		t.Fatalf("unexpected first question: %s", questions[0])
	}
	if questions[1] != "What size for pizza #2?" {
		t.Fatalf("unexpected second question: %s", questions[1])
	}
}

func TestIncompleteAndAmbiguities(t *testing.T) {
	state := &State{Pizzas: []Pizza{
		{Crust: CrustThin, Size: SizeSmall, Toppings: []Topping{"cheese"}},
		{Crust: CrustThin},
	}}

	incomplete := state.Incomplete()
	if len(incomplete) != 1 || incomplete[0] != 1 {
		t.Fatalf("expected pizza 1 incomplete, got %v", incomplete)
	}

	amb := state.Ambiguities()
	if len(amb) != 2 {
		t.Fatalf("expected 2 ambiguities, got %v", amb)
	}
	if amb[0].Field != FieldToppings || amb[1].Field != FieldSize {
		t.Fatalf("unexpected ambiguity fields: %v", amb)
	}
}

func TestMenuValidation(t *testing.T) {
	if !ValidCrust(CrustStuffed) || ValidCrust("deep-dish") {
		t.Fatal("crust validation broken")
	}
	if !ValidSize(SizeExtraLarge) || ValidSize("family") {
		t.Fatal("size validation broken")
	}
	if !ValidTopping("arugula") || ValidTopping("gravel") {
		t.Fatal("topping validation broken")
	}
}
