package order

import "fmt"

// MaxToppings bounds how many toppings a single pizza keeps after normalization.
const MaxToppings = 5

// MaxPizzas bounds how many pizzas a single extraction may contribute.
const MaxPizzas = 100

// Field names a pizza attribute that can be missing or ambiguous.
type Field string

const (
	FieldCrust    Field = "crust"
	FieldToppings Field = "toppings"
	FieldSize     Field = "size"
)

// Pizza describes one pizza under construction. Crust and Size stay empty
// until the caller has specified them; Toppings always holds at least cheese
// after normalization.
type Pizza struct {
	Crust    Crust     `json:"crust,omitempty"`
	Size     Size      `json:"size,omitempty"`
	Toppings []Topping `json:"toppings,omitempty"`
}

// Complete reports whether every attribute needed to bake the pizza is set.
func (p Pizza) Complete() bool {
	return p.Crust != "" && p.Size != "" && len(p.Toppings) > 0
}

// Ambiguity marks a single unresolved attribute on one pizza.
type Ambiguity struct {
	Pizza int   `json:"pizza"`
	Field Field `json:"field"`
}

// State accumulates everything the agent has understood about a session's
// order so far.
type State struct {
	Pizzas    []Pizza     `json:"pizzas"`
	Rejected  []string    `json:"rejected,omitempty"`
	Ambiguous []Ambiguity `json:"ambiguous,omitempty"`
	Questions []string    `json:"questions,omitempty"`
	Errors    []string    `json:"errors,omitempty"`
}

// NewState normalizes extracted pizzas into an order state. Every pizza gets
// cheese appended when missing, topping lists are capped at MaxToppings, and
// at most MaxPizzas pizzas are kept. Crust and size are left unset when the
// caller has not specified them.
func NewState(pizzas []Pizza, rejected []string, ambiguous []Ambiguity, errs []string) *State {
	if len(pizzas) > MaxPizzas {
		pizzas = pizzas[:MaxPizzas]
	}

	normalized := make([]Pizza, 0, len(pizzas))
	for _, p := range pizzas {
		p.Toppings = normalizeToppings(p.Toppings)
		normalized = append(normalized, p)
	}

	return &State{
		Pizzas:    normalized,
		Rejected:  rejected,
		Ambiguous: ambiguous,
		Errors:    errs,
	}
}

func normalizeToppings(toppings []Topping) []Topping {
	hasCheese := false
	kept := make([]Topping, 0, len(toppings)+1)
	for _, t := range toppings {
		if t == ToppingCheese {
			hasCheese = true
		}
		kept = append(kept, t)
	}
	if !hasCheese {
		kept = append(kept, ToppingCheese)
	}
	if len(kept) > MaxToppings {
		kept = kept[:MaxToppings]
		// the cap must not drop the cheese default
		hasCheese = false
		for _, t := range kept {
			if t == ToppingCheese {
				hasCheese = true
				break
			}
		}
		if !hasCheese {
			kept[MaxToppings-1] = ToppingCheese
		}
	}
	return kept
}

// Incomplete returns the indices of pizzas still missing an attribute.
func (s *State) Incomplete() []int {
	var indices []int
	for idx, p := range s.Pizzas {
		if !p.Complete() {
			indices = append(indices, idx)
		}
	}
	return indices
}

// Ambiguities recomputes the (pizza, field) pairs still unresolved.
func (s *State) Ambiguities() []Ambiguity {
	var out []Ambiguity
	for idx, p := range s.Pizzas {
		if p.Crust == "" {
			out = append(out, Ambiguity{Pizza: idx, Field: FieldCrust})
		}
		if len(p.Toppings) == 0 {
			out = append(out, Ambiguity{Pizza: idx, Field: FieldToppings})
		}
		if p.Size == "" {
			out = append(out, Ambiguity{Pizza: idx, Field: FieldSize})
		}
	}
	return out
}

// BuildQuestions fills Questions with one follow-up per missing attribute,
// numbered the way a human would count the pizzas.
func (s *State) BuildQuestions() []string {
	var questions []string
	for idx, p := range s.Pizzas {
		if p.Crust == "" {
			questions = append(questions, fmt.Sprintf("What crust for pizza #%d?", idx+1))
		}
		if len(p.Toppings) == 0 {
			questions = append(questions, fmt.Sprintf("What toppings for pizza #%d?", idx+1))
		}
		if p.Size == "" {
			questions = append(questions, fmt.Sprintf("What size for pizza #%d?", idx+1))
		}
	}
	s.Questions = questions
	return questions
}
