package agent

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ovenline/pizza-chat/backend/internal/model/order"
)

// wireExtraction mirrors the JSON object the extraction prompt asks for.
// Toppings and attribute values arrive as plain strings and are validated
// against the menu afterwards.
type wireExtraction struct {
	Pizzas    []wirePizza `json:"pizzas"`
	Rejected  []string    `json:"rejected"`
	Ambiguous [][2]any    `json:"ambiguous"`
}

type wirePizza struct {
	Crust    string   `json:"crust"`
	Size     string   `json:"size"`
	Toppings []string `json:"toppings"`
}

// parseExtraction turns the raw model reply into an order state. Model
// failures never propagate as errors: anything undecodable is recorded in the
// state's error list, including the raw reply for debugging, and yields an
// empty extraction.
func parseExtraction(raw string) *order.State {
	cleaned := stripFences(raw)

	// json.Unmarshal accepts "null" and leaves the zero value behind, so a
	// non-object top level has to be rejected before decoding.
	if !strings.HasPrefix(cleaned, "{") {
		return order.NewState(nil, nil, nil, []string{
			"model reply is not a JSON object",
			"raw response: " + cleaned,
		})
	}

	var wire wireExtraction
	if err := json.Unmarshal([]byte(cleaned), &wire); err != nil {
		return order.NewState(nil, nil, nil, []string{
			fmt.Sprintf("failed to parse model reply as JSON: %v", err),
			"raw response: " + cleaned,
		})
	}

	pizzas, rejected, errs := sanitizePizzas(wire.Pizzas)
	rejected = append(wire.Rejected, rejected...)
	ambiguous := convertAmbiguous(wire.Ambiguous)
	return order.NewState(pizzas, rejected, ambiguous, errs)
}

// stripFences removes a surrounding markdown code fence, with or without a
// json language tag. Models emit them despite being told not to.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "```json"))
	}
	if strings.HasPrefix(s, "```") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "```"))
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}
	return s
}

// sanitizePizzas checks extracted values against the menu. Unknown crusts and
// sizes are cleared so the follow-up questions ask again; unknown toppings are
// dropped and reported as rejected.
func sanitizePizzas(wire []wirePizza) ([]order.Pizza, []string, []string) {
	var (
		pizzas   []order.Pizza
		rejected []string
		errs     []string
	)
	for idx, wp := range wire {
		p := order.Pizza{}
		if wp.Crust != "" {
			if crust := order.Crust(wp.Crust); order.ValidCrust(crust) {
				p.Crust = crust
			} else {
				errs = append(errs, fmt.Sprintf("pizza #%d: unknown crust %q", idx+1, wp.Crust))
			}
		}
		if wp.Size != "" {
			if size := order.Size(wp.Size); order.ValidSize(size) {
				p.Size = size
			} else {
				errs = append(errs, fmt.Sprintf("pizza #%d: unknown size %q", idx+1, wp.Size))
			}
		}
		for _, raw := range wp.Toppings {
			topping := order.Topping(strings.ToLower(strings.TrimSpace(raw)))
			if order.ValidTopping(topping) {
				p.Toppings = append(p.Toppings, topping)
			} else {
				rejected = append(rejected, raw)
			}
		}
		pizzas = append(pizzas, p)
	}
	return pizzas, rejected, errs
}

// convertAmbiguous tolerates the loose [index, field] pair encoding the model
// returns; malformed entries are skipped.
func convertAmbiguous(pairs [][2]any) []order.Ambiguity {
	var out []order.Ambiguity
	for _, pair := range pairs {
		idx, ok := pair[0].(float64)
		if !ok {
			continue
		}
		field, ok := pair[1].(string)
		if !ok {
			continue
		}
		switch f := order.Field(field); f {
		case order.FieldCrust, order.FieldToppings, order.FieldSize:
			out = append(out, order.Ambiguity{Pizza: int(idx), Field: f})
		}
	}
	return out
}
