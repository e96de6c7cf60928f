package agent

import (
	"fmt"
	"strings"

	"github.com/ovenline/pizza-chat/backend/internal/model/chat"
	"github.com/ovenline/pizza-chat/backend/internal/model/order"
)

// extractionInstructions is rendered with FString, so literal braces in the
// JSON example are doubled.
var extractionInstructions = fmt.Sprintf(`You are a pizza order extractor.
Extract up to %d pizzas from the conversation with the caller. Each pizza is a JSON object with:
- crust: one of [%s]
- toppings: an array (up to %d) of any of the following: [%s]
- size: one of [%s]

Return a JSON object with the following structure (and no other text):
{{
  "pizzas": [ ... ],
  "rejected": [ ... ],
  "ambiguous": [ ... ]
}}
where "rejected" is an array of strings describing any orders or items that could not be interpreted as a valid pizza, and "ambiguous" is an array of [pizza_index, field_name] pairs for any pizzas with missing or unclear fields (field_name is one of 'crust', 'toppings', 'size').
Omit crust or size entirely when the caller has not chosen one; never guess.
Return only plain JSON, without any markdown or code blocks.`,
	order.MaxPizzas,
	quoteJoin(crustStrings()),
	order.MaxToppings,
	quoteJoin(toppingStrings()),
	quoteJoin(sizeStrings()),
)

func crustStrings() []string {
	crusts := order.Crusts()
	out := make([]string, len(crusts))
	for i, c := range crusts {
		out[i] = string(c)
	}
	return out
}

func sizeStrings() []string {
	sizes := order.Sizes()
	out := make([]string, len(sizes))
	for i, s := range sizes {
		out[i] = string(s)
	}
	return out
}

func toppingStrings() []string {
	toppings := order.Toppings()
	out := make([]string, len(toppings))
	for i, t := range toppings {
		out[i] = string(t)
	}
	return out
}

func quoteJoin(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = fmt.Sprintf("%q", item)
	}
	return strings.Join(quoted, ", ")
}

// formatConversation renders the transcript one "sender: text" line per turn,
// the shape the extraction prompt expects.
func formatConversation(history []chat.Message, current string) string {
	var b strings.Builder
	for _, msg := range history {
		b.WriteString(msg.Sender)
		b.WriteString(": ")
		b.WriteString(msg.Content)
		b.WriteString("\n")
	}
	b.WriteString(chat.SenderUser)
	b.WriteString(": ")
	b.WriteString(current)
	return b.String()
}
