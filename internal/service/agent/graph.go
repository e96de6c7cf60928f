package agent

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/ovenline/pizza-chat/backend/internal/model/chat"
	"github.com/ovenline/pizza-chat/backend/internal/model/order"
)

const (
	nodeExtract = "extract_pizzas"
	nodeElicit  = "elicitation_response"
	nodeConfirm = "order_confirmation"
)

// exchange carries one turn through the agent graph.
type exchange struct {
	History []chat.Message
	Text    string
	State   *order.State
	Reply   string
}

// Graph is the model-backed strategy. Each message re-extracts the order from
// the full conversation, then either asks follow-up questions or confirms.
type Graph struct {
	extractor compose.Runnable[map[string]any, *schema.Message]
	flow      compose.Runnable[*exchange, *exchange]

	mu     sync.RWMutex
	states map[string]*order.State
}

// NewGraph compiles the extraction chain and the agent flow around the
// supplied chat model.
func NewGraph(ctx context.Context, chatModel model.ChatModel) (*Graph, error) {
	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage(extractionInstructions),
		schema.UserMessage("Here is the conversation so far:\n{conversation}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	extractor, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile extraction chain: %w", err)
	}

	g := &Graph{
		extractor: extractor,
		states:    make(map[string]*order.State),
	}

	flow := compose.NewGraph[*exchange, *exchange]()
	if err := flow.AddLambdaNode(nodeExtract, compose.InvokableLambda(g.extractNode)); err != nil {
		return nil, fmt.Errorf("failed to add %s node: %w", nodeExtract, err)
	}
	if err := flow.AddLambdaNode(nodeElicit, compose.InvokableLambda(g.elicitNode)); err != nil {
		return nil, fmt.Errorf("failed to add %s node: %w", nodeElicit, err)
	}
	if err := flow.AddLambdaNode(nodeConfirm, compose.InvokableLambda(g.confirmNode)); err != nil {
		return nil, fmt.Errorf("failed to add %s node: %w", nodeConfirm, err)
	}
	if err := flow.AddEdge(compose.START, nodeExtract); err != nil {
		return nil, fmt.Errorf("failed to wire entry edge: %w", err)
	}
	branch := compose.NewGraphBranch(routeAfterExtract, map[string]bool{
		nodeElicit:  true,
		nodeConfirm: true,
	})
	if err := flow.AddBranch(nodeExtract, branch); err != nil {
		return nil, fmt.Errorf("failed to add completeness branch: %w", err)
	}
	if err := flow.AddEdge(nodeElicit, compose.END); err != nil {
		return nil, fmt.Errorf("failed to wire %s edge: %w", nodeElicit, err)
	}
	if err := flow.AddEdge(nodeConfirm, compose.END); err != nil {
		return nil, fmt.Errorf("failed to wire %s edge: %w", nodeConfirm, err)
	}

	runnable, err := flow.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile agent flow: %w", err)
	}
	g.flow = runnable

	return g, nil
}

// Name implements Strategy.
func (g *Graph) Name() string { return NameGraph }

// Reply runs one turn through the compiled flow and remembers the resulting
// order state for the session.
func (g *Graph) Reply(ctx context.Context, sessionID string, history []chat.Message, text string) (string, error) {
	out, err := g.flow.Invoke(ctx, &exchange{History: history, Text: text})
	if err != nil {
		return "", fmt.Errorf("agent flow failed: %w", err)
	}

	g.mu.Lock()
	g.states[sessionID] = out.State
	g.mu.Unlock()

	if len(out.State.Errors) > 0 {
		log.Printf("[agent] session=%s extraction recorded %d errors", sessionID, len(out.State.Errors))
	}
	return out.Reply, nil
}

// Reset drops the session's accumulated order state.
func (g *Graph) Reset(sessionID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.states, sessionID)
}

// OrderState exposes the last extraction for a session, for the REST debug
// surface.
func (g *Graph) OrderState(sessionID string) (*order.State, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	state, ok := g.states[sessionID]
	return state, ok
}

// extractNode calls the model over the whole conversation and parses the
// structured order out of the reply. Model failures land in the state's error
// list rather than aborting the turn.
func (g *Graph) extractNode(ctx context.Context, ex *exchange) (*exchange, error) {
	conversation := formatConversation(ex.History, ex.Text)

	response, err := g.extractor.Invoke(ctx, map[string]any{"conversation": conversation})
	if err != nil {
		ex.State = order.NewState(nil, nil, nil, []string{fmt.Sprintf("model call failed: %v", err)})
		return ex, nil
	}

	ex.State = parseExtraction(response.Content)
	return ex, nil
}

// routeAfterExtract picks the next node: ask questions while anything is
// missing, confirm once every pizza is complete.
func routeAfterExtract(_ context.Context, ex *exchange) (string, error) {
	if len(ex.State.Pizzas) == 0 || len(ex.State.Incomplete()) > 0 {
		return nodeElicit, nil
	}
	return nodeConfirm, nil
}

func (g *Graph) elicitNode(_ context.Context, ex *exchange) (*exchange, error) {
	ex.Reply = elicitationReply(ex.State)
	return ex, nil
}

func (g *Graph) confirmNode(_ context.Context, ex *exchange) (*exchange, error) {
	ex.Reply = confirmationReply(ex.State)
	return ex, nil
}
