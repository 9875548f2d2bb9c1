package summarize

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"summarybot/pkg/domain"
	"summarybot/pkg/keywords"
	"summarybot/pkg/llm"
)

// ErrNoCompletion means the language model produced no summary. An empty
// completion is a failure, never an empty-but-valid summary.
var ErrNoCompletion = errors.New("model call produced no completion")

// turnWindow bounds how many prior follow-up turns accompany a question.
const turnWindow = 3

// contextPrefixChars bounds how much of the original content accompanies a
// follow-up question, to cap request size.
const contextPrefixChars = 2000

// Request describes one summarization call.
type Request struct {
	Paragraphs []string
	Language   domain.Language
	// ModelOverride, when non-empty, takes precedence over the provider's
	// configured default model.
	ModelOverride string
	// UseSecondary routes the call to the secondary provider. Only honored on
	// explicit request; primary and secondary are never mixed in one request.
	UseSecondary bool
}

// Orchestrator selects a system prompt by language, invokes one language
// model over the full assembled text and decorates the reply with extracted
// keywords and an attribution line.
type Orchestrator struct {
	primary    llm.ChatClient
	secondary  llm.ChatClient
	keywordMax int
}

// New creates an orchestrator. secondary may be nil when no secondary
// provider is configured.
func New(primary, secondary llm.ChatClient) *Orchestrator {
	return &Orchestrator{
		primary:    primary,
		secondary:  secondary,
		keywordMax: keywords.DefaultMax,
	}
}

// Summarize joins the paragraphs, invokes the selected model once and returns
// the decorated summary. Returns ErrNoCompletion when the model call fails.
func (o *Orchestrator) Summarize(ctx context.Context, req Request) (domain.SummaryResult, error) {
	fullText := strings.Join(req.Paragraphs, "\n")

	kws := keywords.Extract(fullText, o.keywordMax)

	messages := []llm.Message{
		{Role: "system", Content: systemPrompt(req.Language)},
		{Role: "user", Content: "Summarize the following text:\n" + fullText},
	}

	reply := o.client(req.UseSecondary).Complete(ctx, messages, req.ModelOverride)
	if reply == "" {
		return domain.SummaryResult{}, ErrNoCompletion
	}

	var body strings.Builder
	body.WriteString(reply)
	if len(kws) > 0 {
		body.WriteString("\n\n🔑 ")
		body.WriteString(strings.Join(kws, "、"))
	}
	body.WriteString("\n\n")
	body.WriteString(attribution(req.Language))

	return domain.SummaryResult{Body: body.String(), Keywords: kws}, nil
}

// Answer responds to a follow-up question over an existing conversation
// context. Only the last turnWindow prior turns plus a truncated prefix of
// the original content and its summary are supplied to the model.
func (o *Orchestrator) Answer(ctx context.Context, conv *domain.ConversationContext, question, modelOverride string) (string, error) {
	content := strings.Join(conv.OriginalContent, "\n")
	if len(content) > contextPrefixChars {
		cut := contextPrefixChars
		for cut > 0 && !utf8.RuneStart(content[cut]) {
			cut--
		}
		content = content[:cut]
	}

	messages := []llm.Message{
		{Role: "system", Content: followUpPrompt(conv.Language)},
		{Role: "user", Content: "Content:\n" + content + "\n\nSummary:\n" + conv.Summary},
	}

	turns := conv.Turns
	if len(turns) > turnWindow {
		turns = turns[len(turns)-turnWindow:]
	}
	for _, turn := range turns {
		messages = append(messages, llm.Message{Role: turn.Role, Content: turn.Text})
	}

	messages = append(messages, llm.Message{Role: domain.RoleUser, Content: question})

	reply := o.primary.Complete(ctx, messages, modelOverride)
	if reply == "" {
		return "", ErrNoCompletion
	}
	return reply, nil
}

func (o *Orchestrator) client(useSecondary bool) llm.ChatClient {
	if useSecondary && o.secondary != nil {
		return o.secondary
	}
	return o.primary
}
