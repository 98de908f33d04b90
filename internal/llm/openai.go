package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
	"github.com/openai/openai-go/v3/shared"

	"github.com/sobiswriter/LegalLM/internal/logger"
)

// citationInstruction is appended to every prompt so responses carry
// locatable citations: each sup marker holds the exact source substring
// in its data-quote attribute.
const citationInstruction = `For each citation, add a data-quote attribute to the sup tag containing the exact text from the document being cited. For example: "<p>The contract is valid until June 1, 2024<sup data-quote="the contract is valid until June 1, 2024">1</sup>.</p>"`

// OpenAIClient implements Client against the OpenAI Responses API.
type OpenAIClient struct {
	apiKey string
	log    logger.Logger
}

// NewOpenAIClient creates a client with the given API key.
func NewOpenAIClient(apiKey string, log logger.Logger) *OpenAIClient {
	return &OpenAIClient{apiKey: apiKey, log: log}
}

func (c *OpenAIClient) GenerateSummary(ctx context.Context, text, name string) (string, error) {
	prompt := fmt.Sprintf(`You are a highly skilled legal assistant. Your task is to summarize legal documents.
The user has uploaded a document named %q. Provide a concise summary of its key components (e.g., Parties, Term, Key Obligations, and Risks).
Format your output as clean, semantic HTML using <p> and <h3> tags.
For every piece of information you provide, you MUST cite the relevant section by adding a superscript number like a footnote.
%s

Document:
%s`, name, citationInstruction, text)
	return c.complete(ctx, "summary", prompt, len(text))
}

func (c *OpenAIClient) AnalyzeRisks(ctx context.Context, text string) (string, error) {
	prompt := fmt.Sprintf(`You are a meticulous legal analyst. Analyze the provided document to identify potential legal risks, important obligations, and critical clauses.

For each finding, provide a clear explanation and cite the relevant part of the document.
%s

Structure your output as clean, semantic HTML with <h3> for sections (e.g., "Potential Risks", "Key Clauses") and <p> for descriptions.

Document:
%s`, citationInstruction, text)
	return c.complete(ctx, "risks", prompt, len(text))
}

func (c *OpenAIClient) AnswerQuestion(ctx context.Context, text, question string) (string, error) {
	prompt := fmt.Sprintf(`You are a legal expert. You will answer questions based ONLY on the provided legal document.
Format your output as clean, semantic HTML using <p> tags.
When you answer, you MUST cite the specific parts of the document that support your answer.
%s

Question: %s
Document:
%s`, citationInstruction, question, text)
	return c.complete(ctx, "question", prompt, len(text))
}

func (c *OpenAIClient) DefineTerm(ctx context.Context, text, term string) (string, error) {
	prompt := fmt.Sprintf(`You are a legal dictionary. The user wants to understand a specific term from a legal document.

Term: %q

First, provide a general definition of the term.
Then, analyze the provided document to see if the term is used or defined specifically within it. If it is, explain how it's used and cite the relevant section.
%s

Format your output as clean, semantic HTML.

Document for context:
%s`, term, citationInstruction, text)
	return c.complete(ctx, "define", prompt, len(text))
}

// complete runs one rate-limited Responses API call and returns the
// output text (HTML).
func (c *OpenAIClient) complete(ctx context.Context, task, prompt string, docLen int) (string, error) {
	c.log.Debug("calling OpenAI for %s (document length: %d chars)", task, docLen)
	client := openai.NewClient(option.WithAPIKey(c.apiKey))

	html, err := RateLimitedCall(ctx, estimateTokens(len(prompt)), c.log, func(ctx context.Context) (string, error) {
		response, err := client.Responses.New(ctx, responses.ResponseNewParams{
			Model: shared.ChatModelGPT5Mini,
			Input: responses.ResponseNewParamsInputUnion{
				OfInputItemList: responses.ResponseInputParam{
					responses.ResponseInputItemParamOfMessage(
						responses.ResponseInputMessageContentListParam{
							responses.ResponseInputContentParamOfInputText(prompt),
						},
						"user",
					),
				},
			},
		})
		if err != nil {
			return "", err
		}
		return response.OutputText(), nil
	})
	if err != nil {
		c.log.Error("OpenAI %s call failed: %v", task, err)
		return "", fmt.Errorf("%w: %s: %v", ErrModelCall, task, err)
	}
	c.log.Info("OpenAI %s call succeeded (%d chars)", task, len(html))
	return html, nil
}
