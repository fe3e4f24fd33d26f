// Package ai is the bridge to the external chat model: it assembles a
// data summary for the user's current window and forwards it with their
// question in a single best-effort call.
package ai

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Shashhank12/Budget-Buddy/internal/config"
	"github.com/Shashhank12/Budget-Buddy/internal/money"
	"github.com/Shashhank12/Budget-Buddy/internal/store"
)

//go:embed prompt.txt
var systemPrompt string

type Client struct {
	cfg  *config.Config
	http *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{cfg: cfg, http: &http.Client{}}
}

// Summary is the window snapshot embedded into the assistant prompt.
type Summary struct {
	PeriodLabel string
	View        string
	TotalSpent  float64
	TxCount     int
	Budget      float64 // already scaled to the view
	Categories  []store.CategoryTotal
	TopSpends   []store.TxRow
}

// BuildPrompt serializes the summary into the fixed-format data block the
// model answers from.
func BuildPrompt(s Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Period: %s (%s view)\n", s.PeriodLabel, s.View)
	fmt.Fprintf(&b, "Total spent: %s across %d transactions\n", money.FormatUSD(s.TotalSpent), s.TxCount)
	if s.Budget > 0 {
		fmt.Fprintf(&b, "Budget for this period: %s\n", money.FormatUSD(s.Budget))
	} else {
		b.WriteString("Budget for this period: not set\n")
	}

	b.WriteString("Spending by category:\n")
	if len(s.Categories) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, c := range s.Categories {
		fmt.Fprintf(&b, "  %s: %s (%d transactions)\n", c.Name, money.FormatUSD(c.Total), c.Count)
	}

	b.WriteString("Largest transactions:\n")
	if len(s.TopSpends) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, t := range s.TopSpends {
		desc := t.Description
		if desc == "" {
			desc = "(no description)"
		}
		cat := t.CategoryName
		if cat == "" {
			cat = "Uncategorized"
		}
		fmt.Fprintf(&b, "  %s  %s  %s  [%s]\n", t.Date, money.FormatUSD(t.Amount), desc, cat)
	}
	return b.String()
}

// Answer sends the data block plus the user's question to the chat model
// and returns its text verbatim.
func (c *Client) Answer(ctx context.Context, dataPrompt, question string) (string, error) {
	if c.cfg.OpenAIKey == "" {
		return "", fmt.Errorf("OPENAI_API_KEY missing")
	}

	body := map[string]any{
		"model":      c.cfg.OpenAILlmModel,
		"max_tokens": c.cfg.LlmMaxTokens,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": fmt.Sprintf("%s\nQuestion: %s", dataPrompt, question)},
		},
	}
	b, _ := json.Marshal(body)
	req, err := http.NewRequestWithContext(ctx, "POST", c.cfg.OpenAIBaseURL+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.OpenAIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		bs, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("llm error: %s", string(bs))
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("no choices")
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}
