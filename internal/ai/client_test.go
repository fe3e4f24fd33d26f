package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Shashhank12/Budget-Buddy/internal/config"
	"github.com/Shashhank12/Budget-Buddy/internal/store"
)

func TestBuildPrompt(t *testing.T) {
	s := Summary{
		PeriodLabel: "June 2025",
		View:        "month",
		TotalSpent:  345.67,
		TxCount:     12,
		Budget:      1000,
		Categories: []store.CategoryTotal{
			{Name: "Food", Total: 200, Count: 8},
			{Name: "Uncategorized", Total: 145.67, Count: 4},
		},
		TopSpends: []store.TxRow{
			{Date: "2025-06-15", Amount: 80, Description: "Groceries", CategoryName: "Food"},
			{Date: "2025-06-20", Amount: 60},
		},
	}
	got := BuildPrompt(s)

	for _, want := range []string{
		"Period: June 2025 (month view)",
		"Total spent: $345.67 across 12 transactions",
		"Budget for this period: $1,000.00",
		"Food: $200.00 (8 transactions)",
		"2025-06-15  $80.00  Groceries  [Food]",
		"(no description)",
		"[Uncategorized]",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q\n%s", want, got)
		}
	}
}

func TestBuildPromptNoBudgetNoData(t *testing.T) {
	got := BuildPrompt(Summary{PeriodLabel: "this week", View: "week"})
	for _, want := range []string{
		"Budget for this period: not set",
		"Spending by category:\n  (none)",
		"Largest transactions:\n  (none)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q\n%s", want, got)
		}
	}
}

func TestAnswer(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "  You spent the most on Food.  "}},
			},
		})
	}))
	defer srv.Close()

	cfg := &config.Config{
		OpenAIKey:      "test-key",
		OpenAIBaseURL:  srv.URL,
		OpenAILlmModel: "gpt-test",
		LlmMaxTokens:   128,
	}
	c := NewClient(cfg)

	got, err := c.Answer(context.Background(), "data block", "Where did my money go?")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if got != "You spent the most on Food." {
		t.Errorf("answer = %q", got)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if gotBody["model"] != "gpt-test" {
		t.Errorf("model = %v", gotBody["model"])
	}
	msgs, _ := gotBody["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("messages = %v", gotBody["messages"])
	}
	user, _ := msgs[1].(map[string]any)
	content, _ := user["content"].(string)
	if !strings.Contains(content, "data block") || !strings.Contains(content, "Where did my money go?") {
		t.Errorf("user message = %q", content)
	}
}

func TestAnswerErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	cfg := &config.Config{OpenAIKey: "k", OpenAIBaseURL: srv.URL, OpenAILlmModel: "m"}
	if _, err := NewClient(cfg).Answer(context.Background(), "d", "q"); err == nil {
		t.Error("upstream error not surfaced")
	}

	noKey := &config.Config{OpenAIBaseURL: srv.URL}
	if _, err := NewClient(noKey).Answer(context.Background(), "d", "q"); err == nil {
		t.Error("missing key not rejected")
	}
}
