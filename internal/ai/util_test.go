package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanReply(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"plain", "Do better.", "Do better."},
		{"surrounding quotes stripped", `"Do better."`, "Do better."},
		{"curly quotes stripped", "“Do better.”", "Do better."},
		{"think block removed", "<think>hmm</think>Do better.", "Do better."},
		{"whitespace trimmed", "  Do better. \n", "Do better."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanReply(tt.in))
		})
	}
}

func TestCleanReplyTruncatesLongReplies(t *testing.T) {
	got := cleanReply(strings.Repeat("a", 600))
	assert.True(t, strings.HasSuffix(got, "…"))
	assert.LessOrEqual(t, len(got), 510)
}

func TestIsGarbageResponse(t *testing.T) {
	assert.True(t, isGarbageResponse("<html><body>nope</body></html>"))
	assert.True(t, isGarbageResponse("not allowed"))
	assert.True(t, isGarbageResponse("  x "))
	assert.False(t, isGarbageResponse("A perfectly fine roast."))
}

type failingProvider struct{}

func (failingProvider) Generate(context.Context, []Message) (string, error) {
	return "", errors.New("provider down")
}

func TestRoastFallsBackOnProviderFailure(t *testing.T) {
	got := Roast(context.Background(), failingProvider{}, "Ann", "[MILD] Drink a glass of water.")
	assert.Contains(t, fallbackRoasts, got)
}

func TestRoastWithoutProvider(t *testing.T) {
	got := Roast(context.Background(), nil, "Ann", "[BRUTAL] 100 Burpees.")
	assert.Contains(t, fallbackRoasts, got)
}

type echoProvider struct{}

func (echoProvider) Generate(_ context.Context, msgs []Message) (string, error) {
	return msgs[len(msgs)-1].Content, nil
}

func TestRoastUsesProviderReply(t *testing.T) {
	got := Roast(context.Background(), echoProvider{}, "Ann", "[MILD] Stretch for 1 minute.")
	assert.Contains(t, got, "Ann")
}
