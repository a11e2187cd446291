package advisory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"37593 * 67", "2518731"},
		{"(22-10)*0.5", "6"},
		{" 2 ** 10 ", "1024"},
		{"round(12.6)", "13"},
		{"round(5*0.5)", "2"},
		{"round(7*0.5)", "4"},
		{"sqrt(16) + floor(2.9)", "6"},
		{"max(3, 7) - min(3, 7)", "4"},
		{"17 % 5", "2"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Calculate(context.Background(), tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	pi, err := Calculate(context.Background(), "pi")
	require.NoError(t, err)
	assert.Contains(t, pi, "3.14159")
}

func TestCalculateErrors(t *testing.T) {
	for _, expr := range []string{"", "1 +", "1/0", "unknown_fn(2)"} {
		_, err := Calculate(context.Background(), expr)
		assert.Error(t, err, expr)
	}
}

func TestCallCalculator(t *testing.T) {
	ctx := context.Background()

	ok := callCalculator(ctx, &genai.FunctionCall{ID: "c1", Name: calculatorName,
		Args: map[string]any{"expression": "(22-10)*0.5"}})
	assert.Equal(t, "c1", ok.ID)
	assert.Equal(t, calculatorName, ok.Name)
	assert.Equal(t, "6", ok.Response["output"])

	bad := callCalculator(ctx, &genai.FunctionCall{ID: "c2", Name: calculatorName,
		Args: map[string]any{"expression": 42}})
	assert.Contains(t, bad.Response["error"], "expected string")

	failed := callCalculator(ctx, &genai.FunctionCall{ID: "c3", Name: calculatorName,
		Args: map[string]any{"expression": "1 +"}})
	assert.NotEmpty(t, failed.Response["error"])
}
