package advisory

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/PaesslerAG/gval"
	"google.golang.org/genai"
)

const calculatorName = "calculator"

var calculatorLanguage = gval.NewLanguage(
	gval.Arithmetic(),
	gval.Function("round", math.RoundToEven),
	gval.Function("floor", math.Floor),
	gval.Function("ceil", math.Ceil),
	gval.Function("sqrt", math.Sqrt),
	gval.Function("min", math.Min),
	gval.Function("max", math.Max),
)

var calculatorConstants = map[string]any{"pi": math.Pi, "e": math.E}

// Calculate evaluates a single-line arithmetic expression such as
// "(22-10)*0.6" or "37593**(1/5)".
func Calculate(ctx context.Context, expression string) (string, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return "", fmt.Errorf("empty expression")
	}

	eval, err := calculatorLanguage.NewEvaluable(expression)
	if err != nil {
		return "", fmt.Errorf("failed to parse expression %q: %w", expression, err)
	}

	v, err := eval(ctx, calculatorConstants)
	if err != nil {
		return "", fmt.Errorf("failed to evaluate expression %q: %w", expression, err)
	}

	switch n := v.(type) {
	case float64:
		if math.IsInf(n, 0) || math.IsNaN(n) {
			return "", fmt.Errorf("expression %q has no finite value", expression)
		}
		return strconv.FormatFloat(n, 'f', -1, 64), nil
	default:
		return fmt.Sprint(n), nil
	}
}

var calculatorDeclaration = &genai.FunctionDeclaration{
	Name: calculatorName,
	Description: `Calculate a single line arithmetic expression.

Supports + - * / % and ** (power), parentheses, the constants pi and e,
and the functions round (half to even), floor, ceil, sqrt, min and max.

Examples:
    "37593 * 67" for "37593 times 67"
    "(22-10)*0.6" for the office days with 22 workdays and 10 PTO`,
	Parameters: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"expression": {
				Type:        genai.TypeString,
				Description: "The expression to evaluate.",
			},
		},
		Required: []string{"expression"},
	},
	Response: &genai.Schema{
		Type:        genai.TypeString,
		Description: "The value of the expression.",
	},
}

// callCalculator answers a model function call. Errors go back to the
// model in the response rather than failing the request.
func callCalculator(ctx context.Context, call *genai.FunctionCall) *genai.FunctionResponse {
	resp := &genai.FunctionResponse{ID: call.ID, Name: call.Name}

	expression, ok := call.Args["expression"].(string)
	if !ok {
		resp.Response = map[string]any{
			"error": fmt.Sprintf("invalid expression type %T, expected string", call.Args["expression"]),
		}
		return resp
	}

	out, err := Calculate(ctx, expression)
	if err != nil {
		resp.Response = map[string]any{"error": err.Error()}
		return resp
	}
	resp.Response = map[string]any{"output": out}
	return resp
}
