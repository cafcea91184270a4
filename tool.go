package arithgen

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ============================================================
// Tool Interface
// ============================================================

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result  interface{} `json:"result,omitempty"`
	String  string      `json:"string,omitempty"`
	Warning string      `json:"warning,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// GenerateParams are the arguments of the "generate" tool.
type GenerateParams struct {
	Count        int     `json:"count" validate:"gte=0,lte=10000"`
	Range        int     `json:"range" validate:"required,gte=1,lte=100"`
	MaxOperators int     `json:"max_operators" validate:"gte=0,lte=10"`
	Seed         *uint64 `json:"seed"`
	ASCII        bool    `json:"ascii"`
}

// GradeParams are the arguments of the "grade" tool.
type GradeParams struct {
	Exercises []string `json:"exercises" validate:"required,max=10000"`
	Answers   []string `json:"answers" validate:"required,max=10000"`
	Labelled  bool     `json:"labelled"`
}

// Problem is one generated exercise as returned by the "generate" tool.
type Problem struct {
	Index     int    `json:"index"`
	Exercise  string `json:"exercise"`
	Answer    string `json:"answer"`
	Canonical string `json:"canonical"`
}

var toolValidate = validator.New()

// HandleToolCall dispatches one tool call. Every call gets its own Generator,
// so concurrent calls share no state.
func HandleToolCall(req ToolRequest) ToolResponse {
	getString := func(key string) (string, error) {
		v, ok := req.Params[key]
		if !ok {
			return "", fmt.Errorf("missing param: %s", key)
		}
		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("param %s must be a string", key)
		}
		return s, nil
	}
	getExpr := func(key string) (Expr, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, fmt.Errorf("missing param: %s", key)
		}
		switch val := v.(type) {
		case string:
			return Parse(val)
		case map[string]interface{}:
			return FromJSON(val)
		}
		return nil, fmt.Errorf("param %s must be infix text or an expression object", key)
	}
	respond := func(e Expr) ToolResponse {
		res := map[string]interface{}{
			"tree":      toJSON(e),
			"infix":     Infix(e),
			"canonical": Canonical(e),
			"operators": CountOps(e),
			"valid":     Valid(e),
		}
		if err := Validate(e); err != nil {
			res["invalid_reason"] = err.Error()
		}
		return ToolResponse{Result: res, String: Infix(e)}
	}

	switch req.Tool {
	case "generate":
		var p GenerateParams
		if err := decodeParams(req.Params, &p); err != nil {
			return ToolResponse{Error: err.Error()}
		}
		if p.Count == 0 {
			p.Count = 10
		}
		return generateTool(p)

	case "grade":
		var p GradeParams
		if err := decodeParams(req.Params, &p); err != nil {
			return ToolResponse{Error: err.Error()}
		}
		var report *GradeReport
		if p.Labelled {
			report = GradeLines(p.Exercises, p.Answers)
		} else {
			report = Grade(p.Exercises, p.Answers)
		}
		items := make([]map[string]interface{}, len(report.Items))
		for i, it := range report.Items {
			m := map[string]interface{}{"index": it.Index, "verdict": it.Verdict.String()}
			if it.ExpectedErr == nil {
				m["expected"] = it.Expected.String()
			} else {
				m["expected_error"] = it.ExpectedErr.Error()
			}
			if it.SubmittedErr != nil {
				m["submitted_error"] = it.SubmittedErr.Error()
			}
			items[i] = m
		}
		return ToolResponse{
			Result: map[string]interface{}{
				"correct": nonNil(report.Correct),
				"wrong":   nonNil(report.Wrong),
				"items":   items,
			},
			String: report.String(),
		}

	case "evaluate":
		e, err := getExpr("expr")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		v, err := Eval(e)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return ToolResponse{Result: v.String(), String: v.String()}

	case "parse":
		e, err := getExpr("expr")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return respond(e)

	case "canonical":
		e, err := getExpr("expr")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		c := Canonical(e)
		return ToolResponse{Result: c, String: c}

	case "parse_number":
		s, err := getString("value")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		v, err := ParseRational(s)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return ToolResponse{
			Result: map[string]interface{}{"num": v.Num().String(), "den": v.Denom().String(), "display": v.String()},
			String: v.String(),
		}

	case "tool_spec":
		return ToolResponse{String: ToolSpec()}
	}
	return ToolResponse{Error: fmt.Sprintf("unknown tool: %s", req.Tool)}
}

func generateTool(p GenerateParams) ToolResponse {
	var opts []Option
	if p.Seed != nil {
		opts = append(opts, WithSeed(*p.Seed))
	}
	g, err := NewGenerator(GeneratorConfig{Range: p.Range, MaxOperators: p.MaxOperators}, opts...)
	if err != nil {
		return ToolResponse{Error: err.Error()}
	}
	exprs, genErr := g.Generate(p.Count)
	if genErr != nil && !IsExhausted(genErr) {
		return ToolResponse{Error: genErr.Error()}
	}
	notation := Unicode
	if p.ASCII {
		notation = ASCII
	}
	problems := make([]Problem, len(exprs))
	lines := make([]string, len(exprs))
	for i, e := range exprs {
		v, err := Eval(e)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		problems[i] = Problem{
			Index:     i + 1,
			Exercise:  FormatExercise(i+1, e, notation),
			Answer:    FormatAnswer(i+1, v),
			Canonical: Canonical(e),
		}
		lines[i] = problems[i].Exercise
	}
	resp := ToolResponse{Result: problems, String: strings.Join(lines, "\n")}
	if genErr != nil {
		resp.Warning = genErr.Error()
	}
	return resp
}

// decodeParams maps loosely typed JSON params onto a struct and validates it.
func decodeParams(params map[string]interface{}, out interface{}) error {
	for k, v := range params {
		if f, ok := v.(float64); ok && (f != math.Trunc(f) || math.IsInf(f, 0)) {
			return fmt.Errorf("param %s must be an integer", k)
		}
	}
	b, err := json.Marshal(params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("invalid params: %w", err)
	}
	if err := toolValidate.Struct(out); err != nil {
		return fmt.Errorf("invalid params: %w", err)
	}
	return nil
}

func nonNil(xs []int) []int {
	if xs == nil {
		return []int{}
	}
	return xs
}

// ============================================================
// Tool spec
// ============================================================

func ToolSpec() string {
	tools := []map[string]interface{}{
		ts("generate", "Generate unique exercises. range bounds naturals and denominators", []string{"range"},
			map[string]string{"count": "integer", "range": "integer", "max_operators": "integer", "seed": "integer", "ascii": "boolean"}),
		ts("grade", "Grade answers against re-evaluated exercises", []string{"exercises", "answers"},
			map[string]string{"exercises": "array", "answers": "array", "labelled": "boolean"}),
		ts("evaluate", "Evaluate an expression exactly", []string{"expr"}, map[string]string{"expr": "string"}),
		ts("parse", "Parse an expression and report its tree, canonical form and validity", []string{"expr"}, map[string]string{"expr": "string"}),
		ts("canonical", "Canonical de-duplication key of an expression", []string{"expr"}, map[string]string{"expr": "string"}),
		ts("parse_number", "Parse N, num/den or whole'num/den", []string{"value"}, map[string]string{"value": "string"}),
		ts("tool_spec", "Return this tool schema", []string{}, map[string]string{}),
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
