package arithgen_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/arithgen"
)

func call(tool string, params map[string]interface{}) arithgen.ToolResponse {
	return arithgen.HandleToolCall(arithgen.ToolRequest{Tool: tool, Params: params})
}

// decodeJSONParams mimics the HTTP server, where numbers arrive as float64.
func decodeJSONParams(t *testing.T, s string) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(s), &m))
	return m
}

func TestTool_Generate(t *testing.T) {
	params := decodeJSONParams(t, `{"count": 5, "range": 10, "seed": 42}`)
	resp := call("generate", params)
	require.Empty(t, resp.Error)
	problems, ok := resp.Result.([]arithgen.Problem)
	require.True(t, ok, "result type %T", resp.Result)
	require.Len(t, problems, 5)
	for i, p := range problems {
		assert.Equal(t, i+1, p.Index)
		_, text := arithgen.SplitExerciseLine(p.Exercise)
		e, err := arithgen.ParseValid(text)
		require.NoError(t, err, p.Exercise)
		assert.Equal(t, p.Canonical, arithgen.Canonical(e))
	}

	again := call("generate", decodeJSONParams(t, `{"count": 5, "range": 10, "seed": 42}`))
	assert.Equal(t, resp.String, again.String, "same seed should give the same problems")
}

func TestTool_GenerateDefaultsAndASCII(t *testing.T) {
	resp := call("generate", map[string]interface{}{"range": 4, "ascii": true, "seed": float64(1)})
	require.Empty(t, resp.Error)
	problems := resp.Result.([]arithgen.Problem)
	assert.Len(t, problems, 10)
	assert.NotContains(t, resp.String, "×")
	assert.NotContains(t, resp.String, "÷")
}

func TestTool_GenerateWarning(t *testing.T) {
	resp := call("generate", map[string]interface{}{"range": 1, "count": 2000, "seed": 3})
	require.Empty(t, resp.Error)
	assert.Contains(t, resp.Warning, "generated only")
}

func TestTool_GenerateParamErrors(t *testing.T) {
	resp := call("generate", map[string]interface{}{"count": 3})
	assert.Contains(t, resp.Error, "Range")

	resp = call("generate", map[string]interface{}{"count": 2.5, "range": 5})
	assert.Contains(t, resp.Error, "count must be an integer")

	resp = call("generate", map[string]interface{}{"range": 500})
	assert.Contains(t, resp.Error, "invalid params")

	resp = call("generate", map[string]interface{}{"range": "ten"})
	assert.Contains(t, resp.Error, "invalid params")
}

func TestTool_Grade(t *testing.T) {
	resp := call("grade", decodeJSONParams(t, `{
		"exercises": ["1 + 1", "1 + 2", "1/2 × 1"],
		"answers":   ["2", "4", "3/6"]
	}`))
	require.Empty(t, resp.Error)
	assert.Equal(t, "Correct: 2 (1, 3)\nWrong: 1 (2)", resp.String)
	res := resp.Result.(map[string]interface{})
	assert.Equal(t, []int{1, 3}, res["correct"])
	assert.Equal(t, []int{2}, res["wrong"])
}

func TestTool_GradeLabelled(t *testing.T) {
	resp := call("grade", map[string]interface{}{
		"exercises": []interface{}{"1. 1 + 1 =", "2. 3 ÷ 2 ="},
		"answers":   []interface{}{"1. 2", "2. 1'1/2"},
		"labelled":  true,
	})
	require.Empty(t, resp.Error)
	res := resp.Result.(map[string]interface{})
	assert.Equal(t, []int{1, 2}, res["correct"])
	assert.Equal(t, []int{}, res["wrong"])
}

func TestTool_GradeMissingAnswers(t *testing.T) {
	resp := call("grade", map[string]interface{}{"exercises": []interface{}{"1 + 1"}})
	assert.Contains(t, resp.Error, "Answers")
}

func TestTool_Evaluate(t *testing.T) {
	resp := call("evaluate", map[string]interface{}{"expr": "(1'1/2 - 1/2) ÷ 3"})
	require.Empty(t, resp.Error)
	assert.Equal(t, "1/3", resp.String)

	tree := decodeJSONParams(t, `{"type":"binary","op":"+","left":{"type":"leaf","value":"1/2"},"right":{"type":"leaf","value":"1/3"}}`)
	resp = call("evaluate", map[string]interface{}{"expr": tree})
	require.Empty(t, resp.Error)
	assert.Equal(t, "5/6", resp.String)

	resp = call("evaluate", map[string]interface{}{"expr": "1 ÷ 0"})
	assert.Contains(t, resp.Error, "division by zero")

	resp = call("evaluate", map[string]interface{}{"expr": 3})
	assert.NotEmpty(t, resp.Error)

	resp = call("evaluate", nil)
	assert.Contains(t, resp.Error, "missing param: expr")
}

func TestTool_Parse(t *testing.T) {
	resp := call("parse", map[string]interface{}{"expr": "1 - 2"})
	require.Empty(t, resp.Error)
	res := resp.Result.(map[string]interface{})
	assert.Equal(t, false, res["valid"])
	assert.Contains(t, res["invalid_reason"], "negative")
	assert.Equal(t, 1, res["operators"])
	assert.Equal(t, "(1 - 2)", res["canonical"])

	resp = call("parse", map[string]interface{}{"expr": "3 ÷ 2"})
	res = resp.Result.(map[string]interface{})
	assert.Equal(t, true, res["valid"])
	assert.NotContains(t, res, "invalid_reason")

	resp = call("parse", map[string]interface{}{"expr": "(1 +"})
	assert.Contains(t, resp.Error, "unexpected end")
}

func TestTool_Canonical(t *testing.T) {
	a := call("canonical", map[string]interface{}{"expr": "3 + 1/2"})
	b := call("canonical", map[string]interface{}{"expr": "1/2 + 3"})
	require.Empty(t, a.Error)
	assert.Equal(t, a.String, b.String)
}

func TestTool_ParseNumber(t *testing.T) {
	resp := call("parse_number", map[string]interface{}{"value": "2'3/4"})
	require.Empty(t, resp.Error)
	res := resp.Result.(map[string]interface{})
	assert.Equal(t, "11", res["num"])
	assert.Equal(t, "4", res["den"])
	assert.Equal(t, "2'3/4", res["display"])

	resp = call("parse_number", map[string]interface{}{"value": "1/0"})
	assert.Contains(t, resp.Error, "malformed number")

	resp = call("parse_number", map[string]interface{}{"value": 7})
	assert.Contains(t, resp.Error, "must be a string")
}

func TestTool_UnknownTool(t *testing.T) {
	resp := call("integrate", nil)
	assert.Equal(t, "unknown tool: integrate", resp.Error)
}

func TestToolSpec(t *testing.T) {
	resp := call("tool_spec", nil)
	var spec struct {
		Tools []struct {
			Name string `json:"name"`
		} `json:"tools"`
	}
	require.NoError(t, json.Unmarshal([]byte(resp.String), &spec))
	var names []string
	for _, tool := range spec.Tools {
		names = append(names, tool.Name)
	}
	assert.Len(t, names, 7)
	assert.Equal(t, "generate,grade,evaluate,parse,canonical,parse_number,tool_spec", strings.Join(names, ","))
}
