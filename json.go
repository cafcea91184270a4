package arithgen

import (
	"encoding/json"
	"fmt"
)

// ============================================================
// JSON Serialization
// ============================================================

// ToJSON encodes e as nested objects:
//
//	{"type":"leaf","value":"1'1/2"}
//	{"type":"binary","op":"+","left":{...},"right":{...}}
func ToJSON(e Expr) (string, error) {
	b, err := json.Marshal(toJSON(e))
	return string(b), err
}

func toJSON(e Expr) map[string]interface{} {
	switch node := e.(type) {
	case *Leaf:
		return map[string]interface{}{"type": node.exprType(), "value": node.Value.String()}
	case *Binary:
		return map[string]interface{}{
			"type":  node.exprType(),
			"op":    node.Op.String(),
			"left":  toJSON(node.Left),
			"right": toJSON(node.Right),
		}
	}
	return nil
}

// FromJSON decodes the object form produced by ToJSON.
func FromJSON(data map[string]interface{}) (Expr, error) {
	typ, _ := data["type"].(string)
	switch typ {
	case "leaf":
		s, ok := data["value"].(string)
		if !ok {
			return nil, fmt.Errorf("leaf: value must be a string")
		}
		v, err := ParseRational(s)
		if err != nil {
			return nil, fmt.Errorf("leaf: %w", err)
		}
		return Lit(v), nil
	case "binary":
		s, _ := data["op"].(string)
		op, err := ParseOp(s)
		if err != nil {
			return nil, fmt.Errorf("binary: %w", err)
		}
		left, err := childFromJSON(data, "left")
		if err != nil {
			return nil, err
		}
		right, err := childFromJSON(data, "right")
		if err != nil {
			return nil, err
		}
		return Bin(op, left, right), nil
	}
	return nil, fmt.Errorf("unknown expression type %q", typ)
}

func childFromJSON(data map[string]interface{}, key string) (Expr, error) {
	m, ok := data[key].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("binary: %s must be an expression object", key)
	}
	return FromJSON(m)
}

// UnmarshalExpr decodes a JSON document produced by ToJSON.
func UnmarshalExpr(data []byte) (Expr, error) {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return FromJSON(m)
}
