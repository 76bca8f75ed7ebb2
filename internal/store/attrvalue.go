package store

import (
	"fmt"
	"strconv"

	"encoding/json"
)

// Attribute-tagged encoding used by the key-value table backend. Every JSON
// value maps onto one single-key wrapper object:
//
//	"x"   -> {"S": "x"}
//	1.5   -> {"N": "1.5"}
//	true  -> {"BOOL": true}
//	[...] -> {"L": [...]}
//	{...} -> {"M": {...}}
//	null  -> {"NULL": true}
//
// The conversion is lossless in both directions for every JSON value type.

// ToAttributeValue converts a plain JSON value into its tagged form.
func ToAttributeValue(v interface{}) (interface{}, error) {
	switch val := v.(type) {
	case nil:
		return map[string]interface{}{"NULL": true}, nil
	case string:
		return map[string]interface{}{"S": val}, nil
	case bool:
		return map[string]interface{}{"BOOL": val}, nil
	case float64:
		return map[string]interface{}{"N": strconv.FormatFloat(val, 'f', -1, 64)}, nil
	case json.Number:
		return map[string]interface{}{"N": val.String()}, nil
	case []interface{}:
		list := make([]interface{}, len(val))
		for i, item := range val {
			enc, err := ToAttributeValue(item)
			if err != nil {
				return nil, err
			}
			list[i] = enc
		}
		return map[string]interface{}{"L": list}, nil
	case map[string]interface{}:
		m := make(map[string]interface{}, len(val))
		for k, item := range val {
			enc, err := ToAttributeValue(item)
			if err != nil {
				return nil, err
			}
			m[k] = enc
		}
		return map[string]interface{}{"M": m}, nil
	default:
		return nil, fmt.Errorf("unsupported type: %T", v)
	}
}

// FromAttributeValue converts a tagged value back into its plain form.
// Untagged scalars pass through unchanged, matching the tolerance the
// schedule generator needs for id projections.
func FromAttributeValue(v interface{}) (interface{}, error) {
	tagged, ok := v.(map[string]interface{})
	if !ok {
		return v, nil
	}

	if s, ok := tagged["S"]; ok {
		return s, nil
	}
	if n, ok := tagged["N"]; ok {
		str, ok := n.(string)
		if !ok {
			return nil, fmt.Errorf("N attribute must hold a string, got %T", n)
		}
		f, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid numeric attribute %q: %w", str, err)
		}
		return f, nil
	}
	if b, ok := tagged["BOOL"]; ok {
		return b, nil
	}
	if l, ok := tagged["L"]; ok {
		list, ok := l.([]interface{})
		if !ok {
			return nil, fmt.Errorf("L attribute must hold a list, got %T", l)
		}
		out := make([]interface{}, len(list))
		for i, item := range list {
			dec, err := FromAttributeValue(item)
			if err != nil {
				return nil, err
			}
			out[i] = dec
		}
		return out, nil
	}
	if m, ok := tagged["M"]; ok {
		inner, ok := m.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("M attribute must hold a map, got %T", m)
		}
		out := make(map[string]interface{}, len(inner))
		for k, item := range inner {
			dec, err := FromAttributeValue(item)
			if err != nil {
				return nil, err
			}
			out[k] = dec
		}
		return out, nil
	}
	if _, ok := tagged["NULL"]; ok {
		return nil, nil
	}

	// Plain object that never was tagged.
	return v, nil
}

// EncodeDocument tags each top-level attribute of a document, the shape a
// table item is stored in.
func EncodeDocument(doc map[string]interface{}) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(doc))
	for k, v := range doc {
		enc, err := ToAttributeValue(v)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", k, err)
		}
		out[k] = enc
	}
	return out, nil
}

// DecodeDocument reverses EncodeDocument.
func DecodeDocument(doc map[string]interface{}) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(doc))
	for k, v := range doc {
		dec, err := FromAttributeValue(v)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", k, err)
		}
		out[k] = dec
	}
	return out, nil
}

// ProjectID pulls the id attribute out of a table item, accepting both the
// bare-scalar and the tagged encoding.
func ProjectID(item map[string]interface{}) (string, bool) {
	raw, ok := item["id"]
	if !ok {
		return "", false
	}
	if s, ok := raw.(string); ok {
		return s, s != ""
	}
	if tagged, ok := raw.(map[string]interface{}); ok {
		if s, ok := tagged["S"].(string); ok {
			return s, s != ""
		}
	}
	return "", false
}
