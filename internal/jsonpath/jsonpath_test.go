package jsonpath

import "testing"

func TestLookup(t *testing.T) {
	root := map[string]interface{}{
		"text": "hello",
		"data": map[string]interface{}{
			"items": []interface{}{
				map[string]interface{}{"value": "a"},
				map[string]interface{}{"value": "b"},
			},
		},
		"results": []interface{}{
			map[string]interface{}{
				"alternatives": []interface{}{
					map[string]interface{}{"transcript": "ok", "confidence": 0.75},
				},
			},
		},
	}

	tests := []struct {
		path string
		want string
		ok   bool
	}{
		{"text", "hello", true},
		{"data.items[1].value", "b", true},
		{"results[0].alternatives[0].transcript", "ok", true},
		{"results[0].alternatives[0].confidence", "0.75", true},
		{"data.items[99].value", "", false},
		{"data.items[0]", "", false}, // object leaf, not text
		{"missing.key", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := Lookup(root, tt.path)
		if ok != tt.ok || got != tt.want {
			t.Fatalf("Lookup(%q) = %q, %v; want %q, %v", tt.path, got, ok, tt.want, tt.ok)
		}
	}
}

func TestExtractText(t *testing.T) {
	tests := []struct {
		name string
		body string
		path string
		want string
	}{
		{"whisper_shape", `{"text": "hello world"}`, "text", "hello world"},
		{"nested_path", `{"result": {"transcript": "nested"}}`, "result.transcript", "nested"},
		{"fallback_to_text", `{"text": "fallback"}`, "wrong.path", "fallback"},
		{"fallback_any_string", `{"transcript": "any"}`, "", "any"},
		{"not_json", `<html>busy</html>`, "text", ""},
		{"empty_object", `{}`, "text", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractText([]byte(tt.body), tt.path); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestSplitToken(t *testing.T) {
	key, idxs, err := splitToken("foo[0][1]")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if key != "foo" || len(idxs) != 2 || idxs[0] != 0 || idxs[1] != 1 {
		t.Fatalf("unexpected parse result: key=%s idxs=%v", key, idxs)
	}

	for _, bad := range []string{"", "foo[", "foo[]", "foo[x]", "foo[0]bar"} {
		if _, _, err := splitToken(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
