package httputil

import (
	"encoding/json"
	"testing"
)

func TestOptionalStringTriState(t *testing.T) {
	type payload struct {
		ParentID OptionalString `json:"parent_id,omitempty"`
	}

	t.Run("absent field", func(t *testing.T) {
		var p payload
		if err := json.Unmarshal([]byte(`{}`), &p); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if p.ParentID.Present {
			t.Error("absent field marked present")
		}
	})

	t.Run("explicit null", func(t *testing.T) {
		var p payload
		if err := json.Unmarshal([]byte(`{"parent_id":null}`), &p); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if !p.ParentID.Present {
			t.Error("null field not marked present")
		}
		if p.ParentID.Value != nil {
			t.Errorf("value = %v, want nil", *p.ParentID.Value)
		}
	})

	t.Run("string value", func(t *testing.T) {
		var p payload
		if err := json.Unmarshal([]byte(`{"parent_id":"abc"}`), &p); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if !p.ParentID.Present {
			t.Error("field not marked present")
		}
		if p.ParentID.Value == nil || *p.ParentID.Value != "abc" {
			t.Errorf("value = %v, want abc", p.ParentID.Value)
		}
	})

	t.Run("wrong type rejected", func(t *testing.T) {
		var p payload
		if err := json.Unmarshal([]byte(`{"parent_id":42}`), &p); err == nil {
			t.Error("expected error for non-string value")
		}
	})
}
