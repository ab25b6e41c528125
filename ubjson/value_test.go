package ubjson

import (
	"math"
	"testing"
)

func TestZeroValueIsNull(t *testing.T) {
	var v Value
	if !v.IsNull() || v.Kind() != KindNull {
		t.Errorf("zero Value kind = %s, want null", v.Kind())
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		k    Kind
		want string
	}{
		{KindNull, "null"},
		{KindBool, "bool"},
		{KindInt, "int"},
		{KindFloat, "float"},
		{KindString, "string"},
		{KindArray, "array"},
		{KindObject, "object"},
		{Kind(99), "Kind(99)"},
	}
	for _, tt := range tests {
		if got := tt.k.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.k, got, tt.want)
		}
	}
}

func TestAccessorsWrongKind(t *testing.T) {
	// Accessors on a mismatched kind return the zero of that kind.
	v := String("not a number")
	if v.AsBool() || v.AsInt() != 0 || v.AsFloat() != 0 {
		t.Error("mismatched accessors should return zero values")
	}
	if Int(3).AsString() != "" {
		t.Error("AsString on int should return empty string")
	}
	if Int(3).Items() != nil || Int(3).Members() != nil {
		t.Error("container accessors on scalar should return nil")
	}
	if _, ok := Array(Int(1)).Get("x"); ok {
		t.Error("Get on array should report not found")
	}
}

func TestAsFloatConvertsInt(t *testing.T) {
	if got := Int(7).AsFloat(); got != 7 {
		t.Errorf("Int(7).AsFloat() = %v, want 7", got)
	}
}

func TestObjectDuplicateNameReplacesInPlace(t *testing.T) {
	v := Object(
		Member{"a", Int(1)},
		Member{"b", Int(2)},
		Member{"a", Int(3)},
	)
	if v.Len() != 2 {
		t.Fatalf("len = %d, want 2", v.Len())
	}
	// The replacement keeps the original position.
	if v.Members()[0].Name != "a" || v.Members()[0].Value.AsInt() != 3 {
		t.Errorf("members[0] = %v", v.Members()[0])
	}
	if v.Members()[1].Name != "b" {
		t.Errorf("members[1] = %v", v.Members()[1])
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"null null", Null(), Null(), true},
		{"null vs false", Null(), Bool(false), false},
		{"bools", Bool(true), Bool(true), true},
		{"ints", Int(42), Int(42), true},
		{"int widths collapse", Int(1), Int(1), true},
		{"int vs float", Int(1), Float(1), false},
		{"nan equals nan", Float(math.NaN()), Float(math.NaN()), true},
		{"zero vs negzero", Float(0), Float(math.Copysign(0, -1)), false},
		{"strings", String("x"), String("x"), true},
		{"arrays", Array(Int(1), Int(2)), Array(Int(1), Int(2)), true},
		{"array length", Array(Int(1)), Array(Int(1), Int(2)), false},
		{"array element", Array(Int(1)), Array(Int(2)), false},
		{"objects", Object(Member{"k", Int(1)}), Object(Member{"k", Int(1)}), true},
		{"object member order", Object(Member{"a", Int(1)}, Member{"b", Int(2)}),
			Object(Member{"b", Int(2)}, Member{"a", Int(1)}), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("%s.Equal(%s) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := tt.b.Equal(tt.a); got != tt.want {
				t.Errorf("Equal not symmetric for %s / %s", tt.a, tt.b)
			}
		})
	}
}

func TestStringRender(t *testing.T) {
	v := Object(
		Member{"wave", Int(5)},
		Member{"tags", Array(String("pvp"), Null())},
	)
	want := `{"wave":5,"tags":["pvp",null]}`
	if got := v.String(); got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}
}
