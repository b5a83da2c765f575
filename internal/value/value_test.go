package value

import "testing"

func TestTruthy(t *testing.T) {
	cases := []struct {
		v    Value
		want bool
	}{
		{Noob{}, false},
		{Troof{V: true}, true},
		{Troof{V: false}, false},
		{Numbr{V: 0}, false},
		{Numbr{V: 5}, true},
		{Numbar{V: 0}, false},
		{Yarn{V: ""}, false},
		{Yarn{V: "x"}, true},
	}
	for _, c := range cases {
		if got := Truthy(c.v); got != c.want {
			t.Errorf("Truthy(%v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestToNumber(t *testing.T) {
	if ToNumber(Yarn{V: "3.5"}) != 3.5 {
		t.Error("expected yarn \"3.5\" to coerce to 3.5")
	}
	if ToNumber(Yarn{V: "nope"}) != 0 {
		t.Error("unparseable yarn should coerce to 0")
	}
	if ToNumber(Troof{V: true}) != 1 {
		t.Error("WIN should coerce to 1")
	}
	if ToNumber(Noob{}) != 0 {
		t.Error("NOOB should coerce to 0")
	}
}

func TestCast(t *testing.T) {
	v, err := Cast(Yarn{V: "42"}, "NUMBR")
	if err != nil || v.(Numbr).V != 42 {
		t.Fatalf("Cast YARN->NUMBR = %v, %v", v, err)
	}
	v, err = Cast(Numbr{V: 0}, "TROOF")
	if err != nil || v.(Troof).V != false {
		t.Fatalf("Cast NUMBR(0)->TROOF = %v, %v", v, err)
	}
}

func TestEqualStrictNoCoercion(t *testing.T) {
	if Equal(Numbr{V: 1}, Troof{V: true}) {
		t.Error("NUMBR 1 and TROOF WIN must not be equal: strict equality has no cross-tag coercion")
	}
	if !Equal(Yarn{V: "a"}, Yarn{V: "a"}) {
		t.Error("identical YARN content must be equal")
	}
	if Equal(Numbar{V: 1.0}, Numbr{V: 1}) {
		t.Error("NUMBAR and NUMBR must not be equal even with the same numeric value")
	}
}
