package purse

import (
	"encoding/json"
	"testing"
)

func TestParseAmount(t *testing.T) {
	testCases := []struct {
		input    string
		currency string
		want     Money
		wantErr  bool
	}{
		{input: "5000", currency: "NGN", want: NGN(5000)},
		{input: " 12.50 ", currency: "GHS", want: M(12.5, "GHS")},
		{input: "-3", currency: "NGN", want: NGN(-3)},
		{input: "abc", currency: "NGN", wantErr: true},
		{input: "", currency: "NGN", wantErr: true},
		{input: "10", currency: "XYZ", wantErr: true},
		{input: "10", currency: "", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.input+" "+tc.currency, func(t *testing.T) {
			got, err := ParseAmount(tc.input, tc.currency)
			if tc.wantErr {
				wantErr[*ValidationError](t, err)
				return
			}
			if err != nil {
				t.Fatalf("ParseAmount() error = %v", err)
			}
			if !got.Equal(tc.want) {
				t.Errorf("ParseAmount() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMoney_String(t *testing.T) {
	testCases := []struct {
		m    Money
		want string
	}{
		{m: USD(42350), want: "$42,350.00"},
		{m: USD(0.125), want: "$0.13"},
		{m: USD(1e17), want: "100000000000000000.00 USD"},
	}
	for _, tc := range testCases {
		if got := tc.m.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
	if got := USD(5).SignedString(); got != "+$5.00" {
		t.Errorf("SignedString() = %q, want +$5.00", got)
	}
	if got := USD(0).SignedString(); got != "-" {
		t.Errorf("SignedString() = %q, want -", got)
	}
}

func TestMoney_Arithmetic(t *testing.T) {
	if got := NGN(10).Add(M(5, "")); !got.Equal(NGN(15)) {
		t.Errorf("Add() = %v, want %v", got, NGN(15))
	}
	if got := USD(2).Mul(Q(0.5)).Convert(M(1550, "").Decimal(), "NGN"); !got.Equal(NGN(1550)) {
		t.Errorf("Convert() = %v, want %v", got, NGN(1550))
	}
	defer func() {
		if recover() == nil {
			t.Errorf("Add() of different currencies did not panic")
		}
	}()
	NGN(1).Add(USD(1))
}

func TestMoney_JSON(t *testing.T) {
	data, err := json.Marshal(NGN(105000.5))
	if err != nil {
		t.Fatal(err)
	}
	if want := `{"amount":105000.5,"currency":"NGN"}`; string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
	var m Money
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	if !m.Equal(NGN(105000.5)) {
		t.Errorf("Unmarshal() = %v", m)
	}
}

func TestParseQuantity(t *testing.T) {
	q, err := ParseQuantity("0.00012345")
	if err != nil || !q.Equal(Q(0.00012345)) {
		t.Errorf("ParseQuantity() = %v, %v", q, err)
	}
	if q, err := ParseQuantity(" 0.5\n"); err != nil || !q.Equal(Q(0.5)) {
		t.Errorf("ParseQuantity() with spaces = %v, %v", q, err)
	}
	if _, err := ParseQuantity("1,5"); err == nil {
		t.Errorf("ParseQuantity(1,5) succeeded, want an error")
	}
}
