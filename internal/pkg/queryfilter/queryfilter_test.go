package queryfilter

import (
	"net/url"
	"reflect"
	"testing"
)

func TestCollectWhitelistsKeys(t *testing.T) {
	values := url.Values{}
	values.Set("course_id", "3")
	values.Set("payment_status", "completed")
	values.Set("page", "2") // not whitelisted

	got := Collect(values, Int("course_id"), Text("payment_status"), Text("user_email"))

	want := Filters{
		"course_id":      int64(3),
		"payment_status": "completed",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Collect() = %v, want %v", got, want)
	}
}

func TestCollectCoercion(t *testing.T) {
	tests := []struct {
		name string
		key  Key
		raw  string
		want interface{}
	}{
		{"bool true", Bool("published"), "true", true},
		{"bool false upper", Bool("published"), "False", false},
		{"int", Int("id"), "42", int64(42)},
		{"negative int", Int("id"), "-7", int64(-7)},
		{"string", Text("status"), "confirmed", "confirmed"},
		{"numeric-ish string", Text("time"), "18:00", "18:00"},
		{"date stays string", Text("date"), "2026-01-15", "2026-01-15"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := url.Values{tt.key.name: {tt.raw}}
			got := Collect(values, tt.key)
			if !reflect.DeepEqual(got[tt.key.name], tt.want) {
				t.Errorf("coerce(%q) = %#v, want %#v", tt.raw, got[tt.key.name], tt.want)
			}
		})
	}
}

func TestCollectTextKeepsIntegerShapedValues(t *testing.T) {
	values := url.Values{"instructor": {"123"}, "category": {"2024"}}
	got := Collect(values, Text("instructor"), Text("category"))

	want := Filters{"instructor": "123", "category": "2024"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Collect() = %#v, want %#v", got, want)
	}
}

func TestCollectDropsUncoercibleValues(t *testing.T) {
	values := url.Values{"id": {"abc"}, "published": {"123"}}
	got := Collect(values, Int("id"), Bool("published"))
	if len(got) != 0 {
		t.Errorf("expected empty filters, got %v", got)
	}
}

func TestCollectIgnoresEmptyValues(t *testing.T) {
	values := url.Values{"status": {""}}
	got := Collect(values, Text("status"))
	if len(got) != 0 {
		t.Errorf("expected empty filters, got %v", got)
	}
}
