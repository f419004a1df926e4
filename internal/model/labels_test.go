package model

import (
	"testing"
	"unicode/utf8"
)

func TestDefaultLabeler(t *testing.T) {
	cases := map[string]string{
		"":                 "",
		"name":             "Name",
		"phoneNumber":      "Phone Number",
		"date_of_study":    "Date Of Study",
		"position-title":   "Position Title",
		"address2":         "Address 2",
		"responsibilities": "Responsibilities",
		"éducation":        "Éducation",
		"ñame":             "Ñame",
		"añoInicio":        "Año Inicio",
	}
	for in, want := range cases {
		if got := DefaultLabeler(in); got != want {
			t.Errorf("DefaultLabeler(%q) = %q, want %q", in, got, want)
		}
		if got := DefaultLabeler(in); !utf8.ValidString(got) {
			t.Errorf("DefaultLabeler(%q) produced invalid UTF-8 %q", in, got)
		}
	}
}
