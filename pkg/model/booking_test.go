package model

import "testing"

func TestValidDate(t *testing.T) {
	valid := []string{"2030-06-01", "2030-12-31", "2028-02-29"}
	for _, s := range valid {
		if !ValidDate(s) {
			t.Errorf("ValidDate(%q) = false, want true", s)
		}
	}

	invalid := []string{"", "2030-6-1", "2030-06-1", "30-06-01", "2030/06/01", "2030-13-01", "2030-02-31", "01-06-2030"}
	for _, s := range invalid {
		if ValidDate(s) {
			t.Errorf("ValidDate(%q) = true, want false", s)
		}
	}
}

func TestValidTime(t *testing.T) {
	valid := []string{"00:00", "09:00", "12:30", "23:59"}
	for _, s := range valid {
		if !ValidTime(s) {
			t.Errorf("ValidTime(%q) = false, want true", s)
		}
	}

	invalid := []string{"", "9:00", "09:5", "24:00", "23:60", "0900", "09:00:00", "9am"}
	for _, s := range invalid {
		if ValidTime(s) {
			t.Errorf("ValidTime(%q) = true, want false", s)
		}
	}
}
