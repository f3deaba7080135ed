package parking

import "testing"

func TestNewCar(t *testing.T) {
	car := NewCar("KA01HH1234", "White")

	if car.RegNo != "ka01hh1234" {
		t.Errorf("Expected registration number %s, got %s", "ka01hh1234", car.RegNo)
	}

	if car.Color != "white" {
		t.Errorf("Expected color %s, got %s", "white", car.Color)
	}
}

func TestNewCarKeepsSpecialCharacters(t *testing.T) {
	car := NewCar("MP-07-SJ-6212", "BLUE")

	if car.RegNo != "mp-07-sj-6212" {
		t.Errorf("Expected registration number %s, got %s", "mp-07-sj-6212", car.RegNo)
	}

	if car.Color != "blue" {
		t.Errorf("Expected color %s, got %s", "blue", car.Color)
	}
}
