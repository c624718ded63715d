package transit

import "testing"

func TestSelectStop(t *testing.T) {
	stops := []Stop{
		{Key: "10064", Name: "Main & Broadway"},
		{Key: "10065", Name: "Main & Assiniboine"},
	}

	tests := []struct {
		name    string
		stops   []Stop
		input   string
		wantKey StopKey
		wantOK  bool
	}{
		{"empty list yields none", nil, "1", "", false},
		{"first of two", stops, "1", "10064", true},
		{"second of two", stops, "2", "10065", true},
		{"out of range", stops, "5", "", false},
		{"zero is out of range", stops, "0", "", false},
		{"negative is out of range", stops, "-1", "", false},
		{"not an integer", stops, "two", "", false},
		{"blank input", stops, "", "", false},
		{"surrounding whitespace is fine", stops, " 2 \n", "10065", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stop, ok := SelectStop(tt.stops, tt.input)
			if ok != tt.wantOK {
				t.Fatalf("expected ok=%v, got %v", tt.wantOK, ok)
			}
			if stop.Key != tt.wantKey {
				t.Errorf("expected stop key %q, got %q", tt.wantKey, stop.Key)
			}
		})
	}
}
