package cmd

import "testing"

func Test_parseLengthRange(t *testing.T) {
	type args struct {
		s string
	}
	tests := []struct {
		name    string
		args    args
		wantMin int
		wantMax int
		wantErr bool
	}{
		{
			"range",
			args{"7-25"},
			7,
			25,
			false,
		},
		{
			"single length",
			args{"12"},
			12,
			12,
			false,
		},
		{
			"spaces",
			args{" 8 - 10 "},
			8,
			10,
			false,
		},
		{
			"inverted",
			args{"25-7"},
			0,
			0,
			true,
		},
		{
			"garbage",
			args{"seven"},
			0,
			0,
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			min, max, err := parseLengthRange(tt.args.s)
			if (err != nil) != tt.wantErr {
				t.Errorf("parseLengthRange() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if min != tt.wantMin || max != tt.wantMax {
				t.Errorf("parseLengthRange() = %v-%v, want %v-%v", min, max, tt.wantMin, tt.wantMax)
			}
		})
	}
}
