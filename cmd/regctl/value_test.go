package main

import (
	"strings"
	"testing"
)

func TestValueCommand(t *testing.T) {
	tests := []struct {
		name        string
		set         string
		wantJSON    bool
		wantErr     bool
		wantContain []string
	}{
		{
			// EN=1 at [7], BAUD=5 at [3:0] composes 0x85.
			name:        "compose",
			wantContain: []string{"CTRL = 0x85 (133)", "binary: 10000101"},
		},
		{
			name:        "compose json",
			wantJSON:    true,
			wantContain: []string{`"hex": "0x85"`, `"value": 133`},
		},
		{
			// 0xA5 lands EN=1, BAUD=5; bits [6:4] fall into the gap.
			name:        "set distributes and drops gap bits",
			set:         "0xA5",
			wantContain: []string{"CTRL = 0x85"},
		},
		{
			name:    "set rejects garbage",
			set:     "soon",
			wantErr: true,
		},
		{
			name:    "set rejects out of range",
			set:     "256",
			wantErr: true,
		},
		{
			name:    "set rejects fractions",
			set:     "2.5",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			jsonOut = tt.wantJSON
			valueSet = tt.set

			output, err := captureOutput(t, func() error {
				return runValue([]string{writeTestMap(t), "CTRL"})
			})

			if (err != nil) != tt.wantErr {
				t.Errorf("runValue() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if tt.wantJSON {
				assertJSON(t, output)
			}

			assertContains(t, output, tt.wantContain)
		})
	}
}

func TestValueCommand_SetPersists(t *testing.T) {
	resetFlags()
	path := writeTestMap(t)

	valueSet = "0x0F"
	_, err := captureOutput(t, func() error {
		return runValue([]string{path, "CTRL"})
	})
	if err != nil {
		t.Fatalf("runValue() error = %v", err)
	}

	// A fresh read sees EN=0, BAUD=15.
	resetFlags()
	output, err := captureOutput(t, func() error {
		return runValue([]string{path, "CTRL"})
	})
	if err != nil {
		t.Fatalf("runValue() error = %v", err)
	}
	if !strings.Contains(output, "CTRL = 0x0F") {
		t.Errorf("value did not persist, got: %s", output)
	}
}

func TestBitCommand(t *testing.T) {
	tests := []struct {
		name        string
		bit         string
		set         string
		toggle      bool
		wantErr     bool
		wantContain []string
	}{
		{
			name:        "read owned bit",
			bit:         "7",
			wantContain: []string{"bit 7 = 1 (EN)"},
		},
		{
			name:        "read gap bit",
			bit:         "5",
			wantContain: []string{"bit 5 = 0 (gap)"},
		},
		{
			name:        "clear bit",
			bit:         "7",
			set:         "0",
			wantContain: []string{"bit 7 = 0 (EN)", "✓ Written"},
		},
		{
			name:        "toggle bit",
			bit:         "0",
			toggle:      true,
			wantContain: []string{"bit 0 = 0 (BAUD)", "✓ Written"},
		},
		{
			name:    "write to gap refused",
			bit:     "5",
			set:     "1",
			wantErr: true,
		},
		{
			name:    "bit outside register",
			bit:     "8",
			wantErr: true,
		},
		{
			name:    "bad bit value",
			bit:     "7",
			set:     "2",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			bitSet = tt.set
			bitToggle = tt.toggle

			output, err := captureOutput(t, func() error {
				return runBit([]string{writeTestMap(t), "CTRL", tt.bit})
			})

			if (err != nil) != tt.wantErr {
				t.Errorf("runBit() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			assertContains(t, output, tt.wantContain)
		})
	}
}
