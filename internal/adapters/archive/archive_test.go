package archive

import "testing"

func TestSplitPrefix(t *testing.T) {
	tests := []struct {
		name       string
		prefix     string
		wantBucket string
		wantRest   string
		wantErr    bool
	}{
		{
			"partition prefix",
			"noaa-goes19/ABI-L2-MCMIPC/2026/080/09/",
			"noaa-goes19",
			"ABI-L2-MCMIPC/2026/080/09/",
			false,
		},
		{"bucket only", "noaa-goes19/", "noaa-goes19", "", false},
		{"no separator", "noaa-goes19", "", "", true},
		{"empty", "", "", "", true},
		{"leading slash", "/ABI-L2-MCMIPC/", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket, rest, err := SplitPrefix(tt.prefix)
			if tt.wantErr {
				if err == nil {
					t.Errorf("SplitPrefix(%q) should fail", tt.prefix)
				}
				return
			}
			if err != nil {
				t.Fatalf("SplitPrefix(%q) failed: %v", tt.prefix, err)
			}
			if bucket != tt.wantBucket || rest != tt.wantRest {
				t.Errorf("SplitPrefix(%q) = (%q, %q), want (%q, %q)",
					tt.prefix, bucket, rest, tt.wantBucket, tt.wantRest)
			}
		})
	}
}
