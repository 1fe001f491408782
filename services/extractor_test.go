package services

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"catalog-sim/models"
)

func intp(n int) *int           { return &n }
func floatp(f float64) *float64 { return &f }
func strp(s string) *string     { return &s }

func TestExtractSpecs(t *testing.T) {
	tests := []struct {
		name     string
		features string
		want     models.ProductSpecs
	}{
		{
			name:     "flipkart mobile listing",
			features: "4 GB RAM | 64 GB ROM | Display Size: 16.59 cm | 5000 mAh Battery | Processor Brand: MediaTek",
			want: models.ProductSpecs{
				RAMGB:          intp(4),
				StorageGB:      intp(64),
				BatteryMAh:     intp(5000),
				DisplayInch:    floatp(6.53),
				ProcessorBrand: strp("mediatek"),
			},
		},
		{
			name:     "keyword before amount and inch display",
			features: "Internal Storage 128 GB, Display Size - 6.5 inch, Processor Type: Helio G85 | 8GB RAM",
			want: models.ProductSpecs{
				RAMGB:         intp(8),
				StorageGB:     intp(128),
				DisplayInch:   floatp(6.5),
				ProcessorType: strp("helio g85"),
			},
		},
		{
			name:     "display without unit stays in inches",
			features: "display size 15.6",
			want:     models.ProductSpecs{DisplayInch: floatp(15.6)},
		},
		{
			name:     "nothing matches",
			features: "Cotton round neck t-shirt",
			want:     models.ProductSpecs{},
		},
		{
			name:     "empty",
			features: "",
			want:     models.ProductSpecs{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractSpecs(tt.features)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ExtractSpecs(%q) mismatch (-want +got):\n%s", tt.features, diff)
			}
		})
	}
}

func TestExtractSpecsIndependentPatterns(t *testing.T) {
	// A malformed RAM entry must not stop battery extraction.
	got := ExtractSpecs("RAM: lots | 4000 mAh")
	assert.Nil(t, got.RAMGB)
	if assert.NotNil(t, got.BatteryMAh) {
		assert.Equal(t, 4000, *got.BatteryMAh)
	}
}
