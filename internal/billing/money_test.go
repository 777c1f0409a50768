package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{input: "125", want: 12500},
		{input: "125.50", want: 12550},
		{input: "$1,234.56", want: 123456},
		{input: " 10.00 ", want: 1000},
		{input: "-3.25", want: -325},
		{input: "0.005", wantErr: true},
		{input: "abc", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMoney(tt.input)
			if tt.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$12.50", FormatMoney(1250))
	assert.Equal(t, "$0.05", FormatMoney(5))
	assert.Equal(t, "$1234.00", FormatMoney(123400))
}
