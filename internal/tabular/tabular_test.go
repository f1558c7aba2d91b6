package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabtrace-labs/tabtrace-cli/internal/core/domain"
)

func TestEncode_PlainCells(t *testing.T) {
	data, err := Encode([]string{"a", "b"}, []domain.Row{{"1", "2"}, {"3", "4"}})

	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n3,4\n", string(data))
}

func TestEncode_QuotingRules(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want string
	}{
		{"comma", `x,y`, `"x,y"`},
		{"double quote", `say "hi"`, `"say ""hi"""`},
		{"newline", "line1\nline2", "\"line1\nline2\""},
		{"plain", "plain", "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Encode([]string{"v"}, []domain.Row{{tt.cell}})
			require.NoError(t, err)
			assert.Equal(t, "v\n"+tt.want+"\n", string(data))
		})
	}
}

func TestEncode_RaggedRowFails(t *testing.T) {
	_, err := Encode([]string{"a", "b"}, []domain.Row{{"only one"}})
	assert.Error(t, err)
}

func TestEncode_NoColumns(t *testing.T) {
	_, err := Encode(nil, nil)
	assert.ErrorIs(t, err, domain.ErrEmptyDataset)
}

func TestDecode_RoundTrip(t *testing.T) {
	columns := []string{"name", "note"}
	rows := []domain.Row{
		{"alpha", "plain"},
		{"beta", `has,comma and "quotes"`},
		{"gamma", "multi\nline"},
	}

	data, err := Encode(columns, rows)
	require.NoError(t, err)

	gotCols, gotRows, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, columns, gotCols)
	assert.Equal(t, rows, gotRows)

	// Re-encoding decoded content yields identical bytes.
	again, err := Encode(gotCols, gotRows)
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestDecode_Empty(t *testing.T) {
	_, _, err := Decode(nil)
	assert.ErrorIs(t, err, domain.ErrEmptyDataset)

	// Header only, no data rows.
	_, _, err = DecodeString("a,b\n")
	assert.ErrorIs(t, err, domain.ErrEmptyDataset)
}

func TestDecode_RaggedInputFails(t *testing.T) {
	_, _, err := DecodeString("a,b\n1\n")
	assert.Error(t, err)
}
