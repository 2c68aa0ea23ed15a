package docblock

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Block
	}{
		{
			name: "description and one tag",
			raw:  "/**\n * Does X.\n * @author Jane\n */",
			want: Block{Description: "Does X.", Tags: map[string]string{"author": "Jane"}},
		},
		{
			name: "tag without text",
			raw:  "/**\n * Hidden task.\n * @internal\n */",
			want: Block{Description: "Hidden task.", Tags: map[string]string{"internal": ""}},
		},
		{
			name: "repeated tag keeps last",
			raw:  "/**\n * @see one\n * @see two\n */",
			want: Block{Description: "", Tags: map[string]string{"see": "two"}},
		},
		{
			name: "windows and old mac line endings",
			raw:  "/**\r\n * First.\r * Second.\r\n * @since 1.2\r\n */",
			want: Block{Description: "First.\nSecond.", Tags: map[string]string{"since": "1.2"}},
		},
		{
			name: "blank lines and order preserved",
			raw:  "/**\n * Line one.\n *\n * @usage chore x\n * Line three.\n */",
			want: Block{Description: "Line one.\n\nLine three.", Tags: map[string]string{"usage": "chore x"}},
		},
		{
			name: "only one space after marker is stripped",
			raw:  "/**\n * Example:\n *     chore db:migrate\n */",
			want: Block{Description: "Example:\n    chore db:migrate", Tags: map[string]string{}},
		},
		{
			name: "tag text keeps inner whitespace",
			raw:  "/**\n * @param  string  $name\n */",
			want: Block{Description: "", Tags: map[string]string{"param": "string  $name"}},
		},
		{
			name: "single line block has no body",
			raw:  "/** inline */",
			want: Block{Description: "", Tags: map[string]string{}},
		},
		{
			name: "empty input",
			raw:  "",
			want: Block{Description: "", Tags: map[string]string{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.raw)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseBareText(t *testing.T) {
	got := Parse("Lists every task.\n\n@usage chore help\n@internal")

	assert.Equal(t, "Lists every task.", got.Description)
	assert.Equal(t, map[string]string{"usage": "chore help", "internal": ""}, got.Tags)
}

func TestFromSource(t *testing.T) {
	block := FromSource("\n/**\n * Block form.\n */")
	assert.Equal(t, "Block form.", block.Description)

	bare := FromSource("Bare form.\n@since 2.0")
	assert.Equal(t, "Bare form.", bare.Description)
	assert.Equal(t, "2.0", bare.Tags["since"])
}
