package csvtable

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetectDelimiter(t *testing.T) {
	tests := []struct {
		name string
		data string
		want rune
	}{
		{
			name: "comma header",
			data: "name,email,city\na,b,c\n",
			want: ',',
		},
		{
			name: "pipe header",
			data: "name|email|city\n",
			want: '|',
		},
		{
			name: "semicolon header",
			data: "name;email;city\n",
			want: ';',
		},
		{
			name: "tab header",
			data: "name\temail\tcity\n",
			want: '\t',
		},
		{
			name: "no candidate defaults to comma",
			data: "justonecolumn\nvalue\n",
			want: ',',
		},
		{
			name: "empty input defaults to comma",
			data: "",
			want: ',',
		},
		{
			name: "tie resolved by priority order",
			data: "a,b|c,d|e\n",
			want: ',',
		},
		{
			name: "tie between pipe and semicolon picks pipe",
			data: "a|b;c|d;e\n",
			want: '|',
		},
		{
			name: "strict majority wins over earlier candidate",
			data: "a,b;c;d;e\n",
			want: ';',
		},
		{
			name: "only first line is considered",
			data: "a,b\nx|y|z|w|v\n",
			want: ',',
		},
		{
			name: "trailing carriage return ignored",
			data: "a;b;c\r\n1;2;3\r\n",
			want: ';',
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, DetectDelimiter([]byte(tt.data)))
		})
	}
}
