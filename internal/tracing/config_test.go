package tracing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReferenceText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Reference
		err   bool
	}{
		{
			name:  "function",
			input: `"os".Exit`,
			want:  Reference{Package: "os", Name: "Exit"},
		},
		{
			name:  "method",
			input: `  "go.uber.org/zap".Logger.Fatal `,
			want:  Reference{Package: "go.uber.org/zap", Type: "Logger", Name: "Fatal"},
		},
		{name: "no quotes", input: `os.Exit`, err: true},
		{name: "unterminated", input: `"os.Exit`, err: true},
		{name: "empty package", input: `"".Exit`, err: true},
		{name: "no name", input: `"os"`, err: true},
		{name: "no dot", input: `"os"Exit`, err: true},
		{name: "too deep", input: `"os".A.B.C`, err: true},
		{name: "bad ident", input: `"os".1Exit`, err: true},
		{name: "empty", input: ``, err: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Reference
			err := r.UnmarshalText([]byte(tt.input))
			if tt.err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, r)

			text, err := r.MarshalText()
			require.NoError(t, err)
			var back Reference
			require.NoError(t, back.UnmarshalText(text))
			require.Equal(t, r, back)
		})
	}
}

func TestReferenceQualified(t *testing.T) {
	require.Equal(t, "os.Exit", Reference{Package: "os", Name: "Exit"}.qualified())
	require.Equal(t, "log.Logger.Fatal", Reference{Package: "log", Type: "Logger", Name: "Fatal"}.qualified())
	require.Equal(t, `"log".Logger.Fatal`, Reference{Package: "log", Type: "Logger", Name: "Fatal"}.String())
}

func validConfig() Config {
	return Config{
		ResultTypes: []Reference{{Package: "example.com/fallible", Name: "Result"}},
		Validate:    "IsOk",
		Data:        "Data",
		Error:       "Err",
		MaxPaths:    100,
		MaxDepth:    2,
		LoopBound:   2,
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		errMsg string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{
			name:   "no result types",
			mutate: func(c *Config) { c.ResultTypes = nil },
			errMsg: "result_types",
		},
		{
			name: "method as result type",
			mutate: func(c *Config) {
				c.ResultTypes = []Reference{{Package: "p", Type: "T", Name: "M"}}
			},
			errMsg: "result_types[0]",
		},
		{
			name: "method in allow list",
			mutate: func(c *Config) {
				c.AllowList = []Reference{{Package: "p", Type: "T", Name: "M"}}
			},
			errMsg: "allow_list[0]",
		},
		{
			name:   "empty data method",
			mutate: func(c *Config) { c.Data = "" },
			errMsg: "data",
		},
		{
			name:   "same method twice",
			mutate: func(c *Config) { c.Error = "Data" },
			errMsg: "already used for data",
		},
		{
			name:   "no paths",
			mutate: func(c *Config) { c.MaxPaths = 0 },
			errMsg: "max_paths",
		},
		{
			name:   "negative depth",
			mutate: func(c *Config) { c.MaxDepth = -1 },
			errMsg: "max_depth",
		},
		{
			name:   "no loop bound",
			mutate: func(c *Config) { c.LoopBound = 0 },
			errMsg: "loop_bound",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(&c)
			err := c.Check()
			if tt.errMsg == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.errMsg)
		})
	}
}
