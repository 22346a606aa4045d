package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name         string
		args         []string
		expectPath   string
		expectExit   bool
		expectErr    string
		expectFormat string
	}{
		{
			name:         "positional path",
			args:         []string{"tasks"},
			expectPath:   "tasks",
			expectFormat: "text",
		},
		{
			name:       "path flag",
			args:       []string{"--path", "tasks.hcl"},
			expectPath: "tasks.hcl",
		},
		{
			name:       "shorthand flag",
			args:       []string{"-p", "tasks.hcl"},
			expectPath: "tasks.hcl",
		},
		{
			name:         "log format json",
			args:         []string{"--log-format", "json", "tasks"},
			expectPath:   "tasks",
			expectFormat: "json",
		},
		{
			name:       "no path prints usage and exits cleanly",
			args:       []string{},
			expectExit: true,
		},
		{
			name:      "invalid log format",
			args:      []string{"--log-format", "xml", "tasks"},
			expectErr: "invalid log-format",
		},
		{
			name:      "invalid log level",
			args:      []string{"--log-level", "loud", "tasks"},
			expectErr: "invalid log-level",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			config, shouldExit, err := Parse(tc.args, &out)

			if tc.expectErr != "" {
				require.Error(t, err)
				assert.ErrorContains(t, err, tc.expectErr)

				var exitErr *ExitError
				require.ErrorAs(t, err, &exitErr)
				assert.Equal(t, 2, exitErr.Code)
				return
			}

			require.NoError(t, err)
			if tc.expectExit {
				assert.True(t, shouldExit)
				assert.Contains(t, out.String(), "Usage:")
				return
			}

			require.NotNil(t, config)
			assert.Equal(t, tc.expectPath, config.Path)
			if tc.expectFormat != "" {
				assert.Equal(t, tc.expectFormat, config.LogFormat)
			}
		})
	}
}
