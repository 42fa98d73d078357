package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/killallgit/clipper-api/pkg/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	tests := []struct {
		name           string
		args           []string
		wantErr        bool
		expectedOutput []string
	}{
		{
			name:           "no args prints the description",
			args:           []string{},
			expectedOutput: []string{"Clipper API", "feature stages"},
		},
		{
			name:           "help lists every command",
			args:           []string{"--help"},
			expectedOutput: []string{"Available Commands:", "serve", "migrate", "token", "version"},
		},
		{
			name:    "unknown flag fails",
			args:    []string{"--invalid-flag"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewRootCmd()
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			if (err != nil) != tt.wantErr {
				t.Errorf("Execute() error = %v, wantErr %v", err, tt.wantErr)
			}

			for _, want := range tt.expectedOutput {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("Expected output to contain %q, got %q", want, buf.String())
				}
			}
		})
	}
}

func TestLogFlags(t *testing.T) {
	flags := NewRootCmd().PersistentFlags()

	logFlag := flags.Lookup("log-level")
	if assert.NotNil(t, logFlag, "log-level flag") {
		assert.Equal(t, "info", logFlag.DefValue)
	}

	jsonFlag := flags.Lookup("json-logs")
	if assert.NotNil(t, jsonFlag, "json-logs flag") {
		assert.Equal(t, "false", jsonFlag.DefValue)
	}
}

func TestInitLogging_FallsBackToConfig(t *testing.T) {
	viper.Set("logging.level", "debug")
	viper.Set("logging.format", "json")
	t.Cleanup(func() {
		viper.Set("logging.level", "info")
		logging.Init("info", false)
	})

	initLogging()

	assert.Equal(t, logrus.DebugLevel, logging.Log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logging.Log.Formatter)
}

func TestNewRootCmd_ResetsFlags(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"version", "--help", "--log-level", "debug"})
	require.NoError(t, cmd.Execute())

	cmd = NewRootCmd()
	versionCmd, _, err := cmd.Find([]string{"version"})
	require.NoError(t, err)

	help := versionCmd.Flags().Lookup("help")
	require.NotNil(t, help)
	assert.False(t, help.Changed)
	assert.Equal(t, "false", help.Value.String())

	level := cmd.PersistentFlags().Lookup("log-level")
	assert.False(t, level.Changed)
	assert.Equal(t, "info", level.Value.String())
}
