package main

import (
	"context"
	"errors"
	"testing"

	"github.com/Maxbrain0/blogger/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmdFlagsOverrideEnv(t *testing.T) {
	t.Setenv("DB_HOST", "from-env")
	t.Setenv("DB_NAME", "env-db")

	var got *config.Config
	cmd, err := newRootCmd(config.New(), func(cfg *config.Config) error {
		got = cfg
		return nil
	})
	require.NoError(t, err)
	cmd.SetArgs([]string{"--db-host", "from-flag", "--log-level", "debug"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "from-flag", got.DB.Host)
	assert.Equal(t, "env-db", got.DB.Name)
	assert.Equal(t, "debug", got.LogLevel)
}

func TestRootCmdInvalidConfig(t *testing.T) {
	called := false
	cmd, err := newRootCmd(config.New(), func(*config.Config) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	cmd.SetArgs([]string{"--db-driver", "sqlite"})

	assert.Error(t, cmd.Execute())
	assert.False(t, called)
}

func TestRootCmdRunError(t *testing.T) {
	boom := errors.New("connection refused")
	cmd, err := newRootCmd(config.New(), func(*config.Config) error { return boom })
	require.NoError(t, err)
	cmd.SetArgs([]string{})

	assert.ErrorIs(t, cmd.Execute(), boom)
}

func TestBindFlagsUnknownFlag(t *testing.T) {
	cmd := &cobra.Command{Use: "blogger"}
	cmd.Flags().String("db-host", "localhost", "")

	assert.NoError(t, bindFlags(config.New(), cmd, map[string]string{"db.host": "db-host"}))
	assert.Error(t, bindFlags(config.New(), cmd, map[string]string{"db.host": "db-hots"}))
}

func TestOpenStoreBadger(t *testing.T) {
	s, err := openStore(config.DBConfig{Driver: config.DriverBadger, Name: "blogger"})
	require.NoError(t, err)
	defer s.Close(context.Background())

	assert.Equal(t, "blogger", s.Name())
}
