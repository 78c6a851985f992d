package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockMigrator struct {
	mock.Mock
}

func (m *mockMigrator) Up() error               { return m.Called().Error(0) }
func (m *mockMigrator) Down() error             { return m.Called().Error(0) }
func (m *mockMigrator) Steps(n int) error       { return m.Called(n).Error(0) }
func (m *mockMigrator) Force(version int) error { return m.Called(version).Error(0) }

func (m *mockMigrator) Version() (uint, bool, error) {
	args := m.Called()
	return args.Get(0).(uint), args.Bool(1), args.Error(2)
}

func TestRun_UpIgnoresNoChange(t *testing.T) {
	m := new(mockMigrator)
	m.On("Up").Return(migrate.ErrNoChange)

	require.NoError(t, run(m, []string{"up"}, &bytes.Buffer{}))
	m.AssertExpectations(t)
}

func TestRun_DownFailure(t *testing.T) {
	m := new(mockMigrator)
	m.On("Down").Return(errors.New("connection refused"))

	err := run(m, []string{"down"}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestRun_StepsAndForce(t *testing.T) {
	m := new(mockMigrator)
	m.On("Steps", -1).Return(nil)
	m.On("Force", 1).Return(nil)

	require.NoError(t, run(m, []string{"steps", "-1"}, &bytes.Buffer{}))
	require.NoError(t, run(m, []string{"force", "1"}, &bytes.Buffer{}))
	m.AssertExpectations(t)
}

func TestRun_NumberArguments(t *testing.T) {
	m := new(mockMigrator)

	assert.EqualError(t, run(m, []string{"steps"}, &bytes.Buffer{}), "steps requires a number argument")
	assert.ErrorContains(t, run(m, []string{"force", "x"}, &bytes.Buffer{}), "invalid force argument")
	m.AssertNotCalled(t, "Steps", mock.Anything)
	m.AssertNotCalled(t, "Force", mock.Anything)
}

func TestRun_Version(t *testing.T) {
	m := new(mockMigrator)
	m.On("Version").Return(uint(1), false, nil).Once()
	m.On("Version").Return(uint(0), false, migrate.ErrNilVersion).Once()

	var out bytes.Buffer
	require.NoError(t, run(m, []string{"version"}, &out))
	assert.Equal(t, "version: 1, dirty: false\n", out.String())

	out.Reset()
	require.NoError(t, run(m, []string{"version"}, &out))
	assert.Equal(t, "version: none\n", out.String())
}

func TestRun_UnknownCommand(t *testing.T) {
	err := run(new(mockMigrator), []string{"sideways"}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "unknown command: sideways")
}
