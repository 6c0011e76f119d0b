package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/farum-triage/internal/config"
)

func TestRunChat(t *testing.T) {
	cfg := config.Default()
	eng, err := buildEngine(context.Background(), cfg)
	require.NoError(t, err)
	defer eng.Close()

	in := strings.NewReader("hi there\n\n/checkin\ngreat\n/quit\nnever read\n")
	var out bytes.Buffer

	require.NoError(t, runChat(context.Background(), eng, "s1", in, &out))

	text := out.String()
	assert.Contains(t, text, "session s1")
	assert.Contains(t, text, "checkin=1/5")
	assert.Contains(t, text, "checkin=2/5")
	assert.NotContains(t, text, "error:")

	session, err := eng.GetSession(context.Background(), "s1")
	require.NoError(t, err)
	// greeting pair, question, answer pair
	assert.Len(t, session.Turns, 5)
}

func TestRunChat_Crisis(t *testing.T) {
	eng, err := buildEngine(context.Background(), config.Default())
	require.NoError(t, err)
	defer eng.Close()

	var out bytes.Buffer
	require.NoError(t, runChat(context.Background(), eng, "s2", strings.NewReader("I want to kill myself\n"), &out))

	assert.Contains(t, out.String(), "crisis=immediate")
	assert.Contains(t, out.String(), "988")
}

func TestRunChat_DefaultMoodHistory(t *testing.T) {
	eng, err := buildEngine(context.Background(), config.Default())
	require.NoError(t, err)
	defer eng.Close()

	var out bytes.Buffer
	in := strings.NewReader("I feel so sad today\nhello\n")
	require.NoError(t, runChat(context.Background(), eng, "s3", in, &out))

	assert.Contains(t, out.String(), "Last time")
}

func TestBuildEngine_InvalidResourcesURL(t *testing.T) {
	cfg := config.Default()
	cfg.Resources.URL = "not a url"

	_, err := buildEngine(context.Background(), cfg)
	assert.Error(t, err)
}

var _ chatEngine = (*engine)(nil)
