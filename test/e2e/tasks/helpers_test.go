//go:build e2e

package tasks_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/aussiebroadwan/tasks/pkg/tasksdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Container setup and shared helpers for the tasks service end-to-end tests.
 * The image is built once in TestMain; every test gets a fresh container.
 */

const (
	testImageName = "tasks-e2e-test:latest"
	servicePort   = "10000/tcp"

	testPassword = "secret1"
)

// relaxedLimits keeps the rate limiter out of the way of ordinary tests.
var relaxedLimits = map[string]string{
	"RATELIMIT_AUTH_REQUESTS":   "1000",
	"RATELIMIT_AUTH_BURST":      "1000",
	"RATELIMIT_API_REQUESTS":    "1000",
	"RATELIMIT_API_BURST":       "1000",
	"RATELIMIT_PUBLIC_REQUESTS": "1000",
	"RATELIMIT_PUBLIC_BURST":    "1000",
}

func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building tasks service Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up tasks service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/tasks/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	return cmd.Run()
}

func cleanupDockerImage() {
	_ = exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName).Run()
}

// setupTasksContainer starts the service with relaxed rate limits.
func setupTasksContainer(t *testing.T) *tasksdk.Client {
	t.Helper()
	return startTasksContainer(t, relaxedLimits)
}

// startTasksContainer starts the service with env layered over the test
// defaults and returns a client pointed at it. The container is terminated
// when the test ends.
func startTasksContainer(t *testing.T, env map[string]string) *tasksdk.Client {
	t.Helper()
	ctx := context.Background()

	containerEnv := map[string]string{
		"ENV":           "test",
		"LOG_LEVEL":     "info",
		"LOG_FORMAT":    "json",
		"COOKIE_SECURE": "false",
	}
	for k, v := range env {
		containerEnv[k] = v
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        testImageName,
			ExposedPorts: []string{servicePort},
			Env:          containerEnv,
			WaitingFor: wait.ForHTTP("/livez").
				WithPort(servicePort).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	endpoint, err := container.PortEndpoint(ctx, servicePort, "http")
	require.NoError(t, err)

	return tasksdk.NewClient(endpoint)
}

// registerAndLogin creates a user and returns a logged in session.
func registerAndLogin(t *testing.T, client *tasksdk.Client, username string) *tasksdk.Session {
	t.Helper()
	ctx := t.Context()

	email := username + "@example.com"
	_, err := client.Register(ctx, tasksdk.RegisterRequest{
		Username:        username,
		Email:           email,
		Password:        testPassword,
		ConfirmPassword: testPassword,
	})
	require.NoError(t, err, "register %s", username)

	sess, err := client.Login(ctx, email, testPassword)
	require.NoError(t, err, "login %s", username)
	return sess
}
