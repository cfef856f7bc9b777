//go:build integration

package repository

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"testing"

	"team-builder-backend/internal/testutils"
)

// TestMain shares one MongoDB container across the repository suites
func TestMain(m *testing.M) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Println("Repository tests interrupted, removing MongoDB container...")
		testutils.CleanupSharedContainer()
		os.Exit(1)
	}()

	code := m.Run()

	testutils.CleanupSharedContainer()
	os.Exit(code)
}
