package config

import (
	"fmt"
	"os"
	"testing"
)

// TestMain refuses to run the config tests against anything but the test
// environment. These tests mutate process-level state (env vars, the shared
// *gorm.DB handle), and pointing them at a live TailorLink database would be
// destructive.
func TestMain(m *testing.M) {
	if env := os.Getenv("GO_ENV"); env != "test" {
		fmt.Fprintf(os.Stderr,
			"refusing to run config tests with GO_ENV=%q\n"+
				"these tests replace the shared database handle; run them with:\n"+
				"  make test\n"+
				"  GO_ENV=test go test ./...\n",
			env)
		os.Exit(1)
	}

	os.Exit(m.Run())
}
