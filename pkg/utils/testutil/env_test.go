package testutil_test

import (
	"testing"

	"github.com/Spencerx/metrics-collector-service/pkg/utils/testutil"
	"github.com/m-mizutani/gt"
)

func TestGetEnvOrSkip(t *testing.T) {
	t.Setenv("DEPTRACK_TEST_VALUE", "postgres://localhost/deptrack")
	gt.V(t, testutil.GetEnvOrSkip(t, "DEPTRACK_TEST_VALUE")).Equal("postgres://localhost/deptrack")
}

func TestGetEnvOrSkipUnset(t *testing.T) {
	t.Setenv("DEPTRACK_TEST_VALUE", "")
	testutil.GetEnvOrSkip(t, "DEPTRACK_TEST_VALUE")
	t.Error("must be skipped")
}
