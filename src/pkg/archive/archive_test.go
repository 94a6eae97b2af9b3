package archive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReportKeyGroupsByYearAndMonth(t *testing.T) {
	now := time.Date(2025, 8, 22, 14, 30, 0, 0, time.UTC)

	assert.Equal(t, "reports/2025/08/dashboard-20250822.xlsx", ReportKey(now))
}
