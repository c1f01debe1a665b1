package utils

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var leadIDPattern = regexp.MustCompile(`^LEAD-\d+-\d{1,4}$`)

func TestGenerateLeadID(t *testing.T) {
	id := GenerateLeadID()
	assert.Regexp(t, leadIDPattern, id)
}

func TestCaptureDateAndTime(t *testing.T) {
	// 2025-03-01 20:00:00 UTC is 2025-03-02 01:30:00 at UTC+5:30.
	instant := time.Date(2025, 3, 1, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, "02/03/2025", CaptureDate(instant))
	assert.Equal(t, "01:30:00", CaptureTime(instant))
}

func TestCaptureStampsIgnoreSourceZone(t *testing.T) {
	utc := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	elsewhere := utc.In(time.FixedZone("X", -7*3600))
	assert.Equal(t, CaptureDate(utc), CaptureDate(elsewhere))
	assert.Equal(t, CaptureTime(utc), CaptureTime(elsewhere))
}
