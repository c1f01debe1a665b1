package utils

import (
	"fmt"
	"math/rand"
	"time"
)

// IST is the fixed UTC+5:30 offset used for capture stamps, independent of
// the server's own timezone.
var IST = time.FixedZone("IST", 5*60*60+30*60)

// GenerateLeadID returns a fresh lead identifier, minted once per submit
// attempt and never reused across attempts.
func GenerateLeadID() string {
	return fmt.Sprintf("LEAD-%d-%d", time.Now().UnixMilli(), rand.Intn(10000))
}

// CaptureDate formats t as DD/MM/YYYY in IST.
func CaptureDate(t time.Time) string {
	return t.In(IST).Format("02/01/2006")
}

// CaptureTime formats t as HH:MM:SS (24-hour) in IST.
func CaptureTime(t time.Time) string {
	return t.In(IST).Format("15:04:05")
}
