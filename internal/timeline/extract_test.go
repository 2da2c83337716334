package timeline

import (
	"testing"
	"trucklogix-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLog = `DRIVER'S DAILY LOG
Driver: Jane Roe   Truck: 104   Date: 2025-03-14

Duty Status Changes:
- Time: 12:00 a.m., Location: Oklahoma City, OK, Status: Off Duty
- Time: 6:00 a.m., Location: Oklahoma City, OK, Status: On Duty (Not Driving)
- Time: 6:30 a.m., Location: I-40 W, mile 120, near Weatherford, OK, Status: Driving
* Time: 11:00 a.m., Location: Amarillo, TX, Status: off duty.
- Time: 11:30 a.m., Location: Amarillo, TX, Status: Yard Move
- Time: 25:00 p.m., Location: Amarillo, TX, Status: Driving
  - Time: 11:30 a.m., Location: Amarillo, TX, Status: Driving

Remarks: pre-trip inspection completed.
`

func TestExtractChanges(t *testing.T) {
	got := ExtractChanges(sampleLog)

	require.Len(t, got.Changes, 5)

	assert.Equal(t, "12:00 a.m.", got.Changes[0].Time)
	assert.Equal(t, domain.OffDuty, got.Changes[0].Status)
	assert.Equal(t, "Oklahoma City, OK", got.Changes[0].Location)

	assert.Equal(t, domain.OnDutyNotDriving, got.Changes[1].Status)

	assert.Equal(t, "I-40 W, mile 120, near Weatherford, OK", got.Changes[2].Location)
	assert.Equal(t, domain.Driving, got.Changes[2].Status)

	assert.Equal(t, domain.OffDuty, got.Changes[3].Status)
	assert.Equal(t, domain.Driving, got.Changes[4].Status)

	for i, c := range got.Changes {
		assert.Equal(t, i, c.Order)
	}

	require.Len(t, got.Rejected, 2)
	assert.Equal(t, 9, got.Rejected[0].Line)
	assert.Contains(t, got.Rejected[0].Reason, "Yard Move")
	assert.Equal(t, 10, got.Rejected[1].Line)
	assert.Contains(t, got.Rejected[1].Reason, "25:00 p.m.")
}

func TestExtractChangesNoMatches(t *testing.T) {
	for _, in := range []string{"", "no changes today", "Time 7:30 a.m. Location Dallas Status Driving"} {
		got := ExtractChanges(in)
		assert.NotNil(t, got.Changes, "input %q", in)
		assert.Empty(t, got.Changes, "input %q", in)
		assert.Empty(t, got.Rejected, "input %q", in)
	}
}

func TestExtractThenReconstruct(t *testing.T) {
	ex := ExtractChanges(sampleLog)

	segs, err := Reconstruct(ex.Changes)
	require.NoError(t, err)

	sum := 0
	for _, s := range segs {
		sum += s.Duration
	}
	assert.Equal(t, MinutesPerDay, sum)
	assert.Equal(t, domain.Driving, segs[len(segs)-1].Status)
}
