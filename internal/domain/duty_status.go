package domain

import (
	"fmt"
	"strings"
)

// DutyStatus is one of the four duty states recorded on a driver's daily log.
type DutyStatus int

const (
	OffDuty DutyStatus = iota
	SleeperBerth
	Driving
	OnDutyNotDriving
)

// AllStatuses lists every duty status in declaration order.
var AllStatuses = []DutyStatus{OffDuty, SleeperBerth, Driving, OnDutyNotDriving}

// String returns the label used on log sheets and on the wire.
func (s DutyStatus) String() string {
	switch s {
	case OffDuty:
		return "Off Duty"
	case SleeperBerth:
		return "Sleeper Berth"
	case Driving:
		return "Driving"
	case OnDutyNotDriving:
		return "On Duty (Not Driving)"
	}
	return fmt.Sprintf("DutyStatus(%d)", int(s))
}

// Valid reports whether s is one of the declared statuses.
func (s DutyStatus) Valid() bool {
	return s >= OffDuty && s <= OnDutyNotDriving
}

// ParseDutyStatus accepts the log sheet label ("On Duty (Not Driving)") or the
// identifier form ("OnDutyNotDriving"), ignoring case and surrounding space.
func ParseDutyStatus(s string) (DutyStatus, error) {
	norm := strings.ToLower(strings.Join(strings.Fields(s), " "))
	switch norm {
	case "off duty", "offduty":
		return OffDuty, nil
	case "sleeper berth", "sleeperberth":
		return SleeperBerth, nil
	case "driving":
		return Driving, nil
	case "on duty (not driving)", "on duty", "ondutynotdriving":
		return OnDutyNotDriving, nil
	}
	return 0, fmt.Errorf("unknown duty status %q", s)
}

func (s DutyStatus) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("marshal duty status: invalid value %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *DutyStatus) UnmarshalText(b []byte) error {
	v, err := ParseDutyStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
