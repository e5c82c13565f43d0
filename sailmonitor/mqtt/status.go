package mqtt

import "github.com/harveysanders/sailtrack/sailmonitor/power"

// Status is the device report published on the status topic.
type Status struct {
	Battery Battery `json:"battery"`
}

// Battery is the battery part of Status.
type Battery struct {
	Voltage float32 `json:"voltage"`
	Percent int     `json:"percent"`
}

// BatteryStatus returns a status function that samples m on every call.
func BatteryStatus(m *power.Monitor) func() Status {
	return func() Status {
		v := m.SampleBatteryVoltage()
		return Status{Battery: Battery{Voltage: v, Percent: power.Percent(v)}}
	}
}
